package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/repository"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/repository/sqlite"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/testutil"
)

type UserRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.UserRepository
}

func (s *UserRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewUserRepository(s.db)
}

func (s *UserRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *UserRepositorySuite) TestCreateAndGet() {
	ctx := context.Background()

	id, err := s.repo.Create(ctx, models.User{
		Username:     "ada",
		Email:        "ada@example.com",
		PasswordHash: "hash",
		Profile:      models.Profile{FirstName: "Ada", LastName: "Lovelace"},
	})
	s.Require().NoError(err)
	s.Assert().Greater(id, int64(0))

	u, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(u)
	s.Assert().Equal("ada", u.Username)
	s.Assert().Equal("hash", u.PasswordHash)
	s.Assert().Equal("Ada", u.Profile.FirstName)
	s.Assert().Equal(1, u.Stats.Level)
	s.Assert().Zero(u.Stats.TotalScore)
	s.Assert().Zero(u.Stats.AverageScore)
	s.Assert().False(u.IsAdmin)
}

func (s *UserRepositorySuite) TestGet_NotFound() {
	u, err := s.repo.Get(context.Background(), 99999)
	s.Assert().NoError(err)
	s.Assert().Nil(u)
}

func (s *UserRepositorySuite) TestCreate_DuplicateUsernameOrEmail() {
	ctx := context.Background()
	_, err := s.repo.Create(ctx, models.User{Username: "ada", Email: "ada@example.com", PasswordHash: "x"})
	s.Require().NoError(err)

	_, err = s.repo.Create(ctx, models.User{Username: "ada", Email: "other@example.com", PasswordHash: "x"})
	s.Assert().ErrorIs(err, repository.ErrDuplicate)

	_, err = s.repo.Create(ctx, models.User{Username: "other", Email: "ada@example.com", PasswordHash: "x"})
	s.Assert().ErrorIs(err, repository.ErrDuplicate)
}

func (s *UserRepositorySuite) TestGetByLogin_UsernameOrEmail() {
	ctx := context.Background()
	id, err := s.repo.Create(ctx, models.User{Username: "grace", Email: "grace@example.com", PasswordHash: "x"})
	s.Require().NoError(err)

	byName, err := s.repo.GetByLogin(ctx, "grace")
	s.Require().NoError(err)
	s.Require().NotNil(byName)
	s.Assert().Equal(id, byName.ID)

	byEmail, err := s.repo.GetByLogin(ctx, "GRACE@example.com")
	s.Require().NoError(err)
	s.Require().NotNil(byEmail)
	s.Assert().Equal(id, byEmail.ID)

	missing, err := s.repo.GetByLogin(ctx, "nobody")
	s.Assert().NoError(err)
	s.Assert().Nil(missing)
}

func (s *UserRepositorySuite) TestSearch() {
	ctx := context.Background()
	_, err := s.repo.Create(ctx, models.User{Username: "linus", Email: "l@example.com", PasswordHash: "x"})
	s.Require().NoError(err)
	_, err = s.repo.Create(ctx, models.User{Username: "ken", Email: "k@example.com", PasswordHash: "x",
		Profile: models.Profile{LastName: "Thompson"}})
	s.Require().NoError(err)
	_, err = s.repo.Create(ctx, models.User{Username: "under_score", Email: "u@example.com", PasswordHash: "x"})
	s.Require().NoError(err)

	found, err := s.repo.Search(ctx, "LIN", 20)
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Assert().Equal("linus", found[0].Username)

	found, err = s.repo.Search(ctx, "thomp", 20)
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Assert().Equal("ken", found[0].Username)

	// "_" is matched literally.
	found, err = s.repo.Search(ctx, "_", 20)
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Assert().Equal("under_score", found[0].Username)

	found, err = s.repo.Search(ctx, "", 2)
	s.Require().NoError(err)
	s.Assert().Len(found, 2)
}

func (s *UserRepositorySuite) TestUpdateProfile() {
	ctx := context.Background()
	id := testutil.InsertUser(s.T(), s.db, "barbara")

	err := s.repo.UpdateProfile(ctx, id, models.Profile{FirstName: "Barbara", Bio: "CLU"})
	s.Require().NoError(err)

	u, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal("Barbara", u.Profile.FirstName)
	s.Assert().Equal("CLU", u.Profile.Bio)
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}
