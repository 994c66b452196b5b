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

type FriendRepositorySuite struct {
	suite.Suite
	db         *sql.DB
	repo       repository.FriendRepository
	alice, bob int64
}

func (s *FriendRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewFriendRepository(s.db)
	s.alice = testutil.InsertUser(s.T(), s.db, "alice")
	s.bob = testutil.InsertUser(s.T(), s.db, "bob")
}

func (s *FriendRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *FriendRepositorySuite) TestCreateRequest() {
	fr, err := s.repo.CreateRequest(context.Background(), s.alice, s.bob, "hi")
	s.Require().NoError(err)
	s.Assert().Greater(fr.ID, int64(0))
	s.Assert().Equal(models.FriendRequestPending, fr.Status)
	s.Assert().Equal("hi", fr.Message)
	s.Assert().False(fr.CreatedAt.IsZero())

	got, err := s.repo.GetRequest(context.Background(), fr.ID)
	s.Require().NoError(err)
	s.Assert().Equal(fr.SenderID, got.SenderID)
	s.Assert().Equal(fr.ReceiverID, got.ReceiverID)
}

func (s *FriendRepositorySuite) TestCreateRequest_DuplicateEitherDirectionAnyStatus() {
	ctx := context.Background()
	fr, err := s.repo.CreateRequest(ctx, s.alice, s.bob, "")
	s.Require().NoError(err)

	_, err = s.repo.CreateRequest(ctx, s.alice, s.bob, "")
	s.Assert().ErrorIs(err, repository.ErrDuplicate)
	_, err = s.repo.CreateRequest(ctx, s.bob, s.alice, "")
	s.Assert().ErrorIs(err, repository.ErrDuplicate)

	s.respond(fr.ID, models.FriendRequestRejected)
	_, err = s.repo.CreateRequest(ctx, s.bob, s.alice, "")
	s.Assert().ErrorIs(err, repository.ErrDuplicate)
}

func (s *FriendRepositorySuite) TestPairIndexRejectsReverseInsert() {
	_, err := s.db.Exec(`INSERT INTO friend_requests (sender_id, receiver_id) VALUES (?, ?)`, s.alice, s.bob)
	s.Require().NoError(err)
	_, err = s.db.Exec(`INSERT INTO friend_requests (sender_id, receiver_id) VALUES (?, ?)`, s.bob, s.alice)
	s.Assert().Error(err)
}

func (s *FriendRepositorySuite) TestGetRequest_NotFound() {
	fr, err := s.repo.GetRequest(context.Background(), 123)
	s.Assert().NoError(err)
	s.Assert().Nil(fr)
}

func (s *FriendRepositorySuite) TestRespondAccept_IsSymmetricAndIdempotent() {
	ctx := context.Background()
	fr, err := s.repo.CreateRequest(ctx, s.alice, s.bob, "")
	s.Require().NoError(err)

	s.respond(fr.ID, models.FriendRequestAccepted)
	s.respond(fr.ID, models.FriendRequestAccepted)

	aliceFriends, err := s.repo.ListFriends(ctx, s.alice)
	s.Require().NoError(err)
	s.Require().Len(aliceFriends, 1)
	s.Assert().Equal("bob", aliceFriends[0].Username)

	bobFriends, err := s.repo.ListFriends(ctx, s.bob)
	s.Require().NoError(err)
	s.Require().Len(bobFriends, 1)
	s.Assert().Equal("alice", bobFriends[0].Username)

	ok, err := s.repo.AreFriends(ctx, s.bob, s.alice)
	s.Require().NoError(err)
	s.Assert().True(ok)

	got, err := s.repo.GetRequest(ctx, fr.ID)
	s.Require().NoError(err)
	s.Assert().Equal(models.FriendRequestAccepted, got.Status)
}

func (s *FriendRepositorySuite) TestRespondReject_NoEdges() {
	ctx := context.Background()
	fr, err := s.repo.CreateRequest(ctx, s.alice, s.bob, "")
	s.Require().NoError(err)

	s.respond(fr.ID, models.FriendRequestRejected)

	friends, err := s.repo.ListFriends(ctx, s.alice)
	s.Require().NoError(err)
	s.Assert().Empty(friends)

	ok, err := s.repo.AreFriends(ctx, s.alice, s.bob)
	s.Require().NoError(err)
	s.Assert().False(ok)
}

func (s *FriendRepositorySuite) TestRespond_AcceptedIsTerminal() {
	ctx := context.Background()
	fr, err := s.repo.CreateRequest(ctx, s.alice, s.bob, "")
	s.Require().NoError(err)
	s.respond(fr.ID, models.FriendRequestAccepted)

	applied, err := s.repo.Respond(ctx, fr.ID, models.FriendRequestRejected)
	s.Require().NoError(err)
	s.Assert().False(applied)

	got, err := s.repo.GetRequest(ctx, fr.ID)
	s.Require().NoError(err)
	s.Assert().Equal(models.FriendRequestAccepted, got.Status)
	ok, err := s.repo.AreFriends(ctx, s.alice, s.bob)
	s.Require().NoError(err)
	s.Assert().True(ok)
}

func (s *FriendRepositorySuite) TestRespond_RejectedIsTerminal() {
	ctx := context.Background()
	fr, err := s.repo.CreateRequest(ctx, s.alice, s.bob, "")
	s.Require().NoError(err)
	s.respond(fr.ID, models.FriendRequestRejected)
	s.respond(fr.ID, models.FriendRequestRejected)

	applied, err := s.repo.Respond(ctx, fr.ID, models.FriendRequestAccepted)
	s.Require().NoError(err)
	s.Assert().False(applied)

	got, err := s.repo.GetRequest(ctx, fr.ID)
	s.Require().NoError(err)
	s.Assert().Equal(models.FriendRequestRejected, got.Status)
	friends, err := s.repo.ListFriends(ctx, s.alice)
	s.Require().NoError(err)
	s.Assert().Empty(friends)
}

func (s *FriendRepositorySuite) TestListPending_DecoratedWithSender() {
	ctx := context.Background()
	carol := testutil.InsertUser(s.T(), s.db, "carol")

	_, err := s.repo.CreateRequest(ctx, s.alice, s.bob, "from alice")
	s.Require().NoError(err)
	answered, err := s.repo.CreateRequest(ctx, carol, s.bob, "from carol")
	s.Require().NoError(err)
	s.respond(answered.ID, models.FriendRequestRejected)

	pending, err := s.repo.ListPending(ctx, s.bob)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)
	s.Assert().Equal("from alice", pending[0].Message)
	s.Assert().Equal("alice", pending[0].Sender.Username)
	s.Assert().Equal(s.alice, pending[0].Sender.ID)

	none, err := s.repo.ListPending(ctx, s.alice)
	s.Require().NoError(err)
	s.Assert().Empty(none)
}

func TestFriendRepositorySuite(t *testing.T) {
	suite.Run(t, new(FriendRepositorySuite))
}

func (s *FriendRepositorySuite) respond(id int64, status models.FriendRequestStatus) {
	applied, err := s.repo.Respond(context.Background(), id, status)
	s.Require().NoError(err)
	s.Require().True(applied)
}
