package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/errors"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/testutil/mocks"
)

type mockSubmissionService struct {
	mock.Mock
}

func (m *mockSubmissionService) SubmitQuizAttempt(ctx context.Context, sub Submission) (*models.PerformanceSummary, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PerformanceSummary), args.Error(1)
}

func int64Ptr(i int64) *int64 { return &i }

type ChallengeServiceTestSuite struct {
	suite.Suite
	challenges  *mocks.MockChallengeRepository
	friends     *mocks.MockFriendRepository
	users       *mocks.MockUserRepository
	perfs       *mocks.MockPerformanceRepository
	quizzes     *mocks.MockQuizRepository
	submissions *mockSubmissionService
	service     ChallengeService
}

func (s *ChallengeServiceTestSuite) SetupTest() {
	s.challenges = new(mocks.MockChallengeRepository)
	s.friends = new(mocks.MockFriendRepository)
	s.users = new(mocks.MockUserRepository)
	s.perfs = new(mocks.MockPerformanceRepository)
	s.quizzes = new(mocks.MockQuizRepository)
	s.submissions = new(mockSubmissionService)
	s.service = NewChallengeService(s.challenges, s.friends, s.users, s.perfs, s.quizzes, s.submissions)
}

func (s *ChallengeServiceTestSuite) TestInviteSelf() {
	_, err := s.service.Invite(context.Background(), 1, 1, 10, "")
	s.True(errors.IsCode(err, errors.ErrCodeValidation))
}

func (s *ChallengeServiceTestSuite) TestInviteRequiresFriendship() {
	s.users.On("Get", mock.Anything, int64(2)).Return(&models.User{ID: 2}, nil)
	s.quizzes.On("Get", mock.Anything, int64(10)).Return(&models.Quiz{ID: 10}, nil)
	s.friends.On("AreFriends", mock.Anything, int64(1), int64(2)).Return(false, nil)

	_, err := s.service.Invite(context.Background(), 1, 2, 10, "")
	s.True(errors.IsCode(err, errors.ErrCodeValidation))
	s.challenges.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *ChallengeServiceTestSuite) TestInviteUnknownQuiz() {
	s.users.On("Get", mock.Anything, int64(2)).Return(&models.User{ID: 2}, nil)
	s.quizzes.On("Get", mock.Anything, int64(10)).Return(nil, nil)

	_, err := s.service.Invite(context.Background(), 1, 2, 10, "")
	s.True(errors.IsCode(err, errors.ErrCodeNotFound))
}

func (s *ChallengeServiceTestSuite) TestInviteCreatesPendingChallenge() {
	s.users.On("Get", mock.Anything, int64(2)).Return(&models.User{ID: 2}, nil)
	s.quizzes.On("Get", mock.Anything, int64(10)).Return(&models.Quiz{ID: 10}, nil)
	s.friends.On("AreFriends", mock.Anything, int64(1), int64(2)).Return(true, nil)
	s.challenges.On("Create", mock.Anything, mock.MatchedBy(func(c models.Challenge) bool {
		return c.ChallengerID == 1 && c.OpponentID == 2 && c.Status == models.ChallengePending && c.Message == "go"
	})).Return(int64(4), nil)
	s.challenges.On("Get", mock.Anything, int64(4)).
		Return(&models.Challenge{ID: 4, ChallengerID: 1, OpponentID: 2, QuizID: 10, Status: models.ChallengePending}, nil)

	c, err := s.service.Invite(context.Background(), 1, 2, 10, " go ")
	s.Require().NoError(err)
	s.Equal(int64(4), c.ID)
	s.challenges.AssertExpectations(s.T())
}

func (s *ChallengeServiceTestSuite) TestRespondOnlyOpponent() {
	s.challenges.On("Get", mock.Anything, int64(4)).
		Return(&models.Challenge{ID: 4, ChallengerID: 1, OpponentID: 2, Status: models.ChallengePending}, nil)

	_, err := s.service.Respond(context.Background(), 4, 1, true)
	s.True(errors.IsCode(err, errors.ErrCodeForbidden))
}

func (s *ChallengeServiceTestSuite) TestRespondOnlyFromPending() {
	s.challenges.On("Get", mock.Anything, int64(4)).
		Return(&models.Challenge{ID: 4, ChallengerID: 1, OpponentID: 2, Status: models.ChallengeDeclined}, nil)
	s.challenges.On("Transition", mock.Anything, int64(4), models.ChallengePending, models.ChallengeAccepted).Return(false, nil)

	_, err := s.service.Respond(context.Background(), 4, 2, true)
	s.True(errors.IsCode(err, errors.ErrCodeValidation))
}

func (s *ChallengeServiceTestSuite) TestRespondDecline() {
	s.challenges.On("Get", mock.Anything, int64(4)).
		Return(&models.Challenge{ID: 4, ChallengerID: 1, OpponentID: 2, Status: models.ChallengePending}, nil)
	s.challenges.On("Transition", mock.Anything, int64(4), models.ChallengePending, models.ChallengeDeclined).Return(true, nil)

	c, err := s.service.Respond(context.Background(), 4, 2, false)
	s.Require().NoError(err)
	s.Equal(models.ChallengeDeclined, c.Status)
}

func (s *ChallengeServiceTestSuite) TestSubmitRequiresAccepted() {
	s.challenges.On("Get", mock.Anything, int64(4)).
		Return(&models.Challenge{ID: 4, ChallengerID: 1, OpponentID: 2, Status: models.ChallengePending}, nil)

	_, err := s.service.Submit(context.Background(), 4, 1, nil, 0)
	s.True(errors.IsCode(err, errors.ErrCodeValidation))
}

func (s *ChallengeServiceTestSuite) TestSubmitOutsider() {
	s.challenges.On("Get", mock.Anything, int64(4)).
		Return(&models.Challenge{ID: 4, ChallengerID: 1, OpponentID: 2, Status: models.ChallengeAccepted}, nil)

	_, err := s.service.Submit(context.Background(), 4, 3, nil, 0)
	s.True(errors.IsCode(err, errors.ErrCodeForbidden))
}

func (s *ChallengeServiceTestSuite) TestSubmitTwice() {
	s.challenges.On("Get", mock.Anything, int64(4)).Return(&models.Challenge{
		ID: 4, ChallengerID: 1, OpponentID: 2, Status: models.ChallengeAccepted,
		ChallengerPerformanceID: int64Ptr(30),
	}, nil)

	_, err := s.service.Submit(context.Background(), 4, 1, nil, 0)
	s.True(errors.IsCode(err, errors.ErrCodeDuplicate))
	s.submissions.AssertNotCalled(s.T(), "SubmitQuizAttempt", mock.Anything, mock.Anything)
}

func (s *ChallengeServiceTestSuite) TestFirstSideStaysAccepted() {
	accepted := &models.Challenge{ID: 4, ChallengerID: 1, OpponentID: 2, QuizID: 10, Status: models.ChallengeAccepted}
	afterRecord := *accepted
	afterRecord.ChallengerPerformanceID = int64Ptr(30)

	s.challenges.On("Get", mock.Anything, int64(4)).Return(accepted, nil).Once()
	s.submissions.On("SubmitQuizAttempt", mock.Anything, mock.MatchedBy(func(sub Submission) bool {
		return sub.UserID == 1 && sub.QuizID == 10 && sub.AttemptToken == "" && sub.ChallengeID == 4
	})).Return(&models.PerformanceSummary{PerformanceID: 30, Score: 20}, nil)
	s.challenges.On("Get", mock.Anything, int64(4)).Return(&afterRecord, nil).Once()
	s.quizzes.On("Get", mock.Anything, int64(10)).Return(&models.Quiz{ID: 10, Title: "Heaps"}, nil)
	s.perfs.On("Get", mock.Anything, int64(30)).Return(&models.PerformanceRecord{ID: 30, Score: 20}, nil)

	detail, err := s.service.Submit(context.Background(), 4, 1, nil, 0)
	s.Require().NoError(err)
	s.Equal(models.ChallengeAccepted, detail.Status)
	s.Equal("Heaps", detail.QuizTitle)
	s.Require().NotNil(detail.ChallengerSummary)
	s.Equal(20, detail.ChallengerSummary.Score)
	s.Nil(detail.OpponentSummary)
	s.challenges.AssertNotCalled(s.T(), "Complete", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ChallengeServiceTestSuite) completeWithScores(challengerScore, opponentScore int) *models.ChallengeDetail {
	accepted := &models.Challenge{
		ID: 4, ChallengerID: 1, OpponentID: 2, QuizID: 10, Status: models.ChallengeAccepted,
		ChallengerPerformanceID: int64Ptr(30),
	}
	afterRecord := *accepted
	afterRecord.OpponentPerformanceID = int64Ptr(31)

	s.challenges.On("Get", mock.Anything, int64(4)).Return(accepted, nil).Once()
	s.submissions.On("SubmitQuizAttempt", mock.Anything, mock.Anything).
		Return(&models.PerformanceSummary{PerformanceID: 31, Score: opponentScore}, nil)
	s.challenges.On("Get", mock.Anything, int64(4)).Return(&afterRecord, nil).Once()
	s.perfs.On("Get", mock.Anything, int64(30)).Return(&models.PerformanceRecord{ID: 30, Score: challengerScore}, nil)
	s.perfs.On("Get", mock.Anything, int64(31)).Return(&models.PerformanceRecord{ID: 31, Score: opponentScore}, nil)
	s.challenges.On("Complete", mock.Anything, int64(4), mock.Anything).Return(nil)
	s.quizzes.On("Get", mock.Anything, int64(10)).Return(&models.Quiz{ID: 10}, nil)

	detail, err := s.service.Submit(context.Background(), 4, 2, nil, 0)
	s.Require().NoError(err)
	s.Equal(models.ChallengeCompleted, detail.Status)
	s.NotNil(detail.ChallengerSummary)
	s.NotNil(detail.OpponentSummary)
	return detail
}

func (s *ChallengeServiceTestSuite) TestSecondSideCompletesWithWinner() {
	detail := s.completeWithScores(10, 30)
	s.Require().NotNil(detail.WinnerID)
	s.Equal(int64(2), *detail.WinnerID)
	s.challenges.AssertCalled(s.T(), "Complete", mock.Anything, int64(4), mock.MatchedBy(func(w *int64) bool {
		return w != nil && *w == 2
	}))
}

func (s *ChallengeServiceTestSuite) TestEqualScoresAreADraw() {
	detail := s.completeWithScores(20, 20)
	s.Nil(detail.WinnerID)
	s.True(detail.Draw())
}

func (s *ChallengeServiceTestSuite) TestGetParticipantOnly() {
	s.challenges.On("Get", mock.Anything, int64(4)).
		Return(&models.Challenge{ID: 4, ChallengerID: 1, OpponentID: 2, Status: models.ChallengePending}, nil)

	_, err := s.service.Get(context.Background(), 4, 3)
	s.True(errors.IsCode(err, errors.ErrCodeForbidden))
}

func (s *ChallengeServiceTestSuite) TestGetMissing() {
	s.challenges.On("Get", mock.Anything, int64(9)).Return(nil, nil)

	_, err := s.service.Get(context.Background(), 9, 1)
	s.True(errors.IsCode(err, errors.ErrCodeNotFound))
}

func TestChallengeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ChallengeServiceTestSuite))
}
