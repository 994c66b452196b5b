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

type StatsRepositorySuite struct {
	suite.Suite
	db    *sql.DB
	repo  repository.StatsRepository
	perfs repository.PerformanceRepository
}

func (s *StatsRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewStatsRepository(s.db)
	s.perfs = sqlite.NewPerformanceRepository(s.db)
}

func (s *StatsRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *StatsRepositorySuite) submit(userID int64, quiz *models.Quiz, score, correct int) {
	_, err := s.perfs.CreateWithStats(context.Background(), models.PerformanceRecord{
		UserID:           userID,
		QuizID:           quiz.ID,
		Score:            score,
		TotalQuestions:   len(quiz.Questions),
		CorrectAnswers:   correct,
		ExperienceGained: score,
	})
	s.Require().NoError(err)
}

func (s *StatsRepositorySuite) TestAggregate_EmptyIsZero() {
	userID := testutil.InsertUser(s.T(), s.db, "newbie")

	agg, err := s.repo.Aggregate(context.Background(), userID)
	s.Require().NoError(err)
	s.Assert().Equal(models.AggregateStats{}, *agg)
}

func (s *StatsRepositorySuite) TestAggregate_MeanOfScores() {
	userID := testutil.InsertUser(s.T(), s.db, "alice")
	quiz := seedQuiz(s.T(), s.db, models.TopicNetworks, 10, 20, 30)

	s.submit(userID, quiz, 60, 3)
	s.submit(userID, quiz, 10, 1)
	s.submit(userID, quiz, 20, 1)

	agg, err := s.repo.Aggregate(context.Background(), userID)
	s.Require().NoError(err)
	s.Assert().Equal(3, agg.TotalQuizzes)
	s.Assert().Equal(90, agg.TotalScore)
	s.Assert().InDelta(30.0, agg.AverageScore, 0.001)
	s.Assert().Equal(5, agg.TotalCorrectAnswers)
	s.Assert().Equal(9, agg.TotalQuestions)
}

func (s *StatsRepositorySuite) TestTopicBreakdown_OrderedByTopic() {
	userID := testutil.InsertUser(s.T(), s.db, "alice")
	networks := seedQuiz(s.T(), s.db, models.TopicNetworks, 10)
	algorithms := seedQuiz(s.T(), s.db, models.TopicAlgorithms, 10)

	s.submit(userID, networks, 10, 1)
	s.submit(userID, networks, 0, 0)
	s.submit(userID, algorithms, 10, 1)

	breakdown, err := s.repo.TopicBreakdown(context.Background(), userID)
	s.Require().NoError(err)
	s.Require().Len(breakdown, 2)
	s.Assert().Equal(models.TopicAlgorithms, breakdown[0].Topic)
	s.Assert().Equal(1, breakdown[0].Count)
	s.Assert().InDelta(10.0, breakdown[0].AverageScore, 0.001)
	s.Assert().Equal(models.TopicNetworks, breakdown[1].Topic)
	s.Assert().Equal(2, breakdown[1].Count)
	s.Assert().InDelta(5.0, breakdown[1].AverageScore, 0.001)

	empty, err := s.repo.TopicBreakdown(context.Background(), 999)
	s.Require().NoError(err)
	s.Assert().Empty(empty)
}

func (s *StatsRepositorySuite) TestLeaderboard_OrderAndTieBreak() {
	quiz := seedQuiz(s.T(), s.db, models.TopicNetworks, 10)
	low := testutil.InsertUser(s.T(), s.db, "low")
	tieA := testutil.InsertUser(s.T(), s.db, "tie_a")
	high := testutil.InsertUser(s.T(), s.db, "high")
	tieB := testutil.InsertUser(s.T(), s.db, "tie_b")

	s.submit(low, quiz, 5, 0)
	s.submit(tieB, quiz, 20, 1)
	s.submit(tieA, quiz, 20, 1)
	s.submit(high, quiz, 50, 1)

	board, err := s.repo.Leaderboard(context.Background(), 10)
	s.Require().NoError(err)
	s.Require().Len(board, 4)

	s.Assert().Equal("high", board[0].Username)
	s.Assert().Equal("tie_a", board[1].Username)
	s.Assert().Equal("tie_b", board[2].Username)
	s.Assert().Equal("low", board[3].Username)
	for i := range board {
		s.Assert().Equal(i+1, board[i].Rank)
		if i > 0 {
			s.Assert().GreaterOrEqual(board[i-1].Stats.TotalScore, board[i].Stats.TotalScore)
		}
	}

	top2, err := s.repo.Leaderboard(context.Background(), 2)
	s.Require().NoError(err)
	s.Assert().Len(top2, 2)
}

func TestStatsRepositorySuite(t *testing.T) {
	suite.Run(t, new(StatsRepositorySuite))
}
