package repository

import (
	"context"
	"errors"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"
)

// ErrDuplicate is returned when a write conflicts with a uniqueness rule.
var ErrDuplicate = errors.New("duplicate record")

// ErrChallengeSideTaken is returned when an attempt tries to claim a challenge
// side that is already recorded or a challenge that is not accepted.
var ErrChallengeSideTaken = errors.New("challenge side already recorded")

// UserRepository handles account data access
type UserRepository interface {
	Create(ctx context.Context, user models.User) (int64, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	Search(ctx context.Context, query string, limit int) ([]models.UserSummary, error)
	UpdateProfile(ctx context.Context, id int64, profile models.Profile) error
}

// QuestionRepository handles question bank access
type QuestionRepository interface {
	Create(ctx context.Context, question models.Question) (int64, error)
	Get(ctx context.Context, id int64) (*models.Question, error)
	List(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error)
	Approve(ctx context.Context, id int64) error
	ExistingIDs(ctx context.Context, ids []int64) (map[int64]bool, error)
}

// QuizRepository handles quiz catalog access
type QuizRepository interface {
	Create(ctx context.Context, quiz models.Quiz) (int64, error)
	Get(ctx context.Context, id int64) (*models.Quiz, error)
	List(ctx context.Context, filter models.QuizFilter) ([]models.Quiz, error)
}

// PerformanceRepository is the append-only attempt ledger
type PerformanceRepository interface {
	// CreateWithStats stores the record and increments the user's counters
	// in one transaction. ErrDuplicate means the attempt token was already used.
	// A record with ChallengeID also claims that challenge side in the same
	// transaction; ErrChallengeSideTaken rolls the whole attempt back.
	CreateWithStats(ctx context.Context, record models.PerformanceRecord) (int64, error)
	Get(ctx context.Context, id int64) (*models.PerformanceRecord, error)
	FindByAttemptToken(ctx context.Context, userID int64, token string) (*models.PerformanceRecord, error)
	ListByUser(ctx context.Context, userID int64) ([]models.PerformanceWithQuiz, error)
}

// StatsRepository computes read-side aggregates over the ledger
type StatsRepository interface {
	Aggregate(ctx context.Context, userID int64) (*models.AggregateStats, error)
	TopicBreakdown(ctx context.Context, userID int64) ([]models.TopicStat, error)
	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
}

// FriendRepository handles friend requests and the friendship relation
type FriendRepository interface {
	// CreateRequest returns ErrDuplicate when any request already exists
	// between the two users, in either direction.
	CreateRequest(ctx context.Context, senderID, receiverID int64, message string) (*models.FriendRequest, error)
	GetRequest(ctx context.Context, id int64) (*models.FriendRequest, error)
	// Respond moves a pending request to status and, on acceptance, adds
	// both friendship edges. A request already in status is re-applied.
	// It reports false when the request is in the other terminal state.
	Respond(ctx context.Context, id int64, status models.FriendRequestStatus) (bool, error)
	ListPending(ctx context.Context, receiverID int64) ([]models.PendingFriendRequest, error)
	ListFriends(ctx context.Context, userID int64) ([]models.UserSummary, error)
	AreFriends(ctx context.Context, userID, otherID int64) (bool, error)
}

// ChallengeRepository handles head-to-head challenges
type ChallengeRepository interface {
	Create(ctx context.Context, challenge models.Challenge) (int64, error)
	Get(ctx context.Context, id int64) (*models.Challenge, error)
	// Transition moves a challenge from one status to another and reports
	// whether the row was in the expected status.
	Transition(ctx context.Context, id int64, from, to models.ChallengeStatus) (bool, error)
	Complete(ctx context.Context, id int64, winnerID *int64) error
	ListActive(ctx context.Context, userID int64) ([]models.Challenge, error)
}
