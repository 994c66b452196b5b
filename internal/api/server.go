package api

import (
	"context"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/auth"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	DB       Pinger
	Tokens   *auth.TokenIssuer
	AdminKey string

	UserService       services.UserService
	QuestionService   services.QuestionService
	QuizService       services.QuizService
	SubmissionService services.SubmissionService
	StatsService      services.StatsService
	FriendService     services.FriendService
	ChallengeService  services.ChallengeService
}
