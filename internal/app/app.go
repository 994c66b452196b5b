// Package app wires repositories, caches and services into an API server.
package app

import (
	"database/sql"
	"time"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/api"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/auth"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/cache"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/jobs"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/repository/sqlite"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/services"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/worker"
)

type Options struct {
	JWTSecret    string
	JWTTTL       time.Duration
	AdminKey     string
	QuizCacheTTL time.Duration
}

// NewServer builds the API server over db. Leaderboard refreshes are
// submitted to pool, which the caller starts and stops.
func NewServer(db *sql.DB, opts Options, leaderboard cache.LeaderboardCache, pool *worker.Pool) *api.Server {
	userRepo := sqlite.NewUserRepository(db)
	questionRepo := sqlite.NewQuestionRepository(db)
	quizRepo := sqlite.NewQuizRepository(db)
	performanceRepo := sqlite.NewPerformanceRepository(db)
	statsRepo := sqlite.NewStatsRepository(db)
	friendRepo := sqlite.NewFriendRepository(db)
	challengeRepo := sqlite.NewChallengeRepository(db)

	quizCache := cache.NewQuizCache(quizRepo, opts.QuizCacheTTL)
	jobQueue := jobs.NewWorkerQueue(pool, statsRepo, leaderboard)
	tokens := auth.NewTokenIssuer(opts.JWTSecret, opts.JWTTTL)

	submissions := services.NewSubmissionService(quizCache, performanceRepo, leaderboard, jobQueue)

	return &api.Server{
		DB:                db,
		Tokens:            tokens,
		AdminKey:          opts.AdminKey,
		UserService:       services.NewUserService(userRepo, tokens),
		QuestionService:   services.NewQuestionService(questionRepo),
		QuizService:       services.NewQuizService(quizRepo, questionRepo, quizCache),
		SubmissionService: submissions,
		StatsService:      services.NewStatsService(statsRepo, performanceRepo, leaderboard),
		FriendService:     services.NewFriendService(friendRepo, userRepo),
		ChallengeService: services.NewChallengeService(
			challengeRepo, friendRepo, userRepo, performanceRepo, quizCache, submissions,
		),
	}
}
