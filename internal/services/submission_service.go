package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/cache"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/errors"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/jobs"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/logger"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/repository"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/scoring"
)

// Submission is one completed quiz attempt as sent by a client.
type Submission struct {
	UserID    int64
	QuizID    int64
	Answers   []models.SubmittedAnswer
	TimeSpent int
	// AttemptToken is an optional client-generated UUID. A repeated token
	// returns the stored result instead of recording a second attempt.
	AttemptToken string
	// ChallengeID ties the attempt to one side of an accepted challenge.
	ChallengeID int64
}

// SubmissionService grades attempts and records them in the ledger
type SubmissionService interface {
	SubmitQuizAttempt(ctx context.Context, sub Submission) (*models.PerformanceSummary, error)
}

type submissionService struct {
	quizzes          QuizReader
	performanceRepo  repository.PerformanceRepository
	leaderboardCache cache.LeaderboardCache
	jobQueue         jobs.JobQueue
	clock            func() time.Time
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(
	quizzes QuizReader,
	performanceRepo repository.PerformanceRepository,
	leaderboardCache cache.LeaderboardCache,
	jobQueue jobs.JobQueue,
) SubmissionService {
	return &submissionService{
		quizzes:          quizzes,
		performanceRepo:  performanceRepo,
		leaderboardCache: leaderboardCache,
		jobQueue:         jobQueue,
		clock:            time.Now,
	}
}

func (s *submissionService) SubmitQuizAttempt(ctx context.Context, sub Submission) (*models.PerformanceSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("submission_service")
	log.Debug("submitting attempt: user_id=%d quiz_id=%d answers=%d", sub.UserID, sub.QuizID, len(sub.Answers))

	if sub.AttemptToken != "" {
		if _, err := uuid.Parse(sub.AttemptToken); err != nil {
			return nil, errors.NewValidationError("attemptToken", "must be a UUID")
		}
		if summary, err := s.findAttempt(ctx, sub); summary != nil || err != nil {
			return summary, err
		}
	}

	quiz, err := loadQuiz(ctx, s.quizzes, sub.QuizID)
	if err != nil {
		return nil, err
	}

	result := scoring.Score(*quiz, sub.Answers)

	timeSpent := sub.TimeSpent
	if timeSpent <= 0 {
		timeSpent = 0
		for _, a := range result.Answers {
			timeSpent += a.TimeSpent
		}
	}

	record := models.PerformanceRecord{
		UserID:           sub.UserID,
		QuizID:           quiz.ID,
		Answers:          result.Answers,
		Score:            result.Score,
		TotalQuestions:   result.TotalQuestions,
		CorrectAnswers:   result.CorrectAnswers,
		TimeSpent:        timeSpent,
		ExperienceGained: result.ExperienceGained,
		AttemptToken:     sub.AttemptToken,
		CompletedAt:      s.clock().UTC(),
		ChallengeID:      sub.ChallengeID,
	}

	id, err := s.performanceRepo.CreateWithStats(ctx, record)
	if err != nil {
		if stderrors.Is(err, repository.ErrChallengeSideTaken) {
			return nil, errors.NewDuplicateError("challenge already submitted")
		}
		if stderrors.Is(err, repository.ErrDuplicate) && sub.AttemptToken != "" {
			// A concurrent request with the same token won the insert.
			log.Info("attempt token already recorded: user_id=%d", sub.UserID)
			if summary, err := s.findAttempt(ctx, sub); summary != nil || err != nil {
				return summary, err
			}
		}
		log.Error("failed to record attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}
	record.ID = id

	s.afterCommit(ctx)

	log.Info("attempt recorded: id=%d user_id=%d quiz_id=%d score=%d/%d",
		id, sub.UserID, quiz.ID, result.CorrectAnswers, result.TotalQuestions)
	summary := record.Summary()
	return &summary, nil
}

// findAttempt returns the stored summary for the submission's token, if any.
func (s *submissionService) findAttempt(ctx context.Context, sub Submission) (*models.PerformanceSummary, error) {
	existing, err := s.performanceRepo.FindByAttemptToken(ctx, sub.UserID, sub.AttemptToken)
	if err != nil {
		logger.FromContext(ctx).Error("failed to look up attempt token: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if existing == nil {
		return nil, nil
	}
	if existing.QuizID != sub.QuizID {
		return nil, errors.NewDuplicateError("attempt token already used for another quiz")
	}
	summary := existing.Summary()
	return &summary, nil
}

// afterCommit drops the stale leaderboard and schedules a rebuild. Both steps
// are best effort: the ledger is already committed.
func (s *submissionService) afterCommit(ctx context.Context) {
	log := logger.FromContext(ctx).WithPrefix("submission_service")

	if err := s.leaderboardCache.Invalidate(ctx); err != nil {
		log.Warn("failed to invalidate leaderboard cache: %v", err)
	}
	if err := s.jobQueue.EnqueueLeaderboardRefresh(); err != nil {
		log.Warn("failed to enqueue leaderboard refresh: %v", err)
	}
}
