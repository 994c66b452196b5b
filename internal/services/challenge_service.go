package services

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/errors"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/logger"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/repository"
)

// ChallengeService pairs two friends against the same quiz
type ChallengeService interface {
	Invite(ctx context.Context, challengerID, opponentID, quizID int64, message string) (*models.Challenge, error)
	Respond(ctx context.Context, challengeID, actingUserID int64, accept bool) (*models.Challenge, error)
	Submit(ctx context.Context, challengeID, actingUserID int64, answers []models.SubmittedAnswer, timeSpent int) (*models.ChallengeDetail, error)
	ListActive(ctx context.Context, userID int64) ([]models.Challenge, error)
	Get(ctx context.Context, challengeID, actingUserID int64) (*models.ChallengeDetail, error)
}

type challengeService struct {
	challengeRepo   repository.ChallengeRepository
	friendRepo      repository.FriendRepository
	userRepo        repository.UserRepository
	performanceRepo repository.PerformanceRepository
	quizzes         QuizReader
	submissions     SubmissionService
}

// NewChallengeService creates a new ChallengeService
func NewChallengeService(
	challengeRepo repository.ChallengeRepository,
	friendRepo repository.FriendRepository,
	userRepo repository.UserRepository,
	performanceRepo repository.PerformanceRepository,
	quizzes QuizReader,
	submissions SubmissionService,
) ChallengeService {
	return &challengeService{
		challengeRepo:   challengeRepo,
		friendRepo:      friendRepo,
		userRepo:        userRepo,
		performanceRepo: performanceRepo,
		quizzes:         quizzes,
		submissions:     submissions,
	}
}

func (s *challengeService) Invite(ctx context.Context, challengerID, opponentID, quizID int64, message string) (*models.Challenge, error) {
	log := logger.FromContext(ctx).WithPrefix("challenge_service")
	log.Debug("inviting: challenger=%d opponent=%d quiz=%d", challengerID, opponentID, quizID)

	if challengerID == opponentID {
		return nil, errors.NewValidationError("opponentId", "cannot challenge yourself")
	}

	opponent, err := s.userRepo.Get(ctx, opponentID)
	if err != nil {
		log.Error("failed to get opponent: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if opponent == nil {
		return nil, errors.NewNotFoundError("user", opponentID)
	}

	if _, err := loadQuiz(ctx, s.quizzes, quizID); err != nil {
		return nil, err
	}

	friends, err := s.friendRepo.AreFriends(ctx, challengerID, opponentID)
	if err != nil {
		log.Error("failed to check friendship: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if !friends {
		return nil, errors.NewValidationError("opponentId", "you can only challenge friends")
	}

	id, err := s.challengeRepo.Create(ctx, models.Challenge{
		ChallengerID: challengerID,
		OpponentID:   opponentID,
		QuizID:       quizID,
		Message:      strings.TrimSpace(message),
		Status:       models.ChallengePending,
	})
	if err != nil {
		log.Error("failed to create challenge: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("challenge created: id=%d", id)
	return s.load(ctx, id)
}

func (s *challengeService) Respond(ctx context.Context, challengeID, actingUserID int64, accept bool) (*models.Challenge, error) {
	log := logger.FromContext(ctx).WithPrefix("challenge_service")
	log.Debug("responding to challenge: id=%d user=%d accept=%t", challengeID, actingUserID, accept)

	challenge, err := s.load(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if challenge.OpponentID != actingUserID {
		return nil, errors.NewForbiddenError("only the opponent can respond to this challenge")
	}

	to := models.ChallengeDeclined
	if accept {
		to = models.ChallengeAccepted
	}

	moved, err := s.challengeRepo.Transition(ctx, challengeID, models.ChallengePending, to)
	if err != nil {
		log.Error("failed to transition challenge: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if !moved {
		return nil, errors.NewValidationError("status", "challenge is no longer pending")
	}

	challenge.Status = to
	return challenge, nil
}

// Submit runs the normal submission pipeline for one side of an accepted
// challenge. The second submission completes the challenge.
func (s *challengeService) Submit(ctx context.Context, challengeID, actingUserID int64, answers []models.SubmittedAnswer, timeSpent int) (*models.ChallengeDetail, error) {
	log := logger.FromContext(ctx).WithPrefix("challenge_service")
	log.Debug("challenge submission: id=%d user=%d", challengeID, actingUserID)

	challenge, err := s.load(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if !challenge.IsParticipant(actingUserID) {
		return nil, errors.NewForbiddenError("not a participant in this challenge")
	}
	if challenge.Status != models.ChallengeAccepted {
		return nil, errors.NewValidationError("status", "challenge is not accepted")
	}
	if sidePerformance(challenge, actingUserID) != nil {
		return nil, errors.NewDuplicateError("challenge already submitted")
	}

	// The attempt and the side claim commit together, so a losing concurrent
	// submission records nothing.
	if _, err := s.submissions.SubmitQuizAttempt(ctx, Submission{
		UserID:      actingUserID,
		QuizID:      challenge.QuizID,
		Answers:     answers,
		TimeSpent:   timeSpent,
		ChallengeID: challengeID,
	}); err != nil {
		return nil, err
	}

	challenge, err = s.load(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if challenge.ChallengerPerformanceID != nil && challenge.OpponentPerformanceID != nil {
		if err := s.complete(ctx, challenge); err != nil {
			return nil, err
		}
	}

	return s.detail(ctx, challenge)
}

func (s *challengeService) complete(ctx context.Context, challenge *models.Challenge) error {
	log := logger.FromContext(ctx).WithPrefix("challenge_service")

	challenger, err := s.performance(ctx, *challenge.ChallengerPerformanceID)
	if err != nil {
		return err
	}
	opponent, err := s.performance(ctx, *challenge.OpponentPerformanceID)
	if err != nil {
		return err
	}

	var winner *int64
	switch {
	case challenger.Score > opponent.Score:
		winner = &challenge.ChallengerID
	case opponent.Score > challenger.Score:
		winner = &challenge.OpponentID
	}

	if err := s.challengeRepo.Complete(ctx, challenge.ID, winner); err != nil {
		log.Error("failed to complete challenge: %v", err)
		return errors.NewInternalError(err)
	}

	challenge.Status = models.ChallengeCompleted
	challenge.WinnerID = winner
	log.Info("challenge completed: id=%d draw=%t", challenge.ID, winner == nil)
	return nil
}

func (s *challengeService) ListActive(ctx context.Context, userID int64) ([]models.Challenge, error) {
	log := logger.FromContext(ctx).WithPrefix("challenge_service")
	log.Debug("listing active challenges: user=%d", userID)

	challenges, err := s.challengeRepo.ListActive(ctx, userID)
	if err != nil {
		log.Error("failed to list challenges: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if challenges == nil {
		challenges = []models.Challenge{}
	}
	return challenges, nil
}

func (s *challengeService) Get(ctx context.Context, challengeID, actingUserID int64) (*models.ChallengeDetail, error) {
	challenge, err := s.load(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if !challenge.IsParticipant(actingUserID) {
		return nil, errors.NewForbiddenError("not a participant in this challenge")
	}
	return s.detail(ctx, challenge)
}

func (s *challengeService) detail(ctx context.Context, challenge *models.Challenge) (*models.ChallengeDetail, error) {
	d := &models.ChallengeDetail{Challenge: *challenge}

	if quiz, err := loadQuiz(ctx, s.quizzes, challenge.QuizID); err == nil {
		d.QuizTitle = quiz.Title
	} else if !errors.IsCode(err, errors.ErrCodeNotFound) {
		return nil, err
	}

	if challenge.ChallengerPerformanceID != nil {
		p, err := s.performance(ctx, *challenge.ChallengerPerformanceID)
		if err != nil {
			return nil, err
		}
		summary := p.Summary()
		d.ChallengerSummary = &summary
	}
	if challenge.OpponentPerformanceID != nil {
		p, err := s.performance(ctx, *challenge.OpponentPerformanceID)
		if err != nil {
			return nil, err
		}
		summary := p.Summary()
		d.OpponentSummary = &summary
	}
	return d, nil
}

func (s *challengeService) load(ctx context.Context, id int64) (*models.Challenge, error) {
	challenge, err := s.challengeRepo.Get(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get challenge %d: %v", id, err)
		return nil, errors.NewInternalError(err)
	}
	if challenge == nil {
		return nil, errors.NewNotFoundError("challenge", id)
	}
	return challenge, nil
}

func (s *challengeService) performance(ctx context.Context, id int64) (*models.PerformanceRecord, error) {
	p, err := s.performanceRepo.Get(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get performance %d: %v", id, err)
		return nil, errors.NewInternalError(err)
	}
	if p == nil {
		return nil, errors.NewInternalError(stderrors.New("performance missing: " + formatID(id)))
	}
	return p, nil
}

func sidePerformance(c *models.Challenge, userID int64) *int64 {
	if userID == c.ChallengerID {
		return c.ChallengerPerformanceID
	}
	return c.OpponentPerformanceID
}
