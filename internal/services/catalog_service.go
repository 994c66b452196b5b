package services

import (
	"context"
	"strings"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/errors"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/logger"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/repository"
)

const minQuestionOptions = 2

// QuestionService manages the question bank and its approval gate
type QuestionService interface {
	CreateQuestion(ctx context.Context, question models.Question) (*models.Question, error)
	ListQuestions(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error)
	ApproveQuestion(ctx context.Context, id int64) (*models.Question, error)
}

type questionService struct {
	questionRepo repository.QuestionRepository
}

// NewQuestionService creates a new QuestionService
func NewQuestionService(questionRepo repository.QuestionRepository) QuestionService {
	return &questionService{questionRepo: questionRepo}
}

// ValidateQuestion checks a question before it is stored and fills defaults.
func ValidateQuestion(q *models.Question) error {
	q.Text = strings.TrimSpace(q.Text)
	if !q.Topic.Valid() {
		return errors.NewValidationError("topic", "unknown topic")
	}
	if !q.Difficulty.ValidForQuestion() {
		return errors.NewValidationError("difficulty", "must be Easy, Medium or Hard")
	}
	if q.Text == "" {
		return errors.NewValidationError("question", "cannot be empty")
	}
	if len(q.Options) < minQuestionOptions {
		return errors.NewValidationError("options", "at least 2 options are required")
	}
	for i := range q.Options {
		q.Options[i].Text = strings.TrimSpace(q.Options[i].Text)
		if q.Options[i].Text == "" {
			return errors.NewValidationError("options", "option text cannot be empty")
		}
	}
	if q.Points <= 0 {
		q.Points = models.DefaultPoints(q.Difficulty)
	}
	if q.Tags == nil {
		q.Tags = []string{}
	}
	return nil
}

func (s *questionService) CreateQuestion(ctx context.Context, question models.Question) (*models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_service")
	log.Debug("creating question: topic=%s difficulty=%s", question.Topic, question.Difficulty)

	if err := ValidateQuestion(&question); err != nil {
		return nil, err
	}

	id, err := s.questionRepo.Create(ctx, question)
	if err != nil {
		log.Error("failed to create question: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return s.get(ctx, id)
}

func (s *questionService) ListQuestions(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_service")
	log.Debug("listing questions: topic=%s difficulty=%s", filter.Topic, filter.Difficulty)

	questions, err := s.questionRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list questions: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return questions, nil
}

// ApproveQuestion marks a question approved. Approving twice is a no-op.
func (s *questionService) ApproveQuestion(ctx context.Context, id int64) (*models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_service")
	log.Debug("approving question: id=%d", id)

	question, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if question.IsApproved {
		return question, nil
	}

	if err := s.questionRepo.Approve(ctx, id); err != nil {
		log.Error("failed to approve question: %v", err)
		return nil, errors.NewInternalError(err)
	}
	question.IsApproved = true
	return question, nil
}

func (s *questionService) get(ctx context.Context, id int64) (*models.Question, error) {
	question, err := s.questionRepo.Get(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get question %d: %v", id, err)
		return nil, errors.NewInternalError(err)
	}
	if question == nil {
		return nil, errors.NewNotFoundError("question", id)
	}
	return question, nil
}

// QuizService manages the quiz catalog
type QuizService interface {
	CreateQuiz(ctx context.Context, quiz models.Quiz) (*models.Quiz, error)
	ListQuizzes(ctx context.Context, filter models.QuizFilter) ([]models.Quiz, error)
	GetQuiz(ctx context.Context, id int64) (*models.Quiz, error)
}

// QuizReader is the read path used for quiz lookups, normally a cache.QuizCache.
type QuizReader interface {
	Get(ctx context.Context, id int64) (*models.Quiz, error)
}

type quizService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	quizzes      QuizReader
}

// NewQuizService creates a new QuizService. Reads go through quizzes.
func NewQuizService(quizRepo repository.QuizRepository, questionRepo repository.QuestionRepository, quizzes QuizReader) QuizService {
	return &quizService{quizRepo: quizRepo, questionRepo: questionRepo, quizzes: quizzes}
}

// ValidateQuiz checks quiz metadata and fills defaults. It does not check
// that the referenced questions exist.
func ValidateQuiz(q *models.Quiz) error {
	q.Title = strings.TrimSpace(q.Title)
	if q.Title == "" {
		return errors.NewValidationError("title", "cannot be empty")
	}
	if !q.Topic.Valid() {
		return errors.NewValidationError("topic", "unknown topic")
	}
	if !q.Difficulty.ValidForQuiz() {
		return errors.NewValidationError("difficulty", "must be Easy, Medium, Hard or Mixed")
	}
	if len(q.QuestionIDs) == 0 {
		return errors.NewValidationError("questions", "a quiz needs at least one question")
	}
	if q.TimeLimit <= 0 {
		q.TimeLimit = models.DefaultTimeLimit
	}
	if q.MaxAttempts <= 0 {
		q.MaxAttempts = models.DefaultMaxAttempts
	}
	return nil
}

func (s *quizService) CreateQuiz(ctx context.Context, quiz models.Quiz) (*models.Quiz, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_service")
	log.Debug("creating quiz: title=%q questions=%d", quiz.Title, len(quiz.QuestionIDs))

	if err := ValidateQuiz(&quiz); err != nil {
		return nil, err
	}

	existing, err := s.questionRepo.ExistingIDs(ctx, quiz.QuestionIDs)
	if err != nil {
		log.Error("failed to check question ids: %v", err)
		return nil, errors.NewInternalError(err)
	}
	for _, id := range quiz.QuestionIDs {
		if !existing[id] {
			return nil, errors.NewValidationError("questions", "question does not exist: "+formatID(id))
		}
	}

	id, err := s.quizRepo.Create(ctx, quiz)
	if err != nil {
		log.Error("failed to create quiz: %v", err)
		return nil, errors.NewInternalError(err)
	}

	created, err := s.quizRepo.Get(ctx, id)
	if err != nil || created == nil {
		log.Error("failed to load new quiz %d: %v", id, err)
		return nil, errors.NewInternalError(err)
	}
	return created, nil
}

func (s *quizService) ListQuizzes(ctx context.Context, filter models.QuizFilter) ([]models.Quiz, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_service")
	log.Debug("listing quizzes: topic=%s difficulty=%s", filter.Topic, filter.Difficulty)

	filter.ActiveOnly = true
	quizzes, err := s.quizRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list quizzes: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return quizzes, nil
}

func (s *quizService) GetQuiz(ctx context.Context, id int64) (*models.Quiz, error) {
	return loadQuiz(ctx, s.quizzes, id)
}

func loadQuiz(ctx context.Context, quizzes QuizReader, id int64) (*models.Quiz, error) {
	quiz, err := quizzes.Get(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get quiz %d: %v", id, err)
		return nil, errors.NewInternalError(err)
	}
	if quiz == nil {
		return nil, errors.NewNotFoundError("quiz", id)
	}
	return quiz, nil
}
