package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/errors"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/testutil/mocks"
)

func validQuestion() models.Question {
	return models.Question{
		Topic:      models.TopicNetworks,
		Difficulty: models.DifficultyMedium,
		Text:       "Which layer does TCP live in?",
		Options:    []models.Option{{Text: "Transport", IsCorrect: true}, {Text: "Link"}},
	}
}

func TestCreateQuestion_DefaultsPoints(t *testing.T) {
	repo := new(mocks.MockQuestionRepository)
	svc := NewQuestionService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(q models.Question) bool {
		return q.Points == 20 && q.Tags != nil
	})).Return(int64(5), nil)
	repo.On("Get", mock.Anything, int64(5)).Return(&models.Question{ID: 5, Points: 20}, nil)

	q, err := svc.CreateQuestion(context.Background(), validQuestion())
	require.NoError(t, err)
	assert.Equal(t, int64(5), q.ID)
	repo.AssertExpectations(t)
}

func TestCreateQuestion_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Question)
	}{
		{"unknown topic", func(q *models.Question) { q.Topic = "Astrology" }},
		{"mixed difficulty", func(q *models.Question) { q.Difficulty = models.DifficultyMixed }},
		{"empty text", func(q *models.Question) { q.Text = "  " }},
		{"one option", func(q *models.Question) { q.Options = q.Options[:1] }},
		{"blank option", func(q *models.Question) { q.Options[1].Text = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockQuestionRepository)
			svc := NewQuestionService(repo)
			q := validQuestion()
			tt.mutate(&q)

			_, err := svc.CreateQuestion(context.Background(), q)
			assert.True(t, errors.IsCode(err, errors.ErrCodeValidation), "got %v", err)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestApproveQuestion(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		repo := new(mocks.MockQuestionRepository)
		svc := NewQuestionService(repo)
		repo.On("Get", mock.Anything, int64(1)).Return(nil, nil)

		_, err := svc.ApproveQuestion(context.Background(), 1)
		assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
	})

	t.Run("approves pending question", func(t *testing.T) {
		repo := new(mocks.MockQuestionRepository)
		svc := NewQuestionService(repo)
		repo.On("Get", mock.Anything, int64(2)).Return(&models.Question{ID: 2}, nil)
		repo.On("Approve", mock.Anything, int64(2)).Return(nil)

		q, err := svc.ApproveQuestion(context.Background(), 2)
		require.NoError(t, err)
		assert.True(t, q.IsApproved)
		repo.AssertExpectations(t)
	})

	t.Run("already approved stays approved", func(t *testing.T) {
		repo := new(mocks.MockQuestionRepository)
		svc := NewQuestionService(repo)
		repo.On("Get", mock.Anything, int64(3)).Return(&models.Question{ID: 3, IsApproved: true}, nil)

		q, err := svc.ApproveQuestion(context.Background(), 3)
		require.NoError(t, err)
		assert.True(t, q.IsApproved)
		repo.AssertNotCalled(t, "Approve", mock.Anything, mock.Anything)
	})
}

func TestCreateQuiz(t *testing.T) {
	quiz := models.Quiz{
		Title:       "Networking basics",
		Topic:       models.TopicNetworks,
		Difficulty:  models.DifficultyMixed,
		QuestionIDs: []int64{1, 2},
	}

	t.Run("unknown question", func(t *testing.T) {
		quizRepo := new(mocks.MockQuizRepository)
		questionRepo := new(mocks.MockQuestionRepository)
		svc := NewQuizService(quizRepo, questionRepo, quizRepo)
		questionRepo.On("ExistingIDs", mock.Anything, []int64{1, 2}).Return(map[int64]bool{1: true}, nil)

		_, err := svc.CreateQuiz(context.Background(), quiz)
		assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
		quizRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("fills defaults", func(t *testing.T) {
		quizRepo := new(mocks.MockQuizRepository)
		questionRepo := new(mocks.MockQuestionRepository)
		svc := NewQuizService(quizRepo, questionRepo, quizRepo)
		questionRepo.On("ExistingIDs", mock.Anything, []int64{1, 2}).Return(map[int64]bool{1: true, 2: true}, nil)
		quizRepo.On("Create", mock.Anything, mock.MatchedBy(func(q models.Quiz) bool {
			return q.TimeLimit == models.DefaultTimeLimit && q.MaxAttempts == models.DefaultMaxAttempts
		})).Return(int64(10), nil)
		quizRepo.On("Get", mock.Anything, int64(10)).Return(&models.Quiz{ID: 10, Title: quiz.Title}, nil)

		created, err := svc.CreateQuiz(context.Background(), quiz)
		require.NoError(t, err)
		assert.Equal(t, int64(10), created.ID)
		quizRepo.AssertExpectations(t)
	})

	t.Run("missing title", func(t *testing.T) {
		svc := NewQuizService(new(mocks.MockQuizRepository), new(mocks.MockQuestionRepository), new(mocks.MockQuizRepository))
		bad := quiz
		bad.Title = ""
		_, err := svc.CreateQuiz(context.Background(), bad)
		assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
	})
}

func TestListQuizzes_ActiveOnly(t *testing.T) {
	quizRepo := new(mocks.MockQuizRepository)
	svc := NewQuizService(quizRepo, new(mocks.MockQuestionRepository), quizRepo)

	quizRepo.On("List", mock.Anything, models.QuizFilter{Topic: "Databases", ActiveOnly: true}).Return([]models.Quiz{{ID: 1}}, nil)

	quizzes, err := svc.ListQuizzes(context.Background(), models.QuizFilter{Topic: "Databases"})
	require.NoError(t, err)
	assert.Len(t, quizzes, 1)
	quizRepo.AssertExpectations(t)
}

func TestGetQuiz_NotFound(t *testing.T) {
	quizRepo := new(mocks.MockQuizRepository)
	svc := NewQuizService(quizRepo, new(mocks.MockQuestionRepository), quizRepo)
	quizRepo.On("Get", mock.Anything, int64(404)).Return(nil, nil)

	_, err := svc.GetQuiz(context.Background(), 404)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}
