package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/repository/sqlite"
)

// seedQuiz creates approved questions worth the given points (one correct
// option at index 0 each) and a quiz over them in that order.
func seedQuiz(t *testing.T, db *sql.DB, topic models.Topic, points ...int) *models.Quiz {
	ctx := context.Background()
	questions := sqlite.NewQuestionRepository(db)
	quizzes := sqlite.NewQuizRepository(db)

	var ids []int64
	for _, p := range points {
		id, err := questions.Create(ctx, models.Question{
			Topic:      topic,
			Difficulty: models.DifficultyEasy,
			Text:       "question",
			Points:     p,
			Options: []models.Option{
				{Text: "right", IsCorrect: true},
				{Text: "wrong"},
			},
			IsApproved: true,
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	quizID, err := quizzes.Create(ctx, models.Quiz{
		Title:       string(topic) + " basics",
		Topic:       topic,
		Difficulty:  models.DifficultyMixed,
		QuestionIDs: ids,
		TimeLimit:   models.DefaultTimeLimit,
		MaxAttempts: models.DefaultMaxAttempts,
		IsActive:    true,
	})
	require.NoError(t, err)

	quiz, err := quizzes.Get(ctx, quizID)
	require.NoError(t, err)
	require.NotNil(t, quiz)
	return quiz
}

func intPtr(v int) *int { return &v }
