package scoring_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/scoring"
)

func question(id int64, points int, correctIdx, numOptions int) models.Question {
	opts := make([]models.Option, numOptions)
	for i := range opts {
		opts[i] = models.Option{Text: "opt", IsCorrect: i == correctIdx}
	}
	return models.Question{ID: id, Difficulty: models.DifficultyEasy, Points: points, Options: opts}
}

func pick(i int) *int { return &i }

func TestScore_TruncatesToSubmittedPrefix(t *testing.T) {
	quiz := models.Quiz{Questions: []models.Question{
		question(1, 10, 0, 2),
		question(2, 20, 1, 2),
		question(3, 30, 0, 2),
	}}

	res := scoring.Score(quiz, []models.SubmittedAnswer{
		{SelectedOption: pick(0), TimeSpent: 4},
		{SelectedOption: pick(1)},
	})

	assert.Equal(t, 30, res.Score)
	assert.Equal(t, 2, res.CorrectAnswers)
	assert.Equal(t, 3, res.TotalQuestions)
	assert.Equal(t, 30, res.ExperienceGained)
	require.Len(t, res.Answers, 2)
	assert.Equal(t, int64(1), res.Answers[0].QuestionID)
	assert.Equal(t, 4, res.Answers[0].TimeSpent)
	assert.Equal(t, 0, res.Answers[1].TimeSpent)
}

func TestScore_OutOfRangeSelectionIsIncorrect(t *testing.T) {
	quiz := models.Quiz{Questions: []models.Question{question(1, 10, 0, 2)}}

	for _, sel := range []*int{pick(99), pick(-1), nil} {
		var res scoring.Result
		require.NotPanics(t, func() {
			res = scoring.Score(quiz, []models.SubmittedAnswer{{SelectedOption: sel}})
		})
		require.Len(t, res.Answers, 1)
		assert.False(t, res.Answers[0].IsCorrect)
		assert.Zero(t, res.Score)
		assert.Zero(t, res.CorrectAnswers)
	}
}

func TestScore_ExtraAnswersIgnored(t *testing.T) {
	quiz := models.Quiz{Questions: []models.Question{question(1, 10, 0, 2)}}

	res := scoring.Score(quiz, []models.SubmittedAnswer{
		{SelectedOption: pick(0)},
		{SelectedOption: pick(0)},
		{SelectedOption: pick(0)},
	})

	assert.Equal(t, 10, res.Score)
	assert.Equal(t, 1, res.CorrectAnswers)
	assert.Len(t, res.Answers, 1)
}

func TestScore_DefaultPointsByDifficulty(t *testing.T) {
	quiz := models.Quiz{Questions: []models.Question{
		{ID: 1, Difficulty: models.DifficultyEasy, Options: []models.Option{{IsCorrect: true}}},
		{ID: 2, Difficulty: models.DifficultyMedium, Options: []models.Option{{IsCorrect: true}}},
		{ID: 3, Difficulty: models.DifficultyHard, Options: []models.Option{{IsCorrect: true}}},
	}}
	answers := []models.SubmittedAnswer{{SelectedOption: pick(0)}, {SelectedOption: pick(0)}, {SelectedOption: pick(0)}}

	res := scoring.Score(quiz, answers)
	assert.Equal(t, 60, res.Score)
}

func TestScore_EmptySubmission(t *testing.T) {
	quiz := models.Quiz{Questions: []models.Question{question(1, 10, 0, 2)}}

	res := scoring.Score(quiz, nil)
	assert.Zero(t, res.Score)
	assert.Equal(t, 1, res.TotalQuestions)
	assert.NotNil(t, res.Answers)
	assert.Empty(t, res.Answers)
}

// The score always equals the sum of points over exactly the positions whose
// selection hits a correct option.
func TestScore_SumsPointsOfCorrectPositions(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for iter := 0; iter < 200; iter++ {
		n := rng.Intn(8) + 1
		quiz := models.Quiz{}
		for i := 0; i < n; i++ {
			numOpts := rng.Intn(4) + 2
			quiz.Questions = append(quiz.Questions, question(int64(i+1), (rng.Intn(3)+1)*10, rng.Intn(numOpts), numOpts))
		}

		answers := make([]models.SubmittedAnswer, rng.Intn(n+3))
		want, wantCorrect := 0, 0
		for i := range answers {
			sel := rng.Intn(7) - 1
			answers[i] = models.SubmittedAnswer{SelectedOption: pick(sel)}
			if i >= n {
				continue
			}
			q := quiz.Questions[i]
			if sel >= 0 && sel < len(q.Options) && q.Options[sel].IsCorrect {
				want += q.Points
				wantCorrect++
			}
		}

		res := scoring.Score(quiz, answers)
		require.Equal(t, want, res.Score, "iteration %d", iter)
		require.Equal(t, wantCorrect, res.CorrectAnswers, "iteration %d", iter)
		require.Equal(t, n, res.TotalQuestions)
	}
}
