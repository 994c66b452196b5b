// Package scoring grades a quiz submission. It is pure: no storage and no
// side effects.
package scoring

import "github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"

type Result struct {
	Answers          []models.AnswerRecord
	Score            int
	CorrectAnswers   int
	TotalQuestions   int
	ExperienceGained int
}

// Score matches answers to quiz questions by position. Only the prefix of
// questions that received an answer is graded; answers past the last question
// are ignored. A missing or out-of-range selection is simply incorrect.
func Score(quiz models.Quiz, answers []models.SubmittedAnswer) Result {
	res := Result{TotalQuestions: len(quiz.Questions)}

	n := len(answers)
	if n > len(quiz.Questions) {
		n = len(quiz.Questions)
	}
	res.Answers = make([]models.AnswerRecord, 0, n)

	for i := 0; i < n; i++ {
		q := quiz.Questions[i]
		a := answers[i]

		correct := isCorrect(q, a.SelectedOption)
		if correct {
			res.CorrectAnswers++
			res.Score += q.EffectivePoints()
		}

		timeSpent := a.TimeSpent
		if timeSpent < 0 {
			timeSpent = 0
		}
		res.Answers = append(res.Answers, models.AnswerRecord{
			QuestionID:     q.ID,
			SelectedOption: a.SelectedOption,
			IsCorrect:      correct,
			TimeSpent:      timeSpent,
		})
	}

	res.ExperienceGained = res.Score
	return res
}

func isCorrect(q models.Question, selected *int) bool {
	if selected == nil {
		return false
	}
	idx := *selected
	if idx < 0 || idx >= len(q.Options) {
		return false
	}
	return q.Options[idx].IsCorrect
}
