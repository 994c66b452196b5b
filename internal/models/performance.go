package models

import (
	"encoding/json"
	"math"
	"time"
)

// SubmittedAnswer is one positional answer in a quiz submission.
// A nil SelectedOption means the question was skipped.
type SubmittedAnswer struct {
	SelectedOption *int `json:"selectedOption"`
	TimeSpent      int  `json:"timeSpent"`
}

// UnmarshalJSON accepts any JSON value for selectedOption. Values that are not
// integral numbers decode as no selection, so they score as incorrect instead
// of rejecting the whole submission.
func (a *SubmittedAnswer) UnmarshalJSON(data []byte) error {
	var raw struct {
		SelectedOption any `json:"selectedOption"`
		TimeSpent      int `json:"timeSpent"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	a.TimeSpent = raw.TimeSpent
	a.SelectedOption = nil
	if f, ok := raw.SelectedOption.(float64); ok && f == math.Trunc(f) && math.Abs(f) <= math.MaxInt32 {
		v := int(f)
		a.SelectedOption = &v
	}
	return nil
}

type AnswerRecord struct {
	QuestionID     int64 `json:"questionId"`
	SelectedOption *int  `json:"selectedOption"`
	IsCorrect      bool  `json:"isCorrect"`
	TimeSpent      int   `json:"timeSpent"`
}

// PerformanceRecord is an immutable ledger entry for one completed attempt.
type PerformanceRecord struct {
	ID               int64          `json:"id"`
	UserID           int64          `json:"userId"`
	QuizID           int64          `json:"quizId"`
	Answers          []AnswerRecord `json:"answers"`
	Score            int            `json:"score"`
	TotalQuestions   int            `json:"totalQuestions"`
	CorrectAnswers   int            `json:"correctAnswers"`
	TimeSpent        int            `json:"timeSpent"`
	ExperienceGained int            `json:"experienceGained"`
	AttemptToken     string         `json:"attemptToken,omitempty"`
	CompletedAt      time.Time      `json:"completedAt"`
	// ChallengeID, when set, claims the submitter's side of that challenge
	// in the same write as the attempt.
	ChallengeID int64 `json:"-"`
}

type PerformanceSummary struct {
	PerformanceID    int64          `json:"performanceId"`
	QuizID           int64          `json:"quizId"`
	Score            int            `json:"score"`
	CorrectAnswers   int            `json:"correctAnswers"`
	TotalQuestions   int            `json:"totalQuestions"`
	ExperienceGained int            `json:"experienceGained"`
	TimeSpent        int            `json:"timeSpent"`
	Answers          []AnswerRecord `json:"answers"`
	CompletedAt      time.Time      `json:"completedAt"`
}

func (p PerformanceRecord) Summary() PerformanceSummary {
	return PerformanceSummary{
		PerformanceID:    p.ID,
		QuizID:           p.QuizID,
		Score:            p.Score,
		CorrectAnswers:   p.CorrectAnswers,
		TotalQuestions:   p.TotalQuestions,
		ExperienceGained: p.ExperienceGained,
		TimeSpent:        p.TimeSpent,
		Answers:          p.Answers,
		CompletedAt:      p.CompletedAt,
	}
}

// PerformanceWithQuiz decorates a ledger entry with the quiz it was taken on.
type PerformanceWithQuiz struct {
	PerformanceRecord
	QuizTitle      string     `json:"quizTitle"`
	QuizTopic      Topic      `json:"quizTopic"`
	QuizDifficulty Difficulty `json:"quizDifficulty"`
}
