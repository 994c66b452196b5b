package models

import "time"

const (
	DefaultTimeLimit   = 30
	DefaultMaxAttempts = 3
)

type Quiz struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Topic       Topic      `json:"topic"`
	Difficulty  Difficulty `json:"difficulty"`
	QuestionIDs []int64    `json:"-"`
	Questions   []Question `json:"questions"`
	TimeLimit   int        `json:"timeLimit"`
	MaxAttempts int        `json:"maxAttempts"`
	IsActive    bool       `json:"isActive"`
	CreatedBy   *int64     `json:"createdBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type QuizFilter struct {
	Topic      string
	Difficulty string
	ActiveOnly bool
}
