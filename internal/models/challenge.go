package models

import "time"

type ChallengeStatus string

const (
	ChallengePending   ChallengeStatus = "pending"
	ChallengeAccepted  ChallengeStatus = "accepted"
	ChallengeDeclined  ChallengeStatus = "declined"
	ChallengeCompleted ChallengeStatus = "completed"
)

// Challenge pairs two users against the same quiz.
type Challenge struct {
	ID                      int64           `json:"id"`
	ChallengerID            int64           `json:"challengerId"`
	OpponentID              int64           `json:"opponentId"`
	QuizID                  int64           `json:"quizId"`
	Message                 string          `json:"message,omitempty"`
	Status                  ChallengeStatus `json:"status"`
	ChallengerPerformanceID *int64          `json:"challengerPerformanceId,omitempty"`
	OpponentPerformanceID   *int64          `json:"opponentPerformanceId,omitempty"`
	WinnerID                *int64          `json:"winnerId,omitempty"`
	CreatedAt               time.Time       `json:"createdAt"`
	UpdatedAt               time.Time       `json:"updatedAt"`
}

// IsParticipant reports whether userID is one of the two sides.
func (c Challenge) IsParticipant(userID int64) bool {
	return c.ChallengerID == userID || c.OpponentID == userID
}

// Draw reports whether a completed challenge ended level.
func (c Challenge) Draw() bool {
	return c.Status == ChallengeCompleted && c.WinnerID == nil
}

type ChallengeDetail struct {
	Challenge
	QuizTitle         string              `json:"quizTitle"`
	ChallengerSummary *PerformanceSummary `json:"challengerSummary,omitempty"`
	OpponentSummary   *PerformanceSummary `json:"opponentSummary,omitempty"`
}
