package api

import (
	"net/http"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/errors"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/services"
)

type submitRequest struct {
	QuizID       int64                    `json:"quizId"`
	Answers      []models.SubmittedAnswer `json:"answers"`
	TimeSpent    int                      `json:"timeSpent"`
	AttemptToken string                   `json:"attemptToken"`
}

func (s *Server) handleSubmitQuiz(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.QuizID <= 0 {
		handleError(w, r, errors.NewValidationError("quizId", "is required"))
		return
	}

	summary, err := s.SubmissionService.SubmitQuizAttempt(r.Context(), services.Submission{
		UserID:       userIDFromContext(r.Context()),
		QuizID:       req.QuizID,
		Answers:      req.Answers,
		TimeSpent:    req.TimeSpent,
		AttemptToken: req.AttemptToken,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, summary)
}

func (s *Server) handleListPerformances(w http.ResponseWriter, r *http.Request) {
	records, err := s.StatsService.ListPerformances(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, records)
}

func (s *Server) handlePerformanceStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.StatsService.GetPerformanceStats(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit", services.DefaultLeaderboardLimit)
	if err != nil {
		handleError(w, r, err)
		return
	}

	entries, err := s.StatsService.GetLeaderboard(r.Context(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, entries)
}
