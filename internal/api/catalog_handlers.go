package api

import (
	"net/http"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"
)

type questionRequest struct {
	Topic       models.Topic      `json:"topic"`
	Difficulty  models.Difficulty `json:"difficulty"`
	Question    string            `json:"question"`
	Options     []models.Option   `json:"options"`
	Points      int               `json:"points"`
	Explanation string            `json:"explanation"`
	Tags        []string          `json:"tags"`
}

func (req questionRequest) toModel(createdBy int64) models.Question {
	return models.Question{
		Topic:       req.Topic,
		Difficulty:  req.Difficulty,
		Text:        req.Question,
		Options:     req.Options,
		Points:      req.Points,
		Explanation: req.Explanation,
		Tags:        req.Tags,
		CreatedBy:   &createdBy,
	}
}

type quizRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Topic       models.Topic      `json:"topic"`
	Difficulty  models.Difficulty `json:"difficulty"`
	Questions   []int64           `json:"questions"`
	TimeLimit   int               `json:"timeLimit"`
	MaxAttempts int               `json:"maxAttempts"`
	IsActive    *bool             `json:"isActive"`
}

func (s *Server) handleListQuizzes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	quizzes, err := s.QuizService.ListQuizzes(r.Context(), models.QuizFilter{
		Topic:      q.Get("topic"),
		Difficulty: q.Get("difficulty"),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, quizzes)
}

func (s *Server) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	quiz, err := s.QuizService.GetQuiz(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, quiz)
}

func (s *Server) handleCreateQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	createdBy := userIDFromContext(r.Context())
	quiz := models.Quiz{
		Title:       req.Title,
		Description: req.Description,
		Topic:       req.Topic,
		Difficulty:  req.Difficulty,
		QuestionIDs: req.Questions,
		TimeLimit:   req.TimeLimit,
		MaxAttempts: req.MaxAttempts,
		IsActive:    req.IsActive == nil || *req.IsActive,
		CreatedBy:   &createdBy,
	}

	created, err := s.QuizService.CreateQuiz(r.Context(), quiz)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}

// handleProposeQuestion stores a question that waits for admin approval.
func (s *Server) handleProposeQuestion(w http.ResponseWriter, r *http.Request) {
	s.createQuestion(w, r, false)
}

func (s *Server) handleAdminCreateQuestion(w http.ResponseWriter, r *http.Request) {
	s.createQuestion(w, r, true)
}

func (s *Server) createQuestion(w http.ResponseWriter, r *http.Request, approved bool) {
	var req questionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	question := req.toModel(userIDFromContext(r.Context()))
	question.IsApproved = approved

	created, err := s.QuestionService.CreateQuestion(r.Context(), question)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}

func (s *Server) handleAdminListQuestions(w http.ResponseWriter, r *http.Request) {
	approved, err := optionalBoolQuery(r, "approved")
	if err != nil {
		handleError(w, r, err)
		return
	}

	q := r.URL.Query()
	questions, err := s.QuestionService.ListQuestions(r.Context(), models.QuestionFilter{
		Topic:      q.Get("topic"),
		Difficulty: q.Get("difficulty"),
		Approved:   approved,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, questions)
}

func (s *Server) handleApproveQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	question, err := s.QuestionService.ApproveQuestion(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, question)
}
