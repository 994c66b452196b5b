package api

import (
	"net/http"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/errors"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/models"
)

type friendRequestBody struct {
	ReceiverID int64  `json:"receiverId"`
	Message    string `json:"message"`
}

type friendRespondBody struct {
	RequestID int64               `json:"requestId"`
	Action    models.FriendAction `json:"action"`
}

type challengeInviteBody struct {
	OpponentID int64  `json:"opponentId"`
	QuizID     int64  `json:"quizId"`
	Message    string `json:"message"`
}

type challengeRespondBody struct {
	Accept *bool `json:"accept"`
}

type challengeSubmitBody struct {
	Answers   []models.SubmittedAnswer `json:"answers"`
	TimeSpent int                      `json:"timeSpent"`
}

func (s *Server) handleSendFriendRequest(w http.ResponseWriter, r *http.Request) {
	var body friendRequestBody
	if err := decodeJSON(w, r, &body); err != nil {
		handleError(w, r, err)
		return
	}
	if body.ReceiverID <= 0 {
		handleError(w, r, errors.NewValidationError("receiverId", "is required"))
		return
	}

	req, err := s.FriendService.SendFriendRequest(r.Context(), userIDFromContext(r.Context()), body.ReceiverID, body.Message)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, req)
}

func (s *Server) handlePendingFriendRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := s.FriendService.ListPendingRequests(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, reqs)
}

func (s *Server) handleRespondFriendRequest(w http.ResponseWriter, r *http.Request) {
	var body friendRespondBody
	if err := decodeJSON(w, r, &body); err != nil {
		handleError(w, r, err)
		return
	}
	if body.RequestID <= 0 {
		handleError(w, r, errors.NewValidationError("requestId", "is required"))
		return
	}

	req, err := s.FriendService.RespondToFriendRequest(r.Context(), body.RequestID, userIDFromContext(r.Context()), body.Action)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, req)
}

func (s *Server) handleListFriends(w http.ResponseWriter, r *http.Request) {
	friends, err := s.FriendService.ListFriends(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, friends)
}

func (s *Server) handleInviteChallenge(w http.ResponseWriter, r *http.Request) {
	var body challengeInviteBody
	if err := decodeJSON(w, r, &body); err != nil {
		handleError(w, r, err)
		return
	}
	if body.OpponentID <= 0 || body.QuizID <= 0 {
		handleError(w, r, errors.NewValidationError("challenge", "opponentId and quizId are required"))
		return
	}

	challenge, err := s.ChallengeService.Invite(r.Context(), userIDFromContext(r.Context()), body.OpponentID, body.QuizID, body.Message)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, challenge)
}

func (s *Server) handleRespondChallenge(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	var body challengeRespondBody
	if err := decodeJSON(w, r, &body); err != nil {
		handleError(w, r, err)
		return
	}
	if body.Accept == nil {
		handleError(w, r, errors.NewValidationError("accept", "is required"))
		return
	}

	challenge, err := s.ChallengeService.Respond(r.Context(), id, userIDFromContext(r.Context()), *body.Accept)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, challenge)
}

func (s *Server) handleSubmitChallenge(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	var body challengeSubmitBody
	if err := decodeJSON(w, r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	detail, err := s.ChallengeService.Submit(r.Context(), id, userIDFromContext(r.Context()), body.Answers, body.TimeSpent)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, detail)
}

func (s *Server) handleActiveChallenges(w http.ResponseWriter, r *http.Request) {
	challenges, err := s.ChallengeService.ListActive(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, challenges)
}

func (s *Server) handleGetChallenge(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	detail, err := s.ChallengeService.Get(r.Context(), id, userIDFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, detail)
}
