package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errNoRoute)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errMethodNotAllowed)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/ready", s.handleReady)
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Get("/auth/me", s.handleMe)
			r.Get("/users", s.handleSearchUsers)
			r.Put("/users/profile", s.handleUpdateProfile)

			r.Get("/quizzes", s.handleListQuizzes)
			r.Post("/quizzes", s.handleCreateQuiz)
			r.Post("/quizzes/submit", s.handleSubmitQuiz)
			r.Get("/quizzes/{id}", s.handleGetQuiz)
			r.Post("/questions", s.handleProposeQuestion)

			r.Get("/performance", s.handleListPerformances)
			r.Get("/performance/stats", s.handlePerformanceStats)
			r.Get("/leaderboard", s.handleLeaderboard)

			r.Post("/friends/request", s.handleSendFriendRequest)
			r.Get("/friends/requests", s.handlePendingFriendRequests)
			r.Post("/friends/respond", s.handleRespondFriendRequest)
			r.Get("/friends", s.handleListFriends)

			r.Post("/challenges/invite", s.handleInviteChallenge)
			r.Get("/challenges/active", s.handleActiveChallenges)
			r.Get("/challenges/{id}", s.handleGetChallenge)
			r.Post("/challenges/{id}/respond", s.handleRespondChallenge)
			r.Post("/challenges/{id}/submit", s.handleSubmitChallenge)

			r.Route("/admin", func(r chi.Router) {
				r.Use(s.adminMiddleware)
				r.Get("/questions", s.handleAdminListQuestions)
				r.Post("/questions", s.handleAdminCreateQuestion)
				r.Put("/questions/{id}/approve", s.handleApproveQuestion)
			})
		})
	})

	return r
}
