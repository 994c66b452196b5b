package api

import (
	"net/http"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/errors"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/logger"
)

var (
	errNoRoute          = &errors.AppError{Code: errors.ErrCodeNotFound, Message: "route not found", Status: http.StatusNotFound}
	errMethodNotAllowed = &errors.AppError{Code: errors.ErrCodeBadRequest, Message: "method not allowed", Status: http.StatusMethodNotAllowed}
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.NewInternalError(err)
	}

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else {
		log.Warn("client error: %v", appErr)
	}

	writeJSON(w, r, appErr.Status, errorBody{Error: errorDetail{Code: appErr.Code, Message: appErr.Message}})
}
