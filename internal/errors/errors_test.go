package errors_test

import (
	"database/sql"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/errors"
)

func TestConstructorsMapToStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    *errors.AppError
		code   string
		status int
	}{
		{"not found", errors.NewNotFoundError("quiz", 4), errors.ErrCodeNotFound, http.StatusNotFound},
		{"validation", errors.NewValidationError("receiverId", "cannot be yourself"), errors.ErrCodeValidation, http.StatusBadRequest},
		{"bad request", errors.NewBadRequestError("invalid JSON"), errors.ErrCodeBadRequest, http.StatusBadRequest},
		{"unauthenticated", errors.NewUnauthenticatedError("missing token"), errors.ErrCodeUnauthenticated, http.StatusUnauthorized},
		{"forbidden", errors.NewForbiddenError("not the receiver"), errors.ErrCodeForbidden, http.StatusForbidden},
		{"duplicate", errors.NewDuplicateError("friend request already exists"), errors.ErrCodeDuplicate, http.StatusConflict},
		{"internal", errors.NewInternalError(sql.ErrConnDone), errors.ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.Status)
		})
	}
}

func TestInternalErrorHidesCause(t *testing.T) {
	err := errors.NewInternalError(sql.ErrConnDone)
	assert.Equal(t, "internal server error", err.Message)
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

func TestIsCodeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("respond: %w", errors.NewNotFoundError("friend request", 9))

	require.True(t, errors.IsCode(wrapped, errors.ErrCodeNotFound))
	assert.False(t, errors.IsCode(wrapped, errors.ErrCodeDuplicate))
	assert.False(t, errors.IsCode(sql.ErrNoRows, errors.ErrCodeNotFound))
}
