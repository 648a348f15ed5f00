package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperror "gomarket/internal/errors"
)

func TestMapToHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		category string
	}{
		{"validation", apperror.NewValidationError("x"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unauthorized", apperror.NewUnauthorizedError("x"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"not found", apperror.NewNotFoundError("x"), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", apperror.NewConflictError("x"), http.StatusConflict, "CONFLICT"},
		{"storage", apperror.NewStorageError("x", errors.New("redis down")), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"wrapped", fmt.Errorf("camada: %w", apperror.NewNotFoundError("x")), http.StatusNotFound, "NOT_FOUND"},
		{"plain", errors.New("x"), http.StatusInternalServerError, "UNKNOWN_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, category, _ := apperror.MapToHTTPStatus(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.category, category)
		})
	}
}

func TestMapToHTTPStatus_HidesInternalCause(t *testing.T) {
	_, _, msg := apperror.MapToHTTPStatus(apperror.NewDBError("falha", errors.New("pq: password authentication failed")))
	assert.NotContains(t, msg, "password")
}

func TestInternalError_Unwrap(t *testing.T) {
	root := errors.New("root")
	err := apperror.NewStorageError("falha", root)

	assert.ErrorIs(t, err, root)
	assert.Contains(t, err.Error(), "root")
}
