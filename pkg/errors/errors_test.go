package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	err := NotFound("product", "42")
	assert.Equal(t, `NOT_FOUND: product with id 42 not found`, err.Error())
}

func TestAppError_ErrorWithWrapped(t *testing.T) {
	inner := errors.New("boom")
	err := Internal(inner)
	assert.Contains(t, err.Error(), "INTERNAL_ERROR")
	assert.Contains(t, err.Error(), "boom")
}

func TestAppError_Unwrap(t *testing.T) {
	err := NotFound("order", "ORD-1001")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestAlreadyExists(t *testing.T) {
	err := AlreadyExists("user", "email", "user@example.com")
	assert.Equal(t, http.StatusConflict, err.Status)
	assert.Contains(t, err.Message, `"user@example.com"`)
	assert.True(t, errors.Is(err, ErrAlreadyExists))
}

func TestWrap(t *testing.T) {
	inner := InvalidInput("quantity must be positive")
	wrapped := Wrap(inner, "add to cart")

	require.Error(t, wrapped)
	assert.True(t, errors.Is(wrapped, ErrInvalidInput))
	assert.Contains(t, wrapped.Error(), "add to cart")
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error", Forbidden("admin only"), http.StatusForbidden},
		{"wrapped app error", fmt.Errorf("gate: %w", Unauthorized("no session")), http.StatusUnauthorized},
		{"sentinel not found", fmt.Errorf("lookup: %w", ErrNotFound), http.StatusNotFound},
		{"sentinel already exists", ErrAlreadyExists, http.StatusConflict},
		{"sentinel invalid input", ErrInvalidInput, http.StatusBadRequest},
		{"unknown error", errors.New("mystery"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
