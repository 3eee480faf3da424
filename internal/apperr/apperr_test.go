package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("name is required"), http.StatusBadRequest},
		{"conflict", Conflict("slug %q already exists", "x"), http.StatusBadRequest},
		{"invariant", Invariant("has children"), http.StatusBadRequest},
		{"invalid state", InvalidState("not liked"), http.StatusBadRequest},
		{"not found", NotFound("category", 1), http.StatusNotFound},
		{"internal", Internal(errors.New("boom")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("update: %w", NotFound("article", "x")), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "category 7 not found", PublicMessage(NotFound("category", 7), false))

	cause := errors.New("dial tcp: connection refused")
	assert.Equal(t, "Internal server error", PublicMessage(Internal(cause), false))
	assert.Contains(t, PublicMessage(Internal(cause), true), "connection refused")
	assert.Equal(t, "Internal server error", PublicMessage(cause, false))
	assert.Equal(t, cause.Error(), PublicMessage(cause, true))
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("toggle: %w", InvalidState("not liked"))
	assert.True(t, Is(err, KindState))
	assert.False(t, Is(err, KindNotFound))
	assert.False(t, Is(nil, KindInternal))
}
