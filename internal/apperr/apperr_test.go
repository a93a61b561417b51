package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", Validation("content is empty"), http.StatusBadRequest},
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized},
		{"forbidden", Forbidden("post %d", 3), http.StatusForbidden},
		{"not found", NotFound("post", 9), http.StatusNotFound},
		{"declined", ErrDeclined, http.StatusConflict},
		{"network", fmt.Errorf("%w: dial tcp", ErrNetwork), http.StatusServiceUnavailable},
		{"store", fmt.Errorf("%w: boom", ErrStore), http.StatusInternalServerError},
		{"unknown", context.Canceled, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestWrappingKeepsKind(t *testing.T) {
	err := fmt.Errorf("delete post: %w", NotFound("post", 1))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, Internal(err))
	assert.True(t, Internal(fmt.Errorf("%w: x", ErrStore)))
}
