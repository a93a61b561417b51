package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gamehub/internal/apperr"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"record not found", gorm.ErrRecordNotFound, apperr.ErrNotFound},
		{"pg unique", &pgconn.PgError{Code: "23505"}, ErrDuplicate},
		{"pg connection", &pgconn.PgError{Code: "08006"}, apperr.ErrNetwork},
		{"pg other", &pgconn.PgError{Code: "42P01"}, apperr.ErrStore},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), apperr.ErrNetwork},
		{"sqlite unique", errors.New("UNIQUE constraint failed: likes.user_id, likes.post_id"), ErrDuplicate},
		{"anything else", errors.New("disk full"), apperr.ErrStore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			assert.True(t, errors.Is(got, tt.kind), "got %v", got)
			assert.True(t, errors.Is(got, tt.err), "original error kept in chain")
		})
	}
	assert.NoError(t, classify(nil))
}
