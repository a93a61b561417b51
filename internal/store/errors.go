package store

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"gamehub/internal/apperr"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicate is returned when a unique index rejects an insert.
var ErrDuplicate = fmt.Errorf("%w: already exists", apperr.ErrValidation)

const (
	pgUniqueViolation     = "23505"
	pgConnectionException = "08"
)

// classify wraps a driver error with the matching apperr kind while keeping the
// original error in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", apperr.ErrNotFound, err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation:
			return fmt.Errorf("%w: %w", ErrDuplicate, err)
		case strings.HasPrefix(pgErr.Code, pgConnectionException):
			return fmt.Errorf("%w: %w", apperr.ErrNetwork, err)
		}
		return fmt.Errorf("%w: %w", apperr.ErrStore, err)
	}

	var connErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connErr) || errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %w", apperr.ErrNetwork, err)
	}

	// sqlite reports constraint failures as plain text.
	if strings.Contains(strings.ToLower(err.Error()), "unique constraint failed") {
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	}
	return fmt.Errorf("%w: %w", apperr.ErrStore, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, apperr.ErrNotFound)
}
