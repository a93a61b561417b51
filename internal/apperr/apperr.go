// Package apperr holds the error taxonomy shared by the store, the services
// and the HTTP layer. Callers wrap a sentinel with context and test with errors.Is.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrForbidden       = errors.New("not allowed")
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("not logged in")
	ErrDeclined        = errors.New("action not confirmed")
	ErrStore           = errors.New("store error")
	ErrNetwork         = errors.New("store unreachable")
)

func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func Forbidden(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}

func NotFound(what string, id uint) error {
	return fmt.Errorf("%w: %s %d", ErrNotFound, what, id)
}

// Status maps an error onto the HTTP status the API answers with.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDeclined):
		return http.StatusConflict
	case errors.Is(err, ErrNetwork):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Internal reports whether err is a backend failure rather than a caller mistake.
func Internal(err error) bool {
	return Status(err) >= http.StatusInternalServerError
}
