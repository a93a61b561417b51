package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"gamehub/internal/apperr"
	"gamehub/internal/middleware"
	"gamehub/internal/utils"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError writes {"error": msg} with the status mapped from the error
// kind. Backend failures are logged, sent to sentry and not echoed verbatim.
func respondError(c *gin.Context, err error) {
	status := apperr.Status(err)
	message := err.Error()
	if apperr.Internal(err) {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", c.GetString(middleware.RequestIDKey),
			"error", err,
		)
		captureError(c, err)
		message = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

func captureError(c *gin.Context, err error) {
	hub := sentry.CurrentHub().Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("request_id", c.GetString(middleware.RequestIDKey))
		scope.SetTag("route", c.FullPath())
		if id := middleware.ViewerID(c); id != 0 {
			scope.SetUser(sentry.User{ID: fmt.Sprint(id)})
		}
		hub.CaptureException(err)
	})
}

// bind decodes a JSON body and answers 400 on failure.
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondError(c, apperr.Validation("%s", bindMessage(err)))
		return false
	}
	return true
}

func bindMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field())
			if fe.Param() != "" {
				parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param()))
			} else {
				parts = append(parts, fmt.Sprintf("%s must satisfy %s", field, fe.Tag()))
			}
		}
		return strings.Join(parts, "; ")
	}
	return "invalid request body"
}

// idParam parses a positive id path parameter and answers 400 on failure.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := utils.ParseID(c.Param(name))
	if err != nil {
		respondError(c, apperr.Validation("%s", err.Error()))
		return 0, false
	}
	return id, true
}

type toggleResponse struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}
