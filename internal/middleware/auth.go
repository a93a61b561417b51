package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	ViewerKey      = "viewer_id"
	SessionUserKey = "user_id"
)

// TokenParser resolves a bearer token to a profile id.
type TokenParser interface {
	ParseToken(raw string) (uint, error)
}

// LoadViewer resolves the acting profile from a bearer token or, failing
// that, the cookie session. Requests without either stay anonymous (id 0).
// An expired or malformed bearer token also reads as anonymous, so public
// pages keep rendering and AuthRequired rejects the protected ones.
func LoadViewer(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			id, err := tokens.ParseToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				slog.Debug("ignoring invalid bearer token", "error", err, "request_id", c.GetString(RequestIDKey))
			} else {
				c.Set(ViewerKey, id)
			}
			c.Next()
			return
		}

		session := sessions.Default(c)
		if id, ok := session.Get(SessionUserKey).(uint); ok && id != 0 {
			c.Set(ViewerKey, id)
		}
		c.Next()
	}
}

// AuthRequired rejects anonymous requests.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ViewerID(c) == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		c.Next()
	}
}

// ViewerID returns the acting profile id, 0 for anonymous.
func ViewerID(c *gin.Context) uint {
	return c.GetUint(ViewerKey)
}
