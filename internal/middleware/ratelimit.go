package middleware

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// RateLimiter keeps a token bucket per client. Buckets live in an LRU so the
// number of tracked clients stays bounded.
type RateLimiter struct {
	mu       sync.Mutex
	limiters *lru.Cache[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

func NewRateLimiter(rps float64, burst, clients int) (*RateLimiter, error) {
	cache, err := lru.New[string, *rate.Limiter](clients)
	if err != nil {
		return nil, err
	}
	return &RateLimiter{limiters: cache, limit: rate.Limit(rps), burst: burst}, nil
}

func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters.Add(key, limiter)
	}
	l.mu.Unlock()
	return limiter.Allow()
}

// Middleware keys logged-in clients by profile id and anonymous ones by IP.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if id := ViewerID(c); id != 0 {
			key = fmt.Sprintf("user:%d", id)
		}
		if !l.Allow(key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
