package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("FANOUT_LIMIT", "")
	t.Setenv("STORE_TIMEOUT", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 4, cfg.FanoutLimit)
	assert.Equal(t, 3*time.Second, cfg.StoreTimeout)
	assert.Equal(t, 168*time.Hour, cfg.JWTExpiry)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("FANOUT_LIMIT", "8")
	t.Setenv("STORE_TIMEOUT", "750ms")
	t.Setenv("RATE_LIMIT_RPS", "0.5")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 8, cfg.FanoutLimit)
	assert.Equal(t, 750*time.Millisecond, cfg.StoreTimeout)
	assert.Equal(t, 0.5, cfg.RateLimitRPS)
}

func TestLoadIgnoresGarbage(t *testing.T) {
	t.Setenv("FANOUT_CHUNK_SIZE", "lots")
	t.Setenv("JWT_EXPIRY", "-1h")

	cfg := Load()
	assert.Equal(t, 200, cfg.FanoutChunkSize)
	assert.Equal(t, 168*time.Hour, cfg.JWTExpiry)
}
