package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server
	Port          string
	PublicBaseURL string

	// Database
	DatabaseURL    string
	DBMaxOpenConns int
	DBMaxIdleConns int

	// Auth
	SessionSecret string
	JWTSecret     string
	JWTExpiry     time.Duration

	// Object store
	ImgurClientID      string
	UploadDir          string
	GCSBucket          string
	GCSCredentialsFile string

	// Read path fan-out
	FanoutLimit     int
	FanoutChunkSize int
	StoreTimeout    time.Duration
	ReadRetries     int

	// Write rate limit, per viewer
	RateLimitRPS   float64
	RateLimitBurst int

	SentryDSN string
	LogLevel  string
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),

		DatabaseURL:    getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=gamehub port=5432 sslmode=disable TimeZone=UTC"),
		DBMaxOpenConns: parseInt(getEnv("DB_MAX_OPEN_CONNS", "50"), 50),
		DBMaxIdleConns: parseInt(getEnv("DB_MAX_IDLE_CONNS", "25"), 25),

		SessionSecret: getEnv("SESSION_SECRET", "secret_key_change_me"),
		JWTSecret:     getEnv("JWT_SECRET", "jwt_secret_change_me"),
		JWTExpiry:     parseDuration(getEnv("JWT_EXPIRY", "168h"), 168*time.Hour),

		ImgurClientID:      getEnv("IMGUR_CLIENT_ID", ""),
		UploadDir:          getEnv("UPLOAD_DIR", "./uploads"),
		GCSBucket:          getEnv("GCS_BUCKET", ""),
		GCSCredentialsFile: getEnv("GCS_CREDENTIALS_FILE", ""),

		FanoutLimit:     parseInt(getEnv("FANOUT_LIMIT", "4"), 4),
		FanoutChunkSize: parseInt(getEnv("FANOUT_CHUNK_SIZE", "200"), 200),
		StoreTimeout:    parseDuration(getEnv("STORE_TIMEOUT", "3s"), 3*time.Second),
		ReadRetries:     parseInt(getEnv("READ_RETRIES", "2"), 2),

		RateLimitRPS:   parseFloat(getEnv("RATE_LIMIT_RPS", "5"), 5),
		RateLimitBurst: parseInt(getEnv("RATE_LIMIT_BURST", "10"), 10),

		SentryDSN: getEnv("SENTRY_DSN", ""),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 {
		return fallback
	}
	return i
}

func parseFloat(s string, fallback float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}
