package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gamehub/internal/config"
	"gamehub/internal/db"
	"gamehub/internal/logging"
	"gamehub/internal/middleware"
	"gamehub/internal/router"
	"gamehub/internal/services"
	"gamehub/internal/store"
	"gamehub/internal/utils"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, reading env vars from system")
	}

	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	if err := utils.SetEmbedParent(cfg.PublicBaseURL); err != nil {
		slog.Warn("clip embeds will use the default parent host", "error", err)
	}

	if err := db.Init(cfg); err != nil {
		slog.Error("database init failed", "error", err)
		os.Exit(1)
	}

	objectStore := services.NewObjectStore(cfg.ImgurClientID, cfg.UploadDir, cfg.PublicBaseURL)
	if cfg.GCSBucket != "" {
		gcs, err := services.NewGCSStore(context.Background(), cfg.GCSBucket, cfg.GCSCredentialsFile)
		if err != nil {
			slog.Error("object store init failed", "error", err)
			os.Exit(1)
		}
		defer gcs.Close()
		objectStore = gcs
	}
	svc := services.New(store.New(db.DB), services.Options{
		Fanout: services.FanoutOptions{
			Limit:     cfg.FanoutLimit,
			ChunkSize: cfg.FanoutChunkSize,
			Timeout:   cfg.StoreTimeout,
			Retries:   cfg.ReadRetries,
			Backoff:   50 * time.Millisecond,
		},
		JWTSecret:   cfg.JWTSecret,
		JWTExpiry:   cfg.JWTExpiry,
		ObjectStore: objectStore,
	})

	limiter, err := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 10000)
	if err != nil {
		slog.Error("rate limiter init failed", "error", err)
		os.Exit(1)
	}

	uploadDir := ""
	if _, ok := objectStore.(*services.DiskStore); ok {
		uploadDir = cfg.UploadDir
	}

	r := gin.New()
	r.Use(gin.Recovery())
	router.RegisterRoutes(r, svc, router.Options{
		SessionSecret: cfg.SessionSecret,
		JWTExpiry:     cfg.JWTExpiry,
		UploadDir:     uploadDir,
		Limiter:       limiter,
		Ping:          db.Ping,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}
	slog.Info("server stopped")
}
