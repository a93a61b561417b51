package router

import (
	"context"
	"time"

	"gamehub/internal/handlers"
	"gamehub/internal/middleware"
	"gamehub/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	SessionSecret string
	JWTExpiry     time.Duration
	UploadDir     string // served at /uploads when set
	Limiter       *middleware.RateLimiter
	Ping          func(ctx context.Context) error
}

// RegisterRoutes installs the request middleware chain and every route.
func RegisterRoutes(r *gin.Engine, svc *services.Services, opts Options) {
	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 30 * 24 * 3600, HttpOnly: true})
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(sessions.Sessions("gamehub_session", store))
	r.Use(middleware.LoadViewer(svc.Auth))

	postHandler := handlers.NewPostHandler(svc)
	commentHandler := handlers.NewCommentHandler(svc)
	reportHandler := handlers.NewReportHandler(svc)
	userHandler := handlers.NewUserHandler(svc)
	authHandler := handlers.NewAuthHandler(svc.Auth, opts.JWTExpiry)
	imageHandler := handlers.NewImageHandler(svc.Uploads)
	healthHandler := handlers.NewHealthHandler(opts.Ping)

	r.GET("/healthz", healthHandler.Check)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if opts.UploadDir != "" {
		r.Static("/uploads", opts.UploadDir)
	}

	// Public routes
	r.GET("/posts", postHandler.List)
	r.GET("/posts/:id", postHandler.Detail)
	r.GET("/users/:id", userHandler.Profile)
	r.GET("/users/:id/posts", userHandler.Posts)

	limited := r.Group("/")
	if opts.Limiter != nil {
		limited.Use(opts.Limiter.Middleware())
	}
	limited.POST("/signup", authHandler.Register)
	limited.POST("/login", authHandler.Login)
	limited.POST("/token", authHandler.Token)
	r.POST("/logout", authHandler.Logout)

	// Protected routes
	authorized := limited.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/posts", postHandler.Create)
		authorized.POST("/posts/:id/like", postHandler.Like)
		authorized.DELETE("/posts/:id", postHandler.Delete)

		authorized.POST("/comments", commentHandler.Create)
		authorized.POST("/comments/:id/like", commentHandler.Like)
		authorized.DELETE("/comments/:id", commentHandler.Delete)

		authorized.POST("/reports", reportHandler.Create)

		authorized.PUT("/me", userHandler.Update)
		authorized.POST("/me/avatar", userHandler.Avatar)
		authorized.POST("/me/cover", userHandler.Cover)
		authorized.POST("/users/:id/follow", userHandler.Follow)

		authorized.POST("/uploads", imageHandler.Upload)
	}
}
