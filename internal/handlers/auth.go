package handlers

import (
	"net/http"
	"time"

	"gamehub/internal/middleware"
	"gamehub/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth      *services.AuthService
	jwtExpiry time.Duration
}

func NewAuthHandler(auth *services.AuthService, jwtExpiry time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, jwtExpiry: jwtExpiry}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /signup and logs the new account in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bind(c, &req) {
		return
	}
	profile, err := h.auth.Register(c.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := startSession(c, profile.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bind(c, &req) {
		return
	}
	profile, err := h.auth.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := startSession(c, profile.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Token handles POST /token: credentials in, bearer token out.
func (h *AuthHandler) Token(c *gin.Context) {
	var req loginRequest
	if !bind(c, &req) {
		return
	}
	profile, err := h.auth.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := h.auth.IssueToken(profile.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"token_type": "Bearer",
		"expires_in": int64(h.jwtExpiry.Seconds()),
	})
}

func startSession(c *gin.Context, profileID uint) error {
	session := sessions.Default(c)
	session.Set(middleware.SessionUserKey, profileID)
	return session.Save()
}
