package handlers

import (
	"net/http"

	"gamehub/internal/middleware"
	"gamehub/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc *services.Services
}

func NewUserHandler(svc *services.Services) *UserHandler {
	return &UserHandler{svc: svc}
}

type updateProfileRequest struct {
	Username string `json:"username" binding:"required"`
	Bio      string `json:"bio"`
}

// Profile handles GET /users/:id.
func (h *UserHandler) Profile(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	summary, err := h.svc.Profiles.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Posts handles GET /users/:id/posts.
func (h *UserHandler) Posts(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	posts, err := h.svc.Feed.ListByAuthor(c.Request.Context(), middleware.ViewerID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Update handles PUT /me.
func (h *UserHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if !bind(c, &req) {
		return
	}
	profile, err := h.svc.Profiles.Update(c.Request.Context(), middleware.ViewerID(c), req.Username, req.Bio)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Avatar handles POST /me/avatar: upload the image, then point the profile at it.
func (h *UserHandler) Avatar(c *gin.Context) {
	url, ok := uploadImage(c, h.svc.Uploads)
	if !ok {
		return
	}
	profile, err := h.svc.Profiles.SetAvatar(c.Request.Context(), middleware.ViewerID(c), url)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Cover handles POST /me/cover the same way for the profile banner.
func (h *UserHandler) Cover(c *gin.Context) {
	url, ok := uploadImage(c, h.svc.Uploads)
	if !ok {
		return
	}
	profile, err := h.svc.Profiles.SetCover(c.Request.Context(), middleware.ViewerID(c), url)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Follow handles POST /users/:id/follow.
func (h *UserHandler) Follow(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	following, err := h.svc.Profiles.ToggleFollow(ctx, middleware.ViewerID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": following, "followers": h.svc.Profiles.FollowerCount(ctx, id)})
}
