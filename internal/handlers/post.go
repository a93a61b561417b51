package handlers

import (
	"net/http"

	"gamehub/internal/middleware"
	"gamehub/internal/services"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	svc *services.Services
}

func NewPostHandler(svc *services.Services) *PostHandler {
	return &PostHandler{svc: svc}
}

type createPostRequest struct {
	Content  string `json:"content" binding:"required"`
	ImageURL string `json:"image_url" binding:"omitempty,max=2048"`
}

// List handles GET /posts.
func (h *PostHandler) List(c *gin.Context) {
	feed, err := h.svc.Feed.List(c.Request.Context(), middleware.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// Detail handles GET /posts/:id.
func (h *PostHandler) Detail(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	detail, err := h.svc.Detail.Get(c.Request.Context(), id, middleware.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Create handles POST /posts and answers with the post as the feed shows it.
func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if !bind(c, &req) {
		return
	}
	ctx := c.Request.Context()
	viewer := middleware.ViewerID(c)

	post, err := h.svc.Publisher.Create(ctx, viewer, req.Content, req.ImageURL)
	if err != nil {
		respondError(c, err)
		return
	}
	detail, err := h.svc.Detail.Get(ctx, post.ID, viewer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, detail.EnrichedPost)
}

// Like handles POST /posts/:id/like.
func (h *PostHandler) Like(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	liked, err := h.svc.Toggle.TogglePostLike(ctx, middleware.ViewerID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toggleResponse{Liked: liked, LikeCount: h.svc.Toggle.PostLikeCount(ctx, id)})
}

// Delete handles DELETE /posts/:id. The client confirms before calling.
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Posts.Delete(c.Request.Context(), middleware.ViewerID(c), id, services.AlwaysConfirm); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
