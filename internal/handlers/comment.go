package handlers

import (
	"net/http"

	"gamehub/internal/middleware"
	"gamehub/internal/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc *services.Services
}

func NewCommentHandler(svc *services.Services) *CommentHandler {
	return &CommentHandler{svc: svc}
}

type createCommentRequest struct {
	PostID  uint   `json:"post_id" binding:"required"`
	Content string `json:"content" binding:"required"`
	ReplyTo *uint  `json:"reply_to"`
}

// Create handles POST /comments.
func (h *CommentHandler) Create(c *gin.Context) {
	var req createCommentRequest
	if !bind(c, &req) {
		return
	}
	comment, err := h.svc.Composer.Submit(c.Request.Context(), middleware.ViewerID(c), req.PostID, req.Content, req.ReplyTo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// Like handles POST /comments/:id/like.
func (h *CommentHandler) Like(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	liked, err := h.svc.Toggle.ToggleCommentLike(ctx, middleware.ViewerID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toggleResponse{Liked: liked, LikeCount: h.svc.Toggle.CommentLikeCount(ctx, id)})
}

// Delete handles DELETE /comments/:id.
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Comments.Delete(c.Request.Context(), middleware.ViewerID(c), id, services.AlwaysConfirm); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
