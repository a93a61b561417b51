package handlers

import (
	"net/http"

	"gamehub/internal/middleware"
	"gamehub/internal/services"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	svc *services.Services
}

func NewReportHandler(svc *services.Services) *ReportHandler {
	return &ReportHandler{svc: svc}
}

type reportRequest struct {
	TargetPostID uint   `json:"target_post_id"`
	Reason       string `json:"reason"`
}

// Create handles POST /reports. A rejected report is not an HTTP error.
func (h *ReportHandler) Create(c *gin.Context) {
	var req reportRequest
	if !bind(c, &req) {
		return
	}
	ok := h.svc.Reporter.Submit(c.Request.Context(), middleware.ViewerID(c), req.TargetPostID, req.Reason, services.AlwaysConfirm)
	c.JSON(http.StatusOK, gin.H{"success": ok})
}
