package handlers

import (
	"net/http"
	"strings"

	"gamehub/internal/apperr"
	"gamehub/internal/services"

	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 10 << 20

type ImageHandler struct {
	store services.ObjectStore
}

func NewImageHandler(store services.ObjectStore) *ImageHandler {
	return &ImageHandler{store: store}
}

// Upload handles POST /uploads (multipart field "image").
func (h *ImageHandler) Upload(c *gin.Context) {
	url, ok := uploadImage(c, h.store)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// uploadImage validates the "image" form file and hands it to the object store.
func uploadImage(c *gin.Context, store services.ObjectStore) (string, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes+1<<20)
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		respondError(c, apperr.Validation("image file is required"))
		return "", false
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respondError(c, apperr.Validation("only image uploads are allowed"))
		return "", false
	}
	if header.Size > maxUploadBytes {
		respondError(c, apperr.Validation("image must be 10MB or smaller"))
		return "", false
	}

	url, err := store.Upload(c.Request.Context(), header.Filename, contentType, file)
	if err != nil {
		respondError(c, err)
		return "", false
	}
	return url, true
}
