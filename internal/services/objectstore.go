package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gamehub/internal/apperr"

	"github.com/google/uuid"
)

const DefaultImgurEndpoint = "https://api.imgur.com/3/image"

// ObjectStore hosts uploaded blobs and returns a public URL for them.
type ObjectStore interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// NewObjectStore picks Imgur when a client id is configured and local disk otherwise.
func NewObjectStore(imgurClientID, uploadDir, publicBase string) ObjectStore {
	if imgurClientID != "" {
		return &ImgurStore{ClientID: imgurClientID}
	}
	return &DiskStore{Dir: uploadDir, BaseURL: strings.TrimRight(publicBase, "/") + "/uploads"}
}

// imgurResponse is the subset of the Imgur upload response we read.
type imgurResponse struct {
	Data struct {
		ID   string `json:"id"`
		Link string `json:"link"`
		Type string `json:"type"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

// ImgurStore uploads base64 images to an Imgur-compatible API.
type ImgurStore struct {
	ClientID string
	Endpoint string       // DefaultImgurEndpoint when empty
	Client   *http.Client // 30s timeout client when nil
}

func (s *ImgurStore) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("image", base64.StdEncoding.EncodeToString(raw)); err != nil {
		return "", fmt.Errorf("write request body: %w", err)
	}
	if err := writer.WriteField("type", "base64"); err != nil {
		return "", fmt.Errorf("write request body: %w", err)
	}
	if err := writer.WriteField("name", filename); err != nil {
		return "", fmt.Errorf("write request body: %w", err)
	}
	writer.Close()

	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = DefaultImgurEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+s.ClientID)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: upload request: %v", apperr.ErrNetwork, err)
	}
	defer resp.Body.Close()

	var out imgurResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode upload response: %v", apperr.ErrStore, err)
	}
	if !out.Success || out.Data.Link == "" {
		return "", fmt.Errorf("%w: imgur upload failed with status %d", apperr.ErrStore, out.Status)
	}
	return out.Data.Link, nil
}

// DiskStore writes uploads under Dir with random names; Dir is served at BaseURL.
type DiskStore struct {
	Dir     string
	BaseURL string
}

func (s *DiskStore) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create upload dir: %v", apperr.ErrStore, err)
	}
	name := uuid.NewString() + imageExt(filename, contentType)

	f, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", fmt.Errorf("%w: create file: %v", apperr.ErrStore, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("%w: write file: %v", apperr.ErrStore, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: close file: %v", apperr.ErrStore, err)
	}
	return s.BaseURL + "/" + name, nil
}

// imageExt keeps a known image extension from the filename, else derives one
// from the content type.
func imageExt(filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return ext
	}
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
