package services

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gamehub/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImgurStoreUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Client-ID abc", r.Header.Get("Authorization"))
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		raw, err := base64.StdEncoding.DecodeString(r.FormValue("image"))
		assert.NoError(t, err)
		assert.Equal(t, "pixels", string(raw))
		assert.Equal(t, "base64", r.FormValue("type"))
		w.Write([]byte(`{"success":true,"status":200,"data":{"id":"xyz","link":"https://i.imgur.com/xyz.png"}}`))
	}))
	defer srv.Close()

	s := &ImgurStore{ClientID: "abc", Endpoint: srv.URL}
	url, err := s.Upload(context.Background(), "shot.png", "image/png", strings.NewReader("pixels"))
	require.NoError(t, err)
	assert.Equal(t, "https://i.imgur.com/xyz.png", url)
}

func TestImgurStoreFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"status":400,"data":{}}`))
	}))
	defer srv.Close()

	s := &ImgurStore{ClientID: "abc", Endpoint: srv.URL}
	_, err := s.Upload(context.Background(), "shot.png", "image/png", strings.NewReader("pixels"))
	assert.ErrorIs(t, err, apperr.ErrStore)
}

func TestDiskStoreUpload(t *testing.T) {
	dir := t.TempDir()
	s := &DiskStore{Dir: dir, BaseURL: "http://localhost:8080/uploads"}

	url, err := s.Upload(context.Background(), "shot.PNG", "image/png", strings.NewReader("pixels"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(data))
}

func TestImageExt(t *testing.T) {
	assert.Equal(t, ".gif", imageExt("a.gif", "image/png"))
	assert.Equal(t, ".webp", imageExt("blob", "image/webp"))
	assert.Equal(t, ".jpg", imageExt("evil.exe", "application/octet-stream"))
}

func TestNewObjectStore(t *testing.T) {
	assert.IsType(t, &ImgurStore{}, NewObjectStore("id", "./uploads", ""))
	disk, ok := NewObjectStore("", "./uploads", "http://x/").(*DiskStore)
	require.True(t, ok)
	assert.Equal(t, "http://x/uploads", disk.BaseURL)
}
