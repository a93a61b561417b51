package services

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"gamehub/internal/apperr"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// GCSStore writes uploads to a Google Cloud Storage bucket that is publicly
// readable under BaseURL.
type GCSStore struct {
	client  *storage.Client
	Bucket  string
	BaseURL string
}

// NewGCSStore uses the credentials file when given, else application default credentials.
func NewGCSStore(ctx context.Context, bucket, credentialsFile string) (*GCSStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS storage client: %w", err)
	}
	return &GCSStore{
		client:  client,
		Bucket:  bucket,
		BaseURL: "https://storage.googleapis.com/" + url.PathEscape(bucket),
	}, nil
}

func (s *GCSStore) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	name := "uploads/" + uuid.NewString() + imageExt(filename, contentType)

	writer := s.client.Bucket(s.Bucket).Object(name).NewWriter(ctx)
	writer.ContentType = contentType
	writer.CacheControl = "public, max-age=31536000, immutable"

	if _, err := io.Copy(writer, r); err != nil {
		writer.Close()
		return "", fmt.Errorf("%w: copy to gs://%s/%s: %v", apperr.ErrNetwork, s.Bucket, name, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("%w: close gs://%s/%s: %v", apperr.ErrNetwork, s.Bucket, name, err)
	}
	return s.BaseURL + "/" + name, nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
