package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"

	"github.com/narwhalmedia/catalog/internal/config"
	pkgerrors "github.com/narwhalmedia/catalog/pkg/errors"
)

// GCSStore keeps assets in a Google Cloud Storage bucket. Stored paths are
// object names.
type GCSStore struct {
	client *storage.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewGCSStore creates a client using application default credentials.
func NewGCSStore(ctx context.Context, cfg config.GCSConfig, logger *zap.Logger) (*GCSStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSStore{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		logger: logger.Named("gcs"),
	}, nil
}

// Upload streams content to the prefixed object name.
func (s *GCSStore) Upload(ctx context.Context, key string, content io.Reader) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	name := prefixed(s.prefix, key)

	contentType, content, err := sniffContentType(content)
	if err != nil {
		return "", fmt.Errorf("failed to read content: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	writer := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	writer.ContentType = contentType

	written, err := io.Copy(writer, content)
	if err != nil {
		// Cancelling the context aborts the upload; Close then reports the cancellation.
		cancel()
		_ = writer.Close()
		return "", pkgerrors.Unavailable("failed to upload to GCS", err)
	}
	if err := writer.Close(); err != nil {
		return "", pkgerrors.Unavailable("failed to finalize GCS upload", err)
	}

	s.logger.Debug("stored asset",
		zap.String("bucket", s.bucket),
		zap.String("object", name),
		zap.String("content_type", contentType),
		zap.Int64("bytes", written))
	return name, nil
}

// Delete removes an object. A missing object is not an error.
func (s *GCSStore) Delete(ctx context.Context, path string) error {
	err := s.client.Bucket(s.bucket).Object(path).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return pkgerrors.Unavailable("failed to delete from GCS", err)
	}
	return nil
}

// Close releases the client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}
