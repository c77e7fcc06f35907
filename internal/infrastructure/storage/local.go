package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// LocalStore keeps assets on the local filesystem under a base path.
type LocalStore struct {
	basePath string
	logger   *zap.Logger
}

// NewLocalStore creates the base path if needed.
func NewLocalStore(basePath string, logger *zap.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base path: %w", err)
	}

	return &LocalStore{
		basePath: basePath,
		logger:   logger.Named("local_storage"),
	}, nil
}

// Upload writes content to key and returns key as the stored path. The file
// is written to a temporary name first so readers never see a partial asset.
func (s *LocalStore) Upload(ctx context.Context, key string, content io.Reader) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	target := s.fullPath(key)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	tmp := file.Name()
	defer os.Remove(tmp)

	written, err := io.Copy(file, content)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	if err := os.Rename(tmp, target); err != nil {
		return "", fmt.Errorf("failed to move file into place: %w", err)
	}

	s.logger.Debug("stored asset", zap.String("key", key), zap.Int64("bytes", written))
	return key, nil
}

// Delete removes a stored path. Deleting a missing file is not an error.
func (s *LocalStore) Delete(ctx context.Context, path string) error {
	key, err := cleanKey(path)
	if err != nil {
		return err
	}

	if err := os.Remove(s.fullPath(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Open returns a reader for a stored path.
func (s *LocalStore) Open(path string) (io.ReadCloser, error) {
	key, err := cleanKey(path)
	if err != nil {
		return nil, err
	}
	return os.Open(s.fullPath(key))
}

func (s *LocalStore) fullPath(key string) string {
	return filepath.Join(s.basePath, filepath.FromSlash(key))
}
