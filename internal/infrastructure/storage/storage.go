// Package storage holds the content store adapters for title assets.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/narwhalmedia/catalog/internal/application/title"
	"github.com/narwhalmedia/catalog/internal/config"
)

// ErrInvalidKey is returned for keys that are empty or escape the store root.
var ErrInvalidKey = errors.New("invalid storage key")

// New builds the content store selected by cfg.Type.
func New(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (title.ContentStore, func(), error) {
	switch cfg.Type {
	case config.StorageLocal:
		store, err := NewLocalStore(cfg.Local.Path, logger)
		return store, func() {}, err
	case config.StorageS3:
		store, err := NewS3Store(ctx, cfg.S3, logger)
		return store, func() {}, err
	case config.StorageGCS:
		store, err := NewGCSStore(ctx, cfg.GCS, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}

// cleanKey normalizes a slash separated key and rejects traversal.
func cleanKey(key string) (string, error) {
	cleaned := path.Clean("/" + strings.TrimSpace(key))[1:]
	if cleaned == "" || cleaned != strings.TrimPrefix(key, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return cleaned, nil
}

// prefixed joins an optional prefix and a key.
func prefixed(prefix, key string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return key
	}
	return prefix + "/" + key
}

// sniffContentType detects the MIME type from the head of content. The
// returned reader replays the consumed bytes.
func sniffContentType(content io.Reader) (string, io.Reader, error) {
	head := make([]byte, 3072)
	n, err := io.ReadFull(content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, err
	}
	head = head[:n]
	return mimetype.Detect(head).String(), io.MultiReader(bytes.NewReader(head), content), nil
}
