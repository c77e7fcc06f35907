package title

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/narwhalmedia/catalog/internal/domain/catalog"
)

// ContentStore is the blob store holding title assets
type ContentStore interface {
	// Upload stores content under key and returns the stored path
	Upload(ctx context.Context, key string, content io.Reader) (string, error)
	// Delete removes a previously stored path
	Delete(ctx context.Context, path string) error
}

// sniffLimit matches the number of bytes mimetype inspects by default.
const sniffLimit = 3072

// StorageKey derives the object key for a slot payload as
// "<title id>/<slot kind><ext>". The extension comes from the file name and
// falls back to content sniffing. The returned reader must be used in place
// of in.Content since sniffing consumes the head of the stream.
func StorageKey(titleID uuid.UUID, kind catalog.SlotKind, in *MediaInput) (string, io.Reader, error) {
	content := in.Content
	ext := strings.ToLower(filepath.Ext(in.Name))
	if ext == "" {
		head := make([]byte, sniffLimit)
		n, err := io.ReadFull(content, head)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			return "", nil, fmt.Errorf("sniff %s content: %w", kind, err)
		}
		head = head[:n]
		ext = mimetype.Detect(head).Extension()
		content = io.MultiReader(bytes.NewReader(head), content)
	}
	return fmt.Sprintf("%s/%s%s", titleID, kind, ext), content, nil
}
