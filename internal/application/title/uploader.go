package title

import (
	"context"

	"github.com/narwhalmedia/catalog/internal/domain/catalog"
	"github.com/narwhalmedia/catalog/pkg/interfaces"
)

// UploadedAsset is one successful upload of the current operation.
// Replaced is the path the slot held before the upload, empty for a new slot.
type UploadedAsset struct {
	Slot     catalog.SlotKind
	Key      string
	Path     string
	Replaced string
}

// Overwrote reports whether the upload was written over the object the slot
// already referenced.
func (a UploadedAsset) Overwrote() bool {
	return a.Replaced != "" && a.Replaced == a.Path
}

// Ledger lists the assets uploaded by one operation, in upload order.
type Ledger []UploadedAsset

// Paths returns the stored paths in upload order
func (l Ledger) Paths() []string {
	paths := make([]string, len(l))
	for i, asset := range l {
		paths[i] = asset.Path
	}
	return paths
}

// AssetUploader stores bundle payloads and attaches them to a title.
type AssetUploader struct {
	store  ContentStore
	logger interfaces.Logger
}

// NewAssetUploader creates an asset uploader
func NewAssetUploader(store ContentStore, logger interfaces.Logger) *AssetUploader {
	return &AssetUploader{
		store:  store,
		logger: logger,
	}
}

// Upload stores every present payload one at a time in slot order and points
// the matching slot of t at the stored path. On failure it returns the error
// unchanged together with the ledger of uploads that completed before it;
// the failed slot is never attached.
func (u *AssetUploader) Upload(ctx context.Context, t *catalog.Title, bundle MediaBundle) (Ledger, error) {
	var ledger Ledger
	for _, kind := range catalog.SlotKinds {
		in := bundle.Input(kind)
		if !in.present() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return ledger, err
		}

		key, content, err := StorageKey(t.ID, kind, in)
		if err != nil {
			return ledger, err
		}

		path, err := u.store.Upload(ctx, key, content)
		if err != nil {
			u.logger.Error("Asset upload failed",
				interfaces.String("title_id", t.ID.String()),
				interfaces.String("slot", string(kind)),
				interfaces.String("key", key),
				interfaces.Error(err))
			return ledger, err
		}

		asset := UploadedAsset{Slot: kind, Key: key, Path: path, Replaced: t.Media(kind).Path()}
		if err := t.UpdateSlot(kind, path); err != nil {
			// stored object still needs compensation
			return append(ledger, asset), err
		}
		ledger = append(ledger, asset)

		u.logger.Debug("Asset uploaded",
			interfaces.String("title_id", t.ID.String()),
			interfaces.String("slot", string(kind)),
			interfaces.String("path", path))
	}
	return ledger, nil
}
