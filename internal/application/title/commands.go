package title

import (
	"io"

	"github.com/google/uuid"

	"github.com/narwhalmedia/catalog/internal/domain/catalog"
)

// MediaInput is one binary payload destined for a slot
type MediaInput struct {
	// Name is the client file name; its extension ends up in the storage key
	Name    string
	Content io.Reader
}

func (in *MediaInput) present() bool {
	return in != nil && in.Content != nil
}

// MediaBundle carries up to five payloads. A nil entry leaves the slot untouched.
type MediaBundle struct {
	Banner    *MediaInput
	Thumb     *MediaInput
	ThumbHalf *MediaInput
	Video     *MediaInput
	Trailer   *MediaInput
}

// Input returns the payload for a slot kind
func (b MediaBundle) Input(kind catalog.SlotKind) *MediaInput {
	switch kind {
	case catalog.SlotBanner:
		return b.Banner
	case catalog.SlotThumb:
		return b.Thumb
	case catalog.SlotThumbHalf:
		return b.ThumbHalf
	case catalog.SlotVideo:
		return b.Video
	case catalog.SlotTrailer:
		return b.Trailer
	}
	return nil
}

// Empty reports whether no slot carries a payload
func (b MediaBundle) Empty() bool {
	for _, kind := range catalog.SlotKinds {
		if b.Input(kind).present() {
			return false
		}
	}
	return true
}

// Relations holds candidate relation ids. A nil slice means "not supplied":
// on create it is the same as empty, on update the current set is retained.
// A non-nil empty slice clears the set.
type Relations struct {
	Categories  []uuid.UUID
	Genres      []uuid.UUID
	CastMembers []uuid.UUID
}

// CreateTitleCommand represents a command to create a new title
type CreateTitleCommand struct {
	Title        string
	Description  string
	YearLaunched int
	Opened       bool
	Published    bool
	Duration     int
	Rating       catalog.Rating
	Relations    Relations
	Media        MediaBundle
}

func (c CreateTitleCommand) descriptive() catalog.Descriptive {
	return catalog.Descriptive{
		Title:        c.Title,
		Description:  c.Description,
		YearLaunched: c.YearLaunched,
		Opened:       c.Opened,
		Published:    c.Published,
		Duration:     c.Duration,
		Rating:       c.Rating,
	}
}

// UpdateTitleCommand replaces every descriptive field of a title
type UpdateTitleCommand struct {
	ID           uuid.UUID
	Title        string
	Description  string
	YearLaunched int
	Opened       bool
	Published    bool
	Duration     int
	Rating       catalog.Rating
	Relations    Relations
	Media        MediaBundle
}

func (c UpdateTitleCommand) descriptive() catalog.Descriptive {
	return catalog.Descriptive{
		Title:        c.Title,
		Description:  c.Description,
		YearLaunched: c.YearLaunched,
		Opened:       c.Opened,
		Published:    c.Published,
		Duration:     c.Duration,
		Rating:       c.Rating,
	}
}

// UploadMediasCommand uploads assets for an existing title without touching
// its descriptive fields or relations
type UploadMediasCommand struct {
	ID    uuid.UUID
	Media MediaBundle
}

// UpdateMediaStatusCommand records encoder feedback for the video or trailer slot
type UpdateMediaStatusCommand struct {
	TitleID     uuid.UUID
	Slot        catalog.SlotKind
	Status      catalog.MediaStatus
	EncodedPath string
}
