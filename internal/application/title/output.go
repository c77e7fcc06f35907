package title

import (
	"time"

	"github.com/google/uuid"

	"github.com/narwhalmedia/catalog/internal/domain/catalog"
)

// MediaOutput is the visible state of one slot
type MediaOutput struct {
	Path        string              `json:"path"`
	EncodedPath string              `json:"encoded_path,omitempty"`
	Status      catalog.MediaStatus `json:"status"`
}

// TitleOutput is the externally visible projection of a title
type TitleOutput struct {
	ID           uuid.UUID      `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	YearLaunched int            `json:"year_launched"`
	Opened       bool           `json:"opened"`
	Published    bool           `json:"published"`
	Duration     int            `json:"duration"`
	Rating       catalog.Rating `json:"rating"`
	Categories   []uuid.UUID    `json:"categories"`
	Genres       []uuid.UUID    `json:"genres"`
	CastMembers  []uuid.UUID    `json:"cast_members"`
	Banner       *MediaOutput   `json:"banner,omitempty"`
	Thumb        *MediaOutput   `json:"thumb,omitempty"`
	ThumbHalf    *MediaOutput   `json:"thumb_half,omitempty"`
	Video        *MediaOutput   `json:"video,omitempty"`
	Trailer      *MediaOutput   `json:"trailer,omitempty"`
	Version      int            `json:"version"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func mediaOutput(m *catalog.Media) *MediaOutput {
	if m == nil {
		return nil
	}
	return &MediaOutput{
		Path:        m.Path(),
		EncodedPath: m.EncodedPath(),
		Status:      m.Status(),
	}
}

// NewTitleOutput projects a title
func NewTitleOutput(t *catalog.Title) *TitleOutput {
	return &TitleOutput{
		ID:           t.ID,
		Title:        t.Title(),
		Description:  t.Description(),
		YearLaunched: t.YearLaunched(),
		Opened:       t.Opened(),
		Published:    t.Published(),
		Duration:     t.Duration(),
		Rating:       t.Rating(),
		Categories:   t.Categories().Slice(),
		Genres:       t.Genres().Slice(),
		CastMembers:  t.CastMembers().Slice(),
		Banner:       mediaOutput(t.Media(catalog.SlotBanner)),
		Thumb:        mediaOutput(t.Media(catalog.SlotThumb)),
		ThumbHalf:    mediaOutput(t.Media(catalog.SlotThumbHalf)),
		Video:        mediaOutput(t.Media(catalog.SlotVideo)),
		Trailer:      mediaOutput(t.Media(catalog.SlotTrailer)),
		Version:      t.Version,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
