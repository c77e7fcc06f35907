package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Event type names. They double as message subjects on the broker.
const (
	EventTitleCreated       = "title.created"
	EventTitleUpdated       = "title.updated"
	EventTitleDeleted       = "title.deleted"
	EventTitleMediaUploaded = "title.media_uploaded"
)

// TitleEvent is raised after a title change is committed.
type TitleEvent struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	TitleID    uuid.UUID `json:"title_id"`
	Version    int       `json:"version"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventID returns the unique event id, used for broker deduplication
func (e *TitleEvent) EventID() string { return e.ID.String() }

// EventType returns the event type
func (e *TitleEvent) EventType() string { return e.Type }

// Timestamp returns the unix time the event occurred at
func (e *TitleEvent) Timestamp() int64 { return e.OccurredAt.Unix() }

// AggregateID returns the title id
func (e *TitleEvent) AggregateID() string { return e.TitleID.String() }

func newTitleEvent(eventType string, t *Title) *TitleEvent {
	return &TitleEvent{
		ID:         uuid.New(),
		Type:       eventType,
		TitleID:    t.ID,
		Version:    t.Version,
		OccurredAt: time.Now().UTC(),
	}
}

// NewTitleCreatedEvent creates a title.created event
func NewTitleCreatedEvent(t *Title) *TitleEvent {
	return newTitleEvent(EventTitleCreated, t)
}

// NewTitleUpdatedEvent creates a title.updated event
func NewTitleUpdatedEvent(t *Title) *TitleEvent {
	return newTitleEvent(EventTitleUpdated, t)
}

// NewTitleDeletedEvent creates a title.deleted event
func NewTitleDeletedEvent(t *Title) *TitleEvent {
	return newTitleEvent(EventTitleDeleted, t)
}

// MediaUploadedEvent asks the encoder to process a freshly stored video or trailer.
type MediaUploadedEvent struct {
	TitleEvent
	Slot SlotKind `json:"slot"`
	Path string   `json:"path"`
}

// NewMediaUploadedEvent creates a title.media_uploaded event for one slot
func NewMediaUploadedEvent(t *Title, slot SlotKind) *MediaUploadedEvent {
	return &MediaUploadedEvent{
		TitleEvent: *newTitleEvent(EventTitleMediaUploaded, t),
		Slot:       slot,
		Path:       t.Media(slot).Path(),
	}
}
