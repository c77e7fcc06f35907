package catalog

// MediaStatus tracks the encoding state of a stored asset.
type MediaStatus string

const (
	MediaStatusPending    MediaStatus = "pending"
	MediaStatusProcessing MediaStatus = "processing"
	MediaStatusCompleted  MediaStatus = "completed"
	MediaStatusError      MediaStatus = "error"
)

// ParseMediaStatus converts a raw status into a MediaStatus
func ParseMediaStatus(s string) (MediaStatus, error) {
	switch status := MediaStatus(s); status {
	case MediaStatusPending, MediaStatusProcessing, MediaStatusCompleted, MediaStatusError:
		return status, nil
	default:
		return "", ErrInvalidMediaStatus
	}
}

// SlotKind identifies one of the five media slots of a title.
type SlotKind string

const (
	SlotBanner    SlotKind = "banner"
	SlotThumb     SlotKind = "thumb"
	SlotThumbHalf SlotKind = "thumb_half"
	SlotVideo     SlotKind = "video"
	SlotTrailer   SlotKind = "trailer"
)

// SlotKinds lists every slot in upload order: images first, then video, then trailer.
var SlotKinds = []SlotKind{SlotBanner, SlotThumb, SlotThumbHalf, SlotVideo, SlotTrailer}

// ParseSlotKind converts a raw slot name into a SlotKind
func ParseSlotKind(s string) (SlotKind, error) {
	for _, k := range SlotKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", ErrInvalidSlot
}

// Encodable reports whether the slot holds media that goes through encoding.
func (k SlotKind) Encodable() bool {
	return k == SlotVideo || k == SlotTrailer
}

// Media is one stored asset. A nil *Media is an empty slot.
type Media struct {
	path        string
	encodedPath string
	status      MediaStatus
}

// NewMedia creates a pending media for a stored path
func NewMedia(path string) *Media {
	return &Media{path: path, status: MediaStatusPending}
}

// RestoreMedia rebuilds a media from persisted state
func RestoreMedia(path, encodedPath string, status MediaStatus) *Media {
	return &Media{path: path, encodedPath: encodedPath, status: status}
}

// Path returns the storage path
func (m *Media) Path() string {
	if m == nil {
		return ""
	}
	return m.path
}

// EncodedPath returns the encoded output path, if any
func (m *Media) EncodedPath() string {
	if m == nil {
		return ""
	}
	return m.encodedPath
}

// Status returns the processing status
func (m *Media) Status() MediaStatus {
	if m == nil {
		return ""
	}
	return m.status
}

// SendToProcessing marks the media as handed to the encoder.
func (m *Media) SendToProcessing() error {
	if m == nil {
		return ErrNoMediaPresent
	}
	m.status = MediaStatusProcessing
	return nil
}

// MarkEncoded records the encoder output. It may be called straight from pending.
// Completion requires a non-empty encoded path.
func (m *Media) MarkEncoded(encodedPath string) error {
	if m == nil {
		return ErrNoMediaPresent
	}
	if encodedPath == "" {
		return &EntityValidationError{
			Entity: "media",
			Errors: []*ValidationError{NewValidationError("encoded_path", "is required")},
		}
	}
	m.encodedPath = encodedPath
	m.status = MediaStatusCompleted
	return nil
}

// MarkEncodingFailed records that the encoder gave up on this media.
func (m *Media) MarkEncodingFailed() error {
	if m == nil {
		return ErrNoMediaPresent
	}
	m.status = MediaStatusError
	return nil
}

func (m *Media) replacePath(path string) *Media {
	if m == nil {
		return NewMedia(path)
	}
	m.path = path
	return m
}
