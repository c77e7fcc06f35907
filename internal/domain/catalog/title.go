package catalog

import (
	"github.com/google/uuid"
)

// Rating is the content rating of a title.
type Rating string

const (
	RatingER     Rating = "ER"
	RatingL      Rating = "L"
	RatingRate10 Rating = "10"
	RatingRate12 Rating = "12"
	RatingRate14 Rating = "14"
	RatingRate16 Rating = "16"
	RatingRate18 Rating = "18"
)

// Valid reports whether r is a known rating
func (r Rating) Valid() bool {
	switch r {
	case RatingER, RatingL, RatingRate10, RatingRate12, RatingRate14, RatingRate16, RatingRate18:
		return true
	}
	return false
}

// Descriptive holds the seven descriptive fields of a title.
type Descriptive struct {
	Title        string
	Description  string
	YearLaunched int
	Opened       bool
	Published    bool
	Duration     int
	Rating       Rating
}

// Title is the catalog aggregate root for one piece of content.
type Title struct {
	BaseAggregate
	descriptive Descriptive

	banner    *Media
	thumb     *Media
	thumbHalf *Media
	video     *Media
	trailer   *Media

	categories  IDSet
	genres      IDSet
	castMembers IDSet
}

// NewTitle creates a title with empty slots and relations. Every violated
// rule is reported in a single EntityValidationError.
func NewTitle(d Descriptive) (*Title, error) {
	t := &Title{
		BaseAggregate: NewBaseAggregate(),
		descriptive:   d,
		categories:    NewIDSet(),
		genres:        NewIDSet(),
		castMembers:   NewIDSet(),
	}

	n := NewNotification()
	t.Validate(n)
	if err := n.Err("title"); err != nil {
		return nil, err
	}
	return t, nil
}

// RestoreTitle rebuilds a title from persisted state without validating it.
func RestoreTitle(base BaseAggregate, d Descriptive, slots map[SlotKind]*Media, categories, genres, castMembers []uuid.UUID) *Title {
	t := &Title{
		BaseAggregate: base,
		descriptive:   d,
		categories:    NewIDSet(categories...),
		genres:        NewIDSet(genres...),
		castMembers:   NewIDSet(castMembers...),
	}
	for kind, m := range slots {
		if s := t.slot(kind); s != nil {
			*s = m
		}
	}
	return t
}

// Validate re-runs the descriptive rules and reports into h without failing.
func (t *Title) Validate(h ValidationHandler) {
	validateDescriptive(h, t.descriptive)
}

func validateDescriptive(h ValidationHandler, d Descriptive) {
	validateRequiredText(h, "title", d.Title, maxNameLength)
	validateRequiredText(h, "description", d.Description, maxDescriptionLength)
	if !d.Rating.Valid() {
		h.Append(NewValidationError("rating", "is invalid"))
	}
}

// UpdateDescriptive replaces all descriptive fields. The title is left
// untouched when the new values are invalid.
func (t *Title) UpdateDescriptive(d Descriptive) error {
	n := NewNotification()
	validateDescriptive(n, d)
	if err := n.Err("title"); err != nil {
		return err
	}
	t.descriptive = d
	t.touch()
	return nil
}

// Descriptive returns a copy of the descriptive fields
func (t *Title) Descriptive() Descriptive {
	return t.descriptive
}

// Title returns the title text
func (t *Title) Title() string {
	return t.descriptive.Title
}

// Description returns the description
func (t *Title) Description() string {
	return t.descriptive.Description
}

// YearLaunched returns the release year
func (t *Title) YearLaunched() int {
	return t.descriptive.YearLaunched
}

// Opened reports whether the title is publicly visible
func (t *Title) Opened() bool {
	return t.descriptive.Opened
}

// Published reports whether the title is released
func (t *Title) Published() bool {
	return t.descriptive.Published
}

// Duration returns the duration in minutes
func (t *Title) Duration() int {
	return t.descriptive.Duration
}

// Rating returns the content rating
func (t *Title) Rating() Rating {
	return t.descriptive.Rating
}

func (t *Title) slot(kind SlotKind) **Media {
	switch kind {
	case SlotBanner:
		return &t.banner
	case SlotThumb:
		return &t.thumb
	case SlotThumbHalf:
		return &t.thumbHalf
	case SlotVideo:
		return &t.video
	case SlotTrailer:
		return &t.trailer
	}
	return nil
}

// Media returns the media held by a slot, or nil when the slot is empty.
func (t *Title) Media(kind SlotKind) *Media {
	s := t.slot(kind)
	if s == nil {
		return nil
	}
	return *s
}

// UpdateSlot points a slot at a new storage path. An existing slot keeps its status.
func (t *Title) UpdateSlot(kind SlotKind, path string) error {
	s := t.slot(kind)
	if s == nil {
		return ErrInvalidSlot
	}
	*s = (*s).replacePath(path)
	t.touch()
	return nil
}

// StoredPaths returns the storage path of every non-empty slot, in slot order.
func (t *Title) StoredPaths() []string {
	var paths []string
	for _, kind := range SlotKinds {
		if m := t.Media(kind); m != nil && m.Path() != "" {
			paths = append(paths, m.Path())
		}
	}
	return paths
}

func (t *Title) encodable(kind SlotKind) (*Media, error) {
	if t.slot(kind) == nil {
		return nil, ErrInvalidSlot
	}
	if !kind.Encodable() {
		return nil, ErrSlotNotEncodable
	}
	return t.Media(kind), nil
}

// SendToProcessing moves the video or trailer slot to processing.
func (t *Title) SendToProcessing(kind SlotKind) error {
	m, err := t.encodable(kind)
	if err != nil {
		return err
	}
	if err := m.SendToProcessing(); err != nil {
		return err
	}
	t.touch()
	return nil
}

// MarkEncoded completes the video or trailer slot with its encoded path.
func (t *Title) MarkEncoded(kind SlotKind, encodedPath string) error {
	m, err := t.encodable(kind)
	if err != nil {
		return err
	}
	if err := m.MarkEncoded(encodedPath); err != nil {
		return err
	}
	t.touch()
	return nil
}

// MarkEncodingFailed flags the video or trailer slot as failed.
func (t *Title) MarkEncodingFailed(kind SlotKind) error {
	m, err := t.encodable(kind)
	if err != nil {
		return err
	}
	if err := m.MarkEncodingFailed(); err != nil {
		return err
	}
	t.touch()
	return nil
}

// AddCategory adds a category id; adding it twice is a no-op.
func (t *Title) AddCategory(id uuid.UUID) {
	t.categories.Add(id)
}

// RemoveCategory removes a category id
func (t *Title) RemoveCategory(id uuid.UUID) {
	t.categories.Remove(id)
}

// RemoveAllCategories clears the category set
func (t *Title) RemoveAllCategories() {
	t.categories.Clear()
}

// Categories returns the category ids
func (t *Title) Categories() IDSet {
	return NewIDSet(t.categories.Slice()...)
}

// AddGenre adds a genre id; adding it twice is a no-op.
func (t *Title) AddGenre(id uuid.UUID) {
	t.genres.Add(id)
}

// RemoveGenre removes a genre id
func (t *Title) RemoveGenre(id uuid.UUID) {
	t.genres.Remove(id)
}

// RemoveAllGenres clears the genre set
func (t *Title) RemoveAllGenres() {
	t.genres.Clear()
}

// Genres returns the genre ids
func (t *Title) Genres() IDSet {
	return NewIDSet(t.genres.Slice()...)
}

// AddCastMember adds a cast member id; adding it twice is a no-op.
func (t *Title) AddCastMember(id uuid.UUID) {
	t.castMembers.Add(id)
}

// RemoveCastMember removes a cast member id
func (t *Title) RemoveCastMember(id uuid.UUID) {
	t.castMembers.Remove(id)
}

// RemoveAllCastMembers clears the cast member set
func (t *Title) RemoveAllCastMembers() {
	t.castMembers.Clear()
}

// CastMembers returns the cast member ids
func (t *Title) CastMembers() IDSet {
	return NewIDSet(t.castMembers.Slice()...)
}
