package catalog

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDescriptive() Descriptive {
	return Descriptive{
		Title:        "The Matrix",
		Description:  "A hacker learns the truth about reality",
		YearLaunched: 1999,
		Opened:       true,
		Published:    true,
		Duration:     136,
		Rating:       RatingRate14,
	}
}

func TestNewTitle(t *testing.T) {
	title, err := NewTitle(validDescriptive())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, title.ID)
	assert.Equal(t, 1, title.Version)
	assert.Equal(t, "The Matrix", title.Title())
	assert.Equal(t, 1999, title.YearLaunched())
	assert.True(t, title.Opened())
	assert.True(t, title.Published())
	assert.Equal(t, 136, title.Duration())
	assert.Equal(t, RatingRate14, title.Rating())
	assert.Zero(t, title.Categories().Len())
	assert.Zero(t, title.Genres().Len())
	assert.Zero(t, title.CastMembers().Len())
	for _, kind := range SlotKinds {
		assert.Nil(t, title.Media(kind), kind)
	}
}

func TestNewTitle_AggregatesViolationsInFieldOrder(t *testing.T) {
	d := validDescriptive()
	d.Title = ""
	d.Description = strings.Repeat("a", 4001)

	title, err := NewTitle(d)
	require.Error(t, err)
	assert.Nil(t, title)

	var verr *EntityValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Errors, 2)
	assert.Equal(t, "title", verr.Errors[0].Field)
	assert.Equal(t, "is required", verr.Errors[0].Message)
	assert.Equal(t, "description", verr.Errors[1].Field)
	assert.Contains(t, verr.Errors[1].Message, "4000")
	assert.Contains(t, err.Error(), "title is required; description should be less or equal 4000")
}

func TestNewTitle_TitleTooLong(t *testing.T) {
	d := validDescriptive()
	d.Title = strings.Repeat("x", 256)

	_, err := NewTitle(d)

	var verr *EntityValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, "title", verr.Errors[0].Field)
}

func TestNewTitle_InvalidRating(t *testing.T) {
	d := validDescriptive()
	d.Rating = "PG"

	_, err := NewTitle(d)
	assert.True(t, IsEntityValidationError(err))
}

func TestTitle_ValidateReportsWithoutFailing(t *testing.T) {
	title := RestoreTitle(NewBaseAggregate(), Descriptive{Rating: RatingL}, nil, nil, nil, nil)

	n := NewNotification()
	title.Validate(n)

	require.True(t, n.HasErrors())
	errs := n.Errors()
	require.Len(t, errs, 2)
	assert.Equal(t, "title", errs[0].Field)
	assert.Equal(t, "description", errs[1].Field)
}

func TestTitle_UpdateDescriptive(t *testing.T) {
	title, err := NewTitle(validDescriptive())
	require.NoError(t, err)

	d := Descriptive{
		Title:        "The Matrix Reloaded",
		Description:  "Neo returns",
		YearLaunched: 2003,
		Duration:     138,
		Rating:       RatingRate16,
	}
	require.NoError(t, title.UpdateDescriptive(d))

	assert.Equal(t, d, title.Descriptive())
	assert.False(t, title.Opened())
	assert.Equal(t, 2, title.Version)
}

func TestTitle_UpdateDescriptiveKeepsStateOnError(t *testing.T) {
	title, err := NewTitle(validDescriptive())
	require.NoError(t, err)

	err = title.UpdateDescriptive(Descriptive{Rating: RatingL})
	require.Error(t, err)

	assert.Equal(t, validDescriptive(), title.Descriptive())
	assert.Equal(t, 1, title.Version)
}

func TestTitle_UpdateSlot(t *testing.T) {
	title, err := NewTitle(validDescriptive())
	require.NoError(t, err)

	require.NoError(t, title.UpdateSlot(SlotVideo, "id/video.mp4"))
	require.NotNil(t, title.Media(SlotVideo))
	assert.Equal(t, "id/video.mp4", title.Media(SlotVideo).Path())
	assert.Equal(t, MediaStatusPending, title.Media(SlotVideo).Status())

	require.NoError(t, title.SendToProcessing(SlotVideo))
	require.NoError(t, title.UpdateSlot(SlotVideo, "id/video.mkv"))
	assert.Equal(t, "id/video.mkv", title.Media(SlotVideo).Path())
	assert.Equal(t, MediaStatusProcessing, title.Media(SlotVideo).Status())

	assert.ErrorIs(t, title.UpdateSlot("poster", "x"), ErrInvalidSlot)
}

func TestTitle_EncodingTransitions(t *testing.T) {
	title, err := NewTitle(validDescriptive())
	require.NoError(t, err)

	assert.ErrorIs(t, title.SendToProcessing(SlotVideo), ErrNoMediaPresent)
	assert.ErrorIs(t, title.MarkEncoded(SlotTrailer, "enc/trailer"), ErrNoMediaPresent)
	assert.ErrorIs(t, title.MarkEncodingFailed(SlotTrailer), ErrNoMediaPresent)

	require.NoError(t, title.UpdateSlot(SlotTrailer, "id/trailer.mp4"))
	require.NoError(t, title.SendToProcessing(SlotTrailer))
	require.NoError(t, title.MarkEncoded(SlotTrailer, "enc/trailer"))

	trailer := title.Media(SlotTrailer)
	assert.Equal(t, MediaStatusCompleted, trailer.Status())
	assert.Equal(t, "enc/trailer", trailer.EncodedPath())

	require.NoError(t, title.UpdateSlot(SlotBanner, "id/banner.png"))
	assert.ErrorIs(t, title.SendToProcessing(SlotBanner), ErrSlotNotEncodable)
}

func TestTitle_Relations(t *testing.T) {
	title, err := NewTitle(validDescriptive())
	require.NoError(t, err)

	a, b := uuid.New(), uuid.New()
	title.AddCategory(a)
	title.AddCategory(a)
	title.AddCategory(b)
	assert.Equal(t, 2, title.Categories().Len())

	title.RemoveCategory(a)
	assert.False(t, title.Categories().Contains(a))
	assert.True(t, title.Categories().Contains(b))

	title.AddGenre(a)
	title.AddCastMember(b)
	title.RemoveAllCategories()
	title.RemoveAllGenres()
	title.RemoveAllCastMembers()
	assert.Zero(t, title.Categories().Len())
	assert.Zero(t, title.Genres().Len())
	assert.Zero(t, title.CastMembers().Len())
}

func TestTitle_RelationsAreCopies(t *testing.T) {
	title, err := NewTitle(validDescriptive())
	require.NoError(t, err)

	set := title.Genres()
	set.Add(uuid.New())

	assert.Zero(t, title.Genres().Len())
}

func TestTitle_StoredPaths(t *testing.T) {
	title, err := NewTitle(validDescriptive())
	require.NoError(t, err)

	require.NoError(t, title.UpdateSlot(SlotTrailer, "t"))
	require.NoError(t, title.UpdateSlot(SlotBanner, "b"))
	require.NoError(t, title.UpdateSlot(SlotVideo, "v"))

	assert.Equal(t, []string{"b", "v", "t"}, title.StoredPaths())
}
