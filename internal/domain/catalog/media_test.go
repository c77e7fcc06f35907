package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedia_NilSlotCannotTransition(t *testing.T) {
	var m *Media

	assert.ErrorIs(t, m.SendToProcessing(), ErrNoMediaPresent)
	assert.ErrorIs(t, m.MarkEncoded("encoded/path"), ErrNoMediaPresent)
	assert.ErrorIs(t, m.MarkEncodingFailed(), ErrNoMediaPresent)
	assert.Empty(t, m.Path())
	assert.Empty(t, m.Status())
}

func TestMedia_StateMachine(t *testing.T) {
	m := NewMedia("title/video.mp4")
	assert.Equal(t, MediaStatusPending, m.Status())

	require.NoError(t, m.SendToProcessing())
	assert.Equal(t, MediaStatusProcessing, m.Status())

	require.NoError(t, m.MarkEncoded("title/video/hls"))
	assert.Equal(t, MediaStatusCompleted, m.Status())
	assert.Equal(t, "title/video/hls", m.EncodedPath())
	assert.Equal(t, "title/video.mp4", m.Path())
}

func TestMedia_MarkEncodedRequiresPath(t *testing.T) {
	m := NewMedia("title/trailer.mp4")
	require.NoError(t, m.SendToProcessing())

	err := m.MarkEncoded("")
	var verr *EntityValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "encoded_path", verr.Errors[0].Field)
	assert.Equal(t, MediaStatusProcessing, m.Status())
	assert.Empty(t, m.EncodedPath())
}

func TestMedia_MarkEncodedFromPending(t *testing.T) {
	m := NewMedia("p")

	require.NoError(t, m.MarkEncoded("e"))
	assert.Equal(t, MediaStatusCompleted, m.Status())
}

func TestParseMediaStatus(t *testing.T) {
	s, err := ParseMediaStatus("processing")
	require.NoError(t, err)
	assert.Equal(t, MediaStatusProcessing, s)

	_, err = ParseMediaStatus("done")
	assert.ErrorIs(t, err, ErrInvalidMediaStatus)
}

func TestParseSlotKind(t *testing.T) {
	k, err := ParseSlotKind("thumb_half")
	require.NoError(t, err)
	assert.Equal(t, SlotThumbHalf, k)
	assert.False(t, k.Encodable())
	assert.True(t, SlotTrailer.Encodable())

	_, err = ParseSlotKind("poster")
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestIDSet(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	s := NewIDSet(a, b, a)

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Equal(NewIDSet(b, a)))
	assert.False(t, s.Equal(NewIDSet(a)))

	var zero IDSet
	zero.Add(a)
	assert.True(t, zero.Contains(a))

	ids := s.Slice()
	require.Len(t, ids, 2)
	assert.Less(t, ids[0].String(), ids[1].String())
}

func TestRelatedAggregateNotFoundError(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	b := uuid.MustParse("00000000-0000-0000-0000-00000000000b")

	err := &RelatedAggregateNotFoundError{Kind: RelationGenre, IDs: []uuid.UUID{b, a}}

	assert.Equal(t,
		"related genre id(s) not found: 00000000-0000-0000-0000-00000000000b, 00000000-0000-0000-0000-00000000000a",
		err.Error())
	assert.True(t, IsRelatedAggregateNotFound(err))
}

func TestReferenceEntities(t *testing.T) {
	c, err := NewCategory("Movies", "", true)
	require.NoError(t, err)
	assert.Equal(t, "Movies", c.Name)

	_, err = NewGenre("", true)
	assert.True(t, IsEntityValidationError(err))

	_, err = NewCastMember("Keanu Reeves", "extra")
	var verr *EntityValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "type", verr.Errors[0].Field)
}
