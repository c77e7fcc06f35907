package nats

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/narwhalmedia/catalog/internal/config"
	"github.com/narwhalmedia/catalog/internal/domain/catalog"
)

type published struct {
	subject string
	data    []byte
	opts    int
}

type fakeStream struct {
	messages []published
	err      error
}

func (f *fakeStream) Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("publish without deadline")
	}
	f.messages = append(f.messages, published{subject: subject, data: payload, opts: len(opts)})
	return &jetstream.PubAck{Stream: "CATALOG", Sequence: uint64(len(f.messages))}, nil
}

func newTitle(t *testing.T) *catalog.Title {
	tt, err := catalog.NewTitle(catalog.Descriptive{
		Title: "Heat", Description: "d", YearLaunched: 1995, Duration: 170, Rating: catalog.RatingRate16,
	})
	require.NoError(t, err)
	return tt
}

func TestPublisher_PublishUsesEventTypeAsSubject(t *testing.T) {
	stream := &fakeStream{}
	publisher := NewPublisher(stream, zaptest.NewLogger(t))

	tt := newTitle(t)
	require.NoError(t, tt.UpdateSlot(catalog.SlotVideo, tt.ID.String()+"/video.mp4"))
	event := catalog.NewMediaUploadedEvent(tt, catalog.SlotVideo)

	require.NoError(t, publisher.Publish(context.Background(), event))
	require.Len(t, stream.messages, 1)

	msg := stream.messages[0]
	assert.Equal(t, catalog.EventTitleMediaUploaded, msg.subject)
	assert.Equal(t, 1, msg.opts, "message id is set for deduplication")

	var envelope struct {
		EventType string `json:"event_type"`
		Data      struct {
			Slot string `json:"slot"`
			Path string `json:"path"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msg.data, &envelope))
	assert.Equal(t, catalog.EventTitleMediaUploaded, envelope.EventType)
	assert.Equal(t, "video", envelope.Data.Slot)
	assert.Equal(t, tt.ID.String()+"/video.mp4", envelope.Data.Path)
}

func TestPublisher_PublishError(t *testing.T) {
	stream := &fakeStream{err: errors.New("no responders")}
	publisher := NewPublisher(stream, zaptest.NewLogger(t))

	err := publisher.Publish(context.Background(), catalog.NewTitleCreatedEvent(newTitle(t)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no responders")
}

func TestStreamConfigs(t *testing.T) {
	cfg := config.Default().Broker.NATS
	streams := StreamConfigs(cfg)

	require.Len(t, streams, 2)
	assert.Equal(t, cfg.Stream, streams[0].Name)
	assert.ElementsMatch(t, []string{"title.>", cfg.ResultsSubject}, streams[0].Subjects)
	assert.Equal(t, []string{DeadLetterPrefix + ".>"}, streams[1].Subjects)
}

func TestClient_PublishAgainstServer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping NATS test in short mode")
	}

	cfg := config.Default().Broker.NATS
	cfg.Stream = "CATALOG_TEST"
	cfg.ResultsSubject = "encoder.results.test"
	cfg.MaxReconnects = 0
	cfg.ReconnectWait = 100 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, cleanup, err := NewClient(ctx, cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Skip("NATS not available:", err)
	}
	defer cleanup()

	require.NoError(t, client.Health(ctx))

	publisher := NewPublisher(client.JetStream(), zaptest.NewLogger(t))
	require.NoError(t, publisher.Publish(ctx, catalog.NewTitleCreatedEvent(newTitle(t))))
}
