package nats

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/narwhalmedia/catalog/internal/application/title"
	"github.com/narwhalmedia/catalog/internal/config"
	"github.com/narwhalmedia/catalog/internal/domain/catalog"
	"github.com/narwhalmedia/catalog/internal/infrastructure/events"
)

// fakeMsg records the acknowledgement chosen by the consumer.
type fakeMsg struct {
	jetstream.Msg
	data      []byte
	delivered uint64
	result    string
}

func (m *fakeMsg) Data() []byte    { return m.data }
func (m *fakeMsg) Subject() string { return "encoder.results" }
func (m *fakeMsg) Ack() error      { m.result = "ack"; return nil }
func (m *fakeMsg) Nak() error      { m.result = "nak"; return nil }
func (m *fakeMsg) Term() error     { m.result = "term"; return nil }
func (m *fakeMsg) Metadata() (*jetstream.MsgMetadata, error) {
	return &jetstream.MsgMetadata{NumDelivered: m.delivered, Stream: "CATALOG"}, nil
}

type updaterFunc func(ctx context.Context, cmd title.UpdateMediaStatusCommand) (*title.TitleOutput, error)

func (f updaterFunc) UpdateMediaStatus(ctx context.Context, cmd title.UpdateMediaStatusCommand) (*title.TitleOutput, error) {
	return f(ctx, cmd)
}

func newConsumer(t *testing.T, updateErr error, dlq *fakeStream) *ResultsConsumer {
	updater := updaterFunc(func(context.Context, title.UpdateMediaStatusCommand) (*title.TitleOutput, error) {
		return nil, updateErr
	})
	cfg := config.Default().Broker.NATS
	cfg.MaxDeliver = 3
	return &ResultsConsumer{
		dlq:       dlq,
		processor: events.NewResultProcessor(updater, zaptest.NewLogger(t)),
		config:    cfg,
		logger:    zaptest.NewLogger(t),
	}
}

func validResult(t *testing.T) []byte {
	data, err := json.Marshal(events.EncoderResult{
		TitleID:     uuid.NewString(),
		Slot:        "video",
		Status:      "completed",
		EncodedPath: "encoded/video.m3u8",
	})
	require.NoError(t, err)
	return data
}

func TestResultsConsumer_Handle(t *testing.T) {
	tests := []struct {
		name      string
		data      func(t *testing.T) []byte
		updateErr error
		delivered uint64
		want      string
		wantDLQ   bool
	}{
		{name: "applied", data: validResult, delivered: 1, want: "ack"},
		{name: "transient failure retries", data: validResult, updateErr: errors.New("db down"), delivered: 1, want: "nak"},
		{name: "retries exhausted", data: validResult, updateErr: errors.New("db down"), delivered: 3, want: "term", wantDLQ: true},
		{name: "unknown title", data: validResult, updateErr: catalog.ErrTitleNotFound, delivered: 1, want: "term", wantDLQ: true},
		{name: "malformed", data: func(*testing.T) []byte { return []byte("{") }, delivered: 1, want: "term", wantDLQ: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dlq := &fakeStream{}
			consumer := newConsumer(t, tt.updateErr, dlq)
			msg := &fakeMsg{data: tt.data(t), delivered: tt.delivered}

			consumer.handle(context.Background(), msg)

			assert.Equal(t, tt.want, msg.result)
			if !tt.wantDLQ {
				assert.Empty(t, dlq.messages)
				return
			}
			require.Len(t, dlq.messages, 1)
			assert.Equal(t, DeadLetterPrefix+"."+consumer.config.Durable, dlq.messages[0].subject)

			var dead DeadLetterMessage
			require.NoError(t, json.Unmarshal(dlq.messages[0].data, &dead))
			assert.Equal(t, msg.data, dead.OriginalData)
			assert.Equal(t, tt.delivered, dead.NumDelivered)
			assert.NotEmpty(t, dead.Error)
		})
	}
}
