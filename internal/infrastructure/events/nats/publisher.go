package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/narwhalmedia/catalog/internal/infrastructure/events"
	"github.com/narwhalmedia/catalog/pkg/interfaces"
)

// PublishTimeout bounds a single JetStream publish.
const PublishTimeout = 5 * time.Second

// StreamPublisher is the part of jetstream.JetStream used for publishing
type StreamPublisher interface {
	Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// Publisher implements interfaces.EventPublisher using NATS JetStream.
// Events are published on a subject equal to their event type.
type Publisher struct {
	js     StreamPublisher
	logger *zap.Logger
}

// NewPublisher creates a new NATS event publisher
func NewPublisher(js StreamPublisher, logger *zap.Logger) *Publisher {
	return &Publisher{
		js:     js,
		logger: logger.Named("publisher"),
	}
}

// Publish publishes an event to JetStream
func (p *Publisher) Publish(ctx context.Context, event interfaces.Event) error {
	subject := event.EventType()

	data, err := events.Marshal(event)
	if err != nil {
		return err
	}

	var opts []jetstream.PublishOpt
	if id := events.EventID(event); id != "" {
		opts = append(opts, jetstream.WithMsgID(id))
	}

	pubCtx, cancel := context.WithTimeout(ctx, PublishTimeout)
	defer cancel()

	ack, err := p.js.Publish(pubCtx, subject, data, opts...)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("event published",
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_id", event.AggregateID()),
		zap.String("subject", subject),
		zap.Uint64("sequence", ack.Sequence),
		zap.String("stream", ack.Stream),
	)
	return nil
}

// Close is a no-op; the connection is owned by Client.
func (p *Publisher) Close() error {
	return nil
}

var _ interfaces.EventPublisher = (*Publisher)(nil)
