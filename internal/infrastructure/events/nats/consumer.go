package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/narwhalmedia/catalog/internal/config"
	"github.com/narwhalmedia/catalog/internal/infrastructure/events"
)

// ResultsConsumer applies encoder results published on the results subject.
type ResultsConsumer struct {
	js        jetstream.JetStream
	dlq       StreamPublisher
	processor *events.ResultProcessor
	config    config.NATSConfig
	logger    *zap.Logger
}

// NewResultsConsumer creates a durable consumer for encoder results
func NewResultsConsumer(client *Client, processor *events.ResultProcessor, logger *zap.Logger) *ResultsConsumer {
	return &ResultsConsumer{
		js:        client.JetStream(),
		dlq:       client.JetStream(),
		processor: processor,
		config:    client.config,
		logger:    logger.Named("results_consumer"),
	}
}

// Start consumes until ctx is cancelled.
func (c *ResultsConsumer) Start(ctx context.Context) error {
	consumer, err := c.js.CreateOrUpdateConsumer(ctx, c.config.Stream, jetstream.ConsumerConfig{
		Durable:       c.config.Durable,
		Description:   "Catalog encoder results",
		FilterSubject: c.config.ResultsSubject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       c.config.AckWait,
		MaxDeliver:    c.config.MaxDeliver,
		DeliverPolicy: jetstream.DeliverAllPolicy,
		MaxAckPending: 100,
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	consumeCtx, err := consumer.Consume(func(msg jetstream.Msg) {
		c.handle(ctx, msg)
	})
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	c.logger.Info("consumer started",
		zap.String("stream", c.config.Stream),
		zap.String("subject", c.config.ResultsSubject),
	)

	<-ctx.Done()
	consumeCtx.Stop()
	c.logger.Info("consumer stopped")
	return nil
}

// handle processes a single message
func (c *ResultsConsumer) handle(ctx context.Context, msg jetstream.Msg) {
	disposition, err := c.processor.Process(ctx, msg.Data())

	switch disposition {
	case events.Ack:
		if err := msg.Ack(); err != nil {
			c.logger.Error("failed to acknowledge message", zap.Error(err))
		}
		return
	case events.Retry:
		if !c.exhausted(msg) {
			c.logger.Warn("encoder result failed, will retry",
				zap.String("subject", msg.Subject()),
				zap.Error(err))
			_ = msg.Nak()
			return
		}
	}

	c.sendToDeadLetterQueue(ctx, msg, err)
	_ = msg.Term()
}

// exhausted reports whether the message reached the delivery limit.
func (c *ResultsConsumer) exhausted(msg jetstream.Msg) bool {
	metadata, err := msg.Metadata()
	if err != nil || metadata == nil {
		return false
	}
	return c.config.MaxDeliver > 0 && metadata.NumDelivered >= uint64(c.config.MaxDeliver)
}

// DeadLetterMessage represents a message in the dead letter queue
type DeadLetterMessage struct {
	OriginalSubject string    `json:"original_subject"`
	OriginalData    []byte    `json:"original_data"`
	Error           string    `json:"error"`
	Timestamp       time.Time `json:"timestamp"`
	NumDelivered    uint64    `json:"num_delivered"`
	Stream          string    `json:"stream"`
	Consumer        string    `json:"consumer"`
}

// sendToDeadLetterQueue sends failed messages to the DLQ stream
func (c *ResultsConsumer) sendToDeadLetterQueue(ctx context.Context, msg jetstream.Msg, originalErr error) {
	dlqMessage := DeadLetterMessage{
		OriginalSubject: msg.Subject(),
		OriginalData:    msg.Data(),
		Timestamp:       time.Now().UTC(),
		Consumer:        c.config.Durable,
	}
	if originalErr != nil {
		dlqMessage.Error = originalErr.Error()
	}
	if metadata, err := msg.Metadata(); err == nil && metadata != nil {
		dlqMessage.NumDelivered = metadata.NumDelivered
		dlqMessage.Stream = metadata.Stream
	}

	data, err := json.Marshal(dlqMessage)
	if err != nil {
		c.logger.Error("failed to marshal DLQ message", zap.Error(err))
		return
	}

	subject := DeadLetterPrefix + "." + c.config.Durable
	pubCtx, cancel := context.WithTimeout(ctx, PublishTimeout)
	defer cancel()

	if _, err := c.dlq.Publish(pubCtx, subject, data); err != nil {
		c.logger.Error("failed to send message to DLQ",
			zap.Error(err),
			zap.String("subject", subject),
		)
		return
	}

	c.logger.Warn("message sent to dead letter queue",
		zap.String("original_subject", msg.Subject()),
		zap.String("error", dlqMessage.Error),
		zap.Uint64("deliveries", dlqMessage.NumDelivered),
	)
}
