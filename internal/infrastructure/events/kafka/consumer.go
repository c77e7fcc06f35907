package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/narwhalmedia/catalog/internal/config"
	"github.com/narwhalmedia/catalog/internal/infrastructure/events"
)

// ResultsConsumer applies encoder results read from a Kafka topic.
type ResultsConsumer struct {
	group        sarama.ConsumerGroup
	topic        string
	maxDeliver   int
	retryBackoff time.Duration
	processor    *events.ResultProcessor
	logger       *zap.Logger
}

// NewResultsConsumer joins the consumer group named after the service
func NewResultsConsumer(cfg config.KafkaConfig, processor *events.ResultProcessor, logger *zap.Logger) (*ResultsConsumer, error) {
	saramaCfg := sarama.NewConfig()
	saramaCfg.ClientID = cfg.ClientID
	saramaCfg.Consumer.Return.Errors = true
	saramaCfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.ClientID+"-encoder-results", saramaCfg)
	if err != nil {
		return nil, fmt.Errorf("creating consumer group: %w", err)
	}

	return &ResultsConsumer{
		group:        group,
		topic:        cfg.ResultsTopic,
		maxDeliver:   cfg.MaxDeliver,
		retryBackoff: cfg.RetryBackoff,
		processor:    processor,
		logger:       logger.Named("kafka_results_consumer"),
	}, nil
}

// Start consumes until ctx is cancelled
func (c *ResultsConsumer) Start(ctx context.Context) error {
	go func() {
		for err := range c.group.Errors() {
			c.logger.Error("consumer group error", zap.Error(err))
		}
	}()

	for {
		err := c.group.Consume(ctx, []string{c.topic}, c)
		if err != nil && !errors.Is(err, sarama.ErrClosedConsumerGroup) {
			return fmt.Errorf("consuming messages: %w", err)
		}
		if ctx.Err() != nil || errors.Is(err, sarama.ErrClosedConsumerGroup) {
			return nil
		}
	}
}

// ConsumeClaim implements sarama.ConsumerGroupHandler. A retryable failure
// is processed again after a growing backoff until maxDeliver attempts have
// been made, then the message is marked and skipped. The session ends
// without marking when its context is cancelled during a backoff.
func (c *ResultsConsumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		if err := c.handle(session.Context(), message); err != nil {
			return err
		}
		session.MarkMessage(message, "")
	}
	return nil
}

func (c *ResultsConsumer) handle(ctx context.Context, message *sarama.ConsumerMessage) error {
	for attempt := 1; ; attempt++ {
		disposition, err := c.processor.Process(ctx, message.Value)
		switch disposition {
		case events.Retry:
			if c.maxDeliver > 0 && attempt >= c.maxDeliver {
				c.logger.Error("encoder result retries exhausted, skipping",
					zap.Int32("partition", message.Partition),
					zap.Int64("offset", message.Offset),
					zap.Int("attempts", attempt),
					zap.Error(err))
				return nil
			}
			c.logger.Warn("encoder result failed, will retry",
				zap.Int32("partition", message.Partition),
				zap.Int64("offset", message.Offset),
				zap.Int("attempt", attempt),
				zap.Error(err))

			timer := time.NewTimer(c.retryBackoff * time.Duration(attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
			continue
		case events.Drop:
			c.logger.Error("dropping encoder result",
				zap.Int32("partition", message.Partition),
				zap.Int64("offset", message.Offset),
				zap.Error(err))
		}
		return nil
	}
}

// Setup implements sarama.ConsumerGroupHandler
func (c *ResultsConsumer) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

// Cleanup implements sarama.ConsumerGroupHandler
func (c *ResultsConsumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// Close leaves the consumer group
func (c *ResultsConsumer) Close() error {
	return c.group.Close()
}
