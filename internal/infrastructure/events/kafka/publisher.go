package kafka

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/narwhalmedia/catalog/internal/config"
	"github.com/narwhalmedia/catalog/internal/infrastructure/events"
	"github.com/narwhalmedia/catalog/pkg/interfaces"
)

// Publisher implements interfaces.EventPublisher on a single Kafka topic.
// Messages are keyed by title id so events of one title stay ordered.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger
}

// NewProducerConfig returns the sarama configuration used by the publisher
func NewProducerConfig(clientID string) *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = clientID
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Return.Successes = true
	cfg.Producer.Idempotent = true
	cfg.Net.MaxOpenRequests = 1
	return cfg
}

// NewPublisher creates a new Kafka event publisher
func NewPublisher(cfg config.KafkaConfig, logger *zap.Logger) (*Publisher, error) {
	producer, err := sarama.NewSyncProducer(cfg.Brokers, NewProducerConfig(cfg.ClientID))
	if err != nil {
		return nil, fmt.Errorf("creating producer: %w", err)
	}
	return NewPublisherWithProducer(producer, cfg.Topic, logger), nil
}

// NewPublisherWithProducer wraps an existing producer
func NewPublisherWithProducer(producer sarama.SyncProducer, topic string, logger *zap.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   logger.Named("kafka_publisher"),
	}
}

// Publish publishes an event to Kafka
func (p *Publisher) Publish(ctx context.Context, event interfaces.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := events.Marshal(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.AggregateID()),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.EventType())},
		},
	}
	if id := events.EventID(event); id != "" {
		msg.Headers = append(msg.Headers, sarama.RecordHeader{Key: []byte("event_id"), Value: []byte(id)})
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("sending message: %w", err)
	}

	p.logger.Debug("event published",
		zap.String("event_type", event.EventType()),
		zap.String("topic", p.topic),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset))
	return nil
}

// Close closes the publisher
func (p *Publisher) Close() error {
	return p.producer.Close()
}

var _ interfaces.EventPublisher = (*Publisher)(nil)
