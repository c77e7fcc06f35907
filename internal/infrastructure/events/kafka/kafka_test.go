package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/narwhalmedia/catalog/internal/application/title"
	"github.com/narwhalmedia/catalog/internal/domain/catalog"
	"github.com/narwhalmedia/catalog/internal/infrastructure/events"
)

func TestPublisher_Publish(t *testing.T) {
	tt, err := catalog.NewTitle(catalog.Descriptive{
		Title: "Heat", Description: "d", YearLaunched: 1995, Duration: 170, Rating: catalog.RatingRate16,
	})
	require.NoError(t, err)

	producer := mocks.NewSyncProducer(t, NewProducerConfig("catalog-test"))
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var decoded struct {
			EventType   string `json:"event_type"`
			AggregateID string `json:"aggregate_id"`
		}
		if err := json.Unmarshal(val, &decoded); err != nil {
			return err
		}
		if decoded.EventType != catalog.EventTitleDeleted || decoded.AggregateID != tt.ID.String() {
			return errors.New("unexpected envelope")
		}
		return nil
	})

	publisher := NewPublisherWithProducer(producer, "catalog.titles", zaptest.NewLogger(t))
	require.NoError(t, publisher.Publish(context.Background(), catalog.NewTitleDeletedEvent(tt)))
	require.NoError(t, publisher.Close())
}

func TestPublisher_PublishFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, NewProducerConfig("catalog-test"))
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	tt, err := catalog.NewTitle(catalog.Descriptive{
		Title: "Heat", Description: "d", YearLaunched: 1995, Duration: 170, Rating: catalog.RatingRate16,
	})
	require.NoError(t, err)

	publisher := NewPublisherWithProducer(producer, "catalog.titles", zaptest.NewLogger(t))
	err = publisher.Publish(context.Background(), catalog.NewTitleCreatedEvent(tt))
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, publisher.Close())
}

type fakeSession struct {
	sarama.ConsumerGroupSession
	ctx    context.Context
	marked []int64
}

func (s *fakeSession) Context() context.Context {
	if s.ctx == nil {
		return context.Background()
	}
	return s.ctx
}
func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.marked = append(s.marked, msg.Offset)
}

type fakeClaim struct {
	sarama.ConsumerGroupClaim
	messages chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

type updaterFunc func(ctx context.Context, cmd title.UpdateMediaStatusCommand) (*title.TitleOutput, error)

func (f updaterFunc) UpdateMediaStatus(ctx context.Context, cmd title.UpdateMediaStatusCommand) (*title.TitleOutput, error) {
	return f(ctx, cmd)
}

func claimOf(values ...[]byte) *fakeClaim {
	ch := make(chan *sarama.ConsumerMessage, len(values))
	for i, v := range values {
		ch <- &sarama.ConsumerMessage{Offset: int64(i), Value: v}
	}
	close(ch)
	return &fakeClaim{messages: ch}
}

func result(t *testing.T) []byte {
	data, err := json.Marshal(events.EncoderResult{
		TitleID: uuid.NewString(), Slot: "trailer", Status: "completed", EncodedPath: "enc/trailer.m3u8",
	})
	require.NoError(t, err)
	return data
}

func TestResultsConsumer_ConsumeClaim(t *testing.T) {
	calls := 0
	updater := updaterFunc(func(context.Context, title.UpdateMediaStatusCommand) (*title.TitleOutput, error) {
		calls++
		return &title.TitleOutput{}, nil
	})
	consumer := &ResultsConsumer{
		processor: events.NewResultProcessor(updater, zaptest.NewLogger(t)),
		logger:    zaptest.NewLogger(t),
	}

	session := &fakeSession{}
	err := consumer.ConsumeClaim(session, claimOf(result(t), []byte("{"), result(t)))
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, []int64{0, 1, 2}, session.marked, "malformed messages are marked so they are not re-read")
}

func TestResultsConsumer_RetryIsCapped(t *testing.T) {
	calls := 0
	updater := updaterFunc(func(context.Context, title.UpdateMediaStatusCommand) (*title.TitleOutput, error) {
		calls++
		return nil, errors.New("db down")
	})
	consumer := &ResultsConsumer{
		maxDeliver:   3,
		retryBackoff: time.Millisecond,
		processor:    events.NewResultProcessor(updater, zaptest.NewLogger(t)),
		logger:       zaptest.NewLogger(t),
	}

	session := &fakeSession{}
	err := consumer.ConsumeClaim(session, claimOf(result(t), result(t)))
	require.NoError(t, err)
	assert.Equal(t, 6, calls)
	assert.Equal(t, []int64{0, 1}, session.marked)
}

func TestResultsConsumer_RetrySucceedsAfterBackoff(t *testing.T) {
	calls := 0
	updater := updaterFunc(func(context.Context, title.UpdateMediaStatusCommand) (*title.TitleOutput, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("db down")
		}
		return &title.TitleOutput{}, nil
	})
	consumer := &ResultsConsumer{
		maxDeliver:   5,
		retryBackoff: time.Millisecond,
		processor:    events.NewResultProcessor(updater, zaptest.NewLogger(t)),
		logger:       zaptest.NewLogger(t),
	}

	session := &fakeSession{}
	require.NoError(t, consumer.ConsumeClaim(session, claimOf(result(t))))
	assert.Equal(t, 2, calls)
	assert.Equal(t, []int64{0}, session.marked)
}

func TestResultsConsumer_CancelDuringBackoffStopsWithoutMarking(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	updater := updaterFunc(func(context.Context, title.UpdateMediaStatusCommand) (*title.TitleOutput, error) {
		cancel()
		return nil, errors.New("db down")
	})
	consumer := &ResultsConsumer{
		retryBackoff: time.Hour,
		processor:    events.NewResultProcessor(updater, zaptest.NewLogger(t)),
		logger:       zaptest.NewLogger(t),
	}

	session := &fakeSession{ctx: ctx}
	err := consumer.ConsumeClaim(session, claimOf(result(t), result(t)))
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, session.marked)
}
