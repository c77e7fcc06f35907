// Package events holds the broker-neutral message contracts shared by the
// NATS and Kafka adapters.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/narwhalmedia/catalog/internal/application/title"
	"github.com/narwhalmedia/catalog/internal/domain/catalog"
	pkgerrors "github.com/narwhalmedia/catalog/pkg/errors"
	"github.com/narwhalmedia/catalog/pkg/interfaces"
)

// Envelope wraps an event with metadata for transport
type Envelope struct {
	ID          string           `json:"id,omitempty"`
	AggregateID string           `json:"aggregate_id"`
	EventType   string           `json:"event_type"`
	OccurredAt  time.Time        `json:"occurred_at"`
	Data        interfaces.Event `json:"data"`
}

// identified is implemented by events carrying their own id.
type identified interface {
	EventID() string
}

// NewEnvelope wraps event for publishing.
func NewEnvelope(event interfaces.Event) Envelope {
	return Envelope{
		ID:          EventID(event),
		AggregateID: event.AggregateID(),
		EventType:   event.EventType(),
		OccurredAt:  time.Unix(event.Timestamp(), 0).UTC(),
		Data:        event,
	}
}

// EventID returns the event's own id, or an empty string.
func EventID(event interfaces.Event) string {
	if e, ok := event.(identified); ok {
		return e.EventID()
	}
	return ""
}

// Marshal encodes the envelope of event as JSON.
func Marshal(event interfaces.Event) ([]byte, error) {
	data, err := json.Marshal(NewEnvelope(event))
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// ErrMalformedResult is returned for encoder results that cannot be decoded.
var ErrMalformedResult = errors.New("malformed encoder result")

// EncoderResult is the message the external encoder sends once it has
// processed a video or trailer.
type EncoderResult struct {
	TitleID     string `json:"title_id"`
	Slot        string `json:"slot"`
	Status      string `json:"status"`
	EncodedPath string `json:"encoded_path"`
}

// DecodeEncoderResult parses an encoder result into a status update command.
func DecodeEncoderResult(data []byte) (title.UpdateMediaStatusCommand, error) {
	var result EncoderResult
	if err := json.Unmarshal(data, &result); err != nil {
		return title.UpdateMediaStatusCommand{}, fmt.Errorf("%w: %v", ErrMalformedResult, err)
	}

	id, err := uuid.Parse(result.TitleID)
	if err != nil {
		return title.UpdateMediaStatusCommand{}, fmt.Errorf("%w: title_id: %v", ErrMalformedResult, err)
	}
	slot, err := catalog.ParseSlotKind(result.Slot)
	if err != nil {
		return title.UpdateMediaStatusCommand{}, fmt.Errorf("%w: %v", ErrMalformedResult, err)
	}
	status, err := catalog.ParseMediaStatus(result.Status)
	if err != nil {
		return title.UpdateMediaStatusCommand{}, fmt.Errorf("%w: %v", ErrMalformedResult, err)
	}

	return title.UpdateMediaStatusCommand{
		TitleID:     id,
		Slot:        slot,
		Status:      status,
		EncodedPath: result.EncodedPath,
	}, nil
}

// MediaStatusUpdater applies encoder feedback to a title
type MediaStatusUpdater interface {
	UpdateMediaStatus(ctx context.Context, cmd title.UpdateMediaStatusCommand) (*title.TitleOutput, error)
}

// Disposition tells a consumer what to do with a processed message.
type Disposition int

const (
	// Ack acknowledges a handled message.
	Ack Disposition = iota
	// Retry redelivers the message later.
	Retry
	// Drop discards a message that can never succeed.
	Drop
)

func (d Disposition) String() string {
	switch d {
	case Ack:
		return "ack"
	case Retry:
		return "retry"
	case Drop:
		return "drop"
	}
	return "unknown"
}

// ResultProcessor turns raw encoder results into status updates.
type ResultProcessor struct {
	updater MediaStatusUpdater
	logger  *zap.Logger
}

// NewResultProcessor creates a new encoder result processor
func NewResultProcessor(updater MediaStatusUpdater, logger *zap.Logger) *ResultProcessor {
	return &ResultProcessor{
		updater: updater,
		logger:  logger.Named("encoder_results"),
	}
}

// Process applies one encoder result. Malformed messages and rejected
// updates are dropped, other failures are retried.
func (p *ResultProcessor) Process(ctx context.Context, data []byte) (Disposition, error) {
	cmd, err := DecodeEncoderResult(data)
	if err != nil {
		return Drop, err
	}

	if _, err := p.updater.UpdateMediaStatus(ctx, cmd); err != nil {
		switch title.Classify(err) {
		case pkgerrors.ErrorTypeNotFound, pkgerrors.ErrorTypeBadRequest, pkgerrors.ErrorTypeConflict:
			return Drop, err
		default:
			return Retry, err
		}
	}

	p.logger.Info("applied encoder result",
		zap.String("title_id", cmd.TitleID.String()),
		zap.String("slot", string(cmd.Slot)),
		zap.String("status", string(cmd.Status)))
	return Ack, nil
}
