package interfaces

import (
	"context"
)

// Event represents a domain event.
type Event interface {
	// EventType returns the type of the event
	EventType() string

	// Timestamp returns when the event occurred
	Timestamp() int64

	// AggregateID returns the ID of the aggregate that produced the event
	AggregateID() string
}

// EventHandler handles events of a specific type.
type EventHandler interface {
	// Handle processes an event
	Handle(ctx context.Context, event Event) error

	// EventType returns the type of events this handler processes
	EventType() string
}

// EventPublisher delivers committed events to a broker.
type EventPublisher interface {
	// Publish sends an event. It returns once the broker acknowledged it.
	Publish(ctx context.Context, event Event) error

	// Close releases broker resources
	Close() error
}
