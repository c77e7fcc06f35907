package events

import (
	"context"
	"sync"

	"github.com/narwhalmedia/catalog/pkg/interfaces"
)

// InMemoryPublisher delivers events synchronously to local handlers.
// It backs the "memory" broker and tests.
type InMemoryPublisher struct {
	handlers  map[string][]interfaces.EventHandler
	published []interfaces.Event
	mu        sync.RWMutex
	logger    interfaces.Logger
}

// NewInMemoryPublisher creates a new in-memory publisher
func NewInMemoryPublisher(logger interfaces.Logger) *InMemoryPublisher {
	return &InMemoryPublisher{
		handlers: make(map[string][]interfaces.EventHandler),
		logger:   logger,
	}
}

// Publish records the event and hands it to every subscriber of its type.
// Handler failures are logged and never returned.
func (p *InMemoryPublisher) Publish(ctx context.Context, event interfaces.Event) error {
	p.mu.Lock()
	p.published = append(p.published, event)
	handlers := append([]interfaces.EventHandler(nil), p.handlers[event.EventType()]...)
	p.mu.Unlock()

	for _, handler := range handlers {
		if err := handler.Handle(ctx, event); err != nil {
			p.logger.Error("Event handler failed",
				interfaces.String("event_type", event.EventType()),
				interfaces.String("aggregate_id", event.AggregateID()),
				interfaces.Error(err))
		}
	}

	return nil
}

// Subscribe registers a handler for the handler's event type
func (p *InMemoryPublisher) Subscribe(handler interfaces.EventHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.handlers[handler.EventType()] = append(p.handlers[handler.EventType()], handler)
	p.logger.Debug("Event handler subscribed",
		interfaces.String("event_type", handler.EventType()))
}

// Published returns the events seen so far, in publish order.
func (p *InMemoryPublisher) Published() []interfaces.Event {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return append([]interfaces.Event(nil), p.published...)
}

// Close drops all subscriptions
func (p *InMemoryPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.handlers = make(map[string][]interfaces.EventHandler)
	return nil
}

// HandlerFunc adapts a function to interfaces.EventHandler.
type HandlerFunc struct {
	Type string
	Fn   func(ctx context.Context, event interfaces.Event) error
}

// Handle calls Fn
func (h *HandlerFunc) Handle(ctx context.Context, event interfaces.Event) error {
	return h.Fn(ctx, event)
}

// EventType returns Type
func (h *HandlerFunc) EventType() string {
	return h.Type
}
