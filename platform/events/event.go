// Package events provides a minimal in-process event bus used to decouple
// the domain modules from their subscribers.
package events

import (
	"context"
	"time"
)

// Event is implemented by every domain event.
type Event interface {
	// EventName identifies the event type; subscribers key on it.
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent carries the fields shared by all events.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent stamps a new event with the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler processes events of a single type.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus publishes domain events to registered handlers.
type Bus interface {
	// Publish delivers the event to its handlers asynchronously.
	Publish(ctx context.Context, event Event)
	// PublishSync delivers the event and waits for every handler.
	PublishSync(ctx context.Context, event Event) error
	// Subscribe registers a handler under the event's EventName.
	Subscribe(eventName string, handler Handler)
}
