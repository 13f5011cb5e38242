// Package events provides the in-process event bus modules use to react to
// each other's state changes without importing each other.
package events

import (
	"context"
	"time"
)

// Event is anything a module can publish on the bus.
type Event interface {
	// EventName is the routing key handlers subscribe under.
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent supplies the timestamp; concrete events embed it.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// NewBaseEvent stamps an event with the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler consumes events delivered by the bus.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts a plain function into a Handler.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus routes published events to the handlers subscribed under their name.
type Bus interface {
	// Publish delivers asynchronously; handler failures are logged, not
	// returned.
	Publish(ctx context.Context, event Event)

	// PublishSync delivers inline and returns the combined handler errors.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe registers handler under eventName, which must equal the
	// EventName of the events it should receive.
	Subscribe(eventName string, handler Handler)
}
