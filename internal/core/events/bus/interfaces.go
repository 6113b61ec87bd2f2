package bus

import "time"

// EventBus is a thread-safe, in-process pub/sub bus for simulation events.
//
// Handlers subscribe by event type, or by Wildcard to receive everything.
// Publish calls handlers synchronously in the caller goroutine, in
// subscription order, so a simulation replayed with the same seed produces the
// same handler sequence. Handler errors are joined and returned.
//
// Metrics are collected only while at least one observer is registered.
type EventBus interface {
	Publish(event Event) error
	// PublishBatch publishes events in order and joins every handler error.
	PublishBatch(events ...Event) error
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	// Unsubscribe cancels the given Subscription. Nil is ignored.
	Unsubscribe(Subscription) error

	AddObserver(obs EventBusObserver)
	RemoveObserver(obs EventBusObserver)
	GetMetrics() EventBusMetrics
}

// Wildcard subscribes a handler to every event type.
const Wildcard = "*"

// Event is an immutable message carried by the bus.
type Event struct {
	Type   string
	Source string
	// Frame is the simulation frame the event was raised in.
	Frame     uint64
	Timestamp time.Time
	Data      any
}

type (
	EventHandler func(event Event) error
)

// Subscription is a registered handler. Cancel is idempotent.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	Cancel() error
}

// EventBusObserver is notified about every delivery. Observers should return
// quickly.
type EventBusObserver interface {
	OnPublish(eventType string, event Event)
	OnDelivered(eventType string, handlers int, err error, took time.Duration)
}

type EventBusMetrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	SubscribersActive uint64
}
