package ports

import "context"

// EventThemeChanged is dispatched within a page after a controller persists a
// preference change.
const EventThemeChanged = "theme-changed"

// DomainEvent represents a significant occurrence that subscribers may react to.
type DomainEvent interface {
	EventType() string
	Payload() interface{}
}

// EventPublisher distributes events to interested subscribers. Dispatch is
// synchronous: Publish returns only after every handler has run, so same-page
// listeners observe a change before the mutating call returns.
// Implementations must be thread-safe.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
}

// EventHandler processes an event of a specific type. Failures are returned
// so publishers can log them and continue delivering to remaining handlers.
type EventHandler func(context.Context, DomainEvent) error

// Subscription represents a registered handler. Callers must invoke
// Unsubscribe to stop receiving events.
type Subscription interface {
	Unsubscribe()
}
