// Package syncbus propagates preference changes between controllers: a
// synchronous same-page event for controllers sharing a page, and a storage
// poller for controllers in other pages or processes.
package syncbus

import (
	"context"
	"fmt"

	"github.com/alexisbeaulieu97/prism/internal/domain/preference"
	"github.com/alexisbeaulieu97/prism/internal/ports"
)

// Payload keys of a theme-changed event.
const (
	PayloadField  = "field"
	PayloadValue  = "value"
	PayloadOrigin = "origin"
)

type changeEvent struct {
	origin string
	change preference.Change
}

func (e changeEvent) EventType() string {
	return ports.EventThemeChanged
}

func (e changeEvent) Payload() interface{} {
	return map[string]interface{}{
		PayloadField:  string(e.change.Field),
		PayloadValue:  e.change.Value,
		PayloadOrigin: e.origin,
	}
}

// Handler receives a change broadcast by the controller identified by origin.
type Handler func(ctx context.Context, origin string, change preference.Change) error

// Bus carries theme-changed events over a page publisher.
type Bus struct {
	publisher ports.EventPublisher
	logger    ports.Logger
}

// NewBus wraps publisher. A nil publisher yields a bus that drops every
// broadcast.
func NewBus(publisher ports.EventPublisher, logger ports.Logger) *Bus {
	return &Bus{publisher: publisher, logger: logger}
}

// Broadcast dispatches change to every listener on the page. Listeners run
// before Broadcast returns.
func (b *Bus) Broadcast(ctx context.Context, origin string, change preference.Change) {
	if b == nil || b.publisher == nil {
		return
	}
	if err := b.publisher.Publish(ctx, changeEvent{origin: origin, change: change}); err != nil && b.logger != nil {
		b.logger.Warn(ctx, "failed to publish theme change", "field", change.Field, "origin", origin, "error", err)
	}
}

// Listen registers handler for theme-changed events.
func (b *Bus) Listen(handler Handler) (ports.Subscription, error) {
	if b == nil || b.publisher == nil {
		return nopSubscription{}, nil
	}
	return b.publisher.Subscribe(ports.EventThemeChanged, func(ctx context.Context, event ports.DomainEvent) error {
		origin, change, err := Decode(event)
		if err != nil {
			return err
		}
		return handler(ctx, origin, change)
	})
}

// Decode extracts the origin and change carried by a theme-changed event.
// Events published by other code are accepted as long as the payload is a
// map with string field and value entries.
func Decode(event ports.DomainEvent) (string, preference.Change, error) {
	if ce, ok := event.(changeEvent); ok {
		return ce.origin, ce.change, nil
	}
	payload, ok := event.Payload().(map[string]interface{})
	if !ok {
		return "", preference.Change{}, fmt.Errorf("unexpected %s payload %T", event.EventType(), event.Payload())
	}
	name, _ := payload[PayloadField].(string)
	field, ok := preference.ParseField(name)
	if !ok {
		return "", preference.Change{}, fmt.Errorf("unknown preference field %q", name)
	}
	value, ok := payload[PayloadValue].(string)
	if !ok {
		return "", preference.Change{}, fmt.Errorf("missing value for field %s", field)
	}
	origin, _ := payload[PayloadOrigin].(string)
	return origin, preference.Change{Field: field, Value: value}, nil
}

type nopSubscription struct{}

func (nopSubscription) Unsubscribe() {}
