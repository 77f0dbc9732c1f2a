package events

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/alexisbeaulieu97/prism/internal/ports"
)

// PagePublisher dispatches events to the handlers registered within one page.
// Delivery is synchronous and in subscription order. Every event is also
// written to the logger at debug level.
type PagePublisher struct {
	logger ports.Logger
	subs   map[string][]subscriptionEntry
	nextID int
	mu     sync.RWMutex
}

// NewPagePublisher creates a publisher scoped to a single page.
func NewPagePublisher(logger ports.Logger) *PagePublisher {
	return &PagePublisher{
		logger: logger,
		subs:   make(map[string][]subscriptionEntry),
	}
}

// Publish delivers the event to every handler subscribed to its type. Handler
// errors and panics are logged and never stop delivery to the rest.
func (p *PagePublisher) Publish(ctx context.Context, event ports.DomainEvent) error {
	if p == nil || event == nil {
		return nil
	}

	p.mu.RLock()
	handlers := append([]subscriptionEntry(nil), p.subs[event.EventType()]...)
	p.mu.RUnlock()

	if p.logger != nil {
		fields := []interface{}{"event_type", event.EventType(), "handlers", len(handlers)}
		p.logger.Debug(ctx, "page event", append(fields, payloadFields(event.Payload())...)...)
	}

	for _, entry := range handlers {
		if err := p.deliver(ctx, entry.handler, event); err != nil && p.logger != nil {
			p.logger.Warn(ctx, "event handler failed", "event_type", event.EventType(), "error", err)
		}
	}

	return nil
}

func (p *PagePublisher) deliver(ctx context.Context, handler ports.EventHandler, event ports.DomainEvent) (err error) {
	if handler == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return handler(ctx, event)
}

// Subscribe registers a handler for the provided event type.
func (p *PagePublisher) Subscribe(eventType string, handler ports.EventHandler) (ports.Subscription, error) {
	if p == nil || handler == nil {
		return noopSubscription{}, nil
	}
	p.mu.Lock()
	p.nextID++
	id := p.nextID
	p.subs[eventType] = append(p.subs[eventType], subscriptionEntry{id: id, handler: handler})
	p.mu.Unlock()

	return &subscription{
		cancel: func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			handlers := p.subs[eventType]
			for i, entry := range handlers {
				if entry.id == id {
					p.subs[eventType] = append(handlers[:i:i], handlers[i+1:]...)
					break
				}
			}
		},
	}, nil
}

// Subscribers reports how many handlers are registered for eventType.
func (p *PagePublisher) Subscribers(eventType string) int {
	if p == nil {
		return 0
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.subs[eventType])
}

func payloadFields(payload interface{}) []interface{} {
	switch v := payload.(type) {
	case nil:
		return nil
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		fields := make([]interface{}, 0, len(keys)*2)
		for _, key := range keys {
			fields = append(fields, key, v[key])
		}
		return fields
	default:
		return []interface{}{"payload", v}
	}
}

type noopSubscription struct{}

func (noopSubscription) Unsubscribe() {}

type subscription struct {
	once   sync.Once
	cancel func()
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
}

type subscriptionEntry struct {
	id      int
	handler ports.EventHandler
}

var _ ports.EventPublisher = (*PagePublisher)(nil)
