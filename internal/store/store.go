// Package store holds the canonical in-memory preference set and notifies
// subscribers of every change. It performs no I/O.
package store

import (
	"sync"

	"github.com/alexisbeaulieu97/prism/internal/domain/preference"
)

// Subscriber receives the full set after each change.
type Subscriber func(preference.Set)

// Store is the single source of truth for one controller. Set is serialised
// with notification, so subscribers see changes in the order they were made.
// Subscribers must not call Set.
type Store struct {
	dispatch sync.Mutex

	mu     sync.RWMutex
	state  preference.Set
	subs   []subscriberEntry
	nextID int
	diag   preference.DiagnosticFunc
}

type subscriberEntry struct {
	id int
	fn Subscriber
}

// Option customises a Store.
type Option func(*Store)

// WithDiagnostics routes coercion diagnostics to fn.
func WithDiagnostics(fn preference.DiagnosticFunc) Option {
	return func(s *Store) {
		s.diag = fn
	}
}

// New creates a store holding initial, normalised.
func New(initial preference.Set, opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	s.state = initial.Normalize(s.diag)
	return s
}

// Get returns the current set.
func (s *Store) Get() preference.Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Set merges patch into the current set and notifies subscribers. It reports
// whether the set changed; an unchanged set notifies nobody.
func (s *Store) Set(patch preference.Patch) bool {
	s.dispatch.Lock()
	defer s.dispatch.Unlock()

	s.mu.Lock()
	prev := s.state
	next := prev.Merge(patch, s.diag)
	if next == prev {
		s.mu.Unlock()
		return false
	}
	s.state = next
	subs := append([]subscriberEntry(nil), s.subs...)
	s.mu.Unlock()

	for _, entry := range subs {
		entry.fn(next)
	}
	return true
}

// Subscribe registers fn and returns a function that removes it. The
// returned function is safe to call more than once.
func (s *Store) Subscribe(fn Subscriber) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriberEntry{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, entry := range s.subs {
				if entry.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}
