package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/alexisbeaulieu97/prism/internal/ports"
)

// ErrUnavailable is returned by UnavailableStore for every operation.
var ErrUnavailable = errors.New("storage unavailable")

// MemoryStore keeps entries in process memory. Several providers sharing one
// MemoryStore behave like browsing contexts sharing one origin's storage.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
	writes  int
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

func (m *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	m.writes++
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// Writes reports how many Set calls have succeeded.
func (m *MemoryStore) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

// UnavailableStore models disabled storage (private mode, blocked origin).
type UnavailableStore struct {
	Err error
}

func (u UnavailableStore) err() error {
	if u.Err != nil {
		return u.Err
	}
	return ErrUnavailable
}

func (u UnavailableStore) Get(context.Context, string) (string, bool, error) {
	return "", false, u.err()
}

func (u UnavailableStore) Set(context.Context, string, string) error {
	return u.err()
}

func (u UnavailableStore) Delete(context.Context, string) error {
	return u.err()
}

var (
	_ ports.KeyValueStore = (*MemoryStore)(nil)
	_ ports.KeyValueStore = UnavailableStore{}
)
