package dom

import (
	"maps"
	"sync"

	"github.com/alexisbeaulieu97/prism/internal/ports"
)

// Element is an in-memory document root. It records every write so callers
// can tell a real mutation from a no-op reflection.
type Element struct {
	mu        sync.RWMutex
	attrs     map[string]string
	props     map[string]string
	mutations int
}

// NewElement returns an empty root element.
func NewElement() *Element {
	return &Element{
		attrs: make(map[string]string),
		props: make(map[string]string),
	}
}

func (e *Element) Attribute(name string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.attrs[name]
	return v, ok
}

func (e *Element) SetAttribute(name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.attrs[name] = value
	e.mutations++
}

func (e *Element) Property(name string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.props[name]
	return v, ok
}

func (e *Element) SetProperty(name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.props[name] = value
	e.mutations++
}

// Mutations returns the number of attribute and property writes so far.
func (e *Element) Mutations() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.mutations
}

// Attributes returns a copy of the current attributes.
func (e *Element) Attributes() map[string]string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return maps.Clone(e.attrs)
}

// Properties returns a copy of the current custom properties.
func (e *Element) Properties() map[string]string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return maps.Clone(e.props)
}

var _ ports.Surface = (*Element)(nil)
