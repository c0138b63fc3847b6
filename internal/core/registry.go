package core

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrNotFound = errors.New("name not registered")
	ErrExists   = errors.New("name already registered")
)

// Registry maps names to values, for example mixin names used by class
// definition files.
type Registry[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// NewRegistry creates an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{items: make(map[string]T)}
}

// Register adds value under name. Registering a name twice fails with ErrExists.
func (r *Registry[T]) Register(name string, value T) error {
	if name == "" {
		return errors.New("registry: empty name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; exists {
		return fmt.Errorf("%q: %w", name, ErrExists)
	}
	r.items[name] = value
	return nil
}

// Lookup returns the value registered under name, or ErrNotFound.
func (r *Registry[T]) Lookup(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.items[name]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return v, nil
}

// Names returns all registered names, sorted.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
