// Package core provides the runtime core tier of micromodel: the synchronous
// event emitter, the named registry, and the pluggable publisher contract.
// Dependencies: internal/primitives.
// Stdlib-only implementation.
package core

import (
	"fmt"
	"sort"
	"sync"
)

// Listener is a callback registered for a named event. A non-nil error aborts
// the dispatch it was called from.
type Listener func(args ...any) error

// ListenerID identifies one registration. IDs start at 1; 0 is never issued.
type ListenerID uint64

type registration struct {
	id ListenerID
	fn Listener
}

// DispatchError reports the listener that failed during Emit.
type DispatchError struct {
	Event    string
	Index    int
	Listener ListenerID
	Err      error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("listener %d (#%d) for event %q: %v", e.Listener, e.Index, e.Event, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// Emitter maps event names to ordered listener lists and dispatches
// synchronously on the caller's goroutine.
//
// Emit iterates a snapshot taken when dispatch starts: listeners added during
// dispatch first run on the next Emit, and listeners removed during dispatch
// still run for the current one.
type Emitter struct {
	mu        sync.RWMutex
	nextID    ListenerID
	listeners map[string][]registration
}

// NewEmitter creates an emitter with no listeners.
func NewEmitter() *Emitter {
	return &Emitter{
		listeners: make(map[string][]registration),
	}
}

// AddListener appends fn to the list for event. The same function may be
// registered several times and runs once per registration. A nil fn is
// ignored and returns 0.
func (e *Emitter) AddListener(event string, fn Listener) ListenerID {
	if fn == nil {
		return 0
	}
	return e.add(event, func(ListenerID) Listener { return fn })
}

// Once registers fn to run on the next emission of event only.
func (e *Emitter) Once(event string, fn Listener) ListenerID {
	if fn == nil {
		return 0
	}
	return e.add(event, func(id ListenerID) Listener {
		return func(args ...any) error {
			e.RemoveListener(event, id)
			return fn(args...)
		}
	})
}

// add issues the next ID and registers the listener built for it.
func (e *Emitter) add(event string, build func(ListenerID) Listener) ListenerID {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID
	e.listeners[event] = append(e.listeners[event], registration{id: id, fn: build(id)})
	return id
}

// RemoveListener removes the registration id from event.
// Returns false when no such registration exists.
func (e *Emitter) RemoveListener(event string, id ListenerID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	regs := e.listeners[event]
	for i, r := range regs {
		if r.id != id {
			continue
		}
		// Copy so snapshots held by an in-flight Emit stay intact.
		next := make([]registration, 0, len(regs)-1)
		next = append(next, regs[:i]...)
		next = append(next, regs[i+1:]...)
		if len(next) == 0 {
			delete(e.listeners, event)
		} else {
			e.listeners[event] = next
		}
		return true
	}
	return false
}

// RemoveAllListeners drops every listener for event, or for all events when
// event is empty.
func (e *Emitter) RemoveAllListeners(event string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if event == "" {
		e.listeners = make(map[string][]registration)
		return
	}
	delete(e.listeners, event)
}

// ListenerCount returns the number of registrations for event.
func (e *Emitter) ListenerCount(event string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners[event])
}

// EventNames returns the events that have at least one listener, sorted.
func (e *Emitter) EventNames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.listeners))
	for name := range e.listeners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Emit calls every listener registered for event, in registration order, with
// args. The first listener error stops dispatch and is returned as a
// *DispatchError. Panics are not recovered.
func (e *Emitter) Emit(event string, args ...any) error {
	e.mu.RLock()
	regs := e.listeners[event]
	e.mu.RUnlock()

	for i, r := range regs {
		if err := r.fn(args...); err != nil {
			return &DispatchError{Event: event, Index: i, Listener: r.id, Err: err}
		}
	}
	return nil
}
