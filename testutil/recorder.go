// Package testutil provides helpers for asserting on emitted events.
package testutil

import (
	"sync"

	"github.com/comalice/micromodel"
)

// Call is one recorded listener invocation.
type Call struct {
	Event string
	Args  []any
}

// Recorder is a listener factory that records every call it receives.
// Optionally it fails with Err to exercise dispatch error paths.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
	Err   error
}

// Listener returns a listener recording calls under event.
func (r *Recorder) Listener(event string) micromodel.Listener {
	return func(args ...any) error {
		r.mu.Lock()
		r.calls = append(r.calls, Call{Event: event, Args: args})
		err := r.Err
		r.mu.Unlock()
		return err
	}
}

// Attach registers a recording listener for event on m.
func (r *Recorder) Attach(m *micromodel.Model, event string) (micromodel.ListenerID, error) {
	return m.AddListener(event, r.Listener(event))
}

// Calls returns a copy of the recorded calls in order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Events returns the recorded event names in order.
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.calls))
	for i, c := range r.calls {
		names[i] = c.Event
	}
	return names
}

// Len returns the number of recorded calls.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// Reset forgets all recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
