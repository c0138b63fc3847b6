package micromodel

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/comalice/micromodel/internal/core"
	"github.com/comalice/micromodel/internal/primitives"
)

// Attributes maps attribute names to arbitrary values.
type Attributes map[string]any

// Model is an instance of a composed class: an attribute store plus whatever
// capabilities its mixins contributed.
type Model struct {
	id     uuid.UUID
	class  *Class
	store  *primitives.Store
	events *core.Emitter

	// dispatching holds the changed keys of each change emission in progress,
	// innermost last.
	mu          sync.Mutex
	dispatching [][]string
}

var baseClass = MustCompose("Model", WithModel)

// NewModel creates a bare model holding a copy of initial. It has the
// attribute capability only; compose a class with WithEventEmitter to get
// change notifications.
func NewModel(initial Attributes) *Model {
	m, err := baseClass.New(initial)
	if err != nil {
		// WithModel has no initializer.
		panic(err)
	}
	return m
}

// ID returns the instance's unique identifier.
func (m *Model) ID() string { return m.id.String() }

// Class returns the class the model was constructed from.
func (m *Model) Class() *Class { return m.class }

// String returns "ClassName(id)".
func (m *Model) String() string {
	return fmt.Sprintf("%s(%s)", m.class.name, m.id)
}

// Is reports whether the model's class has the named capability.
func (m *Model) Is(capability string) bool { return m.class.Has(capability) }

// Get returns the value of name, or nil if it was never set.
func (m *Model) Get(name string) any { return m.store.Get(name) }

// Lookup returns the value of name and whether it is set.
func (m *Model) Lookup(name string) (any, bool) { return m.store.Lookup(name) }

// Has reports whether name is set, even to nil.
func (m *Model) Has(name string) bool {
	_, ok := m.store.Lookup(name)
	return ok
}

// Keys returns the attribute names in sorted order.
func (m *Model) Keys() []string { return m.store.Keys() }

// Attributes returns a copy of all attributes.
func (m *Model) Attributes() Attributes { return m.store.Snapshot() }

// Changed returns the attribute names changed by the Set whose change event
// is being dispatched, so every listener of one emission sees the same keys
// even when an earlier listener calls Set again. Outside dispatch it returns
// the names changed by the last effective Set to be applied.
func (m *Model) Changed() []string {
	m.mu.Lock()
	if n := len(m.dispatching); n > 0 {
		keys := append([]string(nil), m.dispatching[n-1]...)
		m.mu.Unlock()
		return keys
	}
	m.mu.Unlock()
	return m.store.Changed()
}

// Set applies every entry of patch and reports whether any attribute now
// differs from its previous value. Setting a name that was not present counts
// as a change.
//
// When changed is true and the model has the event capability, Set emits
// EventChange with the model as the only argument after the whole patch is
// committed. A listener error stops dispatch and is returned as a
// *ListenerDispatchError; the patch stays applied.
func (m *Model) Set(patch Attributes) (changed bool, err error) {
	keys := m.store.Apply(patch)
	if len(keys) == 0 {
		return false, nil
	}

	logger().Debug().
		Str("class", m.class.name).
		Str("model", m.ID()).
		Strs("changed", keys).
		Msg("attributes changed")

	if m.events == nil {
		return true, nil
	}
	if err := m.emitChange(keys); err != nil {
		logger().Warn().Err(err).
			Str("class", m.class.name).
			Str("model", m.ID()).
			Msg("change dispatch failed")
		return true, err
	}
	return true, nil
}

// emitChange dispatches EventChange with keys visible through Changed.
func (m *Model) emitChange(keys []string) error {
	m.mu.Lock()
	m.dispatching = append(m.dispatching, keys)
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.dispatching = m.dispatching[:len(m.dispatching)-1]
		m.mu.Unlock()
	}()
	return m.events.Emit(EventChange, m)
}

// Events returns the model's emitter, or false when the class was composed
// without WithEventEmitter.
func (m *Model) Events() (*Emitter, bool) {
	return m.events, m.events != nil
}

// AddListener registers fn for event.
func (m *Model) AddListener(event string, fn Listener) (ListenerID, error) {
	if m.events == nil {
		return 0, m.noEvents()
	}
	return m.events.AddListener(event, fn), nil
}

// RemoveListener removes the registration id from event. Removing an unknown
// registration is a no-op and reports false.
func (m *Model) RemoveListener(event string, id ListenerID) (bool, error) {
	if m.events == nil {
		return false, m.noEvents()
	}
	return m.events.RemoveListener(event, id), nil
}

// Emit dispatches event to the model's listeners.
func (m *Model) Emit(event string, args ...any) error {
	if m.events == nil {
		return m.noEvents()
	}
	return m.events.Emit(event, args...)
}

func (m *Model) noEvents() error {
	return fmt.Errorf("%s: %w: %q", m.class.name, ErrNoCapability, CapabilityEvents)
}

// Call invokes the method name from the class's merged method table.
func (m *Model) Call(name string, args ...any) (any, error) {
	fn, ok := m.class.table[name]
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", m.class.name, name, ErrUnknownMethod)
	}
	return fn(m, args...)
}

// CallBool invokes a method that returns a bool, such as a predicate.
func (m *Model) CallBool(name string, args ...any) (bool, error) {
	v, err := m.Call(name, args...)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%s.%s returned %T, not bool", m.class.name, name, v)
	}
	return b, nil
}
