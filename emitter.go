package micromodel

import (
	"fmt"

	"github.com/comalice/micromodel/internal/core"
)

// EventChange is emitted by Set after an effective change.
const EventChange = "change"

type (
	// Emitter is a synchronous event emitter. See NewEmitter.
	Emitter = core.Emitter
	// Listener is called with the arguments passed to Emit.
	Listener = core.Listener
	// ListenerID identifies a registration for RemoveListener.
	ListenerID = core.ListenerID
)

// NewEmitter creates a standalone emitter.
func NewEmitter() *Emitter { return core.NewEmitter() }

// ChangeListener adapts fn to the change event's argument list.
func ChangeListener(fn func(m *Model) error) Listener {
	return func(args ...any) error {
		if len(args) == 0 {
			return fmt.Errorf("%w: change listener called without a model", ErrBadArgument)
		}
		m, ok := args[0].(*Model)
		if !ok {
			return fmt.Errorf("%w: change listener got %T, want *Model", ErrBadArgument, args[0])
		}
		return fn(m)
	}
}
