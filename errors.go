package micromodel

import (
	"errors"
	"fmt"

	"github.com/comalice/micromodel/internal/core"
)

var (
	// ErrNoCapability is returned by event operations on a model whose class
	// was composed without WithEventEmitter.
	ErrNoCapability = errors.New("capability not composed")

	ErrDuplicateCapability = errors.New("capability applied more than once")
	ErrMissingCapability   = errors.New("required capability missing")
	ErrInvalidClass        = errors.New("invalid class")
	ErrUnknownMethod       = errors.New("unknown method")
	ErrUnknownMixin        = errors.New("unknown mixin")
	ErrBadArgument         = errors.New("bad argument")
)

// AttributeError reports an attribute whose value cannot be used by an
// operation, such as a non-numeric value in a numeric predicate.
type AttributeError struct {
	Name string
	Err  error
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("attribute %q: %v", e.Name, e.Err)
}

func (e *AttributeError) Unwrap() error {
	return e.Err
}

// ListenerDispatchError is returned by Emit and Set when a listener fails.
// Dispatch stops at the failing listener.
type ListenerDispatchError = core.DispatchError
