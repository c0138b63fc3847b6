package micromodel

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/comalice/micromodel/internal/core"
	"github.com/comalice/micromodel/internal/extensibility"
	"github.com/comalice/micromodel/internal/primitives"
	"github.com/comalice/micromodel/internal/production"
)

// Capability names of the built-in mixins.
const (
	CapabilityModel     = "model"
	CapabilityEvents    = "events"
	CapabilityLogging   = "logging"
	CapabilityMetrics   = "metrics"
	CapabilityPublisher = "publisher"
)

// WithModel is the attribute capability. It adds the get, set, has, keys and
// attributes methods to the method table.
var WithModel = Mixin{
	Name: CapabilityModel,
	Methods: Methods{
		"get": func(m *Model, args ...any) (any, error) {
			name, err := stringArg("get", args, 0)
			if err != nil {
				return nil, err
			}
			return m.Get(name), nil
		},
		"set": func(m *Model, args ...any) (any, error) {
			patch, err := patchArg("set", args, 0)
			if err != nil {
				return nil, err
			}
			return m.Set(patch)
		},
		"has": func(m *Model, args ...any) (any, error) {
			name, err := stringArg("has", args, 0)
			if err != nil {
				return nil, err
			}
			return m.Has(name), nil
		},
		"keys": func(m *Model, _ ...any) (any, error) {
			return m.Keys(), nil
		},
		"attributes": func(m *Model, _ ...any) (any, error) {
			return m.Attributes(), nil
		},
	},
}

// WithEventEmitter is the event capability. Its initializer creates the
// model's listener table; it adds addListener, removeListener and emit.
var WithEventEmitter = Mixin{
	Name: CapabilityEvents,
	Init: func(m *Model) error {
		m.events = core.NewEmitter()
		return nil
	},
	Methods: Methods{
		"addListener": func(m *Model, args ...any) (any, error) {
			event, err := stringArg("addListener", args, 0)
			if err != nil {
				return nil, err
			}
			fn, err := listenerArg("addListener", args, 1)
			if err != nil {
				return nil, err
			}
			return m.AddListener(event, fn)
		},
		"removeListener": func(m *Model, args ...any) (any, error) {
			event, err := stringArg("removeListener", args, 0)
			if err != nil {
				return nil, err
			}
			if len(args) < 2 {
				return nil, fmt.Errorf("%w: removeListener needs a listener id", ErrBadArgument)
			}
			id, ok := args[1].(ListenerID)
			if !ok {
				return nil, fmt.Errorf("%w: removeListener: argument 1 is %T, want ListenerID", ErrBadArgument, args[1])
			}
			return m.RemoveListener(event, id)
		},
		"emit": func(m *Model, args ...any) (any, error) {
			event, err := stringArg("emit", args, 0)
			if err != nil {
				return nil, err
			}
			return nil, m.Emit(event, args[1:]...)
		},
	},
}

// WithLogging logs every change event of the model through logger.
func WithLogging(l zerolog.Logger) Mixin {
	return Mixin{
		Name:     CapabilityLogging,
		Requires: []string{CapabilityEvents},
		Init: func(m *Model) error {
			m.events.AddListener(EventChange, extensibility.LoggingListener(l, EventChange, func(args ...any) error {
				l.Info().
					Str("class", m.class.name).
					Str("model", m.ID()).
					Strs("changed", m.Changed()).
					Msg("model changed")
				return nil
			}))
			return nil
		},
	}
}

// Metrics holds the Prometheus collectors used by WithMetrics.
type Metrics = production.Metrics

// NewMetrics creates the collectors and registers them with reg. A nil reg
// skips registration.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	return production.NewMetrics(reg)
}

// WithMetrics counts constructed instances and change events per class.
func WithMetrics(metrics *Metrics) Mixin {
	return Mixin{
		Name:     CapabilityMetrics,
		Requires: []string{CapabilityEvents},
		Init: func(m *Model) error {
			if metrics == nil {
				return fmt.Errorf("%w: nil metrics", ErrBadArgument)
			}
			metrics.ObserveConstruct(m.class.name)
			m.events.AddListener(EventChange, func(args ...any) error {
				metrics.ObserveChange(m.class.name, len(m.Changed()))
				return nil
			})
			return nil
		},
	}
}

type (
	// Publisher forwards change notifications out of the process-local
	// listener graph.
	Publisher = core.Publisher
	// Notification is what WithPublisher hands to a Publisher.
	Notification = core.Notification
	// ChannelPublisher publishes onto a Go channel and drops when it is full.
	ChannelPublisher = production.ChannelPublisher
)

// ErrPublisherClosed is returned by a ChannelPublisher after Close. Set
// reports it wrapped in a *ListenerDispatchError.
var ErrPublisherClosed = production.ErrPublisherClosed

// NewChannelPublisher creates a ChannelPublisher writing to ch.
func NewChannelPublisher(ch chan<- Notification) *ChannelPublisher {
	return production.NewChannelPublisher(ch)
}

// WithPublisher publishes a Notification for every change event. A publish
// error fails the dispatch like any listener error.
func WithPublisher(p Publisher) Mixin {
	return Mixin{
		Name:     CapabilityPublisher,
		Requires: []string{CapabilityEvents},
		Init: func(m *Model) error {
			if p == nil {
				return fmt.Errorf("%w: nil publisher", ErrBadArgument)
			}
			m.events.AddListener(EventChange, func(args ...any) error {
				return p.Publish(context.Background(), Notification{
					Event:      primitives.NewEvent(EventChange, args...),
					ModelID:    m.ID(),
					Class:      m.class.name,
					Changed:    m.Changed(),
					Attributes: m.Attributes(),
					Timestamp:  time.Now(),
				})
			})
			return nil
		},
	}
}

func stringArg(method string, args []any, i int) (string, error) {
	if len(args) <= i {
		return "", fmt.Errorf("%w: %s needs argument %d", ErrBadArgument, method, i)
	}
	s, ok := args[i].(string)
	if !ok {
		return "", fmt.Errorf("%w: %s: argument %d is %T, want string", ErrBadArgument, method, i, args[i])
	}
	return s, nil
}

func patchArg(method string, args []any, i int) (Attributes, error) {
	if len(args) <= i {
		return nil, fmt.Errorf("%w: %s needs argument %d", ErrBadArgument, method, i)
	}
	switch p := args[i].(type) {
	case Attributes:
		return p, nil
	case map[string]any:
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s: argument %d is %T, want Attributes", ErrBadArgument, method, i, args[i])
}

func listenerArg(method string, args []any, i int) (Listener, error) {
	if len(args) <= i {
		return nil, fmt.Errorf("%w: %s needs argument %d", ErrBadArgument, method, i)
	}
	switch fn := args[i].(type) {
	case Listener:
		return fn, nil
	case func(args ...any) error:
		return fn, nil
	case func(m *Model) error:
		return ChangeListener(fn), nil
	}
	return nil, fmt.Errorf("%w: %s: argument %d is %T, want Listener", ErrBadArgument, method, i, args[i])
}
