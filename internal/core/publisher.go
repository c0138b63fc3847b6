package core

import (
	"context"
	"time"

	"github.com/comalice/micromodel/internal/primitives"
)

// Notification describes one emitted model event for publishers.
type Notification struct {
	Event      primitives.Event `json:"-" yaml:"-"`
	ModelID    string           `json:"modelID" yaml:"modelID"`
	Class      string           `json:"class" yaml:"class"`
	Changed    []string         `json:"changed,omitempty" yaml:"changed,omitempty"`
	Attributes map[string]any   `json:"attributes" yaml:"attributes"`
	Timestamp  time.Time        `json:"timestamp" yaml:"timestamp"`
}

// Publisher forwards notifications out of the process-local listener graph.
type Publisher interface {
	Publish(ctx context.Context, n Notification) error
	Close() error
}
