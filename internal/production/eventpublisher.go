// Package production provides production integrations: event publishing,
// metrics, class definition loading, visualization.
package production

import (
	"context"
	"errors"
	"sync"

	"github.com/comalice/micromodel/internal/core"
)

// ErrPublisherClosed is returned by Publish after Close.
var ErrPublisherClosed = errors.New("publisher closed")

// ChannelPublisher forwards notifications to a Go channel.
// Non-blocking publish with drop on backpressure.
type ChannelPublisher struct {
	ch      chan<- core.Notification
	mu      sync.Mutex
	closed  bool
	dropped uint64
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(ch chan<- core.Notification) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

// Publish never blocks, so it holds the lock across the send to keep Close
// from closing the channel underneath it.
func (p *ChannelPublisher) Publish(ctx context.Context, n core.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPublisherClosed
	}
	select {
	case p.ch <- n:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		p.dropped++
		return nil // Non-blocking drop
	}
}

// Dropped returns how many notifications were discarded on a full channel.
func (p *ChannelPublisher) Dropped() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dropped
}

// Close closes the output channel. Later calls to Publish fail with
// ErrPublisherClosed; closing twice is a no-op.
func (p *ChannelPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		p.closed = true
		close(p.ch)
	}
	return nil
}
