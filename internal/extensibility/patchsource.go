package extensibility

import (
	"sync"
	"time"
)

// PatchSource yields attribute patches to apply to a model.
type PatchSource interface {
	Patches() <-chan map[string]any
}

// ChannelPatchSource is a PatchSource backed by a Go channel.
// Provides a simple way to feed external updates into a model.
type ChannelPatchSource struct {
	ch chan map[string]any
}

// NewChannelPatchSource creates a ChannelPatchSource with the given channel.
// The channel should be buffered if backpressure handling is needed.
func NewChannelPatchSource(ch chan map[string]any) *ChannelPatchSource {
	return &ChannelPatchSource{ch: ch}
}

// Patches returns the receive-only channel for patches.
func (s *ChannelPatchSource) Patches() <-chan map[string]any {
	return s.ch
}

// TickerPatchSource produces a patch every interval from a generator,
// for example a periodic regeneration of a unit's life.
type TickerPatchSource struct {
	ch     chan map[string]any
	gen    func(now time.Time) map[string]any
	ticker *time.Ticker
	stop   chan struct{}
	once   sync.Once
}

// NewTickerPatchSource starts a TickerPatchSource that calls gen every d.
// A nil or empty patch from gen is skipped.
func NewTickerPatchSource(d time.Duration, gen func(now time.Time) map[string]any) *TickerPatchSource {
	t := &TickerPatchSource{
		ch:     make(chan map[string]any, 10),
		gen:    gen,
		ticker: time.NewTicker(d),
		stop:   make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *TickerPatchSource) run() {
	for {
		select {
		case now := <-t.ticker.C:
			patch := t.gen(now)
			if len(patch) == 0 {
				continue
			}
			select {
			case t.ch <- patch:
			default:
				// drop if full
			}
		case <-t.stop:
			t.ticker.Stop()
			close(t.ch)
			return
		}
	}
}

// Patches returns the patch channel. It is closed after Stop.
func (t *TickerPatchSource) Patches() <-chan map[string]any {
	return t.ch
}

// Stop stops the ticker and closes the channel. It is safe to call more
// than once.
func (t *TickerPatchSource) Stop() {
	t.once.Do(func() { close(t.stop) })
}
