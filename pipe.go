package micromodel

import (
	"context"
	"time"

	"github.com/comalice/micromodel/internal/extensibility"
)

type (
	// PatchSource yields attribute patches for Pipe.
	PatchSource = extensibility.PatchSource
	// ChannelPatchSource reads patches from a channel.
	ChannelPatchSource = extensibility.ChannelPatchSource
	// TickerPatchSource produces a patch on every tick.
	TickerPatchSource = extensibility.TickerPatchSource
)

// NewChannelPatchSource wraps ch as a PatchSource.
func NewChannelPatchSource(ch chan map[string]any) *ChannelPatchSource {
	return extensibility.NewChannelPatchSource(ch)
}

// NewTickerPatchSource calls gen every d and yields its non-empty patches.
// Stop it to close the source.
func NewTickerPatchSource(d time.Duration, gen func(now time.Time) map[string]any) *TickerPatchSource {
	return extensibility.NewTickerPatchSource(d, gen)
}

// Pipe applies every patch from src to m with Set until src is closed or ctx
// is done. It returns nil when src closes, ctx.Err() on cancellation, and the
// first listener error otherwise.
func Pipe(ctx context.Context, src PatchSource, m *Model) error {
	patches := src.Patches()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case patch, ok := <-patches:
			if !ok {
				return nil
			}
			if _, err := m.Set(patch); err != nil {
				return err
			}
		}
	}
}
