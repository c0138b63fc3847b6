package extensibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChannelPatchSource(t *testing.T) {
	ch := make(chan map[string]any, 1)
	s := NewChannelPatchSource(ch)

	ch <- map[string]any{"life": 0}
	assert.Equal(t, map[string]any{"life": 0}, <-s.Patches())
}

func TestTickerPatchSource(t *testing.T) {
	s := NewTickerPatchSource(10*time.Millisecond, func(time.Time) map[string]any {
		return map[string]any{"tick": true}
	})
	defer s.Stop()

	select {
	case p := <-s.Patches():
		assert.Equal(t, map[string]any{"tick": true}, p)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("no patch received")
	}
}

func TestTickerPatchSourceSkipsEmpty(t *testing.T) {
	s := NewTickerPatchSource(5*time.Millisecond, func(time.Time) map[string]any { return nil })
	time.Sleep(30 * time.Millisecond)
	s.Stop()

	for p := range s.Patches() {
		t.Fatalf("unexpected patch %v", p)
	}
}

func TestTickerPatchSourceStopTwice(t *testing.T) {
	s := NewTickerPatchSource(time.Millisecond, func(time.Time) map[string]any { return nil })

	assert.NotPanics(t, func() {
		s.Stop()
		s.Stop()
	})
	for range s.Patches() {
	}
}
