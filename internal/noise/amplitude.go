// ABOUTME: Thread-safe amplitude control shared with the audio callback
// ABOUTME: Stores the level as an atomic float64 word
package noise

import (
	"math"
	"sync/atomic"
)

// Control holds the playback amplitude in [0, 1]. Set is called from the
// supervising goroutine, Get from the real-time audio callback, so the
// value lives in a single atomic word and Get never takes a lock.
type Control struct {
	bits atomic.Uint64
}

// NewControl creates a control with the given initial level, clamped to [0, 1].
func NewControl(level float64) *Control {
	c := &Control{}
	c.Set(level)
	return c
}

// Set clamps level to [0, 1], applies it, and returns the effective value.
// Callers compare the requested and effective values to detect clamping.
func (c *Control) Set(level float64) float64 {
	if level < 0 || math.IsNaN(level) {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	c.bits.Store(math.Float64bits(level))
	return level
}

// Get returns the current amplitude. Safe to call from the audio callback.
func (c *Control) Get() float64 {
	return math.Float64frombits(c.bits.Load())
}
