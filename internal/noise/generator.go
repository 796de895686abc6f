// ABOUTME: Stereo white noise sample generator for the audio callback
// ABOUTME: Fills device buffers with uniform random samples, never panics out
package noise

import (
	"fmt"
	"math/rand"
	"time"
)

// ChannelCount is fixed: left and right are independently sampled, which is
// what makes the output stereo noise rather than duplicated mono.
const ChannelCount = 2

// Generator produces blocks of uniform white noise in [-1, 1). It is driven
// by a single audio callback thread and is not safe for concurrent Fill
// calls. Fill performs no allocation and no I/O.
type Generator struct {
	rng     *rand.Rand
	onFault func(error)
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes the sample sequence deterministic, for tests.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithFaultHandler installs a handler invoked when Fill recovers from an
// internal fault. The handler runs on the audio callback thread and must
// not block.
func WithFaultHandler(f func(error)) Option {
	return func(g *Generator) {
		g.onFault = f
	}
}

// NewGenerator creates a white noise generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Fill writes frames*2 interleaved stereo samples into out, each drawn
// independently from a uniform distribution over [-1, 1) and scaled by amp.
// It never panics: on an internal fault the block is replaced with silence
// and the fault handler is notified.
func (g *Generator) Fill(out []float32, frames int, amp float64) {
	defer func() {
		if r := recover(); r != nil {
			for i := range out {
				out[i] = 0
			}
			if g.onFault != nil {
				g.onFault(fmt.Errorf("noise fill fault: %v", r))
			}
		}
	}()

	block := out[:frames*ChannelCount]
	for i := range block {
		block[i] = float32((2*g.rng.Float64() - 1) * amp)
	}
}
