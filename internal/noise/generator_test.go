// ABOUTME: Tests for the white noise generator
// ABOUTME: Covers block sizing, amplitude bounds, distribution, and fault recovery
package noise

import (
	"math"
	"testing"
)

func TestFillWritesExactBlock(t *testing.T) {
	g := NewGenerator(WithSeed(1))

	frames := 256
	out := make([]float32, frames*ChannelCount+8)
	for i := range out {
		out[i] = 42
	}

	g.Fill(out, frames, 1.0)

	for i := frames * ChannelCount; i < len(out); i++ {
		if out[i] != 42 {
			t.Errorf("sample %d beyond the block was overwritten", i)
		}
	}
}

func TestFillBoundedByAmplitude(t *testing.T) {
	amplitudes := []float64{0.05, 0.1, 0.5, 1.0}

	for _, amp := range amplitudes {
		g := NewGenerator(WithSeed(7))
		out := make([]float32, 1024*ChannelCount)

		g.Fill(out, 1024, amp)

		limit := float32(amp) + 1e-6
		for i, s := range out {
			if s > limit || s < -limit {
				t.Fatalf("amplitude %v: sample %d = %v exceeds bound", amp, i, s)
			}
		}
	}
}

func TestFillZeroAmplitudeIsSilence(t *testing.T) {
	g := NewGenerator(WithSeed(3))
	out := make([]float32, 512*ChannelCount)

	g.Fill(out, 512, 0)

	for i, s := range out {
		if s != 0 {
			t.Fatalf("sample %d = %v, want exact 0 at zero amplitude", i, s)
		}
	}
}

func TestFillMeanNearZero(t *testing.T) {
	g := NewGenerator(WithSeed(11))
	frames := 1 << 16
	out := make([]float32, frames*ChannelCount)

	g.Fill(out, frames, 1.0)

	sum := 0.0
	for _, s := range out {
		sum += float64(s)
	}
	mean := sum / float64(len(out))

	// Standard error for uniform [-1,1) over 131072 samples is ~0.0016.
	if math.Abs(mean) > 0.01 {
		t.Errorf("sample mean %v too far from 0", mean)
	}
}

func TestFillApproximatelyUniform(t *testing.T) {
	g := NewGenerator(WithSeed(13))
	frames := 1 << 16
	out := make([]float32, frames*ChannelCount)

	g.Fill(out, frames, 1.0)

	const buckets = 16
	counts := make([]int, buckets)
	for _, s := range out {
		idx := int((float64(s) + 1) / 2 * buckets)
		if idx == buckets {
			idx = buckets - 1
		}
		counts[idx]++
	}

	expected := float64(len(out)) / buckets
	for i, n := range counts {
		ratio := float64(n) / expected
		if ratio < 0.9 || ratio > 1.1 {
			t.Errorf("bucket %d has %d samples, expected ~%.0f", i, n, expected)
		}
	}
}

func TestFillChannelsIndependent(t *testing.T) {
	g := NewGenerator(WithSeed(17))
	frames := 1 << 15
	out := make([]float32, frames*ChannelCount)

	g.Fill(out, frames, 1.0)

	duplicated := 0
	var sumLR float64
	for i := 0; i < frames; i++ {
		l := float64(out[i*2])
		r := float64(out[i*2+1])
		if l == r {
			duplicated++
		}
		sumLR += l * r
	}

	if duplicated > frames/1000 {
		t.Errorf("%d of %d frames have identical channels, looks like mono duplication", duplicated, frames)
	}

	// E[L*R] is 0 for independent channels, 1/3 for duplicated mono.
	corr := sumLR / float64(frames)
	if math.Abs(corr) > 0.02 {
		t.Errorf("cross-channel correlation %v too far from 0", corr)
	}
}

func TestFillRecoversFromFault(t *testing.T) {
	var fault error
	g := NewGenerator(WithSeed(19), WithFaultHandler(func(err error) {
		fault = err
	}))

	// Buffer too short for the requested frame count: Fill must recover,
	// substitute silence, and report instead of panicking.
	out := make([]float32, 10)
	for i := range out {
		out[i] = 99
	}

	g.Fill(out, 64, 0.5)

	if fault == nil {
		t.Fatal("expected fault handler to be notified")
	}
	for i, s := range out {
		if s != 0 {
			t.Errorf("sample %d = %v, want silence after fault", i, s)
		}
	}
}

func TestFillDeterministicWithSeed(t *testing.T) {
	a := NewGenerator(WithSeed(23))
	b := NewGenerator(WithSeed(23))

	bufA := make([]float32, 128*ChannelCount)
	bufB := make([]float32, 128*ChannelCount)
	a.Fill(bufA, 128, 0.3)
	b.Fill(bufB, 128, 0.3)

	for i := range bufA {
		if bufA[i] != bufB[i] {
			t.Fatalf("sample %d differs between identically seeded generators", i)
		}
	}
}
