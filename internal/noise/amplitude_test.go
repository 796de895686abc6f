// ABOUTME: Tests for the atomic amplitude control
// ABOUTME: Covers clamping, round-trips, and concurrent access
package noise

import (
	"math"
	"sync"
	"testing"
)

func TestControlClamping(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"zero", 0.0, 0.0},
		{"mid", 0.5, 0.5},
		{"max", 1.0, 1.0},
		{"negative", -0.3, 0.0},
		{"above max", 1.7, 1.0},
		{"far above max", 100, 1.0},
		{"nan", math.NaN(), 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewControl(0)

			got := c.Set(tt.input)
			if got != tt.want {
				t.Errorf("Set(%v) returned %v, want %v", tt.input, got, tt.want)
			}

			if c.Get() != tt.want {
				t.Errorf("Get() after Set(%v) = %v, want %v", tt.input, c.Get(), tt.want)
			}
		})
	}
}

func TestControlInitialLevelClamped(t *testing.T) {
	c := NewControl(2.5)

	if c.Get() != 1.0 {
		t.Errorf("expected initial level clamped to 1.0, got %v", c.Get())
	}
}

func TestControlSetReportsClamping(t *testing.T) {
	c := NewControl(0.1)

	requested := 1.3
	effective := c.Set(requested)

	if effective == requested {
		t.Error("expected effective value to differ from out-of-range request")
	}
}

func TestControlConcurrentAccess(t *testing.T) {
	c := NewControl(0.5)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(base float64) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				c.Set(base)
			}
		}(float64(i) * 0.25)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 4000; i++ {
			v := c.Get()
			if v < 0 || v > 1 {
				t.Errorf("Get() returned out-of-range value %v", v)
				return
			}
		}
	}()

	wg.Wait()
	<-done
}
