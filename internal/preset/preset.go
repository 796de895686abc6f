// ABOUTME: Preset configurations for common white noise use cases
// ABOUTME: Lookup table plus listing output for the -list-presets command
package preset

import (
	"fmt"
	"io"
	"strings"
)

// Preset bundles a named audio configuration.
type Preset struct {
	Name        string
	Description string
	SampleRate  int
	BlockSize   int
	Amplitude   float64
}

var presets = map[string]Preset{
	"sleep": {
		Name:        "sleep",
		Description: "Gentle settings optimized for sleep and relaxation",
		SampleRate:  44100,
		BlockSize:   1024,
		Amplitude:   0.05,
	},
	"concentration": {
		Name:        "concentration",
		Description: "Moderate settings ideal for work and study",
		SampleRate:  44100,
		BlockSize:   1024,
		Amplitude:   0.08,
	},
	"tinnitus": {
		Name:        "tinnitus",
		Description: "Higher amplitude settings for tinnitus masking",
		SampleRate:  44100,
		BlockSize:   1024,
		Amplitude:   0.12,
	},
	"default": {
		Name:        "default",
		Description: "Balanced settings suitable for general use",
		SampleRate:  44100,
		BlockSize:   1024,
		Amplitude:   0.1,
	},
}

// Names returns preset names in display order.
func Names() []string {
	return []string{"sleep", "concentration", "tinnitus", "default"}
}

// Lookup returns the preset for name.
func Lookup(name string) (Preset, bool) {
	p, ok := presets[name]
	return p, ok
}

// List writes all presets and their settings to w.
func List(w io.Writer) {
	fmt.Fprintln(w, "Available Presets:")
	fmt.Fprintln(w, strings.Repeat("=", 60))
	for _, name := range Names() {
		p := presets[name]
		fmt.Fprintf(w, "\n%s:\n", strings.ToUpper(p.Name))
		fmt.Fprintf(w, "  Description: %s\n", p.Description)
		fmt.Fprintf(w, "  Sample Rate: %d Hz\n", p.SampleRate)
		fmt.Fprintf(w, "  Block Size:  %d frames\n", p.BlockSize)
		fmt.Fprintf(w, "  Amplitude:   %g\n", p.Amplitude)
	}
}
