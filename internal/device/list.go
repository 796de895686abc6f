// ABOUTME: Audio device enumeration for the -list-devices command
// ABOUTME: Prints name, direction, channel counts, and default sample rate
package device

import (
	"fmt"
	"io"
	"strings"

	"github.com/drgolem/go-portaudio/portaudio"
)

// ListDevices writes every audio device PortAudio can see to w.
func ListDevices(w io.Writer) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initialize audio: %w", err)
	}
	defer func() { _ = portaudio.Terminate() }()

	devices, err := portaudio.Devices()
	if err != nil {
		return fmt.Errorf("enumerate devices: %w", err)
	}

	fmt.Fprintln(w, "Available Audio Devices:")
	fmt.Fprintln(w, strings.Repeat("=", 40))
	for _, dev := range devices {
		var kinds []string
		if dev.MaxInputChannels > 0 {
			kinds = append(kinds, "input")
		}
		if dev.MaxOutputChannels > 0 {
			kinds = append(kinds, "output")
		}

		fmt.Fprintf(w, "%2d: %s\n", dev.Index, dev.Name)
		fmt.Fprintf(w, "     Type: %s\n", strings.Join(kinds, ", "))
		fmt.Fprintf(w, "     Channels: %d out, %d in\n", dev.MaxOutputChannels, dev.MaxInputChannels)
		fmt.Fprintf(w, "     Sample Rate: %.0f Hz\n\n", dev.DefaultSampleRate)
	}

	return nil
}
