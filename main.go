// ABOUTME: Entry point for the Hushwave white noise player
// ABOUTME: Parses CLI flags, handles list commands, and runs the supervisor
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Hushwave/hushwave-go/internal/app"
	"github.com/Hushwave/hushwave-go/internal/device"
	"github.com/Hushwave/hushwave-go/internal/preset"
	"github.com/Hushwave/hushwave-go/internal/version"
)

var (
	presetName  = flag.String("preset", "default", "Preset mode: sleep|concentration|tinnitus|default")
	sampleRate  = flag.Int("sample-rate", 0, "Sample rate in Hz: 22050, 44100, or 48000 (default: preset dependent)")
	blockSize   = flag.Int("block-size", 0, "Block size in frames: 256, 512, 1024, 2048, or 4096 (default: preset dependent)")
	amplitude   = flag.Float64("amplitude", 0, "Noise amplitude, 0.0 (silent) to 1.0 (maximum). Start low for safety (default: preset dependent)")
	listPresets = flag.Bool("list-presets", false, "List all available presets and exit")
	listDevices = flag.Bool("list-devices", false, "List available audio devices and exit")
	quiet       = flag.Bool("quiet", false, "Minimize output messages")
	noTUI       = flag.Bool("no-tui", false, "Disable TUI, use streaming logs instead")
	logFile     = flag.String("log-file", "hushwave.log", "Log file path")
)

var allowedBlockSizes = []int{256, 512, 1024, 2048, 4096}

// resolvePreset applies explicit CLI overrides to the named preset. passed
// reports which flags appeared on the command line, so an explicit
// -amplitude always takes effect, including out-of-range values: those are
// carried through for the supervisor to clamp with a warning.
func resolvePreset(name string, sampleRate, blockSize int, amplitude float64, passed map[string]bool) (preset.Preset, error) {
	p, ok := preset.Lookup(name)
	if !ok {
		return preset.Preset{}, fmt.Errorf("unknown preset %q (choose from: sleep, concentration, tinnitus, default)", name)
	}

	if passed["sample-rate"] {
		if sampleRate != 22050 && sampleRate != 44100 && sampleRate != 48000 {
			return preset.Preset{}, fmt.Errorf("invalid sample rate %d (choose from: 22050, 44100, 48000)", sampleRate)
		}
		p.SampleRate = sampleRate
	}

	if passed["block-size"] {
		valid := false
		for _, b := range allowedBlockSizes {
			if blockSize == b {
				valid = true
				break
			}
		}
		if !valid {
			return preset.Preset{}, fmt.Errorf("invalid block size %d (choose from: 256, 512, 1024, 2048, 4096)", blockSize)
		}
		p.BlockSize = blockSize
	}

	if passed["amplitude"] {
		p.Amplitude = amplitude
	}

	return p, nil
}

func main() {
	flag.Parse()

	if *listPresets {
		preset.List(os.Stdout)
		return
	}

	if *listDevices {
		if err := device.ListDevices(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error listing audio devices: %v\n", err)
			os.Exit(1)
		}
		return
	}

	passed := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { passed[f.Name] = true })

	p, err := resolvePreset(*presetName, *sampleRate, *blockSize, *amplitude, passed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	useTUI := !*noTUI && !*quiet

	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI || *quiet {
		// Keep the terminal clean; everything goes to the log file.
		log.SetOutput(f)
	} else {
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}

	if !*quiet && !useTUI {
		fmt.Printf("%s %s - %s mode\n", version.Product, version.Version, p.Name)
		fmt.Printf("Preset: %s - %s\n", p.Name, p.Description)
		fmt.Printf("Sample Rate: %d Hz\n", p.SampleRate)
		fmt.Printf("Block Size: %d frames\n", p.BlockSize)
		fmt.Printf("Amplitude: %g\n", p.Amplitude)
		fmt.Println("Press Ctrl+C to stop.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(app.Config{Preset: p, Quiet: *quiet, UseTUI: useTUI}, device.New())
	if err := a.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
