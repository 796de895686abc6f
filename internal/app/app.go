// ABOUTME: Session supervisor orchestrating generator, control, and session
// ABOUTME: Runs playback until interrupt, TUI quit, or fatal device error
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/Hushwave/hushwave-go/internal/noise"
	"github.com/Hushwave/hushwave-go/internal/preset"
	"github.com/Hushwave/hushwave-go/internal/session"
	"github.com/Hushwave/hushwave-go/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// hearingSafetyThreshold is the amplitude above which a safety advisory is
// emitted. Clamping and warning are one policy, applied here and nowhere else.
const hearingSafetyThreshold = 0.5

// Config holds supervisor configuration.
type Config struct {
	Preset preset.Preset // resolved preset with CLI overrides applied
	Quiet  bool
	UseTUI bool
}

// App supervises one playback run.
type App struct {
	cfg    Config
	opener session.Opener
}

// New creates a supervisor using the given device opener.
func New(cfg Config, opener session.Opener) *App {
	return &App{cfg: cfg, opener: opener}
}

// Run plays white noise until ctx is cancelled, the TUI quits, or the
// device fails. The session is stopped exactly once on every exit path.
// A nil return is the designed normal termination (user interrupt).
func (a *App) Run(ctx context.Context) error {
	ctl := noise.NewControl(0)
	effective := a.applyLevel(ctl, a.cfg.Preset.Amplitude)

	sess := session.New(a.opener)
	gen := noise.NewGenerator(noise.WithFaultHandler(sess.ReportFault))

	cfg := session.StreamConfig{
		SampleRate: a.cfg.Preset.SampleRate,
		BlockSize:  a.cfg.Preset.BlockSize,
	}
	if err := sess.Configure(cfg); err != nil {
		return fmt.Errorf("configure: %w", err)
	}
	if err := sess.Start(gen, ctl); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	defer sess.Stop()

	if !a.cfg.Quiet {
		log.Printf("stereo white noise playing: preset %s, %d Hz, %d frames/block, amplitude %g",
			a.cfg.Preset.Name, cfg.SampleRate, cfg.BlockSize, effective)
		log.Printf("playing until interrupted")
	}

	var controls *ui.Controls
	var prog *tea.Program
	if a.cfg.UseTUI {
		controls = ui.NewControls()
		var err error
		prog, err = ui.Run(controls)
		if err != nil {
			return fmt.Errorf("start TUI: %w", err)
		}
		go func() {
			if _, err := prog.Run(); err != nil {
				log.Printf("TUI error: %v", err)
			}
		}()
		defer prog.Quit()

		prog.Send(ui.StatusMsg{
			Preset:     a.cfg.Preset.Name,
			SampleRate: cfg.SampleRate,
			BlockSize:  cfg.BlockSize,
			State:      sess.State().String(),
			Amplitude:  &effective,
		})
	}

	return a.wait(ctx, sess, ctl, controls, prog)
}

// wait idle-waits on the stop conditions and live control messages.
func (a *App) wait(ctx context.Context, sess *session.Session, ctl *noise.Control,
	controls *ui.Controls, prog *tea.Program) error {

	// Nil channels when the TUI is off; those select arms then never fire.
	var changes chan ui.AmplitudeChangeMsg
	var quit chan ui.QuitMsg
	if controls != nil {
		changes = controls.Changes
		quit = controls.Quit
	}

	var underruns, faults int64
	muted := false
	prevLevel := ctl.Get()

	for {
		select {
		case <-ctx.Done():
			log.Printf("interrupt received, stopping")
			return nil

		case <-quit:
			log.Printf("quit requested from TUI")
			return nil

		case err := <-sess.Fatal():
			return fmt.Errorf("playback failed: %w", err)

		case d := <-sess.Diagnostics():
			switch d.Kind {
			case session.DiagUnderrun:
				underruns++
				log.Printf("audio glitch: output underrun (%d total)", underruns)
			case session.DiagGeneratorFault:
				faults++
				log.Printf("generator fault, block substituted with silence: %v", d.Err)
			}
			if prog != nil {
				prog.Send(ui.StatusMsg{Underruns: underruns, Faults: faults})
			}

		case msg := <-changes:
			level := ctl.Get()
			if msg.ToggleMute {
				if muted {
					level = a.applyLevel(ctl, prevLevel)
					muted = false
				} else {
					prevLevel = level
					level = ctl.Set(0)
					muted = true
				}
			} else {
				level = a.applyLevel(ctl, level+msg.Delta)
				muted = false
			}
			if prog != nil {
				m := muted
				prog.Send(ui.StatusMsg{Amplitude: &level, Muted: &m})
			}
		}
	}
}

// applyLevel is the single authoritative amplitude policy: clamp to [0, 1],
// warn when the request was clamped, and advise when the effective level
// exceeds the hearing-safety threshold.
func (a *App) applyLevel(ctl *noise.Control, requested float64) float64 {
	effective := ctl.Set(requested)
	if effective != requested {
		log.Printf("warning: amplitude %g out of range, using %g", requested, effective)
	}
	if effective > hearingSafetyThreshold {
		log.Printf("warning: high amplitude (%g), please protect your hearing", effective)
	}
	return effective
}
