// ABOUTME: Audio stream session owning the device connection and lifecycle
// ABOUTME: Drives the generator from the device callback, Idle->Running->Stopped
package session

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Hushwave/hushwave-go/internal/noise"
	"github.com/google/uuid"
)

// ChannelCount is the stereo channel count every stream uses.
const ChannelCount = noise.ChannelCount

// SupportedSampleRates are the sample rates Configure accepts.
var SupportedSampleRates = []int{22050, 44100, 48000}

// StreamConfig describes an output stream. It is immutable once the session
// starts; changing it requires a new session.
type StreamConfig struct {
	SampleRate int // Hz
	BlockSize  int // frames per device request
}

// State is the session lifecycle state.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// RenderFunc is the inversion-of-control point the device layer drives: it
// must synchronously fill out with frames*2 interleaved stereo samples.
// underrun reports a device-side glitch for the previous block.
type RenderFunc func(out []float32, frames int, underrun bool)

// Stream is an open device stream. Stop must guarantee that the render
// callback is not invoked again after it returns. Done delivers at most one
// unrecoverable device error and is closed when the stream goes away.
type Stream interface {
	Start() error
	Stop() error
	Close() error
	Done() <-chan error
}

// Opener opens device streams. The production implementation sits on
// PortAudio; tests inject a fake.
type Opener interface {
	Open(cfg StreamConfig, render RenderFunc) (Stream, error)
}

// DiagKind classifies non-fatal diagnostics emitted during playback.
type DiagKind int

const (
	// DiagUnderrun is a device-reported output underrun or overflow.
	// Playback continues; the glitch is only logged.
	DiagUnderrun DiagKind = iota
	// DiagGeneratorFault is a recovered generator fault; the affected block
	// was played as silence.
	DiagGeneratorFault
)

// Diagnostic is a non-fatal playback event delivered to the supervisor.
type Diagnostic struct {
	Kind DiagKind
	Err  error
	When time.Time
}

// Session owns one device stream from configuration to stop. A stopped
// session is terminal; construct a new one to play again.
type Session struct {
	mu     sync.Mutex
	state  State
	cfg    StreamConfig
	opener Opener
	stream Stream

	id    string
	diags chan Diagnostic
	fatal chan error
}

// New creates an idle session using the given device opener.
func New(opener Opener) *Session {
	return &Session{
		opener: opener,
		id:     uuid.New().String()[:8],
		diags:  make(chan Diagnostic, 64),
		fatal:  make(chan error, 1),
	}
}

// ID returns the short run identifier used in log lines.
func (s *Session) ID() string { return s.id }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Diagnostics delivers non-fatal playback events. The channel is buffered
// and producers never block; events are dropped if the supervisor falls
// behind.
func (s *Session) Diagnostics() <-chan Diagnostic { return s.diags }

// Fatal delivers at most one unrecoverable device error. The session has
// already transitioned to Stopped when it fires.
func (s *Session) Fatal() <-chan error { return s.fatal }

// Configure validates and records the stream configuration. It must be
// called while the session is idle.
func (s *Session) Configure(cfg StreamConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return fmt.Errorf("session %s: configure in state %s", s.id, s.state)
	}

	supported := false
	for _, rate := range SupportedSampleRates {
		if cfg.SampleRate == rate {
			supported = true
			break
		}
	}
	if !supported {
		return &ConfigError{Field: "sample rate", Value: cfg.SampleRate,
			Reason: "must be one of 22050, 44100, 48000"}
	}
	if cfg.BlockSize <= 0 {
		return &ConfigError{Field: "block size", Value: cfg.BlockSize,
			Reason: "must be positive"}
	}

	s.cfg = cfg
	return nil
}

// Config returns the configured stream parameters.
func (s *Session) Config() StreamConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Start opens the device and begins callback delivery, moving the session
// from Idle to Running. On any failure the session remains Idle with no
// callback registered and may be started again with a corrected config.
func (s *Session) Start(gen *noise.Generator, ctl *noise.Control) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return fmt.Errorf("session %s: start in state %s", s.id, s.state)
	}
	if s.cfg.SampleRate == 0 {
		return &ConfigError{Field: "sample rate", Value: 0, Reason: "session not configured"}
	}

	render := func(out []float32, frames int, underrun bool) {
		if underrun {
			s.report(Diagnostic{Kind: DiagUnderrun, When: time.Now()})
		}
		// The device chooses the frame count per call; it is not required
		// to match the configured block size.
		gen.Fill(out, frames, ctl.Get())
	}

	stream, err := s.opener.Open(s.cfg, render)
	if err != nil {
		return fmt.Errorf("session %s: open output stream: %w", s.id, err)
	}

	if err := stream.Start(); err != nil {
		if cerr := stream.Close(); cerr != nil {
			log.Printf("session %s: close after failed start: %v", s.id, cerr)
		}
		return fmt.Errorf("session %s: start output stream: %w", s.id, err)
	}

	s.stream = stream
	s.state = StateRunning
	log.Printf("session %s: running at %d Hz, %d frames/block",
		s.id, s.cfg.SampleRate, s.cfg.BlockSize)

	go s.watch(stream)

	return nil
}

// Stop halts callback delivery and releases the device. It is idempotent,
// safe from any goroutine, and guarantees that no callback is in flight
// once it returns. Stopping an idle session is a no-op that stays idle.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Session) stopLocked() {
	if s.state != StateRunning {
		return
	}

	if err := s.stream.Stop(); err != nil {
		log.Printf("session %s: stop stream: %v", s.id, err)
	}
	if err := s.stream.Close(); err != nil {
		log.Printf("session %s: close stream: %v", s.id, err)
	}
	s.stream = nil
	s.state = StateStopped
	log.Printf("session %s: stopped", s.id)
}

// ReportFault records a recovered generator fault as a non-fatal
// diagnostic. It is safe to call from the audio callback thread.
func (s *Session) ReportFault(err error) {
	s.report(Diagnostic{Kind: DiagGeneratorFault, Err: err, When: time.Now()})
}

func (s *Session) report(d Diagnostic) {
	select {
	case s.diags <- d:
	default:
	}
}

// watch tears the session down if the device reports an unrecoverable
// error during steady-state playback.
func (s *Session) watch(stream Stream) {
	err, ok := <-stream.Done()
	if !ok || err == nil {
		return
	}

	s.mu.Lock()
	if s.state == StateRunning && s.stream == stream {
		log.Printf("session %s: device failed: %v", s.id, err)
		s.stopLocked()
	}
	s.mu.Unlock()

	select {
	case s.fatal <- err:
	default:
	}
}
