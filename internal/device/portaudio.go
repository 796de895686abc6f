// ABOUTME: PortAudio-backed output device boundary
// ABOUTME: Opens float32 callback streams and classifies device failures
package device

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/Hushwave/hushwave-go/internal/session"
	"github.com/drgolem/go-portaudio/portaudio"
)

// PortAudio host error codes used for classification. These are stable
// across PortAudio releases.
const (
	paInvalidSampleRate        = -9997
	paInvalidDevice            = -9996
	paSampleFormatNotSupported = -9994
	paDeviceUnavailable        = -9985
)

// PortAudio opens output streams on the default PortAudio device. The zero
// value is not usable; call New.
type PortAudio struct{}

// New creates the production device opener.
func New() *PortAudio {
	return &PortAudio{}
}

// Open initializes PortAudio, resolves the default output device, verifies
// the format, and opens a low-latency float32 callback stream. The returned
// stream owns the PortAudio initialization and releases it on Close.
func (p *PortAudio) Open(cfg session.StreamConfig, render session.RenderFunc) (session.Stream, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("%w: %v", session.ErrDeviceUnavailable, err)
	}

	stream, err := p.open(cfg, render)
	if err != nil {
		if terr := portaudio.Terminate(); terr != nil {
			err = fmt.Errorf("%w (terminate: %v)", err, terr)
		}
		return nil, err
	}
	return stream, nil
}

func (p *PortAudio) open(cfg session.StreamConfig, render session.RenderFunc) (session.Stream, error) {
	dev, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", session.ErrDeviceUnavailable, err)
	}

	params := portaudio.PaStreamParameters{
		DeviceIndex:      dev.Index,
		ChannelCount:     session.ChannelCount,
		SampleFormat:     portaudio.SampleFmtFloat32,
		SuggestedLatency: dev.DefaultLowOutputLatency,
	}
	if err := portaudio.IsFormatSupported(nil, &params, float64(cfg.SampleRate)); err != nil {
		return nil, fmt.Errorf("%w: %v", session.ErrConfigUnsupported, err)
	}

	st, err := portaudio.NewCallbackStream(dev.Index, session.ChannelCount,
		portaudio.SampleFmtFloat32, float64(cfg.SampleRate))
	if err != nil {
		return nil, classify(err)
	}

	const glitchFlags = portaudio.OutputUnderflow | portaudio.OutputOverflow
	cb := func(_, output []byte, frameCount uint,
		_ *portaudio.StreamCallbackTimeInfo,
		statusFlags portaudio.StreamCallbackFlags) portaudio.StreamCallbackResult {

		if len(output) == 0 || frameCount == 0 {
			return portaudio.Continue
		}
		out := unsafe.Slice((*float32)(unsafe.Pointer(&output[0])),
			int(frameCount)*session.ChannelCount)
		render(out, int(frameCount), statusFlags&glitchFlags != 0)
		return portaudio.Continue
	}

	if err := st.OpenCallback(cfg.BlockSize, cb); err != nil {
		return nil, classify(err)
	}

	return &paStream{st: st, done: make(chan error)}, nil
}

type paStream struct {
	st        *portaudio.PaStream
	done      chan error
	closeOnce sync.Once
}

func (s *paStream) Start() error {
	if err := s.st.StartStream(); err != nil {
		return classify(err)
	}
	return nil
}

// Stop blocks until pending callbacks have completed, so no callback runs
// after it returns.
func (s *paStream) Stop() error {
	return s.st.StopStream()
}

func (s *paStream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.st.CloseCallback()
		if terr := portaudio.Terminate(); terr != nil && err == nil {
			err = terr
		}
		close(s.done)
	})
	return err
}

// Done is closed on Close. PortAudio reports open and start failures
// synchronously; steady-state host errors surface as underrun flags, so
// this channel never carries an error for this backend.
func (s *paStream) Done() <-chan error { return s.done }

// classify maps PortAudio error codes onto the session error taxonomy.
func classify(err error) error {
	var paErr *portaudio.PaError
	if errors.As(err, &paErr) {
		switch paErr.ErrorCode {
		case paDeviceUnavailable:
			return fmt.Errorf("%w: %v", session.ErrDeviceBusy, err)
		case paInvalidDevice:
			return fmt.Errorf("%w: %v", session.ErrDeviceUnavailable, err)
		case paInvalidSampleRate, paSampleFormatNotSupported:
			return fmt.Errorf("%w: %v", session.ErrConfigUnsupported, err)
		}
	}

	var hostErr *portaudio.UnanticipatedHostError
	if errors.As(err, &hostErr) {
		// Host API errors during open almost always mean another process
		// holds the device exclusively.
		return fmt.Errorf("%w: %v", session.ErrDeviceBusy, err)
	}

	return err
}
