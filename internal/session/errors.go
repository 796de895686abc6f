// ABOUTME: Error taxonomy for stream configuration and device failures
// ABOUTME: Typed config errors plus sentinel device errors for errors.Is checks
package session

import (
	"errors"
	"fmt"
)

// Device failure classes surfaced from Start. The device layer wraps the
// underlying error around one of these so callers can branch with errors.Is.
var (
	// ErrDeviceUnavailable means no suitable output device exists.
	ErrDeviceUnavailable = errors.New("no suitable audio output device")
	// ErrDeviceBusy means the output device is held by another process.
	ErrDeviceBusy = errors.New("audio output device is busy")
	// ErrConfigUnsupported means the device rejected the negotiated format.
	ErrConfigUnsupported = errors.New("device rejected the stream format")
)

// ConfigError reports an invalid stream configuration. It is returned from
// Configure before any device is touched.
type ConfigError struct {
	Field  string
	Value  int
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %d: %s", e.Field, e.Value, e.Reason)
}
