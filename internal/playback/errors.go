package playback

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownToggle indicates a toggle name outside the configured set.
	ErrUnknownToggle = errors.New("playback: unknown toggle")

	// ErrUnknownMode indicates a display mode that is neither territory nor production.
	ErrUnknownMode = errors.New("playback: unknown display mode")
)

// ConfigurationError rejects a request naming an unknown toggle or mode.
// State is left unchanged when it is returned.
type ConfigurationError struct {
	Kind    string
	Name    string
	Wrapped error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%v: %s %q", e.Wrapped, e.Kind, e.Name)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Wrapped
}
