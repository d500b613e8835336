package replay

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidReplay is wrapped by every load failure.
	ErrInvalidReplay = errors.New("replay: invalid replay")

	// ErrDimensionMismatch indicates a grid whose rows or columns disagree with width/height.
	ErrDimensionMismatch = errors.New("replay: grid dimensions do not match width/height")

	// ErrValueRange indicates an owner, strength, production or move outside its bounds.
	ErrValueRange = errors.New("replay: value out of range")

	// ErrPaletteOverflow indicates more players than the fixed palette can color.
	ErrPaletteOverflow = errors.New("replay: too many players for palette")
)

// LoadError wraps a load failure with the file and field that caused it.
type LoadError struct {
	Path    string
	Field   string
	Wrapped error
}

func (e *LoadError) Error() string {
	switch {
	case e.Path != "" && e.Field != "":
		return fmt.Sprintf("load %s: %s: %v", e.Path, e.Field, e.Wrapped)
	case e.Path != "":
		return fmt.Sprintf("load %s: %v", e.Path, e.Wrapped)
	case e.Field != "":
		return fmt.Sprintf("load: %s: %v", e.Field, e.Wrapped)
	}
	return "load: " + e.Wrapped.Error()
}

func (e *LoadError) Unwrap() []error {
	return []error{ErrInvalidReplay, e.Wrapped}
}

func fieldError(field string, err error, format string, args ...any) *LoadError {
	return &LoadError{
		Field:   field,
		Wrapped: fmt.Errorf("%w: "+format, append([]any{err}, args...)...),
	}
}
