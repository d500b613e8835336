package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/gridreplay/internal/logging"
	"github.com/san-kum/gridreplay/internal/playback"
	"github.com/san-kum/gridreplay/internal/replay"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

func (e ValidationError) Unwrap() error { return ErrInvalidConfig }

type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, err.Error()))
	}
	return sb.String()
}

func (e ValidationErrors) Unwrap() error { return ErrInvalidConfig }

const (
	minTickMs        = 10
	minRepeatDelayMs = 100
	maxCellSize      = 64
)

// Validate checks every field and reports all failures at once.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if _, err := playback.ParseDisplayMode(c.Display.Mode); err != nil {
		errs = append(errs, ValidationError{Field: "display.mode", Value: c.Display.Mode, Message: "must be territory or production"})
	}
	if c.Playback.TickMs < minTickMs {
		errs = append(errs, ValidationError{Field: "playback.tick_ms", Value: c.Playback.TickMs, Message: fmt.Sprintf("must be at least %d", minTickMs)})
	}
	if c.Playback.KeyReleaseMs < c.Playback.TickMs {
		errs = append(errs, ValidationError{Field: "playback.key_release_ms", Value: c.Playback.KeyReleaseMs, Message: "must not be shorter than tick_ms"})
	}
	if c.Playback.RepeatDelayMs < minRepeatDelayMs || c.Playback.RepeatDelayMs > c.Playback.KeyReleaseMs {
		errs = append(errs, ValidationError{Field: "playback.repeat_delay_ms", Value: c.Playback.RepeatDelayMs, Message: fmt.Sprintf("must be between %d and key_release_ms", minRepeatDelayMs)})
	}
	if c.Render.CellSize < 4 || c.Render.CellSize > maxCellSize {
		errs = append(errs, ValidationError{Field: "render.cell_size", Value: c.Render.CellSize, Message: fmt.Sprintf("must be between 4 and %d", maxCellSize)})
	}
	if len(c.Render.Colors) > 0 {
		if len(c.Render.Colors) != replay.PaletteSize-1 {
			errs = append(errs, ValidationError{Field: "render.colors", Value: len(c.Render.Colors), Message: fmt.Sprintf("needs exactly %d colors", replay.PaletteSize-1)})
		}
		for i, hex := range c.Render.Colors {
			if _, err := colorful.Hex(hex); err != nil {
				errs = append(errs, ValidationError{Field: fmt.Sprintf("render.colors[%d]", i), Value: hex, Message: "not a #rrggbb color"})
			}
		}
	} else if _, ok := GetPreset(c.Render.Palette); !ok {
		errs = append(errs, ValidationError{Field: "render.palette", Value: c.Render.Palette, Message: "must be one of " + strings.Join(ListPresets(), ", ")})
	}
	if !strings.HasPrefix(c.Export.Extension, ".") || len(c.Export.Extension) < 2 {
		errs = append(errs, ValidationError{Field: "export.extension", Value: c.Export.Extension, Message: "must start with a dot"})
	}
	if !validLevel(c.Logging.Level) {
		errs = append(errs, ValidationError{Field: "logging.level", Value: c.Logging.Level, Message: "must be one of " + strings.Join(logging.ValidLevels(), ", ")})
	}
	if c.DataDir == "" {
		errs = append(errs, ValidationError{Field: "data_dir", Value: c.DataDir, Message: "must not be empty"})
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validLevel(level string) bool {
	for _, l := range logging.ValidLevels() {
		if strings.EqualFold(l, level) {
			return true
		}
	}
	return false
}
