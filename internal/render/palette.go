package render

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/gridreplay/internal/replay"
)

// Palette colors owners by id. Entry 0 is unused; neutral cells take the
// theme's neutral color instead.
type Palette [replay.PaletteSize]lipgloss.Color

// DefaultPalette is the classic player coloring.
var DefaultPalette = Palette{
	"#666666",
	"#00ffff",
	"#ff9966",
	"#ff0000",
	"#ffff00",
	"#bbaaff",
	"#9cffcc",
}

const (
	White lipgloss.Color = "#ffffff"
	Black lipgloss.Color = "#000000"

	neutralDark  lipgloss.Color = "#666666"
	neutralLight lipgloss.Color = "#999999"
	gridDark     lipgloss.Color = "#aaaaaa"
	gridLight    lipgloss.Color = "#555555"
)

// PaletteFromHex builds a palette from player colors for owners 1..n.
func PaletteFromHex(players []string) (Palette, error) {
	if len(players) != replay.PaletteSize-1 {
		return Palette{}, fmt.Errorf("render: palette needs %d player colors, got %d", replay.PaletteSize-1, len(players))
	}
	p := DefaultPalette
	for i, hex := range players {
		if _, err := colorful.Hex(hex); err != nil {
			return Palette{}, fmt.Errorf("render: player %d color %q: %w", i+1, hex, err)
		}
		p[i+1] = lipgloss.Color(hex)
	}
	return p, nil
}

// NeutralColor is the fill for unowned cells.
func NeutralColor(dark bool) lipgloss.Color {
	if dark {
		return neutralDark
	}
	return neutralLight
}

// GridLineColor is independent of display mode.
func GridLineColor(dark bool) lipgloss.Color {
	if dark {
		return gridDark
	}
	return gridLight
}

func Background(dark bool) lipgloss.Color {
	if dark {
		return Black
	}
	return White
}

// RGB decodes a "#rrggbb" color for hosts that draw pixels.
func RGB(c lipgloss.Color) (r, g, b uint8, err error) {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return 0, 0, 0, err
	}
	r, g, b = col.RGB255()
	return r, g, b, nil
}
