package render

import (
	"fmt"
	"math"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/gridreplay/internal/replay"
)

// Mode selects what the board shows.
type Mode int

const (
	Territory Mode = iota
	Production
)

func (m Mode) String() string {
	switch m {
	case Territory:
		return "territory"
	case Production:
		return "production"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool { return m == Territory || m == Production }

// Tier is a cell's draw priority; higher tiers are drawn later.
type Tier int

const (
	TierNeutral Tier = iota
	TierNormal
	TierMax
)

func (t Tier) String() string {
	switch t {
	case TierNeutral:
		return "neutral"
	case TierNormal:
		return "normal"
	case TierMax:
		return "max"
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

const (
	// DefaultCellSize is the pixel edge of one board cell.
	DefaultCellSize = 16
	// ProductionCap is the production value that maps to full white.
	ProductionCap = 16

	strengthStep = 40
)

// Params is everything the mapping depends on besides the cell itself.
type Params struct {
	Mode         Mode
	ShowNeutrals bool
	ShowStrength bool
	DarkTheme    bool
	CellSize     int
	Palette      Palette
}

// DefaultParams matches a fresh viewer session.
func DefaultParams() Params {
	return Params{
		Mode:         Territory,
		ShowNeutrals: true,
		ShowStrength: true,
		DarkTheme:    true,
		CellSize:     DefaultCellSize,
		Palette:      DefaultPalette,
	}
}

// Style is the visual form of one cell. Hidden cells are not drawn at all.
type Style struct {
	Visible bool
	Fill    lipgloss.Color
	Outline lipgloss.Color // empty means no outline
	Inset   int
	Tier    Tier
}

func (p Params) cellSize() int {
	if p.CellSize <= 0 {
		return DefaultCellSize
	}
	return p.CellSize
}

// DotInset shrinks a zero-strength cell to a small dot.
func (p Params) DotInset() int {
	return p.cellSize()/2 - 1
}

// TerritoryStyle maps an (owner, strength) cell.
func TerritoryStyle(owner, strength int, p Params) Style {
	if owner == 0 && !p.ShowNeutrals {
		return Style{}
	}

	s := Style{Visible: true, Outline: Black, Tier: TierNeutral}
	if owner != 0 {
		s.Fill = p.Palette[owner]
		s.Tier = TierNormal
	} else {
		s.Fill = NeutralColor(p.DarkTheme)
	}

	switch {
	case strength == 0:
		s.Inset = p.DotInset()
	case p.ShowStrength:
		s.Inset = (replay.MaxStrength - strength) / strengthStep
	default:
		s.Inset = 0
	}

	if strength == replay.MaxStrength {
		s.Tier = TierMax
		if p.DarkTheme && p.ShowStrength {
			s.Outline = White
		}
	}
	return s
}

// ProductionLevel is the grayscale intensity for a production value.
func ProductionLevel(production int) int {
	if production > ProductionCap {
		production = ProductionCap
	}
	if production < 0 {
		production = 0
	}
	return int(math.Round(255 * float64(production) / ProductionCap))
}

// ProductionColor formats the level as a gray "#llllll".
func ProductionColor(production int) lipgloss.Color {
	l := ProductionLevel(production)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", l, l, l))
}

// ProductionStyle is a flat, outline-free square.
func ProductionStyle(production int) Style {
	return Style{Visible: true, Fill: ProductionColor(production), Tier: TierNeutral}
}

// CellStyle dispatches on p.Mode.
func CellStyle(c replay.Cell, production int, p Params) Style {
	if p.Mode == Production {
		return ProductionStyle(production)
	}
	return TerritoryStyle(c.Owner, c.Strength, p)
}

// Rect is a pixel rectangle with exclusive max corner.
type Rect struct {
	X0, Y0, X1, Y1 int
}

func (r Rect) Width() int  { return r.X1 - r.X0 }
func (r Rect) Height() int { return r.Y1 - r.Y0 }

// Op draws one cell.
type Op struct {
	X, Y  int
	Rect  Rect
	Style Style
}

// CellRect is the square for (x, y) shrunk by inset on every side.
func CellRect(x, y, inset, cellSize int) Rect {
	px, py := x*cellSize, y*cellSize
	return Rect{X0: px + inset, Y0: py + inset, X1: px + cellSize - inset, Y1: py + cellSize - inset}
}

// DrawList returns the visible cells of turn in ascending tier order, row-major
// within a tier. Production mode ignores turn.
func DrawList(rec *replay.MatchRecord, turn int, p Params) []Op {
	size := p.cellSize()
	frame := rec.Frame(turn)

	ops := make([]Op, 0, rec.Width*rec.Height)
	for y := 0; y < rec.Height; y++ {
		for x := 0; x < rec.Width; x++ {
			s := CellStyle(frame[y][x], rec.Productions[y][x], p)
			if !s.Visible {
				continue
			}
			ops = append(ops, Op{X: x, Y: y, Rect: CellRect(x, y, s.Inset, size), Style: s})
		}
	}

	sort.SliceStable(ops, func(i, j int) bool {
		return ops[i].Style.Tier < ops[j].Style.Tier
	})
	return ops
}

// BoardSize is the pixel size of the whole board including the closing grid line.
func BoardSize(rec *replay.MatchRecord, p Params) (w, h int) {
	size := p.cellSize()
	return rec.Width*size + 1, rec.Height*size + 1
}
