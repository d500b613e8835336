package replay

import "fmt"

// PaletteSize is the number of owner colors a viewer can draw, neutral included.
const PaletteSize = 7

// MaxStrength is the largest strength a cell can hold.
const MaxStrength = 255

// Cell is one board position at one turn. Owner 0 is neutral.
type Cell struct {
	Owner    int
	Strength int
}

// Frame is one turn's board in [y][x] order.
type Frame [][]Cell

// Direction is a recorded move for one cell.
type Direction int

const (
	Still Direction = iota
	North
	East
	South
	West
)

func (d Direction) String() string {
	switch d {
	case Still:
		return "still"
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// MatchRecord is a fully validated replay. It is read-only after Load.
type MatchRecord struct {
	Width       int
	Height      int
	NumPlayers  int
	PlayerNames []string
	Productions [][]int
	Frames      []Frame
	Moves       [][][]Direction
}

func (r *MatchRecord) NumFrames() int { return len(r.Frames) }

// LastTurn is the highest valid turn index.
func (r *MatchRecord) LastTurn() int { return len(r.Frames) - 1 }

func (r *MatchRecord) ValidTurn(turn int) bool {
	return turn >= 0 && turn < len(r.Frames)
}

func (r *MatchRecord) InBounds(x, y int) bool {
	return x >= 0 && x < r.Width && y >= 0 && y < r.Height
}

// Index returns the row-major index of (x, y).
func (r *MatchRecord) Index(x, y int) int { return y*r.Width + x }

// Frame returns the board at turn. The caller must not modify it.
func (r *MatchRecord) Frame(turn int) Frame { return r.Frames[turn] }

func (r *MatchRecord) Cell(turn, x, y int) Cell { return r.Frames[turn][y][x] }

func (r *MatchRecord) Production(x, y int) int { return r.Productions[y][x] }

// HasMoves reports whether the replay carries per-cell move directions.
func (r *MatchRecord) HasMoves() bool { return len(r.Moves) > 0 }

// Move returns the direction recorded for (x, y) at turn. The final turn of a
// replay usually has no moves, in which case ok is false.
func (r *MatchRecord) Move(turn, x, y int) (Direction, bool) {
	if turn < 0 || turn >= len(r.Moves) {
		return Still, false
	}
	return r.Moves[turn][y][x], true
}

// PlayerName returns the name of a 1-based player id.
func (r *MatchRecord) PlayerName(owner int) string {
	if owner < 1 || owner > len(r.PlayerNames) {
		return ""
	}
	return r.PlayerNames[owner-1]
}

// Summary describes the board size and length, e.g. "30x30 (301 frames)".
func (r *MatchRecord) Summary() string {
	return fmt.Sprintf("%dx%d (%d frames)", r.Width, r.Height, len(r.Frames))
}

// PlayerLines lists players by owner id, which is one more than their index.
func (r *MatchRecord) PlayerLines() []string {
	lines := make([]string, len(r.PlayerNames))
	for i, name := range r.PlayerNames {
		lines[i] = fmt.Sprintf("  %d - %s", i+1, name)
	}
	return lines
}
