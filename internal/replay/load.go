package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// File is the recorder's JSON layout. Frames hold [owner, strength] pairs.
type File struct {
	Width       int         `json:"width" jsonschema:"title=Width,description=Board width in cells,minimum=1"`
	Height      int         `json:"height" jsonschema:"title=Height,description=Board height in cells,minimum=1"`
	NumPlayers  int         `json:"num_players" jsonschema:"title=Player count,minimum=0,maximum=6"`
	PlayerNames []string    `json:"player_names" jsonschema:"title=Player names,description=Names ordered by owner id starting at 1"`
	NumFrames   *int        `json:"num_frames,omitempty" jsonschema:"title=Frame count,description=Must equal the length of frames,minimum=1"`
	Productions [][]int     `json:"productions" jsonschema:"title=Production map,description=height rows of width non-negative production values"`
	Frames      [][][][]int `json:"frames" jsonschema:"title=Frames,description=One board per turn; each cell is [owner strength],minItems=1"`
	Moves       [][][]int   `json:"moves,omitempty" jsonschema:"title=Moves,description=Optional per-turn move grids: 0 still 1 north 2 east 3 south 4 west"`
}

// Load reads and validates a replay file. Every failure is a *LoadError
// wrapping ErrInvalidReplay.
func Load(path string) (*MatchRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Wrapped: err}
	}
	defer f.Close()

	rec, err := Decode(f)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Path: path, Wrapped: err}
	}
	return rec, nil
}

// Decode parses and validates a replay from r.
func Decode(r io.Reader) (*MatchRecord, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, &LoadError{Wrapped: fmt.Errorf("decode json: %w", err)}
	}
	return f.Record()
}

// Record validates the decoded file and converts it to a MatchRecord.
func (f *File) Record() (*MatchRecord, error) {
	if f.Width <= 0 || f.Height <= 0 {
		return nil, fieldError("width/height", ErrValueRange, "got %dx%d", f.Width, f.Height)
	}
	if f.NumPlayers < 0 {
		return nil, fieldError("num_players", ErrValueRange, "got %d", f.NumPlayers)
	}
	if f.NumPlayers+1 > PaletteSize {
		return nil, fieldError("num_players", ErrPaletteOverflow, "%d players, palette holds %d", f.NumPlayers, PaletteSize-1)
	}
	if len(f.PlayerNames) != f.NumPlayers {
		return nil, fieldError("player_names", ErrDimensionMismatch, "expected %d names, got %d", f.NumPlayers, len(f.PlayerNames))
	}
	if len(f.Frames) == 0 {
		return nil, fieldError("frames", ErrDimensionMismatch, "no frames")
	}
	if f.NumFrames != nil && *f.NumFrames != len(f.Frames) {
		return nil, fieldError("num_frames", ErrDimensionMismatch, "num_frames is %d but %d frames present", *f.NumFrames, len(f.Frames))
	}

	rec := &MatchRecord{
		Width:       f.Width,
		Height:      f.Height,
		NumPlayers:  f.NumPlayers,
		PlayerNames: append([]string(nil), f.PlayerNames...),
	}

	prods, err := f.productions()
	if err != nil {
		return nil, err
	}
	rec.Productions = prods

	rec.Frames = make([]Frame, len(f.Frames))
	for t, raw := range f.Frames {
		frame, err := f.frame(t, raw)
		if err != nil {
			return nil, err
		}
		rec.Frames[t] = frame
	}

	if len(f.Moves) > 0 {
		moves, err := f.moves()
		if err != nil {
			return nil, err
		}
		rec.Moves = moves
	}

	return rec, nil
}

func (f *File) checkRows(field string, rows int) *LoadError {
	if rows != f.Height {
		return fieldError(field, ErrDimensionMismatch, "expected %d rows, got %d", f.Height, rows)
	}
	return nil
}

func (f *File) checkCols(field string, y, cols int) *LoadError {
	if cols != f.Width {
		return fieldError(field, ErrDimensionMismatch, "row %d: expected %d columns, got %d", y, f.Width, cols)
	}
	return nil
}

func (f *File) productions() ([][]int, error) {
	if err := f.checkRows("productions", len(f.Productions)); err != nil {
		return nil, err
	}
	out := make([][]int, f.Height)
	for y, row := range f.Productions {
		if err := f.checkCols("productions", y, len(row)); err != nil {
			return nil, err
		}
		for x, p := range row {
			if p < 0 {
				return nil, fieldError("productions", ErrValueRange, "[%d][%d] = %d", y, x, p)
			}
		}
		out[y] = append([]int(nil), row...)
	}
	return out, nil
}

func (f *File) frame(t int, raw [][][]int) (Frame, error) {
	field := fmt.Sprintf("frames[%d]", t)
	if err := f.checkRows(field, len(raw)); err != nil {
		return nil, err
	}
	frame := make(Frame, f.Height)
	for y, row := range raw {
		if err := f.checkCols(field, y, len(row)); err != nil {
			return nil, err
		}
		cells := make([]Cell, f.Width)
		for x, pair := range row {
			if len(pair) != 2 {
				return nil, fieldError(field, ErrDimensionMismatch, "[%d][%d]: expected [owner, strength], got %d values", y, x, len(pair))
			}
			owner, strength := pair[0], pair[1]
			if owner < 0 || owner > f.NumPlayers {
				return nil, fieldError(field, ErrValueRange, "[%d][%d]: owner %d not in [0, %d]", y, x, owner, f.NumPlayers)
			}
			if strength < 0 || strength > MaxStrength {
				return nil, fieldError(field, ErrValueRange, "[%d][%d]: strength %d not in [0, %d]", y, x, strength, MaxStrength)
			}
			cells[x] = Cell{Owner: owner, Strength: strength}
		}
		frame[y] = cells
	}
	return frame, nil
}

func (f *File) moves() ([][][]Direction, error) {
	n := len(f.Frames)
	if len(f.Moves) != n && len(f.Moves) != n-1 {
		return nil, fieldError("moves", ErrDimensionMismatch, "expected %d or %d move grids, got %d", n, n-1, len(f.Moves))
	}
	out := make([][][]Direction, len(f.Moves))
	for t, grid := range f.Moves {
		field := fmt.Sprintf("moves[%d]", t)
		if err := f.checkRows(field, len(grid)); err != nil {
			return nil, err
		}
		out[t] = make([][]Direction, f.Height)
		for y, row := range grid {
			if err := f.checkCols(field, y, len(row)); err != nil {
				return nil, err
			}
			dirs := make([]Direction, f.Width)
			for x, d := range row {
				if d < int(Still) || d > int(West) {
					return nil, fieldError(field, ErrValueRange, "[%d][%d]: direction %d", y, x, d)
				}
				dirs[x] = Direction(d)
			}
			out[t][y] = dirs
		}
	}
	return out, nil
}
