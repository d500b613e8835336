package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/san-kum/gridreplay/internal/replay"
)

// TurnData is the JSON form of a single turn.
type TurnData struct {
	Turn        int      `json:"turn"`
	NumFrames   int      `json:"num_frames"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	PlayerNames []string `json:"player_names"`
	Owners      [][]int  `json:"owners"`
	Strengths   [][]int  `json:"strengths"`
	Productions [][]int  `json:"productions"`
	Moves       [][]int  `json:"moves,omitempty"`
}

func NewTurnData(rec *replay.MatchRecord, turn int) (*TurnData, error) {
	if !rec.ValidTurn(turn) {
		return nil, fmt.Errorf("%w: %d not in [0, %d]", ErrTurnOutOfRange, turn, rec.LastTurn())
	}
	data := &TurnData{
		Turn:        turn,
		NumFrames:   rec.NumFrames(),
		Width:       rec.Width,
		Height:      rec.Height,
		PlayerNames: rec.PlayerNames,
		Owners:      make([][]int, rec.Height),
		Strengths:   make([][]int, rec.Height),
		Productions: rec.Productions,
	}
	frame := rec.Frame(turn)
	for y, row := range frame {
		data.Owners[y] = make([]int, rec.Width)
		data.Strengths[y] = make([]int, rec.Width)
		for x, c := range row {
			data.Owners[y][x] = c.Owner
			data.Strengths[y][x] = c.Strength
		}
	}

	if _, ok := rec.Move(turn, 0, 0); ok {
		data.Moves = make([][]int, rec.Height)
		for y := range data.Moves {
			data.Moves[y] = make([]int, rec.Width)
			for x := range data.Moves[y] {
				d, _ := rec.Move(turn, x, y)
				data.Moves[y][x] = int(d)
			}
		}
	}
	return data, nil
}

// TurnJSON writes an indented JSON dump of one turn.
func TurnJSON(w io.Writer, rec *replay.MatchRecord, turn int) error {
	data, err := NewTurnData(rec, turn)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
