// Package replay holds the in-memory model of one recorded territory-control match.
//
// A [MatchRecord] is decoded once from the recorder's JSON output and never mutated:
//
//   - [Frame]: one turn's board, indexed [y][x]
//   - [Cell]: owner and strength of one board position
//   - [Direction]: optional per-cell move recorded by extended replay formats
//
// # Loading
//
//	rec, err := replay.Load("match.hlt")
//	if errors.Is(err, replay.ErrInvalidReplay) {
//		// missing file, malformed JSON, or a grid that violates the record's bounds
//	}
//
// Validation is limited to shape and range checks. The match itself is not
// re-simulated.
package replay
