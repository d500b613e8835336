package export

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/gridreplay/internal/replay"
)

var (
	ErrTurnOutOfRange        = errors.New("export: turn out of range")
	ErrOwnerUnencodable      = errors.New("export: owner has no letter")
	// Production wider than two digits would make tokens ambiguous.
	ErrProductionUnencodable = errors.New("export: production does not fit the token")
)

// Extension is the file suffix for text grid exports.
const Extension = ".xxx"

// ownerLetters is indexed by owner id; '.' is unowned.
const ownerLetters = ".RGBVMX"

const (
	filler = "_"
	// fieldWidth covers production and strength together; the filler sits
	// between them.
	fieldWidth = 5
	// maxProductionDigits plus three strength digits fill fieldWidth, so
	// every token is six bytes.
	maxProductionDigits = 2
)

// Token encodes one cell as owner letter, production, filler and strength,
// e.g. "R1___7" or "G15255".
func Token(c replay.Cell, production int) (string, error) {
	if c.Owner < 0 || c.Owner >= len(ownerLetters) {
		return "", fmt.Errorf("%w: %d", ErrOwnerUnencodable, c.Owner)
	}
	pr, st := strconv.Itoa(production), strconv.Itoa(c.Strength)
	if production < 0 || len(pr) > maxProductionDigits {
		return "", fmt.Errorf("%w: %d", ErrProductionUnencodable, production)
	}
	pad := max(fieldWidth-len(pr)-len(st), 0)
	return string(ownerLetters[c.Owner]) + pr + strings.Repeat(filler, pad) + st, nil
}

// Turn renders one turn as rows of space-separated tokens joined by newlines.
// There is no trailing newline.
func Turn(rec *replay.MatchRecord, turn int) (string, error) {
	if !rec.ValidTurn(turn) {
		return "", fmt.Errorf("%w: %d not in [0, %d]", ErrTurnOutOfRange, turn, rec.LastTurn())
	}
	frame := rec.Frame(turn)

	var sb strings.Builder
	for y := 0; y < rec.Height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < rec.Width; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			tok, err := Token(frame[y][x], rec.Productions[y][x])
			if err != nil {
				return "", fmt.Errorf("cell [%d,%d]: %w", x, y, err)
			}
			sb.WriteString(tok)
		}
	}
	return sb.String(), nil
}

// WriteTurn writes Turn's output to path. Nothing is written on error.
func WriteTurn(path string, rec *replay.MatchRecord, turn int) error {
	text, err := Turn(rec, turn)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0644)
}
