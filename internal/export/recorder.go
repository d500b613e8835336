package export

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/gridreplay/internal/logging"
	"github.com/san-kum/gridreplay/internal/metrics"
	"github.com/san-kum/gridreplay/internal/render"
	"github.com/san-kum/gridreplay/internal/replay"
	"github.com/san-kum/gridreplay/internal/storage"
)

var ErrUnknownFormat = errors.New("export: unknown format")

// Format names an output encoding.
type Format string

const (
	FormatText Format = "xxx"
	FormatSVG  Format = "svg"
	FormatJSON Format = "json"
)

func Formats() []Format { return []Format{FormatText, FormatSVG, FormatJSON} }

func ParseFormat(name string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(name), "."))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Request describes one export of one turn.
type Request struct {
	Record     *replay.MatchRecord
	ReplayPath string
	Turn       int
	Format     Format
	// Destination is the file to write. Empty stores the export in history only.
	Destination string
	Params      render.Params
}

// Result is where an export ended up.
type Result struct {
	ID          string
	Destination string
	Bytes       int
}

// Encode renders the requested turn without touching the filesystem.
func Encode(req Request) ([]byte, error) {
	switch req.Format {
	case FormatText, "":
		text, err := Turn(req.Record, req.Turn)
		return []byte(text), err
	case FormatSVG:
		svg, err := SVG(req.Record, req.Turn, req.Params)
		return []byte(svg), err
	case FormatJSON:
		var buf bytes.Buffer
		err := TurnJSON(&buf, req.Record, req.Turn)
		return buf.Bytes(), err
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, req.Format)
}

// Recorder writes exports and keeps a copy of each in the history store.
// A nil store skips the history.
type Recorder struct {
	store *storage.Store
	log   *logging.Logger
}

func NewRecorder(store *storage.Store, log *logging.Logger) *Recorder {
	if log == nil {
		log = logging.NopLogger()
	}
	return &Recorder{store: store, log: log}
}

func (r *Recorder) Export(req Request) (Result, error) {
	if req.Format == "" {
		req.Format = FormatText
	}
	body, err := Encode(req)
	if err != nil {
		r.log.Warn("export failed", "turn", req.Turn, "format", string(req.Format), "error", err)
		return Result{}, err
	}

	res := Result{Destination: req.Destination, Bytes: len(body)}
	if req.Destination != "" {
		if dir := filepath.Dir(req.Destination); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return Result{}, err
			}
		}
		if err := os.WriteFile(req.Destination, body, 0644); err != nil {
			r.log.Error("export write failed", "path", req.Destination, "error", err)
			return Result{}, err
		}
	}

	if r.store != nil {
		history := metrics.Compute(req.Record)[:req.Turn+1]
		stats := history[req.Turn]
		summary := metrics.Summarize(history, metrics.Standard(req.Record)...)
		summary["alive"] = float64(stats.Alive())
		summary["leader"] = float64(stats.Leader())
		meta := storage.ExportMetadata{
			Replay:      req.ReplayPath,
			Turn:        req.Turn,
			Format:      string(req.Format),
			Destination: req.Destination,
			Metrics:     summary,
		}
		id, err := r.store.Save(meta, body, stats.Players)
		if err != nil {
			r.log.Error("export history save failed", "error", err)
			return Result{}, fmt.Errorf("save export history: %w", err)
		}
		res.ID = id
	}

	r.log.Info("exported turn", "turn", req.Turn, "format", string(req.Format), "path", req.Destination, "id", res.ID, "bytes", res.Bytes)
	return res, nil
}
