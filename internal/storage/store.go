package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/gridreplay/internal/metrics"
)

var ErrNotFound = errors.New("storage: export not found")

const (
	metadataFile = "metadata.json"
	playersFile  = "players.csv"
)

// Store keeps a history of exports, one directory per export.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Dir() string { return s.baseDir }

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// ExportMetadata describes one stored export.
type ExportMetadata struct {
	ID          string             `json:"id"`
	Replay      string             `json:"replay"`
	Turn        int                `json:"turn"`
	Format      string             `json:"format"`
	File        string             `json:"file"`
	Destination string             `json:"destination,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
	Metrics     map[string]float64 `json:"metrics,omitempty"`
}

// NewID builds "<replay>_t<turn>_<uuid8>".
func NewID(replayPath string, turn int) string {
	return fmt.Sprintf("%s_t%d_%s", replayName(replayPath), turn, uuid.NewString()[:8])
}

func replayName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DefaultDestination suggests "<replay>_t<turn><ext>" next to the replay file.
func DefaultDestination(replayPath string, turn int, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	name := fmt.Sprintf("%s_t%d%s", replayName(replayPath), turn, ext)
	return filepath.Join(filepath.Dir(replayPath), name)
}

// Save stores body and its metadata, plus the per-player tally of the
// exported turn when players is non-empty. It fills in ID, File and
// Timestamp when they are unset and returns the ID.
func (s *Store) Save(meta ExportMetadata, body []byte, players []metrics.PlayerStats) (string, error) {
	if meta.ID == "" {
		meta.ID = NewID(meta.Replay, meta.Turn)
	}
	if meta.File == "" {
		meta.File = "export." + meta.Format
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}

	dir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(dir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(dir, meta.File), body, 0644); err != nil {
		return "", err
	}

	if len(players) == 0 {
		return meta.ID, nil
	}
	if err := writePlayers(filepath.Join(dir, playersFile), players); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func writePlayers(path string, players []metrics.PlayerStats) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"owner", "cells", "strength", "production"}); err != nil {
		return err
	}
	for owner, p := range players {
		row := []string{
			strconv.Itoa(owner),
			strconv.Itoa(p.Cells),
			strconv.Itoa(p.Strength),
			strconv.Itoa(p.Production),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable export, oldest first. Broken entries are skipped.
func (s *Store) List() ([]ExportMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []ExportMetadata{}, nil
		}
		return nil, err
	}

	exports := make([]ExportMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		exports = append(exports, *meta)
	}

	sort.SliceStable(exports, func(i, j int) bool {
		return exports[i].Timestamp.Before(exports[j].Timestamp)
	})
	return exports, nil
}

func (s *Store) Load(id string) (*ExportMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var meta ExportMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", id, err)
	}
	return &meta, nil
}

// LoadBody returns the exported payload.
func (s *Store) LoadBody(id string) ([]byte, error) {
	meta, err := s.Load(id)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(s.baseDir, id, meta.File))
}

// LoadPlayers reads the per-player tally, indexed by owner id. Exports saved
// without one return an empty slice.
func (s *Store) LoadPlayers(id string) ([]metrics.PlayerStats, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, playersFile))
	if err != nil {
		if os.IsNotExist(err) {
			return []metrics.PlayerStats{}, nil
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []metrics.PlayerStats{}, nil
	}

	players := make([]metrics.PlayerStats, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != 4 {
			return nil, fmt.Errorf("storage: %s: malformed row %v", playersFile, record)
		}
		var vals [3]int
		for i := range vals {
			v, err := strconv.Atoi(record[i+1])
			if err != nil {
				return nil, fmt.Errorf("storage: %s: %w", playersFile, err)
			}
			vals[i] = v
		}
		players = append(players, metrics.PlayerStats{Cells: vals[0], Strength: vals[1], Production: vals[2]})
	}
	return players, nil
}
