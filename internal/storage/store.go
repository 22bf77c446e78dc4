package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/san-kum/ezflow/internal/config"
	"github.com/san-kum/ezflow/internal/flow"
)

const (
	metadataFile = "metadata.json"
	fieldFile    = "field.csv"
)

var (
	ErrRunNotFound = errors.New("storage: run not found")
	ErrCorruptRun  = errors.New("storage: field data does not match metadata")
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one stored field evaluation.
type RunMetadata struct {
	ID        string             `json:"id"`
	Kind      string             `json:"kind"`
	Timestamp time.Time          `json:"timestamp"`
	Scene     *config.Config     `json:"scene"`
	Rows      int                `json:"rows"`
	Cols      int                `json:"cols"`
	HasPsi    bool               `json:"has_psi"`
	NonFinite int                `json:"non_finite"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes the scene and its evaluated field as a new run. kind names the
// command that produced it (vortex, row, scene). Metric values must be finite.
func (s *Store) Save(kind string, scene *config.Config, g flow.Grid, f flow.Field, metrics map[string]float64) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}
	now := time.Now()
	rows, cols := g.Dims()
	meta := RunMetadata{
		Kind:      kind,
		Timestamp: now,
		Scene:     scene,
		Rows:      rows,
		Cols:      cols,
		HasPsi:    f.Psi != nil,
		NonFinite: f.NonFinite(),
		Metrics:   metrics,
	}
	// Encode once before touching the disk so an unencodable scene leaves
	// no run directory behind.
	if _, err := json.Marshal(meta); err != nil {
		return "", fmt.Errorf("storage: encode metadata: %w", err)
	}

	runID, runDir, err := s.newRunDir(scene.Name, now)
	if err != nil {
		return "", err
	}
	meta.ID = runID
	if err := writeRun(runDir, meta, g, f); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func writeRun(runDir string, meta RunMetadata, g flow.Grid, f flow.Field) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(runDir, metadataFile), append(data, '\n'), 0644); err != nil {
		return err
	}

	csvFile, err := os.Create(filepath.Join(runDir, fieldFile))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, g, f); err != nil {
		return err
	}
	return csvFile.Sync()
}

// newRunDir creates a fresh directory named after the scene and the time,
// adding a counter when two runs land in the same nanosecond tick.
func (s *Store) newRunDir(name string, now time.Time) (string, string, error) {
	if name == "" {
		name = "run"
	}
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ' ' {
			return '_'
		}
		return r
	}, name)
	base := fmt.Sprintf("%s_%d", name, now.UnixNano())
	for i := 0; ; i++ {
		runID := base
		if i > 0 {
			runID = fmt.Sprintf("%s_%d", base, i)
		}
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", "", err
		}
	}
}

// List returns all readable runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}
	return &meta, nil
}

// Latest returns the most recent run.
func (s *Store) Latest() (*RunMetadata, error) {
	runs, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("%w: store is empty", ErrRunNotFound)
	}
	return &runs[len(runs)-1], nil
}

// LoadField reads back the grid and field of a run.
func (s *Store) LoadField(runID string) (*RunMetadata, flow.Grid, flow.Field, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, flow.Grid{}, flow.Field{}, err
	}
	dir, _ := s.runDir(runID)
	file, err := os.Open(filepath.Join(dir, fieldFile))
	if err != nil {
		return nil, flow.Grid{}, flow.Field{}, err
	}
	defer file.Close()

	g, f, err := ReadCSV(file, meta.Rows, meta.Cols)
	if err != nil {
		return nil, flow.Grid{}, flow.Field{}, fmt.Errorf("storage: %s: %w", runID, err)
	}
	if !meta.HasPsi {
		f.Psi = nil
	}
	return meta, g, f, nil
}

// runDir rejects ids that would escape the store.
func (s *Store) runDir(runID string) (string, error) {
	if runID == "" || runID == "." || runID == ".." || strings.ContainsAny(runID, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrRunNotFound, runID)
	}
	return filepath.Join(s.baseDir, runID), nil
}
