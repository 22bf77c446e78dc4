package storage

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/ezflow/internal/config"
	"github.com/san-kum/ezflow/internal/flow"
	"github.com/san-kum/ezflow/internal/metrics"
)

func pairRun(t *testing.T) (*config.Config, flow.Grid, flow.Field) {
	t.Helper()
	cfg, err := config.GetPreset("pair")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Grid.NX, cfg.Grid.NY = 6, 4
	g, f := cfg.Field()
	return cfg, g, f
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, g, f := pairRun(t)
	runID, err := st.Save("scene", cfg, g, f, metrics.Evaluate(metrics.Defaults(), g, f))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "pair_") {
		t.Errorf("expected run id prefixed with scene name, got %s", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Kind != "scene" || meta.Rows != 4 || meta.Cols != 6 || !meta.HasPsi {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	if meta.Scene == nil || len(meta.Scene.Vortices) != 2 {
		t.Fatalf("expected scene with 2 vortices, got %+v", meta.Scene)
	}
	if meta.Metrics["max_speed"] <= 0 {
		t.Errorf("expected positive max speed, got %g", meta.Metrics["max_speed"])
	}

	_, g2, f2, err := st.LoadField(runID)
	if err != nil {
		t.Fatalf("load field failed: %v", err)
	}
	for i := 0; i < 4; i++ {
		for j := 0; j < 6; j++ {
			x, y := g.At(i, j)
			x2, y2 := g2.At(i, j)
			if x != x2 || y != y2 {
				t.Errorf("grid (%d,%d): expected (%g,%g), got (%g,%g)", i, j, x, y, x2, y2)
			}
			if f.U.At(i, j) != f2.U.At(i, j) || f.V.At(i, j) != f2.V.At(i, j) || f.Psi.At(i, j) != f2.Psi.At(i, j) {
				t.Errorf("field (%d,%d) changed in round trip", i, j)
			}
		}
	}
}

func TestStoreRowHasNoPsi(t *testing.T) {
	st := New(t.TempDir())
	cfg, err := config.GetPreset("row")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Grid.NX, cfg.Grid.NY = 5, 3
	g, f := cfg.Field()

	runID, err := st.Save("row", cfg, g, f, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	meta, _, f2, err := st.LoadField(runID)
	if err != nil {
		t.Fatalf("load field failed: %v", err)
	}
	if meta.HasPsi || f2.Psi != nil {
		t.Error("row field should have no streamfunction")
	}
	// With integer x every sample on y = 0 sits on a vortex center.
	if meta.NonFinite != f.NonFinite() || meta.NonFinite == 0 {
		t.Errorf("expected %d non-finite samples recorded, got %d", f.NonFinite(), meta.NonFinite)
	}
	if got := f2.U.At(1, 0); !math.IsNaN(got) && !math.IsInf(got, 0) {
		t.Errorf("expected singular u at a center to survive, got %g", got)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	cfg, g, f := pairRun(t)
	first, err := st.Save("scene", cfg, g, f, metrics.Evaluate(metrics.Defaults(), g, f))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := st.Save("scene", cfg, g, f, metrics.Evaluate(metrics.Defaults(), g, f))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct run ids")
	}

	// Stray files and directories without metadata are skipped.
	if err := os.WriteFile(filepath.Join(tmpDir, "notes.txt"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(tmpDir, "empty"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}

	latest, err := st.Latest()
	if err != nil {
		t.Fatalf("latest failed: %v", err)
	}
	if latest.ID != second {
		t.Errorf("expected latest %s, got %s", second, latest.ID)
	}
}

func TestStoreSaveFailureLeavesNothing(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	cfg, g, f := pairRun(t)
	cfg.Vortices[0].Strength = math.NaN()
	if _, err := st.Save("scene", cfg, g, f, nil); err == nil {
		t.Fatal("expected an error encoding a NaN strength")
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected an empty store after a failed save, found %d entries", len(entries))
	}
	if _, err := st.Latest(); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestStoreNotFound(t *testing.T) {
	st := New(t.TempDir())

	for _, id := range []string{"missing", "", "..", "../etc"} {
		if _, err := st.Load(id); !errors.Is(err, ErrRunNotFound) {
			t.Errorf("Load(%q): expected ErrRunNotFound, got %v", id, err)
		}
	}
	if _, _, _, err := st.LoadField("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.Latest(); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound from empty store, got %v", err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	cfg, g, f := pairRun(t)
	runID, err := st.Save("scene", cfg, g, f, metrics.Evaluate(metrics.Defaults(), g, f))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	data, err := os.ReadFile(filepath.Join(runDir, "field.csv"))
	if err != nil {
		t.Fatalf("field.csv not readable: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[0] != "x,y,u,v,psi" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if len(lines) != 4*6+1 {
		t.Errorf("expected %d lines, got %d", 4*6+1, len(lines))
	}
}

func TestReadCSVErrors(t *testing.T) {
	_, g, f := pairRun(t)
	var buf bytes.Buffer
	if err := WriteCSV(&buf, g, f); err != nil {
		t.Fatal(err)
	}
	good := buf.String()

	tests := []struct {
		name       string
		data       string
		rows, cols int
	}{
		{"wrong shape", good, 3, 6},
		{"no grid", good, 0, 6},
		{"bad header", strings.Replace(good, "psi", "phi", 1), 4, 6},
		{"bad number", strings.Replace(good, "\n-2,", "\nabc,", 1), 4, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadCSV(strings.NewReader(tt.data), tt.rows, tt.cols)
			if !errors.Is(err, ErrCorruptRun) {
				t.Errorf("expected ErrCorruptRun, got %v", err)
			}
		})
	}
}
