package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	apperrors "github.com/treegrid/treegrid/pkg/errors"
	"github.com/treegrid/treegrid/pkg/history"
	"github.com/treegrid/treegrid/pkg/tree"
)

// inventoryJSON flattens to four rows over three columns. Every leaf is a
// list, so the round trip reproduces it exactly.
const inventoryJSON = `{
  "fruit": {
    "citrus": ["orange", "lemon"],
    "stone": ["peach"]
  },
  "veg": {
    "root": ["carrot"]
  }
}`

func newTestRunner() *Runner {
	return NewRunner(log.NewWithOptions(io.Discard, log.Options{}), nil)
}

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return path
}

func TestRunnerFlatten(t *testing.T) {
	r := newTestRunner()
	source := writeSource(t, "inventory.json", inventoryJSON)
	dest := filepath.Join(t.TempDir(), "inventory.xlsx")

	result, err := r.Flatten(context.Background(), Options{Source: source, Dest: dest})
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}

	if result.Stats.Rows != 4 {
		t.Errorf("Rows = %d, want 4", result.Stats.Rows)
	}
	if result.Stats.Columns != 3 {
		t.Errorf("Columns = %d, want 3", result.Stats.Columns)
	}
	if result.Stats.Depth != 2 {
		t.Errorf("Depth = %d, want 2", result.Stats.Depth)
	}
	// fruit repeats over three rows, citrus over two
	if result.Stats.MergedRuns != 2 {
		t.Errorf("MergedRuns = %d, want 2", result.Stats.MergedRuns)
	}

	if _, err := os.Stat(dest); err != nil {
		t.Errorf("Destination was not written: %v", err)
	}
}

func TestRunnerFlattenNoMerge(t *testing.T) {
	r := newTestRunner()
	source := writeSource(t, "inventory.json", inventoryJSON)
	dest := filepath.Join(t.TempDir(), "inventory.xlsx")

	result, err := r.Flatten(context.Background(), Options{Source: source, Dest: dest, NoMerge: true})
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}

	if len(result.Spans) != 0 {
		t.Errorf("NoMerge should write no spans, got %d", len(result.Spans))
	}
	if result.Stats.MergedRuns != 0 {
		t.Errorf("MergedRuns = %d, want 0", result.Stats.MergedRuns)
	}
}

func TestRunnerFlattenMixedDepth(t *testing.T) {
	r := newTestRunner()
	source := writeSource(t, "mixed.json", `{"a": {"b": [1]}, "c": [2]}`)
	dest := filepath.Join(t.TempDir(), "mixed.xlsx")

	_, err := r.Flatten(context.Background(), Options{Source: source, Dest: dest})
	if err == nil {
		t.Fatal("Mixed-depth document should fail")
	}
	if !apperrors.Is(err, apperrors.ErrCodeInvalidDepth) {
		t.Errorf("Error should be INVALID_DEPTH, got %v", err)
	}

	// Validation runs before the writer: no artifact appears
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("Destination should not exist after a depth failure")
	}
}

func TestRunnerFlattenMissingSource(t *testing.T) {
	r := newTestRunner()
	dest := filepath.Join(t.TempDir(), "out.xlsx")

	_, err := r.Flatten(context.Background(), Options{Source: "no-such-file.json", Dest: dest})
	if err == nil {
		t.Fatal("Missing source should fail")
	}
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("Error should be FILE_NOT_FOUND, got %v", err)
	}
}

func TestRunnerRoundTripXLSX(t *testing.T) {
	r := newTestRunner()
	source := writeSource(t, "inventory.json", inventoryJSON)
	dir := t.TempDir()
	artifact := filepath.Join(dir, "inventory.xlsx")
	rebuilt := filepath.Join(dir, "rebuilt.json")

	flat, err := r.Flatten(context.Background(), Options{Source: source, Dest: artifact})
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}

	nested, err := r.Nest(context.Background(), Options{Source: artifact, Dest: rebuilt})
	if err != nil {
		t.Fatalf("Nest failed: %v", err)
	}

	if nested.Stats.Rows != flat.Stats.Rows {
		t.Errorf("Rebuilt rows = %d, want %d", nested.Stats.Rows, flat.Stats.Rows)
	}
	if !tree.Equal(flat.Tree, nested.Tree) {
		t.Errorf("Round trip changed the document:\noriginal: %v\nrebuilt:  %v", flat.Tree, nested.Tree)
	}
	if _, err := os.Stat(rebuilt); err != nil {
		t.Errorf("Rebuilt document was not written: %v", err)
	}
}

func TestRunnerRoundTripSQLite(t *testing.T) {
	r := newTestRunner()
	// Mixed scalar types, all wrapped in lists
	source := writeSource(t, "readings.json", `{
  "sensor": {
    "temps": [21.5, 22, -3],
    "armed": [true, false],
    "tags": ["roof", "north"]
  }
}`)
	dir := t.TempDir()
	artifact := filepath.Join(dir, "readings.db")
	rebuilt := filepath.Join(dir, "rebuilt.json")

	flat, err := r.Flatten(context.Background(), Options{Source: source, Dest: artifact})
	if err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}

	nested, err := r.Nest(context.Background(), Options{Source: artifact, Dest: rebuilt})
	if err != nil {
		t.Fatalf("Nest failed: %v", err)
	}

	if !tree.Equal(flat.Tree, nested.Tree) {
		t.Errorf("Round trip changed the document:\noriginal: %v\nrebuilt:  %v", flat.Tree, nested.Tree)
	}
}

func TestRunnerVerify(t *testing.T) {
	r := newTestRunner()
	source := writeSource(t, "inventory.json", inventoryJSON)

	result, err := r.Verify(context.Background(), Options{Source: source})
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if !result.Match {
		t.Errorf("Round trip should match:\noriginal: %v\nrebuilt:  %v", result.Original, result.Rebuilt)
	}
	if result.Stats.Rows != 4 {
		t.Errorf("Rows = %d, want 4", result.Stats.Rows)
	}
}

func TestRunnerVerifyScalarLeaves(t *testing.T) {
	r := newTestRunner()
	// A bare scalar leaf rebuilds as a single-element list, so the
	// comparison reports a mismatch without failing the run.
	source := writeSource(t, "person.json", `{"name": {"first": "Ada"}}`)

	result, err := r.Verify(context.Background(), Options{Source: source})
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if result.Match {
		t.Error("Scalar leaves should not survive the round trip unchanged")
	}
}

func TestRunnerVerifySQLiteArtifact(t *testing.T) {
	r := newTestRunner()
	source := writeSource(t, "inventory.json", inventoryJSON)

	result, err := r.Verify(context.Background(), Options{Source: source, DestFormat: FormatSQLite})
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !result.Match {
		t.Error("Round trip through sqlite should match")
	}
}

func TestRunnerGraphDOT(t *testing.T) {
	r := newTestRunner()
	source := writeSource(t, "inventory.json", inventoryJSON)

	result, err := r.Graph(context.Background(), Options{Source: source, Formats: []string{"dot"}})
	if err != nil {
		t.Fatalf("Graph failed: %v", err)
	}

	dot, ok := result.Artifacts["dot"]
	if !ok {
		t.Fatal("Missing dot artifact")
	}
	if !strings.HasPrefix(string(dot), "digraph") {
		t.Errorf("Artifact should be a DOT document, got %q", string(dot))
	}
}

func TestRunnerNestMissingSource(t *testing.T) {
	r := newTestRunner()
	dest := filepath.Join(t.TempDir(), "out.json")

	_, err := r.Nest(context.Background(), Options{Source: "no-such-file.xlsx", Dest: dest})
	if err == nil {
		t.Fatal("Missing source should fail")
	}
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("Error should be FILE_NOT_FOUND, got %v", err)
	}
}

func TestRunnerRecordsHistory(t *testing.T) {
	hist, err := history.Open(filepath.Join(t.TempDir(), "history.jsonl"))
	if err != nil {
		t.Fatalf("Open history: %v", err)
	}
	r := NewRunner(log.NewWithOptions(io.Discard, log.Options{}), hist)

	source := writeSource(t, "inventory.json", inventoryJSON)
	dest := filepath.Join(t.TempDir(), "inventory.xlsx")
	if _, err := r.Flatten(context.Background(), Options{Source: source, Dest: dest}); err != nil {
		t.Fatalf("Flatten failed: %v", err)
	}

	records, err := hist.List()
	if err != nil {
		t.Fatalf("List history: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("History should hold 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Op != "flatten" {
		t.Errorf("Op = %q, want flatten", rec.Op)
	}
	if rec.Status != history.StatusOK {
		t.Errorf("Status = %q, want %q", rec.Status, history.StatusOK)
	}
	if rec.Rows != 4 {
		t.Errorf("Rows = %d, want 4", rec.Rows)
	}
}
