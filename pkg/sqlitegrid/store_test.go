package sqlitegrid

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/treegrid/treegrid/pkg/grid"
	"github.com/treegrid/treegrid/pkg/tree"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "grid.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	orig := grid.FromRows([]grid.Row{
		{tree.StringVal("fruit"), tree.StringVal("citrus"), tree.StringVal("orange")},
		{tree.StringVal("fruit"), tree.IntVal(7), tree.FloatVal(2.5)},
		{tree.StringVal("fruit"), tree.BoolVal(true), tree.NullVal()},
	})
	if err := s.Write(ctx, orig); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	got, err := s.Read(ctx)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if got.RowCount() != orig.RowCount() || got.Columns() != orig.Columns() {
		t.Fatalf("read %dx%d, want %dx%d", got.RowCount(), got.Columns(), orig.RowCount(), orig.Columns())
	}
	for r, row := range got.Rows() {
		for c, cell := range row {
			want := orig.Rows()[r][c]
			if cell.Kind != want.Kind || !cell.Equal(want) {
				t.Errorf("cell (%d,%d) = %v (%v), want %v (%v)", r, c, cell, cell.Kind, want, want.Kind)
			}
		}
	}
}

func TestStore_KeepsNumberLiterals(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	orig := grid.FromRows([]grid.Row{
		{tree.StringVal("k"), tree.NumberVal("1.50")},
	})
	if err := s.Write(ctx, orig); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	got, err := s.Read(ctx)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if lit := got.Rows()[0][1].Num; lit != "1.50" {
		t.Errorf("literal = %q, want %q", lit, "1.50")
	}
}

func TestStore_WriteReplaces(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	first := grid.FromRows([]grid.Row{
		{tree.StringVal("a"), tree.StringVal("b"), tree.IntVal(1)},
		{tree.StringVal("a"), tree.StringVal("c"), tree.IntVal(2)},
	})
	if err := s.Write(ctx, first); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	second := grid.FromRows([]grid.Row{
		{tree.StringVal("x"), tree.IntVal(9)},
	})
	if err := s.Write(ctx, second); err != nil {
		t.Fatalf("second Write() error: %v", err)
	}

	got, err := s.Read(ctx)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if got.RowCount() != 1 || got.Columns() != 2 {
		t.Errorf("read %dx%d, want 1x2", got.RowCount(), got.Columns())
	}
	if !got.Rows()[0][0].Equal(tree.StringVal("x")) {
		t.Errorf("cell (0,0) = %v, want x", got.Rows()[0][0])
	}
}

func TestStore_ReadEmptyDatabase(t *testing.T) {
	s := openStore(t)

	if _, err := s.Read(context.Background()); !errors.Is(err, ErrNoGrid) {
		t.Errorf("Read() error = %v, want ErrNoGrid", err)
	}
}

func TestStore_PreservesRowOrder(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	rows := make([]grid.Row, 50)
	for i := range rows {
		rows[i] = grid.Row{tree.StringVal("k"), tree.IntVal(int64(i))}
	}
	if err := s.Write(ctx, grid.FromRows(rows)); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	got, err := s.Read(ctx)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	for i, row := range got.Rows() {
		if !row[1].Equal(tree.IntVal(int64(i))) {
			t.Fatalf("row %d = %v, want %d", i, row[1], i)
		}
	}
}
