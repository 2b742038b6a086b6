package grid

import (
	"errors"
	"testing"

	"github.com/treegrid/treegrid/pkg/tree"
)

func TestFromRows_PadsShortRows(t *testing.T) {
	g := FromRows([]Row{
		{tree.StringVal("a"), tree.StringVal("b"), tree.StringVal("c")},
		{tree.StringVal("a"), tree.StringVal("b")},
	})

	if g.Columns() != 3 {
		t.Fatalf("Columns() = %d, want 3", g.Columns())
	}
	if g.RowCount() != 2 {
		t.Fatalf("RowCount() = %d, want 2", g.RowCount())
	}
	if !g.Rows()[1][2].IsNull() {
		t.Errorf("padded cell = %v, want absent", g.Rows()[1][2])
	}
}

func TestFromRows_Empty(t *testing.T) {
	g := FromRows(nil)
	if g.Columns() != 0 || g.RowCount() != 0 {
		t.Errorf("FromRows(nil) = %dx%d, want 0x0", g.RowCount(), g.Columns())
	}
}

func TestHeaders(t *testing.T) {
	g := FromRows([]Row{
		{tree.StringVal("a"), tree.StringVal("b"), tree.StringVal("c")},
	})

	want := []string{"Level 1", "Level 2", "Level 3"}
	got := g.Headers()
	if len(got) != len(want) {
		t.Fatalf("len(Headers()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Headers()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRowDepth(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		want int
	}{
		{"full row", Row{tree.StringVal("a"), tree.StringVal("b"), tree.IntVal(1)}, 3},
		{"one absent", Row{tree.StringVal("a"), tree.NullVal(), tree.IntVal(1)}, 2},
		{"all absent", Row{tree.NullVal(), tree.NullVal()}, 0},
		{"empty row", Row{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RowDepth(tt.row); got != tt.want {
				t.Errorf("RowDepth() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidateRowDepth_Uniform(t *testing.T) {
	g := FromRows([]Row{
		{tree.StringVal("fruit"), tree.StringVal("citrus"), tree.StringVal("orange")},
		{tree.StringVal("fruit"), tree.StringVal("citrus"), tree.StringVal("lemon")},
	})

	if err := ValidateRowDepth(g); err != nil {
		t.Errorf("ValidateRowDepth() = %v, want nil", err)
	}
}

func TestValidateRowDepth_Mismatch(t *testing.T) {
	g := FromRows([]Row{
		{tree.StringVal("a"), tree.StringVal("b"), tree.StringVal("c")},
		{tree.StringVal("a"), tree.StringVal("b")},
	})

	err := ValidateRowDepth(g)
	if err == nil {
		t.Fatal("ValidateRowDepth() = nil, want error")
	}
	if !errors.Is(err, ErrRowDepthMismatch) {
		t.Errorf("errors.Is(err, ErrRowDepthMismatch) = false for %v", err)
	}

	var depthErr *RowDepthError
	if !errors.As(err, &depthErr) {
		t.Fatalf("error is %T, want *RowDepthError", err)
	}
	if depthErr.Row != 1 || depthErr.Want != 3 || depthErr.Got != 2 {
		t.Errorf("RowDepthError = row %d want %d got %d, expected row 1 want 3 got 2",
			depthErr.Row, depthErr.Want, depthErr.Got)
	}
}

func TestValidateRowDepth_Empty(t *testing.T) {
	err := ValidateRowDepth(FromRows(nil))
	if !errors.Is(err, ErrNoRows) {
		t.Errorf("ValidateRowDepth(empty) = %v, want ErrNoRows", err)
	}
}
