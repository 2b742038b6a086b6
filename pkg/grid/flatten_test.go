package grid

import (
	"testing"

	"github.com/treegrid/treegrid/pkg/tree"
)

func checkRows(t *testing.T, got []Row, want []Row) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len(rows) = %d, want %d: %v", len(got), len(want), got)
	}
	for r, row := range got {
		if len(row) != len(want[r]) {
			t.Fatalf("len(rows[%d]) = %d, want %d", r, len(row), len(want[r]))
		}
		for c, cell := range row {
			if !cell.Equal(want[r][c]) {
				t.Errorf("rows[%d][%d] = %v, want %v", r, c, cell, want[r][c])
			}
		}
	}
}

func TestFlatten_ConcreteExample(t *testing.T) {
	// {"fruit": {"citrus": ["orange", "lemon"]}}
	fruit := tree.NewMap()
	fruit.Set("citrus", tree.NewList(tree.StringVal("orange"), tree.StringVal("lemon")))
	root := tree.NewMap()
	root.Set("fruit", fruit)

	checkRows(t, Flatten(root), []Row{
		{tree.StringVal("fruit"), tree.StringVal("citrus"), tree.StringVal("orange")},
		{tree.StringVal("fruit"), tree.StringVal("citrus"), tree.StringVal("lemon")},
	})
}

func TestFlatten_EmptyListDroppedWithBranch(t *testing.T) {
	// {"A": {"B": []}} - B emits nothing, so branch A vanishes entirely.
	inner := tree.NewMap()
	inner.Set("B", tree.NewList())
	root := tree.NewMap()
	root.Set("A", inner)

	if rows := Flatten(root); len(rows) != 0 {
		t.Errorf("Flatten() = %v, want no rows", rows)
	}
}

func TestFlatten_EmptyMapDropped(t *testing.T) {
	root := tree.NewMap()
	root.Set("A", tree.NewMap())

	if rows := Flatten(root); len(rows) != 0 {
		t.Errorf("Flatten() = %v, want no rows", rows)
	}
}

func TestFlatten_ScalarLeaf(t *testing.T) {
	inner := tree.NewMap()
	inner.Set("b", tree.NewScalar(tree.IntVal(1)))
	root := tree.NewMap()
	root.Set("a", inner)

	checkRows(t, Flatten(root), []Row{
		{tree.StringVal("a"), tree.StringVal("b"), tree.IntVal(1)},
	})
}

func TestFlatten_NullLeafEmitsAbsentCell(t *testing.T) {
	inner := tree.NewMap()
	inner.Set("b", tree.NewScalar(tree.NullVal()))
	root := tree.NewMap()
	root.Set("a", inner)

	rows := Flatten(root)
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if !rows[0][2].IsNull() {
		t.Errorf("value cell = %v, want absent", rows[0][2])
	}
}

func TestFlatten_DepthFirstInsertionOrder(t *testing.T) {
	// {"fruit": {"citrus": ["orange"], "berry": ["raspberry"]},
	//  "vegetable": {"root": ["carrot", "beet"]}}
	fruit := tree.NewMap()
	fruit.Set("citrus", tree.NewList(tree.StringVal("orange")))
	fruit.Set("berry", tree.NewList(tree.StringVal("raspberry")))
	veg := tree.NewMap()
	veg.Set("root", tree.NewList(tree.StringVal("carrot"), tree.StringVal("beet")))
	root := tree.NewMap()
	root.Set("fruit", fruit)
	root.Set("vegetable", veg)

	checkRows(t, Flatten(root), []Row{
		{tree.StringVal("fruit"), tree.StringVal("citrus"), tree.StringVal("orange")},
		{tree.StringVal("fruit"), tree.StringVal("berry"), tree.StringVal("raspberry")},
		{tree.StringVal("vegetable"), tree.StringVal("root"), tree.StringVal("carrot")},
		{tree.StringVal("vegetable"), tree.StringVal("root"), tree.StringVal("beet")},
	})
}

func TestFlatten_EmptyTree(t *testing.T) {
	if rows := Flatten(tree.NewMap()); len(rows) != 0 {
		t.Errorf("Flatten(empty) = %v, want no rows", rows)
	}
}
