package grid

import (
	"testing"

	"github.com/treegrid/treegrid/pkg/tree"
)

// buildCategories returns a depth-3 tree with all-list, duplicate-free
// leaves - the shape for which round trips are exact.
func buildCategories() *tree.Node {
	citrus := tree.NewList(tree.StringVal("orange"), tree.StringVal("lemon"), tree.StringVal("lime"))
	berry := tree.NewList(tree.StringVal("raspberry"))
	fruit := tree.NewMap()
	fruit.Set("citrus", citrus)
	fruit.Set("berry", berry)

	rootVeg := tree.NewList(tree.StringVal("carrot"), tree.StringVal("beet"))
	leafy := tree.NewList(tree.StringVal("kale"), tree.StringVal("spinach"))
	veg := tree.NewMap()
	veg.Set("root", rootVeg)
	veg.Set("leafy", leafy)

	produce := tree.NewMap()
	produce.Set("fruit", fruit)
	produce.Set("vegetable", veg)

	root := tree.NewMap()
	root.Set("produce", produce)
	return root
}

func TestRoundTrip_Identity(t *testing.T) {
	orig := buildCategories()
	if err := tree.ValidateDepth(orig); err != nil {
		t.Fatalf("ValidateDepth() = %v", err)
	}

	g := FromRows(Flatten(orig))

	// Through the persisted representation and back.
	enc, _ := Encode(g)
	dec := Decode(enc)

	if err := ValidateRowDepth(dec); err != nil {
		t.Fatalf("ValidateRowDepth() = %v", err)
	}

	rebuilt, err := Nest(dec)
	if err != nil {
		t.Fatalf("Nest() error = %v", err)
	}

	if !tree.Equal(orig, rebuilt) {
		t.Error("round trip did not reproduce the original tree")
	}
}

func TestRoundTrip_RowAndColumnCounts(t *testing.T) {
	orig := buildCategories()
	g := FromRows(Flatten(orig))

	if g.Columns() != tree.MaxDepth(orig)+1 {
		t.Errorf("Columns() = %d, want depth+1 = %d", g.Columns(), tree.MaxDepth(orig)+1)
	}
	if g.RowCount() != 8 {
		t.Errorf("RowCount() = %d, want 8 (one per leaf value)", g.RowCount())
	}
}
