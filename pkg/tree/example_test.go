package tree_test

import (
	"fmt"

	"github.com/treegrid/treegrid/pkg/tree"
)

func ExampleNode_basic() {
	// Build {"fruit": {"citrus": ["orange", "lemon"]}}
	citrus := tree.NewList(tree.StringVal("orange"), tree.StringVal("lemon"))
	fruit := tree.NewMap()
	fruit.Set("citrus", citrus)
	root := tree.NewMap()
	root.Set("fruit", fruit)

	fmt.Println("Depth:", tree.MaxDepth(root))
	fmt.Println("Keys:", len(root.Entries()))
	fmt.Println("Citrus:", len(citrus.Items()))
	// Output:
	// Depth: 2
	// Keys: 1
	// Citrus: 2
}

func ExampleValidateDepth() {
	// One branch stops at depth 1 while the other reaches depth 2.
	root := tree.NewMap()
	root.Set("shallow", tree.NewList(tree.StringVal("v1")))

	deep := tree.NewMap()
	deep.Set("inner", tree.NewList(tree.StringVal("v2")))
	root.Set("deep", deep)

	err := tree.ValidateDepth(root)
	fmt.Println(err)
	// Output:
	// branch "shallow" reaches depth 1, tree depth is 2
}

func ExampleEqual() {
	a := tree.NewMap()
	a.Set("x", tree.NewList(tree.IntVal(1)))
	a.Set("y", tree.NewList(tree.IntVal(2)))

	// Same content, different key order.
	b := tree.NewMap()
	b.Set("y", tree.NewList(tree.IntVal(2)))
	b.Set("x", tree.NewList(tree.IntVal(1)))

	fmt.Println(tree.Equal(a, b))
	// Output:
	// true
}
