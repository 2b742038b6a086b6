package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/treegrid/treegrid/pkg/tree"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed annotates container nodes with their entry counts.
	// When false, only keys and values are shown.
	Detailed bool

	// RootLabel names the document root node. Defaults to "document".
	RootLabel string
}

// ToDOT converts a tree to Graphviz DOT format. Mapping keys render as
// rounded boxes and leaf values as ellipses, in document order. The
// resulting DOT string can be rendered with [SVG], [PDF], or [PNG].
func ToDOT(root *tree.Node, opts Options) string {
	b := dotBuilder{}
	b.buf.WriteString("digraph document {\n")
	b.buf.WriteString("  rankdir=LR;\n")
	b.buf.WriteString("  bgcolor=\"transparent\";\n")
	b.buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	b.buf.WriteString("  ranksep=0.6;\n")
	b.buf.WriteString("  nodesep=0.3;\n\n")

	label := opts.RootLabel
	if label == "" {
		label = "document"
	}
	rootID := b.box(containerLabel(label, root, opts.Detailed))
	b.walk(rootID, root, opts)

	b.buf.WriteString("}\n")
	return b.buf.String()
}

type dotBuilder struct {
	buf  bytes.Buffer
	next int
}

func (b *dotBuilder) id() string {
	id := fmt.Sprintf("n%d", b.next)
	b.next++
	return id
}

func (b *dotBuilder) box(label string) string {
	id := b.id()
	fmt.Fprintf(&b.buf, "  %s [label=%q];\n", id, label)
	return id
}

func (b *dotBuilder) value(label string) string {
	id := b.id()
	fmt.Fprintf(&b.buf, "  %s [label=%q, shape=ellipse, style=filled, fillcolor=lightyellow];\n", id, label)
	return id
}

func (b *dotBuilder) edge(from, to string) {
	fmt.Fprintf(&b.buf, "  %s -> %s;\n", from, to)
}

func (b *dotBuilder) walk(parent string, n *tree.Node, opts Options) {
	switch n.Kind() {
	case tree.KindMap:
		for _, e := range n.Entries() {
			id := b.box(containerLabel(e.Key, e.Child, opts.Detailed))
			b.edge(parent, id)
			b.walk(id, e.Child, opts)
		}
	case tree.KindList:
		for _, item := range n.Items() {
			b.edge(parent, b.value(item.String()))
		}
	default:
		b.edge(parent, b.value(n.Scalar().String()))
	}
}

func containerLabel(name string, n *tree.Node, detailed bool) string {
	if !detailed || n == nil {
		return name
	}
	switch n.Kind() {
	case tree.KindMap:
		return fmt.Sprintf("%s\n%d keys", name, n.Len())
	case tree.KindList:
		return fmt.Sprintf("%s\n%d values", name, n.Len())
	}
	return name
}

// SVG renders a DOT graph to SVG using the embedded Graphviz engine.
// The result is ready for display or further conversion with [ToPDF] or
// [ToPNG].
func SVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the SVG root element to a zero-origin viewBox
// with explicit pixel dimensions, so browsers scale the diagram instead of
// clipping it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// PDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [SVG] and [ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func PDF(dot string) ([]byte, error) {
	svg, err := SVG(dot)
	if err != nil {
		return nil, err
	}
	return ToPDF(svg)
}

// PNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [SVG] and [ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func PNG(dot string, scale float64) ([]byte, error) {
	svg, err := SVG(dot)
	if err != nil {
		return nil, err
	}
	return ToPNG(svg, scale)
}
