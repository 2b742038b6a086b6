// Package render draws documents as node-link diagrams.
//
// # Overview
//
// This package turns a tree into a Graphviz DOT graph and renders it to
// SVG, PDF, or PNG. Mapping keys appear as rounded boxes, leaf values as
// filled ellipses, with edges following the document hierarchy:
//
//	dot := render.ToDOT(root, render.Options{})
//	svg, err := render.SVG(dot)
//	pdf, err := render.ToPDF(svg)
//
// # Format Conversion
//
// [SVG] renders DOT with the embedded Graphviz engine and needs no system
// packages. [ToPDF] and [ToPNG] convert SVG bytes using the external
// rsvg-convert tool (from librsvg); [PDF] and [PNG] chain both steps.
//
// These require librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
package render
