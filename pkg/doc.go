// Package pkg provides the core libraries for Treegrid document conversion.
//
// # Overview
//
// Treegrid converts uniformly nested documents (JSON or TOML) into leveled
// spreadsheets and back, preserving the document exactly across the round
// trip. The pkg directory is organized into four main areas:
//
//  1. [tree], [grid] - Domain logic (document model, flatten/nest, carry-forward)
//  2. [io], [sheet], [sqlitegrid] - Format boundaries (JSON/TOML, xlsx, sqlite)
//  3. [pipeline] - Orchestration (read → validate → transform → write)
//  4. [render], [history], [observability] - Diagrams, run log, lifecycle hooks
//
// # Architecture
//
// The typical data flow through Treegrid:
//
//	JSON/TOML document
//	         ↓
//	    [tree] package (ordered model + depth validation)
//	         ↓
//	    [grid] package (flatten to rows, carry-forward encode)
//	         ↓
//	    [sheet] or [sqlitegrid] package (persisted artifact)
//
// and back: the artifact is decoded (fill-down), row depths are validated,
// and [grid.Nest] rebuilds the document.
//
// # Quick Start
//
// Flatten a document to a spreadsheet:
//
//	import (
//	    "github.com/treegrid/treegrid/pkg/grid"
//	    "github.com/treegrid/treegrid/pkg/io"
//	    "github.com/treegrid/treegrid/pkg/sheet"
//	    "github.com/treegrid/treegrid/pkg/tree"
//	)
//
//	// 1. Read and validate the document
//	root, _ := io.Import("categories.json")
//	_ = tree.ValidateDepth(root)
//
//	// 2. Flatten to a rectangular grid
//	g := grid.FromRows(grid.Flatten(root))
//
//	// 3. Encode carry-forward runs and write the workbook
//	enc, spans := grid.Encode(g)
//	_ = sheet.WriteFile(enc, spans, "categories.xlsx")
//
// Or drive the whole conversion through [pipeline.Runner], which is what the
// CLI does.
//
// # Main Packages
//
// ## Domain Logic
//
// [tree] - Ordered document model. A [tree.Node] is a mapping, a list, or a
// scalar leaf; mappings preserve insertion order. Depth validation is a
// two-pass check (measure, then verify every branch).
//
// [grid] - Rectangular row grid. Flatten walks the tree depth-first, one row
// per leaf value; Nest inverts it. Encode/Decode implement the carry-forward
// convention: a blank cell repeats the nearest value above, and contiguous
// runs become merge spans.
//
// ## Format Boundaries
//
// [io] - Order-preserving JSON decode/encode and TOML import, plus
// extension-based format detection.
//
// [sheet] - xlsx artifacts via excelize: leveled headers, typed cells,
// vertically merged runs.
//
// [sqlitegrid] - sqlite artifacts: one grid per database, level_N columns,
// JSON scalar literals.
//
// ## Orchestration
//
// [pipeline] - Options/Result/Stats and the Runner with the Flatten, Nest,
// Verify, and Graph operations. Validation always runs before any output is
// produced.
//
// ## Supporting Packages
//
// [render] - Node-link diagrams of documents (DOT, SVG, PDF, PNG).
//
// [history] - Per-user JSONL log of conversion runs.
//
// [observability] - Lifecycle hooks for conversion stages; no-op by default.
//
// [errors] - Coded errors shared across the module.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/grid/...      # Specific package
//	go test -run Example        # Examples only
//
// [tree]: https://pkg.go.dev/github.com/treegrid/treegrid/pkg/tree
// [grid]: https://pkg.go.dev/github.com/treegrid/treegrid/pkg/grid
// [grid.Nest]: https://pkg.go.dev/github.com/treegrid/treegrid/pkg/grid#Nest
// [io]: https://pkg.go.dev/github.com/treegrid/treegrid/pkg/io
// [sheet]: https://pkg.go.dev/github.com/treegrid/treegrid/pkg/sheet
// [sqlitegrid]: https://pkg.go.dev/github.com/treegrid/treegrid/pkg/sqlitegrid
// [pipeline]: https://pkg.go.dev/github.com/treegrid/treegrid/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/treegrid/treegrid/pkg/pipeline#Runner
// [render]: https://pkg.go.dev/github.com/treegrid/treegrid/pkg/render
// [history]: https://pkg.go.dev/github.com/treegrid/treegrid/pkg/history
// [observability]: https://pkg.go.dev/github.com/treegrid/treegrid/pkg/observability
// [errors]: https://pkg.go.dev/github.com/treegrid/treegrid/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/treegrid/treegrid/pkg/buildinfo
// [tree.Node]: https://pkg.go.dev/github.com/treegrid/treegrid/pkg/tree#Node
package pkg
