// Package io provides document import and export for hierarchical trees.
//
// # Overview
//
// This package reads and writes the document side of a conversion: JSON is
// the primary format, TOML is accepted as an input convenience. The format
// is designed for:
//
//   - Order preservation: mapping keys keep their document order through a
//     full read-modify-write cycle
//   - Faithful numbers: numeric values keep their original literal, so an
//     integer never comes back as "1.0"
//   - Round-trip processing: export a tree and re-import it identically
//
// # JSON Format
//
// The top-level value must be an object. Values nest freely, except that
// arrays may hold scalar values only:
//
//	{
//	  "fruit": {
//	    "citrus": ["orange", "lemon"],
//	    "berry": ["raspberry"]
//	  }
//	}
//
// An array containing an object or another array is rejected with
// [ErrNestedContainer]; branching below a list has no table representation.
//
// # Import
//
// Use [Import] to read a file with format detection by extension, or
// [ReadJSON] and [ReadTOML] to read a specific format from any io.Reader:
//
//	root, err := io.Import("categories.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Import reports syntax errors and structural violations (non-object root,
// containers inside arrays) with context about which key caused the problem.
//
// # Export
//
// Use [ExportJSON] to write a tree to a file, or [WriteJSON] to write to any
// io.Writer:
//
//	err := io.ExportJSON(root, "output.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Output is indented with two spaces by default; [WriteJSONIndent] takes an
// explicit indent string, with "" producing compact output. Mapping keys are
// written in insertion order, never sorted.
//
// # Concurrency
//
// All functions in this package are safe to call concurrently with other
// readers of the same tree, but not with concurrent modifications to it.
// [ReadJSON], [ReadTOML], and [Import] return independent trees that can be
// modified freely after import.
package io
