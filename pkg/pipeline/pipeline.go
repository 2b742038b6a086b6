// Package pipeline provides the core conversion pipeline for treegrid.
//
// This package implements the complete read → validate → convert → write
// flow shared by every entry point. By centralizing this logic we ensure
// consistent behavior across commands, and in particular that the depth
// validators always run before any output is produced.
//
// # Architecture
//
// Flattening a document runs four stages:
//
//  1. Read: parse the source document (JSON or TOML) into an ordered tree
//  2. Validate: verify every branch reaches the same depth
//  3. Flatten: emit one fixed-width row per root-to-leaf value
//  4. Write: persist the rows as an xlsx workbook (carry-forward encoded,
//     runs merged) or a sqlite grid database (expanded rows)
//
// Nesting runs the mirror image: read the artifact back into expanded rows,
// validate row depth, rebuild the tree, and export ordered JSON.
//
// # Usage
//
// Create a Runner and execute a conversion:
//
//	runner := pipeline.NewRunner(logger, nil)
//	opts := pipeline.Options{
//	    Source: "cats.json",
//	    Dest:   "cats.xlsx",
//	}
//	result, err := runner.Flatten(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Stats.Rows, "rows")
//
// Verify a document survives the round trip:
//
//	res, err := runner.Verify(ctx, pipeline.Options{Source: "cats.json"})
package pipeline

import (
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/treegrid/treegrid/pkg/errors"
	"github.com/treegrid/treegrid/pkg/grid"
	"github.com/treegrid/treegrid/pkg/sheet"
	"github.com/treegrid/treegrid/pkg/tree"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Library Callers
// =============================================================================

const (
	// DefaultIndent is the number of spaces per JSON indentation level.
	DefaultIndent = 2

	// DefaultScale is the pixel scale for PNG rendering.
	DefaultScale = 2.0
)

// DefaultSheetName is the worksheet written when no name is configured.
const DefaultSheetName = sheet.DefaultSheetName

// Format constants for document, table, and graph formats.
const (
	FormatJSON   = "json"
	FormatTOML   = "toml"
	FormatXLSX   = "xlsx"
	FormatSQLite = "sqlite"
	FormatDOT    = "dot"
	FormatSVG    = "svg"
	FormatPNG    = "png"
	FormatPDF    = "pdf"
)

// ValidDocFormats is the set of supported document formats. Documents are
// read in either format; nesting always writes JSON.
var ValidDocFormats = map[string]bool{
	FormatJSON: true,
	FormatTOML: true,
}

// ValidGridFormats is the set of supported tabular artifact formats.
var ValidGridFormats = map[string]bool{
	FormatXLSX:   true,
	FormatSQLite: true,
}

// ValidGraphFormats is the set of supported graph output formats.
var ValidGraphFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// DetectFormat maps a file extension to a format name.
// Returns the empty string when the extension is not recognized.
func DetectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	case ".xlsx":
		return FormatXLSX
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	}
	return ""
}

// ArtifactExt returns the canonical file extension for a grid format.
func ArtifactExt(format string) string {
	if format == FormatSQLite {
		return ".db"
	}
	return ".xlsx"
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a conversion run.
// This struct supports JSON serialization for config files and logs.
type Options struct {
	// Source is the input path. Required for every operation.
	Source string `json:"source"`

	// Dest is the output path. Required for flatten and nest; ignored by
	// verify, which round-trips through a temporary artifact.
	Dest string `json:"dest,omitempty"`

	// SourceFormat and DestFormat override extension detection.
	SourceFormat string `json:"source_format,omitempty"`
	DestFormat   string `json:"dest_format,omitempty"`

	// Sheet options
	SheetName string `json:"sheet_name,omitempty"`
	NoMerge   bool   `json:"no_merge,omitempty"` // write repeated values literally instead of merged runs

	// JSON output options
	Indent  int  `json:"indent,omitempty"` // spaces per level, DefaultIndent when zero
	Compact bool `json:"compact,omitempty"`

	// Graph options
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
}

// Result contains the outputs of a conversion run.
type Result struct {
	// Tree is the document side of the conversion: the parsed source for
	// flatten and graph runs, the reconstruction for nest runs.
	Tree *tree.Node

	// Grid holds the logical rows, carry-forward expanded.
	Grid *grid.Grid

	// Spans are the merged runs written to the artifact (xlsx only).
	Spans []grid.Span

	// Artifacts contains rendered graph outputs keyed by format.
	Artifacts map[string][]byte

	// Dest is the path written, empty when nothing was persisted.
	Dest string

	// Stats contains timing and size information.
	Stats Stats
}

// VerifyResult reports a round-trip self-check.
type VerifyResult struct {
	// Match is true when the rebuilt document equals the source.
	// Fidelity is guaranteed only for documents whose leaves are lists:
	// a bare scalar leaf always rebuilds as a single-element list.
	Match bool

	// Original and Rebuilt are the two sides of the comparison.
	Original *tree.Node
	Rebuilt  *tree.Node

	Stats Stats
}

// Stats contains conversion statistics.
type Stats struct {
	Rows       int
	Columns    int
	Depth      int
	MergedRuns int

	ReadTime    time.Duration
	ConvertTime time.Duration
	WriteTime   time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateDocFormat checks that a document format is valid.
func ValidateDocFormat(format string) error {
	if !ValidDocFormats[format] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "invalid document format: %q (must be one of: json, toml)", format)
	}
	return nil
}

// ValidateGridFormat checks that a tabular artifact format is valid.
func ValidateGridFormat(format string) error {
	if !ValidGridFormats[format] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "invalid table format: %q (must be one of: xlsx, sqlite)", format)
	}
	return nil
}

// ValidateGraphFormat checks that a graph output format is valid.
func ValidateGraphFormat(format string) error {
	if !ValidGraphFormats[format] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "invalid graph format: %q (must be one of: dot, svg, png, pdf)", format)
	}
	return nil
}

// ValidateGraphFormats checks that all graph formats are valid.
func ValidateGraphFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateGraphFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateForFlatten checks required fields and resolves formats for a
// tree → table run. Missing paths fail here, before any file is touched.
func (o *Options) ValidateForFlatten() error {
	if err := o.requireSource(); err != nil {
		return err
	}
	if err := o.requireDest(); err != nil {
		return err
	}
	if o.SourceFormat == "" {
		o.SourceFormat = DetectFormat(o.Source)
	}
	if err := ValidateDocFormat(o.SourceFormat); err != nil {
		return err
	}
	if o.DestFormat == "" {
		o.DestFormat = DetectFormat(o.Dest)
	}
	if err := ValidateGridFormat(o.DestFormat); err != nil {
		return err
	}
	return o.setSheetDefaults()
}

// ValidateForNest checks required fields and resolves formats for a
// table → tree run. The destination document is always JSON.
func (o *Options) ValidateForNest() error {
	if err := o.requireSource(); err != nil {
		return err
	}
	if err := o.requireDest(); err != nil {
		return err
	}
	if o.SourceFormat == "" {
		o.SourceFormat = DetectFormat(o.Source)
	}
	if err := ValidateGridFormat(o.SourceFormat); err != nil {
		return err
	}
	if o.DestFormat == "" {
		o.DestFormat = FormatJSON
	}
	if o.DestFormat != FormatJSON {
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "nest writes JSON documents, not %q", o.DestFormat)
	}
	return o.setJSONDefaults()
}

// ValidateForVerify checks required fields for a round-trip self-check.
// DestFormat picks the temporary artifact kind; it defaults to xlsx.
func (o *Options) ValidateForVerify() error {
	if err := o.requireSource(); err != nil {
		return err
	}
	if o.SourceFormat == "" {
		o.SourceFormat = DetectFormat(o.Source)
	}
	if err := ValidateDocFormat(o.SourceFormat); err != nil {
		return err
	}
	if o.DestFormat == "" {
		o.DestFormat = FormatXLSX
	}
	if err := ValidateGridFormat(o.DestFormat); err != nil {
		return err
	}
	return o.setSheetDefaults()
}

// ValidateForGraph checks required fields and applies defaults for a
// diagram run.
func (o *Options) ValidateForGraph() error {
	if err := o.requireSource(); err != nil {
		return err
	}
	if o.SourceFormat == "" {
		o.SourceFormat = DetectFormat(o.Source)
	}
	if err := ValidateDocFormat(o.SourceFormat); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateGraphFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	return nil
}

func (o *Options) requireSource() error {
	if o.Source == "" {
		return apperrors.New(apperrors.ErrCodeInvalidArgument, "source path is required")
	}
	return apperrors.ValidateFilePath(o.Source)
}

func (o *Options) requireDest() error {
	if o.Dest == "" {
		return apperrors.New(apperrors.ErrCodeInvalidArgument, "destination path is required")
	}
	return apperrors.ValidateFilePath(o.Dest)
}

func (o *Options) setSheetDefaults() error {
	if o.SheetName == "" {
		o.SheetName = DefaultSheetName
	}
	return apperrors.ValidateSheetName(o.SheetName)
}

func (o *Options) setJSONDefaults() error {
	if o.Indent < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidArgument, "indent cannot be negative")
	}
	if o.Indent == 0 {
		o.Indent = DefaultIndent
	}
	return nil
}
