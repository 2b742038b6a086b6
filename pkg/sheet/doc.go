// Package sheet maps carry-forward grids onto xlsx workbooks.
//
// # Overview
//
// This package is the spreadsheet boundary of a conversion: it turns an
// encoded grid into a workbook and a workbook back into an encoded grid.
// It deals purely in representation - carry-forward encoding, decoding, and
// depth validation live in the grid package.
//
// # Workbook Layout
//
// Row 1 holds the generated "Level N" column headers in bold. Data rows
// start at row 2. Cells blanked by carry-forward encoding stay empty, and
// each [grid.Span] becomes a vertical cell merge, so repeated path segments
// render once across their run:
//
//	| Level 1 | Level 2 | Level 3 |
//	| fruit   | citrus  | orange  |
//	|         |         | lemon   |
//	|         | berry   | rasp... |
//
// Numbers and booleans are written as native cell types; everything else is
// text. Reading recovers the same types, so values survive a write-read
// cycle up to numeric formatting.
//
// # Reading
//
// [Read] and [ReadFile] decode the first worksheet only and drop the header
// row. Merged regions read back as one value followed by blanks, which is
// exactly the carry-forward form the grid package decodes.
package sheet
