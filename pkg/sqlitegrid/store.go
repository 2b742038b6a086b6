// Package sqlitegrid persists tables in a SQLite database file, as a
// queryable alternative to the xlsx workbook representation.
//
// A database holds at most one grid. Rows land in the grid_rows table with
// one TEXT column per level (level_1..level_N) holding each cell's JSON
// scalar literal; absent cells are NULL. Storing literals keeps types and
// number formatting exact, which the workbook form cannot guarantee.
package sqlitegrid

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/treegrid/treegrid/pkg/grid"
	"github.com/treegrid/treegrid/pkg/tree"
)

// TableName is the SQLite table holding the grid rows.
const TableName = "grid_rows"

// ErrNoGrid reports a database without a stored grid.
var ErrNoGrid = errors.New("database holds no grid")

// Store reads and writes grids in one SQLite database file.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Write stores g in a single transaction, replacing any previously stored
// grid. Row order is preserved through the idx column.
func (s *Store) Write(ctx context.Context, g *grid.Grid) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+TableName); err != nil {
		return fmt.Errorf("dropping old grid: %w", err)
	}
	if _, err := tx.ExecContext(ctx, createStmt(g.Columns())); err != nil {
		return fmt.Errorf("creating grid table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertStmt(g.Columns()))
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range g.Rows() {
		args := make([]any, 0, len(row)+1)
		args = append(args, i)
		for _, cell := range row {
			args = append(args, cellLiteral(cell))
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("inserting row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing grid: %w", err)
	}
	return nil
}

// Read loads the stored grid with rows in their original order.
// Returns [ErrNoGrid] if the database holds none.
func (s *Store) Read(ctx context.Context) (*grid.Grid, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", TableName,
	).Scan(&name)
	if err == sql.ErrNoRows {
		return nil, ErrNoGrid
	}
	if err != nil {
		return nil, fmt.Errorf("checking grid table: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT * FROM "+TableName+" ORDER BY idx")
	if err != nil {
		return nil, fmt.Errorf("querying grid: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}
	levels := len(cols) - 1 // first column is idx

	var out []grid.Row
	for rows.Next() {
		var idx int64
		cells := make([]sql.NullString, levels)
		targets := make([]any, 0, levels+1)
		targets = append(targets, &idx)
		for i := range cells {
			targets = append(targets, &cells[i])
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		row := make(grid.Row, levels)
		for i, cell := range cells {
			if !cell.Valid {
				continue
			}
			v, err := parseLiteral(cell.String)
			if err != nil {
				return nil, fmt.Errorf("row %d level %d: %w", idx, i+1, err)
			}
			row[i] = v
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading grid: %w", err)
	}
	return grid.FromRows(out), nil
}

func createStmt(cols int) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(TableName)
	b.WriteString(" (idx INTEGER PRIMARY KEY")
	for i := 1; i <= cols; i++ {
		fmt.Fprintf(&b, ", level_%d TEXT", i)
	}
	b.WriteString(")")
	return b.String()
}

func insertStmt(cols int) string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(TableName)
	b.WriteString(" (idx")
	for i := 1; i <= cols; i++ {
		fmt.Fprintf(&b, ", level_%d", i)
	}
	b.WriteString(") VALUES (?")
	b.WriteString(strings.Repeat(", ?", cols))
	b.WriteString(")")
	return b.String()
}

// cellLiteral renders a cell as its JSON literal, or nil for SQL NULL.
func cellLiteral(s tree.Scalar) any {
	switch s.Kind {
	case tree.ScalarString:
		b, _ := json.Marshal(s.Str)
		return string(b)
	case tree.ScalarNumber:
		if s.Num == "" {
			return "0"
		}
		return s.Num.String()
	case tree.ScalarBool:
		return strconv.FormatBool(s.Bool)
	}
	return nil
}

// parseLiteral decodes one JSON scalar literal back into a cell value.
func parseLiteral(s string) (tree.Scalar, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return tree.Scalar{}, fmt.Errorf("bad cell literal %q: %w", s, err)
	}
	switch v := tok.(type) {
	case string:
		return tree.StringVal(v), nil
	case json.Number:
		return tree.NumberVal(v), nil
	case bool:
		return tree.BoolVal(v), nil
	case nil:
		return tree.NullVal(), nil
	}
	return tree.Scalar{}, fmt.Errorf("bad cell literal %q", s)
}
