// Package table holds the in-memory model of a delimited text file: an
// ordered header plus rows of string cells. Cells distinguish a value that
// was present in the source (possibly blank) from one that was absent, e.g.
// padded in from a short row. Everything is a string; the model performs no
// type inference.
package table

import "strings"

// Cell is a single table value. Missing marks a cell that had no
// corresponding field in the source row.
type Cell struct {
	Val     string
	Missing bool
}

// NewCell returns a present cell holding s.
func NewCell(s string) Cell { return Cell{Val: s} }

// MissingCell returns a cell that was absent in the source.
func MissingCell() Cell { return Cell{Missing: true} }

// IsEmpty reports whether the cell counts as empty: it was missing in the
// source, or its value trims to the zero-length string.
func (c Cell) IsEmpty() bool {
	return c.Missing || strings.TrimSpace(c.Val) == ""
}

// Row is one record, positionally aligned with Table.Columns.
type Row []Cell

// Table is an ordered header plus rows. Invariants: column names are unique,
// and every row has exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    []Row
}

// New returns an empty table with the given header.
func New(columns []string) *Table {
	return &Table{Columns: columns}
}

func (t *Table) NumRows() int { return len(t.Rows) }

func (t *Table) NumCols() int { return len(t.Columns) }

// ColumnIndex returns the position of the named column, or false when the
// table has no such column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// AppendRow adds a row fitted to the header width: short rows are padded
// with missing cells, long rows are truncated. Ragged input is tolerated,
// never rejected.
func (t *Table) AppendRow(cells []Cell) {
	n := len(t.Columns)
	row := make(Row, n)
	for i := 0; i < n; i++ {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = MissingCell()
		}
	}
	t.Rows = append(t.Rows, row)
}
