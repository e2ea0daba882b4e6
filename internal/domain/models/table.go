package models

import (
	"database/sql"
	"slices"
)

// Table is one named aggregate. Cells are nil (missing), string, int64 or float64.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any
}

func NewTable(name string, columns ...string) *Table {
	return &Table{Name: name, Columns: columns, Rows: [][]any{}}
}

func (t *Table) Append(cells ...any) {
	t.Rows = append(t.Rows, cells)
}

func (t Table) Len() int {
	return len(t.Rows)
}

func (t Table) ColumnIndex(name string) int {
	return slices.Index(t.Columns, name)
}

// Get returns the cell at row/column; ok is false when either is out of range.
func (t Table) Get(row int, column string) (any, bool) {
	idx := t.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) || idx >= len(t.Rows[row]) {
		return nil, false
	}
	return t.Rows[row][idx], true
}

// Column returns every cell of the named column in row order.
func (t Table) Column(name string) []any {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	out := make([]any, 0, len(t.Rows))
	for _, row := range t.Rows {
		if idx < len(row) {
			out = append(out, row[idx])
		} else {
			out = append(out, nil)
		}
	}
	return out
}

// Records returns the rows as column->value maps.
func (t Table) Records() []map[string]any {
	out := make([]map[string]any, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(map[string]any, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(row) {
				rec[col] = row[i]
			} else {
				rec[col] = nil
			}
		}
		out = append(out, rec)
	}
	return out
}

func FloatCell(v sql.NullFloat64) any {
	if !v.Valid {
		return nil
	}
	return v.Float64
}

func StringCell(v sql.NullString) any {
	if !v.Valid {
		return nil
	}
	return v.String
}

func IntCell(v sql.NullInt32) any {
	if !v.Valid {
		return nil
	}
	return int64(v.Int32)
}
