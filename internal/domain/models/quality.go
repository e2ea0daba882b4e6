package models

import (
	"database/sql"
	"time"
)

// ColumnCount is the number of missing values in one column.
type ColumnCount struct {
	Column  string
	Missing int
}

// QualityReport summarizes the health of a loaded dataset.
type QualityReport struct {
	TotalRecords   int
	Duplicates     int
	MissingValues  []ColumnCount
	MinTimestamp   sql.NullTime
	MaxTimestamp   sql.NullTime
	CompletionRate sql.NullFloat64
	GeneratedAt    time.Time
}

// MissingFor returns the missing count of a column, 0 if it is not audited.
func (q QualityReport) MissingFor(column string) int {
	for _, c := range q.MissingValues {
		if c.Column == column {
			return c.Missing
		}
	}
	return 0
}
