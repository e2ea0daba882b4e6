package dto

import (
	"time"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
)

type MissingValue struct {
	Column  string `json:"column"`
	Missing int    `json:"missing"`
}

// QualityResponse mirrors models.QualityReport; absent statistics are null.
type QualityResponse struct {
	TotalRecords   int            `json:"total_records"`
	Duplicates     int            `json:"duplicates"`
	MissingValues  []MissingValue `json:"missing_values"`
	MinTimestamp   *time.Time     `json:"min_timestamp"`
	MaxTimestamp   *time.Time     `json:"max_timestamp"`
	CompletionRate *float64       `json:"completion_rate"`
	GeneratedAt    time.Time      `json:"generated_at"`
}

func NewQualityResponse(q models.QualityReport) QualityResponse {
	resp := QualityResponse{
		TotalRecords:  q.TotalRecords,
		Duplicates:    q.Duplicates,
		MissingValues: make([]MissingValue, 0, len(q.MissingValues)),
		GeneratedAt:   q.GeneratedAt,
	}

	for _, c := range q.MissingValues {
		resp.MissingValues = append(resp.MissingValues, MissingValue{Column: c.Column, Missing: c.Missing})
	}

	if q.MinTimestamp.Valid {
		ts := q.MinTimestamp.Time
		resp.MinTimestamp = &ts
	}
	if q.MaxTimestamp.Valid {
		ts := q.MaxTimestamp.Time
		resp.MaxTimestamp = &ts
	}
	if q.CompletionRate.Valid {
		rate := q.CompletionRate.Float64
		resp.CompletionRate = &rate
	}

	return resp
}

// TableResponse is one aggregate table; every row maps column name to cell.
type TableResponse struct {
	Name     string           `json:"name"`
	Columns  []string         `json:"columns"`
	RowCount int              `json:"row_count"`
	Rows     []map[string]any `json:"rows"`
}

func NewTableResponse(t models.Table) TableResponse {
	return TableResponse{
		Name:     t.Name,
		Columns:  t.Columns,
		RowCount: t.Len(),
		Rows:     t.Records(),
	}
}
