package models

import (
	"time"

	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

// ExportCompletedMessage is published after every successful export.
type ExportCompletedMessage struct {
	RunID        string            `json:"run_id"`
	Source       string            `json:"source"`
	SourceSHA256 string            `json:"source_sha256,omitempty"`
	RowCount     int               `json:"row_count"`
	Outputs      map[string]string `json:"outputs"`
	Quality      QualitySummary    `json:"quality"`
	FinishedAt   time.Time         `json:"finished_at"`
}

type QualitySummary struct {
	TotalRecords   int      `json:"total_records"`
	Duplicates     int      `json:"duplicates"`
	CompletionRate *float64 `json:"completion_rate"`
}

func NewQualitySummary(q QualityReport) QualitySummary {
	s := QualitySummary{TotalRecords: q.TotalRecords, Duplicates: q.Duplicates}
	if q.CompletionRate.Valid {
		rate := q.CompletionRate.Float64
		s.CompletionRate = &rate
	}
	return s
}

// PipelineEventMessage is sent to websocket subscribers of pipeline runs.
type PipelineEventMessage struct {
	Type      types.PipelineEvent `json:"type"`
	RunID     string              `json:"run_id"`
	Source    string              `json:"source,omitempty"`
	RowCount  int                 `json:"row_count,omitempty"`
	Outputs   map[string]string   `json:"outputs,omitempty"`
	Error     string              `json:"error,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}
