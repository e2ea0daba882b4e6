package dto

import "time"

type RunPipelineRequest struct {
	OutputDir string `json:"output_dir" validate:"omitempty,max=1024,safepath"`
}

type RunPipelineResponse struct {
	OutputDir string            `json:"output_dir"`
	Outputs   map[string]string `json:"outputs"`
}

type LoadResponse struct {
	Source   string    `json:"source"`
	RowCount int       `json:"row_count"`
	LoadedAt time.Time `json:"loaded_at"`
}
