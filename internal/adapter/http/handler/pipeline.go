package handler

import (
	"context"
	"net/http"

	"github.com/Temutjin2k/ride-analytics/internal/adapter/http/handler/dto"
	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
	"github.com/go-playground/validator/v10"
)

type PipelineService interface {
	Source() string
	Load(ctx context.Context) (*models.Dataset, error)
	ProcessAndSave(ctx context.Context, outputDir string) (map[string]string, error)
}

type Pipeline struct {
	s         PipelineService
	outputDir string
	v         *validator.Validate
	l         logger.Logger
}

// NewPipeline serves pipeline runs; outputDir is used when a request names none.
func NewPipeline(s PipelineService, outputDir string, l logger.Logger) *Pipeline {
	return &Pipeline{
		s:         s,
		outputDir: outputDir,
		v:         dto.NewValidator(),
		l:         l,
	}
}

// Load godoc
// @Summary      Reload the source
// @Description  Re-reads the configured record source and replaces the in-memory dataset
// @Tags         Pipeline
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.LoadResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /admin/pipeline/load [post]
func (h *Pipeline) Load(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "admin_pipeline_load")

	ds, err := h.s.Load(ctx)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to load source", err, "source", h.s.Source())
		serviceErrorResponse(w, err)
		return
	}

	resp := dto.LoadResponse{
		Source:   ds.Source,
		RowCount: ds.Len(),
		LoadedAt: ds.LoadedAt,
	}

	if err := writeJSON(w, http.StatusOK, resp, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// Run godoc
// @Summary      Run the pipeline
// @Description  Loads the source if needed, computes every artifact and writes them to output_dir
// @Tags         Pipeline
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  dto.RunPipelineRequest  false  "Output directory override"
// @Success      200  {object}  dto.RunPipelineResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      422  {object}  map[string]any
// @Router       /admin/pipeline/run [post]
func (h *Pipeline) Run(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "admin_pipeline_run")

	var req dto.RunPipelineRequest
	if hasBody(r) {
		if err := readJSON(w, r, &req); err != nil {
			badRequestResponse(w, err.Error())
			return
		}
	}

	if errs := dto.Validate(h.v, req); errs != nil {
		failedValidationResponse(w, errs)
		return
	}

	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = h.outputDir
	}

	outputs, err := h.s.ProcessAndSave(ctx, outputDir)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "pipeline run failed", err, "output_dir", outputDir)
		serviceErrorResponse(w, err)
		return
	}

	resp := dto.RunPipelineResponse{
		OutputDir: outputDir,
		Outputs:   outputs,
	}

	if err := writeJSON(w, http.StatusOK, resp, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}
