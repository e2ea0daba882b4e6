package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Temutjin2k/ride-analytics/internal/adapter/http/handler/dto"
	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
)

type AnalyticsService interface {
	QualityCheck(ctx context.Context) (models.QualityReport, error)
	Table(ctx context.Context, artifact types.Artifact) (models.Table, error)
}

type Analytics struct {
	s AnalyticsService
	l logger.Logger
}

func NewAnalytics(s AnalyticsService, l logger.Logger) *Analytics {
	return &Analytics{
		s: s,
		l: l,
	}
}

// GetQuality godoc
// @Summary      Data quality report
// @Description  Record counts, duplicates, missing values per column and the time range of the loaded dataset
// @Tags         Analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.QualityResponse
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /admin/analytics/quality [get]
func (h *Analytics) GetQuality(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "admin_get_quality")

	report, err := h.s.QualityCheck(ctx)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to build quality report", err)
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, dto.NewQualityResponse(report), nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// GetArtifact godoc
// @Summary      Aggregate table
// @Description  Computes one aggregate table over the loaded dataset
// @Tags         Analytics
// @Produce      json
// @Security     BearerAuth
// @Param        artifact  path  string  true  "hourly_metrics, geographic_metrics, peak_hours, vehicle_type or surge_analysis"
// @Success      200  {object}  dto.TableResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /admin/analytics/{artifact} [get]
func (h *Analytics) GetArtifact(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("artifact")
	ctx := wrap.WithArtifact(wrap.WithAction(r.Context(), "admin_get_artifact"), name)

	artifact, ok := types.ParseArtifact(name)
	if !ok {
		errorResponse(w, http.StatusNotFound, fmt.Sprintf("%s: %q", types.ErrUnknownArtifact, name))
		return
	}

	table, err := h.s.Table(ctx, artifact)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to compute table", err)
		serviceErrorResponse(w, err)
		return
	}

	h.l.Debug(ctx, "computed table", "rows", table.Len())

	if err := writeJSON(w, http.StatusOK, dto.NewTableResponse(table), nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}
