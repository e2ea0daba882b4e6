package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Temutjin2k/ride-analytics/config"
	"github.com/Temutjin2k/ride-analytics/internal/adapter/http/handler"
	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/internal/service/auth"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	ws "github.com/Temutjin2k/ride-analytics/pkg/wsHub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct{}

func (stubService) Source() string { return "rides.csv" }

func (stubService) Load(context.Context) (*models.Dataset, error) {
	return &models.Dataset{Source: "rides.csv", LoadedAt: time.Now()}, nil
}

func (stubService) ProcessAndSave(context.Context, string) (map[string]string, error) {
	return map[string]string{}, nil
}

func (stubService) QualityCheck(context.Context) (models.QualityReport, error) {
	return models.QualityReport{}, types.ErrNotLoaded
}

func (stubService) Table(_ context.Context, a types.Artifact) (models.Table, error) {
	return *models.NewTable(a.String(), "x"), nil
}

func newTestAPI(t *testing.T) (*API, *auth.TokenService) {
	t.Helper()

	log := logger.Discard()
	tokens := auth.NewTokenService("router-test-secret", time.Minute, log)
	cfg := config.Config{
		App:      config.AppConfig{ServiceName: "analytics-test"},
		Pipeline: config.PipelineConfig{OutputDir: t.TempDir()},
		HTTP:     config.HTTPConfig{Host: "127.0.0.1", Port: "0"},
	}

	api, err := New(cfg, stubService{}, handler.NewPipelineHub(ws.NewConnHub(log), log), tokens, log)
	require.NoError(t, err)
	return api, tokens
}

func bearer(t *testing.T, tokens *auth.TokenService, role types.UserRole) string {
	t.Helper()
	tok, err := tokens.Issue(context.Background(), "tester", role)
	require.NoError(t, err)
	return "Bearer " + tok.Value
}

func TestRoutes(t *testing.T) {
	api, tokens := newTestAPI(t)
	admin := bearer(t, tokens, types.AdminRole)
	analyst := bearer(t, tokens, types.AnalystRole)

	tests := []struct {
		name   string
		method string
		path   string
		auth   string
		want   int
	}{
		{name: "health is public", method: http.MethodGet, path: "/health", want: http.StatusOK},
		{name: "metrics is public", method: http.MethodGet, path: "/metrics", want: http.StatusOK},
		{name: "analytics needs a token", method: http.MethodGet, path: "/admin/analytics/peak_hours", want: http.StatusUnauthorized},
		{name: "analytics needs admin", method: http.MethodGet, path: "/admin/analytics/peak_hours", auth: analyst, want: http.StatusForbidden},
		{name: "artifact", method: http.MethodGet, path: "/admin/analytics/peak_hours", auth: admin, want: http.StatusOK},
		{name: "unknown artifact", method: http.MethodGet, path: "/admin/analytics/nope", auth: admin, want: http.StatusNotFound},
		{name: "quality before load", method: http.MethodGet, path: "/admin/analytics/quality", auth: admin, want: http.StatusConflict},
		{name: "load", method: http.MethodPost, path: "/admin/pipeline/load", auth: admin, want: http.StatusOK},
		{name: "run", method: http.MethodPost, path: "/admin/pipeline/run", auth: admin, want: http.StatusOK},
		{name: "wrong method", method: http.MethodGet, path: "/admin/pipeline/run", auth: admin, want: http.StatusMethodNotAllowed},
		{name: "garbage token", method: http.MethodGet, path: "/admin/analytics/quality", auth: "Bearer abc.def.ghi", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rec := httptest.NewRecorder()

			api.Handler().ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		})
	}
}

func TestNew_RequiresDependencies(t *testing.T) {
	log := logger.Discard()

	_, err := New(config.Config{}, stubService{}, nil, nil, log)
	assert.Error(t, err)

	_, err = New(config.Config{}, nil, nil, auth.NewTokenService("secret-key", time.Minute, log), log)
	assert.Error(t, err)
}
