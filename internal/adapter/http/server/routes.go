package server

import (
	"net/http"

	"github.com/Temutjin2k/ride-analytics/internal/adapter/http/middleware"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Temutjin2k/ride-analytics/docs"
)

// setupRoutes - setups http routes
func setupRoutes(mux *http.ServeMux, routes *handlers, m *middleware.Middleware) {
	// System Health
	mux.HandleFunc("GET /health", routes.health.HealthCheck)

	setupSwaggerRoutes(mux)
	setupMetricsRoute(mux)
	setupAnalyticsRoutes(mux, routes, m)
	setupPipelineRoutes(mux, routes, m)
}

func setupAnalyticsRoutes(mux *http.ServeMux, routes *handlers, m *middleware.Middleware) {
	mux.Handle("GET /admin/analytics/quality", m.RequireRoles(routes.analytics.GetQuality, types.AdminRole))    // Data quality report
	mux.Handle("GET /admin/analytics/{artifact}", m.RequireRoles(routes.analytics.GetArtifact, types.AdminRole)) // One aggregate table
}

func setupPipelineRoutes(mux *http.ServeMux, routes *handlers, m *middleware.Middleware) {
	mux.Handle("POST /admin/pipeline/load", m.RequireRoles(routes.pipeline.Load, types.AdminRole)) // Reload the source
	mux.Handle("POST /admin/pipeline/run", m.RequireRoles(routes.pipeline.Run, types.AdminRole))   // Process and save every artifact
	if routes.events != nil {
		mux.Handle("GET /ws/pipeline", m.RequireRoles(routes.events.HandleWS, types.AdminRole)) // Pipeline event stream
	}
}

// setupSwaggerRoutes serves Swagger UI over the generated docs
func setupSwaggerRoutes(mux *http.ServeMux) {
	swaggerURL := httpSwagger.InstanceName("analytics")
	mux.HandleFunc("/swagger/", httpSwagger.Handler(swaggerURL))
}

// setupMetricsRoute configures the Prometheus metrics endpoint
func setupMetricsRoute(mux *http.ServeMux) {
	mux.Handle("/metrics", promhttp.Handler())
}
