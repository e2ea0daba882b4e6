package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Temutjin2k/ride-analytics/config"
	"github.com/Temutjin2k/ride-analytics/internal/adapter/http/handler"
	"github.com/Temutjin2k/ride-analytics/internal/adapter/http/middleware"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
)

const serverIPAddress = "%s:%s"

type API struct {
	mux    *http.ServeMux
	server *http.Server
	routes *handlers
	m      *middleware.Middleware

	addr        string
	serviceName string
	log         logger.Logger
}

type handlers struct {
	health    *handler.Health
	analytics *handler.Analytics
	pipeline  *handler.Pipeline
	events    *handler.PipelineHub
}

// Service is everything the admin API needs from the analytics processor.
type Service interface {
	handler.AnalyticsService
	handler.PipelineService
}

func New(
	cfg config.Config,
	svc Service,
	events *handler.PipelineHub,
	authService middleware.AuthService,
	logger logger.Logger,
) (*API, error) {
	if authService == nil {
		return nil, errors.New("auth service is required")
	}
	if svc == nil {
		return nil, errors.New("analytics service is required")
	}

	routes := &handlers{
		health:    handler.NewHealth(cfg.App.ServiceName, logger),
		analytics: handler.NewAnalytics(svc, logger),
		pipeline:  handler.NewPipeline(svc, cfg.Pipeline.OutputDir, logger),
		events:    events,
	}

	api := &API{
		mux:         http.NewServeMux(),
		routes:      routes,
		m:           middleware.NewMiddleware(authService, logger),
		addr:        fmt.Sprintf(serverIPAddress, cfg.HTTP.Host, cfg.HTTP.Port),
		serviceName: cfg.App.ServiceName,
		log:         logger,
	}

	setupRoutes(api.mux, api.routes, api.m)

	api.server = &http.Server{
		Addr:              api.addr,
		Handler:           api.withMiddleware(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return api, nil
}

// Handler returns the fully wrapped router.
func (a *API) Handler() http.Handler {
	return a.server.Handler
}

func (a *API) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	ctx = wrap.WithAction(ctx, "http_server_stop")

	a.log.Debug(ctx, "shutting down HTTP server...", "address", a.addr)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	a.log.Debug(ctx, "shutting down HTTP server completed")

	return nil
}

func (a *API) Run(ctx context.Context, errCh chan<- error) {
	go func() {
		ctx = wrap.WithAction(ctx, "http_server_start")
		a.log.Info(ctx, "started http server", "address", a.addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
			return
		}
	}()
}

// withMiddleware applies middlewares to the mux
func (a *API) withMiddleware() http.Handler {
	return a.m.Recover(a.m.RequestID(a.m.Logging(a.m.Metrics(a.serviceName)(a.m.Auth(a.mux)))))
}
