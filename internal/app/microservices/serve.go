package microservices

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/Temutjin2k/ride-analytics/config"
	"github.com/Temutjin2k/ride-analytics/internal/adapter/http/handler"
	"github.com/Temutjin2k/ride-analytics/internal/adapter/http/server"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/internal/service/auth"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
	ws "github.com/Temutjin2k/ride-analytics/pkg/wsHub"
)

// ServeService runs the admin HTTP API until it is interrupted.
type ServeService struct {
	cfg config.Config
	log logger.Logger
}

func NewServe(ctx context.Context, cfg config.Config, log logger.Logger) (*ServeService, error) {
	return &ServeService{
		cfg: cfg,
		log: log,
	}, nil
}

func (s *ServeService) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = wrap.WithAction(ctx, "serve_mode")

	hub := ws.NewConnHub(s.log)
	events := handler.NewPipelineHub(hub, s.log)

	p, err := newPipeline(ctx, s.cfg, s.log, events)
	if err != nil {
		return err
	}
	defer p.Close(context.WithoutCancel(ctx))

	// A bad source at startup is not fatal: operators can fix it and POST /admin/pipeline/load.
	if _, err := p.processor.Load(ctx); err != nil {
		s.log.Warn(wrap.ErrorCtx(ctx, err), "initial load failed", "error", err.Error())
		if !errors.Is(err, types.ErrSourceNotFound) && !errors.Is(err, types.ErrSchemaValidation) {
			return err
		}
	}

	tokens := auth.NewTokenService(s.cfg.Auth.JWTSecret, s.cfg.Auth.AccessTokenTTL, s.log)
	api, err := server.New(s.cfg, p.processor, events, tokens, s.log)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	api.Run(ctx, errCh)

	select {
	case <-ctx.Done():
		s.log.Info(ctx, "shutdown signal received")
	case err = <-errCh:
	}

	shutdownCtx := context.WithoutCancel(ctx)
	hub.Close()
	if stopErr := api.Stop(shutdownCtx); stopErr != nil {
		s.log.Error(shutdownCtx, "failed to stop http server", stopErr)
	}

	return err
}
