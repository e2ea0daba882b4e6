package microservices

import (
	"context"
	"fmt"

	"github.com/Temutjin2k/ride-analytics/config"
	"github.com/Temutjin2k/ride-analytics/internal/adapter/filestore"
	pgadapter "github.com/Temutjin2k/ride-analytics/internal/adapter/postgres"
	rabbitadapter "github.com/Temutjin2k/ride-analytics/internal/adapter/rabbit"
	"github.com/Temutjin2k/ride-analytics/internal/service/analytics"
	"github.com/Temutjin2k/ride-analytics/internal/service/loader"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
	"github.com/Temutjin2k/ride-analytics/pkg/postgres"
	"github.com/Temutjin2k/ride-analytics/pkg/rabbit"
	"github.com/Temutjin2k/ride-analytics/pkg/trm"
)

// pipeline owns the processor and the connections its optional sinks use.
type pipeline struct {
	processor *analytics.Processor

	db  *postgres.PostgreDB
	mq  *rabbit.RabbitMQ
	log logger.Logger
}

func newPipeline(ctx context.Context, cfg config.Config, log logger.Logger, notifier analytics.EventNotifier) (*pipeline, error) {
	ctx = wrap.WithAction(ctx, "init_pipeline")
	p := &pipeline{log: log}

	csv := filestore.NewCSVWriter(filestore.CSVOptions{
		Precision: cfg.Pipeline.FloatPrecision,
		BOMPrefix: cfg.Export.BOMPrefix,
	}, log)

	opts := make([]analytics.Option, 0, 3)
	if notifier != nil {
		opts = append(opts, analytics.WithNotifier(notifier))
	}

	if cfg.Export.XLSXEnabled {
		opts = append(opts, analytics.WithMirrors(filestore.NewXLSXWriter(cfg.Export.XLSXFileName, log)))
	}

	if cfg.Database.Enabled {
		db, err := postgres.New(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		p.db = db
		opts = append(opts, analytics.WithMirrors(pgadapter.NewTableWriter(db.Pool, trm.New(db.Pool), cfg.Database.Schema, log)))
		log.Info(ctx, "postgres mirror enabled", "schema", cfg.Database.Schema)
	}

	if cfg.RabbitMQ.Enabled {
		mq, err := rabbit.New(ctx, cfg.RabbitMQ.GetDSN(), log)
		if err != nil {
			p.Close(ctx)
			return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
		}
		p.mq = mq

		publisher, err := rabbitadapter.NewExportPublisher(mq, log)
		if err != nil {
			p.Close(ctx)
			return nil, fmt.Errorf("failed to init export publisher: %w", err)
		}
		opts = append(opts, analytics.WithPublisher(publisher))
		log.Info(ctx, "export events enabled", "exchange", rabbitadapter.AnalyticsExchange)
	}

	l := loader.New(log, loader.WithDelimiter(cfg.Pipeline.DelimiterRune()))
	p.processor = analytics.NewProcessor(cfg.Pipeline.SourcePath, l, csv, log, opts...)

	return p, nil
}

// Close releases the database pool and the broker connection, if any.
func (p *pipeline) Close(ctx context.Context) {
	if p.mq != nil {
		if err := p.mq.Close(ctx); err != nil {
			p.log.Warn(ctx, "failed to close rabbitmq", "error", err.Error())
		}
	}
	if p.db != nil {
		p.db.Close()
	}
}
