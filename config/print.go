package config

import (
	"context"

	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
)

const redacted = "******"

// PrintConfig logs the effective configuration with secrets masked.
func PrintConfig(ctx context.Context, cfg *Config, log logger.Logger) {
	ctx = wrap.WithAction(ctx, "print_config")

	log.Info(ctx, "configuration loaded",
		"mode", cfg.Mode,
		"service_name", cfg.App.ServiceName,
		"log_level", cfg.App.LogLevel,
		"source_path", cfg.Pipeline.SourcePath,
		"output_dir", cfg.Pipeline.OutputDir,
		"delimiter", cfg.Pipeline.Delimiter,
		"float_precision", cfg.Pipeline.FloatPrecision,
		"xlsx_enabled", cfg.Export.XLSXEnabled,
		"database_enabled", cfg.Database.Enabled,
		"database_dsn", cfg.Database.Redacted().GetDSN(),
		"rabbitmq_enabled", cfg.RabbitMQ.Enabled,
		"rabbitmq_dsn", cfg.RabbitMQ.Redacted().GetDSN(),
		"http_addr", cfg.HTTP.Host+":"+cfg.HTTP.Port,
		"access_token_ttl", cfg.Auth.AccessTokenTTL,
	)
}

// Redacted returns a copy safe to print.
func (c DatabaseConfig) Redacted() DatabaseConfig {
	if c.Password != "" {
		c.Password = redacted
	}
	return c
}

// Redacted returns a copy safe to print.
func (c RabbitMQConfig) Redacted() RabbitMQConfig {
	if c.Password != "" {
		c.Password = redacted
	}
	return c
}
