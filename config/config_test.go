package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig("")
	require.NoError(t, err)

	assert.Equal(t, types.ProcessMode, cfg.Mode)
	assert.Equal(t, "ride-analytics", cfg.App.ServiceName)
	assert.Equal(t, "data/raw_rides.csv", cfg.Pipeline.SourcePath)
	assert.Equal(t, "data/processed", cfg.Pipeline.OutputDir)
	assert.Equal(t, ',', cfg.Pipeline.DelimiterRune())
	assert.Equal(t, -1, cfg.Pipeline.FloatPrecision)
	assert.Equal(t, "analytics.xlsx", cfg.Export.XLSXFileName)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, 30*time.Minute, cfg.Database.MaxConnLifetime)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, "8080", cfg.HTTP.Port)
}

func TestNewConfig_Env(t *testing.T) {
	t.Setenv("PIPELINE_FLOAT_PRECISION", "3")
	t.Setenv("PIPELINE_DELIMITER", ";")
	t.Setenv("EXPORT_XLSX_ENABLED", "true")
	t.Setenv("DATABASE_MAX_CONNS", "4")
	t.Setenv("DATABASE_USER", "reporter")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL", "1h")

	cfg, err := NewConfig("")
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Pipeline.FloatPrecision)
	assert.Equal(t, ';', cfg.Pipeline.DelimiterRune())
	assert.True(t, cfg.Export.XLSXEnabled)
	assert.Equal(t, int32(4), cfg.Database.MaxConns)
	assert.Equal(t, "reporter", cfg.Database.User)
	assert.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL)
}

func TestNewConfig_Yaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "pipeline:\n  source_path: /srv/rides.csv\nhttp:\n  port: 9090\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("PIPELINE_SOURCE_PATH")
		os.Unsetenv("HTTP_PORT")
	})

	cfg, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/rides.csv", cfg.Pipeline.SourcePath)
	assert.Equal(t, "9090", cfg.HTTP.Port)
}

func TestNewConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "precision too small", key: "PIPELINE_FLOAT_PRECISION", val: "-2"},
		{name: "multi-char delimiter", key: "PIPELINE_DELIMITER", val: ";;"},
		{name: "unknown log level", key: "APP_LOG_LEVEL", val: "TRACE"},
		{name: "short secret", key: "AUTH_JWT_SECRET", val: "short"},
		{name: "non numeric port", key: "HTTP_PORT", val: "http"},
		{name: "workbook extension", key: "EXPORT_XLSX_FILE_NAME", val: "out.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := NewConfig("")
			assert.Error(t, err)
		})
	}
}

func TestConfig_ValidateMode(t *testing.T) {
	cfg, err := NewConfig("")
	require.NoError(t, err)

	cfg.Mode = "bogus"
	assert.ErrorIs(t, cfg.Validate(), types.ErrInvalidMode)
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{User: "u", Password: "secret", Host: "db", Port: "5432", Database: "rides"}
	assert.Equal(t, "postgres://u:secret@db:5432/rides?sslmode=disable", db.GetDSN())
	assert.False(t, strings.Contains(db.Redacted().GetDSN(), "secret"))

	mq := RabbitMQConfig{User: "guest", Password: "guest", Host: "mq", Port: "5672"}
	assert.Equal(t, "amqp://guest:guest@mq:5672/", mq.GetDSN())
	assert.NotContains(t, mq.Redacted().GetDSN(), ":guest@")
}
