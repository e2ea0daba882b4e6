package microservices

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Temutjin2k/ride-analytics/config"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/internal/service/auth"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rides = `ride_id,timestamp,pickup_zone,dropoff_zone,vehicle_type,distance_km,fare,wait_time_minutes,completed,surge_multiplier
r1,2024-01-15 09:00:00,A,B,economy,3,10,2,true,1.0
r2,2024-01-15 09:15:00,A,C,economy,4,12,3,true,1.2
r3,2024-01-15 09:40:00,A,B,premium,5,15,6,false,1.5
`

func testConfig(t *testing.T) config.Config {
	t.Helper()

	dir := t.TempDir()
	source := filepath.Join(dir, "raw_rides.csv")
	require.NoError(t, os.WriteFile(source, []byte(rides), 0o644))

	return config.Config{
		Mode: types.ProcessMode,
		Pipeline: config.PipelineConfig{
			SourcePath:     source,
			OutputDir:      filepath.Join(dir, "processed"),
			Delimiter:      ",",
			FloatPrecision: -1,
		},
		Export: config.ExportConfig{
			XLSXEnabled:  true,
			XLSXFileName: "analytics.xlsx",
		},
		Auth: config.Auth{
			AccessTokenTTL: time.Hour,
			JWTSecret:      "test-secret-key",
			TokenSubject:   "operator",
		},
	}
}

func TestProcessService_Start(t *testing.T) {
	cfg := testConfig(t)
	svc, err := NewProcess(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)

	var out bytes.Buffer
	svc.out = &out

	require.NoError(t, svc.Start(context.Background()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1+len(types.Artifacts()))
	assert.Equal(t, "Processing complete", lines[0])
	for i, a := range types.Artifacts() {
		want := filepath.Join(cfg.Pipeline.OutputDir, a.String()+".csv")
		assert.Equal(t, "- "+a.String()+": "+want, lines[i+1])
		assert.FileExists(t, want)
	}
	assert.FileExists(t, filepath.Join(cfg.Pipeline.OutputDir, "analytics.xlsx"))
}

func TestProcessService_MissingSource(t *testing.T) {
	cfg := testConfig(t)
	cfg.Pipeline.SourcePath = filepath.Join(t.TempDir(), "nope.csv")

	svc, err := NewProcess(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	svc.out = &bytes.Buffer{}

	assert.ErrorIs(t, svc.Start(context.Background()), types.ErrSourceNotFound)
	assert.NoDirExists(t, cfg.Pipeline.OutputDir)
}

func TestPrintOutputs_SkipsUnknown(t *testing.T) {
	var out bytes.Buffer
	PrintOutputs(&out, map[string]string{"peak_hours": "x/peak_hours.csv", "other": "y"})

	assert.Equal(t, "Processing complete\n- peak_hours: x/peak_hours.csv\n", out.String())
}

func TestTokenService_Start(t *testing.T) {
	cfg := testConfig(t)
	svc, err := NewToken(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)

	var out bytes.Buffer
	svc.out = &out
	require.NoError(t, svc.Start(context.Background()))

	token := strings.SplitN(out.String(), "\n", 2)[0]
	validator := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, logger.Discard())
	user, err := validator.RoleCheck(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "operator", user.ID)
	assert.Equal(t, types.AdminRole, user.Role)
}
