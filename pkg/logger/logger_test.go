package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &rec))
	return rec
}

func TestLogger_ContextFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "analytics", LevelDebug)

	ctx := wrap.WithRunID(wrap.WithAction(context.Background(), "process_and_save"), "run-1")
	ctx = wrap.WithArtifact(ctx, "peak_hours")
	log.Info(ctx, "aggregated", "rows", 24)

	rec := lastRecord(t, &buf)
	assert.Equal(t, "aggregated", rec["message"])
	assert.Equal(t, "analytics", rec["service"])
	assert.Equal(t, "process_and_save", rec["action"])
	assert.Equal(t, "run-1", rec["run_id"])
	assert.Equal(t, "peak_hours", rec["artifact"])
	assert.EqualValues(t, 24, rec["rows"])
	assert.Contains(t, rec, "timestamp")
}

func TestLogger_ErrorCarriesWrappedContext(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "analytics", LevelDebug)

	inner := wrap.WithRunID(wrap.WithAction(context.Background(), "load"), "run-7")
	err := wrap.Error(inner, errors.New("source missing"))

	outer := wrap.WithRequestID(context.Background(), "req-1")
	log.Error(wrap.ErrorCtx(outer, err), "run failed", err)

	rec := lastRecord(t, &buf)
	assert.Equal(t, "load", rec["action"])
	assert.Equal(t, "run-7", rec["run_id"])
	assert.Equal(t, "req-1", rec["request_id"])
	assert.Equal(t, map[string]any{"msg": "source missing"}, rec["error"])
}

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "analytics", LevelWarn)

	log.Info(context.Background(), "hidden")
	log.Debug(context.Background(), "hidden")
	assert.Zero(t, buf.Len())

	log.Warn(context.Background(), "shown")
	assert.Equal(t, "shown", lastRecord(t, &buf)["message"])
}

func TestValidateLogLevel(t *testing.T) {
	assert.True(t, ValidateLogLevel("info"))
	assert.True(t, ValidateLogLevel("ERROR"))
	assert.False(t, ValidateLogLevel("TRACE"))
}
