package loader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseBool(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"true", true},
		{"True", true},
		{"t", true},
		{"1", true},
		{"1.0", true},
		{"yes", true},
		{" Y ", true},
		{"2", true},
		{"false", false},
		{"0", false},
		{"0.0", false},
		{"no", false},
		{"garbage", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseBool(tt.in, false))
		})
	}

	assert.False(t, parseBool("true", true), "missing is false")
}

func TestParseFloat(t *testing.T) {
	got := parseFloat(" 12.5 ", false)
	assert.True(t, got.Valid)
	assert.Equal(t, 12.5, got.Float64)

	zero := parseFloat("0", false)
	assert.True(t, zero.Valid)

	for _, in := range []string{"abc", "inf", "-Inf", "NaN", "1e999", "12,5"} {
		assert.False(t, parseFloat(in, false).Valid, in)
	}
	assert.False(t, parseFloat("3", true).Valid)
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-15 08:30:00", time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)},
		{"2024-01-15 08:30:00.250", time.Date(2024, 1, 15, 8, 30, 0, 250_000_000, time.UTC)},
		{"2024-01-15T08:30:00", time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)},
		{"2024-01-15T08:30:00Z", time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)},
		{"2024-01-15 08:30", time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)},
		{"2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"01/15/2024 08:30", time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseTimestamp(tt.in, false)
			assert.True(t, ok)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}

	// wall clock of the given offset is kept
	got, ok := parseTimestamp("2024-01-15T23:30:00+05:00", false)
	assert.True(t, ok)
	assert.Equal(t, 23, got.Hour())

	for _, in := range []string{"yesterday", "2024-13-45 10:00:00", "15.01.2024"} {
		_, ok := parseTimestamp(in, false)
		assert.False(t, ok, in)
	}
}
