package loader

import (
	"database/sql"
	"math"
	"strconv"
	"strings"
	"time"
)

// Cell values read as missing, matched after trimming.
var missingTokens = []string{
	"", "NA", "N/A", "n/a", "#N/A", "#N/A N/A", "#NA", "<NA>",
	"NaN", "-NaN", "nan", "-nan", "1.#IND", "-1.#IND", "1.#QNAN", "-1.#QNAN",
	"null", "NULL", "None",
}

// Accepted timestamp layouts, tried in order. Layouts without an offset parse as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04",
}

func parseString(raw string, missing bool) sql.NullString {
	if missing {
		return sql.NullString{}
	}
	return sql.NullString{String: raw, Valid: true}
}

// parseFloat never fails: unparseable or non-finite input is missing.
func parseFloat(raw string, missing bool) sql.NullFloat64 {
	if missing {
		return sql.NullFloat64{}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}

// parseBool is strict: only truthy tokens and non-zero numbers are true.
func parseBool(raw string, missing bool) bool {
	if missing {
		return false
	}
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "yes", "y":
		return true
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) {
		return f != 0
	}
	return false
}

func parseTimestamp(raw string, missing bool) (time.Time, bool) {
	if missing {
		return time.Time{}, false
	}
	s := strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
