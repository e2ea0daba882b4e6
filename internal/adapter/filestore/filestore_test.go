package filestore

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
)

func sampleTables() []models.Table {
	zones := models.NewTable("geographic_metrics", "pickup_zone", "total_rides", "completion_rate")
	zones.Append("A", int64(3), 2.0/3.0)
	zones.Append(nil, int64(1), nil)

	empty := models.NewTable("peak_hours", "day_of_week", "hour", "ride_count")

	return []models.Table{*zones, *empty}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "", FormatCell(nil, -1))
	assert.Equal(t, "A", FormatCell("A", -1))
	assert.Equal(t, "42", FormatCell(int64(42), -1))
	assert.Equal(t, "0.1", FormatCell(0.1, -1))
	assert.Equal(t, "3", FormatCell(3.0, -1))
	assert.Equal(t, "0.667", FormatCell(2.0/3.0, 3))
	assert.Equal(t, "true", FormatCell(true, -1))
}

func TestCSVWriter_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w := NewCSVWriter(CSVOptions{Precision: -1}, logger.Discard())

	locations, err := w.Save(context.Background(), dir, sampleTables()...)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"geographic_metrics": filepath.Join(dir, "geographic_metrics.csv"),
		"peak_hours":         filepath.Join(dir, "peak_hours.csv"),
	}, locations)

	records := readCSV(t, locations["geographic_metrics"])
	assert.Equal(t, [][]string{
		{"pickup_zone", "total_rides", "completion_rate"},
		{"A", "3", "0.6666666666666666"},
		{"", "1", ""},
	}, records)

	assert.Equal(t, [][]string{{"day_of_week", "hour", "ride_count"}}, readCSV(t, locations["peak_hours"]))
}

func TestCSVWriter_Precision(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(CSVOptions{Precision: 2}, logger.Discard())

	locations, err := w.Save(context.Background(), dir, sampleTables()[0])
	require.NoError(t, err)

	records := readCSV(t, locations["geographic_metrics"])
	assert.Equal(t, "0.67", records[1][2])
}

func TestCSVWriter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCSVWriter(CSVOptions{Precision: -1}, logger.Discard()).Save(ctx, t.TempDir(), sampleTables()...)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestXLSXWriter_Save(t *testing.T) {
	dir := t.TempDir()
	w := NewXLSXWriter("", logger.Discard())

	locations, err := w.Save(context.Background(), dir, sampleTables()...)
	require.NoError(t, err)

	path := filepath.Join(dir, DefaultWorkbookName)
	assert.Equal(t, path+"#geographic_metrics", locations["geographic_metrics"])

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"geographic_metrics", "peak_hours"}, f.GetSheetList())

	rows, err := f.GetRows("geographic_metrics")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"pickup_zone", "total_rides", "completion_rate"}, rows[0])
	assert.Equal(t, "A", rows[1][0])
	assert.Equal(t, "3", rows[1][1])
	assert.Equal(t, []string{"", "1"}, rows[2])

	peak, err := f.GetRows("peak_hours")
	require.NoError(t, err)
	assert.Len(t, peak, 1)
}
