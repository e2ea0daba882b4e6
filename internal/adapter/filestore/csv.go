package filestore

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
)

// CSVOptions configures CSV artifact writing
type CSVOptions struct {
	Precision int  // float digits after the point, -1 for shortest
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// CSVWriter writes every table to <dir>/<name>.csv
type CSVWriter struct {
	opts CSVOptions
	log  logger.Logger
}

func NewCSVWriter(opts CSVOptions, log logger.Logger) *CSVWriter {
	return &CSVWriter{opts: opts, log: log}
}

func (w *CSVWriter) Name() string {
	return "csv"
}

// Save creates the directory if needed and writes the tables in order.
func (w *CSVWriter) Save(ctx context.Context, dir string, tables ...models.Table) (map[string]string, error) {
	dir = outputDir(dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	locations := make(map[string]string, len(tables))
	for _, t := range tables {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(dir, t.Name+".csv")
		if err := w.write(path, t); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", t.Name, err)
		}
		locations[t.Name] = path

		w.log.Debug(ctx, "wrote csv artifact", "artifact", t.Name, "path", path, "rows", t.Len())
	}

	return locations, nil
}

func (w *CSVWriter) write(path string, t models.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if w.opts.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)

	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	record := make([]string, len(t.Columns))
	for i, row := range t.Rows {
		for j := range record {
			var v any
			if j < len(row) {
				v = row[j]
			}
			record[j] = FormatCell(v, w.opts.Precision)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return file.Close()
}
