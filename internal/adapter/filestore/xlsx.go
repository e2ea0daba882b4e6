package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
)

const DefaultWorkbookName = "analytics.xlsx"

// XLSXWriter writes all tables into one workbook, one sheet per table.
type XLSXWriter struct {
	fileName string
	log      logger.Logger
}

func NewXLSXWriter(fileName string, log logger.Logger) *XLSXWriter {
	if fileName == "" {
		fileName = DefaultWorkbookName
	}
	return &XLSXWriter{fileName: fileName, log: log}
}

func (w *XLSXWriter) Name() string {
	return "xlsx"
}

// Save returns table name -> "<workbook>#<sheet>".
func (w *XLSXWriter) Save(ctx context.Context, dir string, tables ...models.Table) (map[string]string, error) {
	dir = outputDir(dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	path := filepath.Join(dir, w.fileName)
	locations := make(map[string]string, len(tables))

	for i, t := range tables {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if i == 0 {
			if err := f.SetSheetName(defaultSheet, t.Name); err != nil {
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(t.Name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", t.Name, err)
		}

		if err := writeSheet(f, t); err != nil {
			return nil, fmt.Errorf("failed to write sheet %s: %w", t.Name, err)
		}
		locations[t.Name] = path + "#" + t.Name
	}

	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("failed to save workbook: %w", err)
	}

	w.log.Debug(ctx, "wrote xlsx workbook", "path", path, "sheets", len(tables))
	return locations, nil
}

func writeSheet(f *excelize.File, t models.Table) error {
	for col, name := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(t.Name, cell, name); err != nil {
			return err
		}
	}

	for r, row := range t.Rows {
		for col, v := range row {
			// missing values stay empty cells
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(t.Name, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
