package quality

import (
	"database/sql"
	"time"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/service/aggregate"
)

// Audit computes the health report of ds. It never mutates ds.
func Audit(ds *models.Dataset) models.QualityReport {
	report := models.QualityReport{
		TotalRecords:  ds.Len(),
		MissingValues: make([]models.ColumnCount, 0, len(models.RequiredColumns)+len(models.DerivedColumns)),
		GeneratedAt:   time.Now(),
	}

	columns := append(append([]string{}, models.RequiredColumns...), models.DerivedColumns...)
	missing := make([]int, len(columns))

	seen := make(map[sql.NullString]struct{}, ds.Len())
	completed := 0

	if ds != nil {
		for _, r := range ds.Rides {
			// missing ids collapse into one key
			key := r.RideID
			if !key.Valid {
				key = sql.NullString{}
			}
			seen[key] = struct{}{}

			if r.Completed {
				completed++
			}

			for i, col := range columns {
				if r.IsMissing(col) {
					missing[i]++
				}
			}

			if r.Timestamp.Valid {
				ts := r.Timestamp.Time
				if !report.MinTimestamp.Valid || ts.Before(report.MinTimestamp.Time) {
					report.MinTimestamp = sql.NullTime{Time: ts, Valid: true}
				}
				if !report.MaxTimestamp.Valid || ts.After(report.MaxTimestamp.Time) {
					report.MaxTimestamp = sql.NullTime{Time: ts, Valid: true}
				}
			}
		}
	}

	for i, col := range columns {
		report.MissingValues = append(report.MissingValues, models.ColumnCount{Column: col, Missing: missing[i]})
	}

	report.Duplicates = report.TotalRecords - len(seen)
	report.CompletionRate = aggregate.Ratio(float64(completed), float64(report.TotalRecords))

	return report
}
