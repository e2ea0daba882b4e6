package aggregate

import (
	"database/sql"
	"slices"
	"time"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

var HourlyColumns = []string{
	"date", "hour", "total_rides", "completed_rides", "avg_fare", "total_revenue",
	"avg_distance", "avg_wait_time", "avg_surge", "completion_rate", "day_of_week", "month",
}

type dateHour struct {
	date sql.NullString
	hour sql.NullInt32
}

// Hourly groups rides by calendar date and hour, ordered by date then hour.
func Hourly(ds *models.Dataset) models.Table {
	groups := groupBy(rides(ds), func(r models.Ride) dateHour {
		return dateHour{date: r.Date, hour: r.Hour}
	})
	slices.SortStableFunc(groups, func(a, b group[dateHour]) int {
		if c := compareString(a.key.date, b.key.date); c != 0 {
			return c
		}
		return compareInt(a.key.hour, b.key.hour)
	})

	t := models.NewTable(types.HourlyMetrics.String(), HourlyColumns...)
	for _, g := range groups {
		weekday, month := calendar(g.key.date)
		t.Append(
			models.StringCell(g.key.date),
			models.IntCell(g.key.hour),
			g.count,
			g.completed,
			models.FloatCell(g.fare.avg()),
			models.FloatCell(g.fare.total()),
			models.FloatCell(g.distance.avg()),
			models.FloatCell(g.wait.avg()),
			models.FloatCell(g.surge.avg()),
			models.FloatCell(g.completionRate()),
			weekday,
			month,
		)
	}
	return *t
}

// calendar returns the weekday name and month number of a group date.
func calendar(date sql.NullString) (weekday, month any) {
	if !date.Valid {
		return nil, nil
	}
	d, err := time.Parse(models.DateLayout, date.String)
	if err != nil {
		return nil, nil
	}
	return d.Weekday().String(), int64(d.Month())
}
