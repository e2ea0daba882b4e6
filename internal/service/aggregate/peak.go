package aggregate

import (
	"database/sql"
	"slices"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

var PeakHoursColumns = []string{
	"day_of_week", "hour", "ride_count", "avg_wait_time", "avg_surge", "share_of_week",
}

type weekdayHour struct {
	day  sql.NullString
	hour sql.NullInt32
}

// PeakHours groups rides by weekday and hour in calendar order (Monday first),
// whatever order the weekdays first appear in.
func PeakHours(ds *models.Dataset) models.Table {
	all := rides(ds)
	groups := groupBy(all, func(r models.Ride) weekdayHour {
		return weekdayHour{day: r.DayOfWeek, hour: r.Hour}
	})
	slices.SortStableFunc(groups, func(a, b group[weekdayHour]) int {
		if c := compareWeekday(a.key.day, b.key.day); c != 0 {
			return c
		}
		return compareInt(a.key.hour, b.key.hour)
	})

	grand := float64(len(all))

	t := models.NewTable(types.PeakHours.String(), PeakHoursColumns...)
	for _, g := range groups {
		t.Append(
			models.StringCell(g.key.day),
			models.IntCell(g.key.hour),
			g.count,
			models.FloatCell(g.wait.avg()),
			models.FloatCell(g.surge.avg()),
			models.FloatCell(Ratio(float64(g.count), grand)),
		)
	}
	return *t
}
