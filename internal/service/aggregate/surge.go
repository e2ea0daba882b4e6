package aggregate

import (
	"database/sql"
	"slices"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

var SurgeColumns = []string{
	"pickup_zone", "hour", "ride_count", "avg_wait_time", "avg_surge", "cancel_rate",
}

type zoneHour struct {
	zone sql.NullString
	hour sql.NullInt32
}

// Surge groups rides by pickup zone and hour. cancel_rate = 1 - completed/count.
func Surge(ds *models.Dataset) models.Table {
	groups := groupBy(rides(ds), func(r models.Ride) zoneHour {
		return zoneHour{zone: r.PickupZone, hour: r.Hour}
	})
	slices.SortStableFunc(groups, func(a, b group[zoneHour]) int {
		if c := compareString(a.key.zone, b.key.zone); c != 0 {
			return c
		}
		return compareInt(a.key.hour, b.key.hour)
	})

	t := models.NewTable(types.SurgeAnalysis.String(), SurgeColumns...)
	for _, g := range groups {
		t.Append(
			models.StringCell(g.key.zone),
			models.IntCell(g.key.hour),
			g.count,
			models.FloatCell(g.wait.avg()),
			models.FloatCell(g.surge.avg()),
			models.FloatCell(complement(g.completionRate())),
		)
	}
	return *t
}
