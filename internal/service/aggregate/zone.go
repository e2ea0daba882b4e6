package aggregate

import (
	"cmp"
	"database/sql"
	"slices"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

var ZonalColumns = []string{
	"pickup_zone", "total_rides", "completed_rides", "avg_fare", "total_revenue",
	"avg_distance", "avg_wait_time", "avg_surge", "completion_rate", "ride_share",
}

// Zonal groups rides by pickup zone, busiest zone first.
func Zonal(ds *models.Dataset) models.Table {
	all := rides(ds)
	groups := groupBy(all, func(r models.Ride) sql.NullString { return r.PickupZone })
	slices.SortStableFunc(groups, func(a, b group[sql.NullString]) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return compareString(a.key, b.key)
	})

	grand := float64(len(all))

	t := models.NewTable(types.GeographicMetrics.String(), ZonalColumns...)
	for _, g := range groups {
		t.Append(
			models.StringCell(g.key),
			g.count,
			g.completed,
			models.FloatCell(g.fare.avg()),
			models.FloatCell(g.fare.total()),
			models.FloatCell(g.distance.avg()),
			models.FloatCell(g.wait.avg()),
			models.FloatCell(g.surge.avg()),
			models.FloatCell(g.completionRate()),
			models.FloatCell(Ratio(float64(g.count), grand)),
		)
	}
	return *t
}
