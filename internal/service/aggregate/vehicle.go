package aggregate

import (
	"cmp"
	"database/sql"
	"slices"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

var VehicleColumns = []string{
	"pickup_zone", "vehicle_type", "total_rides", "completed_rides", "avg_fare", "total_revenue",
	"avg_wait_time", "avg_surge", "completion_rate", "zone_vehicle_share",
}

type zoneVehicle struct {
	zone    sql.NullString
	vehicle sql.NullString
}

// VehicleSegments groups rides by pickup zone and vehicle type. Shares are
// relative to the zone total, so they sum to 1 within each zone.
func VehicleSegments(ds *models.Dataset) models.Table {
	groups := groupBy(rides(ds), func(r models.Ride) zoneVehicle {
		return zoneVehicle{zone: r.PickupZone, vehicle: r.VehicleType}
	})

	zoneTotals := make(map[sql.NullString]int64)
	for _, g := range groups {
		zoneTotals[g.key.zone] += g.count
	}

	slices.SortStableFunc(groups, func(a, b group[zoneVehicle]) int {
		if c := compareString(a.key.zone, b.key.zone); c != 0 {
			return c
		}
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return compareString(a.key.vehicle, b.key.vehicle)
	})

	t := models.NewTable(types.VehicleType.String(), VehicleColumns...)
	for _, g := range groups {
		t.Append(
			models.StringCell(g.key.zone),
			models.StringCell(g.key.vehicle),
			g.count,
			g.completed,
			models.FloatCell(g.fare.avg()),
			models.FloatCell(g.fare.total()),
			models.FloatCell(g.wait.avg()),
			models.FloatCell(g.surge.avg()),
			models.FloatCell(g.completionRate()),
			models.FloatCell(Ratio(float64(g.count), float64(zoneTotals[g.key.zone]))),
		)
	}
	return *t
}
