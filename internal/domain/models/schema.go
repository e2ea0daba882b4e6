package models

import "slices"

// Input columns every record source must provide.
const (
	ColumnRideID          = "ride_id"
	ColumnTimestamp       = "timestamp"
	ColumnPickupZone      = "pickup_zone"
	ColumnDropoffZone     = "dropoff_zone"
	ColumnVehicleType     = "vehicle_type"
	ColumnDistanceKm      = "distance_km"
	ColumnFare            = "fare"
	ColumnWaitTimeMinutes = "wait_time_minutes"
	ColumnCompleted       = "completed"
	ColumnSurgeMultiplier = "surge_multiplier"
)

// Columns derived from the timestamp during loading.
const (
	ColumnDate      = "date"
	ColumnHour      = "hour"
	ColumnDayOfWeek = "day_of_week"
	ColumnMonth     = "month"
)

// Schema is an ordered set of required column names.
type Schema []string

// RequiredColumns is the schema of a ride event source.
var RequiredColumns = Schema{
	ColumnRideID,
	ColumnTimestamp,
	ColumnPickupZone,
	ColumnDropoffZone,
	ColumnVehicleType,
	ColumnDistanceKm,
	ColumnFare,
	ColumnWaitTimeMinutes,
	ColumnCompleted,
	ColumnSurgeMultiplier,
}

// DerivedColumns are appended to the enriched dataset in this order.
var DerivedColumns = []string{ColumnDate, ColumnHour, ColumnDayOfWeek, ColumnMonth}

func (s Schema) Contains(name string) bool {
	return slices.Contains(s, name)
}

// Missing returns the schema columns absent from header, in schema order.
func (s Schema) Missing(header []string) []string {
	var missing []string
	for _, col := range s {
		if !slices.Contains(header, col) {
			missing = append(missing, col)
		}
	}
	return missing
}
