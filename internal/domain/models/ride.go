package models

import (
	"database/sql"
	"time"
)

const DateLayout = "2006-01-02"

// Ride is one enriched ride event. Invalid nullable fields are missing values.
type Ride struct {
	RideID          sql.NullString
	Timestamp       sql.NullTime
	PickupZone      sql.NullString
	DropoffZone     sql.NullString
	VehicleType     sql.NullString
	DistanceKm      sql.NullFloat64
	Fare            sql.NullFloat64
	WaitTimeMinutes sql.NullFloat64
	Completed       bool
	SurgeMultiplier sql.NullFloat64

	// derived from Timestamp
	Date      sql.NullString
	Hour      sql.NullInt32
	DayOfWeek sql.NullString
	Month     sql.NullInt32
}

// SetTimestamp stores ts and derives the calendar fields from its wall clock.
func (r *Ride) SetTimestamp(ts time.Time) {
	r.Timestamp = sql.NullTime{Time: ts, Valid: true}
	r.Date = sql.NullString{String: ts.Format(DateLayout), Valid: true}
	r.Hour = sql.NullInt32{Int32: int32(ts.Hour()), Valid: true}
	r.DayOfWeek = sql.NullString{String: ts.Weekday().String(), Valid: true}
	r.Month = sql.NullInt32{Int32: int32(ts.Month()), Valid: true}
}

// IsMissing reports whether the named column holds a missing value.
// Completed is never missing once loaded.
func (r Ride) IsMissing(column string) bool {
	switch column {
	case ColumnRideID:
		return !r.RideID.Valid
	case ColumnTimestamp:
		return !r.Timestamp.Valid
	case ColumnPickupZone:
		return !r.PickupZone.Valid
	case ColumnDropoffZone:
		return !r.DropoffZone.Valid
	case ColumnVehicleType:
		return !r.VehicleType.Valid
	case ColumnDistanceKm:
		return !r.DistanceKm.Valid
	case ColumnFare:
		return !r.Fare.Valid
	case ColumnWaitTimeMinutes:
		return !r.WaitTimeMinutes.Valid
	case ColumnSurgeMultiplier:
		return !r.SurgeMultiplier.Valid
	case ColumnDate:
		return !r.Date.Valid
	case ColumnHour:
		return !r.Hour.Valid
	case ColumnDayOfWeek:
		return !r.DayOfWeek.Valid
	case ColumnMonth:
		return !r.Month.Valid
	}
	return false
}

// Dataset is the enriched, read-only result of a load. Rides keep input order.
type Dataset struct {
	Source   string
	LoadedAt time.Time
	Rides    []Ride
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rides)
}
