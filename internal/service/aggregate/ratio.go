package aggregate

import (
	"database/sql"
	"math"
)

// Ratio divides num by den. A zero denominator or a non-finite result is missing.
// Every rate and share column goes through here.
func Ratio(num, den float64) sql.NullFloat64 {
	if den == 0 {
		return sql.NullFloat64{}
	}
	v := num / den
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

// complement returns 1 - v, keeping missing values missing.
func complement(v sql.NullFloat64) sql.NullFloat64 {
	if !v.Valid {
		return v
	}
	return sql.NullFloat64{Float64: 1 - v.Float64, Valid: true}
}
