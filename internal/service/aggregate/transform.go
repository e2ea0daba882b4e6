package aggregate

import (
	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

// Transform summarizes a loaded dataset into one table. Transforms only read the dataset.
type Transform func(ds *models.Dataset) models.Table

var transforms = map[types.Artifact]Transform{
	types.HourlyMetrics:     Hourly,
	types.GeographicMetrics: Zonal,
	types.PeakHours:         PeakHours,
	types.VehicleType:       VehicleSegments,
	types.SurgeAnalysis:     Surge,
}

// For returns the transform producing the artifact.
func For(a types.Artifact) (Transform, bool) {
	t, ok := transforms[a]
	return t, ok
}
