package aggregate

import (
	"database/sql"
	"math"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
)

// mean accumulates non-missing values.
type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v sql.NullFloat64) {
	if v.Valid {
		m.sum += v.Float64
		m.n++
	}
}

func (m mean) avg() sql.NullFloat64 {
	return Ratio(m.sum, float64(m.n))
}

// total is missing when every input was missing or the sum overflowed.
func (m mean) total() sql.NullFloat64 {
	if m.n == 0 || math.IsInf(m.sum, 0) || math.IsNaN(m.sum) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: m.sum, Valid: true}
}

// stats is the per-group accumulator shared by every transform.
// count includes every record of the group, duplicates too.
type stats struct {
	count     int64
	completed int64
	fare      mean
	distance  mean
	wait      mean
	surge     mean
}

func (s *stats) add(r models.Ride) {
	s.count++
	if r.Completed {
		s.completed++
	}
	s.fare.add(r.Fare)
	s.distance.add(r.DistanceKm)
	s.wait.add(r.WaitTimeMinutes)
	s.surge.add(r.SurgeMultiplier)
}

func (s *stats) completionRate() sql.NullFloat64 {
	return Ratio(float64(s.completed), float64(s.count))
}

type group[K comparable] struct {
	key K
	*stats
}

// groupBy accumulates rides per key. Missing key values form their own group.
// Groups come back in first-seen order; callers sort them.
func groupBy[K comparable](rides []models.Ride, key func(models.Ride) K) []group[K] {
	index := make(map[K]int)
	var groups []group[K]

	for _, r := range rides {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group[K]{key: k, stats: &stats{}})
		}
		groups[i].add(r)
	}
	return groups
}

func rides(ds *models.Dataset) []models.Ride {
	if ds == nil {
		return nil
	}
	return ds.Rides
}
