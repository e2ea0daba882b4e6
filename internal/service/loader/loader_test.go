package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
)

const header = "ride_id,timestamp,pickup_zone,dropoff_zone,vehicle_type,distance_km,fare,wait_time_minutes,completed,surge_multiplier"

func writeSource(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rides.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeSource(t,
		header,
		"r1,2024-01-15 08:30:00,A,B,economy,5.2,12.5,3,true,1.2",
		"r2,not-a-date,A,,premium,abc,20,,0,",
		"r3,2024-01-16 21:05:00,B,A,economy,1,7.5,4.5,1,1.0",
	)

	ds, err := New(logger.Discard()).Load(context.Background(), path, models.RequiredColumns)
	require.NoError(t, err)
	require.Equal(t, 3, ds.Len())
	assert.Equal(t, path, ds.Source)

	r1 := ds.Rides[0]
	assert.Equal(t, "r1", r1.RideID.String)
	assert.Equal(t, "A", r1.PickupZone.String)
	assert.Equal(t, 12.5, r1.Fare.Float64)
	assert.True(t, r1.Completed)
	assert.Equal(t, "2024-01-15", r1.Date.String)
	assert.Equal(t, int32(8), r1.Hour.Int32)
	assert.Equal(t, "Monday", r1.DayOfWeek.String)
	assert.Equal(t, int32(1), r1.Month.Int32)

	r2 := ds.Rides[1]
	assert.False(t, r2.Timestamp.Valid)
	assert.False(t, r2.Date.Valid)
	assert.False(t, r2.Hour.Valid)
	assert.False(t, r2.DayOfWeek.Valid)
	assert.False(t, r2.Month.Valid)
	assert.False(t, r2.DropoffZone.Valid)
	assert.False(t, r2.DistanceKm.Valid)
	assert.False(t, r2.WaitTimeMinutes.Valid)
	assert.False(t, r2.SurgeMultiplier.Valid)
	assert.True(t, r2.Fare.Valid)
	assert.False(t, r2.Completed)

	r3 := ds.Rides[2]
	assert.Equal(t, "Tuesday", r3.DayOfWeek.String)
	assert.Equal(t, int32(21), r3.Hour.Int32)
	assert.True(t, r3.Completed)
}

func TestLoad_ColumnOrderAndExtras(t *testing.T) {
	path := writeSource(t,
		"extra,surge_multiplier,completed,wait_time_minutes,fare,distance_km,vehicle_type,dropoff_zone,pickup_zone,timestamp,ride_id",
		"x,1.5,yes,2,9.99,3,xl,B,A,2024-02-01T10:00:00,r9",
		"y,1.0,no", // short row
	)

	ds, err := New(logger.Discard()).Load(context.Background(), path, models.RequiredColumns)
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())

	assert.Equal(t, "r9", ds.Rides[0].RideID.String)
	assert.Equal(t, 1.5, ds.Rides[0].SurgeMultiplier.Float64)
	assert.True(t, ds.Rides[0].Completed)

	short := ds.Rides[1]
	assert.Equal(t, 1.0, short.SurgeMultiplier.Float64)
	assert.False(t, short.Completed)
	assert.False(t, short.RideID.Valid)
	assert.False(t, short.Timestamp.Valid)
}

func TestLoad_Delimiter(t *testing.T) {
	path := writeSource(t,
		strings.ReplaceAll(header, ",", ";"),
		"r1;2024-01-15 08:30:00;A;B;economy;5.2;12.5;3;true;1.2",
	)

	ds, err := New(logger.Discard(), WithDelimiter(';')).Load(context.Background(), path, models.RequiredColumns)
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, 12.5, ds.Rides[0].Fare.Float64)
}

func TestLoad_HeaderOnly(t *testing.T) {
	path := writeSource(t, header)

	ds, err := New(logger.Discard()).Load(context.Background(), path, models.RequiredColumns)
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
	assert.NotNil(t, ds.Rides)
}

func TestLoad_SourceNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")

	_, err := New(logger.Discard()).Load(context.Background(), path, models.RequiredColumns)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrSourceNotFound)

	var snf *types.SourceNotFoundError
	require.True(t, errors.As(err, &snf))
	assert.Equal(t, path, snf.Path)
}

func TestLoad_MissingColumn(t *testing.T) {
	path := writeSource(t,
		strings.Replace(header, ",fare", "", 1),
		"r1,2024-01-15 08:30:00,A,B,economy,5.2,3,true,1.2",
	)

	_, err := New(logger.Discard()).Load(context.Background(), path, models.RequiredColumns)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrSchemaValidation)

	var sve *types.SchemaValidationError
	require.True(t, errors.As(err, &sve))
	assert.Equal(t, []string{"fare"}, sve.Missing)
}

func TestLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := New(logger.Discard()).Load(context.Background(), path, models.RequiredColumns)
	var sve *types.SchemaValidationError
	require.True(t, errors.As(err, &sve))
	assert.Len(t, sve.Missing, len(models.RequiredColumns))
}

func TestLoad_Deterministic(t *testing.T) {
	path := writeSource(t,
		header,
		"r1,2024-01-15 08:30:00,A,B,economy,5.2,12.5,3,true,1.2",
		"r1,2024-01-15 09:30:00,B,B,economy,,,,false,",
	)
	l := New(logger.Discard())

	first, err := l.Load(context.Background(), path, models.RequiredColumns)
	require.NoError(t, err)
	second, err := l.Load(context.Background(), path, models.RequiredColumns)
	require.NoError(t, err)

	assert.Equal(t, first.Rides, second.Rides)
}

func TestLoad_MissingTokens(t *testing.T) {
	missing := []string{
		"", "  ", " NA ", "NA", "N/A", "n/a", "#N/A", "#N/A N/A", "#NA", "<NA>",
		"NaN", "-NaN", "nan", "-nan", "1.#IND", "-1.#IND", "1.#QNAN", "-1.#QNAN",
		"null", "NULL", "None",
	}
	present := []string{"0", "A", "none?", "false", "na"}

	lines := []string{header}
	for i, zone := range append(slices.Clone(missing), present...) {
		lines = append(lines, fmt.Sprintf("r%d,2024-01-15 08:30:00,%s,B,economy,1,%s,1,1,1", i, zone, zone))
	}
	path := writeSource(t, lines...)

	ds, err := New(logger.Discard()).Load(context.Background(), path, models.RequiredColumns)
	require.NoError(t, err)
	require.Equal(t, len(missing)+len(present), ds.Len())

	for i, in := range missing {
		assert.False(t, ds.Rides[i].PickupZone.Valid, "%q", in)
		assert.False(t, ds.Rides[i].Fare.Valid, "%q", in)
	}
	for i, in := range present {
		r := ds.Rides[len(missing)+i]
		require.True(t, r.PickupZone.Valid, "%q", in)
		assert.Equal(t, in, r.PickupZone.String)
	}
}

func TestLoad_DuplicateHeaderFirstWins(t *testing.T) {
	path := writeSource(t,
		header+",fare,extra,extra",
		"r1,2024-01-15 08:30:00, A ,B,economy,5.2,12.5,3,true,1.2,99,x,y",
	)

	ds, err := New(logger.Discard()).Load(context.Background(), path, models.RequiredColumns)
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, 12.5, ds.Rides[0].Fare.Float64)
	assert.Equal(t, "A", ds.Rides[0].PickupZone.String)
}
