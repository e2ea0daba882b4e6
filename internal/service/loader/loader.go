package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
)

// Loader reads a delimited ride source into an enriched dataset.
type Loader struct {
	delimiter rune
	log       logger.Logger
}

type Option func(*Loader)

// WithDelimiter overrides the field delimiter (comma by default).
func WithDelimiter(d rune) Option {
	return func(l *Loader) {
		if d != 0 {
			l.delimiter = d
		}
	}
}

func New(log logger.Logger, opts ...Option) *Loader {
	l := &Loader{
		delimiter: ',',
		log:       log,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load validates the source header against schema, then coerces every row.
// Malformed values become missing; only a missing source or missing columns fail.
func (l *Loader) Load(ctx context.Context, path string, schema models.Schema) (*models.Dataset, error) {
	ctx = wrap.WithAction(ctx, types.ActionLoad)

	records, err := l.read(path)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	var header []string
	if len(records) > 0 {
		header = normalizeHeader(records[0])
	}
	if missing := schema.Missing(header); len(missing) > 0 {
		return nil, wrap.Error(ctx, &types.SchemaValidationError{Missing: missing})
	}

	if err := ctx.Err(); err != nil {
		return nil, wrap.Error(ctx, err)
	}

	ds := &models.Dataset{
		Source:   path,
		LoadedAt: time.Now(),
		Rides:    []models.Ride{},
	}

	if len(records) > 1 {
		df := dataframe.LoadRecords(
			frameRecords(records, header),
			dataframe.HasHeader(true),
			dataframe.DetectTypes(false),
			dataframe.DefaultType(series.String),
			dataframe.NaNValues(missingTokens),
		).Select([]string(schema))
		if df.Err != nil {
			return nil, wrap.Error(ctx, fmt.Errorf("failed to build frame: %w", df.Err))
		}
		ds.Rides = enrich(df)
	}

	l.log.Info(ctx, "loaded ride records", "source", path, "rows", len(ds.Rides))

	return ds, nil
}

func (l *Loader) read(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &types.SourceNotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to open source: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = l.delimiter
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	return records, nil
}

func normalizeHeader(raw []string) []string {
	header := make([]string, len(raw))
	for i, name := range raw {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		header[i] = strings.TrimSpace(name)
	}
	return header
}

// frameRecords squares the records off for the frame: cells are trimmed,
// short rows padded with empty (missing) cells, and repeated header names
// blanked so only the first occurrence keeps its name.
func frameRecords(records [][]string, header []string) [][]string {
	names := make([]string, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, name := range header {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names[i] = name
	}

	out := make([][]string, 0, len(records))
	out = append(out, names)
	for _, rec := range records[1:] {
		row := make([]string, len(names))
		for i := range row {
			if i < len(rec) {
				row[i] = strings.TrimSpace(rec[i])
			}
		}
		out = append(out, row)
	}
	return out
}

func enrich(df dataframe.DataFrame) []models.Ride {
	col := func(name string) series.Series { return df.Col(name) }

	rideID := col(models.ColumnRideID)
	timestamp := col(models.ColumnTimestamp)
	pickup := col(models.ColumnPickupZone)
	dropoff := col(models.ColumnDropoffZone)
	vehicle := col(models.ColumnVehicleType)
	distance := col(models.ColumnDistanceKm)
	fare := col(models.ColumnFare)
	wait := col(models.ColumnWaitTimeMinutes)
	completed := col(models.ColumnCompleted)
	surge := col(models.ColumnSurgeMultiplier)

	rides := make([]models.Ride, df.Nrow())
	for i := range rides {
		r := &rides[i]
		r.RideID = parseString(cell(rideID, i))
		r.PickupZone = parseString(cell(pickup, i))
		r.DropoffZone = parseString(cell(dropoff, i))
		r.VehicleType = parseString(cell(vehicle, i))
		r.DistanceKm = parseFloat(cell(distance, i))
		r.Fare = parseFloat(cell(fare, i))
		r.WaitTimeMinutes = parseFloat(cell(wait, i))
		r.Completed = parseBool(cell(completed, i))
		r.SurgeMultiplier = parseFloat(cell(surge, i))

		if ts, ok := parseTimestamp(cell(timestamp, i)); ok {
			r.SetTimestamp(ts)
		}
	}
	return rides
}

// cell returns the raw string and whether the frame holds a missing value.
func cell(s series.Series, i int) (string, bool) {
	e := s.Elem(i)
	if e.IsNA() {
		return "", true
	}
	return e.String(), false
}
