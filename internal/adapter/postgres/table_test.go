package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
)

func sampleTable() models.Table {
	t := models.NewTable("hourly_metrics", "date", "hour", "total_rides", "avg_fare", "empty", "mixed")
	t.Append("2024-01-15", int64(9), int64(3), 12.5, nil, int64(1))
	t.Append(nil, nil, int64(1), nil, nil, 2.5)
	return *t
}

func TestInferColumnTypes(t *testing.T) {
	got := inferColumnTypes(sampleTable())

	assert.Equal(t, []columnType{typeText, typeBigint, typeBigint, typeDouble, typeText, typeDouble}, got)
}

func TestCreateTableSQL(t *testing.T) {
	tbl := sampleTable()
	sql := createTableSQL(pgx.Identifier{"public", "analytics_hourly_metrics"}, tbl.Columns, inferColumnTypes(tbl))

	assert.Equal(t,
		`CREATE TABLE "public"."analytics_hourly_metrics" ("date" TEXT, "hour" BIGINT, "total_rides" BIGINT, "avg_fare" DOUBLE PRECISION, "empty" TEXT, "mixed" DOUBLE PRECISION)`,
		sql,
	)
}

func TestCopyRows(t *testing.T) {
	tbl := sampleTable()
	rows := copyRows(tbl, inferColumnTypes(tbl))

	assert.Equal(t, [][]any{
		{"2024-01-15", int64(9), int64(3), 12.5, nil, 1.0},
		{nil, nil, int64(1), nil, nil, 2.5},
	}, rows)
}
