package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
	"github.com/Temutjin2k/ride-analytics/pkg/metrics"
	"github.com/Temutjin2k/ride-analytics/pkg/postgres"
	"github.com/Temutjin2k/ride-analytics/pkg/trm"
)

const TablePrefix = "analytics_"

type columnType string

const (
	typeText   columnType = "TEXT"
	typeBigint columnType = "BIGINT"
	typeDouble columnType = "DOUBLE PRECISION"
)

// TableWriter mirrors aggregate tables into analytics_<artifact> tables.
// Every save replaces all tables in one transaction.
type TableWriter struct {
	db     *pgxpool.Pool
	trm    trm.TxManager
	schema string
	log    logger.Logger
}

func NewTableWriter(db *pgxpool.Pool, trm trm.TxManager, schema string, log logger.Logger) *TableWriter {
	if schema == "" {
		schema = "public"
	}
	return &TableWriter{
		db:     db,
		trm:    trm,
		schema: schema,
		log:    log,
	}
}

func (w *TableWriter) Name() string {
	return "postgres"
}

// Save ignores dir and returns artifact -> schema.table.
func (w *TableWriter) Save(ctx context.Context, _ string, tables ...models.Table) (map[string]string, error) {
	locations := make(map[string]string, len(tables))

	err := w.trm.Do(ctx, func(ctx context.Context) error {
		q := TxorDB(ctx, w.db)

		if _, err := q.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+pgx.Identifier{w.schema}.Sanitize()); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}

		for _, t := range tables {
			if err := w.replace(ctx, q, t); err != nil {
				return fmt.Errorf("failed to replace %s: %w", t.Name, err)
			}
			locations[t.Name] = w.schema + "." + TablePrefix + t.Name
		}
		return nil
	})
	metrics.RecordDatabaseQuery("replace_tables", err)
	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionDatabaseTransactionFailed)
		w.log.Error(ctx, "failed to mirror tables", err, "sqlstate", postgres.SQLState(err))
		return nil, wrap.Error(ctx, err)
	}

	return locations, nil
}

func (w *TableWriter) replace(ctx context.Context, q Querier, t models.Table) error {
	ident := pgx.Identifier{w.schema, TablePrefix + t.Name}
	colTypes := inferColumnTypes(t)

	if _, err := q.Exec(ctx, "DROP TABLE IF EXISTS "+ident.Sanitize()); err != nil {
		return err
	}
	if _, err := q.Exec(ctx, createTableSQL(ident, t.Columns, colTypes)); err != nil {
		return err
	}
	if t.Len() == 0 {
		return nil
	}

	n, err := q.CopyFrom(ctx, ident, t.Columns, pgx.CopyFromRows(copyRows(t, colTypes)))
	if err != nil {
		return err
	}
	w.log.Debug(ctx, "copied rows", "table", ident.Sanitize(), "rows", n)
	return nil
}

// inferColumnTypes picks TEXT when any cell is a string or every cell is missing,
// DOUBLE PRECISION when any cell is a float and BIGINT otherwise.
func inferColumnTypes(t models.Table) []columnType {
	out := make([]columnType, len(t.Columns))
	for i := range t.Columns {
		var hasString, hasFloat, hasInt bool
		for _, row := range t.Rows {
			if i >= len(row) {
				continue
			}
			switch row[i].(type) {
			case string:
				hasString = true
			case float64:
				hasFloat = true
			case int64:
				hasInt = true
			}
		}
		switch {
		case hasString:
			out[i] = typeText
		case hasFloat:
			out[i] = typeDouble
		case hasInt:
			out[i] = typeBigint
		default:
			out[i] = typeText
		}
	}
	return out
}

func createTableSQL(ident pgx.Identifier, columns []string, colTypes []columnType) string {
	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = pgx.Identifier{col}.Sanitize() + " " + string(colTypes[i])
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", ident.Sanitize(), strings.Join(defs, ", "))
}

// copyRows converts cells to the inferred column types.
func copyRows(t models.Table, colTypes []columnType) [][]any {
	rows := make([][]any, len(t.Rows))
	for r, row := range t.Rows {
		out := make([]any, len(t.Columns))
		for i := range t.Columns {
			if i >= len(row) || row[i] == nil {
				continue
			}
			v := row[i]
			switch colTypes[i] {
			case typeDouble:
				if n, ok := v.(int64); ok {
					v = float64(n)
				}
			case typeText:
				if _, ok := v.(string); !ok {
					v = fmt.Sprint(v)
				}
			}
			out[i] = v
		}
		rows[r] = out
	}
	return rows
}
