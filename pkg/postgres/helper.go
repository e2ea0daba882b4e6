package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLState returns the PostgreSQL error code carried by err, or "" when err is not a server error.
//
// Works with wrapped errors thanks to errors.As.
func SQLState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.SQLState()
	}
	return ""
}

// IsUndefinedTable reports SQLSTATE 42P01.
func IsUndefinedTable(err error) bool {
	return SQLState(err) == "42P01"
}
