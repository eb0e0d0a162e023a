package dbx

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// UniqueViolationCode is the PostgreSQL SQLSTATE for unique_violation.
const UniqueViolationCode = "23505"

// IsUniqueViolation reports whether err carries a PostgreSQL unique
// constraint violation. When constraint is non-empty it must match too.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != UniqueViolationCode {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
