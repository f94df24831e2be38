package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/userdir-api/internal/store"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"
)

// classifyWriteError wraps a failed INSERT or UPDATE in a *store.WriteError.
// The column (not null) or constraint (unique) name is recorded as the field.
func classifyWriteError(op string, err error) *store.WriteError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case notNullViolationCode:
			return store.NewWriteError(op, store.ReasonRequiredFieldMissing, pgErr.ColumnName, err)
		case uniqueViolationCode:
			return store.NewWriteError(op, store.ReasonUniqueViolation, pgErr.ConstraintName, err)
		}
	}
	return store.NewWriteError(op, store.ReasonOther, "", err)
}

// IsUniqueViolation checks if the given error is a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsNotNullViolation checks if the given error is a PostgreSQL not null constraint violation.
// This occurs when an operation attempts to insert or update a NULL value in a column that requires a non-NULL value.
func IsNotNullViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == notNullViolationCode
}
