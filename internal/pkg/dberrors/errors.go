package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique
// violation error for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraintName
}

// IsUniqueViolation checks if the error is any PostgreSQL unique violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsForeignKeyViolation checks if the error is a PostgreSQL foreign key
// violation (23503), e.g. deleting a vehicle still referenced by lessons.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
