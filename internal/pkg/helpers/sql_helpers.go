package helpers

import "database/sql"

// GetNullString converts a string pointer to sql.NullString.
func GetNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// GetNullInt64 converts an int64 to sql.NullInt64, treating 0 as NULL.
func GetNullInt64(i int64) sql.NullInt64 {
	if i == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: i, Valid: true}
}
