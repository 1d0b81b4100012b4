package database

import (
	"errors"

	"github.com/lib/pq"
)

// PostgreSQL error classes relevant to the API contract. Classification
// uses the structured SQLSTATE codes reported by the driver, never the
// error message text.
const (
	codeUniqueViolation     = pq.ErrorCode("23505")
	codeForeignKeyViolation = pq.ErrorCode("23503")
)

// IsUniqueViolation reports whether err is a unique-constraint violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == codeUniqueViolation
}

// IsForeignKeyViolation reports whether err is a foreign-key violation,
// e.g. deleting a parent row that child rows still reference.
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == codeForeignKeyViolation
}

// ConstraintName returns the violated constraint's name when the driver
// reports one, for conflict reason strings.
func ConstraintName(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}
