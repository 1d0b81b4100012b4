package service

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/campusworks/records-api/internal/models"
	"github.com/campusworks/records-api/pkg/database"
	appErrors "github.com/campusworks/records-api/pkg/errors"
)

const dateLayout = "2006-01-02"

// parseDate coerces a YYYY-MM-DD string into a time value. Empty input
// yields nil for optional date columns.
func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid date, expected YYYY-MM-DD")
	}
	return &t, nil
}

// parseRequiredDate is parseDate for non-nullable date columns.
func parseRequiredDate(raw string) (time.Time, error) {
	t, err := parseDate(raw)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "date must not be empty")
	}
	return *t, nil
}

// parseInt coerces a numeric payload field. Clients submit foreign keys
// and years as either JSON numbers or numeric strings; anything else is a
// validation error naming the field.
func parseInt(raw json.Number, field string) (int, error) {
	v, err := strconv.Atoi(raw.String())
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("field %s must be numeric", field))
	}
	return v, nil
}

// parseID is parseInt for 64-bit surrogate keys.
func parseID(raw json.Number, field string) (int64, error) {
	v, err := strconv.ParseInt(raw.String(), 10, 64)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("field %s must be numeric", field))
	}
	return v, nil
}

// parseOptionalID coerces an optional foreign key; empty input yields nil.
func parseOptionalID(raw json.Number, field string) (*int64, error) {
	if raw.String() == "" {
		return nil, nil
	}
	v, err := parseID(raw, field)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// parseFloat coerces a decimal payload field such as course credit.
func parseFloat(raw json.Number, field string) (float64, error) {
	v, err := strconv.ParseFloat(raw.String(), 64)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("field %s must be numeric", field))
	}
	return v, nil
}

// notFoundOr maps a missing row to NotFound and anything else to an
// internal error with the given message.
func notFoundOr(err error, message string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, message)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

// writeError classifies storage failures on create/update paths: unique
// violations become conflicts with the supplied reason, everything else is
// internal. Classification relies on driver error codes, not message text.
func writeError(err error, conflictReason, internalMessage string) error {
	if database.IsUniqueViolation(err) {
		return appErrors.Clone(appErrors.ErrConflict, conflictReason)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, internalMessage)
}

// deleteError classifies storage failures on delete paths: foreign-key
// violations mean child rows still reference the record.
func deleteError(err error, conflictReason, internalMessage string) error {
	if database.IsForeignKeyViolation(err) {
		return appErrors.Clone(appErrors.ErrConflict, conflictReason)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, internalMessage)
}

func paginationFor(page, size, total int) *models.Pagination {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 10
	}
	return &models.Pagination{Page: page, PageSize: size, TotalCount: total}
}

// narrowToSelf applies the student visibility rule after authorization:
// a student caller only sees their own linked record. Staff callers pass
// through unchanged.
func narrowToSelf(identity *models.UserInfo) *int64 {
	if identity == nil || identity.Role != models.RoleStudent {
		return nil
	}
	if identity.RelatedID == nil {
		// Student accounts without a linked roster row see nothing.
		none := int64(-1)
		return &none
	}
	return identity.RelatedID
}
