package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campusworks/records-api/internal/models"
)

// LookupRepository serves the small read-mostly lookup tables.
type LookupRepository struct {
	db *sqlx.DB
}

// NewLookupRepository constructs a LookupRepository.
func NewLookupRepository(db *sqlx.DB) *LookupRepository {
	return &LookupRepository{db: db}
}

// ListTitles returns all teacher titles ordered by ID.
func (r *LookupRepository) ListTitles(ctx context.Context) ([]models.Title, error) {
	var titles []models.Title
	if err := r.db.SelectContext(ctx, &titles, "SELECT id, name, code FROM titles ORDER BY id ASC"); err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}
	return titles, nil
}

// ListCourseTypes returns all course types ordered by ID.
func (r *LookupRepository) ListCourseTypes(ctx context.Context) ([]models.CourseType, error) {
	var types []models.CourseType
	if err := r.db.SelectContext(ctx, &types, "SELECT id, name, code FROM course_types ORDER BY id ASC"); err != nil {
		return nil, fmt.Errorf("list course types: %w", err)
	}
	return types, nil
}
