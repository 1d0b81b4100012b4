package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/campusworks/records-api/internal/models"
)

// defaultPageSize matches the page length the list endpoints document.
const defaultPageSize = 10

func normalizePage(page, size int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = defaultPageSize
	}
	return page, size, (page - 1) * size
}

// CollegeRepository manages persistence for college records.
type CollegeRepository struct {
	db *sqlx.DB
}

// NewCollegeRepository constructs a CollegeRepository.
func NewCollegeRepository(db *sqlx.DB) *CollegeRepository {
	return &CollegeRepository{db: db}
}

// List returns colleges matching the provided filters ordered by ID.
func (r *CollegeRepository) List(ctx context.Context, filter models.CollegeFilter) ([]models.College, int, error) {
	base := "FROM colleges"
	args := []interface{}{}
	if filter.Search != "" {
		base += " WHERE (LOWER(name) LIKE $1 OR LOWER(code) LIKE $1)"
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	_, size, offset := normalizePage(filter.Page, filter.PageSize)

	query := fmt.Sprintf("SELECT id, name, code %s ORDER BY id ASC LIMIT %d OFFSET %d", base, size, offset)
	var colleges []models.College
	if err := r.db.SelectContext(ctx, &colleges, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list colleges: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count colleges: %w", err)
	}
	return colleges, total, nil
}

// FindByID fetches a college by ID.
func (r *CollegeRepository) FindByID(ctx context.Context, id int64) (*models.College, error) {
	var college models.College
	if err := r.db.GetContext(ctx, &college, "SELECT id, name, code FROM colleges WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &college, nil
}

// Create inserts a new college and fills in its assigned ID.
func (r *CollegeRepository) Create(ctx context.Context, college *models.College) error {
	const query = "INSERT INTO colleges (name, code) VALUES ($1, $2) RETURNING id"
	if err := r.db.QueryRowxContext(ctx, query, college.Name, college.Code).Scan(&college.ID); err != nil {
		return fmt.Errorf("create college: %w", err)
	}
	return nil
}

// Update modifies an existing college.
func (r *CollegeRepository) Update(ctx context.Context, college *models.College) error {
	const query = "UPDATE colleges SET name = $2, code = $3 WHERE id = $1"
	if _, err := r.db.ExecContext(ctx, query, college.ID, college.Name, college.Code); err != nil {
		return fmt.Errorf("update college: %w", err)
	}
	return nil
}

// Delete removes a college. Foreign-key violations escape to the caller
// for conflict classification.
func (r *CollegeRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM colleges WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete college: %w", err)
	}
	return nil
}
