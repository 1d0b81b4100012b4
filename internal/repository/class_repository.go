package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/campusworks/records-api/internal/models"
)

// ClassRepository manages persistence for class records.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a ClassRepository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

const classColumns = "c.id, c.name, c.code, c.college_id, c.admission_year, co.name AS college_name"

// List returns classes with their college names ordered by ID.
func (r *ClassRepository) List(ctx context.Context, filter models.ClassFilter) ([]models.ClassDetail, int, error) {
	base := "FROM classes c JOIN colleges co ON co.id = c.college_id"
	args := []interface{}{}
	if filter.Search != "" {
		base += " WHERE (LOWER(c.name) LIKE $1 OR LOWER(c.code) LIKE $1)"
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	_, size, offset := normalizePage(filter.Page, filter.PageSize)

	query := fmt.Sprintf("SELECT %s %s ORDER BY c.id ASC LIMIT %d OFFSET %d", classColumns, base, size, offset)
	var classes []models.ClassDetail
	if err := r.db.SelectContext(ctx, &classes, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list classes: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count classes: %w", err)
	}
	return classes, total, nil
}

// FindByID fetches a class detail by ID.
func (r *ClassRepository) FindByID(ctx context.Context, id int64) (*models.ClassDetail, error) {
	query := fmt.Sprintf("SELECT %s FROM classes c JOIN colleges co ON co.id = c.college_id WHERE c.id = $1", classColumns)
	var detail models.ClassDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Create inserts a new class and fills in its assigned ID.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	const query = `INSERT INTO classes (name, code, college_id, admission_year)
        VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, class.Name, class.Code, class.CollegeID, class.AdmissionYear).Scan(&class.ID); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// Update modifies an existing class.
func (r *ClassRepository) Update(ctx context.Context, class *models.Class) error {
	const query = `UPDATE classes SET name = $2, code = $3, college_id = $4, admission_year = $5 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, class.ID, class.Name, class.Code, class.CollegeID, class.AdmissionYear); err != nil {
		return fmt.Errorf("update class: %w", err)
	}
	return nil
}

// Delete removes a class. A class still referenced by students fails with
// a foreign-key violation surfaced to the caller.
func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM classes WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete class: %w", err)
	}
	return nil
}
