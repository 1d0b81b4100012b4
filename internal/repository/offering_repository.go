package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/campusworks/records-api/internal/models"
)

// OfferingRepository manages persistence for course offerings.
type OfferingRepository struct {
	db *sqlx.DB
}

// NewOfferingRepository constructs an OfferingRepository.
func NewOfferingRepository(db *sqlx.DB) *OfferingRepository {
	return &OfferingRepository{db: db}
}

const offeringColumns = `o.id, o.course_id, o.teacher_id, o.semester, o.year, o.classroom, o.class_time,
        c.name AS course_name, c.code AS course_code, t.name AS teacher_name`

const offeringJoins = "FROM course_offerings o JOIN courses c ON c.id = o.course_id JOIN teachers t ON t.id = o.teacher_id"

// List returns offerings matching the provided filters ordered by ID.
// Search matches course and teacher names; StudentID narrows the list to
// offerings the student has a score record for.
func (r *OfferingRepository) List(ctx context.Context, filter models.OfferingFilter) ([]models.OfferingDetail, int, error) {
	base := offeringJoins
	args := []interface{}{}
	conditions := []string{}

	if filter.StudentID != nil {
		base += " JOIN student_courses sc ON sc.offering_id = o.id"
		conditions = append(conditions, fmt.Sprintf("sc.student_id = $%d", len(args)+1))
		args = append(args, *filter.StudentID)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(c.name) LIKE $%d OR LOWER(t.name) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	if len(conditions) > 0 {
		base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))
	}

	_, size, offset := normalizePage(filter.Page, filter.PageSize)

	query := fmt.Sprintf("SELECT %s %s ORDER BY o.id ASC LIMIT %d OFFSET %d", offeringColumns, base, size, offset)
	var offerings []models.OfferingDetail
	if err := r.db.SelectContext(ctx, &offerings, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list offerings: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count offerings: %w", err)
	}
	return offerings, total, nil
}

// FindByID fetches an offering detail by ID.
func (r *OfferingRepository) FindByID(ctx context.Context, id int64) (*models.OfferingDetail, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE o.id = $1", offeringColumns, offeringJoins)
	var detail models.OfferingDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Create inserts a new offering and fills in its assigned ID.
func (r *OfferingRepository) Create(ctx context.Context, offering *models.Offering) error {
	const query = `INSERT INTO course_offerings (course_id, teacher_id, semester, year, classroom, class_time)
        VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query,
		offering.CourseID, offering.TeacherID, offering.Semester, offering.Year, offering.Classroom, offering.ClassTime,
	).Scan(&offering.ID)
	if err != nil {
		return fmt.Errorf("create offering: %w", err)
	}
	return nil
}

// Update modifies an existing offering.
func (r *OfferingRepository) Update(ctx context.Context, offering *models.Offering) error {
	const query = `UPDATE course_offerings SET course_id = $2, teacher_id = $3, semester = $4, year = $5, classroom = $6, class_time = $7 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query,
		offering.ID, offering.CourseID, offering.TeacherID, offering.Semester, offering.Year, offering.Classroom, offering.ClassTime,
	)
	if err != nil {
		return fmt.Errorf("update offering: %w", err)
	}
	return nil
}

// Delete removes an offering. Score rows referencing the offering surface
// a foreign-key violation to the caller.
func (r *OfferingRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM course_offerings WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete offering: %w", err)
	}
	return nil
}
