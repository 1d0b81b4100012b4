package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/campusworks/records-api/internal/models"
)

// CourseRepository manages persistence for catalog courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

const courseColumns = `c.id, c.code, c.name, c.credit, c.hours, c.type_id, c.college_id,
        ct.name AS type_name, co.name AS college_name`

const courseJoins = "FROM courses c JOIN course_types ct ON ct.id = c.type_id JOIN colleges co ON co.id = c.college_id"

// List returns courses matching the provided filters ordered by ID. When
// StudentID is set the list narrows to courses that student has a score
// record for.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.CourseDetail, int, error) {
	base := courseJoins
	args := []interface{}{}
	conditions := []string{}

	if filter.StudentID != nil {
		base += " JOIN course_offerings o ON o.course_id = c.id JOIN student_courses sc ON sc.offering_id = o.id"
		conditions = append(conditions, fmt.Sprintf("sc.student_id = $%d", len(args)+1))
		args = append(args, *filter.StudentID)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(c.name) LIKE $%d OR LOWER(c.code) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	if len(conditions) > 0 {
		base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))
	}

	_, size, offset := normalizePage(filter.Page, filter.PageSize)

	query := fmt.Sprintf("SELECT DISTINCT %s %s ORDER BY c.id ASC LIMIT %d OFFSET %d", courseColumns, base, size, offset)
	var courses []models.CourseDetail
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(DISTINCT c.id) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}
	return courses, total, nil
}

// FindByID fetches a course detail by ID.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.CourseDetail, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE c.id = $1", courseColumns, courseJoins)
	var detail models.CourseDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Create inserts a new course and fills in its assigned ID.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	const query = `INSERT INTO courses (code, name, credit, hours, type_id, college_id)
        VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query,
		course.Code, course.Name, course.Credit, course.Hours, course.TypeID, course.CollegeID,
	).Scan(&course.ID)
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// Update modifies an existing course.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	const query = `UPDATE courses SET code = $2, name = $3, credit = $4, hours = $5, type_id = $6, college_id = $7 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query,
		course.ID, course.Code, course.Name, course.Credit, course.Hours, course.TypeID, course.CollegeID,
	)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return nil
}

// Delete removes a course. Offerings referencing the course surface a
// foreign-key violation to the caller.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM courses WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return nil
}
