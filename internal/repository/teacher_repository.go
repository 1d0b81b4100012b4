package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/campusworks/records-api/internal/models"
)

// TeacherRepository manages persistence for teacher records.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

const teacherColumns = `t.id, t.teacher_no, t.name, t.gender, t.birth_date, t.title_id, t.college_id, t.phone, t.email,
        co.name AS college_name, ti.name AS title_name`

const teacherJoins = "FROM teachers t JOIN colleges co ON co.id = t.college_id LEFT JOIN titles ti ON ti.id = t.title_id"

// List returns teachers matching the provided filters ordered by ID.
func (r *TeacherRepository) List(ctx context.Context, filter models.TeacherFilter) ([]models.TeacherDetail, int, error) {
	base := teacherJoins
	args := []interface{}{}
	if filter.Search != "" {
		base += " WHERE (LOWER(t.name) LIKE $1 OR LOWER(t.teacher_no) LIKE $1)"
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	_, size, offset := normalizePage(filter.Page, filter.PageSize)

	query := fmt.Sprintf("SELECT %s %s ORDER BY t.id ASC LIMIT %d OFFSET %d", teacherColumns, base, size, offset)
	var teachers []models.TeacherDetail
	if err := r.db.SelectContext(ctx, &teachers, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list teachers: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count teachers: %w", err)
	}
	return teachers, total, nil
}

// FindByID fetches a teacher detail by ID.
func (r *TeacherRepository) FindByID(ctx context.Context, id int64) (*models.TeacherDetail, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE t.id = $1", teacherColumns, teacherJoins)
	var detail models.TeacherDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Create inserts a new teacher and fills in its assigned ID.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	const query = `INSERT INTO teachers (teacher_no, name, gender, birth_date, title_id, college_id, phone, email)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query,
		teacher.TeacherNo, teacher.Name, teacher.Gender, teacher.BirthDate,
		teacher.TitleID, teacher.CollegeID, teacher.Phone, teacher.Email,
	).Scan(&teacher.ID)
	if err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}
	return nil
}

// Update modifies an existing teacher.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	const query = `UPDATE teachers SET teacher_no = $2, name = $3, gender = $4, birth_date = $5,
        title_id = $6, college_id = $7, phone = $8, email = $9 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query,
		teacher.ID, teacher.TeacherNo, teacher.Name, teacher.Gender, teacher.BirthDate,
		teacher.TitleID, teacher.CollegeID, teacher.Phone, teacher.Email,
	)
	if err != nil {
		return fmt.Errorf("update teacher: %w", err)
	}
	return nil
}

// Delete removes a teacher. Offerings referencing the teacher surface a
// foreign-key violation to the caller.
func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM teachers WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete teacher: %w", err)
	}
	return nil
}
