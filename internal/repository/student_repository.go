package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/campusworks/records-api/internal/models"
)

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `s.id, s.student_no, s.name, s.gender, s.birth_date, s.enrollment_date,
        s.class_id, s.address, s.phone, s.email, s.status,
        c.name AS class_name, co.name AS college_name`

const studentJoins = "FROM students s JOIN classes c ON c.id = s.class_id JOIN colleges co ON co.id = c.college_id"

// List returns students matching the provided filters ordered by ID.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error) {
	base := studentJoins
	args := []interface{}{}
	conditions := []string{}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(s.name) LIKE $%d OR LOWER(s.student_no) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.StudentID != nil {
		conditions = append(conditions, fmt.Sprintf("s.id = $%d", len(args)+1))
		args = append(args, *filter.StudentID)
	}
	if len(conditions) > 0 {
		base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))
	}

	_, size, offset := normalizePage(filter.Page, filter.PageSize)

	query := fmt.Sprintf("SELECT %s %s ORDER BY s.id ASC LIMIT %d OFFSET %d", studentColumns, base, size, offset)
	var students []models.StudentDetail
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// FindByID fetches a student detail by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.StudentDetail, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE s.id = $1", studentColumns, studentJoins)
	var detail models.StudentDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Create inserts a new student and fills in its assigned ID. Duplicate
// student numbers surface as unique violations.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	const query = `INSERT INTO students (student_no, name, gender, birth_date, enrollment_date, class_id, address, phone, email, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query,
		student.StudentNo, student.Name, student.Gender, student.BirthDate, student.EnrollmentDate,
		student.ClassID, student.Address, student.Phone, student.Email, student.Status,
	).Scan(&student.ID)
	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update modifies an existing student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	const query = `UPDATE students SET student_no = $2, name = $3, gender = $4, birth_date = $5, enrollment_date = $6,
        class_id = $7, address = $8, phone = $9, email = $10, status = $11 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query,
		student.ID, student.StudentNo, student.Name, student.Gender, student.BirthDate, student.EnrollmentDate,
		student.ClassID, student.Address, student.Phone, student.Email, student.Status,
	)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// Delete removes a student. Score rows referencing the student surface a
// foreign-key violation to the caller.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM students WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return nil
}
