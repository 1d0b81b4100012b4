package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campusworks/records-api/internal/models"
)

// ScoreRepository manages persistence for enrollment-and-grade records.
type ScoreRepository struct {
	db *sqlx.DB
}

// NewScoreRepository constructs a ScoreRepository.
func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// ListByStudent returns every score record for a student with course and
// offering context, most recent term first.
func (r *ScoreRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.ScoreDetail, error) {
	const query = `SELECT sc.id, sc.student_id, sc.offering_id, sc.score, sc.status,
        c.name AS course_name, c.credit, t.name AS teacher_name, o.semester, o.year
        FROM student_courses sc
        JOIN course_offerings o ON o.id = sc.offering_id
        JOIN courses c ON c.id = o.course_id
        JOIN teachers t ON t.id = o.teacher_id
        WHERE sc.student_id = $1
        ORDER BY o.year DESC, o.semester DESC, sc.id ASC`
	var scores []models.ScoreDetail
	if err := r.db.SelectContext(ctx, &scores, query, studentID); err != nil {
		return nil, fmt.Errorf("list student scores: %w", err)
	}
	return scores, nil
}

// FindByID fetches a score record by ID.
func (r *ScoreRepository) FindByID(ctx context.Context, id int64) (*models.Score, error) {
	var score models.Score
	const query = "SELECT id, student_id, offering_id, score, status FROM student_courses WHERE id = $1"
	if err := r.db.GetContext(ctx, &score, query, id); err != nil {
		return nil, err
	}
	return &score, nil
}

// Create inserts a new score record and fills in its assigned ID. A
// duplicate (student, offering) pair surfaces as a unique violation.
func (r *ScoreRepository) Create(ctx context.Context, score *models.Score) error {
	const query = `INSERT INTO student_courses (student_id, offering_id, score, status)
        VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query,
		score.StudentID, score.OfferingID, score.Score, score.Status,
	).Scan(&score.ID)
	if err != nil {
		return fmt.Errorf("create score: %w", err)
	}
	return nil
}

// Update writes the score value and status in one statement.
func (r *ScoreRepository) Update(ctx context.Context, id int64, value *float64, status models.ScoreStatus) error {
	const query = "UPDATE student_courses SET score = $2, status = $3 WHERE id = $1"
	if _, err := r.db.ExecContext(ctx, query, id, value, status); err != nil {
		return fmt.Errorf("update score: %w", err)
	}
	return nil
}

// Delete removes a score record.
func (r *ScoreRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM student_courses WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete score: %w", err)
	}
	return nil
}
