package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusworks/records-api/internal/models"
)

func TestScoreRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScoreRepository(db)

	value := 92.5
	rows := sqlmock.NewRows([]string{
		"id", "student_id", "offering_id", "score", "status",
		"course_name", "credit", "teacher_name", "semester", "year",
	}).
		AddRow(int64(2), int64(7), int64(4), value, "completed", "Algorithms", 4.0, "Dr. Chen", "fall", 2025).
		AddRow(int64(1), int64(7), int64(3), nil, "enrolling", "Calculus", 3.0, "Dr. Park", "spring", 2025)

	mock.ExpectQuery("SELECT sc.id, sc.student_id, sc.offering_id, sc.score, sc.status").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	scores, err := repo.ListByStudent(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	require.NotNil(t, scores[0].Score.Score)
	assert.Equal(t, 92.5, *scores[0].Score.Score)
	assert.Nil(t, scores[1].Score.Score)
	assert.Equal(t, "Algorithms", scores[0].CourseName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScoreRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScoreRepository(db)

	value := 88.0
	mock.ExpectExec(regexp.QuoteMeta("UPDATE student_courses SET score = $2, status = $3 WHERE id = $1")).
		WithArgs(int64(1), value, models.ScoreCompleted).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), 1, &value, models.ScoreCompleted))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScoreRepositoryUpdateClearsValue(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScoreRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE student_courses SET score = $2, status = $3 WHERE id = $1")).
		WithArgs(int64(1), nil, models.ScoreCancelled).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), 1, nil, models.ScoreCancelled))
	assert.NoError(t, mock.ExpectationsWereMet())
}
