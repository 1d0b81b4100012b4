package repository

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusworks/records-api/internal/models"
)

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		name       string
		page, size int
		wantPage   int
		wantSize   int
		wantOffset int
	}{
		{"defaults", 0, 0, 1, 10, 0},
		{"first page", 1, 10, 1, 10, 0},
		{"third page", 3, 10, 3, 10, 20},
		{"past the end", 4, 10, 4, 10, 30},
		{"oversized clamped", 2, 500, 2, 10, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, size, offset := normalizePage(tc.page, tc.size)
			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantSize, size)
			assert.Equal(t, tc.wantOffset, offset)
		})
	}
}

func collegeRows(names ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "code"})
	for i, name := range names {
		rows.AddRow(int64(i+1), name, fmt.Sprintf("C%02d", i+1))
	}
	return rows
}

func TestCollegeRepositoryListThirdPage(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCollegeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, code FROM colleges ORDER BY id ASC LIMIT 10 OFFSET 20")).
		WillReturnRows(collegeRows("Physics", "Chemistry", "Biology", "History", "Music"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM colleges")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	colleges, total, err := repo.List(context.Background(), models.CollegeFilter{Page: 3, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, colleges, 5)
	assert.Equal(t, 25, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollegeRepositoryListPastLastPage(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCollegeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, code FROM colleges ORDER BY id ASC LIMIT 10 OFFSET 30")).
		WillReturnRows(collegeRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM colleges")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	colleges, total, err := repo.List(context.Background(), models.CollegeFilter{Page: 4, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, colleges)
	assert.Equal(t, 25, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
