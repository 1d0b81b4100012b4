package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusworks/records-api/internal/models"
	appErrors "github.com/campusworks/records-api/pkg/errors"
)

type mockCollegeRepo struct {
	colleges   map[int64]models.College
	nextID     int64
	createErr  error
	deleteErr  error
	lastFilter models.CollegeFilter
	total      int
}

func (m *mockCollegeRepo) List(ctx context.Context, filter models.CollegeFilter) ([]models.College, int, error) {
	m.lastFilter = filter
	list := make([]models.College, 0, len(m.colleges))
	for _, c := range m.colleges {
		list = append(list, c)
	}
	return list, m.total, nil
}

func (m *mockCollegeRepo) FindByID(ctx context.Context, id int64) (*models.College, error) {
	if c, ok := m.colleges[id]; ok {
		return &c, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCollegeRepo) Create(ctx context.Context, college *models.College) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.colleges == nil {
		m.colleges = make(map[int64]models.College)
	}
	m.nextID++
	college.ID = m.nextID
	m.colleges[college.ID] = *college
	return nil
}

func (m *mockCollegeRepo) Update(ctx context.Context, college *models.College) error {
	m.colleges[college.ID] = *college
	return nil
}

func (m *mockCollegeRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.colleges, id)
	return nil
}

func TestCollegeServiceCreate(t *testing.T) {
	repo := &mockCollegeRepo{}
	svc := NewCollegeService(repo, validator.New(), zap.NewNop())

	college, err := svc.Create(context.Background(), CollegeRequest{Name: "Computer Science", Code: "CS"})
	require.NoError(t, err)
	assert.NotZero(t, college.ID)
	assert.Len(t, repo.colleges, 1)
}

func TestCollegeServiceCreateMissingName(t *testing.T) {
	svc := NewCollegeService(&mockCollegeRepo{}, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CollegeRequest{Code: "CS"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCollegeServiceCreateDuplicateCode(t *testing.T) {
	repo := &mockCollegeRepo{createErr: &pq.Error{Code: "23505", Constraint: "colleges_code_key"}}
	svc := NewCollegeService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CollegeRequest{Name: "Computer Science", Code: "CS"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
}

func TestCollegeServiceDeleteStillReferenced(t *testing.T) {
	repo := &mockCollegeRepo{
		colleges:  map[int64]models.College{1: {ID: 1, Name: "Computer Science", Code: "CS"}},
		deleteErr: &pq.Error{Code: "23503", Constraint: "classes_college_id_fkey"},
	}
	svc := NewCollegeService(repo, validator.New(), zap.NewNop())

	err := svc.Delete(context.Background(), 1)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
}

func TestCollegeServiceGetMissing(t *testing.T) {
	svc := NewCollegeService(&mockCollegeRepo{}, validator.New(), zap.NewNop())

	_, err := svc.Get(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCollegeServiceListPagination(t *testing.T) {
	repo := &mockCollegeRepo{total: 25}
	svc := NewCollegeService(repo, validator.New(), zap.NewNop())

	_, pagination, err := svc.List(context.Background(), models.CollegeFilter{Page: 2, PageSize: 10})
	require.NoError(t, err)
	require.NotNil(t, pagination)
	assert.Equal(t, 2, pagination.Page)
	assert.Equal(t, 10, pagination.PageSize)
	assert.Equal(t, 25, pagination.TotalCount)
}
