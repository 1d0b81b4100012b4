package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusworks/records-api/internal/models"
	appErrors "github.com/campusworks/records-api/pkg/errors"
)

type mockStudentRepo struct {
	students   map[int64]models.Student
	nextID     int64
	lastFilter models.StudentFilter
	total      int
}

func (m *mockStudentRepo) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error) {
	m.lastFilter = filter
	details := make([]models.StudentDetail, 0, len(m.students))
	for _, s := range m.students {
		details = append(details, models.StudentDetail{Student: s})
	}
	return details, m.total, nil
}

func (m *mockStudentRepo) FindByID(ctx context.Context, id int64) (*models.StudentDetail, error) {
	if s, ok := m.students[id]; ok {
		return &models.StudentDetail{Student: s}, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentRepo) Create(ctx context.Context, student *models.Student) error {
	if m.students == nil {
		m.students = make(map[int64]models.Student)
	}
	m.nextID++
	student.ID = m.nextID
	m.students[student.ID] = *student
	return nil
}

func (m *mockStudentRepo) Update(ctx context.Context, student *models.Student) error {
	m.students[student.ID] = *student
	return nil
}

func (m *mockStudentRepo) Delete(ctx context.Context, id int64) error {
	delete(m.students, id)
	return nil
}

func validStudentRequest() StudentRequest {
	return StudentRequest{
		StudentNo:      "S2024001",
		Name:           "Alice",
		Gender:         "F",
		BirthDate:      "2004-05-17",
		EnrollmentDate: "2024-09-01",
		ClassID:        "3",
		Email:          "alice@example.com",
	}
}

func TestStudentServiceCreateDefaultsStatus(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	student, err := svc.Create(context.Background(), validStudentRequest())
	require.NoError(t, err)
	assert.Equal(t, models.StudentEnrolled, student.Status)
	assert.Equal(t, int64(3), student.ClassID)
	require.NotNil(t, student.BirthDate)
	assert.Equal(t, "2004-05-17", student.BirthDate.Format("2006-01-02"))
}

func TestStudentServiceCreateBadDate(t *testing.T) {
	svc := NewStudentService(&mockStudentRepo{}, validator.New(), zap.NewNop())

	req := validStudentRequest()
	req.EnrollmentDate = "01/09/2024"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestStudentServiceCreateUnknownStatus(t *testing.T) {
	svc := NewStudentService(&mockStudentRepo{}, validator.New(), zap.NewNop())

	req := validStudentRequest()
	req.Status = "paused"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestStudentServiceCreateNonNumericClass(t *testing.T) {
	svc := NewStudentService(&mockStudentRepo{}, validator.New(), zap.NewNop())

	req := validStudentRequest()
	req.ClassID = "abc"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestStudentServiceListNarrowsStudentCaller(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	related := int64(7)
	caller := &models.UserInfo{UserID: 2, Role: models.RoleStudent, RelatedID: &related}
	_, _, err := svc.List(context.Background(), models.StudentFilter{}, caller)
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.StudentID)
	assert.Equal(t, int64(7), *repo.lastFilter.StudentID)
}

func TestStudentServiceListStudentWithoutLink(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	caller := &models.UserInfo{UserID: 2, Role: models.RoleStudent}
	_, _, err := svc.List(context.Background(), models.StudentFilter{}, caller)
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.StudentID)
	// An unlinked student account matches no roster row.
	assert.Equal(t, int64(-1), *repo.lastFilter.StudentID)
}

func TestStudentServiceListStaffUnfiltered(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	caller := &models.UserInfo{UserID: 1, Role: models.RoleAdmin}
	_, _, err := svc.List(context.Background(), models.StudentFilter{}, caller)
	require.NoError(t, err)
	assert.Nil(t, repo.lastFilter.StudentID)
}

func TestStudentServiceUpdateMissing(t *testing.T) {
	svc := NewStudentService(&mockStudentRepo{}, validator.New(), zap.NewNop())

	_, err := svc.Update(context.Background(), 99, validStudentRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
