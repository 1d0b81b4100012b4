package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusworks/records-api/internal/models"
	appErrors "github.com/campusworks/records-api/pkg/errors"
)

type mockScoreRepo struct {
	scores    map[int64]models.Score
	nextID    int64
	createErr error
}

func (m *mockScoreRepo) ListByStudent(ctx context.Context, studentID int64) ([]models.ScoreDetail, error) {
	var details []models.ScoreDetail
	for _, s := range m.scores {
		if s.StudentID == studentID {
			details = append(details, models.ScoreDetail{Score: s})
		}
	}
	return details, nil
}

func (m *mockScoreRepo) FindByID(ctx context.Context, id int64) (*models.Score, error) {
	if s, ok := m.scores[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockScoreRepo) Create(ctx context.Context, score *models.Score) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.scores == nil {
		m.scores = make(map[int64]models.Score)
	}
	m.nextID++
	score.ID = m.nextID
	m.scores[score.ID] = *score
	return nil
}

func (m *mockScoreRepo) Update(ctx context.Context, id int64, value *float64, status models.ScoreStatus) error {
	s := m.scores[id]
	s.Score = value
	s.Status = status
	m.scores[id] = s
	return nil
}

func (m *mockScoreRepo) Delete(ctx context.Context, id int64) error {
	delete(m.scores, id)
	return nil
}

func newScoreFixture() (*ScoreService, *mockScoreRepo) {
	repo := &mockScoreRepo{}
	return NewScoreService(repo, validator.New(), zap.NewNop()), repo
}

func TestScoreServiceCreateEnrolling(t *testing.T) {
	svc, _ := newScoreFixture()

	score, err := svc.Create(context.Background(), ScoreCreateRequest{
		StudentID: "7", OfferingID: "4", Status: "enrolling",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ScoreEnrolling, score.Status)
	assert.Nil(t, score.Score)
}

func TestScoreServiceCreateMissingStatus(t *testing.T) {
	svc, _ := newScoreFixture()

	_, err := svc.Create(context.Background(), ScoreCreateRequest{StudentID: "7", OfferingID: "4"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestScoreServiceCreateCompletedWithGrade(t *testing.T) {
	svc, _ := newScoreFixture()

	score, err := svc.Create(context.Background(), ScoreCreateRequest{
		StudentID: "7", OfferingID: "4", Status: "completed", Score: "92.5",
	})
	require.NoError(t, err)
	require.NotNil(t, score.Score)
	assert.Equal(t, 92.5, *score.Score)
}

func TestScoreServiceCreateCompletedWithoutGrade(t *testing.T) {
	svc, _ := newScoreFixture()

	_, err := svc.Create(context.Background(), ScoreCreateRequest{
		StudentID: "7", OfferingID: "4", Status: "completed",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestScoreServiceCreateDropsGradeForEnrolling(t *testing.T) {
	svc, _ := newScoreFixture()

	score, err := svc.Create(context.Background(), ScoreCreateRequest{
		StudentID: "7", OfferingID: "4", Status: "enrolling", Score: "80",
	})
	require.NoError(t, err)
	// Only completed records hold a grade.
	assert.Nil(t, score.Score)
}

func TestScoreServiceCreateGradeOutOfRange(t *testing.T) {
	svc, _ := newScoreFixture()

	_, err := svc.Create(context.Background(), ScoreCreateRequest{
		StudentID: "7", OfferingID: "4", Status: "completed", Score: "101",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestScoreServiceCreateDuplicateEnrollment(t *testing.T) {
	repo := &mockScoreRepo{createErr: &pq.Error{Code: "23505", Constraint: "student_courses_student_id_offering_id_key"}}
	svc := NewScoreService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), ScoreCreateRequest{StudentID: "7", OfferingID: "4", Status: "enrolling"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestScoreServiceUpdateGradeAloneCompletes(t *testing.T) {
	svc, repo := newScoreFixture()
	repo.scores = map[int64]models.Score{1: {ID: 1, StudentID: 7, OfferingID: 4, Status: models.ScoreEnrolling}}

	score, err := svc.Update(context.Background(), 1, ScoreUpdateRequest{Score: "88"})
	require.NoError(t, err)
	assert.Equal(t, models.ScoreCompleted, score.Status)
	require.NotNil(t, score.Score)
	assert.Equal(t, 88.0, *score.Score)
}

func TestScoreServiceUpdateCancelClearsGrade(t *testing.T) {
	svc, repo := newScoreFixture()
	value := 88.0
	repo.scores = map[int64]models.Score{1: {ID: 1, StudentID: 7, OfferingID: 4, Score: &value, Status: models.ScoreCompleted}}

	score, err := svc.Update(context.Background(), 1, ScoreUpdateRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, models.ScoreCancelled, score.Status)
	assert.Nil(t, score.Score)
	assert.Nil(t, repo.scores[1].Score)
}

func TestScoreServiceUpdateEmptyRequest(t *testing.T) {
	svc, repo := newScoreFixture()
	repo.scores = map[int64]models.Score{1: {ID: 1, StudentID: 7, OfferingID: 4, Status: models.ScoreEnrolling}}

	_, err := svc.Update(context.Background(), 1, ScoreUpdateRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestScoreServiceUpdateUnknownStatus(t *testing.T) {
	svc, repo := newScoreFixture()
	repo.scores = map[int64]models.Score{1: {ID: 1, StudentID: 7, OfferingID: 4, Status: models.ScoreEnrolling}}

	_, err := svc.Update(context.Background(), 1, ScoreUpdateRequest{Status: "finished"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestScoreServiceUpdateMissingRecord(t *testing.T) {
	svc, _ := newScoreFixture()

	_, err := svc.Update(context.Background(), 42, ScoreUpdateRequest{Score: "70"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestScoreServiceDelete(t *testing.T) {
	svc, repo := newScoreFixture()
	repo.scores = map[int64]models.Score{1: {ID: 1, StudentID: 7, OfferingID: 4, Status: models.ScoreEnrolling}}

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Empty(t, repo.scores)
}
