package service

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusworks/records-api/internal/models"
	appErrors "github.com/campusworks/records-api/pkg/errors"
)

type scoreRepository interface {
	ListByStudent(ctx context.Context, studentID int64) ([]models.ScoreDetail, error)
	FindByID(ctx context.Context, id int64) (*models.Score, error)
	Create(ctx context.Context, score *models.Score) error
	Update(ctx context.Context, id int64, value *float64, status models.ScoreStatus) error
	Delete(ctx context.Context, id int64) error
}

// ScoreCreateRequest enrolls a student in an offering, optionally with an
// immediate grade.
type ScoreCreateRequest struct {
	StudentID  json.Number `json:"student_id" validate:"required"`
	OfferingID json.Number `json:"offering_id" validate:"required"`
	Score      json.Number `json:"score"`
	Status     string      `json:"status" validate:"required"`
}

// ScoreUpdateRequest changes the grade or status of an existing record.
// Both fields are optional; a grade submitted alone marks the record
// completed.
type ScoreUpdateRequest struct {
	Score  json.Number `json:"score"`
	Status string      `json:"status"`
}

// ScoreService enforces the grade lifecycle: a score value is only held by
// completed records, and completing a record requires a value in [0, 100].
type ScoreService struct {
	repo      scoreRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScoreService constructs the score service.
func NewScoreService(repo scoreRepository, validate *validator.Validate, logger *zap.Logger) *ScoreService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScoreService{repo: repo, validator: validate, logger: logger}
}

// ListByStudent returns every score record for one student, most recent
// term first.
func (s *ScoreService) ListByStudent(ctx context.Context, studentID int64) ([]models.ScoreDetail, error) {
	scores, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list scores")
	}
	return scores, nil
}

// Create enrolls a student in an offering. The caller states the status
// explicitly; completed records must carry a grade, all others never do.
func (s *ScoreService) Create(ctx context.Context, req ScoreCreateRequest) (*models.Score, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid score payload")
	}
	studentID, err := parseID(req.StudentID, "student_id")
	if err != nil {
		return nil, err
	}
	offeringID, err := parseID(req.OfferingID, "offering_id")
	if err != nil {
		return nil, err
	}
	status := models.ScoreStatus(req.Status)
	value, err := s.resolveGrade(req.Score, status)
	if err != nil {
		return nil, err
	}
	score := &models.Score{
		StudentID:  studentID,
		OfferingID: offeringID,
		Score:      value,
		Status:     status,
	}
	if err := s.repo.Create(ctx, score); err != nil {
		return nil, writeError(err, "student already enrolled in this offering", "failed to create score record")
	}
	return score, nil
}

// Update applies a grade or status change. A grade without a status marks
// the record completed; a status change away from completed clears any
// stored grade.
func (s *ScoreService) Update(ctx context.Context, id int64, req ScoreUpdateRequest) (*models.Score, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "score record not found")
	}
	if req.Score == "" && req.Status == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "score or status is required")
	}

	status := current.Status
	if req.Status != "" {
		status = models.ScoreStatus(req.Status)
	} else if req.Score != "" {
		// Recording a grade alone closes out the enrollment.
		status = models.ScoreCompleted
	}
	value, err := s.resolveGrade(req.Score, status)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, value, status); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update score record")
	}
	current.Score = value
	current.Status = status
	return current, nil
}

// Delete removes a score record.
func (s *ScoreService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "score record not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete score record")
	}
	return nil
}

// resolveGrade validates the submitted grade against the target status.
func (s *ScoreService) resolveGrade(raw json.Number, status models.ScoreStatus) (*float64, error) {
	if !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown score status")
	}
	if status != models.ScoreCompleted {
		return nil, nil
	}
	if raw == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "a completed record requires a score")
	}
	value, err := parseFloat(raw, "score")
	if err != nil {
		return nil, err
	}
	if value < 0 || value > 100 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "score must be between 0 and 100")
	}
	return &value, nil
}
