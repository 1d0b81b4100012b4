package service

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusworks/records-api/internal/models"
	appErrors "github.com/campusworks/records-api/pkg/errors"
)

type classRepository interface {
	List(ctx context.Context, filter models.ClassFilter) ([]models.ClassDetail, int, error)
	FindByID(ctx context.Context, id int64) (*models.ClassDetail, error)
	Create(ctx context.Context, class *models.Class) error
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id int64) error
}

// ClassRequest holds the payload for creating or updating a class.
// Foreign keys and years arrive as strings from form-driven clients and
// are coerced before persistence.
type ClassRequest struct {
	Name          string      `json:"class_name" validate:"required"`
	Code          string      `json:"class_code" validate:"required"`
	CollegeID     json.Number `json:"college_id" validate:"required"`
	AdmissionYear json.Number `json:"admission_year" validate:"required"`
}

// ClassService handles class use-cases.
type ClassService struct {
	repo      classRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs the class service.
func NewClassService(repo classRepository, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, validator: validate, logger: logger}
}

// List returns classes and pagination metadata.
func (s *ClassService) List(ctx context.Context, filter models.ClassFilter) ([]models.ClassDetail, *models.Pagination, error) {
	classes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	return classes, paginationFor(filter.Page, filter.PageSize, total), nil
}

// Get returns a class by ID.
func (s *ClassService) Get(ctx context.Context, id int64) (*models.ClassDetail, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "class not found")
	}
	return class, nil
}

// Create registers a new class.
func (s *ClassService) Create(ctx context.Context, req ClassRequest) (*models.Class, error) {
	class, err := s.buildClass(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, writeError(err, "class code already used", "failed to create class")
	}
	return class, nil
}

// Update modifies an existing class.
func (s *ClassService) Update(ctx context.Context, id int64, req ClassRequest) (*models.Class, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, notFoundOr(err, "class not found")
	}
	class, err := s.buildClass(req)
	if err != nil {
		return nil, err
	}
	class.ID = id
	if err := s.repo.Update(ctx, class); err != nil {
		return nil, writeError(err, "class code already used", "failed to update class")
	}
	return class, nil
}

// Delete removes a class unless students still reference it.
func (s *ClassService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "class not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return deleteError(err, "class still has enrolled students", "failed to delete class")
	}
	return nil
}

func (s *ClassService) buildClass(req ClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}
	collegeID, err := parseID(req.CollegeID, "college_id")
	if err != nil {
		return nil, err
	}
	year, err := parseInt(req.AdmissionYear, "admission_year")
	if err != nil {
		return nil, err
	}
	return &models.Class{Name: req.Name, Code: req.Code, CollegeID: collegeID, AdmissionYear: year}, nil
}
