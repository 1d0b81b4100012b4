package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusworks/records-api/internal/models"
	appErrors "github.com/campusworks/records-api/pkg/errors"
)

type collegeRepository interface {
	List(ctx context.Context, filter models.CollegeFilter) ([]models.College, int, error)
	FindByID(ctx context.Context, id int64) (*models.College, error)
	Create(ctx context.Context, college *models.College) error
	Update(ctx context.Context, college *models.College) error
	Delete(ctx context.Context, id int64) error
}

// CollegeRequest holds the payload for creating or updating a college.
type CollegeRequest struct {
	Name string `json:"college_name" validate:"required"`
	Code string `json:"college_code" validate:"required"`
}

// CollegeService handles college use-cases.
type CollegeService struct {
	repo      collegeRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCollegeService constructs the college service.
func NewCollegeService(repo collegeRepository, validate *validator.Validate, logger *zap.Logger) *CollegeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CollegeService{repo: repo, validator: validate, logger: logger}
}

// List returns colleges and pagination metadata.
func (s *CollegeService) List(ctx context.Context, filter models.CollegeFilter) ([]models.College, *models.Pagination, error) {
	colleges, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list colleges")
	}
	return colleges, paginationFor(filter.Page, filter.PageSize, total), nil
}

// Get returns a college by ID.
func (s *CollegeService) Get(ctx context.Context, id int64) (*models.College, error) {
	college, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "college not found")
	}
	return college, nil
}

// Create registers a new college.
func (s *CollegeService) Create(ctx context.Context, req CollegeRequest) (*models.College, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid college payload")
	}
	college := &models.College{Name: req.Name, Code: req.Code}
	if err := s.repo.Create(ctx, college); err != nil {
		return nil, writeError(err, "college code already used", "failed to create college")
	}
	return college, nil
}

// Update modifies an existing college.
func (s *CollegeService) Update(ctx context.Context, id int64, req CollegeRequest) (*models.College, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid college payload")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, notFoundOr(err, "college not found")
	}
	college := &models.College{ID: id, Name: req.Name, Code: req.Code}
	if err := s.repo.Update(ctx, college); err != nil {
		return nil, writeError(err, "college code already used", "failed to update college")
	}
	return college, nil
}

// Delete removes a college unless classes, teachers, or courses still
// reference it.
func (s *CollegeService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "college not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return deleteError(err, "college is still referenced by classes, teachers, or courses", "failed to delete college")
	}
	return nil
}
