package service

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusworks/records-api/internal/models"
	appErrors "github.com/campusworks/records-api/pkg/errors"
)

type offeringRepository interface {
	List(ctx context.Context, filter models.OfferingFilter) ([]models.OfferingDetail, int, error)
	FindByID(ctx context.Context, id int64) (*models.OfferingDetail, error)
	Create(ctx context.Context, offering *models.Offering) error
	Update(ctx context.Context, offering *models.Offering) error
	Delete(ctx context.Context, id int64) error
}

// OfferingRequest holds the payload for creating or updating an offering.
type OfferingRequest struct {
	CourseID  json.Number `json:"course_id" validate:"required"`
	TeacherID json.Number `json:"teacher_id" validate:"required"`
	Semester  string      `json:"semester" validate:"required"`
	Year      json.Number `json:"year" validate:"required"`
	Classroom string      `json:"classroom"`
	ClassTime string      `json:"class_time"`
}

// OfferingService handles course offering use-cases.
type OfferingService struct {
	repo      offeringRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewOfferingService constructs the offering service.
func NewOfferingService(repo offeringRepository, validate *validator.Validate, logger *zap.Logger) *OfferingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OfferingService{repo: repo, validator: validate, logger: logger}
}

// List returns offerings and pagination metadata. Student callers only see
// offerings they are enrolled in.
func (s *OfferingService) List(ctx context.Context, filter models.OfferingFilter, caller *models.UserInfo) ([]models.OfferingDetail, *models.Pagination, error) {
	filter.StudentID = narrowToSelf(caller)
	offerings, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list offerings")
	}
	return offerings, paginationFor(filter.Page, filter.PageSize, total), nil
}

// Get returns detailed offering information.
func (s *OfferingService) Get(ctx context.Context, id int64) (*models.OfferingDetail, error) {
	offering, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "offering not found")
	}
	return offering, nil
}

// Create schedules a new course offering.
func (s *OfferingService) Create(ctx context.Context, req OfferingRequest) (*models.Offering, error) {
	offering, err := s.buildOffering(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, offering); err != nil {
		return nil, writeError(err, "offering already scheduled for this course, teacher, and term", "failed to create offering")
	}
	return offering, nil
}

// Update modifies an existing offering.
func (s *OfferingService) Update(ctx context.Context, id int64, req OfferingRequest) (*models.Offering, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, notFoundOr(err, "offering not found")
	}
	offering, err := s.buildOffering(req)
	if err != nil {
		return nil, err
	}
	offering.ID = id
	if err := s.repo.Update(ctx, offering); err != nil {
		return nil, writeError(err, "offering already scheduled for this course, teacher, and term", "failed to update offering")
	}
	return offering, nil
}

// Delete removes an offering unless enrollments still reference it.
func (s *OfferingService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "offering not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return deleteError(err, "offering still has enrolled students", "failed to delete offering")
	}
	return nil
}

func (s *OfferingService) buildOffering(req OfferingRequest) (*models.Offering, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid offering payload")
	}
	courseID, err := parseID(req.CourseID, "course_id")
	if err != nil {
		return nil, err
	}
	teacherID, err := parseID(req.TeacherID, "teacher_id")
	if err != nil {
		return nil, err
	}
	year, err := parseInt(req.Year, "year")
	if err != nil {
		return nil, err
	}
	return &models.Offering{
		CourseID:  courseID,
		TeacherID: teacherID,
		Semester:  req.Semester,
		Year:      year,
		Classroom: req.Classroom,
		ClassTime: req.ClassTime,
	}, nil
}
