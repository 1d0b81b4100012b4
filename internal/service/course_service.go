package service

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusworks/records-api/internal/models"
	appErrors "github.com/campusworks/records-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.CourseDetail, int, error)
	FindByID(ctx context.Context, id int64) (*models.CourseDetail, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
}

// CourseRequest holds the payload for creating or updating a course.
type CourseRequest struct {
	Code      string      `json:"course_code" validate:"required"`
	Name      string      `json:"course_name" validate:"required"`
	Credit    json.Number `json:"credit" validate:"required"`
	Hours     json.Number `json:"hours" validate:"required"`
	TypeID    json.Number `json:"type_id" validate:"required"`
	CollegeID json.Number `json:"college_id" validate:"required"`
}

// CourseService handles course catalog use-cases.
type CourseService struct {
	repo      courseRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(repo courseRepository, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, validator: validate, logger: logger}
}

// List returns courses and pagination metadata. Student callers only see
// courses they are enrolled in.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter, caller *models.UserInfo) ([]models.CourseDetail, *models.Pagination, error) {
	filter.StudentID = narrowToSelf(caller)
	courses, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, paginationFor(filter.Page, filter.PageSize, total), nil
}

// Get returns detailed course information.
func (s *CourseService) Get(ctx context.Context, id int64) (*models.CourseDetail, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "course not found")
	}
	return course, nil
}

// Create adds a new course to the catalog.
func (s *CourseService) Create(ctx context.Context, req CourseRequest) (*models.Course, error) {
	course, err := s.buildCourse(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, writeError(err, "course code already used", "failed to create course")
	}
	return course, nil
}

// Update modifies an existing course.
func (s *CourseService) Update(ctx context.Context, id int64, req CourseRequest) (*models.Course, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, notFoundOr(err, "course not found")
	}
	course, err := s.buildCourse(req)
	if err != nil {
		return nil, err
	}
	course.ID = id
	if err := s.repo.Update(ctx, course); err != nil {
		return nil, writeError(err, "course code already used", "failed to update course")
	}
	return course, nil
}

// Delete removes a course unless offerings still reference it.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "course not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return deleteError(err, "course still has offerings", "failed to delete course")
	}
	return nil
}

func (s *CourseService) buildCourse(req CourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	credit, err := parseFloat(req.Credit, "credit")
	if err != nil {
		return nil, err
	}
	hours, err := parseInt(req.Hours, "hours")
	if err != nil {
		return nil, err
	}
	typeID, err := parseID(req.TypeID, "type_id")
	if err != nil {
		return nil, err
	}
	collegeID, err := parseID(req.CollegeID, "college_id")
	if err != nil {
		return nil, err
	}
	if credit <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "credit must be positive")
	}
	return &models.Course{
		Code:      req.Code,
		Name:      req.Name,
		Credit:    credit,
		Hours:     hours,
		TypeID:    typeID,
		CollegeID: collegeID,
	}, nil
}
