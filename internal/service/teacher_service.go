package service

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusworks/records-api/internal/models"
	appErrors "github.com/campusworks/records-api/pkg/errors"
)

type teacherRepository interface {
	List(ctx context.Context, filter models.TeacherFilter) ([]models.TeacherDetail, int, error)
	FindByID(ctx context.Context, id int64) (*models.TeacherDetail, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id int64) error
}

// TeacherRequest holds the payload for creating or updating a teacher.
type TeacherRequest struct {
	TeacherNo string      `json:"teacher_no" validate:"required"`
	Name      string      `json:"name" validate:"required"`
	Gender    string      `json:"gender" validate:"required"`
	BirthDate string      `json:"birth_date"`
	TitleID   json.Number `json:"title_id"`
	CollegeID json.Number `json:"college_id" validate:"required"`
	Phone     string      `json:"phone"`
	Email     string      `json:"email"`
}

// TeacherService handles teacher use-cases.
type TeacherService struct {
	repo      teacherRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs the teacher service.
func NewTeacherService(repo teacherRepository, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{repo: repo, validator: validate, logger: logger}
}

// List returns teachers and pagination metadata.
func (s *TeacherService) List(ctx context.Context, filter models.TeacherFilter) ([]models.TeacherDetail, *models.Pagination, error) {
	teachers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teachers")
	}
	return teachers, paginationFor(filter.Page, filter.PageSize, total), nil
}

// Get returns detailed teacher information.
func (s *TeacherService) Get(ctx context.Context, id int64) (*models.TeacherDetail, error) {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "teacher not found")
	}
	return teacher, nil
}

// Create registers a new teacher.
func (s *TeacherService) Create(ctx context.Context, req TeacherRequest) (*models.Teacher, error) {
	teacher, err := s.buildTeacher(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, teacher); err != nil {
		return nil, writeError(err, "teacher number already used", "failed to create teacher")
	}
	return teacher, nil
}

// Update modifies an existing teacher record.
func (s *TeacherService) Update(ctx context.Context, id int64, req TeacherRequest) (*models.Teacher, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, notFoundOr(err, "teacher not found")
	}
	teacher, err := s.buildTeacher(req)
	if err != nil {
		return nil, err
	}
	teacher.ID = id
	if err := s.repo.Update(ctx, teacher); err != nil {
		return nil, writeError(err, "teacher number already used", "failed to update teacher")
	}
	return teacher, nil
}

// Delete removes a teacher unless course offerings still reference them.
func (s *TeacherService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "teacher not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return deleteError(err, "teacher still has course offerings", "failed to delete teacher")
	}
	return nil
}

func (s *TeacherService) buildTeacher(req TeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}
	collegeID, err := parseID(req.CollegeID, "college_id")
	if err != nil {
		return nil, err
	}
	titleID, err := parseOptionalID(req.TitleID, "title_id")
	if err != nil {
		return nil, err
	}
	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		return nil, err
	}
	return &models.Teacher{
		TeacherNo: req.TeacherNo,
		Name:      req.Name,
		Gender:    req.Gender,
		BirthDate: birthDate,
		TitleID:   titleID,
		CollegeID: collegeID,
		Phone:     req.Phone,
		Email:     req.Email,
	}, nil
}
