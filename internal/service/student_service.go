package service

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusworks/records-api/internal/models"
	appErrors "github.com/campusworks/records-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error)
	FindByID(ctx context.Context, id int64) (*models.StudentDetail, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

// StudentRequest holds the payload for creating or updating a student.
type StudentRequest struct {
	StudentNo      string      `json:"student_no" validate:"required"`
	Name           string      `json:"name" validate:"required"`
	Gender         string      `json:"gender" validate:"required"`
	BirthDate      string      `json:"birth_date"`
	EnrollmentDate string      `json:"enrollment_date" validate:"required"`
	ClassID        json.Number `json:"class_id" validate:"required"`
	Address        string      `json:"address"`
	Phone          string      `json:"phone"`
	Email          string      `json:"email"`
	Status         string      `json:"status"`
}

// StudentService handles student use-cases, including the student-role
// visibility narrowing applied after authorization.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// List returns students and pagination metadata. Student callers only see
// their own record.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter, caller *models.UserInfo) ([]models.StudentDetail, *models.Pagination, error) {
	filter.StudentID = narrowToSelf(caller)
	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	return students, paginationFor(filter.Page, filter.PageSize, total), nil
}

// Get returns detailed student information.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.StudentDetail, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "student not found")
	}
	return student, nil
}

// Create registers a new student. Status defaults to enrolled.
func (s *StudentService) Create(ctx context.Context, req StudentRequest) (*models.Student, error) {
	student, err := s.buildStudent(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, writeError(err, "student number already used", "failed to create student")
	}
	return student, nil
}

// Update modifies an existing student record.
func (s *StudentService) Update(ctx context.Context, id int64, req StudentRequest) (*models.Student, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, notFoundOr(err, "student not found")
	}
	student, err := s.buildStudent(req)
	if err != nil {
		return nil, err
	}
	student.ID = id
	if err := s.repo.Update(ctx, student); err != nil {
		return nil, writeError(err, "student number already used", "failed to update student")
	}
	return student, nil
}

// Delete removes a student unless score records still reference them.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "student not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return deleteError(err, "student still has score records", "failed to delete student")
	}
	return nil
}

func (s *StudentService) buildStudent(req StudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	classID, err := parseID(req.ClassID, "class_id")
	if err != nil {
		return nil, err
	}
	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		return nil, err
	}
	enrollmentDate, err := parseRequiredDate(req.EnrollmentDate)
	if err != nil {
		return nil, err
	}
	status := models.StudentStatus(req.Status)
	if req.Status == "" {
		status = models.StudentEnrolled
	}
	if !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown student status")
	}
	return &models.Student{
		StudentNo:      req.StudentNo,
		Name:           req.Name,
		Gender:         req.Gender,
		BirthDate:      birthDate,
		EnrollmentDate: enrollmentDate,
		ClassID:        classID,
		Address:        req.Address,
		Phone:          req.Phone,
		Email:          req.Email,
		Status:         status,
	}, nil
}
