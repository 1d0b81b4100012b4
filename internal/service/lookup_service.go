package service

import (
	"context"

	"github.com/campusworks/records-api/internal/models"
	appErrors "github.com/campusworks/records-api/pkg/errors"
)

type lookupRepository interface {
	ListTitles(ctx context.Context) ([]models.Title, error)
	ListCourseTypes(ctx context.Context) ([]models.CourseType, error)
}

// LookupService serves the title and course-type lookup lists.
type LookupService struct {
	repo lookupRepository
}

// NewLookupService constructs the lookup service.
func NewLookupService(repo lookupRepository) *LookupService {
	return &LookupService{repo: repo}
}

// Titles returns all teacher titles.
func (s *LookupService) Titles(ctx context.Context) ([]models.Title, error) {
	titles, err := s.repo.ListTitles(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list titles")
	}
	return titles, nil
}

// CourseTypes returns all course types.
func (s *LookupService) CourseTypes(ctx context.Context) ([]models.CourseType, error) {
	types, err := s.repo.ListCourseTypes(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list course types")
	}
	return types, nil
}
