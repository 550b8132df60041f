package services

import (
	"context"
	"fmt"

	"github.com/authentikate/authentikate/internal/app/models"
)

// ReferenceService serves the static reference data the enrollment and
// session forms are populated from.
type ReferenceService struct {
	departmentStore DepartmentStore
	courseStore     CourseStore
}

// NewReferenceService creates a new reference service instance.
func NewReferenceService(departmentStore DepartmentStore, courseStore CourseStore) *ReferenceService {
	return &ReferenceService{
		departmentStore: departmentStore,
		courseStore:     courseStore,
	}
}

// ListDepartments returns every department with its school.
func (s *ReferenceService) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	departments, err := s.departmentStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return departments, nil
}

// ListLevels returns the levels of the acting admin's department.
func (s *ReferenceService) ListLevels(ctx context.Context, admin *models.Admin) ([]*models.Level, error) {
	levels, err := s.departmentStore.GetLevelsByDepartment(ctx, admin.DepartmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	return levels, nil
}

// ListCourses returns the courses of the acting admin's department.
func (s *ReferenceService) ListCourses(ctx context.Context, admin *models.Admin) ([]*models.Course, error) {
	courses, err := s.courseStore.GetByDepartment(ctx, admin.DepartmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}
