package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/authentikate/authentikate/internal/app/models"
	"github.com/authentikate/authentikate/internal/app/repositories"
	"github.com/authentikate/authentikate/internal/pkg/apperrors"
	"github.com/authentikate/authentikate/internal/pkg/csvutil"
	"github.com/authentikate/authentikate/internal/pkg/validation"
)

// EnrollStudentInput carries one student registration from the enrollment
// device.
type EnrollStudentInput struct {
	MatriculationNumber string
	Name                string
	DepartmentID        int64
	LevelID             int64
	FingerprintTemplate string
	Photo               *string
}

// BulkUploadResult summarizes one course-list upload.
type BulkUploadResult struct {
	Enrolled int
	Skipped  int
}

// StudentProfile is the enrollment-status response: the student plus every
// course the ledger holds for them.
type StudentProfile struct {
	Student *models.Student
	Courses []models.EnrolledCourse
}

// EnrollmentService manages student registration and the per-course
// enrollment ledger.
type EnrollmentService struct {
	studentStore    StudentStore
	enrollmentStore EnrollmentStore
	courseStore     CourseStore
	departmentStore DepartmentStore
	txRunner        TxRunner
	logger          zerolog.Logger
}

// NewEnrollmentService creates a new enrollment service instance.
func NewEnrollmentService(
	studentStore StudentStore,
	enrollmentStore EnrollmentStore,
	courseStore CourseStore,
	departmentStore DepartmentStore,
	txRunner TxRunner,
	logger zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		studentStore:    studentStore,
		enrollmentStore: enrollmentStore,
		courseStore:     courseStore,
		departmentStore: departmentStore,
		txRunner:        txRunner,
		logger:          logger,
	}
}

// Enroll registers one student in the acting admin's department. The
// department/level pair must be consistent, and a matriculation number can
// only be registered once.
func (s *EnrollmentService) Enroll(ctx context.Context, admin *models.Admin, input EnrollStudentInput) (*models.Student, error) {
	if !validation.IsValidMatricNumber(input.MatriculationNumber) {
		return nil, apperrors.NewBadRequestError("invalid matriculation number format")
	}
	if !validation.IsValidName(input.Name) {
		return nil, apperrors.NewBadRequestError("invalid student name")
	}
	if !validation.IsValidTemplate(input.FingerprintTemplate) {
		return nil, apperrors.NewBadRequestError("invalid fingerprint template")
	}

	if _, err := s.departmentStore.GetByID(ctx, input.DepartmentID); err != nil {
		if errors.Is(err, repositories.ErrDepartmentNotFound) {
			return nil, apperrors.NewBadRequestError("department does not exist")
		}
		return nil, fmt.Errorf("failed to load department: %w", err)
	}
	if _, err := s.departmentStore.GetLevel(ctx, input.LevelID, input.DepartmentID); err != nil {
		if errors.Is(err, repositories.ErrLevelNotFound) {
			return nil, apperrors.NewBadRequestError("level does not belong to the department")
		}
		return nil, fmt.Errorf("failed to load level: %w", err)
	}

	if input.DepartmentID != admin.DepartmentID {
		return nil, apperrors.NewForbiddenError("students can only be enrolled into your own department")
	}

	student := &models.Student{
		MatriculationNumber: input.MatriculationNumber,
		Name:                input.Name,
		DepartmentID:        input.DepartmentID,
		LevelID:             input.LevelID,
		FingerprintTemplate: input.FingerprintTemplate,
		Photo:               input.Photo,
	}
	if err := s.studentStore.Create(ctx, student); err != nil {
		if errors.Is(err, repositories.ErrStudentAlreadyExists) {
			return nil, apperrors.ErrStudentAlreadyExists
		}
		return nil, fmt.Errorf("failed to enroll student: %w", err)
	}

	s.logger.Info().
		Str("matric", student.MatriculationNumber).
		Int64("departmentId", student.DepartmentID).
		Msg("Student enrolled")
	return student, nil
}

// BulkUploadCourseList ingests a CSV course list for one course. A missing
// required column rejects the whole batch; rows for unknown students are
// skipped, a documented policy for course lists that mix departments.
// Re-uploads update the CA mark of existing enrollment records. The whole
// batch commits in one transaction.
func (s *EnrollmentService) BulkUploadCourseList(ctx context.Context, admin *models.Admin, courseID int64, r io.Reader) (*BulkUploadResult, error) {
	course, err := s.courseStore.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	if course.DepartmentID != admin.DepartmentID {
		return nil, apperrors.NewForbiddenError("course belongs to another department")
	}

	rows, err := csvutil.ReadCourseList(r)
	if err != nil {
		if errors.Is(err, csvutil.ErrMissingColumns) {
			return nil, apperrors.NewBadRequestError(err.Error())
		}
		return nil, apperrors.NewBadRequestError("could not parse the uploaded course list")
	}

	result := &BulkUploadResult{}
	err = s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for _, row := range rows {
			if _, err := s.studentStore.GetByMatric(ctx, row.MatriculationNumber); err != nil {
				if errors.Is(err, repositories.ErrStudentNotFound) {
					s.logger.Warn().
						Str("matric", row.MatriculationNumber).
						Int64("courseId", courseID).
						Msg("Skipping course-list row for unknown student")
					result.Skipped++
					continue
				}
				return fmt.Errorf("failed to look up student %s: %w", row.MatriculationNumber, err)
			}

			record := &models.EnrollmentRecord{
				CourseID:            courseID,
				MatriculationNumber: row.MatriculationNumber,
				CAMark:              row.CAMark,
			}
			if err := s.enrollmentStore.UpsertTx(ctx, tx, record); err != nil {
				return fmt.Errorf("failed to upsert enrollment for %s: %w", row.MatriculationNumber, err)
			}
			result.Enrolled++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("courseId", courseID).
		Int("enrolled", result.Enrolled).
		Int("skipped", result.Skipped).
		Msg("Course list uploaded")
	return result, nil
}

// EnrollmentStatus resolves a fingerprint capture to the student's profile
// and every course the enrollment ledger holds for them.
func (s *EnrollmentService) EnrollmentStatus(ctx context.Context, template string) (*StudentProfile, error) {
	student, err := s.studentStore.GetByFingerprint(ctx, template)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to match fingerprint: %w", err)
	}

	courses, err := s.enrollmentStore.GetCoursesByStudent(ctx, student.MatriculationNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to load enrolled courses: %w", err)
	}
	return &StudentProfile{Student: student, Courses: courses}, nil
}

// EnrollmentListCSV exports the students registered under a department and
// level as a CSV document. Admins can only export their own department.
func (s *EnrollmentService) EnrollmentListCSV(ctx context.Context, admin *models.Admin, departmentID, levelID int64) ([]byte, error) {
	if departmentID != admin.DepartmentID {
		return nil, apperrors.NewForbiddenError("you can only download lists for your own department")
	}

	students, err := s.studentStore.GetByDepartmentAndLevel(ctx, departmentID, levelID)
	if err != nil {
		return nil, fmt.Errorf("failed to load students: %w", err)
	}
	if len(students) == 0 {
		return nil, apperrors.NewResourceNotFoundError("no students found for this department and level")
	}

	var buf bytes.Buffer
	rows := make([][]string, 0, len(students))
	for _, st := range students {
		rows = append(rows, []string{st.MatriculationNumber, st.Name})
	}
	if err := csvutil.Write(&buf, []string{"matriculation_number", "name"}, rows); err != nil {
		return nil, fmt.Errorf("failed to write enrollment list: %w", err)
	}
	return buf.Bytes(), nil
}
