package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/authentikate/authentikate/internal/app/models"
	"github.com/authentikate/authentikate/internal/app/repositories"
	"github.com/authentikate/authentikate/internal/pkg/apperrors"
	"github.com/authentikate/authentikate/internal/pkg/clock"
)

// AuthenticationResult is what the exam-hall device receives after a
// successful (or idempotently repeated) authentication.
type AuthenticationResult struct {
	AlreadyAuthenticated bool
	MatriculationNumber  string
	Name                 string
	CAMark               *float64
	Photo                *string
	CourseName           string
}

// AttendanceService runs the attendance authentication state machine.
type AttendanceService struct {
	sessionStore    SessionStore
	studentStore    StudentStore
	enrollmentStore EnrollmentStore
	attendanceStore AttendanceStore
	errorLogStore   ErrorLogStore
	courseStore     CourseStore
	clock           clock.Clock
	logger          zerolog.Logger
}

// NewAttendanceService creates a new attendance service instance.
func NewAttendanceService(
	sessionStore SessionStore,
	studentStore StudentStore,
	enrollmentStore EnrollmentStore,
	attendanceStore AttendanceStore,
	errorLogStore ErrorLogStore,
	courseStore CourseStore,
	clk clock.Clock,
	logger zerolog.Logger,
) *AttendanceService {
	return &AttendanceService{
		sessionStore:    sessionStore,
		studentStore:    studentStore,
		enrollmentStore: enrollmentStore,
		attendanceStore: attendanceStore,
		errorLogStore:   errorLogStore,
		courseStore:     courseStore,
		clock:           clk,
		logger:          logger,
	}
}

// Authenticate evaluates one fingerprint capture against a session. The
// checks run in a fixed order; each failure category is distinct, and the
// biometric, enrollment and CA-mark failures are journaled before the error
// is returned. A journal write failure aborts the whole request.
func (s *AttendanceService) Authenticate(ctx context.Context, admin *models.Admin, sessionID int64, template string) (*AuthenticationResult, error) {
	session, err := s.sessionStore.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if session.AdminID != admin.ID {
		return nil, apperrors.NewForbiddenError("you are not the owner of this session")
	}

	// Window check runs before any identity work so fingerprints presented
	// outside the session window never touch the identity store.
	now := clock.Naive(s.clock.Now())
	if now.Before(session.StartTime) || now.After(session.EndTime) {
		return nil, apperrors.ErrOutsideWindow
	}

	student, err := s.studentStore.GetByFingerprint(ctx, template)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			if jerr := s.journal(ctx, session.ID, nil, models.ErrorTypeAuthFailed, "no student matched the captured fingerprint", now); jerr != nil {
				return nil, jerr
			}
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to match fingerprint: %w", err)
	}

	enrollment, err := s.enrollmentStore.GetByCourseAndStudent(ctx, session.CourseID, student.MatriculationNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrEnrollmentNotFound) {
			details := fmt.Sprintf("student %s is not enrolled in the session's course", student.MatriculationNumber)
			if jerr := s.journal(ctx, session.ID, &student.MatriculationNumber, models.ErrorTypeNotEnrolled, details, now); jerr != nil {
				return nil, jerr
			}
			return nil, apperrors.ErrStudentNotEnrolled
		}
		return nil, fmt.Errorf("failed to load enrollment: %w", err)
	}

	if enrollment.CAMark == nil || *enrollment.CAMark < 0 {
		details := "CA mark is missing"
		if enrollment.CAMark != nil {
			details = fmt.Sprintf("CA mark %.2f is negative", *enrollment.CAMark)
		}
		if jerr := s.journal(ctx, session.ID, &student.MatriculationNumber, models.ErrorTypeInvalidCAMark, details, now); jerr != nil {
			return nil, jerr
		}
		return nil, apperrors.ErrInvalidCAMark
	}

	course, err := s.courseStore.GetByID(ctx, session.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load course: %w", err)
	}

	result := &AuthenticationResult{
		MatriculationNumber: student.MatriculationNumber,
		Name:                student.Name,
		CAMark:              enrollment.CAMark,
		Photo:               student.Photo,
		CourseName:          course.Name,
	}

	_, err = s.attendanceStore.GetAuthenticated(ctx, session.ID, student.MatriculationNumber)
	if err == nil {
		result.AlreadyAuthenticated = true
		return result, nil
	}
	if !errors.Is(err, repositories.ErrAttendanceNotFound) {
		return nil, fmt.Errorf("failed to check attendance: %w", err)
	}

	record := &models.AttendanceRecord{
		SessionID:           session.ID,
		MatriculationNumber: student.MatriculationNumber,
		Authenticated:       true,
		Timestamp:           now,
	}
	if err := s.attendanceStore.Create(ctx, record); err != nil {
		// A concurrent identical request won the insert. The unique index
		// makes the loser indistinguishable from a repeat capture.
		if errors.Is(err, repositories.ErrAttendanceExists) {
			result.AlreadyAuthenticated = true
			return result, nil
		}
		return nil, fmt.Errorf("failed to record attendance: %w", err)
	}

	s.logger.Info().
		Int64("sessionId", session.ID).
		Str("matric", student.MatriculationNumber).
		Msg("Student authenticated")
	return result, nil
}

// journal appends one entry to the error journal. The journal is the audit
// trail for every rejected capture, so a write failure is fatal to the
// request rather than swallowed.
func (s *AttendanceService) journal(ctx context.Context, sessionID int64, matric *string, errType models.ErrorType, details string, now time.Time) error {
	entry := &models.ErrorLogEntry{
		SessionID:           sessionID,
		MatriculationNumber: matric,
		ErrorType:           errType,
		Details:             details,
		Timestamp:           now,
	}
	if err := s.errorLogStore.Append(ctx, entry); err != nil {
		s.logger.Error().Err(err).
			Int64("sessionId", sessionID).
			Str("errorType", string(errType)).
			Msg("Failed to journal authentication failure")
		return fmt.Errorf("failed to journal authentication failure: %w", err)
	}
	return nil
}
