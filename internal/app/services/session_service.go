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

// SessionService manages exam session registration and listing.
type SessionService struct {
	sessionStore SessionStore
	courseStore  CourseStore
	clock        clock.Clock
	logger       zerolog.Logger
}

// NewSessionService creates a new session service instance.
func NewSessionService(sessionStore SessionStore, courseStore CourseStore, clk clock.Clock, logger zerolog.Logger) *SessionService {
	return &SessionService{
		sessionStore: sessionStore,
		courseStore:  courseStore,
		clock:        clk,
		logger:       logger,
	}
}

// CreateSession registers a new exam session for a course in the acting
// admin's department. Windows are closed intervals of naive local time; two
// sessions for the same course must not overlap.
func (s *SessionService) CreateSession(ctx context.Context, admin *models.Admin, courseCode string, startTime, endTime time.Time) (*models.ExamSession, error) {
	course, err := s.courseStore.GetByCode(ctx, courseCode)
	if err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}

	if course.DepartmentID != admin.DepartmentID {
		return nil, apperrors.NewForbiddenError("course belongs to another department")
	}

	start := clock.Naive(startTime)
	end := clock.Naive(endTime)
	if !start.Before(end) {
		return nil, apperrors.NewBadRequestError("session start time must be before end time")
	}

	overlaps, err := s.sessionStore.HasOverlap(ctx, course.ID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to check session overlap: %w", err)
	}
	if overlaps {
		return nil, apperrors.ErrSessionOverlap
	}

	session := &models.ExamSession{
		CourseID:   course.ID,
		AdminID:    admin.ID,
		StartTime:  start,
		EndTime:    end,
		CourseCode: course.Code,
	}
	if err := s.sessionStore.Create(ctx, session); err != nil {
		// The exclusion constraint closes the gap between the overlap check
		// and the insert.
		if errors.Is(err, repositories.ErrSessionOverlap) {
			return nil, apperrors.ErrSessionOverlap
		}
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info().
		Int64("sessionId", session.ID).
		Str("courseCode", course.Code).
		Time("start", start).
		Time("end", end).
		Msg("Exam session created")
	return session, nil
}

// ListActiveSessions purges every session whose window has already closed,
// then returns the acting admin's sessions that are still open. The purge is
// system-wide, not scoped to the admin, so stale sessions never accumulate.
func (s *SessionService) ListActiveSessions(ctx context.Context, admin *models.Admin) ([]*models.ExamSession, error) {
	now := clock.Naive(s.clock.Now())

	purged, err := s.sessionStore.DeleteExpired(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to purge expired sessions: %w", err)
	}
	if purged > 0 {
		s.logger.Info().Int64("count", purged).Msg("Purged expired exam sessions")
	}

	sessions, err := s.sessionStore.ListActiveByAdmin(ctx, admin.ID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list active sessions: %w", err)
	}
	return sessions, nil
}

// GetOwnedSession loads a session and verifies the acting admin owns it.
// Reporting surfaces share this check with the authenticator.
func (s *SessionService) GetOwnedSession(ctx context.Context, admin *models.Admin, sessionID int64) (*models.ExamSession, error) {
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
	return session, nil
}
