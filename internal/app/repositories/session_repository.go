package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/authentikate/authentikate/internal/app/models"
	"github.com/authentikate/authentikate/internal/pkg/dberrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Session error types
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionOverlap  = errors.New("session overlaps with an existing session for this course")
)

// SessionRepository handles database operations for exam sessions
type SessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{
		db: db,
	}
}

// Create persists a new exam session. The sessions table carries an
// exclusion constraint on (course_id, [start,end]) so a concurrent insert of
// an overlapping window loses with ErrSessionOverlap rather than slipping
// past the application-level check.
func (r *SessionRepository) Create(ctx context.Context, session *models.ExamSession) error {
	query := `
		INSERT INTO exam_sessions (course_id, admin_id, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		session.CourseID,
		session.AdminID,
		session.StartTime,
		session.EndTime,
	).Scan(&session.ID)

	if err != nil {
		if dberrors.IsExclusionViolation(err) {
			return ErrSessionOverlap
		}
		return fmt.Errorf("error creating session: %w", err)
	}

	return nil
}

// GetByID retrieves a session by ID
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*models.ExamSession, error) {
	query := `
		SELECT id, course_id, admin_id, start_time, end_time
		FROM exam_sessions
		WHERE id = $1
	`

	var session models.ExamSession
	err := r.db.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.CourseID,
		&session.AdminID,
		&session.StartTime,
		&session.EndTime,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("error retrieving session: %w", err)
	}

	return &session, nil
}

// HasOverlap reports whether any session for the course intersects the
// closed interval [start, end].
func (r *SessionRepository) HasOverlap(ctx context.Context, courseID int64, start, end time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM exam_sessions
			WHERE course_id = $1 AND start_time <= $3 AND end_time >= $2
		)`,
		courseID, start, end).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking session overlap: %w", err)
	}

	return exists, nil
}

// DeleteExpired purges every session, system-wide, whose end time is
// strictly before now. Returns the number of purged sessions.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM exam_sessions WHERE end_time < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("error purging expired sessions: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

// ListActiveByAdmin retrieves the admin's sessions that are still open at
// now, with the course code resolved.
func (r *SessionRepository) ListActiveByAdmin(ctx context.Context, adminID int64, now time.Time) ([]*models.ExamSession, error) {
	query := `
		SELECT es.id, es.course_id, es.admin_id, es.start_time, es.end_time, c.code
		FROM exam_sessions es
		JOIN courses c ON c.id = es.course_id
		WHERE es.admin_id = $1 AND es.end_time >= $2
		ORDER BY es.start_time
	`

	rows, err := r.db.Query(ctx, query, adminID, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*models.ExamSession
	for rows.Next() {
		var session models.ExamSession
		if err := rows.Scan(
			&session.ID,
			&session.CourseID,
			&session.AdminID,
			&session.StartTime,
			&session.EndTime,
			&session.CourseCode,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, &session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
