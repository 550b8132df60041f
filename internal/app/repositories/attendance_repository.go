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

// Attendance error types
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAttendanceExists   = errors.New("student already authenticated for this session")
)

// AttendanceRepository handles database operations for attendance records
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{
		db: db,
	}
}

// GetAuthenticated retrieves the authenticated record for a (session,
// student) pair, if one exists.
func (r *AttendanceRepository) GetAuthenticated(ctx context.Context, sessionID int64, matric string) (*models.AttendanceRecord, error) {
	query := `
		SELECT id, session_id, matriculation_number, authenticated, timestamp
		FROM attendance_records
		WHERE session_id = $1 AND matriculation_number = $2 AND authenticated
	`

	var record models.AttendanceRecord
	err := r.db.QueryRow(ctx, query, sessionID, matric).Scan(
		&record.ID,
		&record.SessionID,
		&record.MatriculationNumber,
		&record.Authenticated,
		&record.Timestamp,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("error retrieving attendance record: %w", err)
	}

	return &record, nil
}

// Create inserts an authenticated attendance record. A partial unique index
// on (session_id, matriculation_number) WHERE authenticated makes the
// concurrent duplicate insert lose with ErrAttendanceExists; the caller
// treats that as the idempotent already-authenticated outcome.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	query := `
		INSERT INTO attendance_records (session_id, matriculation_number, authenticated, timestamp)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		record.SessionID,
		record.MatriculationNumber,
		record.Authenticated,
		record.Timestamp,
	).Scan(&record.ID)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return ErrAttendanceExists
		}
		return fmt.Errorf("error creating attendance record: %w", err)
	}

	return nil
}

// AttendanceWithStudent pairs an attendance record with the student's name
// for reporting.
type AttendanceWithStudent struct {
	MatriculationNumber string
	Name                string
	Authenticated       bool
	Timestamp           time.Time
}

// ListBySessionWithStudents retrieves every attendance record of a session
// joined with the student register.
func (r *AttendanceRepository) ListBySessionWithStudents(ctx context.Context, sessionID int64) ([]AttendanceWithStudent, error) {
	query := `
		SELECT a.matriculation_number, s.name, a.authenticated, a.timestamp
		FROM attendance_records a
		JOIN students s ON s.matriculation_number = a.matriculation_number
		WHERE a.session_id = $1
		ORDER BY a.timestamp
	`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []AttendanceWithStudent
	for rows.Next() {
		var record AttendanceWithStudent
		if err := rows.Scan(
			&record.MatriculationNumber,
			&record.Name,
			&record.Authenticated,
			&record.Timestamp,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
