package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/authentikate/authentikate/internal/app/models"
	"github.com/authentikate/authentikate/internal/app/repositories"
	"github.com/authentikate/authentikate/internal/pkg/apperrors"
	"github.com/authentikate/authentikate/internal/pkg/clock"
	"github.com/authentikate/authentikate/internal/pkg/csvutil"
)

// AttendanceReportRow is one line of the per-session attendance projection.
// Every enrolled student appears exactly once, Present or Absent.
type AttendanceReportRow struct {
	MatriculationNumber string     `json:"matriculation_number"`
	Name                string     `json:"name"`
	Status              string     `json:"status"`
	Timestamp           *time.Time `json:"timestamp"`
}

const (
	statusPresent = "Present"
	statusAbsent  = "Absent"
)

// ReportService derives attendance and error reports from a session's
// records. It owns no state of its own; everything is a read-only projection
// over the ledger, the attendance records and the journal.
type ReportService struct {
	sessionService  *SessionService
	enrollmentStore EnrollmentStore
	attendanceStore AttendanceStore
	errorLogStore   ErrorLogStore
	studentStore    StudentStore
	clock           clock.Clock
	logger          zerolog.Logger
}

// NewReportService creates a new report service instance.
func NewReportService(
	sessionService *SessionService,
	enrollmentStore EnrollmentStore,
	attendanceStore AttendanceStore,
	errorLogStore ErrorLogStore,
	studentStore StudentStore,
	clk clock.Clock,
	logger zerolog.Logger,
) *ReportService {
	return &ReportService{
		sessionService:  sessionService,
		enrollmentStore: enrollmentStore,
		attendanceStore: attendanceStore,
		errorLogStore:   errorLogStore,
		studentStore:    studentStore,
		clock:           clk,
		logger:          logger,
	}
}

// AttendanceReport joins the enrollment ledger with the attendance records
// of one session. Students with an authenticated record are Present with
// their timestamp; every other enrolled student is Absent with a null
// timestamp.
func (s *ReportService) AttendanceReport(ctx context.Context, admin *models.Admin, sessionID int64) ([]AttendanceReportRow, error) {
	session, err := s.sessionService.GetOwnedSession(ctx, admin, sessionID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.enrollmentStore.GetEnrolledStudents(ctx, session.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load enrolled students: %w", err)
	}

	present, err := s.attendanceStore.ListBySessionWithStudents(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance records: %w", err)
	}
	presentAt := make(map[string]time.Time, len(present))
	for _, p := range present {
		presentAt[p.MatriculationNumber] = p.Timestamp
	}

	rows := make([]AttendanceReportRow, 0, len(enrolled))
	for _, e := range enrolled {
		row := AttendanceReportRow{
			MatriculationNumber: e.MatriculationNumber,
			Name:                e.Name,
			Status:              statusAbsent,
		}
		if ts, ok := presentAt[e.MatriculationNumber]; ok {
			row.Status = statusPresent
			row.Timestamp = &ts
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AttendanceReportCSV renders the attendance report as a CSV document.
func (s *ReportService) AttendanceReportCSV(ctx context.Context, admin *models.Admin, sessionID int64) ([]byte, error) {
	rows, err := s.AttendanceReport(ctx, admin, sessionID)
	if err != nil {
		return nil, err
	}

	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		ts := ""
		if row.Timestamp != nil {
			ts = row.Timestamp.Format("2006-01-02 15:04:05")
		}
		records = append(records, []string{row.MatriculationNumber, row.Name, row.Status, ts})
	}

	var buf bytes.Buffer
	if err := csvutil.Write(&buf, []string{"matriculation_number", "name", "status", "timestamp"}, records); err != nil {
		return nil, fmt.Errorf("failed to write attendance report: %w", err)
	}
	return buf.Bytes(), nil
}

// ErrorReport lists every journal entry recorded against one session.
// Ownership is verified before the journal is read.
func (s *ReportService) ErrorReport(ctx context.Context, admin *models.Admin, sessionID int64) ([]*models.ErrorLogEntry, error) {
	session, err := s.sessionService.GetOwnedSession(ctx, admin, sessionID)
	if err != nil {
		return nil, err
	}

	entries, err := s.errorLogStore.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load error journal: %w", err)
	}
	return entries, nil
}

// ErrorReportCSV renders the error report as a CSV document.
func (s *ReportService) ErrorReportCSV(ctx context.Context, admin *models.Admin, sessionID int64) ([]byte, error) {
	entries, err := s.ErrorReport(ctx, admin, sessionID)
	if err != nil {
		return nil, err
	}

	records := make([][]string, 0, len(entries))
	for _, e := range entries {
		matric := ""
		if e.MatriculationNumber != nil {
			matric = *e.MatriculationNumber
		}
		records = append(records, []string{
			matric,
			string(e.ErrorType),
			e.Details,
			e.Timestamp.Format("2006-01-02 15:04:05"),
		})
	}

	var buf bytes.Buffer
	if err := csvutil.Write(&buf, []string{"matriculation_number", "error_type", "details", "timestamp"}, records); err != nil {
		return nil, fmt.Errorf("failed to write error report: %w", err)
	}
	return buf.Bytes(), nil
}

// ReportCAMarkDispute journals a CA-mark complaint raised at the exam hall.
// The student keeps their authentication outcome; the dispute is recorded
// for later review by the department.
func (s *ReportService) ReportCAMarkDispute(ctx context.Context, admin *models.Admin, sessionID, courseID int64, matric string, details string) error {
	session, err := s.sessionService.GetOwnedSession(ctx, admin, sessionID)
	if err != nil {
		return err
	}
	if session.CourseID != courseID {
		return apperrors.NewBadRequestError("course does not match the session")
	}

	student, err := s.studentStore.GetByMatric(ctx, matric)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return apperrors.ErrStudentNotFound
		}
		return fmt.Errorf("failed to load student: %w", err)
	}

	if details == "" {
		details = "CA mark disputed at the exam hall"
	}
	entry := &models.ErrorLogEntry{
		SessionID:           session.ID,
		MatriculationNumber: &student.MatriculationNumber,
		ErrorType:           models.ErrorTypeCAMarkIssue,
		Details:             details,
		Timestamp:           clock.Naive(s.clock.Now()),
	}
	if err := s.errorLogStore.Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to journal CA mark dispute: %w", err)
	}

	s.logger.Info().
		Int64("sessionId", session.ID).
		Str("matric", student.MatriculationNumber).
		Msg("CA mark dispute recorded")
	return nil
}
