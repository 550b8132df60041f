package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/authentikate/authentikate/internal/app/models"
	"github.com/authentikate/authentikate/internal/pkg/apperrors"
)

func newReportFixture(t *testing.T) (*memStore, *models.Admin, *ReportService) {
	t.Helper()
	m, admin, _ := seedAttendanceFixture(t)
	seedStudent(m, "B2", "Ben Eze", "TPL-2")
	caMark := 30.0
	m.enrollments[enrollmentKey(1, "B2")] = &models.EnrollmentRecord{
		ID: 2, CourseID: 1, MatriculationNumber: "B2", CAMark: &caMark,
	}
	clk := frozenAt(10, 30)
	sessionService := newSessionService(m, clk)
	reportService := NewReportService(
		sessionService, fakeEnrollmentStore{m}, fakeAttendanceStore{m},
		fakeErrorLogStore{m}, fakeStudentStore{m}, clk, testLogger(),
	)
	return m, admin, reportService
}

func TestAttendanceReport(t *testing.T) {
	m, admin, svc := newReportFixture(t)
	authedAt := time.Date(2025, 3, 10, 10, 5, 0, 0, time.UTC)
	m.attendance = append(m.attendance, &models.AttendanceRecord{
		ID: 1, SessionID: 1, MatriculationNumber: testMatric, Authenticated: true, Timestamp: authedAt,
	})

	rows, err := svc.AttendanceReport(context.Background(), admin, 1)
	if err != nil {
		t.Fatalf("AttendanceReport() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want one per enrolled student", len(rows))
	}
	byMatric := make(map[string]AttendanceReportRow, len(rows))
	for _, row := range rows {
		byMatric[row.MatriculationNumber] = row
	}
	present := byMatric[testMatric]
	if present.Status != statusPresent {
		t.Errorf("status = %q, want Present", present.Status)
	}
	if present.Timestamp == nil || !present.Timestamp.Equal(authedAt) {
		t.Errorf("present timestamp = %v, want %v", present.Timestamp, authedAt)
	}
	absent := byMatric["B2"]
	if absent.Status != statusAbsent {
		t.Errorf("status = %q, want Absent", absent.Status)
	}
	if absent.Timestamp != nil {
		t.Errorf("absent timestamp = %v, want nil", absent.Timestamp)
	}
}

func TestAttendanceReportOwnership(t *testing.T) {
	_, _, svc := newReportFixture(t)
	other := &models.Admin{ID: 2, DepartmentID: 2}

	if _, err := svc.AttendanceReport(context.Background(), other, 1); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("error = %v, want permission denied", err)
	}
	if _, err := svc.AttendanceReport(context.Background(), other, 99); !errors.Is(err, apperrors.ErrSessionNotFound) {
		t.Errorf("error = %v, want session not found", err)
	}
}

func TestAttendanceReportCSV(t *testing.T) {
	m, admin, svc := newReportFixture(t)
	m.attendance = append(m.attendance, &models.AttendanceRecord{
		ID: 1, SessionID: 1, MatriculationNumber: testMatric, Authenticated: true,
		Timestamp: time.Date(2025, 3, 10, 10, 5, 0, 0, time.UTC),
	})

	out, err := svc.AttendanceReportCSV(context.Background(), admin, 1)
	if err != nil {
		t.Fatalf("AttendanceReportCSV() error = %v", err)
	}
	body := string(out)
	if !strings.Contains(body, "matriculation_number,name,status,timestamp") {
		t.Errorf("missing header:\n%s", body)
	}
	if !strings.Contains(body, "2025-03-10 10:05:00") {
		t.Errorf("missing present timestamp:\n%s", body)
	}
	if !strings.Contains(body, "B2,Ben Eze,Absent,") {
		t.Errorf("missing absent row:\n%s", body)
	}
}

func TestErrorReport(t *testing.T) {
	m, admin, svc := newReportFixture(t)
	matric := testMatric
	m.journal = append(m.journal, &models.ErrorLogEntry{
		ID: 1, SessionID: 1, MatriculationNumber: nil,
		ErrorType: models.ErrorTypeAuthFailed, Details: "no student matched the captured fingerprint",
		Timestamp: time.Date(2025, 3, 10, 10, 10, 0, 0, time.UTC),
	}, &models.ErrorLogEntry{
		ID: 2, SessionID: 1, MatriculationNumber: &matric,
		ErrorType: models.ErrorTypeNotEnrolled, Details: "not enrolled",
		Timestamp: time.Date(2025, 3, 10, 10, 11, 0, 0, time.UTC),
	}, &models.ErrorLogEntry{
		ID: 3, SessionID: 2, MatriculationNumber: nil,
		ErrorType: models.ErrorTypeAuthFailed, Details: "other session",
		Timestamp: time.Date(2025, 3, 10, 10, 12, 0, 0, time.UTC),
	})

	entries, err := svc.ErrorReport(context.Background(), admin, 1)
	if err != nil {
		t.Fatalf("ErrorReport() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2 scoped to session 1", len(entries))
	}

	other := &models.Admin{ID: 2, DepartmentID: 2}
	if _, err := svc.ErrorReport(context.Background(), other, 1); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("foreign session error = %v", err)
	}
}

func TestReportCAMarkDispute(t *testing.T) {
	m, admin, svc := newReportFixture(t)
	ctx := context.Background()

	if err := svc.ReportCAMarkDispute(ctx, admin, 1, 1, testMatric, "mark should be 35"); err != nil {
		t.Fatalf("ReportCAMarkDispute() error = %v", err)
	}
	if len(m.journal) != 1 {
		t.Fatalf("journal entries = %d, want 1", len(m.journal))
	}
	entry := m.journal[0]
	if entry.ErrorType != models.ErrorTypeCAMarkIssue {
		t.Errorf("error type = %s, want CA_MARK_ISSUE", entry.ErrorType)
	}
	if entry.MatriculationNumber == nil || *entry.MatriculationNumber != testMatric {
		t.Errorf("matric = %v, want %q", entry.MatriculationNumber, testMatric)
	}
	want := time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC)
	if !entry.Timestamp.Equal(want) {
		t.Errorf("timestamp = %v, want naive %v", entry.Timestamp, want)
	}

	if err := svc.ReportCAMarkDispute(ctx, admin, 1, 1, "NOPE", ""); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("unknown student error = %v", err)
	}
	if err := svc.ReportCAMarkDispute(ctx, admin, 1, 2, testMatric, ""); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("mismatched course error = %v", err)
	}
}
