package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/authentikate/authentikate/internal/app/models"
	"github.com/authentikate/authentikate/internal/app/repositories"
	"github.com/authentikate/authentikate/internal/pkg/apperrors"
	"github.com/authentikate/authentikate/internal/pkg/clock"
)

const (
	testMatric   = "U2019/557788"
	testTemplate = "TPL-AAAA-1111"
)

// seedAttendanceFixture builds a department with one course (CSC101), one
// admin, one enrolled student with CA mark 25, and one session open from
// 10:00 to 12:00 on 2025-03-10.
func seedAttendanceFixture(t *testing.T) (*memStore, *models.Admin, *models.ExamSession) {
	t.Helper()
	m := newMemStore()
	m.departments[1] = &models.Department{ID: 1, SchoolID: 1, Name: "Computer Science"}
	m.levels[1] = &models.Level{ID: 1, DepartmentID: 1, Name: "100"}
	m.courses[1] = &models.Course{ID: 1, Code: "CSC101", Name: "Introduction to Computing", DepartmentID: 1, LevelID: 1}
	admin := &models.Admin{ID: 1, Username: "csc_admin", DepartmentID: 1}
	m.admins[1] = admin
	m.students[testMatric] = &models.Student{
		MatriculationNumber: testMatric,
		Name:                "Ada Obi",
		DepartmentID:        1,
		LevelID:             1,
		FingerprintTemplate: testTemplate,
	}
	caMark := 25.0
	m.enrollments[enrollmentKey(1, testMatric)] = &models.EnrollmentRecord{
		ID:                  1,
		CourseID:            1,
		MatriculationNumber: testMatric,
		CAMark:              &caMark,
	}
	session := &models.ExamSession{
		ID:        1,
		CourseID:  1,
		AdminID:   1,
		StartTime: time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	m.sessions[1] = session
	return m, admin, session
}

func newAttendanceService(m *memStore, clk clock.Clock) *AttendanceService {
	return NewAttendanceService(
		fakeSessionStore{m}, fakeStudentStore{m}, fakeEnrollmentStore{m},
		fakeAttendanceStore{m}, fakeErrorLogStore{m}, fakeCourseStore{m},
		clk, testLogger(),
	)
}

// frozenAt freezes the clock at a wall time in WAT. The service must strip
// the offset before comparing against the naive stored window.
func frozenAt(hour, min int) *clock.Frozen {
	wat := time.FixedZone("WAT", 3600)
	return &clock.Frozen{Instant: time.Date(2025, 3, 10, hour, min, 0, 0, wat)}
}

func TestAuthenticateSuccess(t *testing.T) {
	m, admin, session := seedAttendanceFixture(t)
	svc := newAttendanceService(m, frozenAt(10, 5))

	result, err := svc.Authenticate(context.Background(), admin, session.ID, testTemplate)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if result.AlreadyAuthenticated {
		t.Error("first authentication reported AlreadyAuthenticated")
	}
	if result.MatriculationNumber != testMatric {
		t.Errorf("matric = %q, want %q", result.MatriculationNumber, testMatric)
	}
	if result.Name != "Ada Obi" {
		t.Errorf("name = %q, want %q", result.Name, "Ada Obi")
	}
	if result.CAMark == nil || *result.CAMark != 25.0 {
		t.Errorf("ca mark = %v, want 25", result.CAMark)
	}
	if result.CourseName != "Introduction to Computing" {
		t.Errorf("course name = %q", result.CourseName)
	}
	if len(m.attendance) != 1 {
		t.Fatalf("attendance records = %d, want 1", len(m.attendance))
	}
	rec := m.attendance[0]
	if !rec.Authenticated || rec.SessionID != session.ID || rec.MatriculationNumber != testMatric {
		t.Errorf("unexpected attendance record %+v", rec)
	}
	want := time.Date(2025, 3, 10, 10, 5, 0, 0, time.UTC)
	if !rec.Timestamp.Equal(want) {
		t.Errorf("timestamp = %v, want naive %v", rec.Timestamp, want)
	}
	if len(m.journal) != 0 {
		t.Errorf("journal entries = %d, want 0", len(m.journal))
	}
}

func TestAuthenticateSessionNotFound(t *testing.T) {
	m, admin, _ := seedAttendanceFixture(t)
	svc := newAttendanceService(m, frozenAt(10, 5))

	_, err := svc.Authenticate(context.Background(), admin, 99, testTemplate)
	if !errors.Is(err, apperrors.ErrSessionNotFound) {
		t.Errorf("error = %v, want session not found", err)
	}
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("error %v does not carry the not-found category", err)
	}
}

func TestAuthenticateWrongSessionOwner(t *testing.T) {
	m, _, session := seedAttendanceFixture(t)
	other := &models.Admin{ID: 2, Username: "eee_admin", DepartmentID: 2}
	svc := newAttendanceService(m, frozenAt(10, 5))

	_, err := svc.Authenticate(context.Background(), other, session.ID, testTemplate)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("error = %v, want permission denied", err)
	}
	if len(m.journal) != 0 {
		t.Errorf("ownership failure must not be journaled, got %d entries", len(m.journal))
	}
}

func TestAuthenticateOutsideWindow(t *testing.T) {
	tests := []struct {
		name string
		hour int
		min  int
	}{
		{"before start", 9, 55},
		{"after end", 12, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, admin, session := seedAttendanceFixture(t)
			svc := newAttendanceService(m, frozenAt(tt.hour, tt.min))

			_, err := svc.Authenticate(context.Background(), admin, session.ID, testTemplate)
			if !errors.Is(err, apperrors.ErrOutsideWindow) {
				t.Errorf("error = %v, want outside window", err)
			}
			if len(m.journal) != 0 {
				t.Errorf("window failure must not be journaled, got %d entries", len(m.journal))
			}
			if len(m.attendance) != 0 {
				t.Errorf("window failure must not record attendance, got %d records", len(m.attendance))
			}
		})
	}
}

func TestAuthenticateWindowBoundariesInclusive(t *testing.T) {
	for _, tt := range []struct {
		name string
		hour int
		min  int
	}{
		{"at start", 10, 0},
		{"at end", 12, 0},
	} {
		t.Run(tt.name, func(t *testing.T) {
			m, admin, session := seedAttendanceFixture(t)
			svc := newAttendanceService(m, frozenAt(tt.hour, tt.min))

			if _, err := svc.Authenticate(context.Background(), admin, session.ID, testTemplate); err != nil {
				t.Errorf("boundary instant rejected: %v", err)
			}
		})
	}
}

func TestAuthenticateUnknownFingerprint(t *testing.T) {
	m, admin, session := seedAttendanceFixture(t)
	svc := newAttendanceService(m, frozenAt(10, 5))

	_, err := svc.Authenticate(context.Background(), admin, session.ID, "TPL-UNKNOWN")
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("error = %v, want student not found", err)
	}
	if len(m.journal) != 1 {
		t.Fatalf("journal entries = %d, want 1", len(m.journal))
	}
	entry := m.journal[0]
	if entry.ErrorType != models.ErrorTypeAuthFailed {
		t.Errorf("error type = %s, want AUTH_FAILED", entry.ErrorType)
	}
	if entry.MatriculationNumber != nil {
		t.Errorf("matric = %v, want nil for unmatched fingerprint", *entry.MatriculationNumber)
	}
	if entry.SessionID != session.ID {
		t.Errorf("session id = %d, want %d", entry.SessionID, session.ID)
	}
}

func TestAuthenticateNotEnrolled(t *testing.T) {
	m, admin, session := seedAttendanceFixture(t)
	delete(m.enrollments, enrollmentKey(1, testMatric))
	svc := newAttendanceService(m, frozenAt(10, 5))

	_, err := svc.Authenticate(context.Background(), admin, session.ID, testTemplate)
	if !errors.Is(err, apperrors.ErrStudentNotEnrolled) {
		t.Fatalf("error = %v, want not enrolled", err)
	}
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("error %v does not carry the forbidden category", err)
	}
	if len(m.journal) != 1 {
		t.Fatalf("journal entries = %d, want 1", len(m.journal))
	}
	entry := m.journal[0]
	if entry.ErrorType != models.ErrorTypeNotEnrolled {
		t.Errorf("error type = %s, want NOT_ENROLLED", entry.ErrorType)
	}
	if entry.MatriculationNumber == nil || *entry.MatriculationNumber != testMatric {
		t.Errorf("matric = %v, want %q", entry.MatriculationNumber, testMatric)
	}
}

func TestAuthenticateInvalidCAMark(t *testing.T) {
	negative := -5.0
	tests := []struct {
		name   string
		caMark *float64
	}{
		{"null ca mark", nil},
		{"negative ca mark", &negative},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, admin, session := seedAttendanceFixture(t)
			m.enrollments[enrollmentKey(1, testMatric)].CAMark = tt.caMark
			svc := newAttendanceService(m, frozenAt(10, 5))

			_, err := svc.Authenticate(context.Background(), admin, session.ID, testTemplate)
			if !errors.Is(err, apperrors.ErrInvalidCAMark) {
				t.Fatalf("error = %v, want invalid CA mark", err)
			}
			if len(m.journal) != 1 || m.journal[0].ErrorType != models.ErrorTypeInvalidCAMark {
				t.Fatalf("want exactly one INVALID_CA_MARK entry, journal = %+v", m.journal)
			}
			if len(m.attendance) != 0 {
				t.Errorf("invalid CA mark must never commit attendance")
			}
		})
	}
}

func TestAuthenticateIdempotentRepeat(t *testing.T) {
	m, admin, session := seedAttendanceFixture(t)
	svc := newAttendanceService(m, frozenAt(10, 5))
	ctx := context.Background()

	first, err := svc.Authenticate(ctx, admin, session.ID, testTemplate)
	if err != nil {
		t.Fatalf("first Authenticate() error = %v", err)
	}
	second, err := svc.Authenticate(ctx, admin, session.ID, testTemplate)
	if err != nil {
		t.Fatalf("second Authenticate() error = %v", err)
	}
	if !second.AlreadyAuthenticated {
		t.Error("repeat authentication not reported as already authenticated")
	}
	if second.MatriculationNumber != first.MatriculationNumber || second.Name != first.Name || second.CourseName != first.CourseName {
		t.Error("repeat payload differs from the first success")
	}
	if len(m.attendance) != 1 {
		t.Errorf("attendance records = %d, want 1 after repeat", len(m.attendance))
	}
	if len(m.journal) != 0 {
		t.Errorf("repeat must not journal, got %d entries", len(m.journal))
	}
}

// blindAttendanceStore never sees existing records on read, forcing the
// service onto the unique-index violation path a concurrent duplicate
// request would hit.
type blindAttendanceStore struct{ fakeAttendanceStore }

func (b blindAttendanceStore) GetAuthenticated(ctx context.Context, sessionID int64, matric string) (*models.AttendanceRecord, error) {
	return nil, repositories.ErrAttendanceNotFound
}

func TestAuthenticateDuplicateInsertRace(t *testing.T) {
	m, admin, session := seedAttendanceFixture(t)
	svc := NewAttendanceService(
		fakeSessionStore{m}, fakeStudentStore{m}, fakeEnrollmentStore{m},
		blindAttendanceStore{fakeAttendanceStore{m}}, fakeErrorLogStore{m}, fakeCourseStore{m},
		frozenAt(10, 5), testLogger(),
	)
	ctx := context.Background()

	if _, err := svc.Authenticate(ctx, admin, session.ID, testTemplate); err != nil {
		t.Fatalf("first Authenticate() error = %v", err)
	}
	result, err := svc.Authenticate(ctx, admin, session.ID, testTemplate)
	if err != nil {
		t.Fatalf("losing request must get idempotent success, got %v", err)
	}
	if !result.AlreadyAuthenticated {
		t.Error("losing request not reported as already authenticated")
	}
	if len(m.attendance) != 1 {
		t.Errorf("attendance records = %d, want 1", len(m.attendance))
	}
}

func TestAuthenticateJournalFailureIsFatal(t *testing.T) {
	m, admin, session := seedAttendanceFixture(t)
	m.failJournal = true
	svc := newAttendanceService(m, frozenAt(10, 5))

	_, err := svc.Authenticate(context.Background(), admin, session.ID, "TPL-UNKNOWN")
	if err == nil {
		t.Fatal("journal failure must abort the request")
	}
	if errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Error("journal failure must not be reported as the underlying auth failure")
	}
	if len(m.attendance) != 0 {
		t.Errorf("no attendance may be recorded, got %d", len(m.attendance))
	}
}
