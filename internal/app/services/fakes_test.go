package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/authentikate/authentikate/internal/app/models"
	"github.com/authentikate/authentikate/internal/app/repositories"
	"github.com/authentikate/authentikate/internal/db"
)

// memStore holds the shared in-memory state behind the per-interface fakes.
// The fakes reproduce the sentinel errors and constraint behavior of the
// Postgres repositories, including the attendance unique index and the
// session exclusion constraint.
type memStore struct {
	sessions    map[int64]*models.ExamSession
	students    map[string]*models.Student
	enrollments map[string]*models.EnrollmentRecord
	attendance  []*models.AttendanceRecord
	journal     []*models.ErrorLogEntry
	courses     map[int64]*models.Course
	admins      map[int64]*models.Admin
	departments map[int64]*models.Department
	levels      map[int64]*models.Level

	nextSessionID    int64
	nextAttendanceID int64
	nextJournalID    int64
	nextAdminID      int64

	failJournal bool
}

func newMemStore() *memStore {
	return &memStore{
		sessions:    make(map[int64]*models.ExamSession),
		students:    make(map[string]*models.Student),
		enrollments: make(map[string]*models.EnrollmentRecord),
		courses:     make(map[int64]*models.Course),
		admins:      make(map[int64]*models.Admin),
		departments: make(map[int64]*models.Department),
		levels:      make(map[int64]*models.Level),
	}
}

func enrollmentKey(courseID int64, matric string) string {
	return fmt.Sprintf("%d|%s", courseID, matric)
}

type fakeSessionStore struct{ m *memStore }

func (f fakeSessionStore) Create(ctx context.Context, session *models.ExamSession) error {
	for _, s := range f.m.sessions {
		if s.CourseID == session.CourseID &&
			!session.StartTime.After(s.EndTime) && !session.EndTime.Before(s.StartTime) {
			return repositories.ErrSessionOverlap
		}
	}
	f.m.nextSessionID++
	session.ID = f.m.nextSessionID
	f.m.sessions[session.ID] = session
	return nil
}

func (f fakeSessionStore) GetByID(ctx context.Context, id int64) (*models.ExamSession, error) {
	session, ok := f.m.sessions[id]
	if !ok {
		return nil, repositories.ErrSessionNotFound
	}
	return session, nil
}

func (f fakeSessionStore) HasOverlap(ctx context.Context, courseID int64, start, end time.Time) (bool, error) {
	for _, s := range f.m.sessions {
		if s.CourseID == courseID && !start.After(s.EndTime) && !end.Before(s.StartTime) {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeSessionStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var purged int64
	for id, s := range f.m.sessions {
		if s.EndTime.Before(now) {
			delete(f.m.sessions, id)
			purged++
		}
	}
	return purged, nil
}

func (f fakeSessionStore) ListActiveByAdmin(ctx context.Context, adminID int64, now time.Time) ([]*models.ExamSession, error) {
	var out []*models.ExamSession
	for _, s := range f.m.sessions {
		if s.AdminID == adminID && !s.EndTime.Before(now) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeStudentStore struct{ m *memStore }

func (f fakeStudentStore) Create(ctx context.Context, student *models.Student) error {
	if _, ok := f.m.students[student.MatriculationNumber]; ok {
		return repositories.ErrStudentAlreadyExists
	}
	f.m.students[student.MatriculationNumber] = student
	return nil
}

func (f fakeStudentStore) GetByMatric(ctx context.Context, matric string) (*models.Student, error) {
	student, ok := f.m.students[matric]
	if !ok {
		return nil, repositories.ErrStudentNotFound
	}
	return student, nil
}

func (f fakeStudentStore) GetByFingerprint(ctx context.Context, template string) (*models.Student, error) {
	for _, student := range f.m.students {
		if student.FingerprintTemplate == template {
			return student, nil
		}
	}
	return nil, repositories.ErrStudentNotFound
}

func (f fakeStudentStore) GetByDepartmentAndLevel(ctx context.Context, departmentID, levelID int64) ([]*models.Student, error) {
	var out []*models.Student
	for _, student := range f.m.students {
		if student.DepartmentID == departmentID && student.LevelID == levelID {
			out = append(out, student)
		}
	}
	return out, nil
}

type fakeEnrollmentStore struct{ m *memStore }

func (f fakeEnrollmentStore) Upsert(ctx context.Context, record *models.EnrollmentRecord) error {
	key := enrollmentKey(record.CourseID, record.MatriculationNumber)
	if existing, ok := f.m.enrollments[key]; ok {
		existing.CAMark = record.CAMark
		return nil
	}
	f.m.enrollments[key] = record
	return nil
}

func (f fakeEnrollmentStore) UpsertTx(ctx context.Context, tx pgx.Tx, record *models.EnrollmentRecord) error {
	return f.Upsert(ctx, record)
}

func (f fakeEnrollmentStore) GetByCourseAndStudent(ctx context.Context, courseID int64, matric string) (*models.EnrollmentRecord, error) {
	record, ok := f.m.enrollments[enrollmentKey(courseID, matric)]
	if !ok {
		return nil, repositories.ErrEnrollmentNotFound
	}
	return record, nil
}

func (f fakeEnrollmentStore) GetCoursesByStudent(ctx context.Context, matric string) ([]models.EnrolledCourse, error) {
	var out []models.EnrolledCourse
	for _, record := range f.m.enrollments {
		if record.MatriculationNumber != matric {
			continue
		}
		course := f.m.courses[record.CourseID]
		out = append(out, models.EnrolledCourse{
			CourseCode: course.Code,
			CourseName: course.Name,
			CAMark:     record.CAMark,
		})
	}
	return out, nil
}

func (f fakeEnrollmentStore) GetEnrolledStudents(ctx context.Context, courseID int64) ([]repositories.EnrolledStudent, error) {
	var out []repositories.EnrolledStudent
	for _, record := range f.m.enrollments {
		if record.CourseID != courseID {
			continue
		}
		student, ok := f.m.students[record.MatriculationNumber]
		if !ok {
			continue
		}
		out = append(out, repositories.EnrolledStudent{
			MatriculationNumber: student.MatriculationNumber,
			Name:                student.Name,
			CAMark:              record.CAMark,
		})
	}
	return out, nil
}

type fakeAttendanceStore struct{ m *memStore }

func (f fakeAttendanceStore) GetAuthenticated(ctx context.Context, sessionID int64, matric string) (*models.AttendanceRecord, error) {
	for _, record := range f.m.attendance {
		if record.SessionID == sessionID && record.MatriculationNumber == matric && record.Authenticated {
			return record, nil
		}
	}
	return nil, repositories.ErrAttendanceNotFound
}

func (f fakeAttendanceStore) Create(ctx context.Context, record *models.AttendanceRecord) error {
	if _, err := f.GetAuthenticated(ctx, record.SessionID, record.MatriculationNumber); err == nil {
		return repositories.ErrAttendanceExists
	}
	f.m.nextAttendanceID++
	record.ID = f.m.nextAttendanceID
	f.m.attendance = append(f.m.attendance, record)
	return nil
}

func (f fakeAttendanceStore) ListBySessionWithStudents(ctx context.Context, sessionID int64) ([]repositories.AttendanceWithStudent, error) {
	var out []repositories.AttendanceWithStudent
	for _, record := range f.m.attendance {
		if record.SessionID != sessionID {
			continue
		}
		student := f.m.students[record.MatriculationNumber]
		out = append(out, repositories.AttendanceWithStudent{
			MatriculationNumber: record.MatriculationNumber,
			Name:                student.Name,
			Authenticated:       record.Authenticated,
			Timestamp:           record.Timestamp,
		})
	}
	return out, nil
}

type fakeErrorLogStore struct{ m *memStore }

func (f fakeErrorLogStore) Append(ctx context.Context, entry *models.ErrorLogEntry) error {
	if f.m.failJournal {
		return errors.New("journal unavailable")
	}
	f.m.nextJournalID++
	entry.ID = f.m.nextJournalID
	f.m.journal = append(f.m.journal, entry)
	return nil
}

func (f fakeErrorLogStore) ListBySession(ctx context.Context, sessionID int64) ([]*models.ErrorLogEntry, error) {
	var out []*models.ErrorLogEntry
	for _, entry := range f.m.journal {
		if entry.SessionID == sessionID {
			out = append(out, entry)
		}
	}
	return out, nil
}

type fakeAdminStore struct{ m *memStore }

func (f fakeAdminStore) Create(ctx context.Context, admin *models.Admin) error {
	for _, a := range f.m.admins {
		if a.Username == admin.Username {
			return repositories.ErrUsernameAlreadyUsed
		}
	}
	f.m.nextAdminID++
	admin.ID = f.m.nextAdminID
	f.m.admins[admin.ID] = admin
	return nil
}

func (f fakeAdminStore) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	for _, a := range f.m.admins {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, repositories.ErrAdminNotFound
}

func (f fakeAdminStore) GetByID(ctx context.Context, id int64) (*models.Admin, error) {
	admin, ok := f.m.admins[id]
	if !ok {
		return nil, repositories.ErrAdminNotFound
	}
	return admin, nil
}

type fakeDepartmentStore struct{ m *memStore }

func (f fakeDepartmentStore) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	department, ok := f.m.departments[id]
	if !ok {
		return nil, repositories.ErrDepartmentNotFound
	}
	return department, nil
}

func (f fakeDepartmentStore) GetAll(ctx context.Context) ([]*models.Department, error) {
	var out []*models.Department
	for _, d := range f.m.departments {
		out = append(out, d)
	}
	return out, nil
}

func (f fakeDepartmentStore) GetLevel(ctx context.Context, levelID, departmentID int64) (*models.Level, error) {
	level, ok := f.m.levels[levelID]
	if !ok || level.DepartmentID != departmentID {
		return nil, repositories.ErrLevelNotFound
	}
	return level, nil
}

func (f fakeDepartmentStore) GetLevelsByDepartment(ctx context.Context, departmentID int64) ([]*models.Level, error) {
	var out []*models.Level
	for _, level := range f.m.levels {
		if level.DepartmentID == departmentID {
			out = append(out, level)
		}
	}
	return out, nil
}

type fakeCourseStore struct{ m *memStore }

func (f fakeCourseStore) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course, ok := f.m.courses[id]
	if !ok {
		return nil, repositories.ErrCourseNotFound
	}
	return course, nil
}

func (f fakeCourseStore) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	for _, course := range f.m.courses {
		if course.Code == code {
			return course, nil
		}
	}
	return nil, repositories.ErrCourseNotFound
}

func (f fakeCourseStore) GetByDepartment(ctx context.Context, departmentID int64) ([]*models.Course, error) {
	var out []*models.Course
	for _, course := range f.m.courses {
		if course.DepartmentID == departmentID {
			out = append(out, course)
		}
	}
	return out, nil
}

type fakeTxRunner struct{}

func (fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	return fn(ctx, nil)
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
