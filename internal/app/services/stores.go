package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/authentikate/authentikate/internal/app/models"
	"github.com/authentikate/authentikate/internal/app/repositories"
	"github.com/authentikate/authentikate/internal/db"
)

// The store interfaces below are the persistence surface each service
// depends on. The repositories package provides the Postgres
// implementations; tests substitute in-memory fakes.

// SessionStore persists exam sessions.
type SessionStore interface {
	Create(ctx context.Context, session *models.ExamSession) error
	GetByID(ctx context.Context, id int64) (*models.ExamSession, error)
	HasOverlap(ctx context.Context, courseID int64, start, end time.Time) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	ListActiveByAdmin(ctx context.Context, adminID int64, now time.Time) ([]*models.ExamSession, error)
}

// CourseStore reads the course catalog.
type CourseStore interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetByCode(ctx context.Context, code string) (*models.Course, error)
	GetByDepartment(ctx context.Context, departmentID int64) ([]*models.Course, error)
}

// StudentStore persists enrolled students and their biometric templates.
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByMatric(ctx context.Context, matric string) (*models.Student, error)
	GetByFingerprint(ctx context.Context, template string) (*models.Student, error)
	GetByDepartmentAndLevel(ctx context.Context, departmentID, levelID int64) ([]*models.Student, error)
}

// EnrollmentStore persists per-course enrollment records and CA marks.
type EnrollmentStore interface {
	Upsert(ctx context.Context, record *models.EnrollmentRecord) error
	UpsertTx(ctx context.Context, tx pgx.Tx, record *models.EnrollmentRecord) error
	GetByCourseAndStudent(ctx context.Context, courseID int64, matric string) (*models.EnrollmentRecord, error)
	GetCoursesByStudent(ctx context.Context, matric string) ([]models.EnrolledCourse, error)
	GetEnrolledStudents(ctx context.Context, courseID int64) ([]repositories.EnrolledStudent, error)
}

// AttendanceStore persists authentication outcomes per session.
type AttendanceStore interface {
	GetAuthenticated(ctx context.Context, sessionID int64, matric string) (*models.AttendanceRecord, error)
	Create(ctx context.Context, record *models.AttendanceRecord) error
	ListBySessionWithStudents(ctx context.Context, sessionID int64) ([]repositories.AttendanceWithStudent, error)
}

// ErrorLogStore is the append-only journal of failed authentications and
// reported disputes.
type ErrorLogStore interface {
	Append(ctx context.Context, entry *models.ErrorLogEntry) error
	ListBySession(ctx context.Context, sessionID int64) ([]*models.ErrorLogEntry, error)
}

// AdminStore persists admin accounts.
type AdminStore interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	GetByID(ctx context.Context, id int64) (*models.Admin, error)
}

// DepartmentStore reads departments and their levels.
type DepartmentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	GetAll(ctx context.Context) ([]*models.Department, error)
	GetLevel(ctx context.Context, levelID, departmentID int64) (*models.Level, error)
	GetLevelsByDepartment(ctx context.Context, departmentID int64) ([]*models.Level, error)
}

// TxRunner runs a function inside a database transaction. db.PostgresDB
// satisfies it in production.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}
