package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	DepartmentRepository *DepartmentRepository
	CourseRepository     *CourseRepository
	StudentRepository    *StudentRepository
	EnrollmentRepository *EnrollmentRepository
	SessionRepository    *SessionRepository
	AttendanceRepository *AttendanceRepository
	ErrorLogRepository   *ErrorLogRepository
	AdminRepository      *AdminRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		DepartmentRepository: NewDepartmentRepository(db),
		CourseRepository:     NewCourseRepository(db),
		StudentRepository:    NewStudentRepository(db),
		EnrollmentRepository: NewEnrollmentRepository(db),
		SessionRepository:    NewSessionRepository(db),
		AttendanceRepository: NewAttendanceRepository(db),
		ErrorLogRepository:   NewErrorLogRepository(db),
		AdminRepository:      NewAdminRepository(db),
	}
}
