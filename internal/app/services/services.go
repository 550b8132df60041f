// Package services holds the business rules of the attendance backend. Each
// service depends on narrow store interfaces and an injected clock, so every
// rule is testable without a database.
package services

import (
	"github.com/rs/zerolog"

	"github.com/authentikate/authentikate/internal/app/repositories"
	"github.com/authentikate/authentikate/internal/db"
	"github.com/authentikate/authentikate/internal/pkg/auth"
	"github.com/authentikate/authentikate/internal/pkg/clock"
)

// Services bundles every service for wiring into the controllers.
type Services struct {
	Auth       *AuthService
	Session    *SessionService
	Enrollment *EnrollmentService
	Attendance *AttendanceService
	Report     *ReportService
	Reference  *ReferenceService
}

// NewServices wires the services onto the Postgres repositories.
func NewServices(repos *repositories.Repositories, database *db.PostgresDB, jwtService *auth.JWTService, clk clock.Clock, logger zerolog.Logger) *Services {
	sessionService := NewSessionService(repos.SessionRepository, repos.CourseRepository, clk, logger)
	return &Services{
		Auth:       NewAuthService(repos.AdminRepository, repos.DepartmentRepository, jwtService, logger),
		Session:    sessionService,
		Enrollment: NewEnrollmentService(repos.StudentRepository, repos.EnrollmentRepository, repos.CourseRepository, repos.DepartmentRepository, database, logger),
		Attendance: NewAttendanceService(repos.SessionRepository, repos.StudentRepository, repos.EnrollmentRepository, repos.AttendanceRepository, repos.ErrorLogRepository, repos.CourseRepository, clk, logger),
		Report:     NewReportService(sessionService, repos.EnrollmentRepository, repos.AttendanceRepository, repos.ErrorLogRepository, repos.StudentRepository, clk, logger),
		Reference:  NewReferenceService(repos.DepartmentRepository, repos.CourseRepository),
	}
}
