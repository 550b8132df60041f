package dto

import "github.com/authentikate/authentikate/internal/app/models"

// EnrollStudentRequest registers a student with a fingerprint template.
// Submitted as multipart form data so the optional photo can ride along.
type EnrollStudentRequest struct {
	MatriculationNumber string `form:"matriculation_number" binding:"required"`
	Name                string `form:"name" binding:"required"`
	DepartmentID        int64  `form:"department_id" binding:"required"`
	LevelID             int64  `form:"level_id" binding:"required"`
	FingerprintTemplate string `form:"fingerprint_template" binding:"required"`
}

// EnrollStudentResponse acknowledges a successful enrollment
type EnrollStudentResponse struct {
	Message             string `json:"message"`
	MatriculationNumber string `json:"matriculation_number"`
}

// EnrollmentStatusRequest looks a student up by fingerprint template
type EnrollmentStatusRequest struct {
	FingerprintTemplate string `json:"fingerprint_template" binding:"required"`
}

// EnrollmentStatusResponse is the student profile plus every course the
// student is enrolled in.
type EnrollmentStatusResponse struct {
	MatriculationNumber string                  `json:"matriculation_number"`
	Name                string                  `json:"name"`
	DepartmentID        int64                   `json:"department_id"`
	LevelID             int64                   `json:"level_id"`
	Photo               *string                 `json:"photo"`
	EnrolledCourses     []models.EnrolledCourse `json:"enrolled_courses"`
}

// BulkUploadResponse summarizes a course-list upload. Unknown students are
// skipped by policy, not reported as errors.
type BulkUploadResponse struct {
	Message  string `json:"message"`
	Enrolled int    `json:"enrolled"`
	Skipped  int    `json:"skipped"`
}
