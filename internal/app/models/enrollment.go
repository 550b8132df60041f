package models

// EnrollmentRecord is one row of the per-course enrollment ledger. A nil or
// negative CA mark makes the student ineligible for authentication.
type EnrollmentRecord struct {
	ID                  int64    `json:"id"`
	CourseID            int64    `json:"course_id"`
	MatriculationNumber string   `json:"matriculation_number"`
	CAMark              *float64 `json:"ca_mark"`
}

// EnrolledCourse pairs an enrollment record with its resolved course, as
// returned by the enrollment-status lookup.
type EnrolledCourse struct {
	CourseCode string   `json:"course_code"`
	CourseName string   `json:"course_name"`
	CAMark     *float64 `json:"ca_mark"`
}
