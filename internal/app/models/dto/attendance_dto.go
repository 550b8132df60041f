package dto

// AuthenticateRequest is one authentication attempt at the exam hall
type AuthenticateRequest struct {
	SessionID           int64  `json:"session_id" binding:"required"`
	FingerprintTemplate string `json:"fingerprint_template" binding:"required"`
}

// AuthenticateResponse is the payload returned on a successful (or
// idempotent repeat) authentication.
type AuthenticateResponse struct {
	Message             string   `json:"message"`
	MatriculationNumber string   `json:"matriculation_number"`
	Name                string   `json:"name"`
	CAMark              *float64 `json:"ca_mark"`
	Photo               *string  `json:"photo"`
	CourseName          string   `json:"course_name"`
}

// CAMarkDisputeRequest raises a CA-mark dispute during a session
type CAMarkDisputeRequest struct {
	SessionID           int64  `json:"session_id" binding:"required"`
	MatriculationNumber string `json:"matriculation_number" binding:"required"`
	CourseID            int64  `json:"course_id" binding:"required"`
	Details             string `json:"details" binding:"required"`
}
