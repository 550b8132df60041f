package dto

import "time"

// CreateSessionRequest opens an exam session for a course, identified by its
// course code.
type CreateSessionRequest struct {
	CourseCode string    `json:"course_code" binding:"required"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	EndTime    time.Time `json:"end_time" binding:"required"`
}

// CreateSessionResponse returns the id of a newly opened session
type CreateSessionResponse struct {
	Message   string `json:"message"`
	SessionID int64  `json:"session_id"`
}

// SessionSummary is one row of the active-session listing
type SessionSummary struct {
	SessionID  int64  `json:"session_id"`
	CourseCode string `json:"course_code"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}
