package models

import "time"

// ErrorType categorizes authentication failures in the error journal.
type ErrorType string

const (
	// ErrorTypeAuthFailed records a fingerprint that matched no student.
	ErrorTypeAuthFailed ErrorType = "AUTH_FAILED"
	// ErrorTypeNotEnrolled records a matched student with no enrollment for
	// the session's course.
	ErrorTypeNotEnrolled ErrorType = "NOT_ENROLLED"
	// ErrorTypeInvalidCAMark records a null or negative CA mark.
	ErrorTypeInvalidCAMark ErrorType = "INVALID_CA_MARK"
	// ErrorTypeCAMarkIssue records a CA-mark dispute raised at the exam hall.
	ErrorTypeCAMarkIssue ErrorType = "CA_MARK_ISSUE"
)

// ErrorLogEntry is one append-only journal row. Entries are never mutated or
// deleted. MatriculationNumber is nil when no student could be identified.
type ErrorLogEntry struct {
	ID                  int64     `json:"id"`
	SessionID           int64     `json:"session_id"`
	MatriculationNumber *string   `json:"matriculation_number"`
	ErrorType           ErrorType `json:"error_type"`
	Details             string    `json:"details"`
	Timestamp           time.Time `json:"timestamp"`
}
