package models

import "time"

// AttendanceRecord marks one authentication outcome for a (session, student)
// pair. At most one authenticated=true record per pair is enforced by a
// partial unique index at the storage layer.
type AttendanceRecord struct {
	ID                  int64     `json:"id"`
	SessionID           int64     `json:"session_id"`
	MatriculationNumber string    `json:"matriculation_number"`
	Authenticated       bool      `json:"authenticated"`
	Timestamp           time.Time `json:"timestamp"`
}
