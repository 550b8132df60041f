package models

import "time"

// ExamSession is a time-bounded window during which attendance
// authentication for one course is permitted. Timestamps are naive local
// times in the exam reference zone. No two sessions for the same course may
// overlap (closed intervals).
type ExamSession struct {
	ID        int64     `json:"id"`
	CourseID  int64     `json:"course_id"`
	AdminID   int64     `json:"admin_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// CourseCode is populated by listing queries.
	CourseCode string `json:"course_code,omitempty"`
}
