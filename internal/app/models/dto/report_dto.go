package dto

// AttendanceReportRow is one row of the per-session attendance report:
// every enrolled student, Present with a timestamp or Absent with none.
type AttendanceReportRow struct {
	MatriculationNumber string  `json:"matriculation_number"`
	Name                string  `json:"name"`
	Status              string  `json:"status"`
	Timestamp           *string `json:"timestamp"`
}

// ErrorReportRow is one row of the per-session error report
type ErrorReportRow struct {
	MatriculationNumber string `json:"matriculation_number"`
	ErrorType           string `json:"error_type"`
	Details             string `json:"details"`
	Timestamp           string `json:"timestamp"`
}
