package models

// School represents a school within the university
type School struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Department represents a department in a school
type Department struct {
	ID       int64   `json:"id"`
	SchoolID int64   `json:"school_id"`
	Name     string  `json:"name"`
	School   *School `json:"school,omitempty"`
}

// Level represents a study level within a department (e.g. 200, 300)
type Level struct {
	ID           int64  `json:"id"`
	DepartmentID int64  `json:"department_id"`
	Name         string `json:"name"`
}
