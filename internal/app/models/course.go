package models

// Course represents a course offered by a department at a given level.
// The code is the external handle used when opening exam sessions.
type Course struct {
	ID           int64  `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	DepartmentID int64  `json:"department_id"`
	LevelID      int64  `json:"level_id"`
}
