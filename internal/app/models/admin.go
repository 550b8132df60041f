package models

// Admin represents a department administrator. Every admin acts only within
// its own department.
type Admin struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	DepartmentID int64  `json:"department_id"`
}
