package models

// Student defines an enrolled student. The matriculation number is the
// primary key; the fingerprint template is a pre-derived opaque descriptor
// string matched by exact comparison, never fuzzy-matched here.
type Student struct {
	MatriculationNumber string  `json:"matriculation_number"`
	Name                string  `json:"name"`
	DepartmentID        int64   `json:"department_id"`
	LevelID             int64   `json:"level_id"`
	FingerprintTemplate string  `json:"-"`
	Photo               *string `json:"photo,omitempty"` // base64, optional
}
