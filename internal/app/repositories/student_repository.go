package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/authentikate/authentikate/internal/app/models"
	"github.com/authentikate/authentikate/internal/pkg/dberrors"
	"github.com/authentikate/authentikate/internal/pkg/helpers"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Student error types
var (
	ErrStudentNotFound      = errors.New("student not found")
	ErrStudentAlreadyExists = errors.New("student with this matriculation number already exists")
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// Create inserts a new student. The matriculation number is the primary key;
// a duplicate insert fails with ErrStudentAlreadyExists.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (matriculation_number, name, department_id, level_id, fingerprint_template, photo)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		student.MatriculationNumber,
		student.Name,
		student.DepartmentID,
		student.LevelID,
		student.FingerprintTemplate,
		helpers.GetNullString(student.Photo),
	)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return ErrStudentAlreadyExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByMatric retrieves a student by matriculation number
func (r *StudentRepository) GetByMatric(ctx context.Context, matric string) (*models.Student, error) {
	query := `
		SELECT matriculation_number, name, department_id, level_id, fingerprint_template, photo
		FROM students
		WHERE matriculation_number = $1
	`

	return r.scanOne(r.db.QueryRow(ctx, query, matric))
}

// GetByFingerprint retrieves a student by exact fingerprint-template match
func (r *StudentRepository) GetByFingerprint(ctx context.Context, template string) (*models.Student, error) {
	query := `
		SELECT matriculation_number, name, department_id, level_id, fingerprint_template, photo
		FROM students
		WHERE fingerprint_template = $1
	`

	return r.scanOne(r.db.QueryRow(ctx, query, template))
}

// GetByDepartmentAndLevel retrieves all students of a department at a level
func (r *StudentRepository) GetByDepartmentAndLevel(ctx context.Context, departmentID, levelID int64) ([]*models.Student, error) {
	query := `
		SELECT matriculation_number, name, department_id, level_id, fingerprint_template, photo
		FROM students
		WHERE department_id = $1 AND level_id = $2
		ORDER BY matriculation_number
	`

	rows, err := r.db.Query(ctx, query, departmentID, levelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// scanOne scans a single student row
func (r *StudentRepository) scanOne(row pgx.Row) (*models.Student, error) {
	var student models.Student
	var photo *string
	err := row.Scan(
		&student.MatriculationNumber,
		&student.Name,
		&student.DepartmentID,
		&student.LevelID,
		&student.FingerprintTemplate,
		&photo,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	student.Photo = photo
	return &student, nil
}
