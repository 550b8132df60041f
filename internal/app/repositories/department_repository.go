package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/authentikate/authentikate/internal/app/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Department error types
var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrLevelNotFound      = errors.New("level not found")
)

// DepartmentRepository handles database operations for departments and levels
type DepartmentRepository struct {
	db *pgxpool.Pool
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{
		db: db,
	}
}

// GetByID retrieves a department by ID
func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	query := `
		SELECT id, school_id, name
		FROM departments
		WHERE id = $1
	`

	var department models.Department
	err := r.db.QueryRow(ctx, query, id).Scan(
		&department.ID,
		&department.SchoolID,
		&department.Name,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}

	return &department, nil
}

// GetAll retrieves all departments
func (r *DepartmentRepository) GetAll(ctx context.Context) ([]*models.Department, error) {
	query := `
		SELECT id, school_id, name
		FROM departments
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		var department models.Department
		if err := rows.Scan(
			&department.ID,
			&department.SchoolID,
			&department.Name,
		); err != nil {
			return nil, err
		}
		departments = append(departments, &department)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return departments, nil
}

// GetLevel retrieves a level by ID, constrained to the given department.
// A level belonging to a different department is treated as not found.
func (r *DepartmentRepository) GetLevel(ctx context.Context, levelID, departmentID int64) (*models.Level, error) {
	query := `
		SELECT id, department_id, name
		FROM levels
		WHERE id = $1 AND department_id = $2
	`

	var level models.Level
	err := r.db.QueryRow(ctx, query, levelID, departmentID).Scan(
		&level.ID,
		&level.DepartmentID,
		&level.Name,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLevelNotFound
		}
		return nil, fmt.Errorf("error retrieving level: %w", err)
	}

	return &level, nil
}

// GetLevelsByDepartment retrieves all levels for a department
func (r *DepartmentRepository) GetLevelsByDepartment(ctx context.Context, departmentID int64) ([]*models.Level, error) {
	query := `
		SELECT id, department_id, name
		FROM levels
		WHERE department_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []*models.Level
	for rows.Next() {
		var level models.Level
		if err := rows.Scan(
			&level.ID,
			&level.DepartmentID,
			&level.Name,
		); err != nil {
			return nil, err
		}
		levels = append(levels, &level)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return levels, nil
}
