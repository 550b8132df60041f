package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/authentikate/authentikate/internal/app/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Course error types
var (
	ErrCourseNotFound = errors.New("course not found")
)

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `
		SELECT id, code, name, department_id, level_id
		FROM courses
		WHERE id = $1
	`

	var course models.Course
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Code,
		&course.Name,
		&course.DepartmentID,
		&course.LevelID,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// GetByCode retrieves a course by its unique code
func (r *CourseRepository) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	query := `
		SELECT id, code, name, department_id, level_id
		FROM courses
		WHERE code = $1
	`

	var course models.Course
	err := r.db.QueryRow(ctx, query, code).Scan(
		&course.ID,
		&course.Code,
		&course.Name,
		&course.DepartmentID,
		&course.LevelID,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course by code: %w", err)
	}

	return &course, nil
}

// GetByDepartment retrieves all courses offered by a department
func (r *CourseRepository) GetByDepartment(ctx context.Context, departmentID int64) ([]*models.Course, error) {
	query := `
		SELECT id, code, name, department_id, level_id
		FROM courses
		WHERE department_id = $1
		ORDER BY code
	`

	rows, err := r.db.Query(ctx, query, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID,
			&course.Code,
			&course.Name,
			&course.DepartmentID,
			&course.LevelID,
		); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}
