package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/authentikate/authentikate/internal/app/models"
	"github.com/authentikate/authentikate/internal/pkg/helpers"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Enrollment error types
var (
	ErrEnrollmentNotFound = errors.New("enrollment record not found")
)

// EnrollmentRepository handles database operations for the per-course
// enrollment ledger (course lists).
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
	}
}

// Upsert inserts an enrollment record, overwriting the CA mark when the
// (course, student) pair already exists. Re-uploading a course list is the
// only way an enrollment record changes.
func (r *EnrollmentRepository) Upsert(ctx context.Context, record *models.EnrollmentRecord) error {
	query := `
		INSERT INTO course_lists (course_id, matriculation_number, ca_mark)
		VALUES ($1, $2, $3)
		ON CONFLICT (course_id, matriculation_number)
		DO UPDATE SET ca_mark = EXCLUDED.ca_mark
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		record.CourseID,
		record.MatriculationNumber,
		helpers.GetNullFloat64(record.CAMark),
	).Scan(&record.ID)

	if err != nil {
		return fmt.Errorf("error upserting enrollment record: %w", err)
	}

	return nil
}

// UpsertTx is Upsert bound to an open transaction, so a whole course-list
// batch commits or rolls back as one unit.
func (r *EnrollmentRepository) UpsertTx(ctx context.Context, tx pgx.Tx, record *models.EnrollmentRecord) error {
	query := `
		INSERT INTO course_lists (course_id, matriculation_number, ca_mark)
		VALUES ($1, $2, $3)
		ON CONFLICT (course_id, matriculation_number)
		DO UPDATE SET ca_mark = EXCLUDED.ca_mark
		RETURNING id
	`

	err := tx.QueryRow(ctx, query,
		record.CourseID,
		record.MatriculationNumber,
		helpers.GetNullFloat64(record.CAMark),
	).Scan(&record.ID)

	if err != nil {
		return fmt.Errorf("error upserting enrollment record: %w", err)
	}

	return nil
}

// GetByCourseAndStudent retrieves the enrollment record for one student in
// one course.
func (r *EnrollmentRepository) GetByCourseAndStudent(ctx context.Context, courseID int64, matric string) (*models.EnrollmentRecord, error) {
	query := `
		SELECT id, course_id, matriculation_number, ca_mark
		FROM course_lists
		WHERE course_id = $1 AND matriculation_number = $2
	`

	var record models.EnrollmentRecord
	var caMark *float64
	err := r.db.QueryRow(ctx, query, courseID, matric).Scan(
		&record.ID,
		&record.CourseID,
		&record.MatriculationNumber,
		&caMark,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment record: %w", err)
	}

	record.CAMark = caMark
	return &record, nil
}

// GetCoursesByStudent retrieves every (course, ca_mark) pair for a student
func (r *EnrollmentRepository) GetCoursesByStudent(ctx context.Context, matric string) ([]models.EnrolledCourse, error) {
	query := `
		SELECT c.code, c.name, cl.ca_mark
		FROM course_lists cl
		JOIN courses c ON c.id = cl.course_id
		WHERE cl.matriculation_number = $1
		ORDER BY c.code
	`

	rows, err := r.db.Query(ctx, query, matric)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []models.EnrolledCourse
	for rows.Next() {
		var course models.EnrolledCourse
		var caMark *float64
		if err := rows.Scan(&course.CourseCode, &course.CourseName, &caMark); err != nil {
			return nil, err
		}
		course.CAMark = caMark
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// EnrolledStudent pairs a ledger row with the student's name for reporting.
type EnrolledStudent struct {
	MatriculationNumber string
	Name                string
	CAMark              *float64
}

// GetEnrolledStudents retrieves every student on a course list, with names
func (r *EnrollmentRepository) GetEnrolledStudents(ctx context.Context, courseID int64) ([]EnrolledStudent, error) {
	query := `
		SELECT s.matriculation_number, s.name, cl.ca_mark
		FROM course_lists cl
		JOIN students s ON s.matriculation_number = cl.matriculation_number
		WHERE cl.course_id = $1
		ORDER BY s.matriculation_number
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []EnrolledStudent
	for rows.Next() {
		var student EnrolledStudent
		var caMark *float64
		if err := rows.Scan(&student.MatriculationNumber, &student.Name, &caMark); err != nil {
			return nil, err
		}
		student.CAMark = caMark
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}
