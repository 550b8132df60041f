// Package seed creates the default reference data the admin forms depend
// on: a school, its departments, their levels and a starter course catalog.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type seedCourse struct {
	code  string
	name  string
	level string
}

var defaultDepartments = map[string][]seedCourse{
	"Computer Science": {
		{"CSC101", "Introduction to Computing", "100"},
		{"CSC202", "Data Structures", "200"},
		{"CSC301", "Operating Systems", "300"},
	},
	"Electrical Engineering": {
		{"EEE101", "Circuit Theory I", "100"},
		{"EEE205", "Electromagnetic Fields", "200"},
	},
	"Mathematics": {
		{"MTH101", "General Mathematics I", "100"},
		{"MTH201", "Mathematical Methods", "200"},
	},
}

var defaultLevels = []string{"100", "200", "300", "400"}

// CreateDefaultData inserts the default school, departments, levels and
// courses if they do not exist yet. Reruns are no-ops.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/creating default reference data...")
	var finalErr error

	var schoolID int64
	err := dbPool.QueryRow(ctx, `
		INSERT INTO schools (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, "School of Science and Technology").Scan(&schoolID)
	if err != nil {
		return fmt.Errorf("failed to seed default school: %w", err)
	}

	for deptName, courses := range defaultDepartments {
		var deptID int64
		err := dbPool.QueryRow(ctx, `
			INSERT INTO departments (school_id, name) VALUES ($1, $2)
			ON CONFLICT (school_id, name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, schoolID, deptName).Scan(&deptID)
		if err != nil {
			lgr.Error().Err(err).Str("department", deptName).Msg("Error seeding department")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		levelIDs := make(map[string]int64, len(defaultLevels))
		for _, levelName := range defaultLevels {
			var levelID int64
			err := dbPool.QueryRow(ctx, `
				INSERT INTO levels (department_id, name) VALUES ($1, $2)
				ON CONFLICT (department_id, name) DO UPDATE SET name = EXCLUDED.name
				RETURNING id
			`, deptID, levelName).Scan(&levelID)
			if err != nil {
				lgr.Error().Err(err).Str("department", deptName).Str("level", levelName).Msg("Error seeding level")
				finalErr = errors.Join(finalErr, err)
				continue
			}
			levelIDs[levelName] = levelID
		}

		for _, course := range courses {
			levelID, ok := levelIDs[course.level]
			if !ok {
				continue
			}
			_, err := dbPool.Exec(ctx, `
				INSERT INTO courses (code, name, department_id, level_id) VALUES ($1, $2, $3, $4)
				ON CONFLICT (code) DO NOTHING
			`, course.code, course.name, deptID, levelID)
			if err != nil {
				lgr.Error().Err(err).Str("course", course.code).Msg("Error seeding course")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default reference data in place")
	}
	return finalErr
}
