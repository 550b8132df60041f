package repositories

import (
	"context"
	"fmt"

	"github.com/authentikate/authentikate/internal/app/models"
	"github.com/authentikate/authentikate/internal/pkg/helpers"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrorLogRepository handles the append-only error journal. Entries are
// never updated or deleted.
type ErrorLogRepository struct {
	db *pgxpool.Pool
}

// NewErrorLogRepository creates a new error log repository
func NewErrorLogRepository(db *pgxpool.Pool) *ErrorLogRepository {
	return &ErrorLogRepository{
		db: db,
	}
}

// Append writes one journal entry
func (r *ErrorLogRepository) Append(ctx context.Context, entry *models.ErrorLogEntry) error {
	query := `
		INSERT INTO error_logs (session_id, matriculation_number, error_type, details, timestamp)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		entry.SessionID,
		helpers.GetNullString(entry.MatriculationNumber),
		string(entry.ErrorType),
		entry.Details,
		entry.Timestamp,
	).Scan(&entry.ID)

	if err != nil {
		return fmt.Errorf("error appending to error journal: %w", err)
	}

	return nil
}

// ListBySession retrieves every journal entry for a session, oldest first
func (r *ErrorLogRepository) ListBySession(ctx context.Context, sessionID int64) ([]*models.ErrorLogEntry, error) {
	query := `
		SELECT id, session_id, matriculation_number, error_type, details, timestamp
		FROM error_logs
		WHERE session_id = $1
		ORDER BY timestamp
	`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.ErrorLogEntry
	for rows.Next() {
		var entry models.ErrorLogEntry
		var matric *string
		var errorType string
		if err := rows.Scan(
			&entry.ID,
			&entry.SessionID,
			&matric,
			&errorType,
			&entry.Details,
			&entry.Timestamp,
		); err != nil {
			return nil, err
		}
		entry.MatriculationNumber = matric
		entry.ErrorType = models.ErrorType(errorType)
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
