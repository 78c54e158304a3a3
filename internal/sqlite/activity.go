package sqlite

import (
	"context"
	"fmt"

	"github.com/fias/marcaciones/internal/domain/activity"
)

// ActivityRepository implements repository.ActivityRepository for
// SQLite. The feed is bounded: inserting past the retention limit
// evicts the oldest entries.
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Log appends an entry and trims the feed to the retention limit. The
// seq column disambiguates entries created within one clock tick.
func (r *ActivityRepository) Log(ctx context.Context, entry *activity.Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO activity_log (id, message, level, actor, created_at, seq)
		VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM activity_log))
	`
	if _, err := tx.ExecContext(ctx, insert,
		entry.ID,
		entry.Message,
		entry.Level,
		entry.Actor,
		entry.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}

	trim := `
		DELETE FROM activity_log
		WHERE seq <= (SELECT MAX(seq) FROM activity_log) - ?
	`
	if _, err := tx.ExecContext(ctx, trim, activity.Retention); err != nil {
		return fmt.Errorf("failed to trim activity log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Recent returns up to limit entries, newest first
func (r *ActivityRepository) Recent(ctx context.Context, limit int) ([]activity.Entry, error) {
	query := `
		SELECT id, message, level, actor, created_at
		FROM activity_log
		ORDER BY seq DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var entries []activity.Entry
	for rows.Next() {
		var e activity.Entry
		if err := rows.Scan(&e.ID, &e.Message, &e.Level, &e.Actor, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}

	return entries, nil
}
