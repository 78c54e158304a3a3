package activity

import "context"

// Repository provides persistence for the activity feed. Implementations
// keep only the most recent entries (see Retention).
type Repository interface {
	Log(ctx context.Context, entry *Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

// Retention is the number of entries kept in the feed.
const Retention = 50
