package activity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Service records and lists system activity. Failures to record are
// logged and swallowed; the feed is informational and must never fail
// the operation being recorded.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Record appends an entry to the feed.
func (s *Service) Record(ctx context.Context, level, format string, args ...any) {
	entry := &Entry{
		ID:        uuid.NewString(),
		Message:   fmt.Sprintf(format, args...),
		Level:     level,
		Actor:     "Sistema",
		CreatedAt: time.Now(),
	}
	if err := s.repo.Log(ctx, entry); err != nil && s.logger != nil {
		s.logger.Warn("failed to record activity", "error", err)
	}
}

// Recent returns up to limit entries, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > Retention {
		limit = Retention
	}
	return s.repo.Recent(ctx, limit)
}
