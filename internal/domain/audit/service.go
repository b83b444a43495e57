package audit

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Service timestamps and appends entries, and exposes the log to callers.
type Service struct {
	repo Repository
	now  func() time.Time
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, now: time.Now, log: log}
}

// SetClock overrides the time source; intended for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Record appends one entry on behalf of a workflow operation.
func (s *Service) Record(ctx context.Context, staffID, action, details string) error {
	e := &Entry{
		At:      s.now().UTC(),
		StaffID: staffID,
		Action:  action,
		Details: details,
	}
	if err := s.repo.Append(ctx, e); err != nil {
		return err
	}
	s.log.Debug().
		Str("staff_id", staffID).
		Str("action", action).
		Str("details", details).
		Msg("action recorded")
	return nil
}

// List returns the entries in append order.
func (s *Service) List(ctx context.Context) ([]*Entry, error) {
	return s.repo.List(ctx)
}
