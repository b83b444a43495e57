package audit

import "context"

// Recorder is the append-only logging capability consumed by the workflow
// services.
type Recorder interface {
	Record(ctx context.Context, staffID, action, details string) error
}

// Repository stores log entries.
type Repository interface {
	Append(ctx context.Context, e *Entry) error
	List(ctx context.Context) ([]*Entry, error)
}
