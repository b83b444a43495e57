// Package store persists full registry snapshots. A store is used only at
// process start (Load) and exit (Save), never mid-operation.
package store

import (
	"context"

	"github.com/carehome/carehome/internal/registry"
)

// Store loads and saves full-state snapshots. Load returns (nil, nil)
// when no usable snapshot exists, which callers treat as a first run.
type Store interface {
	Load(ctx context.Context) (*registry.Snapshot, error)
	Save(ctx context.Context, snap *registry.Snapshot) error
}
