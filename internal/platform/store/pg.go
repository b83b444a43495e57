package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/carehome/carehome/internal/registry"
)

// PGStore keeps snapshots in a Postgres table, newest row wins. Each save
// appends a row so earlier snapshots remain inspectable.
type PGStore struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

func NewPGStore(pool *pgxpool.Pool, log zerolog.Logger) *PGStore {
	return &PGStore{pool: pool, log: log}
}

const schema = `
CREATE TABLE IF NOT EXISTS carehome_snapshot (
	id       BIGSERIAL PRIMARY KEY,
	version  INT NOT NULL,
	saved_at TIMESTAMPTZ NOT NULL,
	data     JSONB NOT NULL
)`

// Migrate creates the snapshot table.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create snapshot table: %w", err)
	}
	return nil
}

// Load fetches the most recent snapshot row. No rows means first run.
func (s *PGStore) Load(ctx context.Context) (*registry.Snapshot, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM carehome_snapshot ORDER BY id DESC LIMIT 1`,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var snap registry.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.log.Warn().Err(err).Msg("stored snapshot unreadable, starting empty")
		return nil, nil
	}
	if snap.Version != registry.SnapshotVersion {
		s.log.Warn().Int("version", snap.Version).Msg("unsupported snapshot version, starting empty")
		return nil, nil
	}
	return &snap, nil
}

// Save appends a snapshot row.
func (s *PGStore) Save(ctx context.Context, snap *registry.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO carehome_snapshot (version, saved_at, data) VALUES ($1, $2, $3)`,
		snap.Version, snap.SavedAt, data,
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	s.log.Info().Int("bytes", len(data)).Msg("snapshot saved to postgres")
	return nil
}
