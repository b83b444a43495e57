package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/carehome/carehome/internal/registry"
)

// FileStore keeps the snapshot as a JSON document on disk.
type FileStore struct {
	path string
	log  zerolog.Logger
}

func NewFileStore(path string, log zerolog.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

// Load reads the snapshot file. A missing file or an undecodable document
// yields (nil, nil): the caller starts from an empty registry.
func (s *FileStore) Load(_ context.Context) (*registry.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot %s: %w", s.path, err)
	}

	var snap registry.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("snapshot unreadable, starting empty")
		return nil, nil
	}
	if snap.Version != registry.SnapshotVersion {
		s.log.Warn().Int("version", snap.Version).Str("path", s.path).Msg("unsupported snapshot version, starting empty")
		return nil, nil
	}
	return &snap, nil
}

// Save writes the snapshot atomically via a temp file and rename.
func (s *FileStore) Save(_ context.Context, snap *registry.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	s.log.Info().Str("path", s.path).Int("bytes", len(data)).Msg("snapshot saved")
	return nil
}
