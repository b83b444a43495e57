package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/carehome/carehome/internal/domain/occupancy"
	"github.com/carehome/carehome/internal/domain/staff"
	"github.com/carehome/carehome/internal/platform/auth"
	"github.com/carehome/carehome/internal/registry"
)

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "carehome.json")
	fs := NewFileStore(path, zerolog.Nop())

	reg := registry.New()
	nurse := staff.New("N-1", "Nina", auth.RoleNurse)
	nurse.Roster.Assign(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), staff.ShiftNurseAM)
	require.NoError(t, reg.Staff.Create(ctx, nurse))
	require.NoError(t, reg.Occupancy.CreateBed(ctx, &occupancy.Bed{ID: "B1", RoomID: "R1"}))

	require.NoError(t, fs.Save(ctx, reg.Snapshot()))

	loaded, err := fs.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, registry.SnapshotVersion, loaded.Version)

	restored := registry.New()
	restored.Restore(loaded)

	got, err := restored.Staff.GetByID(ctx, "N-1")
	require.NoError(t, err)
	require.True(t, got.Roster.Has(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), staff.ShiftNurseAM))

	bed, err := restored.Occupancy.GetBed(ctx, "B1")
	require.NoError(t, err)
	require.True(t, bed.IsVacant())
}

func TestFileStore_MissingFileIsFirstRun(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "absent.json"), zerolog.Nop())
	snap, err := fs.Load(context.Background())
	require.NoError(t, err)
	require.Nil(t, snap)
}

func TestFileStore_CorruptFileIsFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carehome.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	fs := NewFileStore(path, zerolog.Nop())
	snap, err := fs.Load(context.Background())
	require.NoError(t, err)
	require.Nil(t, snap)
}

func TestFileStore_UnsupportedVersionIsFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carehome.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 99}`), 0o600))

	fs := NewFileStore(path, zerolog.Nop())
	snap, err := fs.Load(context.Background())
	require.NoError(t, err)
	require.Nil(t, snap)
}
