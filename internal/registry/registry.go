// Package registry bundles the in-memory entity collections into one
// explicitly constructed object. It replaces ambient global state: the
// process builds a Registry once at start, injects its repositories into
// the workflow services, and snapshots it at exit.
package registry

import (
	"time"

	"github.com/carehome/carehome/internal/domain/audit"
	"github.com/carehome/carehome/internal/domain/medication"
	"github.com/carehome/carehome/internal/domain/occupancy"
	"github.com/carehome/carehome/internal/domain/staff"
)

// SnapshotVersion identifies the snapshot document layout.
const SnapshotVersion = 1

// Registry owns every entity collection.
type Registry struct {
	Staff      *staff.MemRepo
	Occupancy  *occupancy.MemRepo
	Medication *medication.MemRepo
	Audit      *audit.MemRepo
}

func New() *Registry {
	return &Registry{
		Staff:      staff.NewMemRepo(),
		Occupancy:  occupancy.NewMemRepo(),
		Medication: medication.NewMemRepo(),
		Audit:      audit.NewMemRepo(),
	}
}

// Snapshot is the versioned full-state document persisted between runs.
type Snapshot struct {
	Version         int                          `json:"version"`
	SavedAt         time.Time                    `json:"saved_at"`
	Staff           []*staff.Staff               `json:"staff"`
	Wards           []*occupancy.Ward            `json:"wards"`
	Rooms           []*occupancy.Room            `json:"rooms"`
	Beds            []*occupancy.Bed             `json:"beds"`
	Residents       []*occupancy.Resident        `json:"residents"`
	Prescriptions   []*medication.Prescription   `json:"prescriptions"`
	Administrations []*medication.Administration `json:"administrations"`
	Log             []*audit.Entry               `json:"log"`
}

// Snapshot captures the full registry state.
func (r *Registry) Snapshot() *Snapshot {
	return &Snapshot{
		Version:         SnapshotVersion,
		SavedAt:         time.Now().UTC(),
		Staff:           r.Staff.ExportAll(),
		Wards:           r.Occupancy.ExportWards(),
		Rooms:           r.Occupancy.ExportRooms(),
		Beds:            r.Occupancy.ExportBeds(),
		Residents:       r.Occupancy.ExportResidents(),
		Prescriptions:   r.Medication.ExportPrescriptions(),
		Administrations: r.Medication.ExportAdministrations(),
		Log:             r.Audit.ExportAll(),
	}
}

// Restore replaces all collections from a snapshot. A nil snapshot leaves
// the registry empty, which covers the first-run case.
func (r *Registry) Restore(s *Snapshot) {
	if s == nil {
		return
	}
	r.Staff.ImportAll(s.Staff)
	r.Occupancy.Import(s.Wards, s.Rooms, s.Beds, s.Residents)
	r.Medication.Import(s.Prescriptions, s.Administrations)
	r.Audit.ImportAll(s.Log)
}
