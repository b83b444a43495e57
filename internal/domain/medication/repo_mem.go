package medication

import (
	"context"
	"sort"

	"github.com/carehome/carehome/pkg/cherr"
)

// MemRepo is the in-memory prescription and administration collections.
type MemRepo struct {
	prescriptions   map[string]*Prescription
	administrations []*Administration
}

func NewMemRepo() *MemRepo {
	return &MemRepo{prescriptions: make(map[string]*Prescription)}
}

func (r *MemRepo) CreatePrescription(_ context.Context, p *Prescription) error {
	if _, ok := r.prescriptions[p.ID]; ok {
		return cherr.Validation("prescription already exists: %s", p.ID)
	}
	r.prescriptions[p.ID] = p
	return nil
}

func (r *MemRepo) GetPrescription(_ context.Context, id string) (*Prescription, error) {
	p, ok := r.prescriptions[id]
	if !ok {
		return nil, cherr.NotFound("prescription not found: %s", id)
	}
	return p, nil
}

func (r *MemRepo) ListPrescriptionsByResident(_ context.Context, residentID string) ([]*Prescription, error) {
	var out []*Prescription
	for _, p := range r.prescriptions {
		if p.ResidentID == residentID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemRepo) AppendAdministration(_ context.Context, a *Administration) error {
	r.administrations = append(r.administrations, a)
	return nil
}

func (r *MemRepo) ListAdministrations(_ context.Context) ([]*Administration, error) {
	out := make([]*Administration, len(r.administrations))
	copy(out, r.administrations)
	return out, nil
}

func (r *MemRepo) ListAdministrationsByResident(_ context.Context, residentID string) ([]*Administration, error) {
	var out []*Administration
	for _, a := range r.administrations {
		if a.ResidentID == residentID {
			out = append(out, a)
		}
	}
	return out, nil
}

// ExportPrescriptions returns the prescriptions for snapshotting, sorted
// by id.
func (r *MemRepo) ExportPrescriptions() []*Prescription {
	out := make([]*Prescription, 0, len(r.prescriptions))
	for _, p := range r.prescriptions {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ExportAdministrations returns the administration records in append order.
func (r *MemRepo) ExportAdministrations() []*Administration {
	return r.administrations
}

// Import replaces both collections from a snapshot.
func (r *MemRepo) Import(prescriptions []*Prescription, administrations []*Administration) {
	r.prescriptions = make(map[string]*Prescription, len(prescriptions))
	for _, p := range prescriptions {
		r.prescriptions[p.ID] = p
	}
	r.administrations = administrations
}
