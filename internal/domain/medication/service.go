package medication

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carehome/carehome/internal/domain/audit"
	"github.com/carehome/carehome/internal/domain/occupancy"
	"github.com/carehome/carehome/internal/domain/staff"
	"github.com/carehome/carehome/internal/platform/auth"
	"github.com/carehome/carehome/pkg/cherr"
)

// Service implements the clinical workflow against the occupancy state.
type Service struct {
	repo  Repository
	occ   occupancy.Repository
	audit audit.Recorder
	now   func() time.Time
	newID func() string
}

func NewService(repo Repository, occ occupancy.Repository, rec audit.Recorder) *Service {
	return &Service{
		repo:  repo,
		occ:   occ,
		audit: rec,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// SetClock overrides the time source; intended for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// AttachPrescription creates a prescription for the resident currently in
// the given bed. Requires a doctor who is roster-covered at the supplied
// time. All orders are validated before anything is stored.
func (s *Service) AttachPrescription(ctx context.Context, actor *staff.Staff, bedID string, orders []MedicationOrder, when time.Time) (*Prescription, error) {
	if err := auth.RequireRoleOnDuty(actor, auth.RoleDoctor, when); err != nil {
		return nil, err
	}
	res, err := s.residentInBed(ctx, bedID)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return nil, err
		}
	}

	p := &Prescription{
		ID:         s.newID(),
		ResidentID: res.ID,
		DoctorID:   actor.ID,
		CreatedAt:  s.now().UTC(),
		Orders:     append([]MedicationOrder(nil), orders...),
	}
	if err := s.repo.CreatePrescription(ctx, p); err != nil {
		return nil, err
	}
	res.AttachPrescription(p.ID)

	details := fmt.Sprintf("%s %s orders=%d", res.ID, p.ID, len(p.Orders))
	if err := s.audit.Record(ctx, actor.ID, audit.ActionAddPrescription, details); err != nil {
		return nil, err
	}
	return p, nil
}

// Administer appends an administration record for the resident currently
// in the given bed. Requires a nurse who is roster-covered at the supplied
// time. What is administered is not checked against any prescription.
func (s *Service) Administer(ctx context.Context, actor *staff.Staff, bedID, drug string, dose float64, unit, notes string, when time.Time) (*Administration, error) {
	if err := auth.RequireRoleOnDuty(actor, auth.RoleNurse, when); err != nil {
		return nil, err
	}
	res, err := s.residentInBed(ctx, bedID)
	if err != nil {
		return nil, err
	}
	if drug == "" {
		return nil, cherr.Validation("drug name is required")
	}
	if dose <= 0 {
		return nil, cherr.Validation("dose must be positive, got %v", dose)
	}

	rec := &Administration{
		ResidentID: res.ID,
		Drug:       drug,
		Dose:       dose,
		Unit:       unit,
		Time:       when,
		NurseID:    actor.ID,
		Notes:      notes,
	}
	if err := s.repo.AppendAdministration(ctx, rec); err != nil {
		return nil, err
	}

	details := fmt.Sprintf("%s %s %v%s", res.ID, drug, dose, unit)
	if err := s.audit.Record(ctx, actor.ID, audit.ActionAdminister, details); err != nil {
		return nil, err
	}
	return rec, nil
}

// GetPrescription fetches one prescription by id.
func (s *Service) GetPrescription(ctx context.Context, id string) (*Prescription, error) {
	return s.repo.GetPrescription(ctx, id)
}

// ListPrescriptions returns a resident's prescriptions in creation order.
func (s *Service) ListPrescriptions(ctx context.Context, residentID string) ([]*Prescription, error) {
	return s.repo.ListPrescriptionsByResident(ctx, residentID)
}

// ListAdministrations returns a resident's administration records.
func (s *Service) ListAdministrations(ctx context.Context, residentID string) ([]*Administration, error) {
	return s.repo.ListAdministrationsByResident(ctx, residentID)
}

func (s *Service) residentInBed(ctx context.Context, bedID string) (*occupancy.Resident, error) {
	b, err := s.occ.GetBed(ctx, bedID)
	if err != nil {
		return nil, err
	}
	if b.IsVacant() {
		return nil, cherr.NotFound("no resident in bed: %s", bedID)
	}
	return s.occ.GetResident(ctx, b.ResidentID)
}
