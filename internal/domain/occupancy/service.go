package occupancy

import (
	"context"
	"fmt"
	"time"

	"github.com/carehome/carehome/internal/domain/audit"
	"github.com/carehome/carehome/internal/domain/staff"
	"github.com/carehome/carehome/internal/platform/auth"
	"github.com/carehome/carehome/pkg/cherr"
)

// Service implements layout registration and the admission/move workflow.
// Every operation validates all preconditions before the first mutation,
// so a failure never leaves partial state.
type Service struct {
	repo  Repository
	audit audit.Recorder
}

func NewService(repo Repository, rec audit.Recorder) *Service {
	return &Service{repo: repo, audit: rec}
}

// AddWard registers a new ward.
func (s *Service) AddWard(ctx context.Context, actor *staff.Staff, id, name string) (*Ward, error) {
	if err := auth.RequireRole(actor, auth.RoleManager); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, cherr.Validation("ward id is required")
	}
	w := &Ward{ID: id, Name: name}
	if err := s.repo.CreateWard(ctx, w); err != nil {
		return nil, err
	}
	if err := s.audit.Record(ctx, actor.ID, audit.ActionAddWard, id); err != nil {
		return nil, err
	}
	return w, nil
}

// AddRoom registers a new room inside an existing ward.
func (s *Service) AddRoom(ctx context.Context, actor *staff.Staff, id, wardID string) (*Room, error) {
	if err := auth.RequireRole(actor, auth.RoleManager); err != nil {
		return nil, err
	}
	w, err := s.repo.GetWard(ctx, wardID)
	if err != nil {
		return nil, err
	}
	rm := &Room{ID: id, WardID: wardID}
	if err := s.repo.CreateRoom(ctx, rm); err != nil {
		return nil, err
	}
	w.RoomIDs = append(w.RoomIDs, rm.ID)
	if err := s.audit.Record(ctx, actor.ID, audit.ActionAddRoom, fmt.Sprintf("%s in %s", id, wardID)); err != nil {
		return nil, err
	}
	return rm, nil
}

// AddBed registers a new vacant bed inside an existing room.
func (s *Service) AddBed(ctx context.Context, actor *staff.Staff, id, roomID string) (*Bed, error) {
	if err := auth.RequireRole(actor, auth.RoleManager); err != nil {
		return nil, err
	}
	rm, err := s.repo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	b := &Bed{ID: id, RoomID: roomID}
	if err := s.repo.CreateBed(ctx, b); err != nil {
		return nil, err
	}
	rm.BedIDs = append(rm.BedIDs, b.ID)
	if err := s.audit.Record(ctx, actor.ID, audit.ActionAddBed, fmt.Sprintf("%s in %s", id, roomID)); err != nil {
		return nil, err
	}
	return b, nil
}

// Admit registers a new resident and binds them to a vacant bed in one
// atomic step.
func (s *Service) Admit(ctx context.Context, actor *staff.Staff, res *Resident, bedID string) error {
	if err := auth.RequireRole(actor, auth.RoleManager); err != nil {
		return err
	}
	b, err := s.repo.GetBed(ctx, bedID)
	if err != nil {
		return err
	}
	if !b.IsVacant() {
		return cherr.Allocation("bed occupied: %s", bedID)
	}
	if err := s.repo.CreateResident(ctx, res); err != nil {
		return err
	}

	b.Occupy(res.ID, res.Gender)
	res.CurrentBedID = b.ID

	return s.audit.Record(ctx, actor.ID, audit.ActionAddResident, fmt.Sprintf("%s -> %s", res.ID, bedID))
}

// Move relocates the resident of one bed to another. Requires a nurse
// who is roster-covered at the time of the move. Both beds are validated
// before any mutation.
func (s *Service) Move(ctx context.Context, actor *staff.Staff, fromBedID, toBedID string, when time.Time) error {
	if err := auth.RequireRoleOnDuty(actor, auth.RoleNurse, when); err != nil {
		return err
	}

	from, err := s.repo.GetBed(ctx, fromBedID)
	if err != nil {
		return err
	}
	to, err := s.repo.GetBed(ctx, toBedID)
	if err != nil {
		return err
	}
	if from.IsVacant() {
		return cherr.Allocation("source bed empty: %s", fromBedID)
	}
	if !to.IsVacant() {
		return cherr.Allocation("target bed occupied: %s", toBedID)
	}
	res, err := s.repo.GetResident(ctx, from.ResidentID)
	if err != nil {
		return err
	}

	from.Vacate()
	to.Occupy(res.ID, res.Gender)
	res.CurrentBedID = to.ID

	details := fmt.Sprintf("%s %s -> %s", res.ID, fromBedID, toBedID)
	return s.audit.Record(ctx, actor.ID, audit.ActionMoveResident, details)
}

// ResidentInBed returns the resident occupying a bed. Any staff member
// may query it.
func (s *Service) ResidentInBed(ctx context.Context, bedID string) (*Resident, error) {
	b, err := s.repo.GetBed(ctx, bedID)
	if err != nil {
		return nil, err
	}
	if b.IsVacant() {
		return nil, cherr.NotFound("no resident in bed: %s", bedID)
	}
	return s.repo.GetResident(ctx, b.ResidentID)
}

// ListBeds returns every bed with its occupancy state.
func (s *Service) ListBeds(ctx context.Context) ([]*Bed, error) {
	return s.repo.ListBeds(ctx)
}

// ListResidents returns every registered resident.
func (s *Service) ListResidents(ctx context.Context) ([]*Resident, error) {
	return s.repo.ListResidents(ctx)
}

// ListWards returns the ward layout.
func (s *Service) ListWards(ctx context.Context) ([]*Ward, error) {
	return s.repo.ListWards(ctx)
}
