package staff

import (
	"context"
	"fmt"
	"time"

	"github.com/carehome/carehome/internal/domain/audit"
	"github.com/carehome/carehome/internal/platform/auth"
	"github.com/carehome/carehome/pkg/cherr"
)

// Service implements staff management and shift allocation. All mutating
// operations are manager-gated and append one audit entry on success.
type Service struct {
	repo  Repository
	audit audit.Recorder
}

func NewService(repo Repository, rec audit.Recorder) *Service {
	return &Service{repo: repo, audit: rec}
}

// AddStaff registers a new staff member with a hashed password.
func (s *Service) AddStaff(ctx context.Context, actor *Staff, id, name string, role auth.Role, password string) (*Staff, error) {
	if err := auth.RequireRole(actor, auth.RoleManager); err != nil {
		return nil, err
	}
	if id == "" || name == "" {
		return nil, cherr.Validation("staff id and name are required")
	}
	if _, err := auth.ParseRole(string(role)); err != nil {
		return nil, err
	}

	member := New(id, name, role)
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	member.PasswordHash = hash

	if err := s.repo.Create(ctx, member); err != nil {
		return nil, err
	}
	if err := s.audit.Record(ctx, actor.ID, audit.ActionAddStaff, member.String()); err != nil {
		return nil, err
	}
	return member, nil
}

// SetPassword replaces a staff member's password.
func (s *Service) SetPassword(ctx context.Context, actor *Staff, staffID, newPassword string) error {
	if err := auth.RequireRole(actor, auth.RoleManager); err != nil {
		return err
	}
	member, err := s.repo.GetByID(ctx, staffID)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	member.PasswordHash = hash
	return s.audit.Record(ctx, actor.ID, audit.ActionModifyStaffPwd, member.String())
}

// Authenticate checks a staff member's password and returns the member on
// success.
func (s *Service) Authenticate(ctx context.Context, staffID, password string) (*Staff, error) {
	member, err := s.repo.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(member.PasswordHash, password) {
		return nil, cherr.Authorization("invalid password for %s", staffID)
	}
	return member, nil
}

// AllocateShift adds a shift kind to a staff member's roster for a date.
// The role's daily hour cap is checked against the new total; an
// over-limit add is rolled back so callers never observe an over-limit
// roster.
func (s *Service) AllocateShift(ctx context.Context, actor *Staff, staffID string, date time.Time, kind ShiftKind) error {
	if err := auth.RequireRole(actor, auth.RoleManager); err != nil {
		return err
	}
	member, err := s.repo.GetByID(ctx, staffID)
	if err != nil {
		return err
	}
	if err := s.allocate(member, date, kind); err != nil {
		return err
	}
	details := fmt.Sprintf("%s %s %s", staffID, DateKey(date), kind)
	return s.audit.Record(ctx, actor.ID, audit.ActionAllocateShift, details)
}

// allocate performs the add-then-check-cap sequence shared by
// AllocateShift and ModifyShift.
func (s *Service) allocate(member *Staff, date time.Time, kind ShiftKind) error {
	if _, err := ParseShiftKind(string(kind)); err != nil {
		return err
	}
	added := !member.Roster.Has(date, kind)
	member.Roster.Assign(date, kind)

	limit := auth.DailyHourCap(member.Role)
	if limit > 0 && member.Roster.HoursOn(date) > limit {
		if added {
			member.Roster.Unassign(date, kind)
		}
		return cherr.Roster("%s exceeds %dh on %s", member.Role, limit, DateKey(date))
	}
	return nil
}

// ModifyShift optionally removes one kind and adds another on the same
// date. The add funnels through the same cap logic as AllocateShift; if
// it is rejected, the removed kind is restored so the roster is left
// exactly as before the call.
func (s *Service) ModifyShift(ctx context.Context, actor *Staff, staffID string, date time.Time, remove, add ShiftKind) error {
	if err := auth.RequireRole(actor, auth.RoleManager); err != nil {
		return err
	}
	member, err := s.repo.GetByID(ctx, staffID)
	if err != nil {
		return err
	}

	removed := false
	if remove != "" {
		if _, err := ParseShiftKind(string(remove)); err != nil {
			return err
		}
		removed = member.Roster.Has(date, remove)
		member.Roster.Unassign(date, remove)
	}
	if add != "" {
		if err := s.allocate(member, date, add); err != nil {
			if removed {
				member.Roster.Assign(date, remove)
			}
			return err
		}
	}

	details := fmt.Sprintf("%s %s -%s +%s", staffID, DateKey(date), orNone(remove), orNone(add))
	return s.audit.Record(ctx, actor.ID, audit.ActionModifyShift, details)
}

// GetStaff fetches one staff member.
func (s *Service) GetStaff(ctx context.Context, id string) (*Staff, error) {
	return s.repo.GetByID(ctx, id)
}

// ListStaff returns all staff sorted by id.
func (s *Service) ListStaff(ctx context.Context) ([]*Staff, error) {
	return s.repo.List(ctx)
}

func orNone(k ShiftKind) string {
	if k == "" {
		return "none"
	}
	return string(k)
}
