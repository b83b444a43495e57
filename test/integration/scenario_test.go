package integration

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/carehome/carehome/internal/domain/audit"
	"github.com/carehome/carehome/internal/domain/medication"
	"github.com/carehome/carehome/internal/domain/occupancy"
	"github.com/carehome/carehome/internal/domain/staff"
	"github.com/carehome/carehome/internal/platform/auth"
	"github.com/carehome/carehome/internal/platform/store"
	"github.com/carehome/carehome/internal/registry"
	"github.com/carehome/carehome/pkg/cherr"
)

// harness wires a full in-memory stack the way the process entry point
// does.
type harness struct {
	reg      *registry.Registry
	staffSvc *staff.Service
	occSvc   *occupancy.Service
	medSvc   *medication.Service
	auditSvc *audit.Service
}

func newHarness() *harness {
	reg := registry.New()
	log := zerolog.Nop()
	auditSvc := audit.NewService(reg.Audit, log)
	return &harness{
		reg:      reg,
		staffSvc: staff.NewService(reg.Staff, auditSvc),
		occSvc:   occupancy.NewService(reg.Occupancy, auditSvc),
		medSvc:   medication.NewService(reg.Medication, reg.Occupancy, auditSvc),
		auditSvc: auditSvc,
	}
}

func at(day time.Time, h, m int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, time.UTC)
}

// TestCareDayLifecycle drives a full day through the real services: ward
// setup, rostering, admission, prescription, administration and a bed
// move, then checks the audit trail and a persistence round trip.
func TestCareDayLifecycle(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	mgr := staff.New("M-1", "Alice Manager", auth.RoleManager)
	require.NoError(t, h.reg.Staff.Create(ctx, mgr))

	var nurse, doctor *staff.Staff

	t.Run("Setup_Layout_And_Staff", func(t *testing.T) {
		_, err := h.occSvc.AddWard(ctx, mgr, "W1", "Ward 1")
		require.NoError(t, err)
		_, err = h.occSvc.AddRoom(ctx, mgr, "W1-R1", "W1")
		require.NoError(t, err)
		_, err = h.occSvc.AddBed(ctx, mgr, "B1", "W1-R1")
		require.NoError(t, err)
		_, err = h.occSvc.AddBed(ctx, mgr, "B2", "W1-R1")
		require.NoError(t, err)

		nurse, err = h.staffSvc.AddStaff(ctx, mgr, "N-1", "Nina Nurse", auth.RoleNurse, "nurse")
		require.NoError(t, err)
		doctor, err = h.staffSvc.AddStaff(ctx, mgr, "D-1", "Dan Doctor", auth.RoleDoctor, "doctor")
		require.NoError(t, err)

		require.NoError(t, h.staffSvc.AllocateShift(ctx, mgr, "N-1", day, staff.ShiftNurseAM))
		require.NoError(t, h.staffSvc.AllocateShift(ctx, mgr, "D-1", day, staff.ShiftDoctor1H))
	})

	t.Run("Nurse_Daily_Cap", func(t *testing.T) {
		err := h.staffSvc.AllocateShift(ctx, mgr, "N-1", day, staff.ShiftNursePM)
		require.True(t, cherr.IsKind(err, cherr.KindRoster))

		fresh, err := h.staffSvc.GetStaff(ctx, "N-1")
		require.NoError(t, err)
		require.False(t, fresh.Roster.Has(day, staff.ShiftNursePM))
	})

	t.Run("Admit", func(t *testing.T) {
		res := occupancy.NewResident("R-1", "Bob Resident", occupancy.GenderMale)
		require.NoError(t, h.occSvc.Admit(ctx, mgr, res, "B1"))

		bed, err := h.reg.Occupancy.GetBed(ctx, "B1")
		require.NoError(t, err)
		require.Equal(t, "R-1", bed.ResidentID)
		require.Equal(t, occupancy.GenderMale, bed.GenderTag)
	})

	t.Run("Prescribe_At_0905", func(t *testing.T) {
		orders := []medication.MedicationOrder{
			{Drug: "Amoxicillin", Dose: 500, Unit: "mg", Schedule: "8am, 8pm", Notes: "after food"},
		}
		p, err := h.medSvc.AttachPrescription(ctx, doctor, "B1", orders, at(day, 9, 5))
		require.NoError(t, err)
		require.Equal(t, "R-1", p.ResidentID)
		require.Equal(t, "D-1", p.DoctorID)

		res, err := h.reg.Occupancy.GetResident(ctx, "R-1")
		require.NoError(t, err)
		require.Contains(t, res.PrescriptionIDs, p.ID)
	})

	t.Run("Prescribe_Outside_Window_Fails", func(t *testing.T) {
		orders := []medication.MedicationOrder{{Drug: "Ibuprofen", Dose: 200, Unit: "mg"}}
		_, err := h.medSvc.AttachPrescription(ctx, doctor, "B1", orders, at(day, 10, 30))
		require.True(t, cherr.IsKind(err, cherr.KindAuthorization))
	})

	t.Run("Administer_At_1030", func(t *testing.T) {
		adm, err := h.medSvc.Administer(ctx, nurse, "B1", "Amoxicillin", 500, "mg", "first dose", at(day, 10, 30))
		require.NoError(t, err)
		require.Equal(t, "R-1", adm.ResidentID)
		require.Equal(t, "N-1", adm.NurseID)
	})

	t.Run("Move_At_1430_Within_AM_Window", func(t *testing.T) {
		require.NoError(t, h.occSvc.Move(ctx, nurse, "B1", "B2", at(day, 14, 30)))

		moved, err := h.occSvc.ResidentInBed(ctx, "B2")
		require.NoError(t, err)
		require.Equal(t, "R-1", moved.ID)

		b1, err := h.reg.Occupancy.GetBed(ctx, "B1")
		require.NoError(t, err)
		require.True(t, b1.IsVacant())
	})

	t.Run("Move_At_1630_Uncovered_Fails", func(t *testing.T) {
		err := h.occSvc.Move(ctx, nurse, "B2", "B1", at(day, 16, 30))
		require.True(t, cherr.IsKind(err, cherr.KindAuthorization))

		still, err := h.occSvc.ResidentInBed(ctx, "B2")
		require.NoError(t, err)
		require.Equal(t, "R-1", still.ID)
	})

	t.Run("Action_Log", func(t *testing.T) {
		entries, err := h.auditSvc.List(ctx)
		require.NoError(t, err)

		var actions []string
		for _, e := range entries {
			actions = append(actions, e.Action)
		}
		require.Equal(t, []string{
			audit.ActionAddWard,
			audit.ActionAddRoom,
			audit.ActionAddBed,
			audit.ActionAddBed,
			audit.ActionAddStaff,
			audit.ActionAddStaff,
			audit.ActionAllocateShift,
			audit.ActionAllocateShift,
			audit.ActionAddResident,
			audit.ActionAddPrescription,
			audit.ActionAdminister,
			audit.ActionMoveResident,
		}, actions)
	})

	t.Run("Snapshot_Round_Trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "carehome.json")
		fs := store.NewFileStore(path, zerolog.Nop())
		require.NoError(t, fs.Save(ctx, h.reg.Snapshot()))

		loaded, err := fs.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, loaded)

		restored := registry.New()
		restored.Restore(loaded)

		res, err := restored.Occupancy.GetResident(ctx, "R-1")
		require.NoError(t, err)
		require.Equal(t, "B2", res.CurrentBedID)

		member, err := restored.Staff.GetByID(ctx, "N-1")
		require.NoError(t, err)
		require.True(t, member.Roster.Has(day, staff.ShiftNurseAM))

		entries, err := restored.Audit.List(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 12)
	})
}

// TestPMCoverageEnablesEveningMove shows the roster change that makes an
// evening move legal for a nurse without an AM shift.
func TestPMCoverageEnablesEveningMove(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	day := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	mgr := staff.New("M-1", "Alice Manager", auth.RoleManager)
	require.NoError(t, h.reg.Staff.Create(ctx, mgr))

	_, err := h.occSvc.AddWard(ctx, mgr, "W1", "Ward 1")
	require.NoError(t, err)
	_, err = h.occSvc.AddRoom(ctx, mgr, "W1-R1", "W1")
	require.NoError(t, err)
	_, err = h.occSvc.AddBed(ctx, mgr, "B1", "W1-R1")
	require.NoError(t, err)
	_, err = h.occSvc.AddBed(ctx, mgr, "B2", "W1-R1")
	require.NoError(t, err)

	nurse, err := h.staffSvc.AddStaff(ctx, mgr, "N-2", "Paula PM", auth.RoleNurse, "pm")
	require.NoError(t, err)
	require.NoError(t, h.occSvc.Admit(ctx, mgr, occupancy.NewResident("R-2", "Rita", occupancy.GenderFemale), "B1"))

	// No roster yet, so the evening move is rejected.
	err = h.occSvc.Move(ctx, nurse, "B1", "B2", at(day, 16, 30))
	require.True(t, cherr.IsKind(err, cherr.KindAuthorization))

	require.NoError(t, h.staffSvc.AllocateShift(ctx, mgr, "N-2", day, staff.ShiftNursePM))
	nurse, err = h.staffSvc.GetStaff(ctx, "N-2")
	require.NoError(t, err)

	require.NoError(t, h.occSvc.Move(ctx, nurse, "B1", "B2", at(day, 16, 30)))
	moved, err := h.occSvc.ResidentInBed(ctx, "B2")
	require.NoError(t, err)
	require.Equal(t, "R-2", moved.ID)
}
