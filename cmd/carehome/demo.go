package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/carehome/carehome/internal/domain/medication"
	"github.com/carehome/carehome/internal/domain/occupancy"
	"github.com/carehome/carehome/internal/domain/staff"
	"github.com/carehome/carehome/internal/platform/auth"
	"github.com/carehome/carehome/internal/registry"
)

func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Scripted walkthrough of a full care-home day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if err := runDemo(ctx, a); err != nil {
				return err
			}
			return a.save(ctx)
		},
	}
}

// runDemo seeds a ward with two beds, rosters a nurse and a doctor for
// today, and walks an admission through prescription, administration and
// a bed move. State from earlier runs is discarded so the walkthrough is
// reproducible.
func runDemo(ctx context.Context, a *app) error {
	a.reg.Restore(&registry.Snapshot{Version: registry.SnapshotVersion})

	mgr, err := a.seedManager(ctx)
	if err != nil {
		return err
	}

	if _, err := a.occSvc.AddWard(ctx, mgr, "W1", "Ward 1"); err != nil {
		return err
	}
	if _, err := a.occSvc.AddRoom(ctx, mgr, "W1-R1", "W1"); err != nil {
		return err
	}
	for _, bedID := range []string{"W1-R1-B1", "W1-R1-B2"} {
		if _, err := a.occSvc.AddBed(ctx, mgr, bedID, "W1-R1"); err != nil {
			return err
		}
	}

	nurse, err := a.staffSvc.AddStaff(ctx, mgr, "N-1", "Nina Nurse", auth.RoleNurse, "nurse")
	if err != nil {
		return err
	}
	doctor, err := a.staffSvc.AddStaff(ctx, mgr, "D-1", "Dan Doctor", auth.RoleDoctor, "doctor")
	if err != nil {
		return err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if err := a.staffSvc.AllocateShift(ctx, mgr, nurse.ID, today, staff.ShiftNurseAM); err != nil {
		return err
	}
	if err := a.staffSvc.AllocateShift(ctx, mgr, doctor.ID, today, staff.ShiftDoctor1H); err != nil {
		return err
	}

	res := occupancy.NewResident("R-1", "Bob Resident", occupancy.GenderMale)
	if err := a.occSvc.Admit(ctx, mgr, res, "W1-R1-B1"); err != nil {
		return err
	}

	at := func(h, m int) time.Time {
		return today.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
	}

	orders := []medication.MedicationOrder{
		{Drug: "Amoxicillin", Dose: 500, Unit: "mg", Schedule: "8am, 8pm", Notes: "after food"},
	}
	p, err := a.medSvc.AttachPrescription(ctx, doctor, "W1-R1-B1", orders, at(9, 5))
	if err != nil {
		return err
	}
	fmt.Println("Prescription", p.ID, "attached at 09:05")

	if _, err := a.medSvc.Administer(ctx, nurse, "W1-R1-B1", "Amoxicillin", 500, "mg", "first dose", at(10, 30)); err != nil {
		return err
	}
	fmt.Println("Amoxicillin 500mg given at 10:30")

	// 14:30 is still inside the nurse's NURSE_AM window.
	if err := a.occSvc.Move(ctx, nurse, "W1-R1-B1", "W1-R1-B2", at(14, 30)); err != nil {
		return err
	}
	moved, err := a.occSvc.ResidentInBed(ctx, "W1-R1-B2")
	if err != nil {
		return err
	}
	fmt.Println("Resident now in W1-R1-B2:", moved.Name)

	fmt.Println()
	fmt.Println("--- Action Log ---")
	entries, err := a.auditSvc.List(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("%s | %s | %s | %s\n",
			e.At.Format("2006-01-02 15:04:05"), e.StaffID, e.Action, e.Details)
	}
	return nil
}
