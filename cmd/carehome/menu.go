package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/carehome/carehome/internal/domain/medication"
	"github.com/carehome/carehome/internal/domain/occupancy"
	"github.com/carehome/carehome/internal/domain/staff"
	"github.com/carehome/carehome/internal/platform/auth"
	"github.com/carehome/carehome/pkg/cherr"
)

func menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive care-home console",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			mgr, err := a.seedManager(ctx)
			if err != nil {
				return err
			}
			return runMenu(ctx, a, mgr)
		},
	}
}

// console wraps line-oriented stdin prompting for the menu.
type console struct {
	in *bufio.Scanner
}

func newConsole() *console {
	return &console{in: bufio.NewScanner(os.Stdin)}
}

func (c *console) readLine(prompt string) string {
	fmt.Print(prompt)
	if !c.in.Scan() {
		return ""
	}
	return strings.TrimSpace(c.in.Text())
}

func (c *console) readInt(prompt string) int {
	for {
		s := c.readLine(prompt)
		n, err := strconv.Atoi(s)
		if err == nil {
			return n
		}
		fmt.Println("Please enter a number.")
	}
}

func (c *console) readFloat(prompt string) float64 {
	for {
		s := c.readLine(prompt)
		f, err := strconv.ParseFloat(s, 64)
		if err == nil {
			return f
		}
		fmt.Println("Please enter a number.")
	}
}

func (c *console) readDate(prompt string) time.Time {
	for {
		s := c.readLine(prompt)
		d, err := time.Parse("2006-01-02", s)
		if err == nil {
			return d
		}
		fmt.Println("Please use yyyy-mm-dd.")
	}
}

// readDateTime combines a date prompt and a HH:mm time prompt into one
// instant.
func (c *console) readDateTime() time.Time {
	d := c.readDate("Date (yyyy-mm-dd): ")
	for {
		s := c.readLine("Time (HH:mm): ")
		t, err := time.Parse("15:04", s)
		if err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
		}
		fmt.Println("Please use HH:mm.")
	}
}

func (c *console) readShiftKind() staff.ShiftKind {
	for {
		fmt.Println("  1) NURSE_AM  08:00-16:00")
		fmt.Println("  2) NURSE_PM  14:00-22:00")
		fmt.Println("  3) DOCTOR_1H 09:00-10:00")
		switch c.readInt("Shift type: ") {
		case 1:
			return staff.ShiftNurseAM
		case 2:
			return staff.ShiftNursePM
		case 3:
			return staff.ShiftDoctor1H
		}
		fmt.Println("Pick 1-3.")
	}
}

func (c *console) readGender() occupancy.Gender {
	for {
		switch c.readInt("Gender (1=M, 2=F): ") {
		case 1:
			return occupancy.GenderMale
		case 2:
			return occupancy.GenderFemale
		}
		fmt.Println("Pick 1 or 2.")
	}
}

func runMenu(ctx context.Context, a *app, mgr *staff.Staff) error {
	c := newConsole()
	fmt.Println("Care Home Console — acting manager:", mgr.String())

	for {
		fmt.Println()
		fmt.Println(" 1) Add nurse")
		fmt.Println(" 2) Add doctor")
		fmt.Println(" 3) Modify staff password")
		fmt.Println(" 4) Allocate shift")
		fmt.Println(" 5) Add ward / room / bed")
		fmt.Println(" 6) Admit resident to vacant bed")
		fmt.Println(" 7) Check resident details by bed")
		fmt.Println(" 8) Doctor: attach prescription")
		fmt.Println(" 9) Nurse: administer medicine")
		fmt.Println("10) Nurse: move resident between beds")
		fmt.Println("11) Show action log")
		fmt.Println("12) List residents and beds")
		fmt.Println(" 0) Save and exit")

		switch c.readInt("Choice: ") {
		case 1:
			addStaff(ctx, a, c, mgr, auth.RoleNurse)
		case 2:
			addStaff(ctx, a, c, mgr, auth.RoleDoctor)
		case 3:
			modifyPassword(ctx, a, c, mgr)
		case 4:
			allocateShift(ctx, a, c, mgr)
		case 5:
			addLocation(ctx, a, c, mgr)
		case 6:
			admitResident(ctx, a, c, mgr)
		case 7:
			checkResident(ctx, a, c)
		case 8:
			attachPrescription(ctx, a, c)
		case 9:
			administer(ctx, a, c)
		case 10:
			moveResident(ctx, a, c)
		case 11:
			showLog(ctx, a)
		case 12:
			listOccupancy(ctx, a)
		case 0:
			if err := a.save(ctx); err != nil {
				return err
			}
			fmt.Println("State saved. Bye.")
			return nil
		default:
			fmt.Println("Unknown choice.")
		}
	}
}

func report(err error) {
	if err != nil {
		fmt.Printf("ERROR: %s - %v\n", cherr.KindOf(err), err)
	}
}

func addStaff(ctx context.Context, a *app, c *console, mgr *staff.Staff, role auth.Role) {
	id := c.readLine("Staff ID: ")
	name := c.readLine("Name: ")
	password := c.readLine("Password: ")
	member, err := a.staffSvc.AddStaff(ctx, mgr, id, name, role, password)
	if err != nil {
		report(err)
		return
	}
	fmt.Println("Added", member.String())
}

func modifyPassword(ctx context.Context, a *app, c *console, mgr *staff.Staff) {
	id := c.readLine("Staff ID: ")
	password := c.readLine("New password: ")
	if err := a.staffSvc.SetPassword(ctx, mgr, id, password); err != nil {
		report(err)
		return
	}
	fmt.Println("Password updated.")
}

func allocateShift(ctx context.Context, a *app, c *console, mgr *staff.Staff) {
	id := c.readLine("Staff ID: ")
	if member, err := a.staffSvc.GetStaff(ctx, id); err == nil {
		if kinds := auth.PolicyFor(member.Role).ShiftKinds; len(kinds) > 0 {
			fmt.Printf("Usual shifts for %s: %s\n", member.Role, strings.Join(kinds, ", "))
		}
	}
	date := c.readDate("Date (yyyy-mm-dd): ")
	kind := c.readShiftKind()
	if err := a.staffSvc.AllocateShift(ctx, mgr, id, date, kind); err != nil {
		report(err)
		return
	}
	fmt.Printf("Allocated %s to %s on %s.\n", kind, id, staff.DateKey(date))
}

func addLocation(ctx context.Context, a *app, c *console, mgr *staff.Staff) {
	switch c.readInt("1) Ward  2) Room  3) Bed: ") {
	case 1:
		id := c.readLine("Ward ID: ")
		name := c.readLine("Ward name: ")
		if _, err := a.occSvc.AddWard(ctx, mgr, id, name); err != nil {
			report(err)
			return
		}
	case 2:
		id := c.readLine("Room ID: ")
		ward := c.readLine("Parent ward ID: ")
		if _, err := a.occSvc.AddRoom(ctx, mgr, id, ward); err != nil {
			report(err)
			return
		}
	case 3:
		id := c.readLine("Bed ID: ")
		room := c.readLine("Parent room ID: ")
		if _, err := a.occSvc.AddBed(ctx, mgr, id, room); err != nil {
			report(err)
			return
		}
	default:
		fmt.Println("Pick 1-3.")
		return
	}
	fmt.Println("Added.")
}

func admitResident(ctx context.Context, a *app, c *console, mgr *staff.Staff) {
	id := c.readLine("Resident ID: ")
	name := c.readLine("Name: ")
	gender := c.readGender()
	bedID := c.readLine("Target bed ID: ")
	res := occupancy.NewResident(id, name, gender)
	if err := a.occSvc.Admit(ctx, mgr, res, bedID); err != nil {
		report(err)
		return
	}
	fmt.Printf("Admitted %s to %s.\n", id, bedID)
}

func checkResident(ctx context.Context, a *app, c *console) {
	bedID := c.readLine("Bed ID: ")
	res, err := a.occSvc.ResidentInBed(ctx, bedID)
	if err != nil {
		report(err)
		return
	}
	fmt.Printf("%s | %s | gender=%s | bed=%s\n", res.ID, res.Name, res.Gender, res.CurrentBedID)

	prescriptions, err := a.medSvc.ListPrescriptions(ctx, res.ID)
	if err != nil {
		report(err)
		return
	}
	for _, p := range prescriptions {
		fmt.Printf("  prescription %s by %s at %s\n", p.ID, p.DoctorID, p.CreatedAt.Format("2006-01-02 15:04"))
		for _, o := range p.Orders {
			fmt.Println("    -", o.String())
		}
	}
	administrations, err := a.medSvc.ListAdministrations(ctx, res.ID)
	if err != nil {
		report(err)
		return
	}
	for _, adm := range administrations {
		fmt.Printf("  given %s %g%s at %s by %s\n",
			adm.Drug, adm.Dose, adm.Unit, adm.Time.Format("2006-01-02 15:04"), adm.NurseID)
	}
}

// lookupActor resolves the acting staff member from the registry so the
// role and roster checks run against their real record.
func lookupActor(ctx context.Context, a *app, c *console, prompt string) (*staff.Staff, bool) {
	id := c.readLine(prompt)
	member, err := a.staffSvc.GetStaff(ctx, id)
	if err != nil {
		report(err)
		return nil, false
	}
	return member, true
}

func attachPrescription(ctx context.Context, a *app, c *console) {
	doctor, ok := lookupActor(ctx, a, c, "Doctor ID: ")
	if !ok {
		return
	}
	bedID := c.readLine("Bed ID: ")
	when := c.readDateTime()

	var orders []medication.MedicationOrder
	for {
		drug := c.readLine("Drug (empty to finish): ")
		if drug == "" {
			break
		}
		dose := c.readFloat("Dose: ")
		unit := c.readLine("Unit (e.g. mg): ")
		schedule := c.readLine("Schedule (e.g. 8am, 8pm): ")
		notes := c.readLine("Notes: ")
		orders = append(orders, medication.MedicationOrder{
			Drug: drug, Dose: dose, Unit: unit, Schedule: schedule, Notes: notes,
		})
	}

	p, err := a.medSvc.AttachPrescription(ctx, doctor, bedID, orders, when)
	if err != nil {
		report(err)
		return
	}
	fmt.Printf("Prescription %s attached with %d order(s).\n", p.ID, len(p.Orders))
}

func administer(ctx context.Context, a *app, c *console) {
	nurse, ok := lookupActor(ctx, a, c, "Nurse ID: ")
	if !ok {
		return
	}
	bedID := c.readLine("Bed ID: ")
	drug := c.readLine("Drug: ")
	dose := c.readFloat("Dose: ")
	unit := c.readLine("Unit (e.g. mg): ")
	notes := c.readLine("Notes: ")
	when := c.readDateTime()

	if _, err := a.medSvc.Administer(ctx, nurse, bedID, drug, dose, unit, notes, when); err != nil {
		report(err)
		return
	}
	fmt.Println("Administration recorded.")
}

func moveResident(ctx context.Context, a *app, c *console) {
	nurse, ok := lookupActor(ctx, a, c, "Nurse ID: ")
	if !ok {
		return
	}
	from := c.readLine("From bed ID: ")
	to := c.readLine("To bed ID: ")
	when := c.readDateTime()

	if err := a.occSvc.Move(ctx, nurse, from, to, when); err != nil {
		report(err)
		return
	}
	fmt.Printf("Moved resident from %s to %s.\n", from, to)
}

func showLog(ctx context.Context, a *app) {
	entries, err := a.auditSvc.List(ctx)
	if err != nil {
		report(err)
		return
	}
	for _, e := range entries {
		fmt.Printf("%4d | %s | %s | %s | %s\n",
			e.Seq, e.At.Format("2006-01-02 15:04:05"), e.StaffID, e.Action, e.Details)
	}
	if len(entries) == 0 {
		fmt.Println("(log is empty)")
	}
}

func listOccupancy(ctx context.Context, a *app) {
	residents, err := a.occSvc.ListResidents(ctx)
	if err != nil {
		report(err)
		return
	}
	fmt.Println("Residents:")
	for _, r := range residents {
		bed := r.CurrentBedID
		if bed == "" {
			bed = "-"
		}
		fmt.Printf("  %s | %s | gender=%s | bed=%s\n", r.ID, r.Name, r.Gender, bed)
	}

	beds, err := a.occSvc.ListBeds(ctx)
	if err != nil {
		report(err)
		return
	}
	fmt.Println("Beds:")
	for _, b := range beds {
		if b.IsVacant() {
			fmt.Printf("  %s | room=%s | (vacant)\n", b.ID, b.RoomID)
		} else {
			fmt.Printf("  %s | room=%s | occupied by %s\n", b.ID, b.RoomID, b.ResidentID)
		}
	}
}
