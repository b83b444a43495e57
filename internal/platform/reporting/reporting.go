// Package reporting exports an operational overview of the registry as an
// Excel workbook: roster assignments, bed occupancy, and the action log.
package reporting

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/carehome/carehome/internal/registry"
)

var rosterHeader = []string{"Staff ID", "Name", "Role", "Date", "Shifts", "Hours"}
var bedsHeader = []string{"Bed ID", "Room ID", "Status", "Resident ID", "Gender"}
var logHeader = []string{"Seq", "Time", "Staff ID", "Action", "Details"}

// WriteWorkbook renders the registry into an xlsx file at path.
func WriteWorkbook(path string, reg *registry.Registry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeRosterSheet(f, reg); err != nil {
		return err
	}
	if err := writeBedsSheet(f, reg); err != nil {
		return err
	}
	if err := writeLogSheet(f, reg); err != nil {
		return err
	}
	f.DeleteSheet("Sheet1")

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeRosterSheet(f *excelize.File, reg *registry.Registry) error {
	const sheet = "Roster"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}
	if err := writeRow(f, sheet, 1, toCells(rosterHeader)); err != nil {
		return err
	}

	row := 2
	for _, member := range reg.Staff.ExportAll() {
		for _, date := range member.Roster.Dates() {
			kinds := ""
			hours := 0
			for _, k := range member.Roster[date] {
				if kinds != "" {
					kinds += ", "
				}
				kinds += string(k)
				hours += k.Hours()
			}
			cells := []interface{}{member.ID, member.Name, string(member.Role), date, kinds, hours}
			if err := writeRow(f, sheet, row, cells); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeBedsSheet(f *excelize.File, reg *registry.Registry) error {
	const sheet = "Beds"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}
	if err := writeRow(f, sheet, 1, toCells(bedsHeader)); err != nil {
		return err
	}

	for i, bed := range reg.Occupancy.ExportBeds() {
		status := "occupied"
		if bed.IsVacant() {
			status = "vacant"
		}
		cells := []interface{}{bed.ID, bed.RoomID, status, bed.ResidentID, string(bed.GenderTag)}
		if err := writeRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeLogSheet(f *excelize.File, reg *registry.Registry) error {
	const sheet = "Action Log"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}
	if err := writeRow(f, sheet, 1, toCells(logHeader)); err != nil {
		return err
	}

	for i, e := range reg.Audit.ExportAll() {
		cells := []interface{}{e.Seq, e.At.Format("2006-01-02 15:04:05"), e.StaffID, e.Action, e.Details}
		if err := writeRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	for col, val := range cells {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, val); err != nil {
			return fmt.Errorf("set cell %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func toCells(header []string) []interface{} {
	out := make([]interface{}, len(header))
	for i, h := range header {
		out[i] = h
	}
	return out
}
