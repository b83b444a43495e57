// Package audit keeps the append-only action log. Every successful
// workflow operation records exactly one entry; failed operations record
// nothing.
package audit

import "time"

// Action type tags recorded by the workflow services.
const (
	ActionAddStaff         = "ADD_STAFF"
	ActionModifyStaffPwd   = "MODIFY_STAFF_PWD"
	ActionAllocateShift    = "ALLOCATE_SHIFT"
	ActionModifyShift      = "MODIFY_SHIFT"
	ActionAddWard          = "ADD_WARD"
	ActionAddRoom          = "ADD_ROOM"
	ActionAddBed           = "ADD_BED"
	ActionAddResident      = "ADD_RESIDENT"
	ActionMoveResident     = "MOVE_RESIDENT"
	ActionAddPrescription  = "ADD_PRESCRIPTION"
	ActionAdminister       = "ADMINISTER"
)

// Entry is one action log record. Entries are never mutated; Seq fixes
// the total order by append sequence.
type Entry struct {
	Seq     int64     `json:"seq"`
	At      time.Time `json:"at"`
	StaffID string    `json:"staff_id"`
	Action  string    `json:"action"`
	Details string    `json:"details"`
}
