// Package occupancy models the ward/room/bed layout and the exclusive
// binding between a bed and at most one resident. Bed and resident hold
// only id back-references to each other; every mutating operation keeps
// the two sides consistent.
package occupancy

import (
	"strings"

	"github.com/carehome/carehome/pkg/cherr"
)

// Gender is the resident gender tag mirrored onto an occupied bed.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// ParseGender converts user input into a Gender.
func ParseGender(s string) (Gender, error) {
	switch Gender(strings.ToUpper(strings.TrimSpace(s))) {
	case GenderMale:
		return GenderMale, nil
	case GenderFemale:
		return GenderFemale, nil
	}
	return "", cherr.Validation("unknown gender: %s", s)
}

// Ward is a named group of rooms.
type Ward struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	RoomIDs []string `json:"room_ids"`
}

// Room belongs to exactly one ward.
type Room struct {
	ID     string   `json:"id"`
	WardID string   `json:"ward_id"`
	BedIDs []string `json:"bed_ids"`
}

// Bed belongs to exactly one room. A vacant bed has neither a resident id
// nor a gender tag.
type Bed struct {
	ID         string `json:"id"`
	RoomID     string `json:"room_id"`
	ResidentID string `json:"resident_id,omitempty"`
	GenderTag  Gender `json:"gender_tag,omitempty"`
}

// IsVacant reports whether the bed holds no resident.
func (b *Bed) IsVacant() bool {
	return b.ResidentID == ""
}

// Occupy binds a resident to the bed and mirrors the gender tag.
func (b *Bed) Occupy(residentID string, g Gender) {
	b.ResidentID = residentID
	b.GenderTag = g
}

// Vacate clears both the resident id and the gender tag.
func (b *Bed) Vacate() {
	b.ResidentID = ""
	b.GenderTag = ""
}

// Resident is a person admitted to the home. CurrentBedID, when set,
// references a bed whose ResidentID equals this resident's id.
type Resident struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Gender          Gender   `json:"gender"`
	CurrentBedID    string   `json:"current_bed_id,omitempty"`
	PrescriptionIDs []string `json:"prescription_ids"`
}

func NewResident(id, name string, g Gender) *Resident {
	return &Resident{ID: id, Name: name, Gender: g}
}

// AttachPrescription links a prescription id onto the resident.
func (r *Resident) AttachPrescription(prescriptionID string) {
	r.PrescriptionIDs = append(r.PrescriptionIDs, prescriptionID)
}
