// Package medication implements the clinical workflow: doctors attach
// prescriptions to the resident in a bed, nurses administer medication.
package medication

import (
	"fmt"
	"time"

	"github.com/carehome/carehome/pkg/cherr"
)

// MedicationOrder is one line of a prescription.
type MedicationOrder struct {
	Drug     string  `json:"drug"`
	Dose     float64 `json:"dose"`
	Unit     string  `json:"unit"`
	Schedule string  `json:"schedule"`
	Notes    string  `json:"notes,omitempty"`
}

// Validate rejects malformed orders. Doses must be positive.
func (o MedicationOrder) Validate() error {
	if o.Drug == "" {
		return cherr.Validation("medication order needs a drug name")
	}
	if o.Dose <= 0 {
		return cherr.Validation("dose must be positive, got %v", o.Dose)
	}
	return nil
}

func (o MedicationOrder) String() string {
	s := fmt.Sprintf("%s %v%s @ %s", o.Drug, o.Dose, o.Unit, o.Schedule)
	if o.Notes != "" {
		s += " (" + o.Notes + ")"
	}
	return s
}

// Prescription is immutable once created; orders are appended only during
// creation.
type Prescription struct {
	ID         string            `json:"id"`
	ResidentID string            `json:"resident_id"`
	DoctorID   string            `json:"doctor_id"`
	CreatedAt  time.Time         `json:"created_at"`
	Orders     []MedicationOrder `json:"orders"`
}

// Administration records one medication given to a resident. Records are
// append-only and never mutated.
type Administration struct {
	ResidentID string    `json:"resident_id"`
	Drug       string    `json:"drug"`
	Dose       float64   `json:"dose"`
	Unit       string    `json:"unit"`
	Time       time.Time `json:"time"`
	NurseID    string    `json:"nurse_id"`
	Notes      string    `json:"notes,omitempty"`
}
