package occupancy

import "testing"

func TestBed_VacancyInvariant(t *testing.T) {
	b := &Bed{ID: "B1", RoomID: "R1"}

	if !b.IsVacant() || b.ResidentID != "" || b.GenderTag != "" {
		t.Fatal("new bed must be vacant with no resident id and no gender tag")
	}

	b.Occupy("R-1", GenderMale)
	if b.IsVacant() || b.ResidentID == "" || b.GenderTag == "" {
		t.Fatal("occupied bed must carry both resident id and gender tag")
	}

	b.Vacate()
	if !b.IsVacant() || b.ResidentID != "" || b.GenderTag != "" {
		t.Fatal("vacated bed must clear both resident id and gender tag")
	}
}

func TestParseGender(t *testing.T) {
	if g, err := ParseGender("m"); err != nil || g != GenderMale {
		t.Errorf("ParseGender(m) = %v, %v", g, err)
	}
	if g, err := ParseGender(" F "); err != nil || g != GenderFemale {
		t.Errorf("ParseGender(F) = %v, %v", g, err)
	}
	if _, err := ParseGender("x"); err == nil {
		t.Error("unknown gender must fail")
	}
}

func TestResident_AttachPrescription(t *testing.T) {
	r := NewResident("R-1", "Bob", GenderMale)
	r.AttachPrescription("p-1")
	r.AttachPrescription("p-2")
	if len(r.PrescriptionIDs) != 2 || r.PrescriptionIDs[0] != "p-1" {
		t.Errorf("prescription ids = %v", r.PrescriptionIDs)
	}
}
