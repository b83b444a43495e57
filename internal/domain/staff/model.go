// Package staff holds staff identities and their rosters, and implements
// the staff-management and shift-allocation workflow.
package staff

import (
	"sort"
	"strings"
	"time"

	"github.com/carehome/carehome/internal/platform/auth"
	"github.com/carehome/carehome/pkg/cherr"
)

// ShiftKind is a rosterable duty type with a fixed duration and a fixed
// valid time-of-day window.
type ShiftKind string

const (
	ShiftNurseAM  ShiftKind = "NURSE_AM"
	ShiftNursePM  ShiftKind = "NURSE_PM"
	ShiftDoctor1H ShiftKind = "DOCTOR_1H"
)

// shiftSpec fixes the duration and half-open [start,end) window of a kind.
// Windows are expressed in minutes from midnight. NURSE_AM and NURSE_PM
// deliberately overlap during [14:00,16:00).
type shiftSpec struct {
	hours       int
	startMinute int
	endMinute   int
}

var shiftSpecs = map[ShiftKind]shiftSpec{
	ShiftNurseAM:  {hours: 8, startMinute: 8 * 60, endMinute: 16 * 60},
	ShiftNursePM:  {hours: 8, startMinute: 14 * 60, endMinute: 22 * 60},
	ShiftDoctor1H: {hours: 1, startMinute: 9 * 60, endMinute: 10 * 60},
}

// ParseShiftKind converts user input into a ShiftKind.
func ParseShiftKind(s string) (ShiftKind, error) {
	k := ShiftKind(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := shiftSpecs[k]; !ok {
		return "", cherr.Validation("unknown shift kind: %s", s)
	}
	return k, nil
}

// Hours returns the kind's fixed duration in hours.
func (k ShiftKind) Hours() int {
	return shiftSpecs[k].hours
}

// Covers reports whether the kind's time window contains the time-of-day
// of the given instant.
func (k ShiftKind) Covers(when time.Time) bool {
	spec, ok := shiftSpecs[k]
	if !ok {
		return false
	}
	m := when.Hour()*60 + when.Minute()
	return m >= spec.startMinute && m < spec.endMinute
}

// DateKey normalizes an instant to its calendar-date roster key.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Roster maps a calendar date to the set of shift kinds assigned on it.
// A date is present only while at least one kind is assigned.
type Roster map[string][]ShiftKind

// Assign adds a kind to the date's set. Idempotent if already present.
func (r Roster) Assign(date time.Time, kind ShiftKind) {
	key := DateKey(date)
	for _, k := range r[key] {
		if k == kind {
			return
		}
	}
	r[key] = append(r[key], kind)
}

// Unassign removes a kind; the date entry disappears with its last kind.
func (r Roster) Unassign(date time.Time, kind ShiftKind) {
	key := DateKey(date)
	kinds := r[key]
	for i, k := range kinds {
		if k == kind {
			r[key] = append(kinds[:i], kinds[i+1:]...)
			break
		}
	}
	if len(r[key]) == 0 {
		delete(r, key)
	}
}

// Has reports whether the kind is assigned on the date.
func (r Roster) Has(date time.Time, kind ShiftKind) bool {
	for _, k := range r[DateKey(date)] {
		if k == kind {
			return true
		}
	}
	return false
}

// HoursOn sums the durations of all kinds assigned on the date. Kinds may
// overlap in time; this is an arithmetic sum, not an interval union.
func (r Roster) HoursOn(date time.Time) int {
	total := 0
	for _, k := range r[DateKey(date)] {
		total += k.Hours()
	}
	return total
}

// CoveredAt reports whether any kind assigned on the instant's date has a
// window containing its time-of-day.
func (r Roster) CoveredAt(when time.Time) bool {
	for _, k := range r[DateKey(when)] {
		if k.Covers(when) {
			return true
		}
	}
	return false
}

// Dates returns the rostered dates in ascending order.
func (r Roster) Dates() []string {
	keys := make([]string, 0, len(r))
	for key := range r {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Staff is a staff member. Role is immutable after creation; the roster
// and password hash change through the workflow service.
type Staff struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Role         auth.Role `json:"role"`
	PasswordHash string    `json:"password_hash"`
	Roster       Roster    `json:"roster"`
}

func New(id, name string, role auth.Role) *Staff {
	return &Staff{ID: id, Name: name, Role: role, Roster: Roster{}}
}

// ActorID implements auth.Actor; nil-safe so a missing actor fails the
// role guard instead of panicking.
func (s *Staff) ActorID() string {
	if s == nil {
		return ""
	}
	return s.ID
}

// ActorRole implements auth.Actor.
func (s *Staff) ActorRole() auth.Role {
	if s == nil {
		return ""
	}
	return s.Role
}

// OnDuty implements auth.Actor.
func (s *Staff) OnDuty(when time.Time) bool {
	if s == nil {
		return false
	}
	return s.Roster.CoveredAt(when)
}

func (s *Staff) String() string {
	return string(s.Role) + "{" + s.ID + ": " + s.Name + "}"
}
