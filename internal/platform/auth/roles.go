// Package auth gates workflow operations behind role and roster-coverage
// checks. It knows nothing about entity storage; actors implement a small
// interface and the guards answer yes or no.
package auth

import (
	"strings"

	"github.com/carehome/carehome/pkg/cherr"
)

// Role is the staff role tag. Roles are fixed at staff creation.
type Role string

const (
	RoleManager Role = "MANAGER"
	RoleNurse   Role = "NURSE"
	RoleDoctor  Role = "DOCTOR"
)

// ParseRole converts user input into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleManager:
		return RoleManager, nil
	case RoleNurse:
		return RoleNurse, nil
	case RoleDoctor:
		return RoleDoctor, nil
	}
	return "", cherr.Validation("unknown role: %s", s)
}

// RolePolicy fixes the per-role roster constraints.
type RolePolicy struct {
	// DailyHourCap is the maximum sum of assigned shift-kind hours on a
	// single date. Zero means uncapped.
	DailyHourCap int
	// ShiftKinds names the shift kinds usually rostered for the role.
	// Display hint only; allocation enforces the hour cap, not this list.
	ShiftKinds []string
}

var policies = map[Role]RolePolicy{
	RoleManager: {DailyHourCap: 0},
	RoleNurse:   {DailyHourCap: 8, ShiftKinds: []string{"NURSE_AM", "NURSE_PM"}},
	RoleDoctor:  {DailyHourCap: 1, ShiftKinds: []string{"DOCTOR_1H"}},
}

// PolicyFor returns the roster policy for a role. Unknown roles get a
// zero policy (uncapped).
func PolicyFor(r Role) RolePolicy {
	return policies[r]
}

// DailyHourCap returns the per-date hour cap for a role (0 = uncapped).
func DailyHourCap(r Role) int {
	return policies[r].DailyHourCap
}
