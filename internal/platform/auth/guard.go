package auth

import (
	"time"

	"github.com/carehome/carehome/pkg/cherr"
)

// Actor is the identity a guard checks. Implementations must tolerate a
// nil receiver so that a missing actor fails the role check rather than
// panicking.
type Actor interface {
	ActorID() string
	ActorRole() Role
	// OnDuty reports whether the actor is covered by an assigned
	// shift-kind whose time window contains the given instant.
	OnDuty(when time.Time) bool
}

// RequireRole fails when the actor is absent or holds a different role.
func RequireRole(actor Actor, role Role) error {
	if actor == nil || actor.ActorRole() != role {
		return cherr.Authorization("must be %s", role)
	}
	return nil
}

// RequireRoleOnDuty performs RequireRole and then checks roster coverage
// at the given instant.
func RequireRoleOnDuty(actor Actor, role Role, when time.Time) error {
	if err := RequireRole(actor, role); err != nil {
		return err
	}
	if !actor.OnDuty(when) {
		return cherr.Authorization("%s not rostered at %s", actor.ActorID(), when.Format("2006-01-02 15:04"))
	}
	return nil
}
