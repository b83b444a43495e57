// Package cherr defines the recoverable error categories surfaced by the
// care-home core. Callers switch on the category rather than on message
// text; wrapping with %w keeps the category visible through errors.As.
package cherr

import (
	"errors"
	"fmt"
)

// Kind identifies an error category.
type Kind string

const (
	KindNotFound      Kind = "not_found"
	KindAuthorization Kind = "authorization"
	KindAllocation    Kind = "allocation"
	KindRoster        Kind = "roster"
	KindValidation    Kind = "validation"
)

// Error is a categorized, recoverable failure.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NotFound reports a missing entity.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Authorization reports a missing actor, wrong role, or missing roster coverage.
func Authorization(format string, args ...interface{}) *Error {
	return &Error{Kind: KindAuthorization, Message: fmt.Sprintf(format, args...)}
}

// Allocation reports a violated bed occupancy precondition.
func Allocation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindAllocation, Message: fmt.Sprintf(format, args...)}
}

// Roster reports a shift allocation that would exceed a role's daily hour cap.
func Roster(format string, args ...interface{}) *Error {
	return &Error{Kind: KindRoster, Message: fmt.Sprintf(format, args...)}
}

// Validation reports malformed input.
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the category from err, or "" when err carries none.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// IsKind reports whether err carries the given category.
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}
