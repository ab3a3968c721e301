package repositories

import "errors"

// Sentinel errors shared by all repository implementations so callers can
// branch without matching message strings.
var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when a user row would violate the
	// unique email constraint.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrDuplicatePickupCode is returned when an order row would violate
	// the unique pickup code constraint; callers may regenerate and retry.
	ErrDuplicatePickupCode = errors.New("pickup code already in use")
)
