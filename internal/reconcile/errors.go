package reconcile

import "errors"

var (
	// ErrInvalidTimestamp indicates a value that no supported date/time
	// representation could be derived from.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	// ErrNotFound indicates an identity that resolves to no active
	// roster employee.
	ErrNotFound = errors.New("employee not found in roster")
)
