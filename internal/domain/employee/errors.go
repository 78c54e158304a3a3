package employee

import "errors"

var (
	// ErrEmployeeNotFound indicates the employee doesn't exist.
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrDuplicateID indicates the numeric identifier is already taken.
	ErrDuplicateID = errors.New("employee id already exists")
	// ErrDuplicateCode indicates the short code is already taken.
	ErrDuplicateCode = errors.New("employee code already exists")
	// ErrInvalidInput indicates invalid employee input.
	ErrInvalidInput = errors.New("invalid employee input")
)
