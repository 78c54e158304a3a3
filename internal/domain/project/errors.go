package project

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrDuplicateID indicates the project identifier is already taken.
	ErrDuplicateID = errors.New("project id already exists")
	// ErrProjectInUse indicates employees are still assigned to the project.
	ErrProjectInUse = errors.New("project has assigned employees")
	// ErrInvalidInput indicates invalid project input.
	ErrInvalidInput = errors.New("invalid project input")
)
