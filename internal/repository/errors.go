package repository

import "errors"

var (
	// ErrNotFound indicates the requested entity doesn't exist.
	ErrNotFound = errors.New("entity not found")
	// ErrDuplicate indicates a uniqueness constraint was violated.
	ErrDuplicate = errors.New("entity already exists")
	// ErrInUse indicates the entity is still referenced by others.
	ErrInUse = errors.New("entity is referenced by other entities")
)
