package repository

import "errors"

// Sentinel errors shared by all repositories. Services translate these into
// operation-specific errors at their boundary.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)
