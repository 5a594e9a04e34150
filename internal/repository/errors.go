package repository

import "errors"

var (
	// ErrEmailExists is returned when registering an email that is taken.
	ErrEmailExists = errors.New("email already exists")
	// ErrNotFound is returned when a row does not exist or is no longer valid.
	ErrNotFound = errors.New("not found")
)
