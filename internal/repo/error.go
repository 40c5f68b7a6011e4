package repo

import "errors"

// ErrNotFound is returned when a record is not found.
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is returned when a unique constraint is violated.
var ErrAlreadyExists = errors.New("already exists")
