package store

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a record would violate a uniqueness rule.
var ErrConflict = errors.New("conflict")
