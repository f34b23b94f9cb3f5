package store

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateHandle is returned by Users.Create when the handle is
	// already taken. It is distinguishable from other persistence failures
	// so callers can surface a conflict rather than a server error.
	ErrDuplicateHandle = errors.New("handle already taken")
)
