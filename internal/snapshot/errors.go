package snapshot

import "errors"

var (
	// ErrEmptyName is returned when a snapshot is saved without a name.
	ErrEmptyName = errors.New("please enter a name for this snapshot")

	// ErrNotFound is returned when no snapshot has the requested id.
	ErrNotFound = errors.New("snapshot not found")
)
