package model

import "errors"

var (
	// ErrInvalidRating is returned when a rating label is not one of
	// critical, concern, monitor, strength or unset.
	ErrInvalidRating = errors.New("invalid rating: must be one of critical, concern, monitor, strength, unset")

	// ErrInvalidView is returned when a view name does not match a dashboard tab.
	ErrInvalidView = errors.New("invalid view")

	// ErrUnknownScorecardField is returned when a scorecard field key is not recognized.
	ErrUnknownScorecardField = errors.New("unknown scorecard field")

	// ErrInvalidSnapshotID is returned when a stored snapshot id is neither
	// an integer nor a string holding one.
	ErrInvalidSnapshotID = errors.New("invalid snapshot id")
)
