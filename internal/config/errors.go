package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and describe the first
// setting that is out of range.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). Callers can use errors.Is()
// to react to a specific problem while users still get a readable message.
var (
	// ErrEmptyDBDir is returned when no database directory is configured.
	ErrEmptyDBDir = errors.New("invalid database directory: must not be empty")

	// ErrInvalidNotifyDelay is returned when the notification delay is not positive.
	// A zero delay would clear every message before it could be shown.
	ErrInvalidNotifyDelay = errors.New("invalid notify delay: must be positive")

	// ErrInvalidDefaultView is returned when the default view is not a known tab.
	ErrInvalidDefaultView = errors.New("invalid default view")

	// ErrEmptyExportFile is returned when the export file name is empty.
	ErrEmptyExportFile = errors.New("invalid export file: must not be empty")

	// ErrEmptyTimestampLayout is returned when the snapshot timestamp layout is empty.
	ErrEmptyTimestampLayout = errors.New("invalid timestamp layout: must not be empty")
)
