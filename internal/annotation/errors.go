package annotation

import "errors"

// ErrEmptyID is returned when a note or rating is addressed with an empty identifier.
var ErrEmptyID = errors.New("annotation id must not be empty")
