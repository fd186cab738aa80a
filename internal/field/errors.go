package field

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotEditing is returned when a buffer operation is attempted outside edit mode,
	// or a commit targets a field that is not being edited.
	ErrNotEditing = errors.New("field is not in edit mode")

	// ErrUnknownField is returned when a field key or indicator id does not exist.
	ErrUnknownField = errors.New("unknown field")
)

// InvalidInputError reports buffered values that cannot be committed.
type InvalidInputError struct {
	// Fields lists the offending field keys in display order.
	Fields []string

	// Reasons maps a field key to the reason it was rejected.
	Reasons map[string]string
}

// Error implements error.
func (e *InvalidInputError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", f, e.Reasons[f]))
	}
	return "invalid input: " + strings.Join(parts, ", ")
}
