package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Field is a uniform, read-only view of one editable metric.
// Scorecard entries and indicators are both rendered through Field so the
// terminal UI and the report writers do not need to know their shapes.
type Field struct {
	// ID identifies the field within its collection: a scorecard key such
	// as "globalTCI" or the decimal indicator ID.
	ID string `json:"id"`

	// Value is the committed numeric value.
	Value float64 `json:"value"`

	// Label is the human-readable name.
	Label string `json:"label"`

	// Description explains what the metric measures.
	Description string `json:"description,omitempty"`
}

// FormatValue renders a metric value without trailing zeros ("68", "63.2").
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseValue parses user input as a finite floating-point number.
// Surrounding whitespace is ignored.
func ParseValue(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("value %q is not finite", raw)
	}
	return v, nil
}
