package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Rating is the categorical assessment attached to a dashboard item.
//
// Design decision: We use iota-based constants and validate labels at the
// boundary (ParseRating, UnmarshalJSON) instead of storing free strings.
// The browser dashboard trusted whatever label was in storage; here an
// out-of-set label never reaches the live state.
type Rating int

const (
	// RatingUnset means no rating was chosen. It is never stored.
	RatingUnset Rating = iota

	// RatingCritical marks an item that needs immediate intervention.
	RatingCritical

	// RatingConcern marks an item trending in the wrong direction.
	RatingConcern

	// RatingMonitor marks an item to watch without action yet.
	RatingMonitor

	// RatingStrength marks an item performing well.
	RatingStrength
)

// ratingLabels maps each rating to its stored label.
var ratingLabels = map[Rating]string{
	RatingUnset:    "unset",
	RatingCritical: "critical",
	RatingConcern:  "concern",
	RatingMonitor:  "monitor",
	RatingStrength: "strength",
}

// titleLanguage is the language used when title-casing labels.
var titleLanguage = language.English

// String returns the stored label of the rating.
func (r Rating) String() string {
	if label, ok := ratingLabels[r]; ok {
		return label
	}
	return "unknown"
}

// Title returns the label in title case for tables and terminal output.
func (r Rating) Title() string {
	return displayTitle(r.String())
}

// IsSet reports whether the rating carries a value.
func (r Rating) IsSet() bool {
	return r != RatingUnset
}

// Valid reports whether r is one of the defined ratings.
func (r Rating) Valid() bool {
	_, ok := ratingLabels[r]
	return ok
}

// ParseRating converts a label into a Rating.
// Matching is case-insensitive. The empty string and "select" (the
// placeholder option of the original rating dropdown) parse to RatingUnset.
func ParseRating(label string) (Rating, error) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	switch normalized {
	case "", "select":
		return RatingUnset, nil
	}
	for r, l := range ratingLabels {
		if l == normalized {
			return r, nil
		}
	}
	return RatingUnset, fmt.Errorf("%w: %q", ErrInvalidRating, label)
}

// RatingLabels returns the labels of all settable ratings in severity order.
func RatingLabels() []string {
	return []string{
		RatingCritical.String(),
		RatingConcern.String(),
		RatingMonitor.String(),
		RatingStrength.String(),
	}
}

// MarshalJSON encodes the rating as its label.
func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRating, int(r))
	}
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a label, rejecting anything outside the rating set.
func (r *Rating) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	parsed, err := ParseRating(label)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Ratings maps an item identifier (for example "indicator-3") to its rating.
type Ratings map[string]Rating

// Clone returns a deep copy of the ratings map. A nil map clones to an empty map.
func (r Ratings) Clone() Ratings {
	out := make(Ratings, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Keys returns the item identifiers in sorted order.
func (r Ratings) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UnmarshalJSON decodes a label map leniently: entries whose label is not a
// valid rating, and unset entries, are dropped. Use RatingsFromLabels when the
// caller needs to know which entries were dropped.
func (r *Ratings) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, _ := RatingsFromLabels(raw)
	*r = decoded
	return nil
}

// RatingsFromLabels validates a label map read from storage.
// It returns the valid, set ratings and the sorted item identifiers whose
// labels were rejected.
func RatingsFromLabels(raw map[string]string) (Ratings, []string) {
	out := make(Ratings, len(raw))
	var rejected []string
	for item, label := range raw {
		rating, err := ParseRating(label)
		if err != nil {
			rejected = append(rejected, item)
			continue
		}
		if rating.IsSet() {
			out[item] = rating
		}
	}
	sort.Strings(rejected)
	return out, rejected
}

// displayTitle title-cases a label for display.
// A new Caser is built per call because cases.Caser is not safe for concurrent use.
func displayTitle(s string) string {
	return cases.Title(titleLanguage).String(s)
}
