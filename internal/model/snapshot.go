package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Snapshot is an immutable, named copy of the annotation state and the
// active view, created by an explicit save.
//
// Snapshots are never mutated after creation. The maps are deep copies of
// the live state at save time; Clone must be used whenever a snapshot leaves
// its owner so callers cannot alias the stored maps.
type Snapshot struct {
	// ID is unique and strictly increasing in creation order.
	// It is derived from the creation time in milliseconds.
	ID int64 `json:"id"`

	// Name is the non-empty user-supplied label.
	Name string `json:"name"`

	// Timestamp is the creation time formatted for display.
	Timestamp string `json:"timestamp"`

	// CreatedAt is the creation time. Absent in legacy snapshots.
	CreatedAt time.Time `json:"createdAt,omitzero"`

	// Notes is the copy of the notes map at save time.
	Notes Notes `json:"notes"`

	// Ratings is the copy of the ratings map at save time.
	Ratings Ratings `json:"ratings"`

	// ActiveView is the tab that was selected at save time.
	ActiveView View `json:"activeView"`

	// droppedRatings lists the items whose stored label was rejected on decode.
	droppedRatings []string
}

// UnmarshalJSON decodes a snapshot, including the shapes written by the
// browser dashboard: the selected tab stored as "activeTab", ids stored as
// strings, and rating labels outside the rating set. Rejected rating items
// are dropped and reported by DroppedRatings.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	type plain Snapshot
	aux := struct {
		*plain
		ID        json.RawMessage   `json:"id"`
		Ratings   map[string]string `json:"ratings"`
		ActiveTab View              `json:"activeTab"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	id, err := parseSnapshotID(aux.ID)
	if err != nil {
		return err
	}
	s.ID = id
	s.Ratings, s.droppedRatings = RatingsFromLabels(aux.Ratings)
	if s.ActiveView == "" {
		s.ActiveView = aux.ActiveTab
	}
	return nil
}

// parseSnapshotID accepts a JSON integer, an integral float such as
// 1.7e12, or a string holding either. A missing id decodes to 0.
func parseSnapshotID(raw json.RawMessage) (int64, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return 0, nil
	}
	if strings.HasPrefix(text, `"`) {
		var quoted string
		if err := json.Unmarshal(raw, &quoted); err != nil {
			return 0, fmt.Errorf("%w: %s", ErrInvalidSnapshotID, text)
		}
		text = strings.TrimSpace(quoted)
	}
	if id, err := strconv.ParseInt(text, 10, 64); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidSnapshotID, text)
	}
	return int64(f), nil
}

// DroppedRatings returns the sorted item ids whose rating label was
// rejected when the snapshot was decoded.
func (s Snapshot) DroppedRatings() []string {
	if len(s.droppedRatings) == 0 {
		return nil
	}
	out := make([]string, len(s.droppedRatings))
	copy(out, s.droppedRatings)
	return out
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Notes = s.Notes.Clone()
	out.Ratings = s.Ratings.Clone()
	out.droppedRatings = s.DroppedRatings()
	return out
}

// CloneSnapshots deep-copies a snapshot list.
func CloneSnapshots(in []Snapshot) []Snapshot {
	out := make([]Snapshot, 0, len(in))
	for _, s := range in {
		out = append(out, s.Clone())
	}
	return out
}
