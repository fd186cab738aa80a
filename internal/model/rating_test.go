package model

import (
	"encoding/json"
	"errors"
	"testing"
)

// TestParseRating tests label validation at the boundary.
func TestParseRating(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		label    string
		expected Rating
		wantErr  bool
	}{
		{"critical", RatingCritical, false},
		{"concern", RatingConcern, false},
		{"monitor", RatingMonitor, false},
		{"strength", RatingStrength, false},
		{"STRENGTH", RatingStrength, false},
		{" monitor ", RatingMonitor, false},
		{"unset", RatingUnset, false},
		{"select", RatingUnset, false},
		{"", RatingUnset, false},
		{"excellent", RatingUnset, true},
	}

	for _, tc := range testCases {
		t.Run(tc.label, func(t *testing.T) {
			t.Parallel()

			got, err := ParseRating(tc.label)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidRating) {
					t.Fatalf("expected ErrInvalidRating, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("ParseRating(%q) = %v, expected %v", tc.label, got, tc.expected)
			}
		})
	}
}

// TestRatingString tests the stored label and display title.
func TestRatingString(t *testing.T) {
	t.Parallel()

	if RatingConcern.String() != "concern" {
		t.Errorf("got %q, expected %q", RatingConcern.String(), "concern")
	}
	if RatingConcern.Title() != "Concern" {
		t.Errorf("got %q, expected %q", RatingConcern.Title(), "Concern")
	}
	if Rating(42).String() != "unknown" {
		t.Errorf("got %q, expected %q", Rating(42).String(), "unknown")
	}
	if Rating(42).Valid() {
		t.Error("expected out-of-range rating to be invalid")
	}
}

// TestRatingJSON tests that ratings encode as labels and reject unknown labels.
func TestRatingJSON(t *testing.T) {
	t.Parallel()

	t.Run("encodes label", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(Ratings{"indicator-1": RatingCritical})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `{"indicator-1":"critical"}` {
			t.Errorf("got %s", data)
		}
	})

	t.Run("single rating rejects unknown label", func(t *testing.T) {
		t.Parallel()

		var r Rating
		if err := json.Unmarshal([]byte(`"great"`), &r); !errors.Is(err, ErrInvalidRating) {
			t.Errorf("expected ErrInvalidRating, got %v", err)
		}
	})

	t.Run("map drops invalid and unset entries", func(t *testing.T) {
		t.Parallel()

		var r Ratings
		err := json.Unmarshal([]byte(`{"a":"monitor","b":"great","c":"select"}`), &r)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(r) != 1 || r["a"] != RatingMonitor {
			t.Errorf("got %v, expected only a=monitor", r)
		}
	})
}

// TestRatingsFromLabels tests that rejected items are reported.
func TestRatingsFromLabels(t *testing.T) {
	t.Parallel()

	got, rejected := RatingsFromLabels(map[string]string{
		"indicator-1": "critical",
		"indicator-2": "bogus",
		"indicator-3": "",
		"indicator-4": "nope",
	})

	if len(got) != 1 || got["indicator-1"] != RatingCritical {
		t.Errorf("unexpected ratings: %v", got)
	}
	if len(rejected) != 2 || rejected[0] != "indicator-2" || rejected[1] != "indicator-4" {
		t.Errorf("unexpected rejected list: %v", rejected)
	}
}
