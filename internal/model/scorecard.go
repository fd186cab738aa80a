package model

import (
	"fmt"
	"math"
)

// Scorecard field keys. These are also the JSON keys of the scorecard_data blob.
const (
	ScorecardOverallRank   = "overallRank"
	ScorecardGlobalTCI     = "globalTCI"
	ScorecardEnablers      = "enablers"
	ScorecardPractitioners = "practitioners"
	ScorecardResults       = "results"
)

// Scorecard holds the headline GTCI numbers.
type Scorecard struct {
	// OverallRank is the country's position in the global ranking.
	OverallRank int `json:"overallRank"`

	// GlobalTCI is the overall index score (0-100).
	GlobalTCI float64 `json:"globalTCI"`

	// Enablers is the input sub-index score.
	Enablers float64 `json:"enablers"`

	// Practitioners is the talent sub-index score.
	Practitioners float64 `json:"practitioners"`

	// Results is the output sub-index score.
	Results float64 `json:"results"`
}

// scorecardMeta describes each scorecard key for display.
var scorecardMeta = []struct {
	key         string
	label       string
	description string
}{
	{ScorecardOverallRank, "Overall Rank", "Position in the global ranking"},
	{ScorecardGlobalTCI, "Global TCI Score", "Overall talent competitiveness score"},
	{ScorecardEnablers, "Enablers", "Regulatory, market and business landscape"},
	{ScorecardPractitioners, "Practitioners", "Attract, grow and retain talent"},
	{ScorecardResults, "Results", "Vocational, technical and global knowledge skills"},
}

// DefaultScorecard returns the values shown before any edit.
func DefaultScorecard() Scorecard {
	return Scorecard{
		OverallRank:   44,
		GlobalTCI:     63.2,
		Enablers:      62.5,
		Practitioners: 65.0,
		Results:       62.1,
	}
}

// ScorecardKeys returns the scorecard field keys in display order.
func ScorecardKeys() []string {
	keys := make([]string, 0, len(scorecardMeta))
	for _, m := range scorecardMeta {
		keys = append(keys, m.key)
	}
	return keys
}

// Get returns the value stored under key.
func (s Scorecard) Get(key string) (float64, bool) {
	switch key {
	case ScorecardOverallRank:
		return float64(s.OverallRank), true
	case ScorecardGlobalTCI:
		return s.GlobalTCI, true
	case ScorecardEnablers:
		return s.Enablers, true
	case ScorecardPractitioners:
		return s.Practitioners, true
	case ScorecardResults:
		return s.Results, true
	default:
		return 0, false
	}
}

// With returns a copy of s with key set to value.
// The overall rank only accepts whole numbers.
func (s Scorecard) With(key string, value float64) (Scorecard, error) {
	switch key {
	case ScorecardOverallRank:
		if value != math.Trunc(value) {
			return s, fmt.Errorf("%s must be a whole number, got %s", key, FormatValue(value))
		}
		s.OverallRank = int(value)
	case ScorecardGlobalTCI:
		s.GlobalTCI = value
	case ScorecardEnablers:
		s.Enablers = value
	case ScorecardPractitioners:
		s.Practitioners = value
	case ScorecardResults:
		s.Results = value
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownScorecardField, key)
	}
	return s, nil
}

// Fields returns the scorecard as display fields in display order.
func (s Scorecard) Fields() []Field {
	fields := make([]Field, 0, len(scorecardMeta))
	for _, m := range scorecardMeta {
		v, _ := s.Get(m.key)
		fields = append(fields, Field{
			ID:          m.key,
			Value:       v,
			Label:       m.label,
			Description: m.description,
		})
	}
	return fields
}
