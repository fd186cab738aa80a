package model

import "strconv"

// Indicator is one detailed GTCI indicator. The JSON shape matches the
// indicators_data blob.
type Indicator struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Description string  `json:"description"`
}

// Field returns the indicator as a display field.
func (i Indicator) Field() Field {
	return Field{
		ID:          strconv.Itoa(i.ID),
		Value:       i.Value,
		Label:       i.Name,
		Description: i.Description,
	}
}

// RatingKey returns the item identifier under which ratings for this
// indicator are stored.
func (i Indicator) RatingKey() string {
	return IndicatorRatingKey(i.ID)
}

// IndicatorRatingKey returns the rating item identifier for an indicator ID.
func IndicatorRatingKey(id int) string {
	return "indicator-" + strconv.Itoa(id)
}

// DefaultIndicators returns the indicator list shown before any edit.
func DefaultIndicators() []Indicator {
	return []Indicator{
		{ID: 1, Name: "Talent Availability", Value: 68, Description: "Percentage of available workforce with required skills"},
		{ID: 2, Name: "Quality of Education", Value: 72, Description: "Education system quality and vocational training"},
		{ID: 3, Name: "Foreign Direct Investment", Value: 55, Description: "FDI inflows and competitiveness ranking"},
		{ID: 4, Name: "Economic Dynamism", Value: 61, Description: "GDP growth and business environment"},
		{ID: 5, Name: "Digital Infrastructure", Value: 59, Description: "Broadband coverage and technology adoption"},
		{ID: 6, Name: "Retention Capacity", Value: 58, Description: "Wage competitiveness and quality of life"},
	}
}

// CloneIndicators returns a copy of the list.
func CloneIndicators(in []Indicator) []Indicator {
	out := make([]Indicator, len(in))
	copy(out, in)
	return out
}
