package model

import (
	"fmt"
	"strings"
)

// View identifies a dashboard tab. The active view is captured by snapshots
// and restored when a snapshot is loaded.
type View string

// Dashboard tabs, in display order.
const (
	ViewOverview       View = "overview"
	ViewIndicators     View = "indicators"
	ViewPillars        View = "pillars"
	ViewReforms        View = "reforms"
	ViewBudget         View = "budget"
	ViewImplementation View = "implementation"
	ViewDashboard      View = "dashboard"
	ViewQuality        View = "quality"
	ViewFinancial      View = "financial"
	ViewSnapshots      View = "snapshots"
)

// DefaultView is the tab shown when nothing else was selected.
const DefaultView = ViewOverview

// Views returns every dashboard tab in display order.
func Views() []View {
	return []View{
		ViewOverview,
		ViewIndicators,
		ViewPillars,
		ViewReforms,
		ViewBudget,
		ViewImplementation,
		ViewDashboard,
		ViewQuality,
		ViewFinancial,
		ViewSnapshots,
	}
}

// ParseView validates a tab name. Matching is case-insensitive.
func ParseView(name string) (View, error) {
	normalized := View(strings.ToLower(strings.TrimSpace(name)))
	for _, v := range Views() {
		if v == normalized {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidView, name)
}

// Valid reports whether v is a known tab.
func (v View) Valid() bool {
	_, err := ParseView(string(v))
	return err == nil
}

// String returns the tab identifier.
func (v View) String() string {
	return string(v)
}

// Title returns the tab name for display.
func (v View) Title() string {
	return displayTitle(string(v))
}
