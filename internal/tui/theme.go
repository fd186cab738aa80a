package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nao1215/gtcidash/internal/model"
)

var (
	colorBase     = lipgloss.Color("#1e1e2e")
	colorSurface  = lipgloss.Color("#45475a")
	colorText     = lipgloss.Color("#cdd6f4")
	colorSubtext  = lipgloss.Color("#a6adc8")
	colorAccent   = lipgloss.Color("#b4befe")
	colorTitle    = lipgloss.Color("#74c7ec")
	colorGreen    = lipgloss.Color("#a6e3a1")
	colorYellow   = lipgloss.Color("#f9e2af")
	colorPeach    = lipgloss.Color("#fab387")
	colorRed      = lipgloss.Color("#f38ba8")
	styleTitle    = lipgloss.NewStyle().Foreground(colorTitle).Bold(true)
	styleMuted    = lipgloss.NewStyle().Foreground(colorSubtext)
	styleSelected = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleError    = lipgloss.NewStyle().Foreground(colorRed)
	styleNotice   = lipgloss.NewStyle().Foreground(colorBase).Background(colorGreen).Padding(0, 1)
	styleInput    = lipgloss.NewStyle().Foreground(colorPeach).Underline(true)

	styleTab       = lipgloss.NewStyle().Foreground(colorSubtext).Padding(0, 1)
	styleTabActive = lipgloss.NewStyle().Foreground(colorBase).Background(colorAccent).Bold(true).Padding(0, 1)

	stylePane = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface).
			Foreground(colorText).
			Padding(0, 1)
)

// ratingStyle colors a rating label by severity.
func ratingStyle(r model.Rating) lipgloss.Style {
	switch r {
	case model.RatingCritical:
		return lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	case model.RatingConcern:
		return lipgloss.NewStyle().Foreground(colorPeach)
	case model.RatingMonitor:
		return lipgloss.NewStyle().Foreground(colorYellow)
	case model.RatingStrength:
		return lipgloss.NewStyle().Foreground(colorGreen)
	default:
		return styleMuted
	}
}
