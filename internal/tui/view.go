package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nao1215/gtcidash/internal/model"
)

const cursorMark = "> "

// View renders the whole screen.
func (m Model) View() string {
	view := m.dash.ActiveView()
	sections := []string{
		styleTitle.Render("Global Talent Competitiveness Index"),
		m.renderTabs(view),
		stylePane.Render(m.renderBody(view)),
		m.renderNote(view),
		m.renderStatus(),
		styleMuted.Render(m.helpLine(view)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTabs(active model.View) string {
	tabs := make([]string, 0, len(model.Views()))
	for _, v := range model.Views() {
		if v == active {
			tabs = append(tabs, styleTabActive.Render(v.Title()))
			continue
		}
		tabs = append(tabs, styleTab.Render(v.Title()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderBody(view model.View) string {
	switch view {
	case model.ViewOverview:
		return m.renderScorecard()
	case model.ViewIndicators:
		return m.renderIndicators()
	case model.ViewSnapshots:
		return m.renderSnapshots()
	default:
		return m.renderSection(view)
	}
}

func (m Model) renderScorecard() string {
	editor := m.dash.Scorecard()
	editing := m.mode == modeScorecard
	buffer := editor.Buffer()

	var b strings.Builder
	for i, f := range editor.Fields() {
		value := model.FormatValue(f.Value)
		if editing {
			value = buffer[f.ID].Raw
			if i == m.cursor {
				value = styleInput.Render(m.input)
			}
		}
		b.WriteString(m.row(i, fmt.Sprintf("%-28s %s", f.Label, value)))
	}
	if editing {
		b.WriteString(styleMuted.Render("editing scorecard: enter to save, esc to discard"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderIndicators() string {
	editor := m.dash.Indicators()
	editingID, editing := editor.Editing()
	ratings := m.dash.Ratings()

	var b strings.Builder
	for i, ind := range editor.Indicators() {
		value := model.FormatValue(ind.Value)
		if editing && ind.ID == editingID {
			value = styleInput.Render(m.input)
		}
		rating := ratings[ind.RatingKey()]
		label := "select"
		if rating.IsSet() {
			label = rating.Title()
		}
		line := fmt.Sprintf("%-28s %-8s %s", ind.Name, value, ratingStyle(rating).Render(label))
		b.WriteString(m.row(i, line))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderSnapshots() string {
	snaps := m.dash.Snapshots()
	if len(snaps) == 0 {
		return styleMuted.Render("No snapshots saved yet. Press s to save one.")
	}
	var b strings.Builder
	for i, s := range snaps {
		line := fmt.Sprintf("%-24s %-24s %d notes, %d ratings", s.Name, s.Timestamp, len(s.Notes), len(s.Ratings))
		b.WriteString(m.row(i, line))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderSection(view model.View) string {
	if m.mode == modeSection && m.session != nil && m.session.ID() == view.String() {
		return styleTitle.Render("Edit "+m.session.Title()) + "\n" + styleInput.Render(m.input) +
			"\n" + styleMuted.Render("state: "+m.session.State().String())
	}
	return m.dash.Sections().Display(view.String())
}

func (m Model) renderNote(view model.View) string {
	if m.mode == modeNote {
		return "Note: " + styleInput.Render(m.input)
	}
	if m.mode == modeSnapshotName {
		return "Snapshot name: " + styleInput.Render(m.input)
	}
	note, ok := m.dash.Notes()[view.String()]
	if !ok {
		return styleMuted.Render("Note: (none)")
	}
	return "Note: " + note
}

func (m Model) renderStatus() string {
	var parts []string
	if m.notice != "" {
		parts = append(parts, styleNotice.Render(m.notice))
	}
	if m.status != "" {
		parts = append(parts, styleError.Render(m.status))
	}
	return strings.Join(parts, " ")
}

func (m Model) helpLine(view model.View) string {
	if m.mode != modeBrowse {
		return "enter save • esc cancel"
	}
	common := "tab view • n note • c content • s snapshot • q quit"
	switch view {
	case model.ViewOverview:
		return "e edit scorecard • " + common
	case model.ViewIndicators:
		return "e edit value • 1-4 rate • 0 clear • " + common
	case model.ViewSnapshots:
		return "enter load • d delete • " + common
	default:
		return common
	}
}

func (m Model) row(i int, line string) string {
	if i == m.cursor && m.mode != modeSection {
		return styleSelected.Render(cursorMark+line) + "\n"
	}
	return "  " + line + "\n"
}
