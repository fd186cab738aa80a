package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nao1215/gtcidash/internal/dashboard"
	"github.com/nao1215/gtcidash/internal/field"
	"github.com/nao1215/gtcidash/internal/model"
	"github.com/nao1215/gtcidash/internal/notify"
	"github.com/nao1215/gtcidash/internal/section"
	"github.com/nao1215/gtcidash/internal/snapshot"
)

// mode is what keyboard input currently edits.
type mode int

const (
	modeBrowse mode = iota
	modeScorecard
	modeIndicator
	modeNote
	modeSection
	modeSnapshotName
)

// ratingKeys maps number keys to ratings of the selected indicator.
var ratingKeys = map[string]model.Rating{
	"0": model.RatingUnset,
	"1": model.RatingCritical,
	"2": model.RatingConcern,
	"3": model.RatingMonitor,
	"4": model.RatingStrength,
}

// eventMsg carries one relay event into Update.
type eventMsg struct {
	event  notify.Event
	closed bool
}

// waitForEvent blocks on the relay subscription until the next event.
func waitForEvent(ch <-chan notify.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		return eventMsg{event: ev, closed: !ok}
	}
}

// Model is the root Bubble Tea model of the dashboard.
type Model struct {
	ctx    context.Context
	dash   *dashboard.Dashboard
	events <-chan notify.Event

	mode    mode
	cursor  int
	input   string
	session *section.Session

	notice string
	status string
	width  int
	height int
}

// Option configures a Model.
type Option func(*Model)

// WithEvents subscribes the status bar to relay events.
func WithEvents(ch <-chan notify.Event) Option {
	return func(m *Model) {
		m.events = ch
	}
}

// WithNotice seeds the status bar, typically with the relay's current message.
func WithNotice(message string) Option {
	return func(m *Model) {
		m.notice = message
	}
}

// New creates a Model over a loaded dashboard.
func New(ctx context.Context, dash *dashboard.Dashboard, opts ...Option) Model {
	m := Model{
		ctx:  ctx,
		dash: dash,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Run starts the terminal UI and blocks until the user quits.
func Run(ctx context.Context, dash *dashboard.Dashboard, relay *notify.Relay) error {
	opts := []Option{}
	if relay != nil {
		opts = append(opts, WithEvents(relay.Subscribe()))
		if msg, ok := relay.Current(); ok {
			opts = append(opts, WithNotice(msg))
		}
	}
	program := tea.NewProgram(New(ctx, dash, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Init starts listening for notifications.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case eventMsg:
		if msg.closed {
			return m, nil
		}
		if msg.event.Cleared {
			if m.notice == msg.event.Message {
				m.notice = ""
			}
		} else {
			m.notice = msg.event.Message
		}
		return m, waitForEvent(m.events)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.mode == modeBrowse {
			return m.updateBrowse(msg)
		}
		return m.updateInput(msg), nil
	}
	return m, nil
}

// updateBrowse handles keys while nothing is being edited.
func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	view := m.dash.ActiveView()
	key := msg.String()

	switch key {
	case "q":
		return m, tea.Quit
	case "tab", "l":
		m.switchView(1)
	case "shift+tab", "h":
		m.switchView(-1)
	case "down", "j":
		if m.cursor < m.rowCount(view)-1 {
			m.cursor++
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "n":
		m.mode = modeNote
		m.input = m.dash.Notes()[view.String()]
	case "s":
		m.mode = modeSnapshotName
		m.input = ""
	case "c":
		m.openSection(view)
	}

	switch view {
	case model.ViewOverview:
		if key == "e" || key == "enter" {
			m.dash.Scorecard().ToggleEdit()
			m.mode = modeScorecard
			m.input = m.scorecardBuffer()
		}
	case model.ViewIndicators:
		m.updateIndicatorKeys(key)
	case model.ViewSnapshots:
		m.updateSnapshotKeys(key)
	}
	return m, nil
}

func (m *Model) updateIndicatorKeys(key string) {
	indicator, ok := m.selectedIndicator()
	if !ok {
		return
	}
	if r, isRating := ratingKeys[key]; isRating {
		m.setError(m.dash.SetRating(m.ctx, indicator.RatingKey(), r))
		return
	}
	if key != "e" && key != "enter" {
		return
	}
	editor := m.dash.Indicators()
	if _, err := editor.BeginEdit(indicator.ID); err != nil {
		m.setError(err)
		return
	}
	m.mode = modeIndicator
	m.input = editor.Buffer()
}

func (m *Model) updateSnapshotKeys(key string) {
	snaps := m.dash.Snapshots()
	if m.cursor >= len(snaps) {
		return
	}
	snap := snaps[m.cursor]
	switch key {
	case "enter":
		if _, err := m.dash.LoadSnapshot(m.ctx, snap.ID); err != nil {
			m.setError(err)
			return
		}
		m.cursor = 0
	case "d":
		if _, err := m.dash.DeleteSnapshot(m.ctx, snap.ID); err != nil {
			m.setError(err)
			return
		}
		if m.cursor > 0 && m.cursor >= len(m.dash.Snapshots()) {
			m.cursor--
		}
	}
}

// updateInput handles keys while a text input is active.
func (m Model) updateInput(msg tea.KeyMsg) Model {
	switch msg.Type {
	case tea.KeyEsc:
		m.cancelInput()
		return m
	case tea.KeyEnter:
		m.commitInput()
		return m
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
			m.syncInput()
		}
		return m
	case tea.KeyUp, tea.KeyDown:
		if m.mode == modeScorecard {
			m.moveScorecardCursor(msg.Type == tea.KeyDown)
		}
		return m
	case tea.KeySpace:
		m.input += " "
		m.syncInput()
		return m
	case tea.KeyRunes:
		m.input += string(msg.Runes)
		m.syncInput()
		return m
	}
	return m
}

// syncInput pushes the typed text into the component being edited.
func (m *Model) syncInput() {
	switch m.mode {
	case modeScorecard:
		m.setError(m.dash.Scorecard().UpdateBuffer(m.scorecardKey(), m.input))
	case modeIndicator:
		m.setError(m.dash.Indicators().SetBuffer(m.input))
	case modeSection:
		if m.session != nil {
			m.setError(m.session.SetText(m.input))
		}
	}
}

func (m *Model) commitInput() {
	m.status = ""
	switch m.mode {
	case modeScorecard:
		if err := m.dash.Scorecard().Commit(m.ctx); err != nil {
			m.setError(err)
			return
		}
	case modeIndicator:
		id, ok := m.dash.Indicators().Editing()
		if !ok {
			break
		}
		applied, err := m.dash.Indicators().Commit(m.ctx, id)
		if err != nil {
			m.setError(err)
			return
		}
		if !applied {
			m.status = fmt.Sprintf("%q is not a number, value kept", m.input)
		}
	case modeNote:
		if err := m.dash.SetNote(m.ctx, m.dash.ActiveView().String(), m.input); err != nil {
			m.setError(err)
			return
		}
	case modeSection:
		if m.session != nil {
			if err := m.session.Save(m.ctx); err != nil {
				m.setError(err)
				return
			}
		}
		m.session = nil
	case modeSnapshotName:
		if _, err := m.dash.SaveSnapshot(m.ctx, m.input); err != nil {
			m.setError(err)
			if errors.Is(err, snapshot.ErrEmptyName) {
				return
			}
		}
	}
	m.mode = modeBrowse
	m.input = ""
}

func (m *Model) cancelInput() {
	switch m.mode {
	case modeScorecard:
		m.dash.Scorecard().Discard()
	case modeIndicator:
		m.dash.Indicators().Cancel()
	case modeSection:
		if m.session != nil {
			_ = m.session.Cancel()
		}
		m.session = nil
	}
	m.mode = modeBrowse
	m.input = ""
	m.status = ""
}

func (m *Model) openSection(view model.View) {
	session, err := m.dash.Sections().Open(m.ctx, view.String(), view.Title())
	if err != nil {
		m.setError(err)
		return
	}
	m.session = session
	m.mode = modeSection
	m.input = session.Text()
}

func (m *Model) switchView(step int) {
	views := model.Views()
	current := 0
	for i, v := range views {
		if v == m.dash.ActiveView() {
			current = i
			break
		}
	}
	next := views[(current+step+len(views))%len(views)]
	if err := m.dash.SetActiveView(m.ctx, next); err != nil {
		m.setError(err)
		return
	}
	m.cursor = 0
}

func (m *Model) moveScorecardCursor(down bool) {
	keys := model.ScorecardKeys()
	if down && m.cursor < len(keys)-1 {
		m.cursor++
	}
	if !down && m.cursor > 0 {
		m.cursor--
	}
	m.input = m.scorecardBuffer()
}

func (m *Model) scorecardKey() string {
	keys := model.ScorecardKeys()
	if m.cursor < 0 || m.cursor >= len(keys) {
		return keys[0]
	}
	return keys[m.cursor]
}

func (m *Model) scorecardBuffer() string {
	return m.dash.Scorecard().Buffer()[m.scorecardKey()].Raw
}

func (m *Model) selectedIndicator() (model.Indicator, bool) {
	indicators := m.dash.Indicators().Indicators()
	if m.cursor < 0 || m.cursor >= len(indicators) {
		return model.Indicator{}, false
	}
	return indicators[m.cursor], true
}

// rowCount returns how many selectable rows the view has.
func (m *Model) rowCount(view model.View) int {
	switch view {
	case model.ViewOverview:
		return len(model.ScorecardKeys())
	case model.ViewIndicators:
		return len(m.dash.Indicators().Indicators())
	case model.ViewSnapshots:
		return len(m.dash.Snapshots())
	default:
		return 0
	}
}

func (m *Model) setError(err error) {
	if err == nil {
		return
	}
	var invalid *field.InvalidInputError
	if errors.As(err, &invalid) {
		m.status = "Invalid input: " + invalid.Error()
		return
	}
	m.status = err.Error()
}
