package section

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nao1215/gtcidash/internal/database"
	"github.com/nao1215/gtcidash/internal/notify"
)

// NoContent is displayed for sections without text.
const NoContent = "(No content)"

// SavedMessage is the notification sent after a section is saved.
const SavedMessage = "Changes saved!"

var (
	// ErrClosed is returned by operations on a session that was saved or cancelled.
	ErrClosed = errors.New("section session is closed")

	// ErrEmptyID is returned when a section is opened with an empty id.
	ErrEmptyID = errors.New("section id must not be empty")
)

// State is the lifecycle state of a Session.
type State int

const (
	// StateClosed means the session was saved or cancelled.
	StateClosed State = iota
	// StateOpen means the session shows the stored text unchanged.
	StateOpen
	// StateDirty means the text differs from the stored text.
	StateDirty
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateDirty:
		return "dirty"
	default:
		return "unknown"
	}
}

// Record is the stored form of one section.
type Record struct {
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// Editor owns the section records and the active session.
type Editor struct {
	mu       sync.Mutex
	db       database.Store
	records  map[string]Record
	loaded   bool
	active   *Session
	now      func() time.Time
	notifier notify.Notifier
	logger   *slog.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithClock sets the time source of UpdatedAt. It is meant for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) {
		if now != nil {
			e.now = now
		}
	}
}

// WithNotifier sets where save confirmations are sent.
func WithNotifier(n notify.Notifier) Option {
	return func(e *Editor) {
		if n != nil {
			e.notifier = n
		}
	}
}

// WithLogger sets the logger used for load warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEditor creates an Editor backed by db.
func NewEditor(db database.Store, opts ...Option) *Editor {
	e := &Editor{
		db:       db,
		records:  map[string]Record{},
		now:      time.Now,
		notifier: notify.Discard,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load reads the section records, then fills in sections that only exist
// under a legacy "edit_<id>" key.
func (e *Editor) Load(ctx context.Context) error {
	records := map[string]Record{}
	if _, err := database.GetJSON(ctx, e.db, database.KeySections, &records); err != nil {
		if !errors.Is(err, database.ErrCorrupt) {
			return fmt.Errorf("failed to load sections: %w", err)
		}
		e.logger.Warn("stored sections are corrupt, starting empty", "error", err)
		records = map[string]Record{}
	}

	legacy, err := e.db.Keys(ctx, database.LegacySectionPrefix)
	if err != nil {
		return fmt.Errorf("failed to list legacy sections: %w", err)
	}
	for _, key := range legacy {
		id := strings.TrimPrefix(key, database.LegacySectionPrefix)
		if id == "" {
			continue
		}
		if _, ok := records[id]; ok {
			continue
		}
		raw, ok, err := e.db.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to read legacy section %q: %w", id, err)
		}
		if ok {
			records[id] = Record{Content: legacyText(raw)}
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.records = records
	e.loaded = true
	return nil
}

// legacyText returns the text of a legacy value, which is either plain text
// or a JSON string literal.
func legacyText(raw string) string {
	var s string
	if err := json.Unmarshal([]byte(raw), &s); err == nil {
		return s
	}
	return raw
}

// Open starts a session on section id seeded with its stored text.
// An active session on another section is closed without saving.
func (e *Editor) Open(ctx context.Context, id, title string) (*Session, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	e.mu.Lock()
	loaded := e.loaded
	e.mu.Unlock()
	if !loaded {
		if err := e.Load(ctx); err != nil {
			return nil, err
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active != nil {
		e.active.state = StateClosed
	}
	seed := e.records[id].Content
	s := &Session{
		editor: e,
		id:     id,
		title:  title,
		seed:   seed,
		text:   seed,
		state:  StateOpen,
	}
	e.active = s
	return s, nil
}

// Active returns the open session, or nil.
func (e *Editor) Active() *Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == nil || e.active.state == StateClosed {
		return nil
	}
	return e.active
}

// Display returns the stored text of id, or NoContent.
func (e *Editor) Display(id string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if text := e.records[id].Content; text != "" {
		return text
	}
	return NoContent
}

// Record returns the stored record of id.
func (e *Editor) Record(id string) (Record, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	r, ok := e.records[id]
	return r, ok
}

// IDs returns the ids of all stored sections, sorted.
func (e *Editor) IDs() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	ids := make([]string, 0, len(e.records))
	for id := range e.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// save stores text for id. The caller must not hold e.mu.
func (e *Editor) save(ctx context.Context, s *Session) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if s.state == StateClosed {
		return ErrClosed
	}

	next := make(map[string]Record, len(e.records)+1)
	for k, v := range e.records {
		next[k] = v
	}
	next[s.id] = Record{Content: s.text, UpdatedAt: e.now().UTC()}
	if err := database.SetJSON(ctx, e.db, database.KeySections, next); err != nil {
		return fmt.Errorf("failed to save section %q: %w", s.id, err)
	}
	e.records = next
	s.state = StateClosed
	if e.active == s {
		e.active = nil
	}
	e.logger.Debug("section saved", "section", s.id, "text", s.text)
	e.notifier.Notify(SavedMessage)
	return nil
}

// Session is one open edit of a section.
type Session struct {
	editor *Editor
	id     string
	title  string
	seed   string
	text   string
	state  State
}

// ID returns the section id.
func (s *Session) ID() string { return s.id }

// Title returns the title shown above the editor.
func (s *Session) Title() string { return s.title }

// Text returns the current text.
func (s *Session) Text() string {
	s.editor.mu.Lock()
	defer s.editor.mu.Unlock()
	return s.text
}

// State returns the current state.
func (s *Session) State() State {
	s.editor.mu.Lock()
	defer s.editor.mu.Unlock()
	return s.state
}

// SetText replaces the text. The session is dirty while the text differs
// from the stored text.
func (s *Session) SetText(text string) error {
	s.editor.mu.Lock()
	defer s.editor.mu.Unlock()
	if s.state == StateClosed {
		return ErrClosed
	}
	s.text = text
	if text == s.seed {
		s.state = StateOpen
	} else {
		s.state = StateDirty
	}
	return nil
}

// Save writes the text through and closes the session.
// On a write error the session stays open so the text is not lost.
func (s *Session) Save(ctx context.Context) error {
	return s.editor.save(ctx, s)
}

// Cancel closes the session without writing.
func (s *Session) Cancel() error {
	s.editor.mu.Lock()
	defer s.editor.mu.Unlock()
	if s.state == StateClosed {
		return ErrClosed
	}
	s.state = StateClosed
	if s.editor.active == s {
		s.editor.active = nil
	}
	return nil
}
