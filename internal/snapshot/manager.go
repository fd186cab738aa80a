package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/nao1215/gtcidash/internal/database"
	"github.com/nao1215/gtcidash/internal/model"
	"github.com/nao1215/gtcidash/internal/notify"
)

// DefaultTimestampLayout renders the display timestamp of a snapshot,
// for example "10/19/2026, 3:04:05 PM".
const DefaultTimestampLayout = "1/2/2006, 3:04:05 PM"

// SavedMessage is the notification sent after a successful save.
const SavedMessage = "Snapshot saved successfully!"

// Restorer receives the state of a snapshot being loaded.
// The dashboard implements it by replacing its notes, ratings and view.
type Restorer interface {
	RestoreSnapshot(ctx context.Context, snap model.Snapshot) error
}

// RestorerFunc adapts a function to Restorer.
type RestorerFunc func(ctx context.Context, snap model.Snapshot) error

// RestoreSnapshot calls f(ctx, snap).
func (f RestorerFunc) RestoreSnapshot(ctx context.Context, snap model.Snapshot) error {
	return f(ctx, snap)
}

// Manager owns the ordered snapshot list.
type Manager struct {
	mu        sync.Mutex
	db        database.Store
	snapshots []model.Snapshot
	lastID    int64
	now       func() time.Time
	layout    string
	location  *time.Location
	notifier  notify.Notifier
	logger    *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock sets the time source. It is meant for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithTimestampLayout sets the time.Format layout of the display timestamp.
// An empty layout is ignored.
func WithTimestampLayout(layout string) Option {
	return func(m *Manager) {
		if layout != "" {
			m.layout = layout
		}
	}
}

// WithLocation sets the time zone of the display timestamp.
func WithLocation(loc *time.Location) Option {
	return func(m *Manager) {
		if loc != nil {
			m.location = loc
		}
	}
}

// WithNotifier sets where save confirmations are sent.
func WithNotifier(n notify.Notifier) Option {
	return func(m *Manager) {
		if n != nil {
			m.notifier = n
		}
	}
}

// WithLogger sets the logger used for load warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates an empty Manager backed by db. Call Hydrate to fill it.
func NewManager(db database.Store, opts ...Option) *Manager {
	m := &Manager{
		db:       db,
		now:      time.Now,
		layout:   DefaultTimestampLayout,
		location: time.Local,
		notifier: notify.Discard,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Hydrate reads the snapshot list from the database.
// A missing key yields an empty list; a corrupt value is logged and
// replaced by an empty list. Rating entries a snapshot could not decode are
// logged per snapshot.
func (m *Manager) Hydrate(ctx context.Context) error {
	var list []model.Snapshot
	if _, err := database.GetJSON(ctx, m.db, database.KeySnapshots, &list); err != nil {
		if !errors.Is(err, database.ErrCorrupt) {
			return fmt.Errorf("failed to load snapshots: %w", err)
		}
		m.logger.Warn("stored snapshots are corrupt, starting empty", "error", err)
		list = nil
	}
	for _, snap := range list {
		if dropped := snap.DroppedRatings(); len(dropped) > 0 {
			m.logger.Warn("dropped invalid ratings from stored snapshot",
				"id", snap.ID, "name", snap.Name, "items", dropped)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.setLocked(list)
	return nil
}

// setLocked installs list as the live snapshot list. The caller must hold m.mu.
func (m *Manager) setLocked(list []model.Snapshot) {
	m.snapshots = make([]model.Snapshot, 0, len(list))
	m.lastID = 0
	for _, s := range list {
		snap := s.Clone()
		if snap.ActiveView == "" {
			snap.ActiveView = model.DefaultView
		}
		m.snapshots = append(m.snapshots, snap)
		m.lastID = max(m.lastID, snap.ID)
	}
}

// Save appends a snapshot of the given state and writes the list through.
// The name is trimmed; an empty name returns ErrEmptyName and changes nothing.
func (m *Manager) Save(ctx context.Context, name string, notes model.Notes, ratings model.Ratings, view model.View) (model.Snapshot, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Snapshot{}, ErrEmptyName
	}
	if view == "" {
		view = model.DefaultView
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	snap := model.Snapshot{
		ID:         max(now.UnixMilli(), m.lastID+1),
		Name:       name,
		Timestamp:  now.In(m.location).Format(m.layout),
		CreatedAt:  now.UTC(),
		Notes:      notes.Clone(),
		Ratings:    ratings.Clone(),
		ActiveView: view,
	}

	next := append(model.CloneSnapshots(m.snapshots), snap)
	if err := database.SetJSON(ctx, m.db, database.KeySnapshots, next); err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to save snapshot %q: %w", name, err)
	}
	m.snapshots = next
	m.lastID = snap.ID

	m.logger.Debug("snapshot saved", "id", snap.ID, "name", name, "note_count", len(snap.Notes), "rating_count", len(snap.Ratings))
	m.notifier.Notify(SavedMessage)
	return snap.Clone(), nil
}

// List returns a deep copy of the snapshots in creation order.
func (m *Manager) List() []model.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return model.CloneSnapshots(m.snapshots)
}

// Len returns the number of snapshots.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.snapshots)
}

// Get returns a copy of the snapshot with the given id.
func (m *Manager) Get(id int64) (model.Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexLocked(id); i >= 0 {
		return m.snapshots[i].Clone(), true
	}
	return model.Snapshot{}, false
}

// Load restores the snapshot with the given id through target.
// The snapshot list is never modified. An unknown id returns ErrNotFound
// and target is not called.
func (m *Manager) Load(ctx context.Context, id int64, target Restorer) (model.Snapshot, error) {
	snap, ok := m.Get(id)
	if !ok {
		return model.Snapshot{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err := target.RestoreSnapshot(ctx, snap.Clone()); err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to restore snapshot %d: %w", id, err)
	}
	m.logger.Debug("snapshot restored", "id", id, "name", snap.Name)
	return snap, nil
}

// Delete removes the snapshot with the given id and writes the list through.
// It reports whether a snapshot was removed; an unknown id is a no-op.
// Lists imported from the browser dashboard may repeat an id, in which case
// every entry with that id is removed.
func (m *Manager) Delete(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.indexLocked(id) < 0 {
		return false, nil
	}

	next := make([]model.Snapshot, 0, len(m.snapshots))
	for _, s := range m.snapshots {
		if s.ID != id {
			next = append(next, s)
		}
	}
	if err := database.SetJSON(ctx, m.db, database.KeySnapshots, next); err != nil {
		return false, fmt.Errorf("failed to delete snapshot %d: %w", id, err)
	}
	m.snapshots = next
	m.logger.Debug("snapshot deleted", "id", id)
	return true, nil
}

// StageReplace adds the list to b. The live list is swapped when b commits.
// It is used when importing an export document.
func (m *Manager) StageReplace(b *database.Batch, list []model.Snapshot) {
	next := model.CloneSnapshots(list)
	b.PutJSON(database.KeySnapshots, next)
	b.OnCommit(func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.setLocked(next)
	})
}

func (m *Manager) indexLocked(id int64) int {
	for i, s := range m.snapshots {
		if s.ID == id {
			return i
		}
	}
	return -1
}
