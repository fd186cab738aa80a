package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/gtcidash/internal/annotation"
	"github.com/nao1215/gtcidash/internal/database"
	"github.com/nao1215/gtcidash/internal/field"
	"github.com/nao1215/gtcidash/internal/model"
	"github.com/nao1215/gtcidash/internal/notify"
	"github.com/nao1215/gtcidash/internal/report"
	"github.com/nao1215/gtcidash/internal/section"
	"github.com/nao1215/gtcidash/internal/snapshot"
)

// ImportedMessage is the notification sent after a successful import.
const ImportedMessage = "Data imported successfully!"

// settings collects the options of a Dashboard.
type settings struct {
	logger          *slog.Logger
	now             func() time.Time
	timestampLayout string
	defaultView     model.View
}

// Option configures a Dashboard.
type Option func(*settings)

// WithLogger sets the logger shared by all components.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the time source of snapshots, sections and exports.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTimestampLayout sets the display layout of snapshot timestamps.
func WithTimestampLayout(layout string) Option {
	return func(s *settings) {
		s.timestampLayout = layout
	}
}

// WithDefaultView sets the view used when none is stored.
// Invalid views are ignored.
func WithDefaultView(v model.View) Option {
	return func(s *settings) {
		if v.Valid() {
			s.defaultView = v
		}
	}
}

// Dashboard is the application state.
type Dashboard struct {
	mu          sync.Mutex
	db          database.Store
	notifier    notify.Notifier
	annotations *annotation.Store
	snapshots   *snapshot.Manager
	scorecard   *field.ScorecardEditor
	indicators  *field.IndicatorEditor
	sections    *section.Editor
	view        model.View
	defaultView model.View
	now         func() time.Time
	logger      *slog.Logger
}

// New creates a Dashboard backed by db. Confirmations go to n; a nil n
// discards them. Call Load before use.
func New(db database.Store, n notify.Notifier, opts ...Option) *Dashboard {
	s := settings{
		logger:      slog.New(slog.DiscardHandler),
		now:         time.Now,
		defaultView: model.DefaultView,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if n == nil {
		n = notify.Discard
	}

	return &Dashboard{
		db:       db,
		notifier: n,
		annotations: annotation.New(db,
			annotation.WithLogger(s.logger.With("component", "annotation"))),
		snapshots: snapshot.NewManager(db,
			snapshot.WithClock(s.now),
			snapshot.WithTimestampLayout(s.timestampLayout),
			snapshot.WithNotifier(n),
			snapshot.WithLogger(s.logger.With("component", "snapshot"))),
		scorecard: field.NewScorecardEditor(db,
			field.WithNotifier(n),
			field.WithLogger(s.logger.With("component", "scorecard"))),
		indicators: field.NewIndicatorEditor(db,
			field.WithNotifier(n),
			field.WithLogger(s.logger.With("component", "indicators"))),
		sections: section.NewEditor(db,
			section.WithClock(s.now),
			section.WithNotifier(n),
			section.WithLogger(s.logger.With("component", "section"))),
		view:        s.defaultView,
		defaultView: s.defaultView,
		now:         s.now,
		logger:      s.logger,
	}
}

// Load hydrates every component from the database concurrently.
func (d *Dashboard) Load(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return d.annotations.Load(gctx) })
	g.Go(func() error { return d.snapshots.Hydrate(gctx) })
	g.Go(func() error { return d.scorecard.Load(gctx) })
	g.Go(func() error { return d.indicators.Load(gctx) })
	g.Go(func() error { return d.sections.Load(gctx) })
	g.Go(func() error { return d.loadView(gctx) })
	if err := g.Wait(); err != nil {
		return err
	}
	d.logger.Debug("dashboard loaded",
		"snapshot_count", d.snapshots.Len(),
		"view", d.ActiveView().String())
	return nil
}

func (d *Dashboard) loadView(ctx context.Context) error {
	var name string
	found, err := database.GetJSON(ctx, d.db, database.KeyActiveView, &name)
	if err != nil {
		if !errors.Is(err, database.ErrCorrupt) {
			return fmt.Errorf("failed to load active view: %w", err)
		}
		d.logger.Warn("stored active view is corrupt, using default", "error", err)
		found = false
	}

	view := d.defaultView
	if found {
		if v, err := model.ParseView(name); err == nil {
			view = v
		} else {
			d.logger.Warn("ignoring stored active view", "view", name)
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.view = view
	return nil
}

// ActiveView returns the selected view.
func (d *Dashboard) ActiveView() model.View {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.view
}

// SetActiveView selects a view and writes it through.
func (d *Dashboard) SetActiveView(ctx context.Context, v model.View) error {
	if !v.Valid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidView, v)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := database.SetJSON(ctx, d.db, database.KeyActiveView, v.String()); err != nil {
		return fmt.Errorf("failed to save active view: %w", err)
	}
	d.view = v
	return nil
}

// SetNote replaces the note of a section.
func (d *Dashboard) SetNote(ctx context.Context, sectionID, text string) error {
	return d.annotations.SetNote(ctx, sectionID, text)
}

// SetRating replaces the rating of an item. RatingUnset removes it.
func (d *Dashboard) SetRating(ctx context.Context, itemID string, r model.Rating) error {
	return d.annotations.SetRating(ctx, itemID, r)
}

// Notes returns a copy of the notes.
func (d *Dashboard) Notes() model.Notes {
	return d.annotations.Notes()
}

// Ratings returns a copy of the ratings.
func (d *Dashboard) Ratings() model.Ratings {
	return d.annotations.Ratings()
}

// SaveSnapshot captures the current notes, ratings and view under name.
func (d *Dashboard) SaveSnapshot(ctx context.Context, name string) (model.Snapshot, error) {
	return d.snapshots.Save(ctx, name, d.Notes(), d.Ratings(), d.ActiveView())
}

// LoadSnapshot restores the snapshot with the given id.
func (d *Dashboard) LoadSnapshot(ctx context.Context, id int64) (model.Snapshot, error) {
	return d.snapshots.Load(ctx, id, d)
}

// RestoreSnapshot implements snapshot.Restorer. It replaces the notes, the
// ratings and the view with the snapshot's and writes them through in one
// batch, so a failed write leaves both memory and storage untouched.
func (d *Dashboard) RestoreSnapshot(ctx context.Context, snap model.Snapshot) error {
	view := snap.ActiveView
	if !view.Valid() {
		d.logger.Warn("snapshot has unknown view, using default", "view", view.String())
		view = d.defaultView
	}

	b := database.NewBatch()
	d.annotations.StageReplace(b, snap.Notes, snap.Ratings)
	d.stageView(b, view)
	if err := b.Commit(ctx, d.db); err != nil {
		return fmt.Errorf("failed to save restored state: %w", err)
	}
	return nil
}

// stageView adds the active view to b and selects it when b commits.
func (d *Dashboard) stageView(b *database.Batch, v model.View) {
	b.PutJSON(database.KeyActiveView, v.String())
	b.OnCommit(func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.view = v
	})
}

// DeleteSnapshot removes the snapshot with the given id.
// It reports whether a snapshot was removed.
func (d *Dashboard) DeleteSnapshot(ctx context.Context, id int64) (bool, error) {
	return d.snapshots.Delete(ctx, id)
}

// Snapshots returns a copy of the snapshot list.
func (d *Dashboard) Snapshots() []model.Snapshot {
	return d.snapshots.List()
}

// Snapshot returns a copy of one snapshot.
func (d *Dashboard) Snapshot(id int64) (model.Snapshot, bool) {
	return d.snapshots.Get(id)
}

// Export builds the export document of the current state.
func (d *Dashboard) Export(now time.Time) report.Document {
	return report.Build(d.Notes(), d.Ratings(), d.Snapshots(), now)
}

// Report builds the export document plus the current metrics.
func (d *Dashboard) Report(now time.Time) *report.Report {
	return &report.Report{
		Document:   d.Export(now),
		Scorecard:  d.scorecard.Scorecard(),
		Indicators: d.indicators.Indicators(),
		ActiveView: d.ActiveView(),
	}
}

// Import replaces the notes, ratings and snapshots with those of doc.
// All three keys are written in one batch.
func (d *Dashboard) Import(ctx context.Context, doc report.Document) error {
	b := database.NewBatch()
	d.annotations.StageReplace(b, doc.Notes, doc.Ratings)
	d.snapshots.StageReplace(b, doc.Snapshots)
	if err := b.Commit(ctx, d.db); err != nil {
		return fmt.Errorf("failed to save imported document: %w", err)
	}
	d.logger.Info("imported export document",
		"export_date", doc.ExportDate,
		"snapshot_count", len(doc.Snapshots))
	d.notifier.Notify(ImportedMessage)
	return nil
}

// Now returns the current time of the dashboard clock.
func (d *Dashboard) Now() time.Time {
	return d.now()
}

// Scorecard returns the scorecard editor.
func (d *Dashboard) Scorecard() *field.ScorecardEditor {
	return d.scorecard
}

// Indicators returns the indicator editor.
func (d *Dashboard) Indicators() *field.IndicatorEditor {
	return d.indicators
}

// Sections returns the section editor.
func (d *Dashboard) Sections() *section.Editor {
	return d.sections
}
