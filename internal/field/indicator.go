package field

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nao1215/gtcidash/internal/database"
	"github.com/nao1215/gtcidash/internal/model"
)

// IndicatorSavedMessage is the notification sent after an indicator commit.
const IndicatorSavedMessage = "Indicator updated!"

// IndicatorEditor edits one indicator value at a time.
type IndicatorEditor struct {
	mu         sync.Mutex
	db         database.Store
	opts       options
	indicators []model.Indicator
	editing    bool
	editingID  int
	buffer     string
}

// NewIndicatorEditor creates an editor holding the default indicators.
// Call Load to read the stored values.
func NewIndicatorEditor(db database.Store, opts ...Option) *IndicatorEditor {
	return &IndicatorEditor{
		db:         db,
		opts:       newOptions(opts),
		indicators: model.DefaultIndicators(),
	}
}

// Load reads the indicator list from the database. Missing, corrupt or
// empty data leaves the defaults in place; any pending edit is dropped.
func (e *IndicatorEditor) Load(ctx context.Context) error {
	var list []model.Indicator
	found, err := database.GetJSON(ctx, e.db, database.KeyIndicators, &list)
	if err != nil {
		if !errors.Is(err, database.ErrCorrupt) {
			return fmt.Errorf("failed to load indicators: %w", err)
		}
		e.opts.logger.Warn("stored indicators are corrupt, using defaults", "error", err)
		found = false
	}
	if !found || len(list) == 0 {
		list = model.DefaultIndicators()
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.indicators = list
	e.editing = false
	e.buffer = ""
	return nil
}

// Indicators returns a copy of the committed indicators.
func (e *IndicatorEditor) Indicators() []model.Indicator {
	e.mu.Lock()
	defer e.mu.Unlock()
	return model.CloneIndicators(e.indicators)
}

// Indicator returns the committed indicator with the given id.
func (e *IndicatorEditor) Indicator(id int) (model.Indicator, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i := e.indexLocked(id); i >= 0 {
		return e.indicators[i], true
	}
	return model.Indicator{}, false
}

// Editing returns the id being edited and whether an edit is open.
func (e *IndicatorEditor) Editing() (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editingID, e.editing
}

// Buffer returns the pending input.
func (e *IndicatorEditor) Buffer() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buffer
}

// BeginEdit opens an inline edit of indicator id, seeding the buffer with
// its current value. An edit already open on another indicator is
// abandoned; discarded reports that and a notification names it.
// Beginning an edit on the indicator already being edited keeps its buffer.
func (e *IndicatorEditor) BeginEdit(id int) (discarded bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexLocked(id)
	if i < 0 {
		return false, fmt.Errorf("%w: indicator %d", ErrUnknownField, id)
	}
	if e.editing && e.editingID == id {
		return false, nil
	}

	if e.editing {
		if prev := e.indexLocked(e.editingID); prev >= 0 {
			discarded = true
			e.opts.logger.Debug("pending indicator edit discarded", "id", e.editingID, "buffer", e.buffer)
			e.opts.notifier.Notify(fmt.Sprintf("Discarded unsaved edit of %s", e.indicators[prev].Name))
		}
	}

	e.editing = true
	e.editingID = id
	e.buffer = model.FormatValue(e.indicators[i].Value)
	return discarded, nil
}

// SetBuffer replaces the pending input.
func (e *IndicatorEditor) SetBuffer(raw string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.editing {
		return ErrNotEditing
	}
	e.buffer = raw
	return nil
}

// Commit parses the buffer and stores it as the value of indicator id.
//
// When the buffer is not a finite number the previous value is kept and
// applied is false; the edit is closed either way. Committing an id other
// than the one being edited returns ErrNotEditing and changes nothing.
func (e *IndicatorEditor) Commit(ctx context.Context, id int) (applied bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.editing || e.editingID != id {
		return false, fmt.Errorf("%w: indicator %d", ErrNotEditing, id)
	}
	i := e.indexLocked(id)
	if i < 0 {
		e.closeLocked()
		return false, fmt.Errorf("%w: indicator %d", ErrUnknownField, id)
	}

	value, parseErr := model.ParseValue(e.buffer)
	if parseErr != nil {
		e.opts.logger.Debug("indicator input ignored", "id", id, "buffer", e.buffer)
		e.closeLocked()
		return false, nil
	}

	next := model.CloneIndicators(e.indicators)
	next[i].Value = value
	if err := database.SetJSON(ctx, e.db, database.KeyIndicators, next); err != nil {
		return false, fmt.Errorf("failed to save indicator %d: %w", id, err)
	}
	e.indicators = next
	e.closeLocked()
	e.opts.notifier.Notify(IndicatorSavedMessage)
	return true, nil
}

// Cancel closes the edit and drops the buffer.
func (e *IndicatorEditor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closeLocked()
}

// Set begins an edit of id, fills the buffer with raw and commits it.
// It is the one-shot form used by the command line.
func (e *IndicatorEditor) Set(ctx context.Context, id int, raw string) (applied bool, err error) {
	if _, err := e.BeginEdit(id); err != nil {
		return false, err
	}
	if err := e.SetBuffer(raw); err != nil {
		return false, err
	}
	return e.Commit(ctx, id)
}

func (e *IndicatorEditor) closeLocked() {
	e.editing = false
	e.editingID = 0
	e.buffer = ""
}

func (e *IndicatorEditor) indexLocked(id int) int {
	for i, ind := range e.indicators {
		if ind.ID == id {
			return i
		}
	}
	return -1
}
