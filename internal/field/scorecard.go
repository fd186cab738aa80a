package field

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nao1215/gtcidash/internal/database"
	"github.com/nao1215/gtcidash/internal/model"
)

// ScorecardSavedMessage is the notification sent after a scorecard commit.
const ScorecardSavedMessage = "Scorecard updated successfully!"

// BufferValue is one pending scorecard input.
type BufferValue struct {
	// Raw is the input exactly as typed.
	Raw string

	// Number is the parsed value. Only meaningful when Numeric is true.
	Number float64

	// Numeric reports whether Raw parsed as a finite number.
	Numeric bool
}

func bufferValueOf(v float64) BufferValue {
	return BufferValue{Raw: model.FormatValue(v), Number: v, Numeric: true}
}

func parseBufferValue(raw string) BufferValue {
	v, err := model.ParseValue(raw)
	if err != nil {
		return BufferValue{Raw: raw}
	}
	return BufferValue{Raw: raw, Number: v, Numeric: true}
}

// ScorecardEditor edits the headline scorecard numbers as a group.
type ScorecardEditor struct {
	mu        sync.Mutex
	db        database.Store
	opts      options
	committed model.Scorecard
	editing   bool
	buffer    map[string]BufferValue
}

// NewScorecardEditor creates an editor holding the default scorecard.
// Call Load to read the stored values.
func NewScorecardEditor(db database.Store, opts ...Option) *ScorecardEditor {
	e := &ScorecardEditor{
		db:        db,
		opts:      newOptions(opts),
		committed: model.DefaultScorecard(),
	}
	e.buffer = seedBuffer(e.committed)
	return e
}

func seedBuffer(s model.Scorecard) map[string]BufferValue {
	buf := make(map[string]BufferValue, len(model.ScorecardKeys()))
	for _, key := range model.ScorecardKeys() {
		v, _ := s.Get(key)
		buf[key] = bufferValueOf(v)
	}
	return buf
}

// Load reads the committed scorecard from the database. Missing or corrupt
// data leaves the defaults in place; edit mode is reset.
func (e *ScorecardEditor) Load(ctx context.Context) error {
	sc := model.DefaultScorecard()
	if _, err := database.GetJSON(ctx, e.db, database.KeyScorecard, &sc); err != nil {
		if !errors.Is(err, database.ErrCorrupt) {
			return fmt.Errorf("failed to load scorecard: %w", err)
		}
		e.opts.logger.Warn("stored scorecard is corrupt, using defaults", "error", err)
		sc = model.DefaultScorecard()
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.committed = sc
	e.editing = false
	e.buffer = seedBuffer(sc)
	return nil
}

// Scorecard returns the committed values.
func (e *ScorecardEditor) Scorecard() model.Scorecard {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.committed
}

// Editing reports whether edit mode is on.
func (e *ScorecardEditor) Editing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editing
}

// Buffer returns a copy of the pending input keyed by scorecard field.
func (e *ScorecardEditor) Buffer() map[string]BufferValue {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]BufferValue, len(e.buffer))
	for k, v := range e.buffer {
		out[k] = v
	}
	return out
}

// ToggleEdit flips edit mode and returns the new state. The buffer is
// reseeded from the committed values in both directions, so leaving edit
// mode this way discards pending input.
func (e *ScorecardEditor) ToggleEdit() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.editing = !e.editing
	e.buffer = seedBuffer(e.committed)
	return e.editing
}

// UpdateBuffer records raw input for one field.
func (e *ScorecardEditor) UpdateBuffer(key, raw string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.editing {
		return ErrNotEditing
	}
	if _, ok := e.committed.Get(key); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	e.buffer[key] = parseBufferValue(raw)
	return nil
}

// Commit validates the buffer, replaces the committed values, leaves edit
// mode and writes the scorecard through. When any buffered value is
// invalid an *InvalidInputError is returned, edit mode stays on and
// nothing is written.
//
// The browser dashboard committed a non-numeric entry as a string. Here
// scorecard_data holds numbers only, so such a buffer is refused and the
// raw text stays in the buffer for the user to correct.
func (e *ScorecardEditor) Commit(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.editing {
		return ErrNotEditing
	}

	next := e.committed
	invalid := &InvalidInputError{Reasons: map[string]string{}}
	for _, key := range model.ScorecardKeys() {
		bv := e.buffer[key]
		if !bv.Numeric {
			invalid.Fields = append(invalid.Fields, key)
			invalid.Reasons[key] = fmt.Sprintf("%q is not a number", bv.Raw)
			continue
		}
		updated, err := next.With(key, bv.Number)
		if err != nil {
			invalid.Fields = append(invalid.Fields, key)
			invalid.Reasons[key] = "must be a whole number"
			continue
		}
		next = updated
	}
	if len(invalid.Fields) > 0 {
		return invalid
	}

	if err := database.SetJSON(ctx, e.db, database.KeyScorecard, next); err != nil {
		return fmt.Errorf("failed to save scorecard: %w", err)
	}
	e.committed = next
	e.editing = false
	e.buffer = seedBuffer(next)
	e.opts.logger.Debug("scorecard committed", "rank", next.OverallRank, "tci", next.GlobalTCI)
	e.opts.notifier.Notify(ScorecardSavedMessage)
	return nil
}

// Discard drops pending input and leaves edit mode without writing.
func (e *ScorecardEditor) Discard() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.editing = false
	e.buffer = seedBuffer(e.committed)
}

// Fields returns the committed scorecard as display fields.
func (e *ScorecardEditor) Fields() []model.Field {
	return e.Scorecard().Fields()
}
