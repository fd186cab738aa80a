package database

import (
	"context"
)

// Batch collects JSON values that must be written together, plus the
// in-memory updates that may only happen once the write succeeded.
//
// Design decision: Components stage their part of a multi-key change into
// one Batch instead of writing their own keys in turn. Restoring a snapshot
// touches notes, ratings and the active view; writing them one by one would
// leave a half-restored dashboard behind when a later key fails.
type Batch struct {
	values   map[string]any
	onCommit []func()
}

// NewBatch creates an empty Batch.
func NewBatch() *Batch {
	return &Batch{values: make(map[string]any)}
}

// PutJSON stages v under key. A later PutJSON of the same key wins.
func (b *Batch) PutJSON(key string, v any) {
	b.values[key] = v
}

// OnCommit registers f to run after the batch is durable.
// Callbacks run in registration order.
func (b *Batch) OnCommit(f func()) {
	b.onCommit = append(b.onCommit, f)
}

// Len returns the number of staged keys.
func (b *Batch) Len() int {
	return len(b.values)
}

// Commit encodes every staged value and stores them with one SetMany.
// On any error nothing is written and no callback runs.
func (b *Batch) Commit(ctx context.Context, s Store) error {
	encoded := make(map[string]string, len(b.values))
	for key, v := range b.values {
		wrapped, err := encodeJSON(key, v)
		if err != nil {
			return err
		}
		encoded[key] = wrapped
	}
	if err := s.SetMany(ctx, encoded); err != nil {
		return err
	}
	for _, f := range b.onCommit {
		f()
	}
	return nil
}
