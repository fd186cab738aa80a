package database

import (
	"context"
	"errors"
)

// Store is a string key-value store with synchronous write-through.
//
// Design decision: The interface is deliberately as small as the browser
// storage it replaces. Components own the meaning of their keys and encode
// their values themselves (usually through SetJSON), so swapping SQLite for
// another backend only means implementing these five methods.
type Store interface {
	// Get returns the value stored under key. A missing key is reported
	// with ok=false and a nil error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	// It returns only after the value is durable.
	Set(ctx context.Context, key, value string) error

	// SetMany stores every entry of values as one unit: either all of them
	// are durable when it returns nil, or none of them changed.
	SetMany(ctx context.Context, values map[string]string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys returns the stored keys that start with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

var (
	// ErrCorrupt is returned when a stored value cannot be decoded.
	// Callers are expected to fall back to their default value.
	ErrCorrupt = errors.New("stored value is corrupt")

	// ErrUnsupportedVersion is returned when a stored value was written by a
	// newer schema version than this build understands.
	ErrUnsupportedVersion = errors.New("stored value has unsupported schema version")

	// ErrEmptyKey is returned when a store operation is given an empty key.
	ErrEmptyKey = errors.New("empty storage key")
)

// Compile-time checks that both backends satisfy Store.
var (
	_ Store = (*KVDB)(nil)
	_ Store = (*MemoryStore)(nil)
)
