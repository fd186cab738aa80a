// Package database provides the persistent key-value store for gtcidash.
//
// Every piece of dashboard state (notes, ratings, snapshots, scorecard,
// indicators, section texts) is stored as one JSON blob under a string key,
// mirroring the browser localStorage the dashboard was first built on.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of a
// directory of JSON files because:
// 1. Each Set is an atomic UPSERT, so a crash never leaves a half-written blob
// 2. CGO-free implementation allows easy cross-compilation
// 3. A single file is easy to back up alongside exported documents
//
// The package also defines MemoryStore, used by tests and by callers that
// want an ephemeral dashboard, and the versioned JSON envelope helpers
// GetJSON and SetJSON.
package database
