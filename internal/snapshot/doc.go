// Package snapshot manages named, immutable copies of the annotation state.
//
// A snapshot captures the notes, the ratings and the active view at save
// time. Snapshots are kept in creation order and written through to the
// database as one list after every change.
//
// Design decision: Snapshot ids are derived from the wall clock in
// milliseconds but never repeat. When two saves land in the same
// millisecond, or the clock moves backwards, the id becomes the previous
// id plus one. Deleting by id therefore always targets exactly one entry.
package snapshot
