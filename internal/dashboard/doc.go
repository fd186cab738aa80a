// Package dashboard owns the live state of a GTCI dashboard session.
//
// A Dashboard wires the annotation store, the snapshot manager, the metric
// editors and the section editor to one database and one notifier, and
// tracks the selected view. Shells (the command line and the terminal UI)
// only talk to a Dashboard.
//
// Design decision: Load hydrates every component concurrently with an
// errgroup. Each component falls back to its defaults on its own, so one
// corrupt key never blocks the others from loading.
package dashboard
