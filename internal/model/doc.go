// Package model defines the core data structures used throughout gtcidash.
//
// This package contains the following main types:
//   - Scorecard and Indicator: the editable GTCI metrics
//   - Field: a uniform view of one editable metric for rendering
//   - Notes and Ratings: free-text annotations and categorical ratings
//   - Rating: the closed set of rating labels
//   - View: the dashboard tab selector
//   - Snapshot: an immutable named copy of the annotation state
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The editors, the snapshot manager, the report writers and the
// terminal UI all need these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for storage and export.
// The JSON field names match the keys of the original browser storage so that
// exported documents stay readable by older tooling.
package model
