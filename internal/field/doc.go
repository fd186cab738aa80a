// Package field implements the editing state of the dashboard's numeric
// metrics.
//
// Two editing styles exist:
//
//   - ScorecardEditor edits the five headline numbers together. Input is
//     collected in a buffer while edit mode is on and committed in one step.
//   - IndicatorEditor edits one indicator inline. Opening another indicator
//     abandons the pending edit.
//
// Both editors write the complete collection through to the database on a
// successful commit and confirm it on the notify.Notifier given at
// construction time.
//
// Design decision: Raw input is kept in the buffer exactly as typed, even
// when it does not parse. Validation happens at commit time, so a user can
// pass through intermediate states such as "-" or "6." while typing.
package field
