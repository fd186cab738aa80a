// Package report builds the dashboard export document and renders it.
//
// The export Document is the portable form of the annotation state: notes,
// ratings and snapshots, stamped with an export date and a schema version.
// Import reads a Document back.
//
// This package contains writers for different output formats:
//   - JSONWriter: the export document, suitable for re-import
//   - MarkdownWriter: a human-readable report for sharing
//   - SimpleWriter: a plain-text summary for terminal display
//
// Design decision: Writers receive a Report, which adds the current
// scorecard and indicators to the Document. Only the JSON writer is a
// faithful export; the other formats are views and are never imported.
package report
