// Package main provides the entry point for the gtcidash CLI.
//
// gtcidash keeps the analyst state of a Global Talent Competitiveness Index
// dashboard: section notes, indicator ratings, named snapshots, the edited
// scorecard and indicator values, and free-form section content. All state
// lives in a local SQLite database.
//
// Usage:
//
//	gtcidash tui
//	gtcidash snapshot save "Q3 review"
//	gtcidash export -o data.json
//
// See --help for all available options.
package main

// main is the entry point for gtcidash.
func main() {
	Execute()
}
