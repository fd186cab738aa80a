// Package tui provides the interactive terminal dashboard of gtcidash.
//
// The UI is a single Bubble Tea model. Every key press is handled to
// completion before the next one, so all dashboard operations run
// synchronously inside Update.
//
// Design decision: Notifications are not polled. The model subscribes to
// the notification relay once and re-arms a command that waits for the next
// relay event, so both new messages and auto-clears reach the status bar
// without a ticker.
package tui
