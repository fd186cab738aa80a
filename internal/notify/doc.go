// Package notify provides the transient message channel used to confirm
// saves to the user.
//
// A Relay shows at most one message at a time. Each Notify replaces the
// current message and restarts the auto-clear delay (last write wins, no
// queue). Shells that render the message (the terminal UI, the CLI) either
// poll Current or consume the event stream returned by Subscribe.
//
// Design decision: The relay is an explicit value passed to the editors at
// construction time instead of a process-wide function. This keeps editors
// testable with a recording Notifier and lets several dashboards coexist in
// one process.
package notify
