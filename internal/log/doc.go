// Package log provides logging with automatic redaction of user-authored
// content and secrets, built on top of the standard slog package.
//
// Dashboard notes and section texts are free text typed by analysts. They
// routinely contain unpublished assessments and occasionally pasted
// credentials, so they must not end up verbatim in log files that get
// attached to bug reports.
//
// This package extends slog to provide:
//   - Replacement of content attributes (note, text, content, buffer) with a
//     length summary
//   - Masking of secret-looking values regardless of the attribute key
//   - Configurable log levels with verbose mode support
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	logger.Info("note saved",
//	    "section", "overview",
//	    "text", "Rank fell because ...", // logged as "[redacted 21 chars]"
//	)
//
//	slog.SetDefault(logger)
package log
