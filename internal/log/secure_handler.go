package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"
)

// contentKeys are attribute keys that carry user-authored text.
var contentKeys = map[string]bool{
	"note":    true,
	"notes":   true,
	"text":    true,
	"content": true,
	"buffer":  true,
	"raw":     true,
	"input":   true,
}

// secretKeys are attribute keys whose values are always masked.
var secretKeys = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"password":      true,
	"secret":        true,
	"token":         true,
	"api_key":       true,
	"apikey":        true,
	"private_key":   true,
}

// sensitivePatterns contains regex patterns that indicate secret values.
// Values matching these patterns are masked regardless of key name, which
// catches credentials pasted into notes and echoed in error messages.
var sensitivePatterns = []*regexp.Regexp{
	// JWT tokens
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*`),

	// Bearer tokens
	regexp.MustCompile(`(?i)\bbearer\s+\S+`),

	// AWS access keys
	regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`),

	// Private key markers
	regexp.MustCompile(`(?i)-----BEGIN.*(PRIVATE|SECRET).*KEY-----`),
}

// MaskValue is the string used to replace secret values.
const MaskValue = "***REDACTED***"

// SecureHandler wraps an slog.Handler to redact user content and secrets.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because it integrates with standard slog APIs and works with any
// underlying handler (text, JSON). Components only ever see *slog.Logger.
type SecureHandler struct {
	// handler is the underlying slog handler that receives sanitized records.
	handler slog.Handler

	// showContent disables content redaction. Secrets stay masked.
	showContent bool
}

// HandlerOption configures a SecureHandler.
type HandlerOption func(*SecureHandler)

// WithContentVisible controls whether content attributes are logged verbatim.
// It is meant for local debugging sessions only.
func WithContentVisible(show bool) HandlerOption {
	return func(h *SecureHandler) {
		h.showContent = show
	}
}

// NewSecureHandler creates a new SecureHandler wrapping the given handler.
// If handler is nil, the returned SecureHandler will use slog.Default().Handler().
func NewSecureHandler(handler slog.Handler, opts ...HandlerOption) *SecureHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	h := &SecureHandler{handler: handler}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *SecureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle sanitizes the record's attributes and message, then passes it on.
func (h *SecureHandler) Handle(ctx context.Context, r slog.Record) error {
	sanitized := slog.NewRecord(r.Time, r.Level, maskSecrets(r.Message), r.PC)
	r.Attrs(func(a slog.Attr) bool {
		sanitized.AddAttrs(h.sanitizeAttr(a))
		return true
	})
	return h.handler.Handle(ctx, sanitized)
}

// WithAttrs returns a new handler with the given attributes, sanitized.
func (h *SecureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sanitizedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		sanitizedAttrs[i] = h.sanitizeAttr(a)
	}
	return &SecureHandler{handler: h.handler.WithAttrs(sanitizedAttrs), showContent: h.showContent}
}

// WithGroup returns a new handler with the given group name.
func (h *SecureHandler) WithGroup(name string) slog.Handler {
	return &SecureHandler{handler: h.handler.WithGroup(name), showContent: h.showContent}
}

// sanitizeAttr sanitizes a single attribute, recursively handling groups.
func (h *SecureHandler) sanitizeAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		sanitizedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			sanitizedAttrs[i] = h.sanitizeAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(sanitizedAttrs...)}
	}

	keyLower := strings.ToLower(a.Key)
	if secretKeys[keyLower] {
		return slog.String(a.Key, MaskValue)
	}

	if contentKeys[keyLower] && !h.showContent {
		return slog.String(a.Key, summarize(a.Value))
	}

	// error values carry user input in their messages (for example the
	// rejected rating label), so they are scanned like strings.
	switch a.Value.Kind() {
	case slog.KindString:
		return slog.String(a.Key, maskSecrets(a.Value.String()))
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok {
			return slog.String(a.Key, maskSecrets(err.Error()))
		}
	}

	return a
}

// summarize replaces a content value with its length.
func summarize(v slog.Value) string {
	s := v.String()
	if s == "" {
		return "[empty]"
	}
	return fmt.Sprintf("[redacted %d chars]", utf8.RuneCountInString(s))
}

// maskSecrets replaces every secret-looking substring of s with MaskValue.
func maskSecrets(s string) string {
	for _, pattern := range sensitivePatterns {
		s = pattern.ReplaceAllString(s, MaskValue)
	}
	return s
}

// NewSecureLogger creates a new slog.Logger with secure handling.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewSecureLogger(w io.Writer, verbose bool, opts ...HandlerOption) *slog.Logger {
	return slog.New(NewSecureHandler(slog.NewTextHandler(w, handlerOptions(verbose)), opts...))
}

// NewSecureJSONLogger creates a new slog.Logger with secure handling
// that outputs JSON format.
func NewSecureJSONLogger(w io.Writer, verbose bool, opts ...HandlerOption) *slog.Logger {
	return slog.New(NewSecureHandler(slog.NewJSONHandler(w, handlerOptions(verbose)), opts...))
}

// NewDiscardLogger returns a logger that drops every record.
// Components use it when no logger is configured.
func NewDiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
