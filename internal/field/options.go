package field

import (
	"log/slog"

	"github.com/nao1215/gtcidash/internal/notify"
)

type options struct {
	notifier notify.Notifier
	logger   *slog.Logger
}

// Option configures an editor.
type Option func(*options)

// WithNotifier sets where commit confirmations are sent.
func WithNotifier(n notify.Notifier) Option {
	return func(o *options) {
		if n != nil {
			o.notifier = n
		}
	}
}

// WithLogger sets the logger used for load warnings and tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		notifier: notify.Discard,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
