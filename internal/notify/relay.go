package notify

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultDelay is how long a message stays visible.
const DefaultDelay = 3 * time.Second

// subscriberBuffer is the per-subscriber event buffer. Events beyond it are
// dropped for that subscriber rather than blocking the notifier.
const subscriberBuffer = 16

// Notifier is the narrow interface the editors depend on.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

// Notify calls f(message).
func (f NotifierFunc) Notify(message string) {
	f(message)
}

// Discard is a Notifier that drops every message.
var Discard Notifier = NotifierFunc(func(string) {})

// Event reports a change of the visible message.
type Event struct {
	// Message is the message that became visible, or the message that was
	// cleared when Cleared is true.
	Message string

	// Cleared is true when the message was removed by the auto-clear timer.
	Cleared bool

	// At is when the change happened.
	At time.Time
}

// stopper is the part of *time.Timer the relay uses.
type stopper interface {
	Stop() bool
}

// afterFunc schedules f after d. It is a field so tests can fire timers by hand.
type afterFunc func(d time.Duration, f func()) stopper

// Relay is a single-slot message channel with auto-clear.
//
// Design decision: Every Notify bumps a generation counter and the clear
// callback only acts when its generation is still current. Stopping the
// previous timer is not enough on its own: Stop cannot recall a callback that
// has already started running, and an older timer firing late must never
// hide a newer message.
type Relay struct {
	mu          sync.Mutex
	delay       time.Duration
	message     string
	visible     bool
	generation  uint64
	timer       stopper
	subscribers []chan Event
	closed      bool
	after       afterFunc
	now         func() time.Time
	logger      *slog.Logger
}

// Option configures a Relay.
type Option func(*Relay)

// WithDelay sets how long a message stays visible. Non-positive values are ignored.
func WithDelay(d time.Duration) Option {
	return func(r *Relay) {
		if d > 0 {
			r.delay = d
		}
	}
}

// WithLogger sets the logger used to trace notifications.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Relay) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRelay creates a Relay with the default delay.
func NewRelay(opts ...Option) *Relay {
	r := &Relay{
		delay: DefaultDelay,
		after: func(d time.Duration, f func()) stopper {
			return time.AfterFunc(d, f)
		},
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Notify makes message the visible message and schedules it to clear after
// the configured delay. A message already visible is replaced immediately.
// Notify on a closed relay does nothing.
func (r *Relay) Notify(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	r.generation++
	gen := r.generation
	r.message = message
	r.visible = true

	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = r.after(r.delay, func() { r.clear(gen) })

	r.logger.Debug("notification", "message", message, "generation", gen)
	r.publish(Event{Message: message, At: r.now()})
}

// clear hides the message of generation gen if it is still the visible one.
func (r *Relay) clear(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || gen != r.generation || !r.visible {
		return
	}

	cleared := r.message
	r.message = ""
	r.visible = false
	r.timer = nil
	r.publish(Event{Message: cleared, Cleared: true, At: r.now()})
}

// Current returns the visible message, if any.
func (r *Relay) Current() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.message, r.visible
}

// Delay returns the auto-clear delay.
func (r *Relay) Delay() time.Duration {
	return r.delay
}

// Subscribe returns a channel that receives an Event for every message set
// and every auto-clear. The channel is closed by Close. A subscriber that
// falls more than a few events behind misses events instead of blocking
// Notify.
func (r *Relay) Subscribe() <-chan Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if r.closed {
		close(ch)
		return ch
	}
	r.subscribers = append(r.subscribers, ch)
	return ch
}

// Close stops the pending timer and closes all subscriber channels.
// Close is idempotent.
func (r *Relay) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	for _, ch := range r.subscribers {
		close(ch)
	}
	r.subscribers = nil
}

// publish delivers ev to every subscriber without blocking.
// Callers must hold r.mu.
func (r *Relay) publish(ev Event) {
	for _, ch := range r.subscribers {
		select {
		case ch <- ev:
		default:
			r.logger.Debug("notification dropped for slow subscriber", "message", ev.Message)
		}
	}
}
