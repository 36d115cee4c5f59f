package actionlib

import (
	"time"

	"github.com/marmos91/actionlib/pkg/rostime"
)

// Publisher sends a single message of the topic's payload type.
type Publisher interface {
	Publish(msg any) error
}

// Subscription is the handle returned by a SubscriptionFactory. Closing
// it unsubscribes.
type Subscription interface {
	Close() error
}

// SubscriptionCallback is invoked once per message delivered to a
// subscription. Delivery within a single subscription is serialized by
// the transport; the callback itself runs outside the ActionServer's
// lock and is responsible for acquiring it (the generated goal/cancel
// subscription callbacks do this).
type SubscriptionCallback func(msg any)

// SubscriptionFactory creates a subscription on a topic with a bounded
// delivery queue.
type SubscriptionFactory interface {
	Subscribe(topic string, queueSize int, callback SubscriptionCallback) (Subscription, error)
}

// PublisherFactory advertises a topic and returns a Publisher for it.
// The core specification treats Publisher as the only consumed
// interface; PublisherFactory is added so the module is runnable
// end-to-end against a concrete transport.
type PublisherFactory interface {
	Advertise(topic string, queueSize int) (Publisher, error)
}

// ParamSource resolves configuration parameters by name, mirroring a
// parameter-server client.
type ParamSource interface {
	// Get returns the value stored at name, or false if unset.
	Get(name string) (any, bool)
	// Search returns the fully resolved name found by searching the
	// namespace upward from name, or false if none was found.
	Search(name string) (string, bool)
}

// Clock returns the current instant. Abstracted so tests can control
// time deterministically.
type Clock interface {
	Now() rostime.Timestamp
}

// SystemClock is a Clock backed by the wall clock.
type SystemClock struct{}

// Now returns the current wall-clock instant.
func (SystemClock) Now() rostime.Timestamp { return rostime.TimestampFromTime(time.Now()) }

// ShutdownSignal reports whether the hosting runtime is still healthy.
type ShutdownSignal interface {
	IsOK() bool
}

// alwaysOK is the default ShutdownSignal: the runtime never asks to stop
// on its own; callers shut the server down explicitly via Close.
type alwaysOK struct{}

func (alwaysOK) IsOK() bool { return true }

// RateLimiter paces a loop to a fixed frequency.
type RateLimiter interface {
	Sleep()
}

// tickerRate is a RateLimiter backed by time.Ticker.
type tickerRate struct {
	ticker *time.Ticker
}

func newTickerRate(hz float64) *tickerRate {
	if hz <= 0 {
		hz = defaultStatusFrequencyHz
	}
	return &tickerRate{ticker: time.NewTicker(time.Duration(float64(time.Second) / hz))}
}

func (r *tickerRate) Sleep() { <-r.ticker.C }

func (r *tickerRate) stop() { r.ticker.Stop() }

// MetricsRecorder receives pure observability side effects from the
// ActionServer. Implementations must not block or mutate server state.
type MetricsRecorder interface {
	GoalAccepted()
	GoalTerminal(status StatusCode)
	CancelReceived()
	StatusPublished(trackedGoals int)
}

// NoopRecorder discards every event. It is the default MetricsRecorder.
type NoopRecorder struct{}

func (NoopRecorder) GoalAccepted()                  {}
func (NoopRecorder) GoalTerminal(status StatusCode) {}
func (NoopRecorder) CancelReceived()                {}
func (NoopRecorder) StatusPublished(int)            {}
