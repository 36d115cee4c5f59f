package logger

import (
	"context"
	"time"
)

// contextKey is a private type for context keys to avoid collisions
type contextKey struct{}

// logContextKey is the key for LogContext in context.Context
var logContextKey = contextKey{}

// LogContext holds goal-scoped logging context carried through an
// ActionServer request: a goal or cancel callback, or a GoalHandle
// method, attaches one of these so every log line emitted while
// handling it carries the same correlation fields.
type LogContext struct {
	TraceID   string    // OpenTelemetry trace ID
	SpanID    string    // OpenTelemetry span ID
	Action    string    // Action name (e.g. "move_base", "fibonacci")
	Namespace string    // ActionServer namespace
	GoalID    string    // GoalID.id of the goal being processed
	ClientID  string    // Opaque client/session identifier, if known
	StartTime time.Time // For duration calculation
}

// WithContext returns a new context with the given LogContext
func WithContext(ctx context.Context, lc *LogContext) context.Context {
	return context.WithValue(ctx, logContextKey, lc)
}

// FromContext retrieves the LogContext from context, or nil if not present
func FromContext(ctx context.Context) *LogContext {
	if ctx == nil {
		return nil
	}
	lc, _ := ctx.Value(logContextKey).(*LogContext)
	return lc
}

// NewLogContext creates a new LogContext scoped to a goal ID.
func NewLogContext(goalID string) *LogContext {
	return &LogContext{
		GoalID:    goalID,
		StartTime: time.Now(),
	}
}

// Clone creates a copy of the LogContext
func (lc *LogContext) Clone() *LogContext {
	if lc == nil {
		return nil
	}
	return &LogContext{
		TraceID:   lc.TraceID,
		SpanID:    lc.SpanID,
		Action:    lc.Action,
		Namespace: lc.Namespace,
		GoalID:    lc.GoalID,
		ClientID:  lc.ClientID,
		StartTime: lc.StartTime,
	}
}

// WithAction returns a copy with the action name set
func (lc *LogContext) WithAction(action string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.Action = action
	}
	return clone
}

// WithNamespace returns a copy with the namespace set
func (lc *LogContext) WithNamespace(namespace string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.Namespace = namespace
	}
	return clone
}

// WithClientID returns a copy with the client id set
func (lc *LogContext) WithClientID(clientID string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.ClientID = clientID
	}
	return clone
}

// WithTrace returns a copy with trace info set
func (lc *LogContext) WithTrace(traceID, spanID string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.TraceID = traceID
		clone.SpanID = spanID
	}
	return clone
}

// DurationMs returns the duration since StartTime in milliseconds
func (lc *LogContext) DurationMs() float64 {
	if lc == nil || lc.StartTime.IsZero() {
		return 0
	}
	return float64(time.Since(lc.StartTime).Microseconds()) / 1000.0
}
