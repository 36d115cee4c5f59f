package logger

import (
	"log/slog"
)

// Standard field keys for structured logging across the action protocol
// core. Use these keys consistently so log aggregation/querying works
// across the goal, cancel, and status-publication code paths.
const (
	// ========================================================================
	// Distributed Tracing
	// ========================================================================
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// ========================================================================
	// Action protocol identity
	// ========================================================================
	KeyNamespace = "namespace" // ActionServer namespace
	KeyAction    = "action"    // Action name
	KeyGoalID    = "goal_id"   // GoalID.id
	KeyGoalStamp = "goal_stamp"
	KeyClientID  = "client_id" // Opaque client/session id

	// ========================================================================
	// Status lifecycle
	// ========================================================================
	KeyStatus     = "status"      // GoalStatus code name
	KeyStatusText = "status_text" // Free-form status text
	KeyReason     = "reason"

	// ========================================================================
	// Topics / transport
	// ========================================================================
	KeyTopic     = "topic"
	KeyQueueSize = "queue_size"

	// ========================================================================
	// Timing
	// ========================================================================
	KeyDurationMs = "duration_ms"
	KeyFrequency  = "frequency_hz"

	// ========================================================================
	// Generic
	// ========================================================================
	KeyError = "error"
	KeyCount = "count"
)

// Namespace returns a slog.Attr for the server namespace.
func Namespace(ns string) slog.Attr { return slog.String(KeyNamespace, ns) }

// Action returns a slog.Attr for the action name.
func Action(name string) slog.Attr { return slog.String(KeyAction, name) }

// GoalID returns a slog.Attr for a goal identifier.
func GoalID(id string) slog.Attr { return slog.String(KeyGoalID, id) }

// Status returns a slog.Attr for a status code name.
func Status(status string) slog.Attr { return slog.String(KeyStatus, status) }

// Topic returns a slog.Attr for a topic name.
func Topic(topic string) slog.Attr { return slog.String(KeyTopic, topic) }

// QueueSize returns a slog.Attr for a configured queue size.
func QueueSize(n int) slog.Attr { return slog.Int(KeyQueueSize, n) }

// Frequency returns a slog.Attr for a publication frequency in Hz.
func Frequency(hz float64) slog.Attr { return slog.Float64(KeyFrequency, hz) }

// Err returns a slog.Attr wrapping an error value.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Any(KeyError, nil)
	}
	return slog.String(KeyError, err.Error())
}

// Count returns a slog.Attr for a generic count.
func Count(n int) slog.Attr { return slog.Int(KeyCount, n) }
