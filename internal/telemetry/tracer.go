package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys for action-protocol spans.
const (
	AttrNamespace   = "action.namespace"
	AttrGoalID      = "action.goal_id"
	AttrStatus      = "action.status"
	AttrTrackedGoal = "action.tracked_goals"
)

// Span names for the ActionServer's core operations.
const (
	SpanHandleOnGoal   = "actionlib.handle_on_goal"
	SpanHandleOnCancel = "actionlib.handle_on_cancel"
	SpanPublishStatus  = "actionlib.publish_status"
)

// Namespace returns an attribute for an ActionServer's namespace.
func Namespace(ns string) attribute.KeyValue { return attribute.String(AttrNamespace, ns) }

// GoalID returns an attribute for a goal identifier.
func GoalID(id string) attribute.KeyValue { return attribute.String(AttrGoalID, id) }

// Status returns an attribute for a goal status name.
func Status(status string) attribute.KeyValue { return attribute.String(AttrStatus, status) }

// TrackedGoals returns an attribute for the size of a published status array.
func TrackedGoals(n int) attribute.KeyValue { return attribute.Int(AttrTrackedGoal, n) }

// StartActionSpan starts a span for one of the ActionServer's core
// operations, tagging it with the server's namespace.
func StartActionSpan(ctx context.Context, name, namespace string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := append([]attribute.KeyValue{Namespace(namespace)}, attrs...)
	return StartSpan(ctx, name, trace.WithAttributes(allAttrs...))
}
