package actionlib

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
	"weak"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	applog "github.com/marmos91/actionlib/internal/logger"
	"github.com/marmos91/actionlib/internal/telemetry"
	"github.com/marmos91/actionlib/pkg/naming"
	"github.com/marmos91/actionlib/pkg/rostime"
)

const (
	defaultPubQueueSize      = 50
	defaultSubQueueSize      = 0
	defaultStatusFrequencyHz = 5.0
)

var defaultStatusListTimeout = rostime.DurationFromStdDuration(5 * time.Second)

// Config configures a new ActionServer. Publishers and Subscriptions are
// the only required fields; everything else falls back to a documented
// default.
type Config struct {
	// Namespace is the server's base path, e.g. "/fibonacci". Topics are
	// created relative to it: "<namespace>/goal", "<namespace>/status", etc.
	Namespace string

	Publishers    PublisherFactory
	Subscriptions SubscriptionFactory

	// Params resolves actionlib_server_pub_queue_size,
	// actionlib_server_sub_queue_size, the searched
	// actionlib_status_frequency parameter, and <namespace>/status_list_timeout.
	// A nil Params uses the documented defaults for all four.
	Params ParamSource

	Clock    Clock
	Shutdown ShutdownSignal
	Logger   *slog.Logger
	Metrics  MetricsRecorder

	// OnGoal and OnCancel are invoked synchronously, while the server's
	// single lock is held. They must be non-blocking: any further
	// GoalHandle operation they need should be performed from another
	// goroutine after they return.
	OnGoal   func(*GoalHandle)
	OnCancel func(*GoalHandle)
}

// ActionServer is the shared, goal/cancel ingesting, status-publishing
// coordinator of an Action. Exactly one mutex protects all mutable
// state; every transport callback and every GoalHandle method acquires
// it at entry and releases it at exit.
type ActionServer struct {
	mu sync.Mutex

	namespace         string
	statusList        *orderedmap.OrderedMap[string, *StatusTracker]
	lastCancelNs      int64
	statusListTimeout rostime.Duration
	statusFrequencyHz float64

	onGoal   func(*GoalHandle)
	onCancel func(*GoalHandle)

	statusPub   Publisher
	resultPub   Publisher
	feedbackPub Publisher
	goalSub     Subscription
	cancelSub   Subscription

	clock    Clock
	shutdown ShutdownSignal
	logger   *slog.Logger
	metrics  MetricsRecorder

	self weak.Pointer[ActionServer]

	group      *errgroup.Group
	cancelTick context.CancelFunc
	closed     atomic.Bool
}

// NewActionServer constructs and starts an ActionServer: it advertises
// the status/result/feedback topics, subscribes to goal/cancel, spawns
// the status-publication ticker, and publishes one status array
// immediately before returning.
func NewActionServer(cfg Config) (*ActionServer, error) {
	if _, err := naming.ParsePath(cfg.Namespace); err != nil {
		return nil, NewInvalidNameError(err)
	}
	if cfg.Publishers == nil || cfg.Subscriptions == nil {
		return nil, &Error{Code: ErrProtocolMisuse, Message: "Publishers and Subscriptions collaborators are required"}
	}

	pubQueueSize := decodeQueueSize(cfg.Params, "actionlib_server_pub_queue_size", defaultPubQueueSize)
	subQueueSize := decodeQueueSize(cfg.Params, "actionlib_server_sub_queue_size", defaultSubQueueSize)
	statusFrequencyHz := decodeStatusFrequency(cfg.Params)
	statusListTimeout := decodeStatusListTimeout(cfg.Params, cfg.Namespace)

	statusPub, err := cfg.Publishers.Advertise(cfg.Namespace+"/status", pubQueueSize)
	if err != nil {
		return nil, NewTransportFailureError(err)
	}
	resultPub, err := cfg.Publishers.Advertise(cfg.Namespace+"/result", pubQueueSize)
	if err != nil {
		return nil, NewTransportFailureError(err)
	}
	feedbackPub, err := cfg.Publishers.Advertise(cfg.Namespace+"/feedback", pubQueueSize)
	if err != nil {
		return nil, NewTransportFailureError(err)
	}

	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	shutdown := cfg.Shutdown
	if shutdown == nil {
		shutdown = alwaysOK{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = applog.With(applog.Namespace(cfg.Namespace))
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = NoopRecorder{}
	}

	as := &ActionServer{
		namespace:         cfg.Namespace,
		statusList:        orderedmap.New[string, *StatusTracker](),
		statusListTimeout: statusListTimeout,
		statusFrequencyHz: statusFrequencyHz,
		onGoal:            cfg.OnGoal,
		onCancel:          cfg.OnCancel,
		statusPub:         statusPub,
		resultPub:         resultPub,
		feedbackPub:       feedbackPub,
		clock:             clock,
		shutdown:          shutdown,
		logger:            logger,
		metrics:           metrics,
	}
	as.self = weak.Make(as)

	goalSub, err := cfg.Subscriptions.Subscribe(cfg.Namespace+"/goal", subQueueSize, func(msg any) {
		goal, ok := msg.(Goal)
		if !ok {
			as.logger.Error("discarding malformed goal message", applog.Err(fmt.Errorf("expected actionlib.Goal, got %T", msg)))
			return
		}
		as.HandleOnGoal(context.Background(), goal)
	})
	if err != nil {
		return nil, NewTransportFailureError(err)
	}
	as.goalSub = goalSub

	cancelSub, err := cfg.Subscriptions.Subscribe(cfg.Namespace+"/cancel", subQueueSize, func(msg any) {
		id, ok := msg.(GoalID)
		if !ok {
			as.logger.Error("discarding malformed cancel message", applog.Err(fmt.Errorf("expected actionlib.GoalID, got %T", msg)))
			return
		}
		as.HandleOnCancel(context.Background(), id)
	})
	if err != nil {
		_ = goalSub.Close()
		return nil, NewTransportFailureError(err)
	}
	as.cancelSub = cancelSub

	ctx, cancel := context.WithCancel(context.Background())
	as.cancelTick = cancel
	group, ctx := errgroup.WithContext(ctx)
	as.group = group
	group.Go(func() error {
		as.runStatusTicker(ctx)
		return nil
	})

	if err := as.PublishStatus(context.Background()); err != nil {
		as.logger.Warn("failed to publish initial status", applog.Err(err))
	}

	return as, nil
}

func (as *ActionServer) runStatusTicker(ctx context.Context) {
	rate := newTickerRate(as.statusFrequencyHz)
	defer rate.stop()
	as.logger.Debug("status ticker starting", applog.Frequency(as.statusFrequencyHz))
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		rate.Sleep()
		select {
		case <-ctx.Done():
			return
		default:
		}
		if !as.shutdown.IsOK() {
			return
		}
		if err := as.PublishStatus(ctx); err != nil {
			as.logger.Error("failed to publish status", applog.Err(err))
		}
	}
}

// Close stops the status ticker and unsubscribes from goal/cancel.
// After Close returns, every GoalHandle created by this server resolves
// to ErrServerGone.
func (as *ActionServer) Close() error {
	if !as.closed.CompareAndSwap(false, true) {
		return nil
	}
	as.cancelTick()
	_ = as.group.Wait()
	if as.goalSub != nil {
		_ = as.goalSub.Close()
	}
	if as.cancelSub != nil {
		_ = as.cancelSub.Close()
	}
	return nil
}

// newGoalHandle builds a GoalHandle sharing this server via a weak
// back-reference, mirroring the self-reference held by ActionServerState
// in the original implementation.
func (as *ActionServer) newGoalHandle(id GoalID) *GoalHandle {
	return &GoalHandle{server: as.self, goalID: id}
}

// PublishStatus computes and publishes the current status array. If the
// shutdown signal reports the runtime is no longer healthy, it returns
// nil without publishing.
func (as *ActionServer) PublishStatus(ctx context.Context) error {
	_, span := telemetry.StartActionSpan(ctx, telemetry.SpanPublishStatus, as.namespace)
	defer span.End()

	as.mu.Lock()
	array := as.statusArrayLocked()
	as.mu.Unlock()

	span.SetAttributes(telemetry.TrackedGoals(len(array.Statuses)))

	if !as.shutdown.IsOK() {
		return nil
	}
	if err := as.statusPub.Publish(array); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return NewTransportFailureError(err)
	}
	as.metrics.StatusPublished(len(array.Statuses))
	return nil
}

// statusArrayLocked implements the status-list sweep: trackers whose
// handle destruction time is set and has aged past the configured
// timeout are evicted before the snapshot is taken. Iteration order is
// the status list's insertion order, which is deterministic.
func (as *ActionServer) statusArrayLocked() GoalStatusArray {
	now := as.clock.Now()

	var dead []string
	for pair := as.statusList.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.dead(now, as.statusListTimeout) {
			dead = append(dead, pair.Key)
		}
	}
	for _, key := range dead {
		as.statusList.Delete(key)
	}

	statuses := make([]GoalStatus, 0, as.statusList.Len())
	for pair := as.statusList.Oldest(); pair != nil; pair = pair.Next() {
		statuses = append(statuses, pair.Value.toGoalStatus())
	}
	return GoalStatusArray{Stamp: now, Statuses: statuses}
}

// HandleOnGoal implements the goal-ingestion algorithm: refresh an
// existing tracker, recover a racing placeholder into Recalled, or admit
// a fresh goal (subject to the last-cancel watermark) by invoking the
// user's OnGoal callback with a new GoalHandle.
func (as *ActionServer) HandleOnGoal(ctx context.Context, goal Goal) {
	_, span := telemetry.StartActionSpan(ctx, telemetry.SpanHandleOnGoal, as.namespace, telemetry.GoalID(goal.ID.ID))
	defer span.End()

	as.mu.Lock()
	defer as.mu.Unlock()

	now := as.clock.Now()

	if tracker, ok := as.statusList.Get(goal.ID.ID); ok {
		tracker.refreshDestructionTime(now)
		if tracker.status == StatusRecalling {
			tracker.status = StatusRecalled
			tracker.handleDestructionTime = now
			as.metrics.GoalTerminal(StatusRecalled)
			as.logAndSuppress("failed to publish recalled result", as.publishResultLocked(tracker.toGoalStatus(), nil))
		}
		return
	}

	tracker := newTrackerFromGoal(goal)
	as.statusList.Set(goal.ID.ID, tracker)
	as.metrics.GoalAccepted()

	goalStamp := goal.ID.Stamp.Nanos()
	if goalStamp != 0 && goalStamp <= as.lastCancelNs {
		as.logAndSuppress("failed to publish preemptive cancel result",
			as.setCanceledLocked(tracker, nil, "this goal handle was canceled by the action server because its timestamp is before the timestamp of the last cancel request"))
		return
	}

	if as.onGoal != nil {
		as.onGoal(as.newGoalHandle(goal.ID))
	}
}

// HandleOnCancel implements the cancel algorithm: every tracker matched
// by the filter is invited to transition to a cancel-requested state; an
// unmatched, named filter leaves a Recalling placeholder behind; and the
// last-cancel watermark is advanced.
func (as *ActionServer) HandleOnCancel(ctx context.Context, filter GoalID) {
	_, span := telemetry.StartActionSpan(ctx, telemetry.SpanHandleOnCancel, as.namespace, telemetry.GoalID(filter.ID))
	defer span.End()

	as.mu.Lock()
	defer as.mu.Unlock()

	as.metrics.CancelReceived()

	filterID := filter.ID
	filterStamp := filter.Stamp.Nanos()
	cancelEverything := filterID == "" && filterStamp == 0

	goalIDFound := false
	now := as.clock.Now()

	for pair := as.statusList.Oldest(); pair != nil; pair = pair.Next() {
		tracker := pair.Value
		cancelThis := filterID == tracker.goalID.ID
		cancelBeforeStamp := filterStamp != 0 && tracker.goalID.Stamp.Nanos() <= filterStamp
		if !cancelEverything && !cancelThis && !cancelBeforeStamp {
			continue
		}
		if cancelThis {
			goalIDFound = true
		}

		tracker.refreshDestructionTime(now)
		if as.setCancelRequestedLocked(tracker) {
			if as.onCancel != nil {
				as.onCancel(as.newGoalHandle(tracker.goalID))
			}
		}
	}

	if filterID != "" && !goalIDFound {
		placeholder := newTrackerFromStatus(filter, StatusRecalling)
		placeholder.handleDestructionTime = now
		as.statusList.Set(filterID, placeholder)
	}

	if filterStamp > as.lastCancelNs {
		as.lastCancelNs = filterStamp
	}
}

// Snapshot returns the current status array, applying the same dead-goal
// sweep as a status publication. It is safe to call concurrently with
// any other ActionServer method; external introspection (e.g. a debug
// HTTP API) should use this instead of reaching into server internals.
func (as *ActionServer) Snapshot() GoalStatusArray {
	as.mu.Lock()
	defer as.mu.Unlock()
	return as.statusArrayLocked()
}

// RequestCancel runs the cancel algorithm against filter as if it had
// arrived over the cancel topic. External callers (e.g. a debug HTTP
// API) use this instead of publishing synthetically onto the transport.
func (as *ActionServer) RequestCancel(ctx context.Context, filter GoalID) {
	as.HandleOnCancel(ctx, filter)
}

// decodeQueueSize reads an integer parameter, falling back to def when
// the parameter is unset, of the wrong type, or negative.
func decodeQueueSize(params ParamSource, name string, def int) int {
	if params == nil {
		return def
	}
	v, ok := params.Get(name)
	if !ok {
		return def
	}
	n, ok := toInt(v)
	if !ok || n < 0 {
		return def
	}
	return n
}

// decodeStatusFrequency resolves the searched actionlib_status_frequency
// parameter, falling back to the default 5 Hz.
func decodeStatusFrequency(params ParamSource) float64 {
	if params == nil {
		return defaultStatusFrequencyHz
	}
	resolved, ok := params.Search("actionlib_status_frequency")
	if !ok {
		return defaultStatusFrequencyHz
	}
	v, ok := params.Get(resolved)
	if !ok {
		return defaultStatusFrequencyHz
	}
	f, ok := toFloat(v)
	if !ok || f <= 0 {
		return defaultStatusFrequencyHz
	}
	return f
}

// decodeStatusListTimeout reads "<namespace>/status_list_timeout" in
// seconds, falling back to the default 5s.
func decodeStatusListTimeout(params ParamSource, namespace string) rostime.Duration {
	if params == nil {
		return defaultStatusListTimeout
	}
	v, ok := params.Get(namespace + "/status_list_timeout")
	if !ok {
		return defaultStatusListTimeout
	}
	f, ok := toFloat(v)
	if !ok || f <= 0 {
		return defaultStatusListTimeout
	}
	return rostime.DurationFromNanos(int64(f * 1e9))
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
