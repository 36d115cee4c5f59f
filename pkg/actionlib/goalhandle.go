package actionlib

import (
	"weak"

	applog "github.com/marmos91/actionlib/internal/logger"
)

// GoalHandle is the façade a user's OnGoal/OnCancel callback, or later
// code running on another goroutine, uses to drive a single goal's
// lifecycle. It holds only a weak back-reference to its ActionServer:
// once the server is closed, every operation below returns
// ErrServerGone instead of panicking or blocking forever.
type GoalHandle struct {
	server weak.Pointer[ActionServer]
	goalID GoalID
}

// GoalID returns the id of the goal this handle represents.
func (h *GoalHandle) GoalID() GoalID { return h.goalID }

func (h *GoalHandle) resolve() (*ActionServer, error) {
	as := h.server.Value()
	if as == nil || as.closed.Load() {
		return nil, NewServerGoneError(h.goalID.ID)
	}
	return as, nil
}

// SetCanceled transitions the goal to a terminal canceled status
// (Recalled if it had not yet started, Preempted otherwise) and
// publishes result as the terminal result body with the given
// explanatory text. It fails with ErrProtocolMisuse if the goal has
// already reached a terminal status.
func (h *GoalHandle) SetCanceled(result any, text string) error {
	as, err := h.resolve()
	if err != nil {
		return err
	}
	as.mu.Lock()
	defer as.mu.Unlock()

	tracker, ok := as.statusList.Get(h.goalID.ID)
	if !ok {
		return NewProtocolMisuseError(h.goalID.ID, "no tracker for goal")
	}
	return as.setCanceledLocked(tracker, result, text)
}

// SetCancelRequested invites the goal to transition to a
// cancel-requested state (Recalling from Pending, Preempting from
// Active) and reports whether a transition actually occurred.
func (h *GoalHandle) SetCancelRequested() (bool, error) {
	as, err := h.resolve()
	if err != nil {
		return false, err
	}
	as.mu.Lock()
	defer as.mu.Unlock()

	tracker, ok := as.statusList.Get(h.goalID.ID)
	if !ok {
		return false, NewProtocolMisuseError(h.goalID.ID, "no tracker for goal")
	}
	return as.setCancelRequestedLocked(tracker), nil
}

// PublishFeedback publishes a non-terminal progress update carrying the
// goal's current tracked status.
func (h *GoalHandle) PublishFeedback(body any) error {
	as, err := h.resolve()
	if err != nil {
		return err
	}
	as.mu.Lock()
	defer as.mu.Unlock()

	tracker, ok := as.statusList.Get(h.goalID.ID)
	if !ok {
		return NewProtocolMisuseError(h.goalID.ID, "no tracker for goal")
	}
	if !as.shutdown.IsOK() {
		return nil
	}
	if err := as.feedbackPub.Publish(Feedback{Status: tracker.toGoalStatus(), Body: body}); err != nil {
		return NewTransportFailureError(err)
	}
	return nil
}

// PublishResult transitions the goal to status and publishes body as the
// terminal result. Callers drive Succeeded/Aborted/Rejected transitions
// through this method; SetCanceled and SetCancelRequested cover the
// cancellation-originated transitions.
func (h *GoalHandle) PublishResult(status StatusCode, body any) error {
	as, err := h.resolve()
	if err != nil {
		return err
	}
	as.mu.Lock()
	defer as.mu.Unlock()

	tracker, ok := as.statusList.Get(h.goalID.ID)
	if !ok {
		return NewProtocolMisuseError(h.goalID.ID, "no tracker for goal")
	}
	tracker.status = status
	now := as.clock.Now()
	tracker.refreshDestructionTime(now)
	if status.IsTerminal() {
		as.metrics.GoalTerminal(status)
	}
	return as.publishResultLocked(tracker.toGoalStatus(), body)
}

// setCanceledLocked implements SetCanceled's state transition and
// publication. Callers must hold as.mu.
func (as *ActionServer) setCanceledLocked(tracker *StatusTracker, result any, text string) error {
	if tracker.status.IsTerminal() {
		return NewProtocolMisuseError(tracker.goalID.ID, "cannot cancel a goal that already reached a terminal status")
	}

	target := StatusPreempted
	if tracker.status == StatusPending || tracker.status == StatusRecalling {
		target = StatusRecalled
	}
	tracker.status = target
	tracker.text = text
	tracker.refreshDestructionTime(as.clock.Now())
	as.metrics.GoalTerminal(target)

	return as.publishResultLocked(tracker.toGoalStatus(), result)
}

// setCancelRequestedLocked implements SetCancelRequested's state
// transition. Callers must hold as.mu.
func (as *ActionServer) setCancelRequestedLocked(tracker *StatusTracker) bool {
	switch tracker.status {
	case StatusPending:
		tracker.status = StatusRecalling
		return true
	case StatusActive:
		tracker.status = StatusPreempting
		return true
	default:
		return false
	}
}

// publishResultLocked publishes a terminal result for status. Callers
// must hold as.mu.
func (as *ActionServer) publishResultLocked(status GoalStatus, body any) error {
	if !as.shutdown.IsOK() {
		return nil
	}
	if err := as.resultPub.Publish(Result{Status: status, Body: body}); err != nil {
		return NewTransportFailureError(err)
	}
	return nil
}

// logAndSuppress records err at warn level if non-nil. Used by the
// goal subscription-callback entry point (HandleOnGoal), where publish
// failures are logged and the subscription continues
// rather than propagating an error to the transport.
func (as *ActionServer) logAndSuppress(context string, err error) {
	if err == nil {
		return
	}
	as.logger.Warn(context, applog.Err(err))
}
