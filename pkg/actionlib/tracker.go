package actionlib

import "github.com/marmos91/actionlib/pkg/rostime"

// StatusTracker is the per-goal lifecycle record the ActionServer keeps
// in its status list.
type StatusTracker struct {
	status                StatusCode
	goalID                GoalID
	text                  string
	goalBody              any
	handleDestructionTime rostime.Timestamp
}

// newTrackerFromGoal creates a tracker for a freshly received goal:
// status Pending, the goal's id/stamp/body copied, destruction time zero.
func newTrackerFromGoal(goal Goal) *StatusTracker {
	return &StatusTracker{
		status:   StatusPending,
		goalID:   goal.ID,
		goalBody: goal.Body,
	}
}

// newTrackerFromStatus creates a placeholder tracker with no body, used
// when a cancel arrives before its goal.
func newTrackerFromStatus(id GoalID, status StatusCode) *StatusTracker {
	return &StatusTracker{status: status, goalID: id}
}

// refreshDestructionTime clears the destruction time if the tracker's
// current status is non-terminal, or sets it to now if terminal.
func (t *StatusTracker) refreshDestructionTime(now rostime.Timestamp) {
	if t.status.IsTerminal() {
		t.handleDestructionTime = now
	} else {
		t.handleDestructionTime = rostime.Timestamp{}
	}
}

// dead reports whether the tracker should be evicted from the status
// list: its destruction time is set and old enough relative to now and
// the configured timeout.
func (t *StatusTracker) dead(now rostime.Timestamp, timeout rostime.Duration) bool {
	destruction := t.handleDestructionTime.Nanos()
	if destruction == 0 {
		return false
	}
	return destruction+timeout.Nanos() < now.Nanos()
}

// toGoalStatus snapshots the tracker as a GoalStatus for publication.
func (t *StatusTracker) toGoalStatus() GoalStatus {
	return GoalStatus{GoalID: t.goalID, Status: t.status, Text: t.text}
}
