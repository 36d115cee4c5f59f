// Package actionlib implements the server side of the Action protocol: a
// long-running, cancellable, stateful request coordinated between a
// client and a server over five topics (goal, cancel, status, feedback,
// result).
package actionlib

import "github.com/marmos91/actionlib/pkg/rostime"

// GoalID identifies a single goal: a unique string id paired with the
// timestamp at which the client generated it.
type GoalID struct {
	ID    string
	Stamp rostime.Timestamp
}

// StatusCode is one of the Action protocol's goal lifecycle states.
type StatusCode int

const (
	StatusPending StatusCode = iota
	StatusActive
	StatusPreempted
	StatusSucceeded
	StatusAborted
	StatusRejected
	StatusPreempting
	StatusRecalling
	StatusRecalled
	StatusLost
)

func (s StatusCode) String() string {
	switch s {
	case StatusPending:
		return "PENDING"
	case StatusActive:
		return "ACTIVE"
	case StatusPreempted:
		return "PREEMPTED"
	case StatusSucceeded:
		return "SUCCEEDED"
	case StatusAborted:
		return "ABORTED"
	case StatusRejected:
		return "REJECTED"
	case StatusPreempting:
		return "PREEMPTING"
	case StatusRecalling:
		return "RECALLING"
	case StatusRecalled:
		return "RECALLED"
	case StatusLost:
		return "LOST"
	default:
		return "UNKNOWN"
	}
}

// IsTerminal reports whether no further transition is legal from s.
func (s StatusCode) IsTerminal() bool {
	switch s {
	case StatusPreempted, StatusSucceeded, StatusAborted, StatusRejected, StatusRecalled, StatusLost:
		return true
	default:
		return false
	}
}

// GoalStatus pairs a GoalID with its current status code and a free-form
// human-readable text.
type GoalStatus struct {
	GoalID GoalID
	Status StatusCode
	Text   string
}

// GoalStatusArray is a timestamp-tagged snapshot of the goals an
// ActionServer is currently tracking.
type GoalStatusArray struct {
	Stamp    rostime.Timestamp
	Statuses []GoalStatus
}

// Goal is an incoming client request: an id and an opaque, action-specific
// body.
type Goal struct {
	ID   GoalID
	Body any
}

// Result is the terminal response published on the result topic.
type Result struct {
	Status GoalStatus
	Body   any
}

// Feedback is a non-terminal progress update published on the feedback
// topic.
type Feedback struct {
	Status GoalStatus
	Body   any
}
