package actionlib

import "fmt"

// ErrorCode classifies an actionlib error.
type ErrorCode int

const (
	// ErrInvalidName indicates a namespace or topic name violated the
	// path grammar (pkg/naming).
	ErrInvalidName ErrorCode = iota + 1

	// ErrEmptyName indicates a name to resolve was the empty string.
	ErrEmptyName

	// ErrServerGone indicates the ActionServer a GoalHandle was created
	// from has since been closed: the weak back-reference failed to
	// upgrade.
	ErrServerGone

	// ErrTransportFailure indicates a Publisher or SubscriptionFactory
	// call returned an error.
	ErrTransportFailure

	// ErrProtocolMisuse indicates a GoalHandle operation invalid for
	// the tracker's current state, e.g. SetCanceled on an already
	// terminal goal.
	ErrProtocolMisuse
)

// String returns a human-readable name for the error code.
func (e ErrorCode) String() string {
	switch e {
	case ErrInvalidName:
		return "InvalidName"
	case ErrEmptyName:
		return "EmptyName"
	case ErrServerGone:
		return "ServerGone"
	case ErrTransportFailure:
		return "TransportFailure"
	case ErrProtocolMisuse:
		return "ProtocolMisuse"
	default:
		return "Unknown"
	}
}

// Error is the error type returned by core actionlib operations. It
// carries a classifying code, a message, and the goal id involved, if
// any.
type Error struct {
	Code    ErrorCode
	Message string
	GoalID  string
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.GoalID != "" {
		return fmt.Sprintf("%s: %s (goal: %s)", e.Code, e.Message, e.GoalID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/As.
func (e *Error) Unwrap() error { return e.cause }

// NewInvalidNameError wraps a pkg/naming parse failure.
func NewInvalidNameError(cause error) *Error {
	return &Error{Code: ErrInvalidName, Message: "invalid name", cause: cause}
}

// NewEmptyNameError reports an empty name passed where one was required.
func NewEmptyNameError() *Error {
	return &Error{Code: ErrEmptyName, Message: "name must not be empty"}
}

// NewServerGoneError reports a GoalHandle operation invoked after its
// ActionServer was closed.
func NewServerGoneError(goalID string) *Error {
	return &Error{Code: ErrServerGone, Message: "action server is gone", GoalID: goalID}
}

// NewTransportFailureError wraps a Publisher or SubscriptionFactory
// error.
func NewTransportFailureError(cause error) *Error {
	return &Error{Code: ErrTransportFailure, Message: "transport failure", cause: cause}
}

// NewProtocolMisuseError reports a GoalHandle operation invalid for the
// tracker's current state.
func NewProtocolMisuseError(goalID, reason string) *Error {
	return &Error{Code: ErrProtocolMisuse, Message: reason, GoalID: goalID}
}
