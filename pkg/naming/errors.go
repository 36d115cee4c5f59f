package naming

import "errors"

// ErrEmptyName is returned when a name to resolve is the empty string.
var ErrEmptyName = errors.New("naming: empty name")

// ErrInvalidName is returned when a path violates the segment or
// separator rules described on Path.
var ErrInvalidName = errors.New("naming: invalid path")

// ErrNoParent is returned by Path.Parent when called on the root path,
// which has no parent.
var ErrNoParent = errors.New("naming: root path has no parent")
