package core

import "errors"

// ErrUnsolvable is returned when no conflict-free joint plan exists: some
// agent has no path under empty constraints, or the CBS constraint tree
// is exhausted without finding one.
var ErrUnsolvable = errors.New("mapf: unsolvable")

// ErrTimeout is returned when a caller-supplied deadline expires before
// the solver finds a joint plan. No partial state is exposed alongside it.
var ErrTimeout = errors.New("mapf: timeout")

// InvalidInputError reports a malformed request: an out-of-bounds or
// obstacle start/goal, or a duplicate agent id. It is a struct type rather
// than a shared sentinel so each case carries its own Reason text; the
// offending agent is not named in the message.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string { return "mapf: invalid input: " + e.Reason }
