package thicket

import (
	"errors"
	"fmt"
)

// ErrInvalidHierarchy reports a tree mutation that would break the tree shape:
// adding a node as a child of itself or of one of its own descendants, or
// removing a child from a node that is not its parent.
var ErrInvalidHierarchy = errors.New("thicket: invalid hierarchy")

// ErrUseAfterDestroy reports an operation on a destroyed container. This
// always indicates a lifecycle bug in the caller and is never recoverable.
var ErrUseAfterDestroy = errors.New("thicket: use after destroy")

// UnknownPipeError reports a view whose render pipe id has no registered pipe.
// It is raised at first render and is not recoverable by retry.
type UnknownPipeError struct {
	PipeID string
}

func (e *UnknownPipeError) Error() string {
	return fmt.Sprintf("thicket: no render pipe registered for %q", e.PipeID)
}
