package brep

import (
	"errors"
	"fmt"
)

// Errors.
var (
	// ErrUnknownRef is returned by Registry.Retain and Registry.Release
	// for an id that is not (or no longer) stored. This indicates a
	// retain/release pairing bug in the caller; strict registries panic
	// instead.
	ErrUnknownRef = errors.New("brep: unknown shape reference")

	// ErrIndexRange is returned when a face/edge/vertex index does not
	// resolve against the given shape instance. Indices are only valid
	// against the exact instance they were produced from; a stale index
	// after a rebuild surfaces as this error.
	ErrIndexRange = errors.New("brep: topology index out of range")

	// ErrSchedulerClosed is returned by Scheduler.Schedule after Close.
	ErrSchedulerClosed = errors.New("brep: scheduler closed")
)

// ValidationError reports that the kernel could not complete an operation:
// the build was reported incomplete, or its result was null or degenerate.
// Param carries the operation's numeric parameter (radius, distance,
// tolerance, offset) for diagnostics.
type ValidationError struct {
	Op     string
	Param  float64
	Reason error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("brep: %s failed (parameter %g): %v", e.Op, e.Param, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Reason }

// TopologyError reports that reconstruction could not build a single
// usable face by any strategy. The caller's previous shape is untouched.
type TopologyError struct {
	Moves  int
	Reason error
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("brep: unrecoverable topology (%d moves): %v", e.Moves, e.Reason)
}

func (e *TopologyError) Unwrap() error { return e.Reason }
