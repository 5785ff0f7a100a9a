package kernel

import "errors"

// Common kernel errors.
var (
	// ErrIncomplete is returned when a kernel builder runs but cannot
	// produce a complete result (boolean did not resolve, shell does not
	// close, feature exceeds local geometry).
	ErrIncomplete = errors.New("kernel: operation incomplete")

	// ErrNullShape is returned when a builder produced a null or empty
	// shape.
	ErrNullShape = errors.New("kernel: null result shape")

	// ErrDegenerate is returned when an input is geometrically degenerate
	// (zero-length edge, collapsed wire).
	ErrDegenerate = errors.New("kernel: degenerate geometry")

	// ErrUnsupported is returned when a kernel does not implement the
	// requested configuration of an operation.
	ErrUnsupported = errors.New("kernel: unsupported operation")

	// ErrWrongKind is returned when a handle of the wrong topological
	// kind is passed to an operation.
	ErrWrongKind = errors.New("kernel: wrong shape kind")

	// ErrNoKernelAvailable is returned when no kernels are registered.
	ErrNoKernelAvailable = errors.New("kernel: no kernel available")
)

// NotFoundError indicates a named kernel is not registered.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return "kernel: not registered: " + e.Name
}
