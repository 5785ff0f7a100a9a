package brep

import (
	"errors"

	"github.com/gocad/brep/kernel"
)

// Fuse returns the boolean union of two solids. The exact-tolerance
// boolean is attempted first; if the kernel reports it incomplete or null,
// one retry runs with a relaxed coincidence tolerance. A failed retry is a
// ValidationError.
func Fuse(k kernel.Kernel, a, b kernel.Shape, opts ...OpOption) (kernel.Shape, error) {
	return booleanOp(k, "fuse", a, b, k.Fuse, opts)
}

// Cut returns the boolean difference a minus b, with the same
// exact-then-relaxed retry ladder as Fuse.
func Cut(k kernel.Kernel, a, b kernel.Shape, opts ...OpOption) (kernel.Shape, error) {
	return booleanOp(k, "cut", a, b, k.Cut, opts)
}

// booleanOp runs a kernel boolean builder with exactly one relaxed
// retry. Shapes coming out of reconstruction can carry slightly perturbed
// tolerances that defeat exact-coincidence booleans; the relaxed retry
// recovers most of these without loosening the tight default everywhere
// else.
func booleanOp(k kernel.Kernel, op string, a, b kernel.Shape, build func(a, b kernel.Shape, fuzz float64) (kernel.Shape, error), opts []OpOption) (kernel.Shape, error) {
	o := buildOpOptions(opts)

	out, err := build(a, b, 0)
	if err == nil {
		return out, nil
	}
	if !booleanRetryable(err) {
		return nil, &ValidationError{Op: op, Param: 0, Reason: err}
	}

	Logger().Warn("brep: exact boolean failed, retrying with relaxed tolerance",
		"op", op, "fuzzy", o.fuzzy, "err", err)
	out, err = build(a, b, o.fuzzy)
	if err != nil {
		return nil, &ValidationError{Op: op, Param: o.fuzzy, Reason: err}
	}
	return out, nil
}

// booleanRetryable reports whether a boolean failure is the kind the
// relaxed retry can recover: an unresolved build or a null result.
func booleanRetryable(err error) bool {
	return errors.Is(err, kernel.ErrIncomplete) || errors.Is(err, kernel.ErrNullShape)
}
