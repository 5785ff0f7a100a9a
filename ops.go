package brep

import (
	"fmt"

	"github.com/gocad/brep/kernel"
)

// Operations are pure over their inputs: they never mutate or release an
// argument shape, and the caller owns every returned handle. Intermediate
// kernel objects are tracked in a release scope and freed on every exit
// path.

// DefaultFuzzyTolerance is the relaxed coincidence tolerance used by the
// automatic boolean retry. Two orders of magnitude above typical mesher
// deflection, far below feature size.
const DefaultFuzzyTolerance = 5e-3

// OpOption configures a modification operation.
type OpOption func(*opOptions)

type opOptions struct {
	fuzzy float64
}

func buildOpOptions(opts []OpOption) opOptions {
	o := opOptions{fuzzy: DefaultFuzzyTolerance}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithFuzzyTolerance overrides the relaxed tolerance used by the boolean
// retry.
func WithFuzzyTolerance(tol float64) OpOption {
	return func(o *opOptions) { o.fuzzy = tol }
}

// Box creates a solid box from a corner point and three positive extents.
func Box(k kernel.Kernel, corner Point3, dx, dy, dz float64) (kernel.Shape, error) {
	s, err := k.Box(corner, dx, dy, dz)
	if err != nil {
		return nil, fmt.Errorf("brep: box: %w", err)
	}
	return s, nil
}

// Cylinder creates a solid cylinder from a base center, an axis direction,
// a radius and a height.
func Cylinder(k kernel.Kernel, base Point3, axis Vec3, radius, height float64) (kernel.Shape, error) {
	s, err := k.Cylinder(base, axis, radius, height)
	if err != nil {
		return nil, fmt.Errorf("brep: cylinder: %w", err)
	}
	return s, nil
}

// Extrude sweeps a planar profile face along dir into a solid.
func Extrude(k kernel.Kernel, profile kernel.Shape, dir Vec3) (kernel.Shape, error) {
	s, err := k.Prism(profile, dir)
	if err != nil {
		return nil, fmt.Errorf("brep: extrude: %w", err)
	}
	return s, nil
}

// Translate returns a rigidly displaced copy of a shape. The source is
// untouched. Translation is a copying transform; it succeeds for any
// finite delta.
func Translate(k kernel.Kernel, s kernel.Shape, delta Vec3) (kernel.Shape, error) {
	out, err := k.Translated(s, delta)
	if err != nil {
		return nil, fmt.Errorf("brep: translate: %w", err)
	}
	return out, nil
}

// FaceByIndex returns an owned handle for the idx-th face of the shape,
// in the kernel's deterministic iteration order. The index is valid only
// against this exact shape instance.
func FaceByIndex(k kernel.Kernel, s kernel.Shape, idx int) (kernel.Shape, error) {
	return subByIndex(k, s, kernel.KindFace, idx)
}

// EdgeByIndex returns an owned handle for the idx-th edge of the shape.
// The index is valid only against this exact shape instance.
func EdgeByIndex(k kernel.Kernel, s kernel.Shape, idx int) (kernel.Shape, error) {
	return subByIndex(k, s, kernel.KindEdge, idx)
}

func subByIndex(k kernel.Kernel, s kernel.Shape, kind kernel.ShapeKind, idx int) (kernel.Shape, error) {
	subs, err := k.SubShapes(s, kind)
	if err != nil {
		return nil, fmt.Errorf("brep: %s by index: %w", kind, err)
	}
	var out kernel.Shape
	for i, sub := range subs {
		if i == idx {
			out = sub
		} else {
			sub.Release()
		}
	}
	if out == nil {
		return nil, fmt.Errorf("brep: %s %d of %d: %w", kind, idx, len(subs), ErrIndexRange)
	}
	return out, nil
}

// pickByIndex resolves several indices against one enumeration, tracking
// every issued handle in the scope.
func pickByIndex(sc *scope, k kernel.Kernel, s kernel.Shape, kind kernel.ShapeKind, idxs []int) ([]kernel.Shape, error) {
	all, err := k.SubShapes(s, kind)
	if err != nil {
		return nil, err
	}
	sc.trackAll(all)
	out := make([]kernel.Shape, len(idxs))
	for i, idx := range idxs {
		if idx < 0 || idx >= len(all) {
			return nil, fmt.Errorf("%s %d of %d: %w", kind, idx, len(all), ErrIndexRange)
		}
		out[i] = all[idx]
	}
	return out, nil
}
