package brep

import (
	"fmt"

	"github.com/gocad/brep/kernel"
)

// Fillet rounds the edges at the given indices with a constant radius.
// Edge indices follow the kernel's deterministic iteration order over
// this exact shape instance; they are invalidated by any rebuild. A
// radius the local geometry cannot absorb is a ValidationError carrying
// the requested radius.
func Fillet(k kernel.Kernel, s kernel.Shape, edgeIdx []int, radius float64) (kernel.Shape, error) {
	sc := newScope()
	defer sc.Close()

	edges, err := pickByIndex(sc, k, s, kernel.KindEdge, edgeIdx)
	if err != nil {
		return nil, fmt.Errorf("brep: fillet: %w", err)
	}
	out, err := k.Fillet(s, edges, radius)
	if err != nil {
		return nil, &ValidationError{Op: "fillet", Param: radius, Reason: err}
	}
	return out, nil
}

// Chamfer bevels the edges at the given indices with a constant distance.
// The kernel's chamfer builder dereferences the distance direction
// through a face adjacent to each edge; the adjacent face is found by
// iterating all faces and testing boundary membership. Indices carry the
// same instance-lifetime contract as Fillet's.
func Chamfer(k kernel.Kernel, s kernel.Shape, edgeIdx []int, dist float64) (kernel.Shape, error) {
	sc := newScope()
	defer sc.Close()

	edges, err := pickByIndex(sc, k, s, kernel.KindEdge, edgeIdx)
	if err != nil {
		return nil, fmt.Errorf("brep: chamfer: %w", err)
	}

	faces, err := k.SubShapes(s, kernel.KindFace)
	if err != nil {
		return nil, fmt.Errorf("brep: chamfer: %w", err)
	}
	sc.trackAll(faces)

	refs := make([]kernel.Shape, len(edges))
	for i, e := range edges {
		ref, err := adjacentFace(sc, k, faces, e)
		if err != nil {
			return nil, &ValidationError{Op: "chamfer", Param: dist, Reason: err}
		}
		refs[i] = ref
	}

	out, err := k.Chamfer(s, edges, refs, dist)
	if err != nil {
		return nil, &ValidationError{Op: "chamfer", Param: dist, Reason: err}
	}
	return out, nil
}

// adjacentFace finds a face whose outer boundary contains the edge.
func adjacentFace(sc *scope, k kernel.Kernel, faces []kernel.Shape, edge kernel.Shape) (kernel.Shape, error) {
	for _, f := range faces {
		w, err := k.OuterWire(f)
		if err != nil {
			return nil, err
		}
		sc.track(w)
		we, _, err := k.WireEdges(w)
		if err != nil {
			return nil, err
		}
		sc.trackAll(we)
		for _, fe := range we {
			if k.Same(fe, edge) {
				return f, nil
			}
		}
	}
	return nil, fmt.Errorf("no face adjacent to edge: %w", kernel.ErrIncomplete)
}
