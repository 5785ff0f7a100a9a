package brep

import (
	"fmt"

	"github.com/gocad/brep/kernel"
)

// PushPull offsets the face at faceIdx along its outward normal: a
// positive offset grows the solid (extrude and fuse), a negative one
// carves into it (extrude inward and cut).
//
// The target face's outer boundary is rebuilt as an independent profile —
// fresh vertices, edges, wire and face sharing no topology with the
// source — before extrusion. Extruding a profile that still references
// the source shape's topology corrupts the source's internal graph when
// the two are booleaned together.
func PushPull(k kernel.Kernel, s kernel.Shape, faceIdx int, offset float64, opts ...OpOption) (kernel.Shape, error) {
	if offset == 0 {
		return nil, &ValidationError{Op: "pushpull", Param: offset, Reason: kernel.ErrDegenerate}
	}
	sc := newScope()
	defer sc.Close()

	faces, err := k.SubShapes(s, kernel.KindFace)
	if err != nil {
		return nil, fmt.Errorf("brep: pushpull: %w", err)
	}
	sc.trackAll(faces)
	if faceIdx < 0 || faceIdx >= len(faces) {
		return nil, fmt.Errorf("brep: pushpull: face %d of %d: %w", faceIdx, len(faces), ErrIndexRange)
	}
	face := faces[faceIdx]

	n, err := k.FaceNormal(face)
	if err != nil {
		return nil, fmt.Errorf("brep: pushpull: %w", err)
	}
	profile, err := independentProfile(sc, k, face)
	if err != nil {
		return nil, &ValidationError{Op: "pushpull", Param: offset, Reason: err}
	}

	tool, err := k.Prism(profile, n.Mul(offset))
	if err != nil {
		return nil, &ValidationError{Op: "pushpull", Param: offset, Reason: err}
	}
	sc.track(tool)

	var out kernel.Shape
	if offset > 0 {
		out, err = Fuse(k, s, tool, opts...)
	} else {
		out, err = Cut(k, s, tool, opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("brep: pushpull: %w", err)
	}
	return out, nil
}

// independentProfile rebuilds a face's outer boundary from scratch:
// every boundary segment becomes a new straight edge between new
// vertices. The result shares nothing with the source shape.
func independentProfile(sc *scope, k kernel.Kernel, face kernel.Shape) (kernel.Shape, error) {
	w, err := k.OuterWire(face)
	if err != nil {
		return nil, err
	}
	sc.track(w)
	srcEdges, _, err := k.WireEdges(w)
	if err != nil {
		return nil, err
	}
	sc.trackAll(srcEdges)

	verts := make(map[moveKey]kernel.Shape)
	vertexAt := func(p Point3) (kernel.Shape, error) {
		key := keyAt(p)
		if v, ok := verts[key]; ok {
			return v, nil
		}
		v, err := k.Vertex(p)
		if err != nil {
			return nil, err
		}
		sc.track(v)
		verts[key] = v
		return v, nil
	}

	var edges []kernel.Shape
	for _, e := range srcEdges {
		a, b, err := k.EdgeEnds(e)
		if err != nil {
			return nil, err
		}
		if a.Near(b, moveTolerance) {
			return nil, fmt.Errorf("curved boundary segment: %w", kernel.ErrUnsupported)
		}
		va, err := vertexAt(a)
		if err != nil {
			return nil, err
		}
		vb, err := vertexAt(b)
		if err != nil {
			return nil, err
		}
		ne, err := k.Edge(va, vb)
		if err != nil {
			return nil, err
		}
		sc.track(ne)
		edges = append(edges, ne)
	}

	wire, err := k.Wire(edges)
	if err != nil {
		return nil, err
	}
	sc.track(wire)
	profile, err := k.Face(wire)
	if err != nil {
		return nil, err
	}
	sc.track(profile)
	return profile, nil
}
