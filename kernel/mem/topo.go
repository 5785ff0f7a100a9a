// Copyright 2026 The gocad Authors
// SPDX-License-Identifier: MIT

package mem

import (
	"fmt"

	"github.com/gocad/brep/geom"
	"github.com/gocad/brep/kernel"
)

// facesOf returns the face refs of a solid, shell or single face.
func facesOf(h *shape) ([]faceRef, error) {
	switch h.kind {
	case kernel.KindSolid:
		return h.data.(*solidData).shell.faces, nil
	case kernel.KindShell:
		return h.data.(*shellData).faces, nil
	case kernel.KindFace:
		return []faceRef{{f: h.data.(*faceData), rev: h.rev}}, nil
	default:
		return nil, fmt.Errorf("mem: no faces in %s: %w", h.kind, kernel.ErrWrongKind)
	}
}

// loopsOf returns all boundary loops of a shape in face order.
func loopsOf(h *shape) ([]loop, error) {
	if h.kind == kernel.KindWire {
		return []loop{h.data.(*wireData).lp}, nil
	}
	frs, err := facesOf(h)
	if err != nil {
		return nil, err
	}
	var out []loop
	for _, fr := range frs {
		out = append(out, fr.f.outer)
		out = append(out, fr.f.holes...)
	}
	return out, nil
}

// SubShapes enumerates sub-shapes of the given kind in deterministic
// per-instance order: faces in shell order, edges in face/loop traversal
// order deduplicated by identity, vertices in edge order deduplicated by
// position.
func (k *Kernel) SubShapes(s kernel.Shape, kind kernel.ShapeKind) ([]kernel.Shape, error) {
	h, ok := s.(*shape)
	if !ok || h.k != k {
		return nil, fmt.Errorf("mem: foreign handle: %w", kernel.ErrWrongKind)
	}

	switch kind {
	case kernel.KindFace:
		frs, err := facesOf(h)
		if err != nil {
			return nil, err
		}
		out := make([]kernel.Shape, len(frs))
		for i, fr := range frs {
			out[i] = k.newShape(kernel.KindFace, fr.f, fr.rev)
		}
		return out, nil

	case kernel.KindEdge:
		lps, err := loopsOf(h)
		if err != nil {
			return nil, err
		}
		seen := make(map[*edgeData]bool)
		var out []kernel.Shape
		for _, lp := range lps {
			for _, e := range lp.edges {
				if seen[e] {
					continue
				}
				seen[e] = true
				out = append(out, k.newShape(kernel.KindEdge, e, false))
			}
		}
		return out, nil

	case kernel.KindVertex:
		lps, err := loopsOf(h)
		if err != nil {
			return nil, err
		}
		seenEdge := make(map[*edgeData]bool)
		seenPt := make(map[pointKey]bool)
		var out []kernel.Shape
		add := func(p geom.Point3) {
			key := keyOf(p)
			if seenPt[key] {
				return
			}
			seenPt[key] = true
			out = append(out, k.newShape(kernel.KindVertex, &vertexData{p: p}, false))
		}
		for _, lp := range lps {
			for _, e := range lp.edges {
				if seenEdge[e] {
					continue
				}
				seenEdge[e] = true
				add(e.start())
				if !e.closed() {
					add(e.end())
				}
			}
		}
		return out, nil

	default:
		return nil, fmt.Errorf("mem: enumerate %s of %s: %w", kind, h.kind, kernel.ErrUnsupported)
	}
}

// OuterWire returns the outer boundary wire of a face.
func (k *Kernel) OuterWire(face kernel.Shape) (kernel.Shape, error) {
	h, err := k.cast(face, kernel.KindFace)
	if err != nil {
		return nil, err
	}
	fd := h.data.(*faceData)
	return k.newShape(kernel.KindWire, &wireData{lp: fd.outer}, false), nil
}

// InnerWires returns the face's hole boundary wires in stored order.
func (k *Kernel) InnerWires(face kernel.Shape) ([]kernel.Shape, error) {
	h, err := k.cast(face, kernel.KindFace)
	if err != nil {
		return nil, err
	}
	fd := h.data.(*faceData)
	out := make([]kernel.Shape, len(fd.holes))
	for i, lp := range fd.holes {
		out[i] = k.newShape(kernel.KindWire, &wireData{lp: lp}, false)
	}
	return out, nil
}

// WireEdges returns the wire's edges in traversal order. The returned
// handles are oriented so EdgeEnds follows the traversal; fwd[i] reports
// whether that matches the edge's creation direction.
func (k *Kernel) WireEdges(wire kernel.Shape) ([]kernel.Shape, []bool, error) {
	h, err := k.cast(wire, kernel.KindWire)
	if err != nil {
		return nil, nil, err
	}
	lp := h.data.(*wireData).lp
	out := make([]kernel.Shape, len(lp.edges))
	fwd := make([]bool, len(lp.edges))
	for i, e := range lp.edges {
		out[i] = k.newShape(kernel.KindEdge, e, !lp.fwd[i])
		fwd[i] = lp.fwd[i]
	}
	return out, fwd, nil
}

// Same reports whether two handles reference the same underlying object,
// ignoring orientation.
func (k *Kernel) Same(a, b kernel.Shape) bool {
	ha, ok1 := a.(*shape)
	hb, ok2 := b.(*shape)
	if !ok1 || !ok2 {
		return false
	}
	return ha.data == hb.data
}

// Reversed returns a new handle for the same object with flipped
// orientation.
func (k *Kernel) Reversed(s kernel.Shape) (kernel.Shape, error) {
	h, ok := s.(*shape)
	if !ok || h.k != k {
		return nil, fmt.Errorf("mem: foreign handle: %w", kernel.ErrWrongKind)
	}
	return k.newShape(h.kind, h.data, !h.rev), nil
}

// FaceReversed reports whether the face handle's orientation is reversed
// relative to its intrinsic surface normal.
func (k *Kernel) FaceReversed(face kernel.Shape) (bool, error) {
	h, err := k.cast(face, kernel.KindFace)
	if err != nil {
		return false, err
	}
	return h.rev, nil
}

// Point returns the position of a vertex.
func (k *Kernel) Point(v kernel.Shape) (geom.Point3, error) {
	h, err := k.cast(v, kernel.KindVertex)
	if err != nil {
		return geom.Point3{}, err
	}
	return h.data.(*vertexData).p, nil
}

// EdgeEnds returns the endpoints of an edge in the handle's oriented order.
func (k *Kernel) EdgeEnds(e kernel.Shape) (geom.Point3, geom.Point3, error) {
	h, err := k.cast(e, kernel.KindEdge)
	if err != nil {
		return geom.Point3{}, geom.Point3{}, err
	}
	ed := h.data.(*edgeData)
	if h.rev {
		return ed.end(), ed.start(), nil
	}
	return ed.start(), ed.end(), nil
}

// SampleEdge evaluates the edge's curve at samples+1 uniform arc-length
// steps, endpoints included.
func (k *Kernel) SampleEdge(e kernel.Shape, samples int) ([]geom.Point3, error) {
	h, err := k.cast(e, kernel.KindEdge)
	if err != nil {
		return nil, err
	}
	ed := h.data.(*edgeData)
	total := ed.length()
	if total <= tightTol {
		return nil, fmt.Errorf("mem: zero-length edge: %w", kernel.ErrDegenerate)
	}
	if samples < 1 {
		samples = 1
	}

	out := make([]geom.Point3, 0, samples+1)
	seg := 0
	walked := 0.0
	for i := 0; i <= samples; i++ {
		target := total * float64(i) / float64(samples)
		for seg < len(ed.pts)-2 {
			l := ed.pts[seg+1].Distance(ed.pts[seg])
			if walked+l >= target {
				break
			}
			walked += l
			seg++
		}
		l := ed.pts[seg+1].Distance(ed.pts[seg])
		t := 0.0
		if l > 0 {
			t = (target - walked) / l
			if t > 1 {
				t = 1
			}
		}
		out = append(out, ed.pts[seg].Lerp(ed.pts[seg+1], t))
	}
	if h.rev {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

// FaceNormal returns the face's effective surface normal: the intrinsic
// normal flipped when the handle is reversed.
func (k *Kernel) FaceNormal(face kernel.Shape) (geom.Vec3, error) {
	h, err := k.cast(face, kernel.KindFace)
	if err != nil {
		return geom.Vec3{}, err
	}
	n := h.data.(*faceData).normal
	if h.rev {
		n = n.Neg()
	}
	return n, nil
}

// Bounds returns the axis-aligned bounding box of a shape.
func (k *Kernel) Bounds(s kernel.Shape) (geom.Bounds3, error) {
	h, ok := s.(*shape)
	if !ok || h.k != k {
		return geom.Bounds3{}, fmt.Errorf("mem: foreign handle: %w", kernel.ErrWrongKind)
	}
	var b geom.Bounds3
	switch h.kind {
	case kernel.KindVertex:
		b.Extend(h.data.(*vertexData).p)
	case kernel.KindEdge:
		for _, p := range h.data.(*edgeData).pts {
			b.Extend(p)
		}
	default:
		lps, err := loopsOf(h)
		if err != nil {
			return geom.Bounds3{}, err
		}
		for _, lp := range lps {
			for _, e := range lp.edges {
				for _, p := range e.pts {
					b.Extend(p)
				}
			}
		}
	}
	return b, nil
}
