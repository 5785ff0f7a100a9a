// Copyright 2026 The gocad Authors
// SPDX-License-Identifier: MIT

package mem

import (
	"fmt"
	"math"

	"github.com/gocad/brep/geom"
	"github.com/gocad/brep/kernel"
)

// shape is the mem handle type. The handle carries an orientation flag;
// the payload behind data is shared between handles and never mutated after
// construction.
type shape struct {
	k        *Kernel
	kind     kernel.ShapeKind
	data     any
	rev      bool
	released bool
}

func (s *shape) Kind() kernel.ShapeKind { return s.kind }

// Release frees the handle. Releasing twice is a caller bug and panics so
// that lifetime errors surface in tests instead of corrupting counters.
func (s *shape) Release() {
	if s.released {
		panic(fmt.Sprintf("mem: %s handle released twice", s.kind))
	}
	s.released = true
	s.k.live.Add(-1)
}

// newShape allocates a handle and counts it live.
func (k *Kernel) newShape(kind kernel.ShapeKind, data any, rev bool) *shape {
	k.live.Add(1)
	return &shape{k: k, kind: kind, data: data, rev: rev}
}

// cast checks a handle's provenance and kind.
func (k *Kernel) cast(s kernel.Shape, kind kernel.ShapeKind) (*shape, error) {
	h, ok := s.(*shape)
	if !ok || h.k != k {
		return nil, fmt.Errorf("mem: foreign handle: %w", kernel.ErrWrongKind)
	}
	if h.released {
		return nil, fmt.Errorf("mem: use of released %s handle: %w", h.kind, kernel.ErrWrongKind)
	}
	if h.kind != kind {
		return nil, fmt.Errorf("mem: got %s, want %s: %w", h.kind, kind, kernel.ErrWrongKind)
	}
	return h, nil
}

// vertexData is a topological vertex.
type vertexData struct {
	p geom.Point3
}

// edgeData is an edge sampled as a polyline in its creation direction.
// len(pts) >= 2; an edge whose endpoints coincide is a closed curve.
type edgeData struct {
	pts []geom.Point3
}

func (e *edgeData) start() geom.Point3 { return e.pts[0] }
func (e *edgeData) end() geom.Point3   { return e.pts[len(e.pts)-1] }

func (e *edgeData) closed() bool {
	return e.start().Near(e.end(), tightTol)
}

func (e *edgeData) length() float64 {
	var l float64
	for i := 1; i < len(e.pts); i++ {
		l += e.pts[i].Distance(e.pts[i-1])
	}
	return l
}

// loop is an ordered closed boundary. edges[i] is traversed in its creation
// direction when fwd[i] is true.
type loop struct {
	edges []*edgeData
	fwd   []bool
}

// points returns the boundary positions in traversal order, without the
// duplicated closing point.
func (l loop) points() []geom.Point3 {
	var out []geom.Point3
	for i, e := range l.edges {
		pts := e.pts
		if l.fwd[i] {
			out = append(out, pts[:len(pts)-1]...)
		} else {
			for j := len(pts) - 1; j > 0; j-- {
				out = append(out, pts[j])
			}
		}
	}
	return out
}

// reversed returns the loop traversed in the opposite direction.
func (l loop) reversed() loop {
	n := len(l.edges)
	r := loop{edges: make([]*edgeData, n), fwd: make([]bool, n)}
	for i := 0; i < n; i++ {
		r.edges[i] = l.edges[n-1-i]
		r.fwd[i] = !l.fwd[n-1-i]
	}
	return r
}

type wireData struct {
	lp loop
}

// faceData is a bounded surface patch. Planar faces triangulate by
// projecting their loops; ruled lateral faces (wall != nil) triangulate as a
// swept strip. normal is the intrinsic surface normal (mean normal for
// non-planar patches).
type faceData struct {
	outer  loop
	holes  []loop
	normal geom.Vec3
	wall   *wallData
}

// wallData describes a ruled lateral surface: base swept along dir.
type wallData struct {
	base []geom.Point3
	dir  geom.Vec3
}

// center returns the mean of the face's boundary points.
func (f *faceData) center() geom.Point3 {
	pts := f.outer.points()
	var c geom.Point3
	for _, p := range pts {
		c.X += p.X
		c.Y += p.Y
		c.Z += p.Z
	}
	n := float64(len(pts))
	return geom.P3(c.X/n, c.Y/n, c.Z/n)
}

type faceRef struct {
	f   *faceData
	rev bool
}

type shellData struct {
	faces []faceRef
}

type solidData struct {
	shell *shellData
	prism *prismInfo
}

// newellNormal computes the mean plane normal of a polygon.
func newellNormal(pts []geom.Point3) geom.Vec3 {
	var n geom.Vec3
	for i := range pts {
		p := pts[i]
		q := pts[(i+1)%len(pts)]
		n.X += (p.Y - q.Y) * (p.Z + q.Z)
		n.Y += (p.Z - q.Z) * (p.X + q.X)
		n.Z += (p.X - q.X) * (p.Y + q.Y)
	}
	return n.Normalize()
}

// pointKey is a rounded-coordinate identity for positions.
type pointKey struct {
	x, y, z int64
}

const keyGrid = 1e-6

func keyOf(p geom.Point3) pointKey {
	return pointKey{
		x: int64(math.Round(p.X / keyGrid)),
		y: int64(math.Round(p.Y / keyGrid)),
		z: int64(math.Round(p.Z / keyGrid)),
	}
}

func (a pointKey) less(b pointKey) bool {
	if a.x != b.x {
		return a.x < b.x
	}
	if a.y != b.y {
		return a.y < b.y
	}
	return a.z < b.z
}

// edgeKey identifies an edge geometrically: canonically ordered endpoint
// keys plus a rounded length, so two coincident circles at the same seam
// point stay distinguishable from shorter seams.
type edgeKey struct {
	a, b pointKey
	l    int64
}

func keyOfEdge(e *edgeData) edgeKey {
	ka, kb := keyOf(e.start()), keyOf(e.end())
	if kb.less(ka) {
		ka, kb = kb, ka
	}
	return edgeKey{a: ka, b: kb, l: int64(math.Round(e.length() / keyGrid))}
}
