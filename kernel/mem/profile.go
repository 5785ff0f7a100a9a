// Copyright 2026 The gocad Authors
// SPDX-License-Identifier: MIT

package mem

import (
	"math"

	"github.com/gocad/brep/geom"
)

// xy is a 2D profile point.
type xy struct {
	X, Y float64
}

func (a xy) sub(b xy) xy          { return xy{a.X - b.X, a.Y - b.Y} }
func (a xy) add(b xy) xy          { return xy{a.X + b.X, a.Y + b.Y} }
func (a xy) mul(s float64) xy     { return xy{a.X * s, a.Y * s} }
func (a xy) dot(b xy) float64     { return a.X*b.X + a.Y*b.Y }
func (a xy) cross(b xy) float64   { return a.X*b.Y - a.Y*b.X }
func (a xy) dist(b xy) float64    { return math.Hypot(a.X-b.X, a.Y-b.Y) }
func (a xy) length() float64      { return math.Hypot(a.X, a.Y) }
func (a xy) norm() xy {
	l := a.length()
	if l == 0 {
		return xy{}
	}
	return xy{a.X / l, a.Y / l}
}

// profileEdge is one boundary curve of a planar profile, sampled as an
// ordered point sequence. More than two points, or coinciding endpoints,
// means the underlying curve is not straight. Profile edges are identified
// by pointer within one profile.
type profileEdge struct {
	pts []xy
}

func (e *profileEdge) start() xy { return e.pts[0] }
func (e *profileEdge) end() xy   { return e.pts[len(e.pts)-1] }

func (e *profileEdge) closedCurve() bool {
	return e.start().dist(e.end()) <= tightTol
}

func (e *profileEdge) arcLen() float64 {
	var l float64
	for i := 1; i < len(e.pts); i++ {
		l += e.pts[i].dist(e.pts[i-1])
	}
	return l
}

// profileLoop is a closed ring of profile edges in traversal order. Outer
// loops run counterclockwise (viewed from +Z), hole loops clockwise.
type profileLoop struct {
	edges []*profileEdge
}

// points returns the ring positions in traversal order, without the
// duplicated closing point.
func (l profileLoop) points() []xy {
	var out []xy
	for _, e := range l.edges {
		out = append(out, e.pts[:len(e.pts)-1]...)
	}
	return out
}

// reversed materializes the ring traversed backwards, with fresh edges.
func (l profileLoop) reversed() profileLoop {
	r := profileLoop{edges: make([]*profileEdge, len(l.edges))}
	for i, e := range l.edges {
		pts := make([]xy, len(e.pts))
		for j, p := range e.pts {
			pts[len(pts)-1-j] = p
		}
		r.edges[len(l.edges)-1-i] = &profileEdge{pts: pts}
	}
	return r
}

// signedArea returns twice the signed area of the ring (positive for
// counterclockwise).
func (l profileLoop) signedArea() float64 {
	pts := l.points()
	var a float64
	for i := range pts {
		p, q := pts[i], pts[(i+1)%len(pts)]
		a += p.cross(q)
	}
	return a
}

// contains reports whether pt lies strictly inside the ring, by at least
// margin. Even-odd ray cast over the sampled boundary.
func (l profileLoop) contains(pt xy, margin float64) bool {
	pts := l.points()
	inside := false
	for i := range pts {
		p, q := pts[i], pts[(i+1)%len(pts)]
		// distance to segment must exceed margin
		if segDist(pt, p, q) <= margin {
			return false
		}
		if (p.Y > pt.Y) != (q.Y > pt.Y) {
			x := p.X + (pt.Y-p.Y)/(q.Y-p.Y)*(q.X-p.X)
			if x > pt.X {
				inside = !inside
			}
		}
	}
	return inside
}

// containsLoop reports whether every point of inner lies strictly inside l.
func (l profileLoop) containsLoop(inner profileLoop, margin float64) bool {
	for _, p := range inner.points() {
		if !l.contains(p, margin) {
			return false
		}
	}
	return true
}

// coincides reports whether two rings describe the same boundary within tol,
// ignoring traversal origin and direction.
func (l profileLoop) coincides(o profileLoop, tol float64) bool {
	a, b := l.points(), o.points()
	if len(a) != len(b) {
		return false
	}
	sortXY(a)
	sortXY(b)
	for i := range a {
		if a[i].dist(b[i]) > tol {
			return false
		}
	}
	return true
}

func sortXY(pts []xy) {
	// insertion sort; profile rings are small
	for i := 1; i < len(pts); i++ {
		for j := i; j > 0; j-- {
			p, q := pts[j], pts[j-1]
			if q.X < p.X || (q.X == p.X && q.Y <= p.Y) {
				break
			}
			pts[j], pts[j-1] = q, p
		}
	}
}

// segDist returns the distance from pt to segment ab.
func segDist(pt, a, b xy) float64 {
	ab := b.sub(a)
	l2 := ab.dot(ab)
	if l2 == 0 {
		return pt.dist(a)
	}
	t := pt.sub(a).dot(ab) / l2
	t = math.Max(0, math.Min(1, t))
	return pt.dist(a.add(ab.mul(t)))
}

func pts3(pts []xy, z float64) []geom.Point3 {
	out := make([]geom.Point3, len(pts))
	for i, p := range pts {
		out[i] = geom.P3(p.X, p.Y, z)
	}
	return out
}

// prismInfo records that a solid is a straight prism along Z over a planar
// profile, which is the envelope mem booleans operate in.
type prismInfo struct {
	outer  profileLoop
	holes  []profileLoop
	z0, z1 float64
}

func (p *prismInfo) height() float64 { return p.z1 - p.z0 }
