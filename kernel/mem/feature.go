// Copyright 2026 The gocad Authors
// SPDX-License-Identifier: MIT

package mem

import (
	"fmt"
	"math"

	"github.com/gocad/brep/kernel"
)

// Fillet and chamfer operate on vertical edges of z-prisms: the feature is
// applied to the profile corner and the prism rebuilt, which makes a fillet
// wall a genuine curved lateral face.

// Fillet rounds the given edges with a constant radius.
func (k *Kernel) Fillet(s kernel.Shape, edges []kernel.Shape, radius float64) (kernel.Shape, error) {
	return k.cornerFeature(s, edges, radius, true)
}

// Chamfer bevels the given edges with a constant distance. faces[i] must be
// adjacent to edges[i]; the builder uses it to anchor the distance
// direction.
func (k *Kernel) Chamfer(s kernel.Shape, edges, faces []kernel.Shape, dist float64) (kernel.Shape, error) {
	if len(faces) != len(edges) {
		return nil, fmt.Errorf("mem: chamfer needs one reference face per edge: %w", kernel.ErrWrongKind)
	}
	for i, f := range faces {
		hf, err := k.cast(f, kernel.KindFace)
		if err != nil {
			return nil, err
		}
		he, err := k.cast(edges[i], kernel.KindEdge)
		if err != nil {
			return nil, err
		}
		if !faceHasEdge(hf.data.(*faceData), he.data.(*edgeData)) {
			return nil, fmt.Errorf("mem: chamfer reference face not adjacent to edge: %w", kernel.ErrIncomplete)
		}
	}
	return k.cornerFeature(s, edges, dist, false)
}

func faceHasEdge(f *faceData, e *edgeData) bool {
	for _, lp := range append([]loop{f.outer}, f.holes...) {
		for _, fe := range lp.edges {
			if fe == e {
				return true
			}
		}
	}
	return false
}

func (k *Kernel) cornerFeature(s kernel.Shape, edges []kernel.Shape, size float64, round bool) (kernel.Shape, error) {
	h, err := k.cast(s, kernel.KindSolid)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, fmt.Errorf("mem: feature size %g: %w", size, kernel.ErrDegenerate)
	}
	pi := h.data.(*solidData).prism
	if pi == nil {
		return nil, fmt.Errorf("mem: feature on non-prismatic solid: %w", kernel.ErrIncomplete)
	}

	outer := pi.outer
	for _, e := range edges {
		he, err := k.cast(e, kernel.KindEdge)
		if err != nil {
			return nil, err
		}
		ed := he.data.(*edgeData)
		c, ok := verticalCorner(ed, pi)
		if !ok {
			return nil, fmt.Errorf("mem: feature edge is not a vertical prism edge: %w", kernel.ErrIncomplete)
		}
		outer, err = featureCorner(outer, c, size, round)
		if err != nil {
			return nil, err
		}
	}

	sd := k.prismSolid(&prismInfo{outer: outer, holes: pi.holes, z0: pi.z0, z1: pi.z1})
	return k.newShape(kernel.KindSolid, sd, false), nil
}

// verticalCorner maps a vertical prism edge to its profile corner.
func verticalCorner(e *edgeData, pi *prismInfo) (xy, bool) {
	a, b := e.start(), e.end()
	if math.Hypot(a.X-b.X, a.Y-b.Y) > tightTol {
		return xy{}, false
	}
	lo, hi := math.Min(a.Z, b.Z), math.Max(a.Z, b.Z)
	if math.Abs(lo-pi.z0) > tightTol || math.Abs(hi-pi.z1) > tightTol {
		return xy{}, false
	}
	return xy{a.X, a.Y}, true
}

// featureCorner replaces the profile corner at c with an arc (round) or a
// straight bevel. The adjacent profile edges must be straight and long
// enough to absorb the feature.
func featureCorner(pl profileLoop, c xy, size float64, round bool) (profileLoop, error) {
	n := len(pl.edges)
	at := -1
	for i, e := range pl.edges {
		if e.end().dist(c) <= 1e-6 {
			at = i
			break
		}
	}
	if at < 0 {
		return profileLoop{}, fmt.Errorf("mem: feature corner %v not on profile: %w", c, kernel.ErrIncomplete)
	}
	prev := pl.edges[at]
	next := pl.edges[(at+1)%n]
	if len(prev.pts) != 2 || len(next.pts) != 2 {
		return profileLoop{}, fmt.Errorf("mem: feature corner between curved edges: %w", kernel.ErrIncomplete)
	}

	u := prev.start().sub(c).norm() // away from corner along prev
	v := next.end().sub(c).norm()   // away from corner along next
	cosTheta := u.dot(v)
	theta := math.Acos(math.Max(-1, math.Min(1, cosTheta)))
	if theta <= tightTol || math.Pi-theta <= tightTol {
		return profileLoop{}, fmt.Errorf("mem: degenerate corner angle: %w", kernel.ErrIncomplete)
	}

	// Tangent offset along each adjacent edge.
	t := size
	if round {
		t = size / math.Tan(theta/2)
	}
	if 2*t > prev.arcLen() || 2*t > next.arcLen() {
		return profileLoop{}, fmt.Errorf("mem: feature size %g exceeds adjacent edge: %w", size, kernel.ErrIncomplete)
	}
	pPrev := c.add(u.mul(t))
	pNext := c.add(v.mul(t))

	var mid *profileEdge
	if round {
		center := c.add(u.add(v).norm().mul(size / math.Sin(theta/2)))
		mid = &profileEdge{pts: arcPoints(center, pPrev, pNext)}
	} else {
		mid = &profileEdge{pts: []xy{pPrev, pNext}}
	}

	out := profileLoop{edges: make([]*profileEdge, 0, n+1)}
	for i, e := range pl.edges {
		switch i {
		case at:
			out.edges = append(out.edges, &profileEdge{pts: []xy{e.start(), pPrev}}, mid)
		case (at + 1) % n:
			out.edges = append(out.edges, &profileEdge{pts: []xy{pNext, e.end()}})
		default:
			out.edges = append(out.edges, e)
		}
	}
	return out, nil
}

// arcPoints samples the minor arc from a to b around center.
func arcPoints(center, a, b xy) []xy {
	sa := a.sub(center)
	sb := b.sub(center)
	r := sa.length()
	a0 := math.Atan2(sa.Y, sa.X)
	a1 := math.Atan2(sb.Y, sb.X)
	d := a1 - a0
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	for d < -math.Pi {
		d += 2 * math.Pi
	}

	pts := make([]xy, arcSegments+1)
	for i := 0; i <= arcSegments; i++ {
		t := a0 + d*float64(i)/arcSegments
		pts[i] = center.add(xy{r * math.Cos(t), r * math.Sin(t)})
	}
	pts[0] = a
	pts[arcSegments] = b
	return pts
}
