// Copyright 2026 The gocad Authors
// SPDX-License-Identifier: MIT

package mem

import (
	"fmt"
	"math"

	"github.com/gocad/brep/geom"
	"github.com/gocad/brep/kernel"
)

// Triangulate meshes one face. Ruled walls triangulate as a swept strip;
// planar faces project onto their mean plane and ear-clip, bridging hole
// loops into the outer ring. Triangles are wound to agree with the face's
// intrinsic normal and use 1-based corner indices.
//
// mem discretizes curves at construction time, so deflection and angular
// only matter to kernels with analytic surfaces; they are accepted and
// ignored here.
func (k *Kernel) Triangulate(face kernel.Shape, deflection, angular float64) (*kernel.Triangulation, error) {
	h, err := k.cast(face, kernel.KindFace)
	if err != nil {
		return nil, err
	}
	fd := h.data.(*faceData)

	if fd.wall != nil {
		return wallTriangulation(fd.wall), nil
	}
	return planarTriangulation(fd)
}

// wallTriangulation meshes a ruled wall as quads split into triangles.
func wallTriangulation(w *wallData) *kernel.Triangulation {
	n := len(w.base)
	nodes := make([]geom.Point3, 0, 2*n)
	nodes = append(nodes, w.base...)
	for _, p := range w.base {
		nodes = append(nodes, p.Add(w.dir))
	}

	var tris [][3]int
	for i := 0; i < n-1; i++ {
		b0, b1 := i+1, i+2 // 1-based
		t0, t1 := n+i+1, n+i+2
		tris = append(tris, [3]int{b0, b1, t1}, [3]int{b0, t1, t0})
	}
	return &kernel.Triangulation{Nodes: nodes, Triangles: tris}
}

func planarTriangulation(fd *faceData) (*kernel.Triangulation, error) {
	outer := fd.outer.points()
	if len(outer) < 3 {
		return nil, fmt.Errorf("mem: face boundary of %d points: %w", len(outer), kernel.ErrDegenerate)
	}

	// Projection basis with u x v = normal, so counterclockwise 2D
	// triangles face along the intrinsic normal.
	n := fd.normal
	var a geom.Vec3
	if math.Abs(n.Z) < 0.9 {
		a = geom.V3(0, 0, 1)
	} else {
		a = geom.V3(1, 0, 0)
	}
	u := a.Cross(n).Normalize()
	v := n.Cross(u)
	origin := outer[0]
	project := func(p geom.Point3) xy {
		d := p.Sub(origin)
		return xy{d.Dot(u), d.Dot(v)}
	}

	var nodes []geom.Point3
	var pts2 []xy
	addLoop := func(lp []geom.Point3) []int {
		idx := make([]int, len(lp))
		for i, p := range lp {
			idx[i] = len(nodes)
			nodes = append(nodes, p)
			pts2 = append(pts2, project(p))
		}
		return idx
	}

	ring := addLoop(outer)
	for _, hl := range fd.holes {
		hole := addLoop(hl.points())
		ring = mergeHole(pts2, ring, hole)
	}

	tris := earClip(pts2, ring)
	out := make([][3]int, len(tris))
	for i, t := range tris {
		out[i] = [3]int{t[0] + 1, t[1] + 1, t[2] + 1}
	}
	return &kernel.Triangulation{Nodes: nodes, Triangles: out}, nil
}

// mergeHole splices a hole ring into the outer ring with a keyhole bridge.
// The hole must wind opposite to the outer ring.
func mergeHole(pts2 []xy, ring, hole []int) []int {
	// Bridge from the hole's rightmost vertex.
	m := 0
	for i, idx := range hole {
		if pts2[idx].X > pts2[hole[m]].X {
			m = i
		}
	}
	hm := pts2[hole[m]]

	// Target: nearest outer vertex whose bridge segment crosses no outer
	// edge. Falls back to plain nearest if none qualifies.
	best, bestOK := -1, -1
	bestD, bestOKD := math.MaxFloat64, math.MaxFloat64
	for i, idx := range ring {
		d := pts2[idx].dist(hm)
		if d < bestD {
			best, bestD = i, d
		}
		if d < bestOKD && !bridgeCrosses(pts2, ring, hm, pts2[idx]) {
			bestOK, bestOKD = i, d
		}
	}
	i := best
	if bestOK >= 0 {
		i = bestOK
	}

	// ..., ring[i], hole[m..], hole[..m], hole[m], ring[i], ...
	merged := make([]int, 0, len(ring)+len(hole)+2)
	merged = append(merged, ring[:i+1]...)
	for j := 0; j < len(hole); j++ {
		merged = append(merged, hole[(m+j)%len(hole)])
	}
	merged = append(merged, hole[m], ring[i])
	merged = append(merged, ring[i+1:]...)
	return merged
}

// bridgeCrosses reports whether segment a-b properly intersects any ring
// edge not incident to b.
func bridgeCrosses(pts2 []xy, ring []int, a, b xy) bool {
	for i := range ring {
		p := pts2[ring[i]]
		q := pts2[ring[(i+1)%len(ring)]]
		if p.dist(b) <= tightTol || q.dist(b) <= tightTol {
			continue
		}
		if segmentsCross(a, b, p, q) {
			return true
		}
	}
	return false
}

func segmentsCross(a, b, c, d xy) bool {
	d1 := b.sub(a).cross(c.sub(a))
	d2 := b.sub(a).cross(d.sub(a))
	d3 := d.sub(c).cross(a.sub(c))
	d4 := d.sub(c).cross(b.sub(c))
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// earClip triangulates a counterclockwise simple polygon given as a ring of
// indices into pts2. Bridge duplicates (same index twice) are handled by
// skipping corner indices in the containment test.
func earClip(pts2 []xy, ring []int) [][3]int {
	r := append([]int(nil), ring...)
	var tris [][3]int

	const eps = 1e-12
	guard := 0
	maxGuard := len(r) * len(r) * 4

	for len(r) > 3 {
		guard++
		if guard > maxGuard {
			break
		}
		clipped := false
		for i := 0; i < len(r); i++ {
			ia := r[(i+len(r)-1)%len(r)]
			ib := r[i]
			ic := r[(i+1)%len(r)]
			a, b, c := pts2[ia], pts2[ib], pts2[ic]

			cross := b.sub(a).cross(c.sub(b))
			if cross < eps {
				if cross > -eps && a.dist(c) <= tightTol {
					// collapsed sliver from a bridge; drop it
					r = append(r[:i], r[i+1:]...)
					clipped = true
					break
				}
				continue
			}
			if anyInside(pts2, r, ia, ib, ic, a, b, c) {
				continue
			}
			tris = append(tris, [3]int{ia, ib, ic})
			r = append(r[:i], r[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			// No clean ear; clip the first convex corner regardless to
			// guarantee progress on near-degenerate input.
			for i := 0; i < len(r); i++ {
				ia := r[(i+len(r)-1)%len(r)]
				ib := r[i]
				ic := r[(i+1)%len(r)]
				if pts2[ib].sub(pts2[ia]).cross(pts2[ic].sub(pts2[ib])) > eps {
					tris = append(tris, [3]int{ia, ib, ic})
					r = append(r[:i], r[i+1:]...)
					clipped = true
					break
				}
			}
			if !clipped {
				break
			}
		}
	}
	if len(r) == 3 {
		tris = append(tris, [3]int{r[0], r[1], r[2]})
	}
	return tris
}

// anyInside reports whether any ring vertex other than the corners lies
// strictly inside triangle abc.
func anyInside(pts2 []xy, r []int, ia, ib, ic int, a, b, c xy) bool {
	const eps = 1e-12
	for _, j := range r {
		if j == ia || j == ib || j == ic {
			continue
		}
		p := pts2[j]
		if b.sub(a).cross(p.sub(a)) > eps &&
			c.sub(b).cross(p.sub(b)) > eps &&
			a.sub(c).cross(p.sub(c)) > eps {
			return true
		}
	}
	return false
}
