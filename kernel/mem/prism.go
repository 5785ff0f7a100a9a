// Copyright 2026 The gocad Authors
// SPDX-License-Identifier: MIT

package mem

import (
	"github.com/gocad/brep/geom"
)

// prismBuilder constructs prismatic topology with shared edges: the cap
// faces and the lateral walls reference the same edgeData for a common
// boundary, never two independent copies.
type prismBuilder struct {
	horiz map[horizKey]*edgeData
	verts map[vertKey]*edgeData
}

type horizKey struct {
	pe *profileEdge
	z  float64
}

type vertKey struct {
	c      xy
	z0, z1 float64
}

func newPrismBuilder() *prismBuilder {
	return &prismBuilder{
		horiz: make(map[horizKey]*edgeData),
		verts: make(map[vertKey]*edgeData),
	}
}

// edgeAt returns the unique horizontal edge for a profile edge lifted to z,
// in the profile edge's own direction.
func (b *prismBuilder) edgeAt(pe *profileEdge, z float64) *edgeData {
	k := horizKey{pe: pe, z: z}
	if e, ok := b.horiz[k]; ok {
		return e
	}
	e := &edgeData{pts: pts3(pe.pts, z)}
	b.horiz[k] = e
	return e
}

// vertEdge returns the unique vertical edge at corner c spanning [z0, z1],
// created bottom to top.
func (b *prismBuilder) vertEdge(c xy, z0, z1 float64) *edgeData {
	k := vertKey{c: c, z0: z0, z1: z1}
	if e, ok := b.verts[k]; ok {
		return e
	}
	e := &edgeData{pts: []geom.Point3{geom.P3(c.X, c.Y, z0), geom.P3(c.X, c.Y, z1)}}
	b.verts[k] = e
	return e
}

// loopAt lifts a profile ring to z as a topological loop. forward=false
// traverses the ring backwards by referencing the same edges reversed.
func (b *prismBuilder) loopAt(pl profileLoop, z float64, forward bool) loop {
	n := len(pl.edges)
	lp := loop{edges: make([]*edgeData, n), fwd: make([]bool, n)}
	for i := 0; i < n; i++ {
		var pe *profileEdge
		if forward {
			pe = pl.edges[i]
		} else {
			pe = pl.edges[n-1-i]
		}
		lp.edges[i] = b.edgeAt(pe, z)
		lp.fwd[i] = forward
	}
	return lp
}

// capFace builds a horizontal cap from prepared loops. lps[0] is the outer
// ring; the rest are holes. Loop traversal must already agree with normal.
func capFace(lps []loop, normal geom.Vec3) *faceData {
	f := &faceData{outer: lps[0], normal: normal}
	if len(lps) > 1 {
		f.holes = append(f.holes, lps[1:]...)
	}
	return f
}

// wallFaces builds one lateral face per profile edge of the ring, spanning
// [z0, z1]. Straight profile edges become planar quads; curved ones become
// ruled walls carrying their base polyline.
func (b *prismBuilder) wallFaces(pl profileLoop, z0, z1 float64) []*faceData {
	var out []*faceData
	for _, pe := range pl.edges {
		bottom := b.edgeAt(pe, z0)
		top := b.edgeAt(pe, z1)

		var lp loop
		if pe.closedCurve() {
			lp = loop{edges: []*edgeData{bottom, top}, fwd: []bool{true, false}}
		} else {
			vs := b.vertEdge(pe.start(), z0, z1)
			ve := b.vertEdge(pe.end(), z0, z1)
			lp = loop{
				edges: []*edgeData{bottom, ve, top, vs},
				fwd:   []bool{true, true, false, false},
			}
		}

		f := &faceData{outer: lp, normal: wallNormal(pe)}
		if len(pe.pts) > 2 {
			f.wall = &wallData{base: pts3(pe.pts, z0), dir: geom.V3(0, 0, z1-z0)}
		}
		out = append(out, f)
	}
	return out
}

// wallNormal is the outward normal of a wall over a counterclockwise ring
// (or the hole-facing normal over a clockwise one), taken at the first
// segment of the profile edge.
func wallNormal(pe *profileEdge) geom.Vec3 {
	d := pe.pts[1].sub(pe.pts[0]).norm()
	return geom.V3(d.Y, -d.X, 0)
}

// prismSolid assembles a solid prism over a profile. Face order is
// deterministic: bottom cap, top cap, outer walls, hole walls.
func (k *Kernel) prismSolid(pi *prismInfo) *solidData {
	b := newPrismBuilder()

	bottomLoops := []loop{b.loopAt(pi.outer, pi.z0, false)}
	topLoops := []loop{b.loopAt(pi.outer, pi.z1, true)}
	for _, h := range pi.holes {
		bottomLoops = append(bottomLoops, b.loopAt(h, pi.z0, false))
		topLoops = append(topLoops, b.loopAt(h, pi.z1, true))
	}

	faces := []faceRef{
		{f: capFace(bottomLoops, geom.V3(0, 0, -1))},
		{f: capFace(topLoops, geom.V3(0, 0, 1))},
	}
	for _, w := range b.wallFaces(pi.outer, pi.z0, pi.z1) {
		faces = append(faces, faceRef{f: w})
	}
	for _, h := range pi.holes {
		for _, w := range b.wallFaces(h, pi.z0, pi.z1) {
			faces = append(faces, faceRef{f: w})
		}
	}

	return &solidData{shell: &shellData{faces: faces}, prism: pi}
}
