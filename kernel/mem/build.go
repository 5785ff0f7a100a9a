// Copyright 2026 The gocad Authors
// SPDX-License-Identifier: MIT

package mem

import (
	"fmt"
	"math"

	"github.com/gocad/brep/geom"
	"github.com/gocad/brep/kernel"
)

// Box builds a solid box from a corner point and three extents.
func (k *Kernel) Box(corner geom.Point3, dx, dy, dz float64) (kernel.Shape, error) {
	if dx <= 0 || dy <= 0 || dz <= 0 {
		return nil, fmt.Errorf("mem: box extents %g,%g,%g: %w", dx, dy, dz, kernel.ErrDegenerate)
	}
	c := xy{corner.X, corner.Y}
	ring := []xy{c, c.add(xy{dx, 0}), c.add(xy{dx, dy}), c.add(xy{0, dy})}
	outer := profileLoop{}
	for i := range ring {
		outer.edges = append(outer.edges, &profileEdge{pts: []xy{ring[i], ring[(i+1)%4]}})
	}
	sd := k.prismSolid(&prismInfo{outer: outer, z0: corner.Z, z1: corner.Z + dz})
	return k.newShape(kernel.KindSolid, sd, false), nil
}

// Cylinder builds a solid cylinder. mem supports the +Z axis only.
func (k *Kernel) Cylinder(base geom.Point3, axis geom.Vec3, radius, height float64) (kernel.Shape, error) {
	if radius <= 0 || height <= 0 {
		return nil, fmt.Errorf("mem: cylinder radius %g height %g: %w", radius, height, kernel.ErrDegenerate)
	}
	a := axis.Normalize()
	if a.Sub(geom.V3(0, 0, 1)).Length() > tightTol {
		return nil, fmt.Errorf("mem: cylinder axis %v: %w", axis, kernel.ErrUnsupported)
	}
	pts := make([]xy, circleSegments+1)
	for i := 0; i <= circleSegments; i++ {
		t := 2 * math.Pi * float64(i) / circleSegments
		pts[i] = xy{base.X + radius*math.Cos(t), base.Y + radius*math.Sin(t)}
	}
	pts[circleSegments] = pts[0]
	outer := profileLoop{edges: []*profileEdge{{pts: pts}}}
	sd := k.prismSolid(&prismInfo{outer: outer, z0: base.Z, z1: base.Z + height})
	return k.newShape(kernel.KindSolid, sd, false), nil
}

// Vertex builds a topological vertex at p.
func (k *Kernel) Vertex(p geom.Point3) (kernel.Shape, error) {
	return k.newShape(kernel.KindVertex, &vertexData{p: p}, false), nil
}

// Edge builds a straight edge between two vertices.
func (k *Kernel) Edge(a, b kernel.Shape) (kernel.Shape, error) {
	va, err := k.cast(a, kernel.KindVertex)
	if err != nil {
		return nil, err
	}
	vb, err := k.cast(b, kernel.KindVertex)
	if err != nil {
		return nil, err
	}
	pa := va.data.(*vertexData).p
	pb := vb.data.(*vertexData).p
	if pa.Near(pb, tightTol) {
		return nil, fmt.Errorf("mem: zero-length edge at %v: %w", pa, kernel.ErrDegenerate)
	}
	ed := &edgeData{pts: []geom.Point3{pa, pb}}
	return k.newShape(kernel.KindEdge, ed, false), nil
}

// Wire assembles oriented edges into a closed wire. Each edge's traversal
// direction is taken from its handle orientation; consecutive oriented
// endpoints must chain within tolerance.
func (k *Kernel) Wire(edges []kernel.Shape) (kernel.Shape, error) {
	if len(edges) == 0 {
		return nil, fmt.Errorf("mem: empty wire: %w", kernel.ErrDegenerate)
	}
	lp := loop{}
	for _, e := range edges {
		h, err := k.cast(e, kernel.KindEdge)
		if err != nil {
			return nil, err
		}
		lp.edges = append(lp.edges, h.data.(*edgeData))
		lp.fwd = append(lp.fwd, !h.rev)
	}
	for i := range lp.edges {
		end := orientedEnd(lp.edges[i], lp.fwd[i])
		next := orientedStart(lp.edges[(i+1)%len(lp.edges)], lp.fwd[(i+1)%len(lp.edges)])
		if !end.Near(next, 1e-4) {
			return nil, fmt.Errorf("mem: wire gap at %v: %w", end, kernel.ErrIncomplete)
		}
	}
	return k.newShape(kernel.KindWire, &wireData{lp: lp}, false), nil
}

func orientedStart(e *edgeData, fwd bool) geom.Point3 {
	if fwd {
		return e.start()
	}
	return e.end()
}

func orientedEnd(e *edgeData, fwd bool) geom.Point3 {
	if fwd {
		return e.end()
	}
	return e.start()
}

// Face builds a face bounded by a closed outer wire; additional wires
// become hole boundaries. The surface normal is the mean plane of the
// outer boundary; mildly non-planar boundaries are accepted and treated as
// ruled patches.
func (k *Kernel) Face(wire kernel.Shape, holes ...kernel.Shape) (kernel.Shape, error) {
	h, err := k.cast(wire, kernel.KindWire)
	if err != nil {
		return nil, err
	}
	lp := h.data.(*wireData).lp
	n := newellNormal(lp.points())
	if n.Length() == 0 {
		return nil, fmt.Errorf("mem: degenerate face boundary: %w", kernel.ErrDegenerate)
	}
	fd := &faceData{outer: lp, normal: n}
	for _, hw := range holes {
		hh, err := k.cast(hw, kernel.KindWire)
		if err != nil {
			return nil, err
		}
		fd.holes = append(fd.holes, hh.data.(*wireData).lp)
	}
	return k.newShape(kernel.KindFace, fd, false), nil
}

// Shell assembles faces into a shell. Face handles remain caller-owned; the
// shell references their payloads.
func (k *Kernel) Shell(faces []kernel.Shape) (kernel.Shape, error) {
	if len(faces) == 0 {
		return nil, fmt.Errorf("mem: empty shell: %w", kernel.ErrDegenerate)
	}
	sd := &shellData{}
	for _, f := range faces {
		h, err := k.cast(f, kernel.KindFace)
		if err != nil {
			return nil, err
		}
		sd.faces = append(sd.faces, faceRef{f: h.data.(*faceData), rev: h.rev})
	}
	return k.newShape(kernel.KindShell, sd, false), nil
}

// FixShellOrientation flips faces whose effective normal points toward the
// shell centroid. The heuristic assumes a roughly convex outer boundary;
// hole walls in open shells may stay inverted.
func (k *Kernel) FixShellOrientation(shell kernel.Shape) (kernel.Shape, error) {
	h, err := k.cast(shell, kernel.KindShell)
	if err != nil {
		return nil, err
	}
	sd := h.data.(*shellData)

	var centroid geom.Point3
	for _, fr := range sd.faces {
		c := fr.f.center()
		centroid.X += c.X
		centroid.Y += c.Y
		centroid.Z += c.Z
	}
	n := float64(len(sd.faces))
	centroid = geom.P3(centroid.X/n, centroid.Y/n, centroid.Z/n)

	fixed := &shellData{faces: make([]faceRef, len(sd.faces))}
	for i, fr := range sd.faces {
		eff := fr.f.normal
		if fr.rev {
			eff = eff.Neg()
		}
		out := fr.f.center().Sub(centroid)
		flip := out.Length() > tightTol && eff.Dot(out) < 0
		fixed.faces[i] = faceRef{f: fr.f, rev: fr.rev != flip}
	}
	return k.newShape(kernel.KindShell, fixed, false), nil
}

// SolidFromShell promotes a closed shell to a solid. Closure requires every
// boundary edge to be used by exactly two faces (shared edges are matched by
// identity, independently built ones geometrically).
func (k *Kernel) SolidFromShell(shell kernel.Shape) (kernel.Shape, error) {
	h, err := k.cast(shell, kernel.KindShell)
	if err != nil {
		return nil, err
	}
	sd := h.data.(*shellData)
	if len(sd.faces) < 4 {
		return nil, fmt.Errorf("mem: shell of %d faces cannot close: %w", len(sd.faces), kernel.ErrIncomplete)
	}
	use := make(map[edgeKey]int)
	for _, fr := range sd.faces {
		for _, lp := range append([]loop{fr.f.outer}, fr.f.holes...) {
			for _, e := range lp.edges {
				use[keyOfEdge(e)]++
			}
		}
	}
	for _, c := range use {
		if c != 2 {
			return nil, fmt.Errorf("mem: shell not closed (edge used %d times): %w", c, kernel.ErrIncomplete)
		}
	}
	solid := &solidData{shell: &shellData{faces: append([]faceRef(nil), sd.faces...)}}
	return k.newShape(kernel.KindSolid, solid, false), nil
}

// Prism extrudes a planar face along dir. mem supports horizontal faces
// extruded vertically.
func (k *Kernel) Prism(profile kernel.Shape, dir geom.Vec3) (kernel.Shape, error) {
	h, err := k.cast(profile, kernel.KindFace)
	if err != nil {
		return nil, err
	}
	fd := h.data.(*faceData)
	if dir.Length() == 0 {
		return nil, fmt.Errorf("mem: zero extrusion vector: %w", kernel.ErrDegenerate)
	}
	if math.Abs(dir.X) > tightTol || math.Abs(dir.Y) > tightTol {
		return nil, fmt.Errorf("mem: extrusion direction %v: %w", dir, kernel.ErrUnsupported)
	}
	if math.Abs(fd.normal.X) > 1e-6 || math.Abs(fd.normal.Y) > 1e-6 {
		return nil, fmt.Errorf("mem: profile face not horizontal: %w", kernel.ErrUnsupported)
	}

	zf := fd.outer.points()[0].Z
	outer, err := loopToProfile(fd.outer, true)
	if err != nil {
		return nil, err
	}
	var holes []profileLoop
	for _, hlp := range fd.holes {
		pl, err := loopToProfile(hlp, false)
		if err != nil {
			return nil, err
		}
		holes = append(holes, pl)
	}

	z0, z1 := zf, zf+dir.Z
	if z1 < z0 {
		z0, z1 = z1, z0
	}
	sd := k.prismSolid(&prismInfo{outer: outer, holes: holes, z0: z0, z1: z1})
	return k.newShape(kernel.KindSolid, sd, false), nil
}

// loopToProfile projects a horizontal loop to 2D, normalizing winding:
// counterclockwise when ccw is true, clockwise otherwise.
func loopToProfile(lp loop, ccw bool) (profileLoop, error) {
	pl := profileLoop{}
	for i, e := range lp.edges {
		src := e.pts
		pts := make([]xy, len(src))
		for j, p := range src {
			if lp.fwd[i] {
				pts[j] = xy{p.X, p.Y}
			} else {
				pts[len(src)-1-j] = xy{p.X, p.Y}
			}
		}
		pl.edges = append(pl.edges, &profileEdge{pts: pts})
	}
	if (pl.signedArea() > 0) != ccw {
		pl = pl.reversed()
	}
	return pl, nil
}

// Translated returns a rigidly translated copy of a shape, built by a
// copying transform: all payloads are duplicated, preserving edge sharing.
func (k *Kernel) Translated(s kernel.Shape, delta geom.Vec3) (kernel.Shape, error) {
	h, ok := s.(*shape)
	if !ok || h.k != k {
		return nil, fmt.Errorf("mem: foreign handle: %w", kernel.ErrWrongKind)
	}
	t := &translator{delta: delta, edges: make(map[*edgeData]*edgeData)}
	switch h.kind {
	case kernel.KindSolid:
		sd := h.data.(*solidData)
		nd := &solidData{shell: t.shell(sd.shell)}
		if sd.prism != nil {
			nd.prism = t.prism(sd.prism)
		}
		return k.newShape(kernel.KindSolid, nd, h.rev), nil
	case kernel.KindShell:
		return k.newShape(kernel.KindShell, t.shell(h.data.(*shellData)), h.rev), nil
	case kernel.KindFace:
		return k.newShape(kernel.KindFace, t.face(h.data.(*faceData)), h.rev), nil
	case kernel.KindVertex:
		vd := h.data.(*vertexData)
		return k.newShape(kernel.KindVertex, &vertexData{p: vd.p.Add(delta)}, h.rev), nil
	default:
		return nil, fmt.Errorf("mem: translate %s: %w", h.kind, kernel.ErrUnsupported)
	}
}

type translator struct {
	delta geom.Vec3
	edges map[*edgeData]*edgeData
}

func (t *translator) edge(e *edgeData) *edgeData {
	if ne, ok := t.edges[e]; ok {
		return ne
	}
	pts := make([]geom.Point3, len(e.pts))
	for i, p := range e.pts {
		pts[i] = p.Add(t.delta)
	}
	ne := &edgeData{pts: pts}
	t.edges[e] = ne
	return ne
}

func (t *translator) loop(lp loop) loop {
	nl := loop{edges: make([]*edgeData, len(lp.edges)), fwd: append([]bool(nil), lp.fwd...)}
	for i, e := range lp.edges {
		nl.edges[i] = t.edge(e)
	}
	return nl
}

func (t *translator) face(f *faceData) *faceData {
	nf := &faceData{outer: t.loop(f.outer), normal: f.normal}
	for _, h := range f.holes {
		nf.holes = append(nf.holes, t.loop(h))
	}
	if f.wall != nil {
		base := make([]geom.Point3, len(f.wall.base))
		for i, p := range f.wall.base {
			base[i] = p.Add(t.delta)
		}
		nf.wall = &wallData{base: base, dir: f.wall.dir}
	}
	return nf
}

func (t *translator) shell(sd *shellData) *shellData {
	ns := &shellData{faces: make([]faceRef, len(sd.faces))}
	for i, fr := range sd.faces {
		ns.faces[i] = faceRef{f: t.face(fr.f), rev: fr.rev}
	}
	return ns
}

func (t *translator) prism(p *prismInfo) *prismInfo {
	shift := func(l profileLoop) profileLoop {
		nl := profileLoop{edges: make([]*profileEdge, len(l.edges))}
		for i, e := range l.edges {
			pts := make([]xy, len(e.pts))
			for j, q := range e.pts {
				pts[j] = xy{q.X + t.delta.X, q.Y + t.delta.Y}
			}
			nl.edges[i] = &profileEdge{pts: pts}
		}
		return nl
	}
	np := &prismInfo{outer: shift(p.outer), z0: p.z0 + t.delta.Z, z1: p.z1 + t.delta.Z}
	for _, h := range p.holes {
		np.holes = append(np.holes, shift(h))
	}
	return np
}
