// Copyright 2026 The gocad Authors
// SPDX-License-Identifier: MIT

package mem

import (
	"fmt"
	"math"

	"github.com/gocad/brep/geom"
	"github.com/gocad/brep/kernel"
)

// Validate runs the full validity check: loops must chain closed, planar
// faces must be planar within tolerance, and solids must have a closed
// shell.
func (k *Kernel) Validate(s kernel.Shape) error {
	h, ok := s.(*shape)
	if !ok || h.k != k {
		return fmt.Errorf("mem: foreign handle: %w", kernel.ErrWrongKind)
	}

	switch h.kind {
	case kernel.KindSolid:
		sd := h.data.(*solidData)
		if err := checkFaces(sd.shell); err != nil {
			return err
		}
		return checkClosed(sd.shell)
	case kernel.KindShell:
		return checkFaces(h.data.(*shellData))
	case kernel.KindFace:
		return checkFace(h.data.(*faceData))
	case kernel.KindEdge:
		if h.data.(*edgeData).length() <= tightTol {
			return fmt.Errorf("mem: zero-length edge: %w", kernel.ErrDegenerate)
		}
		return nil
	default:
		return nil
	}
}

func checkFaces(sd *shellData) error {
	if len(sd.faces) == 0 {
		return fmt.Errorf("mem: empty shell: %w", kernel.ErrDegenerate)
	}
	for i, fr := range sd.faces {
		if err := checkFace(fr.f); err != nil {
			return fmt.Errorf("mem: face %d: %w", i, err)
		}
	}
	return nil
}

func checkFace(f *faceData) error {
	for _, lp := range append([]loop{f.outer}, f.holes...) {
		if len(lp.edges) == 0 {
			return fmt.Errorf("empty loop: %w", kernel.ErrDegenerate)
		}
		for i := range lp.edges {
			end := orientedEnd(lp.edges[i], lp.fwd[i])
			j := (i + 1) % len(lp.edges)
			next := orientedStart(lp.edges[j], lp.fwd[j])
			if !end.Near(next, 1e-4) {
				return fmt.Errorf("loop gap at %v: %w", end, kernel.ErrIncomplete)
			}
		}
	}
	if f.wall == nil {
		if err := checkPlanar(f); err != nil {
			return err
		}
	}
	return nil
}

func checkPlanar(f *faceData) error {
	pts := f.outer.points()
	if len(pts) < 3 {
		return fmt.Errorf("boundary of %d points: %w", len(pts), kernel.ErrDegenerate)
	}
	var span float64
	var b geom.Bounds3
	for _, p := range pts {
		b.Extend(p)
	}
	planarTol := 1e-6 * (1 + b.Diagonal())
	origin := pts[0]
	for _, p := range pts {
		d := math.Abs(p.Sub(origin).Dot(f.normal))
		if d > span {
			span = d
		}
	}
	if span > planarTol {
		return fmt.Errorf("face deviates %g from its plane: %w", span, kernel.ErrDegenerate)
	}
	return nil
}

func checkClosed(sd *shellData) error {
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
			return fmt.Errorf("mem: shell not closed (edge used %d times): %w", c, kernel.ErrIncomplete)
		}
	}
	return nil
}

// Sew stitches disjoint faces into a shell, snapping boundary points that
// coincide within tol onto shared positions. The healing widens effective
// tolerance; it is the fallback stitching facility, not the primary
// construction path. Promotes to a solid when the stitched shell closes.
func (k *Kernel) Sew(faces []kernel.Shape, tol float64) (kernel.Shape, error) {
	if len(faces) == 0 {
		return nil, fmt.Errorf("mem: nothing to sew: %w", kernel.ErrDegenerate)
	}
	if tol < tightTol {
		tol = tightTol
	}

	// Cluster all boundary points on a tol-sized grid.
	type cell struct{ x, y, z int64 }
	reps := make(map[cell]geom.Point3)
	snap := func(p geom.Point3) geom.Point3 {
		c := cell{
			x: int64(math.Round(p.X / tol)),
			y: int64(math.Round(p.Y / tol)),
			z: int64(math.Round(p.Z / tol)),
		}
		if r, ok := reps[c]; ok {
			return r
		}
		reps[c] = p
		return p
	}

	sd := &shellData{}
	for _, f := range faces {
		h, err := k.cast(f, kernel.KindFace)
		if err != nil {
			return nil, err
		}
		src := h.data.(*faceData)
		nf := &faceData{normal: src.normal}
		for li, lp := range append([]loop{src.outer}, src.holes...) {
			nl := loop{fwd: append([]bool(nil), lp.fwd...)}
			for _, e := range lp.edges {
				pts := make([]geom.Point3, len(e.pts))
				for i, p := range e.pts {
					pts[i] = snap(p)
				}
				nl.edges = append(nl.edges, &edgeData{pts: pts})
			}
			if li == 0 {
				nf.outer = nl
			} else {
				nf.holes = append(nf.holes, nl)
			}
		}
		if src.wall != nil {
			nf.wall = &wallData{base: append([]geom.Point3(nil), src.wall.base...), dir: src.wall.dir}
		}
		sd.faces = append(sd.faces, faceRef{f: nf, rev: h.rev})
	}

	fixed := fixOrientation(sd)
	if len(fixed.faces) >= 4 && checkClosed(fixed) == nil {
		return k.newShape(kernel.KindSolid, &solidData{shell: fixed}, false), nil
	}
	return k.newShape(kernel.KindShell, fixed, false), nil
}

// fixOrientation flips faces whose effective normal points toward the shell
// centroid.
func fixOrientation(sd *shellData) *shellData {
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
	return fixed
}
