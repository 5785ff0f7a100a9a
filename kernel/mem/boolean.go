// Copyright 2026 The gocad Authors
// SPDX-License-Identifier: MIT

package mem

import (
	"fmt"
	"math"

	"github.com/gocad/brep/geom"
	"github.com/gocad/brep/kernel"
)

// booleans operate on coaxial z-prisms. Operands outside that envelope make
// the kernel report the boolean as incomplete, exactly like a full kernel
// that fails to resolve an intersection.

// prismOperands extracts prism descriptions from two solid handles.
func (k *Kernel) prismOperands(a, b kernel.Shape) (*prismInfo, *prismInfo, error) {
	ha, err := k.cast(a, kernel.KindSolid)
	if err != nil {
		return nil, nil, err
	}
	hb, err := k.cast(b, kernel.KindSolid)
	if err != nil {
		return nil, nil, err
	}
	pa := ha.data.(*solidData).prism
	pb := hb.data.(*solidData).prism
	if pa == nil || pb == nil {
		return nil, nil, fmt.Errorf("mem: boolean on non-prismatic solids: %w", kernel.ErrIncomplete)
	}
	return pa, pb, nil
}

// coincidence tolerance for a boolean: the tight tolerance unless the
// caller relaxed it.
func boolTol(fuzz float64) float64 {
	if fuzz > tightTol {
		return fuzz
	}
	return tightTol
}

// Cut returns the boolean difference a minus b.
func (k *Kernel) Cut(a, b kernel.Shape, fuzz float64) (kernel.Shape, error) {
	pa, pb, err := k.prismOperands(a, b)
	if err != nil {
		return nil, err
	}
	tol := boolTol(fuzz)

	// Tool pierces the target completely and its profile sits strictly
	// inside: the cut is a through-hole.
	if len(pb.holes) == 0 &&
		pb.z0 <= pa.z0+tol && pb.z1 >= pa.z1-tol &&
		pa.outer.containsLoop(pb.outer, tol) &&
		holesClearOf(pa.holes, pb.outer, tol) {
		holes := append(append([]profileLoop(nil), pa.holes...), pb.outer.reversed())
		sd := k.prismSolid(&prismInfo{outer: pa.outer, holes: holes, z0: pa.z0, z1: pa.z1})
		return k.newShape(kernel.KindSolid, sd, false), nil
	}

	// Tool shares the target's profile: the cut is height arithmetic.
	if profilesMatch(pa, pb, tol) {
		lo, hi := pa.z0, pa.z1
		switch {
		case pb.z0 <= lo+tol && pb.z1 >= hi-tol:
			return nil, fmt.Errorf("mem: cut removes the whole solid: %w", kernel.ErrNullShape)
		case pb.z0 <= lo+tol && pb.z1 > lo:
			lo = pb.z1
		case pb.z1 >= hi-tol && pb.z0 < hi:
			hi = pb.z0
		case pb.z1 <= lo || pb.z0 >= hi:
			// Disjoint: nothing removed.
		default:
			return nil, fmt.Errorf("mem: cut splits solid in two: %w", kernel.ErrIncomplete)
		}
		if hi-lo <= tol {
			return nil, fmt.Errorf("mem: cut leaves a sliver: %w", kernel.ErrNullShape)
		}
		sd := k.prismSolid(&prismInfo{outer: pa.outer, holes: pa.holes, z0: lo, z1: hi})
		return k.newShape(kernel.KindSolid, sd, false), nil
	}

	return nil, fmt.Errorf("mem: cut outside prismatic envelope: %w", kernel.ErrIncomplete)
}

// Fuse returns the boolean union of two solids.
func (k *Kernel) Fuse(a, b kernel.Shape, fuzz float64) (kernel.Shape, error) {
	pa, pb, err := k.prismOperands(a, b)
	if err != nil {
		return nil, err
	}
	tol := boolTol(fuzz)

	// Same profile, contiguous height ranges: one taller prism.
	if profilesMatch(pa, pb, tol) {
		if math.Max(pa.z0, pb.z0) > math.Min(pa.z1, pb.z1)+tol {
			return nil, fmt.Errorf("mem: fuse of disjoint prisms: %w", kernel.ErrIncomplete)
		}
		sd := k.prismSolid(&prismInfo{
			outer: pa.outer,
			holes: pa.holes,
			z0:    math.Min(pa.z0, pb.z0),
			z1:    math.Max(pa.z1, pb.z1),
		})
		return k.newShape(kernel.KindSolid, sd, false), nil
	}

	// Tool profile strictly inside, seated on the target's top: a boss.
	if len(pb.holes) == 0 &&
		math.Abs(pb.z0-pa.z1) <= tol && pb.z1 > pa.z1 &&
		pa.outer.containsLoop(pb.outer, tol) &&
		holesClearOf(pa.holes, pb.outer, tol) {
		return k.newShape(kernel.KindSolid, k.bossSolid(pa, pb), false), nil
	}
	// Or seated under the bottom.
	if len(pb.holes) == 0 &&
		math.Abs(pb.z1-pa.z0) <= tol && pb.z0 < pa.z0 &&
		pa.outer.containsLoop(pb.outer, tol) &&
		holesClearOf(pa.holes, pb.outer, tol) {
		return k.newShape(kernel.KindSolid, k.bossSolidBelow(pa, pb), false), nil
	}

	return nil, fmt.Errorf("mem: fuse outside prismatic envelope: %w", kernel.ErrIncomplete)
}

// bossSolid assembles target pa with tool pb standing on its top face.
func (k *Kernel) bossSolid(pa, pb *prismInfo) *solidData {
	b := newPrismBuilder()

	bottomLoops := []loop{b.loopAt(pa.outer, pa.z0, false)}
	for _, h := range pa.holes {
		bottomLoops = append(bottomLoops, b.loopAt(h, pa.z0, false))
	}
	// Ring cap: the target's top with the tool's footprint opened.
	ringLoops := []loop{b.loopAt(pa.outer, pa.z1, true)}
	for _, h := range pa.holes {
		ringLoops = append(ringLoops, b.loopAt(h, pa.z1, true))
	}
	ringLoops = append(ringLoops, b.loopAt(pb.outer, pa.z1, false))
	topLoops := []loop{b.loopAt(pb.outer, pb.z1, true)}

	faces := []faceRef{
		{f: capFace(bottomLoops, geom.V3(0, 0, -1))},
		{f: capFace(ringLoops, geom.V3(0, 0, 1))},
		{f: capFace(topLoops, geom.V3(0, 0, 1))},
	}
	for _, w := range b.wallFaces(pa.outer, pa.z0, pa.z1) {
		faces = append(faces, faceRef{f: w})
	}
	for _, h := range pa.holes {
		for _, w := range b.wallFaces(h, pa.z0, pa.z1) {
			faces = append(faces, faceRef{f: w})
		}
	}
	for _, w := range b.wallFaces(pb.outer, pa.z1, pb.z1) {
		faces = append(faces, faceRef{f: w})
	}
	return &solidData{shell: &shellData{faces: faces}}
}

// bossSolidBelow mirrors bossSolid for a tool hanging under the bottom.
func (k *Kernel) bossSolidBelow(pa, pb *prismInfo) *solidData {
	b := newPrismBuilder()

	topLoops := []loop{b.loopAt(pa.outer, pa.z1, true)}
	for _, h := range pa.holes {
		topLoops = append(topLoops, b.loopAt(h, pa.z1, true))
	}
	ringLoops := []loop{b.loopAt(pa.outer, pa.z0, false)}
	for _, h := range pa.holes {
		ringLoops = append(ringLoops, b.loopAt(h, pa.z0, false))
	}
	ringLoops = append(ringLoops, b.loopAt(pb.outer, pa.z0, true))
	bottomLoops := []loop{b.loopAt(pb.outer, pb.z0, false)}

	faces := []faceRef{
		{f: capFace(bottomLoops, geom.V3(0, 0, -1))},
		{f: capFace(ringLoops, geom.V3(0, 0, -1))},
		{f: capFace(topLoops, geom.V3(0, 0, 1))},
	}
	for _, w := range b.wallFaces(pa.outer, pa.z0, pa.z1) {
		faces = append(faces, faceRef{f: w})
	}
	for _, h := range pa.holes {
		for _, w := range b.wallFaces(h, pa.z0, pa.z1) {
			faces = append(faces, faceRef{f: w})
		}
	}
	for _, w := range b.wallFaces(pb.outer, pb.z0, pa.z0) {
		faces = append(faces, faceRef{f: w})
	}
	return &solidData{shell: &shellData{faces: faces}}
}

// profilesMatch reports whether two prisms have coinciding cross sections.
func profilesMatch(pa, pb *prismInfo, tol float64) bool {
	if !pa.outer.coincides(pb.outer, tol) {
		return false
	}
	if len(pa.holes) != len(pb.holes) {
		return false
	}
	used := make([]bool, len(pb.holes))
	for _, ha := range pa.holes {
		found := false
		for i, hb := range pb.holes {
			if !used[i] && ha.coincides(hb, tol) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// holesClearOf reports whether the tool ring avoids all existing holes.
func holesClearOf(holes []profileLoop, tool profileLoop, tol float64) bool {
	for _, h := range holes {
		for _, p := range tool.points() {
			if h.contains(p, 0) {
				return false
			}
		}
		for _, p := range h.points() {
			if tool.contains(p, 0) {
				return false
			}
		}
	}
	return true
}
