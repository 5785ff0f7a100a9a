// Copyright 2026 The gocad Authors
// SPDX-License-Identifier: MIT

package mem_test

import (
	"errors"
	"math"
	"testing"

	"github.com/gocad/brep/geom"
	"github.com/gocad/brep/kernel"
	"github.com/gocad/brep/kernel/mem"
)

func mustSubShapes(t *testing.T, k kernel.Kernel, s kernel.Shape, kind kernel.ShapeKind) []kernel.Shape {
	t.Helper()
	subs, err := k.SubShapes(s, kind)
	if err != nil {
		t.Fatalf("SubShapes(%v): %v", kind, err)
	}
	return subs
}

func releaseAll(shapes []kernel.Shape) {
	for _, s := range shapes {
		s.Release()
	}
}

func TestBoxTopology(t *testing.T) {
	k := mem.New()
	box, err := k.Box(geom.P3(0, 0, 0), 4, 3, 2)
	if err != nil {
		t.Fatalf("Box: %v", err)
	}
	defer box.Release()

	faces := mustSubShapes(t, k, box, kernel.KindFace)
	edges := mustSubShapes(t, k, box, kernel.KindEdge)
	verts := mustSubShapes(t, k, box, kernel.KindVertex)
	defer releaseAll(faces)
	defer releaseAll(edges)
	defer releaseAll(verts)

	if got, want := len(faces), 6; got != want {
		t.Errorf("faces = %d, want %d", got, want)
	}
	if got, want := len(edges), 12; got != want {
		t.Errorf("edges = %d, want %d", got, want)
	}
	if got, want := len(verts), 8; got != want {
		t.Errorf("vertices = %d, want %d", got, want)
	}

	b, err := k.Bounds(box)
	if err != nil {
		t.Fatalf("Bounds: %v", err)
	}
	if !b.Min.Near(geom.P3(0, 0, 0), 1e-9) || !b.Max.Near(geom.P3(4, 3, 2), 1e-9) {
		t.Errorf("bounds = %v..%v, want (0 0 0)..(4 3 2)", b.Min, b.Max)
	}

	if err := k.Validate(box); err != nil {
		t.Errorf("Validate(box) = %v, want nil", err)
	}
}

func TestBoxEnumerationIsStable(t *testing.T) {
	k := mem.New()
	box, err := k.Box(geom.P3(0, 0, 0), 1, 1, 1)
	if err != nil {
		t.Fatalf("Box: %v", err)
	}
	defer box.Release()

	first := mustSubShapes(t, k, box, kernel.KindEdge)
	second := mustSubShapes(t, k, box, kernel.KindEdge)
	defer releaseAll(first)
	defer releaseAll(second)

	if len(first) != len(second) {
		t.Fatalf("edge count changed: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !k.Same(first[i], second[i]) {
			t.Errorf("edge %d differs between enumerations", i)
		}
	}
}

func TestCylinderTopology(t *testing.T) {
	k := mem.New()
	cyl, err := k.Cylinder(geom.P3(0, 0, 0), geom.V3(0, 0, 1), 2, 5)
	if err != nil {
		t.Fatalf("Cylinder: %v", err)
	}
	defer cyl.Release()

	faces := mustSubShapes(t, k, cyl, kernel.KindFace)
	edges := mustSubShapes(t, k, cyl, kernel.KindEdge)
	defer releaseAll(faces)
	defer releaseAll(edges)

	// Two caps and one lateral wall; two circular seam edges.
	if got, want := len(faces), 3; got != want {
		t.Errorf("faces = %d, want %d", got, want)
	}
	if got, want := len(edges), 2; got != want {
		t.Errorf("edges = %d, want %d", got, want)
	}
	for i, e := range edges {
		a, b, err := k.EdgeEnds(e)
		if err != nil {
			t.Fatalf("EdgeEnds(%d): %v", i, err)
		}
		if !a.Near(b, 1e-9) {
			t.Errorf("seam edge %d ends %v, %v: want coincident", i, a, b)
		}
	}

	if err := k.Validate(cyl); err != nil {
		t.Errorf("Validate(cylinder) = %v, want nil", err)
	}
}

func TestWireAndFaceFromEdges(t *testing.T) {
	k := mem.New()
	pts := []geom.Point3{
		geom.P3(0, 0, 0), geom.P3(2, 0, 0), geom.P3(2, 2, 0), geom.P3(0, 2, 0),
	}
	var verts []kernel.Shape
	for _, p := range pts {
		v, err := k.Vertex(p)
		if err != nil {
			t.Fatalf("Vertex: %v", err)
		}
		verts = append(verts, v)
	}
	defer releaseAll(verts)

	var edges []kernel.Shape
	for i := range pts {
		e, err := k.Edge(verts[i], verts[(i+1)%4])
		if err != nil {
			t.Fatalf("Edge %d: %v", i, err)
		}
		edges = append(edges, e)
	}
	defer releaseAll(edges)

	wire, err := k.Wire(edges)
	if err != nil {
		t.Fatalf("Wire: %v", err)
	}
	defer wire.Release()

	face, err := k.Face(wire)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	defer face.Release()

	n, err := k.FaceNormal(face)
	if err != nil {
		t.Fatalf("FaceNormal: %v", err)
	}
	if math.Abs(math.Abs(n.Z)-1) > 1e-9 {
		t.Errorf("normal = %v, want +-Z", n)
	}

	we, fwd, err := k.WireEdges(wire)
	if err != nil {
		t.Fatalf("WireEdges: %v", err)
	}
	defer releaseAll(we)
	if len(we) != 4 || len(fwd) != 4 {
		t.Fatalf("wire has %d edges, want 4", len(we))
	}
	// Oriented ends chain head to tail.
	for i := range we {
		_, end, err := k.EdgeEnds(we[i])
		if err != nil {
			t.Fatalf("EdgeEnds: %v", err)
		}
		start, _, err := k.EdgeEnds(we[(i+1)%len(we)])
		if err != nil {
			t.Fatalf("EdgeEnds: %v", err)
		}
		if !end.Near(start, 1e-9) {
			t.Errorf("edge %d ends at %v, next starts at %v", i, end, start)
		}
	}
}

func TestWireRejectsGap(t *testing.T) {
	k := mem.New()
	v := func(x, y float64) kernel.Shape {
		s, err := k.Vertex(geom.P3(x, y, 0))
		if err != nil {
			t.Fatalf("Vertex: %v", err)
		}
		return s
	}
	a, b, c, d := v(0, 0), v(1, 0), v(5, 5), v(0, 1)
	defer releaseAll([]kernel.Shape{a, b, c, d})

	e1, err := k.Edge(a, b)
	if err != nil {
		t.Fatalf("Edge: %v", err)
	}
	e2, err := k.Edge(c, d)
	if err != nil {
		t.Fatalf("Edge: %v", err)
	}
	defer e1.Release()
	defer e2.Release()

	if _, err := k.Wire([]kernel.Shape{e1, e2}); !errors.Is(err, kernel.ErrIncomplete) {
		t.Errorf("Wire with gap = %v, want ErrIncomplete", err)
	}
}

func TestPrismFromFace(t *testing.T) {
	k := mem.New()
	// Square profile at z=0 extruded to z=3.
	var verts, edges []kernel.Shape
	pts := []geom.Point3{
		geom.P3(0, 0, 0), geom.P3(2, 0, 0), geom.P3(2, 2, 0), geom.P3(0, 2, 0),
	}
	for _, p := range pts {
		v, _ := k.Vertex(p)
		verts = append(verts, v)
	}
	for i := range pts {
		e, _ := k.Edge(verts[i], verts[(i+1)%4])
		edges = append(edges, e)
	}
	defer releaseAll(verts)
	defer releaseAll(edges)

	wire, err := k.Wire(edges)
	if err != nil {
		t.Fatalf("Wire: %v", err)
	}
	defer wire.Release()
	face, err := k.Face(wire)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	defer face.Release()

	solid, err := k.Prism(face, geom.V3(0, 0, 3))
	if err != nil {
		t.Fatalf("Prism: %v", err)
	}
	defer solid.Release()

	if solid.Kind() != kernel.KindSolid {
		t.Fatalf("Kind = %v, want solid", solid.Kind())
	}
	faces := mustSubShapes(t, k, solid, kernel.KindFace)
	defer releaseAll(faces)
	if got, want := len(faces), 6; got != want {
		t.Errorf("faces = %d, want %d", got, want)
	}
	b, err := k.Bounds(solid)
	if err != nil {
		t.Fatalf("Bounds: %v", err)
	}
	if math.Abs(b.Max.Z-3) > 1e-9 {
		t.Errorf("top z = %g, want 3", b.Max.Z)
	}
}

func TestCutThroughHole(t *testing.T) {
	k := mem.New()
	box, err := k.Box(geom.P3(0, 0, 0), 10, 10, 10)
	if err != nil {
		t.Fatalf("Box: %v", err)
	}
	defer box.Release()
	tool, err := k.Cylinder(geom.P3(5, 5, -1), geom.V3(0, 0, 1), 2, 12)
	if err != nil {
		t.Fatalf("Cylinder: %v", err)
	}
	defer tool.Release()

	out, err := k.Cut(box, tool, 0)
	if err != nil {
		t.Fatalf("Cut: %v", err)
	}
	defer out.Release()

	faces := mustSubShapes(t, k, out, kernel.KindFace)
	defer releaseAll(faces)
	// Two caps, four outer walls, one hole wall.
	if got, want := len(faces), 7; got != want {
		t.Errorf("faces = %d, want %d", got, want)
	}
	if err := k.Validate(out); err != nil {
		t.Errorf("Validate(cut) = %v, want nil", err)
	}

	curved := 0
	for _, f := range faces {
		w, err := k.OuterWire(f)
		if err != nil {
			t.Fatalf("OuterWire: %v", err)
		}
		we, _, err := k.WireEdges(w)
		if err != nil {
			t.Fatalf("WireEdges: %v", err)
		}
		for _, e := range we {
			a, b, err := k.EdgeEnds(e)
			if err != nil {
				t.Fatalf("EdgeEnds: %v", err)
			}
			if a.Near(b, 1e-9) {
				curved++
				break
			}
		}
		releaseAll(we)
		w.Release()
	}
	// The hole wall has closed seam edges on its boundary.
	if curved == 0 {
		t.Errorf("no face with a closed boundary edge after cylindrical cut")
	}
}

func TestCutDisjointToolKeepsSolid(t *testing.T) {
	k := mem.New()
	box, _ := k.Box(geom.P3(0, 0, 0), 4, 4, 4)
	tool, _ := k.Box(geom.P3(0, 0, 10), 4, 4, 2)
	defer box.Release()
	defer tool.Release()

	out, err := k.Cut(box, tool, 0)
	if err != nil {
		t.Fatalf("Cut: %v", err)
	}
	defer out.Release()
	b, _ := k.Bounds(out)
	if math.Abs(b.Max.Z-4) > 1e-9 {
		t.Errorf("top z = %g, want 4", b.Max.Z)
	}
}

func TestCutRemovingEverythingIsNull(t *testing.T) {
	k := mem.New()
	box, _ := k.Box(geom.P3(0, 0, 0), 4, 4, 4)
	tool, _ := k.Box(geom.P3(0, 0, -1), 4, 4, 6)
	defer box.Release()
	defer tool.Release()

	if _, err := k.Cut(box, tool, 0); !errors.Is(err, kernel.ErrNullShape) {
		t.Errorf("Cut = %v, want ErrNullShape", err)
	}
}

func TestCutOutsideEnvelopeIsIncomplete(t *testing.T) {
	k := mem.New()
	box, _ := k.Box(geom.P3(0, 0, 0), 4, 4, 4)
	tool, _ := k.Box(geom.P3(3, 3, 1), 4, 4, 1) // straddles the wall
	defer box.Release()
	defer tool.Release()

	if _, err := k.Cut(box, tool, 0); !errors.Is(err, kernel.ErrIncomplete) {
		t.Errorf("Cut = %v, want ErrIncomplete", err)
	}
}

func TestCutFuzzToleranceBridgesSlack(t *testing.T) {
	k := mem.New()
	box, _ := k.Box(geom.P3(0, 0, 0), 4, 4, 4)
	// Tool stops 1e-3 short of the bottom: exact cut cannot classify it as
	// a through-cut, a relaxed one can.
	tool, _ := k.Box(geom.P3(0, 0, 1e-3), 4, 4, 2)
	defer box.Release()
	defer tool.Release()

	if _, err := k.Cut(box, tool, 0); !errors.Is(err, kernel.ErrIncomplete) {
		t.Fatalf("exact Cut = %v, want ErrIncomplete", err)
	}
	out, err := k.Cut(box, tool, 5e-3)
	if err != nil {
		t.Fatalf("fuzzy Cut: %v", err)
	}
	defer out.Release()
	b, _ := k.Bounds(out)
	if math.Abs(b.Min.Z-(1e-3+2)) > 1e-9 {
		t.Errorf("bottom z = %g, want %g", b.Min.Z, 1e-3+2)
	}
}

func TestFuseStacksPrisms(t *testing.T) {
	k := mem.New()
	lower, _ := k.Box(geom.P3(0, 0, 0), 4, 4, 2)
	upper, _ := k.Box(geom.P3(0, 0, 2), 4, 4, 3)
	defer lower.Release()
	defer upper.Release()

	out, err := k.Fuse(lower, upper, 0)
	if err != nil {
		t.Fatalf("Fuse: %v", err)
	}
	defer out.Release()

	faces := mustSubShapes(t, k, out, kernel.KindFace)
	defer releaseAll(faces)
	if got, want := len(faces), 6; got != want {
		t.Errorf("faces = %d, want %d", got, want)
	}
	b, _ := k.Bounds(out)
	if math.Abs(b.Max.Z-5) > 1e-9 {
		t.Errorf("top z = %g, want 5", b.Max.Z)
	}
}

func TestFuseBoss(t *testing.T) {
	k := mem.New()
	base, _ := k.Box(geom.P3(0, 0, 0), 10, 10, 2)
	boss, _ := k.Box(geom.P3(3, 3, 2), 2, 2, 4)
	defer base.Release()
	defer boss.Release()

	out, err := k.Fuse(base, boss, 0)
	if err != nil {
		t.Fatalf("Fuse: %v", err)
	}
	defer out.Release()

	faces := mustSubShapes(t, k, out, kernel.KindFace)
	defer releaseAll(faces)
	// bottom, ring, boss top, 4 base walls, 4 boss walls.
	if got, want := len(faces), 11; got != want {
		t.Errorf("faces = %d, want %d", got, want)
	}
	if err := k.Validate(out); err != nil {
		t.Errorf("Validate(boss) = %v, want nil", err)
	}
}

func TestFilletAndChamfer(t *testing.T) {
	k := mem.New()
	box, err := k.Box(geom.P3(0, 0, 0), 10, 10, 4)
	if err != nil {
		t.Fatalf("Box: %v", err)
	}
	defer box.Release()

	pickVertical := func(s kernel.Shape, at geom.Point3) kernel.Shape {
		edges := mustSubShapes(t, k, s, kernel.KindEdge)
		defer releaseAll(edges)
		for _, e := range edges {
			a, b, err := k.EdgeEnds(e)
			if err != nil {
				t.Fatalf("EdgeEnds: %v", err)
			}
			if math.Hypot(a.X-b.X, a.Y-b.Y) < 1e-9 && math.Abs(a.X-at.X) < 1e-9 && math.Abs(a.Y-at.Y) < 1e-9 {
				// The enumeration handles are released on return, so hand
				// back a fresh handle for the same edge.
				keep, err := k.Reversed(e)
				if err != nil {
					t.Fatalf("Reversed: %v", err)
				}
				return keep
			}
		}
		t.Fatalf("no vertical edge at %v", at)
		return nil
	}

	edge := pickVertical(box, geom.P3(0, 0, 0))
	defer edge.Release()

	rounded, err := k.Fillet(box, []kernel.Shape{edge}, 1.5)
	if err != nil {
		t.Fatalf("Fillet: %v", err)
	}
	defer rounded.Release()
	if err := k.Validate(rounded); err != nil {
		t.Errorf("Validate(fillet) = %v, want nil", err)
	}
	// The rounded corner pulls the bounds off the sharp corner.
	b, _ := k.Bounds(rounded)
	if b.Min.X < -1e-9 || b.Min.Y < -1e-9 {
		t.Errorf("fillet bounds min = %v, want inside original corner", b.Min)
	}

	// Oversized radius must fail rather than self-intersect.
	if _, err := k.Fillet(box, []kernel.Shape{edge}, 6); !errors.Is(err, kernel.ErrIncomplete) {
		t.Errorf("oversized Fillet = %v, want ErrIncomplete", err)
	}

	// Chamfer wants the reference face adjacent to the edge.
	faces := mustSubShapes(t, k, box, kernel.KindFace)
	defer releaseAll(faces)
	var adj kernel.Shape
	for _, f := range faces {
		w, err := k.OuterWire(f)
		if err != nil {
			t.Fatalf("OuterWire: %v", err)
		}
		we, _, err := k.WireEdges(w)
		if err != nil {
			t.Fatalf("WireEdges: %v", err)
		}
		for _, fe := range we {
			if k.Same(fe, edge) {
				adj = f
			}
		}
		releaseAll(we)
		w.Release()
	}
	if adj == nil {
		t.Fatalf("no face adjacent to the picked edge")
	}
	beveled, err := k.Chamfer(box, []kernel.Shape{edge}, []kernel.Shape{adj}, 1)
	if err != nil {
		t.Fatalf("Chamfer: %v", err)
	}
	defer beveled.Release()
	if err := k.Validate(beveled); err != nil {
		t.Errorf("Validate(chamfer) = %v, want nil", err)
	}
}

func TestTriangulateBoxFaces(t *testing.T) {
	k := mem.New()
	box, _ := k.Box(geom.P3(0, 0, 0), 2, 2, 2)
	defer box.Release()

	faces := mustSubShapes(t, k, box, kernel.KindFace)
	defer releaseAll(faces)

	for i, f := range faces {
		tr, err := k.Triangulate(f, 0.1, 0.5)
		if err != nil {
			t.Fatalf("Triangulate face %d: %v", i, err)
		}
		if got, want := len(tr.Triangles), 2; got != want {
			t.Errorf("face %d: triangles = %d, want %d", i, got, want)
		}
		n, err := k.FaceNormal(f)
		if err != nil {
			t.Fatalf("FaceNormal: %v", err)
		}
		rev, err := k.FaceReversed(f)
		if err != nil {
			t.Fatalf("FaceReversed: %v", err)
		}
		for _, tri := range tr.Triangles {
			a := tr.Nodes[tri[0]-1]
			b := tr.Nodes[tri[1]-1]
			c := tr.Nodes[tri[2]-1]
			tn := b.Sub(a).Cross(c.Sub(a)).Normalize()
			want := n
			if rev {
				// Triangulation follows the intrinsic surface; the handle
				// orientation is applied by the caller.
				want = n.Neg()
			}
			if tn.Dot(want) < 0.99 {
				t.Errorf("face %d: triangle normal %v disagrees with intrinsic normal %v", i, tn, want)
			}
		}
	}
}

func TestTriangulateFaceWithHole(t *testing.T) {
	k := mem.New()
	box, _ := k.Box(geom.P3(0, 0, 0), 10, 10, 5)
	tool, _ := k.Cylinder(geom.P3(5, 5, -1), geom.V3(0, 0, 1), 2, 7)
	defer box.Release()
	defer tool.Release()

	out, err := k.Cut(box, tool, 0)
	if err != nil {
		t.Fatalf("Cut: %v", err)
	}
	defer out.Release()

	faces := mustSubShapes(t, k, out, kernel.KindFace)
	defer releaseAll(faces)
	meshed := 0
	for _, f := range faces {
		tr, err := k.Triangulate(f, 0.1, 0.5)
		if err != nil {
			t.Fatalf("Triangulate: %v", err)
		}
		if len(tr.Triangles) == 0 {
			t.Errorf("empty triangulation")
		}
		for _, tri := range tr.Triangles {
			for _, c := range tri {
				if c < 1 || c > len(tr.Nodes) {
					t.Fatalf("corner index %d out of 1..%d", c, len(tr.Nodes))
				}
			}
		}
		meshed++
	}
	if meshed != 7 {
		t.Errorf("meshed %d faces, want 7", meshed)
	}
}

func TestTranslatedPreservesTopology(t *testing.T) {
	k := mem.New()
	box, _ := k.Box(geom.P3(0, 0, 0), 2, 2, 2)
	defer box.Release()

	moved, err := k.Translated(box, geom.V3(5, 0, 1))
	if err != nil {
		t.Fatalf("Translated: %v", err)
	}
	defer moved.Release()

	edges := mustSubShapes(t, k, moved, kernel.KindEdge)
	defer releaseAll(edges)
	if got, want := len(edges), 12; got != want {
		t.Errorf("edges = %d, want %d", got, want)
	}
	b, _ := k.Bounds(moved)
	if !b.Min.Near(geom.P3(5, 0, 1), 1e-9) {
		t.Errorf("min = %v, want (5 0 1)", b.Min)
	}
	if err := k.Validate(moved); err != nil {
		t.Errorf("Validate(moved) = %v, want nil", err)
	}
}

func TestSewFacesIntoSolid(t *testing.T) {
	k := mem.New()
	box, _ := k.Box(geom.P3(0, 0, 0), 2, 2, 2)
	defer box.Release()

	faces := mustSubShapes(t, k, box, kernel.KindFace)
	defer releaseAll(faces)

	sewn, err := k.Sew(faces, 1e-5)
	if err != nil {
		t.Fatalf("Sew: %v", err)
	}
	defer sewn.Release()
	if sewn.Kind() != kernel.KindSolid {
		t.Errorf("Kind = %v, want solid", sewn.Kind())
	}
	if err := k.Validate(sewn); err != nil {
		t.Errorf("Validate(sewn) = %v, want nil", err)
	}
}

func TestSewPartialShellStaysShell(t *testing.T) {
	k := mem.New()
	box, _ := k.Box(geom.P3(0, 0, 0), 2, 2, 2)
	defer box.Release()

	faces := mustSubShapes(t, k, box, kernel.KindFace)
	defer releaseAll(faces)

	sewn, err := k.Sew(faces[:5], 1e-5)
	if err != nil {
		t.Fatalf("Sew: %v", err)
	}
	defer sewn.Release()
	if sewn.Kind() != kernel.KindShell {
		t.Errorf("Kind = %v, want shell", sewn.Kind())
	}
}

func TestLiveHandleCount(t *testing.T) {
	k := mem.New()
	box, err := k.Box(geom.P3(0, 0, 0), 1, 1, 1)
	if err != nil {
		t.Fatalf("Box: %v", err)
	}
	faces := mustSubShapes(t, k, box, kernel.KindFace)
	if k.Live() != int64(1+len(faces)) {
		t.Errorf("Live = %d, want %d", k.Live(), 1+len(faces))
	}
	releaseAll(faces)
	box.Release()
	if k.Live() != 0 {
		t.Errorf("Live = %d after release, want 0", k.Live())
	}
}

func TestDoubleReleasePanics(t *testing.T) {
	k := mem.New()
	box, err := k.Box(geom.P3(0, 0, 0), 1, 1, 1)
	if err != nil {
		t.Fatalf("Box: %v", err)
	}
	box.Release()
	defer func() {
		if recover() == nil {
			t.Errorf("second Release did not panic")
		}
	}()
	box.Release()
}

func TestSampleEdgeReversed(t *testing.T) {
	k := mem.New()
	va, _ := k.Vertex(geom.P3(0, 0, 0))
	vb, _ := k.Vertex(geom.P3(10, 0, 0))
	defer va.Release()
	defer vb.Release()
	e, err := k.Edge(va, vb)
	if err != nil {
		t.Fatalf("Edge: %v", err)
	}
	defer e.Release()

	fwd, err := k.SampleEdge(e, 4)
	if err != nil {
		t.Fatalf("SampleEdge: %v", err)
	}
	if len(fwd) != 5 {
		t.Fatalf("samples = %d, want 5", len(fwd))
	}
	if !fwd[0].Near(geom.P3(0, 0, 0), 1e-9) || !fwd[4].Near(geom.P3(10, 0, 0), 1e-9) {
		t.Errorf("forward samples %v..%v, want 0..10", fwd[0], fwd[4])
	}

	r, err := k.Reversed(e)
	if err != nil {
		t.Fatalf("Reversed: %v", err)
	}
	defer r.Release()
	rev, err := k.SampleEdge(r, 4)
	if err != nil {
		t.Fatalf("SampleEdge reversed: %v", err)
	}
	if !rev[0].Near(geom.P3(10, 0, 0), 1e-9) {
		t.Errorf("reversed samples start at %v, want (10 0 0)", rev[0])
	}
}

// polygonWire builds a closed wire over the given corner points in order.
func polygonWire(t *testing.T, k kernel.Kernel, pts []geom.Point3) kernel.Shape {
	t.Helper()
	var verts []kernel.Shape
	for _, p := range pts {
		v, err := k.Vertex(p)
		if err != nil {
			t.Fatalf("Vertex: %v", err)
		}
		verts = append(verts, v)
	}
	defer releaseAll(verts)

	var edges []kernel.Shape
	for i := range pts {
		e, err := k.Edge(verts[i], verts[(i+1)%len(pts)])
		if err != nil {
			t.Fatalf("Edge %d: %v", i, err)
		}
		edges = append(edges, e)
	}
	defer releaseAll(edges)

	w, err := k.Wire(edges)
	if err != nil {
		t.Fatalf("Wire: %v", err)
	}
	return w
}

func TestFaceWithHoleWires(t *testing.T) {
	k := mem.New()
	outer := polygonWire(t, k, []geom.Point3{
		geom.P3(0, 0, 0), geom.P3(6, 0, 0), geom.P3(6, 6, 0), geom.P3(0, 6, 0),
	})
	defer outer.Release()
	// The hole winds opposite to the outer ring.
	ring := polygonWire(t, k, []geom.Point3{
		geom.P3(2, 2, 0), geom.P3(2, 4, 0), geom.P3(4, 4, 0), geom.P3(4, 2, 0),
	})
	defer ring.Release()

	face, err := k.Face(outer, ring)
	if err != nil {
		t.Fatalf("Face with hole: %v", err)
	}
	defer face.Release()

	inner, err := k.InnerWires(face)
	if err != nil {
		t.Fatalf("InnerWires: %v", err)
	}
	defer releaseAll(inner)
	if len(inner) != 1 {
		t.Fatalf("inner wires = %d, want 1", len(inner))
	}
	we, _, err := k.WireEdges(inner[0])
	if err != nil {
		t.Fatalf("WireEdges: %v", err)
	}
	defer releaseAll(we)
	if len(we) != 4 {
		t.Errorf("hole ring edges = %d, want 4", len(we))
	}

	// A square with a square hole keyholes into a 10-vertex ring.
	tr, err := k.Triangulate(face, 0.1, 0.3)
	if err != nil {
		t.Fatalf("Triangulate: %v", err)
	}
	if got, want := len(tr.Triangles), 8; got != want {
		t.Errorf("triangles = %d, want %d", got, want)
	}
	for _, tri := range tr.Triangles {
		for _, c := range tri {
			if c < 1 || c > len(tr.Nodes) {
				t.Fatalf("corner index %d outside 1..%d", c, len(tr.Nodes))
			}
		}
	}

	// Extruding the holed profile yields a tube-in-box topology.
	solid, err := k.Prism(face, geom.V3(0, 0, 3))
	if err != nil {
		t.Fatalf("Prism: %v", err)
	}
	defer solid.Release()
	faces := mustSubShapes(t, k, solid, kernel.KindFace)
	defer releaseAll(faces)
	if got, want := len(faces), 10; got != want {
		t.Errorf("prism faces = %d, want %d", got, want)
	}
	if err := k.Validate(solid); err != nil {
		t.Errorf("Validate = %v, want nil", err)
	}
}
