package geom

import (
	"math"
	"testing"
)

func TestPointVectorArithmetic(t *testing.T) {
	p := P3(1, 2, 3)
	q := p.Add(V3(1, -1, 0.5))
	if q != P3(2, 1, 3.5) {
		t.Errorf("Add = %v, want (2 1 3.5)", q)
	}
	if d := q.Sub(p); d != V3(1, -1, 0.5) {
		t.Errorf("Sub = %v, want (1 -1 0.5)", d)
	}
	if got := P3(0, 3, 4).Distance(P3(0, 0, 0)); got != 5 {
		t.Errorf("Distance = %g, want 5", got)
	}
}

func TestLerp(t *testing.T) {
	a, b := P3(0, 0, 0), P3(2, 4, 6)
	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0) = %v, want %v", got, a)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %v, want %v", got, b)
	}
	if got := a.Lerp(b, 0.5); got != P3(1, 2, 3) {
		t.Errorf("Lerp(0.5) = %v, want (1 2 3)", got)
	}
}

func TestNearUsesPerAxisTolerance(t *testing.T) {
	p := P3(1, 1, 1)
	if !p.Near(P3(1+1e-7, 1, 1-1e-7), 1e-6) {
		t.Errorf("points within tolerance reported apart")
	}
	if p.Near(P3(1+2e-6, 1, 1), 1e-6) {
		t.Errorf("points beyond tolerance reported coincident")
	}
}

func TestCrossRightHanded(t *testing.T) {
	if got := V3(1, 0, 0).Cross(V3(0, 1, 0)); got != V3(0, 0, 1) {
		t.Errorf("x cross y = %v, want z", got)
	}
	if got := V3(0, 1, 0).Cross(V3(1, 0, 0)); got != V3(0, 0, -1) {
		t.Errorf("y cross x = %v, want -z", got)
	}
}

func TestNormalize(t *testing.T) {
	v := V3(3, 0, 4).Normalize()
	if math.Abs(v.Length()-1) > 1e-12 {
		t.Errorf("normalized length = %g, want 1", v.Length())
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Normalize of zero vector = %v, want zero", got)
	}
}

func TestBoundsExtend(t *testing.T) {
	var b Bounds3
	if !b.Empty() {
		t.Fatalf("zero Bounds3 not empty")
	}
	if b.Diagonal() != 0 {
		t.Errorf("empty diagonal = %g, want 0", b.Diagonal())
	}

	b.Extend(P3(1, 2, 3))
	if b.Min != P3(1, 2, 3) || b.Max != P3(1, 2, 3) {
		t.Errorf("single-point box = %v..%v", b.Min, b.Max)
	}
	b.Extend(P3(-1, 5, 0))
	if b.Min != P3(-1, 2, 0) || b.Max != P3(1, 5, 3) {
		t.Errorf("box = %v..%v, want (-1 2 0)..(1 5 3)", b.Min, b.Max)
	}
	if c := b.Center(); c != P3(0, 3.5, 1.5) {
		t.Errorf("Center = %v, want (0 3.5 1.5)", c)
	}
}

func TestBoundsUnion(t *testing.T) {
	var a, b Bounds3
	a.Extend(P3(0, 0, 0))
	a.Extend(P3(1, 1, 1))

	a.Union(b) // union with empty is a no-op
	if a.Max != P3(1, 1, 1) {
		t.Errorf("union with empty changed box: %v..%v", a.Min, a.Max)
	}

	b.Extend(P3(2, -1, 0.5))
	a.Union(b)
	if a.Min != P3(0, -1, 0) || a.Max != P3(2, 1, 1) {
		t.Errorf("union = %v..%v, want (0 -1 0)..(2 1 1)", a.Min, a.Max)
	}
}
