package geom

import "math"

// Bounds3 is an axis-aligned bounding box.
// The zero value is an empty box that Extend can grow from.
type Bounds3 struct {
	Min, Max Point3
	set      bool
}

// Extend grows the box to include p.
func (b *Bounds3) Extend(p Point3) {
	if !b.set {
		b.Min, b.Max = p, p
		b.set = true
		return
	}
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Min.Z = math.Min(b.Min.Z, p.Z)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	b.Max.Z = math.Max(b.Max.Z, p.Z)
}

// Union grows the box to include another box.
func (b *Bounds3) Union(o Bounds3) {
	if o.Empty() {
		return
	}
	b.Extend(o.Min)
	b.Extend(o.Max)
}

// Empty reports whether the box contains no points.
func (b Bounds3) Empty() bool {
	return !b.set
}

// Diagonal returns the length of the box diagonal, or 0 for an empty box.
func (b Bounds3) Diagonal() float64 {
	if !b.set {
		return 0
	}
	return b.Max.Sub(b.Min).Length()
}

// Center returns the center of the box.
func (b Bounds3) Center() Point3 {
	return b.Min.Lerp(b.Max, 0.5)
}
