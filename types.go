package brep

import "github.com/gocad/brep/geom"

// Geometry value types are defined in the leaf geom package so that the
// kernel packages can share them without importing brep; they are aliased
// here because callers of this package work in these types constantly.
type (
	Point3  = geom.Point3
	Vec3    = geom.Vec3
	Bounds3 = geom.Bounds3
)

// P3 constructs a Point3.
func P3(x, y, z float64) Point3 { return geom.P3(x, y, z) }

// V3 constructs a Vec3.
func V3(x, y, z float64) Vec3 { return geom.V3(x, y, z) }

// VertexMove displaces one shape vertex. From is matched against the
// shape's vertices by rounded-coordinate equality (see Rebuild); To is the
// new position. A move record describes a single edit gesture and is
// consumed by exactly one Rebuild call.
type VertexMove struct {
	From Point3
	To   Point3
}

// Delta returns the displacement vector of the move.
func (m VertexMove) Delta() Vec3 { return m.To.Sub(m.From) }
