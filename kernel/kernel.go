// Package kernel defines the binding surface to a boundary-representation
// geometry kernel.
//
// The kernel is consumed as an opaque dependency: this package specifies the
// handle type, the operation set, and the lifetime contract, while concrete
// kernels register themselves via Register() and are selected via Get() or
// Default(). The built-in pure-Go kernel lives in kernel/mem; a cgo-backed
// kernel can be dropped in beside it:
//
//	import _ "github.com/gocad/brep/kernel/mem" // pure Go, always available
package kernel

import "github.com/gocad/brep/geom"

// ShapeKind enumerates the topological types a handle can reference.
type ShapeKind int

const (
	KindSolid ShapeKind = iota
	KindShell
	KindFace
	KindWire
	KindEdge
	KindVertex
	KindCompound
)

// String returns the lowercase name of the kind.
func (k ShapeKind) String() string {
	switch k {
	case KindSolid:
		return "solid"
	case KindShell:
		return "shell"
	case KindFace:
		return "face"
	case KindWire:
		return "wire"
	case KindEdge:
		return "edge"
	case KindVertex:
		return "vertex"
	case KindCompound:
		return "compound"
	default:
		return "unknown"
	}
}

// Shape is an opaque handle to a kernel-owned topological object.
//
// Handles are never copied by value and never outlive their Release call.
// Every handle returned by a Kernel method is owned by the caller and must be
// released exactly once; releasing twice is a programming error that kernels
// are free to detect by panicking. Handles returned by topology exploration
// reference sub-objects of a parent shape and stay valid until released,
// independent of the parent handle.
type Shape interface {
	// Kind returns the topological type the handle references.
	Kind() ShapeKind

	// Release frees the native resources behind the handle.
	Release()
}

// Triangulation is the raw output of the incremental mesher for one face.
//
// Triangles index into Nodes using the kernel's native 1-based convention;
// callers remap into their own 0-based arrays. Triangles are wound so that
// their geometric normal agrees with the face's intrinsic (unreversed)
// surface normal.
type Triangulation struct {
	Nodes     []geom.Point3
	Triangles [][3]int
}

// Kernel is the operation surface of a B-rep geometry kernel.
//
// All methods are synchronous and block the caller; kernels are used from a
// single goroutine at a time. Input shapes are never mutated or consumed:
// every method returning a Shape returns a new handle the caller owns.
//
// Topology exploration (SubShapes, WireEdges) enumerates sub-shapes in an
// order that is deterministic for one specific shape instance. The indices an
// application derives from that order are invalidated by any structural
// rebuild of the shape; they must never be persisted across a replacement.
type Kernel interface {
	// Name returns the kernel identifier (e.g. "mem", "occt").
	Name() string

	// Tolerance returns the kernel's tight model tolerance, used for
	// exact coincidence tests.
	Tolerance() float64

	// Box builds a solid box from a corner point and three extents.
	Box(corner geom.Point3, dx, dy, dz float64) (Shape, error)

	// Cylinder builds a solid cylinder from a base center, an axis
	// direction, a radius and a height.
	Cylinder(base geom.Point3, axis geom.Vec3, radius, height float64) (Shape, error)

	// Vertex builds a topological vertex at p.
	Vertex(p geom.Point3) (Shape, error)

	// Edge builds a straight edge between two vertices.
	Edge(a, b Shape) (Shape, error)

	// Wire assembles edges into a closed wire. Edge orientation is taken
	// from the handles (see Reversed).
	Wire(edges []Shape) (Shape, error)

	// Face builds a planar face bounded by a closed outer wire. Each
	// additional wire becomes an inner (hole) boundary of the face.
	Face(wire Shape, holes ...Shape) (Shape, error)

	// Shell assembles faces into a shell. The faces are referenced, not
	// consumed; the input handles remain caller-owned.
	Shell(faces []Shape) (Shape, error)

	// FixShellOrientation returns a shell with face orientations made
	// consistently outward.
	FixShellOrientation(shell Shape) (Shape, error)

	// SolidFromShell promotes a closed shell to a solid. Returns
	// ErrIncomplete if the shell does not close.
	SolidFromShell(shell Shape) (Shape, error)

	// Prism extrudes a planar face along dir into a solid.
	Prism(profile Shape, dir geom.Vec3) (Shape, error)

	// Translated returns a rigidly translated copy of a shape.
	Translated(s Shape, delta geom.Vec3) (Shape, error)

	// Fuse returns the boolean union of two solids. A fuzz of 0 requests
	// the tight coincidence tolerance; a positive fuzz relaxes it.
	Fuse(a, b Shape, fuzz float64) (Shape, error)

	// Cut returns the boolean difference a minus b. Fuzz as for Fuse.
	Cut(a, b Shape, fuzz float64) (Shape, error)

	// Fillet rounds the given edges of a solid with a constant radius.
	Fillet(s Shape, edges []Shape, radius float64) (Shape, error)

	// Chamfer bevels the given edges with a constant distance. faces[i]
	// must be a face of s adjacent to edges[i]; the kernel dereferences
	// the distance direction through it.
	Chamfer(s Shape, edges, faces []Shape, dist float64) (Shape, error)

	// SubShapes enumerates the sub-shapes of the given kind, in the
	// kernel's deterministic per-instance order. The returned handles are
	// caller-owned.
	SubShapes(s Shape, kind ShapeKind) ([]Shape, error)

	// OuterWire returns the outer boundary wire of a face.
	OuterWire(face Shape) (Shape, error)

	// InnerWires returns the face's hole boundary wires, in the kernel's
	// deterministic per-instance order. Empty for a face without holes.
	InnerWires(face Shape) ([]Shape, error)

	// WireEdges returns a wire's edges in traversal order along with a
	// forward flag per edge (false means the edge is traversed against
	// its creation direction).
	WireEdges(wire Shape) ([]Shape, []bool, error)

	// Same reports whether two handles reference the same underlying
	// topological object, ignoring orientation.
	Same(a, b Shape) bool

	// Reversed returns a new handle referencing the same underlying
	// object with flipped orientation.
	Reversed(s Shape) (Shape, error)

	// FaceReversed reports whether a face handle's topological
	// orientation is reversed relative to its surface normal.
	FaceReversed(face Shape) (bool, error)

	// Point returns the position of a vertex.
	Point(v Shape) (geom.Point3, error)

	// EdgeEnds returns the endpoints of an edge in its oriented order.
	EdgeEnds(e Shape) (geom.Point3, geom.Point3, error)

	// SampleEdge evaluates an edge's curve at samples+1 uniform parameter
	// steps. Returns ErrDegenerate for zero-length edges.
	SampleEdge(e Shape, samples int) ([]geom.Point3, error)

	// FaceNormal returns a face's outward surface normal, accounting for
	// the handle's orientation.
	FaceNormal(face Shape) (geom.Vec3, error)

	// Bounds returns the axis-aligned bounding box of a shape.
	Bounds(s Shape) (geom.Bounds3, error)

	// Triangulate runs the incremental mesher on one face. deflection
	// bounds the chordal error; angular bounds the angle error in
	// radians.
	Triangulate(face Shape, deflection, angular float64) (*Triangulation, error)

	// Validate runs the full topological and geometric validity check.
	// A nil error means the shape passed.
	Validate(s Shape) error

	// Sew stitches disjoint faces into a connected shell, healing gaps up
	// to tol. This is the general stitching facility; it may widen
	// geometric tolerance and is intended as a fallback only.
	Sew(faces []Shape, tol float64) (Shape, error)
}
