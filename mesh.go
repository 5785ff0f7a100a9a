package brep

// Mesh is the flat render output of Tessellate: positions/normals as xyz
// float32 triples, triangle corners as uint32 indices, plus the three
// topology maps correlating mesh ranges back to logical faces, edges and
// vertices. A Mesh is produced fresh per call, immutable once returned,
// and owned by the caller.
//
// The maps use topology-index numbering: position in the kernel's
// deterministic iteration order over the source shape instance. Indices
// are valid only against that exact instance — any rebuild invalidates
// them (see the package documentation).
type Mesh struct {
	Positions []float32
	Normals   []float32
	Indices   []uint32

	// Faces maps each logical face to its contiguous triangle range.
	Faces []FaceRange

	// Edges maps each logical edge to a sampled polyline. An edge that
	// could not be evaluated (degenerate, zero-length) has an empty
	// polyline; the entry is kept so indices stay aligned.
	Edges []EdgeCurve

	// Vertices maps each logical vertex to its position. Empty when the
	// profile skips the vertex map.
	Vertices []VertexPoint
}

// FaceRange is one logical face's triangle range [Start, Start+Count)
// plus its representative outward normal.
type FaceRange struct {
	Start  int
	Count  int
	Normal Vec3
}

// EdgeCurve is one logical edge sampled as a polyline.
type EdgeCurve struct {
	Points []Point3
}

// VertexPoint is one logical vertex's position.
type VertexPoint struct {
	Position Point3
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// VertexCount returns the number of mesh vertices (triangulation nodes,
// not logical B-rep vertices).
func (m *Mesh) VertexCount() int { return len(m.Positions) / 3 }

// Bounds returns the axis-aligned bounding box of the mesh positions.
func (m *Mesh) Bounds() Bounds3 {
	var b Bounds3
	for i := 0; i+2 < len(m.Positions); i += 3 {
		b.Extend(P3(float64(m.Positions[i]), float64(m.Positions[i+1]), float64(m.Positions[i+2])))
	}
	return b
}

// Profile is a fixed tessellation quality setting.
type Profile struct {
	Name        string
	Deflection  float64 // max surface deviation of the triangulation
	Angular     float64 // max angular deviation, radians
	EdgeSamples int     // polyline segments per edge
	VertexMap   bool    // collect the vertex map
}

// The two quality profiles: high fidelity for commit, coarse for
// interactive preview. Preview skips the vertex map entirely.
var (
	ProfileHigh    = Profile{Name: "high", Deflection: 0.05, Angular: 0.35, EdgeSamples: 24, VertexMap: true}
	ProfilePreview = Profile{Name: "preview", Deflection: 0.5, Angular: 0.7, EdgeSamples: 8, VertexMap: false}
)
