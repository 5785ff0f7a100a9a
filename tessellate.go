package brep

import (
	"errors"
	"fmt"

	"github.com/gocad/brep/geom"
	"github.com/gocad/brep/kernel"
)

// Tessellate converts a shape into a render mesh plus topology index
// maps, in one topology pass per map. Triangle winding is normalized to
// outward regardless of each face's internal orientation flag; normals
// are smooth within a face and break at face boundaries.
func Tessellate(k kernel.Kernel, s kernel.Shape, p Profile) (*Mesh, error) {
	sc := newScope()
	defer sc.Close()
	m := &Mesh{}

	faces, err := k.SubShapes(s, kernel.KindFace)
	if err != nil {
		return nil, fmt.Errorf("brep: tessellate: %w", err)
	}
	sc.trackAll(faces)

	for i, f := range faces {
		if err := tessellateFace(k, f, p, m); err != nil {
			// Keep index alignment: the face still occupies a map slot.
			Logger().Warn("brep: face failed to mesh", "face", i, "err", err)
			m.Faces = append(m.Faces, FaceRange{Start: m.TriangleCount()})
		}
	}

	edges, err := k.SubShapes(s, kernel.KindEdge)
	if err != nil {
		return nil, fmt.Errorf("brep: tessellate: %w", err)
	}
	sc.trackAll(edges)
	for i, e := range edges {
		pts, err := k.SampleEdge(e, p.EdgeSamples)
		if err != nil {
			if !errors.Is(err, kernel.ErrDegenerate) {
				Logger().Warn("brep: edge failed to sample", "edge", i, "err", err)
			}
			m.Edges = append(m.Edges, EdgeCurve{})
			continue
		}
		m.Edges = append(m.Edges, EdgeCurve{Points: pts})
	}

	if p.VertexMap {
		verts, err := k.SubShapes(s, kernel.KindVertex)
		if err != nil {
			return nil, fmt.Errorf("brep: tessellate: %w", err)
		}
		sc.trackAll(verts)
		for _, v := range verts {
			pt, err := k.Point(v)
			if err != nil {
				return nil, fmt.Errorf("brep: tessellate: %w", err)
			}
			m.Vertices = append(m.Vertices, VertexPoint{Position: pt})
		}
	}
	return m, nil
}

// tessellateFace meshes one face and appends its triangles, positions and
// per-vertex normals to the mesh.
func tessellateFace(k kernel.Kernel, f kernel.Shape, p Profile, m *Mesh) error {
	tr, err := k.Triangulate(f, p.Deflection, p.Angular)
	if err != nil {
		return err
	}
	rev, err := k.FaceReversed(f)
	if err != nil {
		return err
	}
	fn, err := k.FaceNormal(f)
	if err != nil {
		return err
	}

	base := uint32(len(m.Positions) / 3)
	for _, n := range tr.Nodes {
		m.Positions = append(m.Positions, float32(n.X), float32(n.Y), float32(n.Z))
	}

	triStart := m.TriangleCount()
	acc := make([]geom.Vec3, len(tr.Nodes))
	for _, tri := range tr.Triangles {
		if rev {
			// Swapping the last two corners flips the winding so the
			// triangle faces outward despite the reversed orientation.
			tri[1], tri[2] = tri[2], tri[1]
		}
		// Kernel corner indices are 1-based; remap into the shared array.
		c0, c1, c2 := tri[0]-1, tri[1]-1, tri[2]-1
		m.Indices = append(m.Indices, base+uint32(c0), base+uint32(c1), base+uint32(c2))

		// Area-weighted accumulation gives smooth shading within the
		// face; each face renormalizes its own nodes, so disjoint faces
		// keep faceted breaks.
		a, b, c := tr.Nodes[c0], tr.Nodes[c1], tr.Nodes[c2]
		tn := b.Sub(a).Cross(c.Sub(a))
		acc[c0] = acc[c0].Add(tn)
		acc[c1] = acc[c1].Add(tn)
		acc[c2] = acc[c2].Add(tn)
	}
	for _, v := range acc {
		n := v.Normalize()
		m.Normals = append(m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
	}

	m.Faces = append(m.Faces, FaceRange{
		Start:  triStart,
		Count:  m.TriangleCount() - triStart,
		Normal: fn,
	})
	return nil
}
