// Package snapshot renders debug wireframe images of tessellated meshes.
//
// It exists so the demo binary and humans can eyeball engine output; it
// is not part of the engine contract. Rendering proper lives outside this
// module.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/vector"

	"github.com/gocad/brep"
)

// line width in pixels, as a half-width for the stroked quads.
const halfWidth = 0.6

// Wireframe projects the mesh's logical edges isometrically and strokes
// them into a white image. Meshes without sampled edges (preview profiles
// may skip short edges) fall back to triangle outlines.
func Wireframe(m *brep.Mesh, width, height int) *image.RGBA {
	segs := edgeSegments(m)
	if len(segs) == 0 {
		segs = triangleSegments(m)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if len(segs) == 0 {
		return img
	}

	pts := fit(segs, width, height)
	r := vector.NewRasterizer(width, height)
	for i := 0; i+1 < len(pts); i += 2 {
		strokeSegment(r, pts[i], pts[i+1])
	}
	r.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{})
	return img
}

// SavePNG writes an image to a PNG file.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("snapshot: encode %s: %w", path, err)
	}
	return nil
}

type xy struct{ x, y float64 }

// project maps a 3D point to isometric 2D (y up).
func project(p brep.Point3) xy {
	const c, s = 0.8660254037844386, 0.5 // cos 30°, sin 30°
	return xy{
		x: (p.X - p.Y) * c,
		y: (p.X+p.Y)*s - p.Z,
	}
}

// edgeSegments flattens the mesh's sampled edge polylines into projected
// segment endpoint pairs.
func edgeSegments(m *brep.Mesh) []xy {
	var out []xy
	for _, e := range m.Edges {
		for i := 0; i+1 < len(e.Points); i++ {
			out = append(out, project(e.Points[i]), project(e.Points[i+1]))
		}
	}
	return out
}

// triangleSegments projects every triangle edge.
func triangleSegments(m *brep.Mesh) []xy {
	at := func(i uint32) brep.Point3 {
		return brep.P3(
			float64(m.Positions[3*i]),
			float64(m.Positions[3*i+1]),
			float64(m.Positions[3*i+2]),
		)
	}
	var out []xy
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := at(m.Indices[i]), at(m.Indices[i+1]), at(m.Indices[i+2])
		pa, pb, pc := project(a), project(b), project(c)
		out = append(out, pa, pb, pb, pc, pc, pa)
	}
	return out
}

// fit scales and translates projected points into the image with a 10%
// margin, flipping y into image coordinates.
func fit(pts []xy, width, height int) []xy {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.x), math.Max(maxX, p.x)
		minY, maxY = math.Min(minY, p.y), math.Max(maxY, p.y)
	}
	spanX, spanY := maxX-minX, maxY-minY
	if spanX <= 0 {
		spanX = 1
	}
	if spanY <= 0 {
		spanY = 1
	}
	margin := 0.1
	scale := math.Min(
		float64(width)*(1-2*margin)/spanX,
		float64(height)*(1-2*margin)/spanY,
	)
	offX := (float64(width) - spanX*scale) / 2
	offY := (float64(height) - spanY*scale) / 2

	out := make([]xy, len(pts))
	for i, p := range pts {
		out[i] = xy{
			x: offX + (p.x-minX)*scale,
			y: float64(height) - (offY + (p.y-minY)*scale),
		}
	}
	return out
}

// strokeSegment adds a thin quad covering segment a-b to the rasterizer.
func strokeSegment(r *vector.Rasterizer, a, b xy) {
	dx, dy := b.x-a.x, b.y-a.y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*halfWidth, dx/l*halfWidth
	r.MoveTo(float32(a.x+nx), float32(a.y+ny))
	r.LineTo(float32(b.x+nx), float32(b.y+ny))
	r.LineTo(float32(b.x-nx), float32(b.y-ny))
	r.LineTo(float32(a.x-nx), float32(a.y-ny))
	r.ClosePath()
}
