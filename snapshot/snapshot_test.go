package snapshot

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gocad/brep"
	"github.com/gocad/brep/kernel/mem"
)

func boxMesh(t *testing.T) *brep.Mesh {
	t.Helper()
	k := mem.New()
	box, err := brep.Box(k, brep.P3(0, 0, 0), 4, 4, 2)
	if err != nil {
		t.Fatalf("Box: %v", err)
	}
	defer box.Release()
	m, err := brep.Tessellate(k, box, brep.ProfileHigh)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	return m
}

func countBlack(img *image.RGBA, w, h int) int {
	black := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r < 0x8000 && g < 0x8000 && b < 0x8000 {
				black++
			}
		}
	}
	return black
}

func TestWireframeDrawsEdges(t *testing.T) {
	m := boxMesh(t)
	const w, h = 128, 128
	img := Wireframe(m, w, h)

	if got := img.Bounds().Dx(); got != w {
		t.Fatalf("width = %d, want %d", got, w)
	}
	if black := countBlack(img, w, h); black == 0 {
		t.Errorf("wireframe image is blank")
	}

	// Corners stay white: the drawing is fitted with a margin.
	if r, _, _, _ := img.At(0, 0).RGBA(); r != 0xffff {
		t.Errorf("corner pixel not white")
	}
}

func TestWireframeFallsBackToTriangles(t *testing.T) {
	m := boxMesh(t)
	m.Edges = nil // no sampled edges: triangle outlines take over

	img := Wireframe(m, 64, 64)
	if black := countBlack(img, 64, 64); black == 0 {
		t.Errorf("triangle fallback drew nothing")
	}
}

func TestWireframeEmptyMeshIsBlank(t *testing.T) {
	img := Wireframe(&brep.Mesh{}, 32, 32)
	if black := countBlack(img, 32, 32); black != 0 {
		t.Errorf("empty mesh produced %d dark pixels, want 0", black)
	}
}

func TestSavePNGRoundTrip(t *testing.T) {
	img := Wireframe(boxMesh(t), 64, 64)
	path := filepath.Join(t.TempDir(), "box.png")
	if err := SavePNG(path, img); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds().Dx() != 64 || decoded.Bounds().Dy() != 64 {
		t.Errorf("decoded size = %v, want 64x64", decoded.Bounds())
	}
}
