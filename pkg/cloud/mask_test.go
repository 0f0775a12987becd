package cloud

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/hed-standard/hedviz/pkg/errors"
)

// testStencil builds a w×h image that is free (black) everywhere except
// the given blocked (white) pixels.
func testStencil(w, h int, blocked ...image.Point) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, color.RGBA{A: 255})
		}
	}
	for _, p := range blocked {
		img.SetRGBA(p.X, p.Y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return img
}

func TestNewMask(t *testing.T) {
	img := testStencil(4, 4,
		image.Pt(1, 1), image.Pt(2, 1),
		image.Pt(1, 2), image.Pt(2, 2))

	m, err := NewMask(img, 4, 4, "test")
	if err != nil {
		t.Fatalf("NewMask: %v", err)
	}

	if m.Width() != 4 || m.Height() != 4 {
		t.Errorf("size = %dx%d, want 4x4", m.Width(), m.Height())
	}
	if !m.Blocked(1, 1) || !m.Blocked(2, 2) {
		t.Error("center cells should block")
	}
	if m.Blocked(0, 0) || m.Blocked(3, 3) {
		t.Error("corner cells should be free")
	}
	if m.Blocked(-1, 0) != true || m.Blocked(4, 0) != true {
		t.Error("out-of-range cells should block")
	}
	if got := m.FreeFraction(); got != 0.75 {
		t.Errorf("FreeFraction = %v, want 0.75", got)
	}
}

func TestNewMaskFullyBlocked(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := range 2 {
		for x := range 2 {
			img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	_, err := NewMask(img, 2, 2, "solid")
	if errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
}

func TestNewMaskResizes(t *testing.T) {
	img := testStencil(8, 8,
		image.Pt(0, 0), image.Pt(1, 0), image.Pt(0, 1), image.Pt(1, 1))
	m, err := NewMask(img, 4, 4, "scaled")
	if err != nil {
		t.Fatal(err)
	}
	if m.Width() != 4 || m.Height() != 4 {
		t.Fatalf("size = %dx%d, want 4x4", m.Width(), m.Height())
	}
	if !m.Blocked(0, 0) {
		t.Error("top-left should still block after downscale")
	}
	if m.Blocked(3, 3) {
		t.Error("bottom-right should stay free after downscale")
	}
}

func TestMaskContours(t *testing.T) {
	img := testStencil(4, 4,
		image.Pt(1, 1), image.Pt(2, 1),
		image.Pt(1, 2), image.Pt(2, 2))
	m, err := NewMask(img, 4, 4, "test")
	if err != nil {
		t.Fatal(err)
	}

	loops := m.Contours()
	if len(loops) != 1 {
		t.Fatalf("loops = %d, want 1", len(loops))
	}
	if len(loops[0]) != 8 {
		t.Errorf("loop length = %d, want 8", len(loops[0]))
	}
	for _, p := range loops[0] {
		if p.X < 0 || p.X > 4 || p.Y < 0 || p.Y > 4 {
			t.Errorf("point %v outside the canvas", p)
		}
	}
}

func TestMaskContoursWithHole(t *testing.T) {
	// A blocked ring around one free center cell: an outer loop around the
	// ring plus an inner loop around the hole.
	var blocked []image.Point
	for y := range 3 {
		for x := range 3 {
			if x == 1 && y == 1 {
				continue
			}
			blocked = append(blocked, image.Pt(x, y))
		}
	}
	m, err := NewMask(testStencil(3, 3, blocked...), 3, 3, "ring")
	if err != nil {
		t.Fatal(err)
	}
	if loops := m.Contours(); len(loops) != 2 {
		t.Errorf("loops = %d, want 2 (outline and hole)", len(loops))
	}
}

func TestMaskContoursEmpty(t *testing.T) {
	m, err := NewMask(testStencil(3, 3), 3, 3, "open")
	if err != nil {
		t.Fatal(err)
	}
	if loops := m.Contours(); len(loops) != 0 {
		t.Errorf("loops = %d, want 0 for an all-free mask", len(loops))
	}
}

func TestWriteStencilRoundTrip(t *testing.T) {
	img := testStencil(5, 4, image.Pt(2, 1), image.Pt(3, 2))
	m, err := NewMask(img, 5, 4, "orig")
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "stencil.png")
	if err := m.WriteStencil(path); err != nil {
		t.Fatalf("WriteStencil: %v", err)
	}

	back, err := LoadMask(path, 5, 4)
	if err != nil {
		t.Fatalf("LoadMask: %v", err)
	}
	for y := range 4 {
		for x := range 5 {
			if m.Blocked(x, y) != back.Blocked(x, y) {
				t.Fatalf("cell (%d,%d) changed across the round trip", x, y)
			}
		}
	}
}

func TestLoadMaskMissing(t *testing.T) {
	_, err := LoadMask(filepath.Join(t.TempDir(), "missing.png"), 4, 4)
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}
