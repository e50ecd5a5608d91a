package compose

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"gangsheet-renderer/internal/mask"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func square(x0, y0, x1, y1 float64) []mask.Point {
	return []mask.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

var (
	white = color.NRGBA{255, 255, 255, 255}
	red   = color.NRGBA{255, 0, 0, 255}
	blue  = color.NRGBA{0, 0, 255, 255}
)

func mustRegions(t *testing.T, polys [][]mask.Point, w, h int) []Region {
	t.Helper()
	regs, err := PrepareRegions(polys, w, h)
	if err != nil {
		t.Fatal(err)
	}
	return regs
}

func TestRenderMockupDeterministic(t *testing.T) {
	base := solid(100, 100, white)
	regs := mustRegions(t, [][]mask.Point{square(10, 10, 90, 90)}, 100, 100)
	design := solid(40, 40, red)

	a, err := RenderMockup(base, regs, design, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RenderMockup(base, regs, design, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("two renders of identical inputs differ")
	}
}

func TestRenderMockupCropPolicy(t *testing.T) {
	base := solid(100, 100, white)
	regs := mustRegions(t, [][]mask.Point{square(10, 10, 90, 90)}, 100, 100)
	design := solid(40, 40, red)

	out, err := RenderMockup(base, regs, design, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	// Base must not be mutated.
	if base.Pix[base.PixOffset(50, 50)] != 255 || base.Pix[base.PixOffset(50, 50)+1] != 255 {
		t.Fatal("base image was mutated")
	}

	// Center of the region carries the design.
	i := out.PixOffset(50, 50)
	if out.Pix[i] < 200 || out.Pix[i+1] > 50 {
		t.Errorf("center pixel = %v, want red", out.Pix[i:i+4])
	}
	// Outside the mask the template shows through untouched.
	i = out.PixOffset(5, 50)
	if out.Pix[i] != 255 || out.Pix[i+1] != 255 || out.Pix[i+2] != 255 {
		t.Errorf("pixel outside mask = %v, want white", out.Pix[i:i+4])
	}
}

// Fill-policy regions blend only where the mask bit is set, even though the
// rectangular placement window spans the whole bbox.
func TestRenderMockupMaskGating(t *testing.T) {
	base := solid(100, 100, white)
	triangle := []mask.Point{{X: 30, Y: 30}, {X: 70, Y: 30}, {X: 30, Y: 70}}
	regs := mustRegions(t, [][]mask.Point{
		square(0, 0, 8, 8), // crop region, out of the way
		triangle,
	}, 100, 100)
	design := solid(100, 40, red)

	out, err := RenderMockup(base, regs, design, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	// Inside the triangle: design ink.
	i := out.PixOffset(35, 35)
	if out.Pix[i] < 200 || out.Pix[i+1] > 50 {
		t.Errorf("pixel inside triangle = %v, want red", out.Pix[i:i+4])
	}
	// Inside the bbox window but outside the triangle: untouched.
	i = out.PixOffset(66, 66)
	if out.Pix[i] != 255 || out.Pix[i+1] != 255 || out.Pix[i+2] != 255 {
		t.Errorf("pixel outside triangle = %v, want white", out.Pix[i:i+4])
	}
}

func TestRenderMockupNilDesign(t *testing.T) {
	base := solid(50, 50, white)
	regs := mustRegions(t, [][]mask.Point{square(5, 5, 45, 45)}, 50, 50)

	out, err := RenderMockup(base, regs, nil, 0.5)
	if !errors.Is(err, ErrNilDesign) {
		t.Fatalf("err = %v, want ErrNilDesign", err)
	}
	if out == nil || !bytes.Equal(out.Pix, base.Pix) {
		t.Error("nil design must still return the unmodified base")
	}
}

func TestApplyWatermarkSilhouetteOnly(t *testing.T) {
	// Transparent base: only the design pass creates alpha.
	base := solid(100, 100, color.NRGBA{})
	regs := mustRegions(t, [][]mask.Point{square(10, 10, 90, 90)}, 100, 100)

	// Tall narrow design leaves most of the mask without ink.
	design := solid(20, 80, red)
	out, err := RenderMockup(base, regs, design, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	wm := solid(80, 80, blue)
	if err := ApplyWatermark(out, regs, wm, 0.5, 0.5); err != nil {
		t.Fatal(err)
	}

	// On the silhouette: watermark blended in.
	i := out.PixOffset(50, 50)
	if out.Pix[i+2] < 100 {
		t.Errorf("silhouette pixel = %v, want blue component from watermark", out.Pix[i:i+4])
	}
	if out.Pix[i+3] != 255 {
		t.Errorf("silhouette alpha = %d, want 255", out.Pix[i+3])
	}

	// Inside mask and watermark window, but never drawn by the design:
	// watermark suppressed entirely.
	i = out.PixOffset(20, 50)
	if out.Pix[i+3] != 0 {
		t.Errorf("undrawn pixel alpha = %d, want 0", out.Pix[i+3])
	}
	if out.Pix[i+2] != 0 {
		t.Errorf("undrawn pixel = %v, want untouched", out.Pix[i:i+4])
	}
}

func TestApplyWatermarkNil(t *testing.T) {
	base := solid(20, 20, white)
	regs := mustRegions(t, [][]mask.Point{square(2, 2, 18, 18)}, 20, 20)
	if err := ApplyWatermark(base, regs, nil, 0.5, 0.5); !errors.Is(err, ErrNilDesign) {
		t.Fatalf("err = %v, want ErrNilDesign", err)
	}
}
