package placement

import (
	"math"
	"testing"

	"gangsheet-renderer/internal/mask"
)

func TestResolveCropPolicy(t *testing.T) {
	points := []mask.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}
	spec, err := Resolve(points, 0, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	const eps = 1e-9
	if math.Abs(spec.Width-95) > eps || math.Abs(spec.Height-95) > eps {
		t.Errorf("target = %vx%v, want 95x95", spec.Width, spec.Height)
	}
	if math.Abs(spec.CenterX-50) > eps || math.Abs(spec.CenterY-50) > eps {
		t.Errorf("center = (%v, %v), want (50, 50)", spec.CenterX, spec.CenterY)
	}
}

func TestResolveFillPolicy(t *testing.T) {
	points := []mask.Point{{X: 20, Y: 40}, {X: 120, Y: 40}, {X: 120, Y: 140}, {X: 20, Y: 140}}
	spec, err := Resolve(points, 1, 0.4)
	if err != nil {
		t.Fatal(err)
	}

	// Fill regions get the exact bbox, no safety margin.
	if spec.Width != 100 || spec.Height != 100 {
		t.Errorf("target = %vx%v, want 100x100", spec.Width, spec.Height)
	}
	if spec.CenterX != 70 {
		t.Errorf("CenterX = %v, want 70", spec.CenterX)
	}
	if spec.CenterY != 40+100*0.4 {
		t.Errorf("CenterY = %v, want 80", spec.CenterY)
	}
	if spec.MinX != 20 || spec.MinY != 40 || spec.MaxX != 120 || spec.MaxY != 140 {
		t.Errorf("bbox = (%v, %v, %v, %v), want (20, 40, 120, 140)",
			spec.MinX, spec.MinY, spec.MaxX, spec.MaxY)
	}
}

// Target never exceeds the bbox under the crop policy and equals it otherwise.
func TestResolveTargetBounds(t *testing.T) {
	polys := [][]mask.Point{
		{{X: 0, Y: 0}, {X: 55, Y: 3}, {X: 60, Y: 80}, {X: 2, Y: 71}},
		{{X: 10, Y: 10}, {X: 300, Y: 10}, {X: 300, Y: 40}, {X: 10, Y: 40}},
		{{X: -20, Y: -20}, {X: 20, Y: -20}, {X: 0, Y: 35}},
	}
	for i, poly := range polys {
		minX, minY, maxX, maxY := mask.BBox(poly)
		w, h := maxX-minX, maxY-minY

		crop, err := Resolve(poly, 0, 0.5)
		if err != nil {
			t.Fatal(err)
		}
		if crop.Width > w || crop.Height > h {
			t.Errorf("poly %d crop target %vx%v exceeds bbox %vx%v", i, crop.Width, crop.Height, w, h)
		}

		fill, err := Resolve(poly, 2, 0.5)
		if err != nil {
			t.Fatal(err)
		}
		if fill.Width != w || fill.Height != h {
			t.Errorf("poly %d fill target %vx%v != bbox %vx%v", i, fill.Width, fill.Height, w, h)
		}
	}
}

func TestResolveInvalidPolygon(t *testing.T) {
	if _, err := Resolve([]mask.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, 0, 0.5); err == nil {
		t.Fatal("Resolve with 2 points: want error")
	}
}
