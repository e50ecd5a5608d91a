package mask

import (
	"errors"
	"math"
	"testing"
)

func square(x0, y0, x1, y1 float64) []Point {
	return []Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		wantOK bool
	}{
		{"triangle", []Point{{0, 0}, {10, 0}, {5, 8}}, true},
		{"two points", []Point{{0, 0}, {10, 0}}, false},
		{"empty", nil, false},
		{"nan coordinate", []Point{{0, 0}, {math.NaN(), 0}, {5, 8}}, false},
		{"inf coordinate", []Point{{0, 0}, {10, 0}, {5, math.Inf(1)}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.points)
			if tt.wantOK && err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
			if !tt.wantOK {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("Validate() = %v, want *ValidationError", err)
				}
			}
		})
	}
}

func TestRasterizeSquare(t *testing.T) {
	m, err := Rasterize(square(10, 10, 90, 90), 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	if m.W != 100 || m.H != 100 {
		t.Fatalf("mask is %dx%d, want 100x100", m.W, m.H)
	}

	inside := [][2]int{{50, 50}, {11, 11}, {88, 88}}
	for _, p := range inside {
		if !m.At(p[0], p[1]) {
			t.Errorf("At(%d, %d) = false, want true", p[0], p[1])
		}
	}
	outside := [][2]int{{5, 50}, {95, 50}, {50, 5}, {50, 95}, {-1, 50}, {100, 50}}
	for _, p := range outside {
		if m.At(p[0], p[1]) {
			t.Errorf("At(%d, %d) = true, want false", p[0], p[1])
		}
	}
}

// A contour wound twice around the same square: even-odd fill would cancel
// the interior to empty, nonzero winding keeps it filled.
func TestRasterizeNonzeroWinding(t *testing.T) {
	twice := append(square(10, 10, 90, 90), square(20, 20, 80, 80)...)
	m, err := Rasterize(twice, 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	if !m.At(50, 50) {
		t.Error("doubly-wound interior not filled; fill rule is not nonzero winding")
	}
}

func TestRasterizeInvalidSize(t *testing.T) {
	if _, err := Rasterize(square(0, 0, 10, 10), 0, 100); err == nil {
		t.Fatal("Rasterize with zero width: want error")
	}
}

func TestBBox(t *testing.T) {
	minX, minY, maxX, maxY := BBox(square(0, 0, 100, 100))
	if minX != 0 || minY != 0 || maxX != 100 || maxY != 100 {
		t.Errorf("BBox = (%v, %v, %v, %v), want (0, 0, 100, 100)", minX, minY, maxX, maxY)
	}

	minX, minY, maxX, maxY = BBox([]Point{{30, 70}, {-5, 12}, {88, 40}})
	if minX != -5 || minY != 12 || maxX != 88 || maxY != 70 {
		t.Errorf("BBox = (%v, %v, %v, %v), want (-5, 12, 88, 70)", minX, minY, maxX, maxY)
	}
}
