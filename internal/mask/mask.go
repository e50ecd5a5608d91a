// Package mask rasterizes placement polygons into binary pixel grids.
package mask

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/vector"
)

// Point is a polygon vertex in template pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ValidationError reports a polygon that cannot be rasterized.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "mask: " + e.Reason
}

// coverage at or above this value marks a pixel as inside the mask. Pinned so
// the grid is reproducible bit-for-bit across implementations.
const insideThreshold = 128

// Mask is a binary W×H grid. Its dimensions always equal the base template's.
type Mask struct {
	W, H int
	bits []bool
}

// At reports whether (x, y) is inside the mask. Out-of-range is outside.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return false
	}
	return m.bits[y*m.W+x]
}

// Validate checks that points form a rasterizable polygon: at least three
// vertices, all coordinates finite.
func Validate(points []Point) error {
	if len(points) < 3 {
		return &ValidationError{Reason: fmt.Sprintf("polygon needs at least 3 points, got %d", len(points))}
	}
	for i, p := range points {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			return &ValidationError{Reason: fmt.Sprintf("point %d is not finite: (%v, %v)", i, p.X, p.Y)}
		}
	}
	return nil
}

// Rasterize fills the polygon onto a w×h grid using the nonzero winding rule.
// The polygon is closed implicitly from the last point back to the first.
func Rasterize(points []Point, w, h int) (*Mask, error) {
	if err := Validate(points); err != nil {
		return nil, err
	}
	if w <= 0 || h <= 0 {
		return nil, &ValidationError{Reason: fmt.Sprintf("invalid raster size %dx%d", w, h)}
	}

	ras := vector.NewRasterizer(w, h)
	ras.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		ras.LineTo(float32(p.X), float32(p.Y))
	}
	ras.ClosePath()

	cov := image.NewAlpha(image.Rect(0, 0, w, h))
	ras.Draw(cov, cov.Bounds(), image.Opaque, image.Point{})

	m := &Mask{W: w, H: h, bits: make([]bool, w*h)}
	for i, a := range cov.Pix {
		m.bits[i] = a >= insideThreshold
	}
	return m, nil
}

// BBox returns the axis-aligned bounding box of the polygon vertices. The
// geometric extent of the points, not the rasterized bits, drives placement:
// a 0..100 square must resolve to width 100 even though the raster fills
// pixel columns 0..99.
func BBox(points []Point) (minX, minY, maxX, maxY float64) {
	minX, minY = points[0].X, points[0].Y
	maxX, maxY = minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return
}
