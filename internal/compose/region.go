// Package compose places a design into template mask regions and blends it
// over the base product image.
package compose

import (
	"gangsheet-renderer/internal/mask"
)

// Region pairs a rasterized mask with the polygon it came from. The mask grid
// always has the base template's dimensions.
type Region struct {
	Points []mask.Point
	Mask   *mask.Mask
}

// PrepareRegions rasterizes every polygon at the template's dimensions.
// Fails on the first invalid polygon.
func PrepareRegions(polys [][]mask.Point, w, h int) ([]Region, error) {
	regs := make([]Region, 0, len(polys))
	for _, poly := range polys {
		m, err := mask.Rasterize(poly, w, h)
		if err != nil {
			return nil, err
		}
		regs = append(regs, Region{Points: poly, Mask: m})
	}
	return regs, nil
}
