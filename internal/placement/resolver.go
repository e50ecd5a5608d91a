// Package placement resolves where a design lands inside a mask region.
package placement

import (
	"gangsheet-renderer/internal/mask"
)

// cropSafety shrinks the first region's target so aspect-fit content is
// guaranteed not to clip at the mask edge.
const cropSafety = 0.95

// Spec is the resolved placement target for one region. Ephemeral: recomputed
// per render call, never persisted.
type Spec struct {
	CenterX, CenterY float64
	Width, Height    float64

	MinX, MinY, MaxX, MaxY float64
}

// Resolve computes the placement target for a region's polygon.
//
// Policy index 0 is the crop/fit region: the target is shrunk by the safety
// factor. Any higher index is a fill region: the target is the exact bounding
// box and overflow is cropped later. The vertical center sits at
// offsetFraction of the bbox height below its top edge.
func Resolve(points []mask.Point, policyIndex int, offsetFraction float64) (Spec, error) {
	if err := mask.Validate(points); err != nil {
		return Spec{}, err
	}

	minX, minY, maxX, maxY := mask.BBox(points)
	width := maxX - minX
	height := maxY - minY

	s := Spec{
		MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY,
		CenterX: (minX + maxX) / 2,
		CenterY: minY + height*offsetFraction,
	}
	if policyIndex == 0 {
		s.Width = cropSafety * width
		s.Height = cropSafety * height
	} else {
		s.Width = width
		s.Height = height
	}
	return s, nil
}
