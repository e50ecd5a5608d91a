package compose

import (
	"image"

	"gangsheet-renderer/internal/placement"
)

// ApplyWatermark blends wm over dst in every region, using the same placement
// mechanics as the design pass. The effective mask is the region mask ANDed
// with the already-drawn silhouette: pixels the design never touched stay
// clean even inside the polygon. Mutates dst in place.
func ApplyWatermark(dst *image.NRGBA, regs []Region, wm *image.NRGBA, offsetFraction, opacity float64) error {
	if wm == nil {
		return ErrNilDesign
	}
	for i, reg := range regs {
		spec, err := placement.Resolve(reg.Points, i, offsetFraction)
		if err != nil {
			return err
		}
		opts := blendOpts{opacity: opacity, requireInk: true}
		if err := placeRegion(dst, wm, reg, i, spec, opts); err != nil {
			return err
		}
	}
	return nil
}
