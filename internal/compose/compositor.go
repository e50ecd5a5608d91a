package compose

import (
	"errors"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"gangsheet-renderer/internal/placement"
)

// ErrNilDesign is returned when the design image is missing (failed decode
// upstream). The compositor still returns a usable copy of the base so the
// batch can continue.
var ErrNilDesign = errors.New("compose: nil design image")

// RenderMockup composites design into each region of base, in region order,
// and returns a new image. The base is never mutated: it may live in a shared
// cache.
//
// Region 0 uses the crop/fit policy (aspect-preserving fit inside the safety
// box, centered). Later regions use fill-height: the design is scaled to the
// exact mask height, centered horizontally, and cropped to the mask width.
func RenderMockup(base *image.NRGBA, regs []Region, design *image.NRGBA, offsetFraction float64) (*image.NRGBA, error) {
	out := cloneNRGBA(base)
	if design == nil {
		return out, ErrNilDesign
	}

	for i, reg := range regs {
		spec, err := placement.Resolve(reg.Points, i, offsetFraction)
		if err != nil {
			return nil, err
		}
		if err := placeRegion(out, design, reg, i, spec, blendOpts{opacity: 1}); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// placeRegion scales the source for one region per its policy index and
// blends it through the region mask.
func placeRegion(dst, src *image.NRGBA, reg Region, policyIndex int, spec placement.Spec, opts blendOpts) error {
	sb := src.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 {
		return ErrNilDesign
	}

	var scaled *image.NRGBA
	var ox, oy int

	if policyIndex == 0 {
		// Aspect-preserving fit: the binding dimension is whichever overflows
		// the placement box first.
		designAspect := float64(sb.Dx()) / float64(sb.Dy())
		placeAspect := spec.Width / spec.Height
		if designAspect > placeAspect {
			scaled = imaging.Resize(src, round(spec.Width), 0, imaging.Lanczos)
		} else {
			scaled = imaging.Resize(src, 0, round(spec.Height), imaging.Lanczos)
		}
		ox = round(spec.CenterX - float64(scaled.Bounds().Dx())/2)
		oy = round(spec.CenterY - float64(scaled.Bounds().Dy())/2)
	} else {
		// Fill-height: scale to the exact mask bbox height, crop overflow
		// width symmetrically. A narrower result stays centered and the
		// uncovered margin is simply never blended.
		maskW := round(spec.MaxX - spec.MinX)
		maskH := round(spec.MaxY - spec.MinY)
		scaled = imaging.Resize(src, 0, maskH, imaging.Lanczos)
		if scaled.Bounds().Dx() > maskW {
			scaled = imaging.CropCenter(scaled, maskW, maskH)
		}
		ox = round(spec.CenterX - float64(scaled.Bounds().Dx())/2)
		oy = round(spec.MinY)
	}

	blendMasked(dst, scaled, ox, oy, reg.Mask, opts)
	return nil
}

func cloneNRGBA(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

func round(v float64) int {
	return int(math.Round(v))
}
