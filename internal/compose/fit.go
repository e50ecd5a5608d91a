package compose

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"gangsheet-renderer/internal/config"
	"gangsheet-renderer/internal/geom"
)

// FitToTemplate handles templates without mask regions: the design is scaled
// to the template's physical target size and centered on a transparent canvas
// at the template's configured dimensions, all at working DPI.
//
// With match_aspect set, both axes are forced to the target inches; otherwise
// the largest side matches its target and the other follows the design's
// aspect ratio.
func FitToTemplate(design *image.NRGBA, pol config.TemplatePolicy) (*image.NRGBA, error) {
	if design == nil {
		return nil, ErrNilDesign
	}

	dpi := pol.WorkingDPI
	targetW := geom.Pixels(pol.TargetWIn, dpi)
	targetH := geom.Pixels(pol.TargetHIn, dpi)

	var scaled *image.NRGBA
	switch {
	case pol.MatchAspect:
		scaled = imaging.Resize(design, targetW, targetH, imaging.Lanczos)
	case design.Bounds().Dx() >= design.Bounds().Dy():
		scaled = imaging.Resize(design, targetW, 0, imaging.Lanczos)
	default:
		scaled = imaging.Resize(design, 0, targetH, imaging.Lanczos)
	}

	canvas := imaging.New(geom.Pixels(pol.CanvasWIn, dpi), geom.Pixels(pol.CanvasHIn, dpi), color.NRGBA{})
	return imaging.PasteCenter(canvas, scaled), nil
}
