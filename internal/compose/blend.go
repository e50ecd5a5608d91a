package compose

import (
	"image"

	"gangsheet-renderer/internal/mask"
)

// blendOpts controls how a placed image is blended into the destination.
type blendOpts struct {
	// opacity scales the source alpha (1 for designs, <1 for watermarks).
	opacity float64
	// requireInk suppresses blending where the destination alpha is zero,
	// restricting the source to the already-drawn silhouette.
	requireInk bool
}

// blendMasked alpha-blends src into dst with its top-left corner at (ox, oy).
// Only pixels whose destination coordinate has the mask bit set are touched;
// everything else inside the rectangular window is left as-is. The window is
// clamped to the destination bounds.
func blendMasked(dst, src *image.NRGBA, ox, oy int, m *mask.Mask, opts blendOpts) {
	sb := src.Bounds()
	db := dst.Bounds()
	for y := 0; y < sb.Dy(); y++ {
		dy := oy + y
		if dy < 0 || dy >= db.Dy() {
			continue
		}
		for x := 0; x < sb.Dx(); x++ {
			dx := ox + x
			if dx < 0 || dx >= db.Dx() {
				continue
			}
			if !m.At(dx, dy) {
				continue
			}

			si := src.PixOffset(sb.Min.X+x, sb.Min.Y+y)
			di := dst.PixOffset(dx, dy)

			if opts.requireInk && dst.Pix[di+3] == 0 {
				continue
			}

			a := float64(src.Pix[si+3]) / 255 * opts.opacity
			if a <= 0 {
				continue
			}

			for c := 0; c < 3; c++ {
				dst.Pix[di+c] = clamp8((1-a)*float64(dst.Pix[di+c]) + a*float64(src.Pix[si+c]))
			}
			srcA := clamp8(float64(src.Pix[si+3]) * opts.opacity)
			if srcA > dst.Pix[di+3] {
				dst.Pix[di+3] = srcA
			}
		}
	}
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
