package gangsheet

import "image"

// TrimMargin is the breathing room kept around the artwork when a sheet is
// cropped to its visible content, in working-DPI pixels.
const TrimMargin = 10

// TrimAlpha crops img to the tight bounding box of pixels with non-zero
// alpha, expanded by margin on every side and clamped to the image bounds.
// ok is false when the image has no visible pixels at all.
func TrimAlpha(img *image.NRGBA, margin int) (*image.NRGBA, bool) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	minX, minY := w, h
	maxX, maxY := -1, -1
	for y := 0; y < h; y++ {
		row := y * img.Stride
		for x := 0; x < w; x++ {
			if img.Pix[row+x*4+3] > 0 {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}

	if maxX < 0 {
		return nil, false
	}

	minX = maxInt(minX-margin, 0)
	minY = maxInt(minY-margin, 0)
	maxX = minInt(maxX+margin, w-1)
	maxY = minInt(maxY+margin, h-1)

	cropW := maxX - minX + 1
	cropH := maxY - minY + 1
	cropped := image.NewNRGBA(image.Rect(0, 0, cropW, cropH))
	for y := 0; y < cropH; y++ {
		srcOff := (minY+y)*img.Stride + minX*4
		dstOff := y * cropped.Stride
		copy(cropped.Pix[dstOff:dstOff+cropW*4], img.Pix[srcOff:srcOff+cropW*4])
	}
	return cropped, true
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
