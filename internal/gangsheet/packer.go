// Package gangsheet tiles repeated print artwork onto fixed-size print media
// using greedy shelf packing.
package gangsheet

import (
	"errors"
	"fmt"
	"image"

	"gangsheet-renderer/internal/config"
	"gangsheet-renderer/internal/geom"
)

// ErrDimensionOverflow means a single item cannot fit an empty canvas. The
// packing loop never produces it for items that fit; it is an assertion on
// the inputs, not a recoverable layout condition.
var ErrDimensionOverflow = errors.New("gangsheet: item exceeds canvas bounds")

// Item is one artwork to repeat across the sheets. A nil Image marks an asset
// that failed to load: its count is still consumed, with zero footprint, so
// the batch accounting stays consistent (the skip shows up in the report, the
// layout just has a hole).
type Item struct {
	Image     *image.NRGBA
	SizeLabel string
	Count     int
}

// Params are the packing dimensions in working-DPI pixels.
type Params struct {
	MaxW, MaxH         int
	SpacingW, SpacingH int
	WorkingDPI         float64
	OutputDPI          float64
}

// ParamsFromPolicy converts a template policy's physical dimensions to pixels.
func ParamsFromPolicy(pol config.TemplatePolicy) Params {
	return Params{
		MaxW:       geom.Pixels(pol.CanvasMaxWIn, pol.WorkingDPI),
		MaxH:       geom.Pixels(pol.CanvasMaxHIn, pol.WorkingDPI),
		SpacingW:   geom.Pixels(pol.SpacingWIn, pol.WorkingDPI),
		SpacingH:   geom.Pixels(pol.SpacingHIn, pol.WorkingDPI),
		WorkingDPI: pol.WorkingDPI,
		OutputDPI:  pol.OutputDPI,
	}
}

// Placement records one placed instance, pre-trim, for verification.
type Placement struct {
	Item int // index into the input items
	X, Y int
}

// Sheet is one finalized gang sheet: trimmed, rescaled to output DPI, with a
// sequential 1-based part number.
type Sheet struct {
	Image      *image.NRGBA
	Part       int
	Placements []Placement
}

// Report is the outcome of a packing run.
type Report struct {
	Sheets []Sheet
	// EmptySheets counts finalized sheets with no visible pixels, which are
	// discarded instead of written. Happens when every item on the sheet had
	// a nil image.
	EmptySheets int
}

// Pack lays out every requested instance across as many sheets as needed.
//
// Each sheet fills shelf-style: left to right, wrapping to a new row when the
// width is exceeded, stopping the sheet when the next row would exceed the
// height. Instances of one item stay contiguous except across a sheet
// boundary, and the split item resumes as the first item on the next sheet.
func Pack(items []Item, p Params) (*Report, error) {
	if p.MaxW <= 0 || p.MaxH <= 0 {
		return nil, fmt.Errorf("%w: canvas %dx%d", ErrDimensionOverflow, p.MaxW, p.MaxH)
	}

	remaining := make([]int, len(items))
	total := 0
	for i, it := range items {
		if it.Count > 0 {
			remaining[i] = it.Count
			total += it.Count
		}
	}

	report := &Report{}
	cursor := 0
	part := 0

	for total > 0 {
		canvas := image.NewNRGBA(image.Rect(0, 0, p.MaxW, p.MaxH))
		var placements []Placement
		x, y, rowH := 0, 0, 0
		full := false

		for i := cursor; i < len(items) && !full; i++ {
			if remaining[i] <= 0 {
				continue
			}
			img := items[i].Image
			var w, h int
			if img != nil {
				w, h = img.Bounds().Dx(), img.Bounds().Dy()
			}

			for remaining[i] > 0 {
				if w > p.MaxW || h+p.SpacingH > p.MaxH {
					return nil, fmt.Errorf("%w: item %d (%s) is %dx%dpx, canvas is %dx%dpx",
						ErrDimensionOverflow, i, items[i].SizeLabel, w, h, p.MaxW, p.MaxH)
				}
				if x+w > p.MaxW {
					x = 0
					y += rowH + p.SpacingH
					rowH = 0
				}
				if y+h+p.SpacingH > p.MaxH {
					// Sheet is full; this item resumes first on the next one.
					cursor = i
					full = true
					break
				}

				if img != nil {
					drawAt(canvas, img, x, y)
				}
				placements = append(placements, Placement{Item: i, X: x, Y: y})
				x += w + p.SpacingW
				if h > rowH {
					rowH = h
				}
				remaining[i]--
				total--
			}
		}

		trimmed, ok := TrimAlpha(canvas, TrimMargin)
		if !ok {
			report.EmptySheets++
			continue
		}
		if p.WorkingDPI > 0 && p.OutputDPI > 0 && p.OutputDPI != p.WorkingDPI {
			trimmed = Rescale(trimmed, p.OutputDPI/p.WorkingDPI)
		}
		part++
		report.Sheets = append(report.Sheets, Sheet{Image: trimmed, Part: part, Placements: placements})
	}

	return report, nil
}

// drawAt copies src onto dst row by row. Sheets start transparent and shelf
// placement never overlaps, so a straight copy is correct.
func drawAt(dst, src *image.NRGBA, ox, oy int) {
	sb := src.Bounds()
	w := sb.Dx()
	for y := 0; y < sb.Dy(); y++ {
		si := src.PixOffset(sb.Min.X, sb.Min.Y+y)
		di := dst.PixOffset(ox, oy+y)
		copy(dst.Pix[di:di+w*4], src.Pix[si:si+w*4])
	}
}
