// Package geom converts between physical print dimensions and pixels.
package geom

import "math"

// metersPerInch is exact by definition of the international inch.
const metersPerInch = 0.0254

// Pixels converts a physical length in inches to whole pixels at the given DPI.
func Pixels(inches, dpi float64) int {
	return int(math.Round(inches * dpi))
}

// Inches converts a pixel count back to inches at the given DPI.
func Inches(px int, dpi float64) float64 {
	return float64(px) / dpi
}

// PixelsPerMeter converts DPI to the pixels-per-meter value used by the PNG
// pHYs chunk (unit specifier 1 = meter).
func PixelsPerMeter(dpi float64) uint32 {
	return uint32(math.Round(dpi / metersPerInch))
}
