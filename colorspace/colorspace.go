// Package colorspace holds color types and conversions shared across
// quantization, background detection and dot placement: sRGB<->Lab for
// perceptual distance, and hex parsing/formatting for SVG output.
package colorspace

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB8 is an 8-bit-per-channel opaque color, the unit palettes and dot
// fills are expressed in.
type RGB8 struct {
	R, G, B uint8
}

// Lab is a CIE L*a*b* color under the D65 illuminant (the same white
// point and formula the reference implementation uses), used for all
// perceptual color-distance comparisons.
type Lab struct {
	L, A, B float64
}

// ToLab converts an 8-bit sRGB color to CIE L*a*b* (D65).
func (c RGB8) ToLab() Lab {
	cc := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	l, a, b := cc.Lab()
	return Lab{L: l * 100, A: a * 100, B: b * 100}
}

// ToRGB8 converts a CIE L*a*b* (D65) color back to 8-bit sRGB, clamping
// each channel into range (an out-of-gamut Lab value, e.g. an averaged
// gradient stop, can otherwise round-trip to a negative or >1 channel).
func (l Lab) ToRGB8() RGB8 {
	cc := colorful.Lab(l.L/100, l.A/100, l.B/100)
	clamp := func(v float64) uint8 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return RGB8{R: clamp(cc.R), G: clamp(cc.G), B: clamp(cc.B)}
}

// Distance returns the Euclidean distance between two Lab colors
// (Delta E, CIE76 definition).
func (l Lab) Distance(other Lab) float64 {
	dl := l.L - other.L
	da := l.A - other.A
	db := l.B - other.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// Hex formats the color as a lowercase "#rrggbb" string, the format
// required for SVG fill/stroke attributes.
func (c RGB8) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBDistance returns the Euclidean distance in 8-bit RGB space, used by
// the cheap per-pixel layer-membership test ahead of the more expensive
// Lab comparisons.
func (c RGB8) RGBDistance(other RGB8) float64 {
	dr := float64(c.R) - float64(other.R)
	dg := float64(c.G) - float64(other.G)
	db := float64(c.B) - float64(other.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}
