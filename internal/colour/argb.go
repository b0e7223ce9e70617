// Package colour implements the perceptual colour pipeline: quantisation of
// sampled pixels, seed selection, and expansion of a seed into a full
// dark+light scheme through the HCT (hue, chroma, tone) colour model.
package colour

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ARGB is a packed 32-bit colour in 0xAARRGGBB order. The engine only
// produces opaque colours, so the alpha byte is always 0xff.
type ARGB uint32

// FromRGB packs three 8-bit channels into an opaque ARGB value.
func FromRGB(r, g, b uint8) ARGB {
	return ARGB(0xff000000 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// Red returns the red channel.
func (c ARGB) Red() uint8 { return uint8(c >> 16) }

// Green returns the green channel.
func (c ARGB) Green() uint8 { return uint8(c >> 8) }

// Blue returns the blue channel.
func (c ARGB) Blue() uint8 { return uint8(c) }

// Hex returns the colour as a lowercase "#rrggbb" string.
func (c ARGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.Red(), c.Green(), c.Blue())
}

// HexStrip returns the colour as "rrggbb" without the leading '#'.
func (c ARGB) HexStrip() string {
	return fmt.Sprintf("%02x%02x%02x", c.Red(), c.Green(), c.Blue())
}

// RGBTriplet returns the colour as "r, g, b" in decimal, the form INI and
// CSS-fragment templates splice into their own wrappers.
func (c ARGB) RGBTriplet() string {
	return fmt.Sprintf("%d, %d, %d", c.Red(), c.Green(), c.Blue())
}

// Colorful converts to a go-colorful colour for HSL views and blending.
func (c ARGB) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.Red()) / 255.0,
		G: float64(c.Green()) / 255.0,
		B: float64(c.Blue()) / 255.0,
	}
}

// ParseHex parses "#rrggbb" (or "#rgb") into an ARGB value.
func ParseHex(s string) (ARGB, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return 0, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	r, g, b := col.RGB255()
	return FromRGB(r, g, b), nil
}

// CIE conversion constants shared by the L* and HCT code paths.
const (
	labE     = 216.0 / 24389.0
	labKappa = 24389.0 / 27.0
)

// linearized converts an 8-bit sRGB channel to linear light in 0..100.
func linearized(component uint8) float64 {
	normalized := float64(component) / 255.0
	if normalized <= 0.040449936 {
		return normalized / 12.92 * 100.0
	}
	return math.Pow((normalized+0.055)/1.055, 2.4) * 100.0
}

// delinearized converts linear light in 0..100 back to an 8-bit sRGB channel.
func delinearized(component float64) uint8 {
	normalized := component / 100.0
	var delin float64
	if normalized <= 0.0031308 {
		delin = normalized * 12.92
	} else {
		delin = 1.055*math.Pow(normalized, 1.0/2.4) - 0.055
	}
	v := math.Round(delin * 255.0)
	if v < 0 {
		v = 0
	} else if v > 255 {
		v = 255
	}
	return uint8(v)
}

func argbFromLinrgb(linrgb [3]float64) ARGB {
	return FromRGB(delinearized(linrgb[0]), delinearized(linrgb[1]), delinearized(linrgb[2]))
}

// yFromLstar converts CIE L* to relative luminance Y (0..100).
func yFromLstar(lstar float64) float64 {
	ft := (lstar + 16.0) / 116.0
	ft3 := ft * ft * ft
	if ft3 > labE {
		return ft3 * 100.0
	}
	return (116.0*ft - 16.0) / labKappa * 100.0
}

// lstarFromY converts relative luminance Y (0..100) to CIE L*.
func lstarFromY(y float64) float64 {
	yNorm := y / 100.0
	if yNorm > labE {
		return 116.0*math.Cbrt(yNorm) - 16.0
	}
	return labKappa * yNorm
}

// LstarOf returns the CIE L* (tone) of a colour, 0 for black to 100 for white.
func LstarOf(c ARGB) float64 {
	y := 0.2126*linearized(c.Red()) + 0.7152*linearized(c.Green()) + 0.0722*linearized(c.Blue())
	return lstarFromY(y)
}

// ARGBFromLstar returns the neutral grey with the given tone.
func ARGBFromLstar(lstar float64) ARGB {
	component := delinearized(yFromLstar(lstar))
	return FromRGB(component, component, component)
}

func sanitizeDegrees(degrees float64) float64 {
	degrees = math.Mod(degrees, 360.0)
	if degrees < 0 {
		degrees += 360.0
	}
	return degrees
}
