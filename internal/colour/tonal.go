package colour

import "math"

// TonalPalette is a one-dimensional family of colours sharing a hue and
// chroma, addressed by tone. The scheme tables pull every role colour out
// of one of these.
type TonalPalette struct {
	Hue    float64
	Chroma float64
}

// Tone returns the palette colour at the given L* tone, clamped to the
// sRGB gamut at this hue.
func (p TonalPalette) Tone(tone float64) ARGB {
	return solveToARGB(p.Hue, p.Chroma, tone)
}

// corePalette is the six tonal palettes derived from one seed colour.
// Construction constants follow the Material palette expansion: accent
// chroma floors at 48, supporting palettes use fixed low chromas, the
// tertiary hue rotates 60 degrees, and error is anchored at hue 25.
type corePalette struct {
	a1  TonalPalette // primary
	a2  TonalPalette // secondary
	a3  TonalPalette // tertiary
	n1  TonalPalette // neutral
	n2  TonalPalette // neutral variant
	err TonalPalette
}

func newCorePalette(seed ARGB) corePalette {
	cam := cam16FromARGB(seed)
	hue := cam.hue
	chroma := cam.chroma
	return corePalette{
		a1:  TonalPalette{Hue: hue, Chroma: math.Max(48.0, chroma)},
		a2:  TonalPalette{Hue: hue, Chroma: 16.0},
		a3:  TonalPalette{Hue: sanitizeDegrees(hue + 60.0), Chroma: 24.0},
		n1:  TonalPalette{Hue: hue, Chroma: 4.0},
		n2:  TonalPalette{Hue: hue, Chroma: 8.0},
		err: TonalPalette{Hue: 25.0, Chroma: 84.0},
	}
}
