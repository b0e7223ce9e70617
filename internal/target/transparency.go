package target

import (
	"math"

	"github.com/jmylchreest/imbue/internal/colour"
	imbueimage "github.com/jmylchreest/imbue/internal/image"
)

// Terminal transparency adapts to the wallpaper: bright wallpapers afford
// a more transparent terminal, busy (high variance) wallpapers pull it
// back towards opaque so text stays readable, and saturated wallpapers
// get a small boost so the colour shows through. Values are gsettings
// background-transparency-percent, 0 (opaque) to 100.
const (
	darkBaseTransparency  = 20.0
	darkBrightnessRange   = 45.0
	darkVariancePenalty   = 10.0
	darkMinTransparency   = 15
	darkMaxTransparency   = 70
	lightBaseTransparency = 5.0
	lightBrightnessRange  = 30.0
	lightVariancePenalty  = 5.0
	lightMinTransparency  = 0
	lightMaxTransparency  = 40
	saturationBoost       = 5.0
)

// TerminalTransparency derives a transparency percentage from wallpaper
// statistics. The result is deterministic for a given Stats and mode.
func TerminalTransparency(stats imbueimage.Stats, mode colour.ThemeMode) int {
	brightness := stats.Brightness / 255.0

	var value float64
	var low, high int
	if mode == colour.ModeLight {
		value = lightBaseTransparency + brightness*lightBrightnessRange
		value -= stats.Variance * lightVariancePenalty
		low, high = lightMinTransparency, lightMaxTransparency
	} else {
		value = darkBaseTransparency + brightness*darkBrightnessRange
		value -= stats.Variance * darkVariancePenalty
		low, high = darkMinTransparency, darkMaxTransparency
	}
	value += stats.Saturation * saturationBoost

	rounded := int(math.Round(value))
	if rounded < low {
		return low
	}
	if rounded > high {
		return high
	}
	return rounded
}
