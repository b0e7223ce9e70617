package image

import "image"

// Stats summarises a wallpaper's overall character. The terminal target
// derives its background transparency from these, so the fields use the
// same luma weights and normalisation the rest of the pipeline was tuned
// against.
type Stats struct {
	// Brightness is the mean luma, 0 (black) to 255 (white).
	Brightness float64
	// Variance is the luma variance normalised into 0..1, where 1 means a
	// very busy image.
	Variance float64
	// Saturation is the mean per-pixel saturation, 0 (greyscale) to 1.
	Saturation float64
}

// varianceScale maps raw luma variance into 0..1. Flat wallpapers sit near
// zero, photographic ones typically reach 0.3 to 0.8 before the cap.
const varianceScale = 5000.0

// AnalyseStats computes image statistics over every pixel. Callers pass
// the downsampled image so the cost stays bounded.
func AnalyseStats(img image.Image) Stats {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return Stats{}
	}

	var lumaSum, lumaSquaredSum, saturationSum float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, _ := img.At(x, y).RGBA()
			r := float64(r16 >> 8)
			g := float64(g16 >> 8)
			b := float64(b16 >> 8)

			luma := 0.299*r + 0.587*g + 0.114*b
			lumaSum += luma
			lumaSquaredSum += luma * luma

			maxC := max(r, g, b)
			minC := min(r, g, b)
			if maxC > 0 {
				saturationSum += (maxC - minC) / maxC
			}
		}
	}

	n := float64(pixels)
	mean := lumaSum / n
	variance := lumaSquaredSum/n - mean*mean
	normalised := variance / varianceScale
	if normalised > 1 {
		normalised = 1
	}

	return Stats{
		Brightness: mean,
		Variance:   normalised,
		Saturation: saturationSum / n,
	}
}
