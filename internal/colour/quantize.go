package colour

import (
	"image"
	"sort"
)

// quantizeBits is the per-channel bucket width for histogram quantisation.
// 5 bits (32 levels per channel) keeps the histogram small while leaving
// bucket centres close enough to the source pixels for seed selection.
// Implementation constant, not user-configurable.
const quantizeBits = 5

// WeightedColour is one histogram bucket: a representative colour and the
// number of sampled pixels that fell into it.
type WeightedColour struct {
	Colour ARGB `json:"colour"`
	Weight int  `json:"weight"`
}

// Quantize buckets every pixel of img into a weighted colour histogram,
// sorted by weight descending with ties broken by packed colour value so
// the ordering is reproducible. Alpha is ignored the way the decoded
// premultiplied values present it.
func Quantize(img image.Image) []WeightedColour {
	counts := make(map[ARGB]int)
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			bucket := FromRGB(
				requantize(uint8(r>>8)),
				requantize(uint8(g>>8)),
				requantize(uint8(b>>8)),
			)
			counts[bucket]++
		}
	}

	weighted := make([]WeightedColour, 0, len(counts))
	for c, n := range counts {
		weighted = append(weighted, WeightedColour{Colour: c, Weight: n})
	}
	sort.Slice(weighted, func(i, j int) bool {
		if weighted[i].Weight != weighted[j].Weight {
			return weighted[i].Weight > weighted[j].Weight
		}
		return weighted[i].Colour < weighted[j].Colour
	})
	return weighted
}

// requantize truncates a channel to the bucket grid and re-expands it with
// bit replication, so bucket representatives span the full 0..255 range.
func requantize(v uint8) uint8 {
	q := v >> (8 - quantizeBits)
	return q<<(8-quantizeBits) | q>>(2*quantizeBits-8)
}
