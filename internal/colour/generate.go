package colour

// Seed selection cutoffs. A candidate must hold at least minPopulation of
// the total weight and carry visible chroma to anchor a palette; images
// with no such colour (near-greyscale, tiny, or flat) fall back to the
// single heaviest bucket so generation never fails on a decodable image.
const (
	minPopulation = 0.01
	minSeedChroma = 5.0
)

// SelectSeed chooses the palette seed from a quantised histogram: the
// highest-weighted colour that clears the population threshold and the
// chroma cutoff, else the highest-weighted colour outright. Ties break on
// the packed colour value, so the choice does not depend on input order.
func SelectSeed(weighted []WeightedColour) (ARGB, error) {
	if len(weighted) == 0 {
		return 0, NewGenerationError("no sampled colours to select a seed from")
	}
	total := 0
	for _, wc := range weighted {
		total += wc.Weight
	}

	heavier := func(a WeightedColour, b *WeightedColour) bool {
		return b == nil || a.Weight > b.Weight || (a.Weight == b.Weight && a.Colour < b.Colour)
	}

	var chromatic, heaviest *WeightedColour
	for i := range weighted {
		wc := &weighted[i]
		if heavier(*wc, heaviest) {
			heaviest = wc
		}
		if float64(wc.Weight) < minPopulation*float64(total) {
			continue
		}
		if cam16FromARGB(wc.Colour).chroma < minSeedChroma {
			continue
		}
		if heavier(*wc, chromatic) {
			chromatic = wc
		}
	}
	if chromatic != nil {
		return chromatic.Colour, nil
	}
	return heaviest.Colour, nil
}

// Generate expands a quantised histogram into a full scheme. Fails only on
// an empty histogram, which the sampler contract rules out for any image
// it can decode.
func Generate(weighted []WeightedColour) (Scheme, error) {
	seed, err := SelectSeed(weighted)
	if err != nil {
		return Scheme{}, err
	}
	return SchemeFromSeed(seed), nil
}
