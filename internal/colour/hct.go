package colour

import "math"

// TableVersion identifies the pinned constant set behind the HCT pipeline:
// the CAM16 matrices and viewing conditions, the tonal-palette construction
// rules, and the scheme tone tables. A colour produced for one version is
// not comparable to another, so cached schemes embed this value and are
// discarded on mismatch.
const TableVersion = 1

// HCT is a colour in hue/chroma/tone space. Hue and chroma come from CAM16
// under the default viewing conditions; tone is CIE L* of the same colour.
// Not every (hue, chroma, tone) triple is displayable in sRGB; ToARGB maps
// out-of-gamut requests to the nearest displayable chroma at the same hue
// and tone.
type HCT struct {
	Hue    float64
	Chroma float64
	Tone   float64
}

// HCTFromARGB measures the hue, chroma and tone of an sRGB colour.
func HCTFromARGB(argb ARGB) HCT {
	cam := cam16FromARGB(argb)
	return HCT{Hue: cam.hue, Chroma: cam.chroma, Tone: LstarOf(argb)}
}

// ToARGB finds the sRGB colour with this hue and tone and as much of the
// requested chroma as the gamut allows.
func (h HCT) ToARGB() ARGB {
	return solveToARGB(h.Hue, h.Chroma, h.Tone)
}

// Matrices mapping between linear sRGB and the CAM16 cone response space
// with the default environment's white point and adaptation folded in.
var scaledDiscountFromLinrgb = [3][3]float64{
	{0.001200833568784504, 0.002389694492170889, 0.0002795742885861124},
	{0.0005891086651375999, 0.0029785502573438758, 0.0003270666104008398},
	{0.00010146692491640572, 0.0005364214359186694, 0.0032979401770712076},
}

var linrgbFromScaledDiscount = [3][3]float64{
	{1373.2198709594231, -1100.4251190754821, -7.278681089101213},
	{-271.815969077903, 559.6580465940733, -32.46047482791194},
	{1.9622899599665666, -57.173814538844006, 308.7233197812385},
}

var yFromLinrgb = [3]float64{0.2126, 0.7152, 0.0722}

// solveToARGB maps (hue degrees, chroma, L* tone) to a displayable colour.
// Requests inside the gamut resolve exactly; outside it, chroma is reduced
// by bisection until the first displayable answer, which keeps the mapping
// deterministic for any input.
func solveToARGB(hueDegrees, chroma, lstar float64) ARGB {
	if chroma < 0.0001 || lstar < 0.0001 || lstar > 99.9999 {
		return ARGBFromLstar(lstar)
	}
	hueRadians := sanitizeDegrees(hueDegrees) / 180.0 * math.Pi
	y := yFromLstar(lstar)

	if exact := findResultByJ(hueRadians, chroma, y); exact != 0 {
		return exact
	}

	// Gamut boundary search. Chroma 0 is the always-displayable grey with
	// luminance y, so the invariant low < boundary <= high holds throughout.
	low, high := 0.0, chroma
	answer := ARGBFromLstar(lstar)
	for i := 0; i < 40; i++ {
		mid := (low + high) / 2.0
		if result := findResultByJ(hueRadians, mid, y); result != 0 {
			answer = result
			low = mid
		} else {
			high = mid
		}
	}
	return answer
}

// findResultByJ iterates CAM16 lightness J toward the requested luminance.
// Returns 0 when the requested chroma is not displayable at this hue and
// luminance.
func findResultByJ(hueRadians, chroma, y float64) ARGB {
	j := math.Sqrt(y) * 11.0
	vc := defaultViewing
	tInnerCoeff := 1.0 / math.Pow(1.64-math.Pow(0.29, vc.n), 0.73)
	eHue := 0.25 * (math.Cos(hueRadians+2.0) + 3.8)
	p1 := eHue * (50000.0 / 13.0) * vc.nc * vc.ncb
	hSin := math.Sin(hueRadians)
	hCos := math.Cos(hueRadians)

	for iteration := 0; iteration < 5; iteration++ {
		jNormalized := j / 100.0
		alpha := 0.0
		if chroma != 0.0 && j != 0.0 {
			alpha = chroma / math.Sqrt(jNormalized)
		}
		t := math.Pow(alpha*tInnerCoeff, 1.0/0.9)
		ac := vc.aw * math.Pow(jNormalized, 1.0/(vc.c*vc.z))
		p2 := ac / vc.nbb
		gamma := 23.0 * (p2 + 0.305) * t / (23.0*p1 + 11.0*t*hCos + 108.0*t*hSin)
		a := gamma * hCos
		b := gamma * hSin
		rA := (460.0*p2 + 451.0*a + 288.0*b) / 1403.0
		gA := (460.0*p2 - 891.0*a - 261.0*b) / 1403.0
		bA := (460.0*p2 - 220.0*a - 6300.0*b) / 1403.0

		rCScaled := inverseChromaticAdaptation(rA)
		gCScaled := inverseChromaticAdaptation(gA)
		bCScaled := inverseChromaticAdaptation(bA)

		var linrgb [3]float64
		for row := 0; row < 3; row++ {
			linrgb[row] = rCScaled*linrgbFromScaledDiscount[row][0] +
				gCScaled*linrgbFromScaledDiscount[row][1] +
				bCScaled*linrgbFromScaledDiscount[row][2]
		}
		if linrgb[0] < 0 || linrgb[1] < 0 || linrgb[2] < 0 {
			return 0
		}

		fnj := yFromLinrgb[0]*linrgb[0] + yFromLinrgb[1]*linrgb[1] + yFromLinrgb[2]*linrgb[2]
		if fnj <= 0 {
			return 0
		}
		if iteration == 4 || math.Abs(fnj-y) < 0.002 {
			if linrgb[0] > 100.01 || linrgb[1] > 100.01 || linrgb[2] > 100.01 {
				return 0
			}
			return argbFromLinrgb(linrgb)
		}
		j = j - (fnj-y)*j/(2.0*fnj)
	}
	return 0
}

// inverseChromaticAdaptation undoes the cone response compression.
func inverseChromaticAdaptation(adapted float64) float64 {
	adaptedAbs := math.Abs(adapted)
	base := math.Max(0, 27.13*adaptedAbs/(400.0-adaptedAbs))
	return signum(adapted) * math.Pow(base, 1.0/0.42)
}
