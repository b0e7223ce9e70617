package colour

import "math"

// The CAM16 transform and its standard viewing conditions. The matrices and
// derivation below are the published CAM16 constants for a D65 white point;
// TableVersion in hct.go covers them, so any revision must bump it.

var srgbToXyz = [3][3]float64{
	{0.41233895, 0.35762064, 0.18051042},
	{0.2126, 0.7152, 0.0722},
	{0.01932141, 0.11916382, 0.95034478},
}

var xyzToCam16RGB = [3][3]float64{
	{0.401288, 0.650173, -0.051461},
	{-0.250268, 1.204414, 0.045854},
	{-0.002079, 0.048952, 0.953127},
}

var whitePointD65 = [3]float64{95.047, 100.0, 108.883}

// viewingConditions holds the precomputed terms of the CAM16 environment
// every transform shares. All schemes use the single default environment;
// exposing alternates would break scheme reproducibility across invocations.
type viewingConditions struct {
	n, aw, nbb, ncb float64
	c, nc           float64
	fl, flRoot, z   float64
	rgbD            [3]float64
}

// defaultViewing is derived once from the standard environment: D65 white,
// adapting luminance from an L* 50 midtone, background L* 50, average
// surround, no illuminant discounting.
var defaultViewing = newViewingConditions()

func newViewingConditions() viewingConditions {
	adaptingLuminance := 200.0 / math.Pi * yFromLstar(50.0) / 100.0
	const backgroundLstar = 50.0
	const surround = 2.0

	xyz := whitePointD65
	rW := xyz[0]*xyzToCam16RGB[0][0] + xyz[1]*xyzToCam16RGB[0][1] + xyz[2]*xyzToCam16RGB[0][2]
	gW := xyz[0]*xyzToCam16RGB[1][0] + xyz[1]*xyzToCam16RGB[1][1] + xyz[2]*xyzToCam16RGB[1][2]
	bW := xyz[0]*xyzToCam16RGB[2][0] + xyz[1]*xyzToCam16RGB[2][1] + xyz[2]*xyzToCam16RGB[2][2]

	f := 0.8 + surround/10.0
	var c float64
	if f >= 0.9 {
		c = lerp(0.59, 0.69, (f-0.9)*10.0)
	} else {
		c = lerp(0.525, 0.59, (f-0.8)*10.0)
	}

	d := f * (1.0 - (1.0/3.6)*math.Exp((-adaptingLuminance-42.0)/92.0))
	if d > 1.0 {
		d = 1.0
	} else if d < 0.0 {
		d = 0.0
	}

	rgbD := [3]float64{
		d*(100.0/rW) + 1.0 - d,
		d*(100.0/gW) + 1.0 - d,
		d*(100.0/bW) + 1.0 - d,
	}

	k := 1.0 / (5.0*adaptingLuminance + 1.0)
	k4 := k * k * k * k
	k4F := 1.0 - k4
	fl := k4*adaptingLuminance + 0.1*k4F*k4F*math.Cbrt(5.0*adaptingLuminance)

	n := yFromLstar(backgroundLstar) / whitePointD65[1]
	nbb := 0.725 / math.Pow(n, 0.2)

	rgbAFactors := [3]float64{
		math.Pow(fl*rgbD[0]*rW/100.0, 0.42),
		math.Pow(fl*rgbD[1]*gW/100.0, 0.42),
		math.Pow(fl*rgbD[2]*bW/100.0, 0.42),
	}
	rgbA := [3]float64{
		400.0 * rgbAFactors[0] / (rgbAFactors[0] + 27.13),
		400.0 * rgbAFactors[1] / (rgbAFactors[1] + 27.13),
		400.0 * rgbAFactors[2] / (rgbAFactors[2] + 27.13),
	}
	aw := (2.0*rgbA[0] + rgbA[1] + 0.05*rgbA[2]) * nbb

	return viewingConditions{
		n:      n,
		aw:     aw,
		nbb:    nbb,
		ncb:    nbb,
		c:      c,
		nc:     f,
		fl:     fl,
		flRoot: math.Pow(fl, 0.25),
		z:      1.48 + math.Sqrt(n),
	}
}

func lerp(start, stop, amount float64) float64 {
	return (1.0-amount)*start + amount*stop
}

// cam16 is a colour's appearance under the default viewing conditions.
// Hue is in degrees [0, 360), chroma is unbounded colourfulness, j is
// lightness relative to the environment (distinct from the L* tone).
type cam16 struct {
	hue    float64
	chroma float64
	j      float64
}

// cam16FromARGB runs the forward CAM16 transform.
func cam16FromARGB(argb ARGB) cam16 {
	vc := defaultViewing

	rL := linearized(argb.Red())
	gL := linearized(argb.Green())
	bL := linearized(argb.Blue())

	x := srgbToXyz[0][0]*rL + srgbToXyz[0][1]*gL + srgbToXyz[0][2]*bL
	y := srgbToXyz[1][0]*rL + srgbToXyz[1][1]*gL + srgbToXyz[1][2]*bL
	z := srgbToXyz[2][0]*rL + srgbToXyz[2][1]*gL + srgbToXyz[2][2]*bL

	rC := xyzToCam16RGB[0][0]*x + xyzToCam16RGB[0][1]*y + xyzToCam16RGB[0][2]*z
	gC := xyzToCam16RGB[1][0]*x + xyzToCam16RGB[1][1]*y + xyzToCam16RGB[1][2]*z
	bC := xyzToCam16RGB[2][0]*x + xyzToCam16RGB[2][1]*y + xyzToCam16RGB[2][2]*z

	rD := vc.rgbD[0] * rC
	gD := vc.rgbD[1] * gC
	bD := vc.rgbD[2] * bC

	rAF := math.Pow(vc.fl*math.Abs(rD)/100.0, 0.42)
	gAF := math.Pow(vc.fl*math.Abs(gD)/100.0, 0.42)
	bAF := math.Pow(vc.fl*math.Abs(bD)/100.0, 0.42)
	rA := signum(rD) * 400.0 * rAF / (rAF + 27.13)
	gA := signum(gD) * 400.0 * gAF / (gAF + 27.13)
	bA := signum(bD) * 400.0 * bAF / (bAF + 27.13)

	a := (11.0*rA - 12.0*gA + bA) / 11.0
	b := (rA + gA - 2.0*bA) / 9.0
	u := (20.0*rA + 20.0*gA + 21.0*bA) / 20.0
	p2 := (40.0*rA + 20.0*gA + bA) / 20.0

	hue := math.Atan2(b, a) * 180.0 / math.Pi
	if hue < 0 {
		hue += 360.0
	} else if hue >= 360.0 {
		hue -= 360.0
	}

	ac := p2 * vc.nbb
	j := 100.0 * math.Pow(ac/vc.aw, vc.c*vc.z)

	huePrime := hue
	if huePrime < 20.14 {
		huePrime += 360.0
	}
	eHue := 0.25 * (math.Cos(huePrime*math.Pi/180.0+2.0) + 3.8)
	p1 := 50000.0 / 13.0 * eHue * vc.nc * vc.ncb
	t := p1 * math.Hypot(a, b) / (u + 0.305)
	alpha := math.Pow(t, 0.9) * math.Pow(1.64-math.Pow(0.29, vc.n), 0.73)
	chroma := alpha * math.Sqrt(j/100.0)

	return cam16{hue: hue, chroma: chroma, j: j}
}

func signum(v float64) float64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
