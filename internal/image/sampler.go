package image

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/jmylchreest/imbue/internal/colour"
)

// maxSampleEdge bounds the longest image edge before pixel iteration.
// Downsampling is a cost bound, not a correctness step: the histogram of a
// wallpaper is insensitive to it beyond bucket-level noise.
const maxSampleEdge = 128

// Sampler turns a wallpaper path into the weighted colour histogram that
// seeds palette generation.
type Sampler struct {
	loader Loader
}

// NewSampler creates a Sampler. A nil loader means the local filesystem.
func NewSampler(loader Loader) *Sampler {
	if loader == nil {
		loader = NewFileLoader()
	}
	return &Sampler{loader: loader}
}

// Sample loads, downsamples and quantises an image. The result is never
// empty for a decodable image: even a 1x1 input produces one bucket.
func (s *Sampler) Sample(path string) ([]colour.WeightedColour, error) {
	img, err := s.loader.Load(path)
	if err != nil {
		return nil, err
	}
	return colour.Quantize(Downsample(img)), nil
}

// Analysis couples the colour histogram with the image statistics some
// activation steps consume, from a single decode.
type Analysis struct {
	Colours []colour.WeightedColour
	Stats   Stats
}

// Analyse loads an image once and produces both the histogram and the
// statistics.
func (s *Sampler) Analyse(path string) (Analysis, error) {
	img, err := s.loader.Load(path)
	if err != nil {
		return Analysis{}, err
	}
	small := Downsample(img)
	return Analysis{
		Colours: colour.Quantize(small),
		Stats:   AnalyseStats(small),
	}, nil
}

// Stats loads an image and produces only the statistics, skipping the
// histogram. Used when a cached scheme makes quantisation unnecessary.
func (s *Sampler) Stats(path string) (Stats, error) {
	img, err := s.loader.Load(path)
	if err != nil {
		return Stats{}, err
	}
	return AnalyseStats(Downsample(img)), nil
}

// Downsample scales an image so its longest edge is at most maxSampleEdge,
// preserving aspect ratio. Images already within the bound pass through.
func Downsample(img image.Image) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= maxSampleEdge && height <= maxSampleEdge {
		return img
	}

	targetW, targetH := targetDimensions(width, height, maxSampleEdge)
	dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}

// targetDimensions fits (width, height) inside maxEdge on the longest
// side, never collapsing an axis below one pixel.
func targetDimensions(width, height, maxEdge int) (int, int) {
	if width >= height {
		targetW := maxEdge
		targetH := height * maxEdge / width
		if targetH < 1 {
			targetH = 1
		}
		return targetW, targetH
	}
	targetH := maxEdge
	targetW := width * maxEdge / height
	if targetW < 1 {
		targetW = 1
	}
	return targetW, targetH
}
