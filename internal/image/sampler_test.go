package image

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeTestPNG encodes a solid-colour PNG into dir and returns its path.
func writeTestPNG(t *testing.T, dir string, w, h int, c color.RGBA) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	path := filepath.Join(dir, "test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSampleSolidImage(t *testing.T) {
	path := writeTestPNG(t, t.TempDir(), 4, 4, color.RGBA{R: 0x20, G: 0x40, B: 0x80, A: 0xff})
	s := NewSampler(nil)
	got, err := s.Sample(path)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("buckets = %d, want 1", len(got))
	}
	if got[0].Weight != 16 {
		t.Errorf("weight = %d, want 16", got[0].Weight)
	}
}

func TestSampleOnePixelImage(t *testing.T) {
	path := writeTestPNG(t, t.TempDir(), 1, 1, color.RGBA{R: 0xff, A: 0xff})
	got, err := NewSampler(nil).Sample(path)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("buckets = %d, want 1", len(got))
	}
}

func TestSampleDeterministic(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 300, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 300; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: uint8((x * y) % 256), A: 0xff})
		}
	}
	path := filepath.Join(dir, "gradient.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	s := NewSampler(nil)
	first, err := s.Sample(path)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	second, err := s.Sample(path)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two samples of the same file differ")
	}
}

func TestSampleErrors(t *testing.T) {
	dir := t.TempDir()
	notImage := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notImage, []byte("plain text"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "absent.png")},
		{"directory", dir},
		{"not an image", notImage},
		{"empty path", ""},
	}
	s := NewSampler(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Sample(tt.path)
			if err == nil {
				t.Fatal("Sample() succeeded, want error")
			}
			var readErr *ReadError
			if !errors.As(err, &readErr) {
				t.Errorf("error type = %T, want *ReadError", err)
			}
		})
	}
}

func TestDownsampleBoundsLongestEdge(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1920, 1080))
	got := Downsample(img).Bounds()
	if got.Dx() != 128 {
		t.Errorf("width = %d, want 128", got.Dx())
	}
	if got.Dy() != 72 {
		t.Errorf("height = %d, want 72", got.Dy())
	}
}

func TestDownsamplePassthrough(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 60))
	if got := Downsample(img).Bounds(); got.Dx() != 100 || got.Dy() != 60 {
		t.Errorf("bounds = %dx%d, want 100x60", got.Dx(), got.Dy())
	}
}

func TestTargetDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{"landscape", 1920, 1080, 128, 72},
		{"portrait", 1080, 1920, 72, 128},
		{"square", 512, 512, 128, 128},
		{"extreme strip", 10000, 2, 128, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotW, gotH := targetDimensions(tt.width, tt.height, 128)
			if gotW != tt.wantW || gotH != tt.wantH {
				t.Errorf("targetDimensions(%d, %d) = %dx%d, want %dx%d",
					tt.width, tt.height, gotW, gotH, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestAnalyseMatchesSample(t *testing.T) {
	path := writeTestPNG(t, t.TempDir(), 4, 4, color.RGBA{R: 0x20, G: 0x40, B: 0x80, A: 0xff})
	s := NewSampler(nil)
	sampled, err := s.Sample(path)
	if err != nil {
		t.Fatal(err)
	}
	analysis, err := s.Analyse(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(analysis.Colours, sampled) {
		t.Error("Analyse() histogram differs from Sample()")
	}
}

func TestStatsMatchesAnalyse(t *testing.T) {
	path := writeTestPNG(t, t.TempDir(), 6, 4, color.RGBA{R: 0xc0, G: 0x30, B: 0x30, A: 0xff})
	s := NewSampler(nil)
	analysis, err := s.Analyse(path)
	if err != nil {
		t.Fatal(err)
	}
	stats, err := s.Stats(path)
	if err != nil {
		t.Fatal(err)
	}
	if stats != analysis.Stats {
		t.Errorf("Stats() = %+v, Analyse().Stats = %+v", stats, analysis.Stats)
	}
}
