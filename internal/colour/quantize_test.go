package colour

import (
	"image"
	"image/color"
	"reflect"
	"testing"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestQuantizeSolidImage(t *testing.T) {
	img := solidImage(8, 8, color.RGBA{R: 0x20, G: 0x40, B: 0x80, A: 0xff})
	got := Quantize(img)
	if len(got) != 1 {
		t.Fatalf("buckets = %d, want 1", len(got))
	}
	if got[0].Weight != 64 {
		t.Errorf("weight = %d, want 64", got[0].Weight)
	}
	// 0x20, 0x40 and 0x80 sit on the 5-bit grid; the representative is
	// their bit-replicated expansion.
	if want := FromRGB(0x21, 0x42, 0x84); got[0].Colour != want {
		t.Errorf("colour = %s, want %s", got[0].Colour.Hex(), want.Hex())
	}
}

func TestQuantizeOrdersByWeight(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 0xff, A: 0xff})
	img.SetRGBA(1, 0, color.RGBA{R: 0xff, A: 0xff})
	img.SetRGBA(2, 0, color.RGBA{R: 0xff, A: 0xff})
	img.SetRGBA(3, 0, color.RGBA{B: 0xff, A: 0xff})

	got := Quantize(img)
	if len(got) != 2 {
		t.Fatalf("buckets = %d, want 2", len(got))
	}
	if got[0].Weight != 3 || got[1].Weight != 1 {
		t.Errorf("weights = %d, %d, want 3, 1", got[0].Weight, got[1].Weight)
	}
	if got[0].Colour != FromRGB(0xff, 0, 0) {
		t.Errorf("heaviest = %s, want red", got[0].Colour.Hex())
	}
}

func TestQuantizeDeterministic(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: uint8((x + y) * 8), A: 0xff})
		}
	}
	first := Quantize(img)
	for i := 0; i < 3; i++ {
		if got := Quantize(img); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d produced different histogram", i)
		}
	}
}

func TestRequantizeEndpoints(t *testing.T) {
	tests := []struct {
		name string
		in   uint8
		want uint8
	}{
		{"black stays black", 0x00, 0x00},
		{"white stays white", 0xff, 0xff},
		{"grid value replicates", 0x20, 0x21},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := requantize(tt.in); got != tt.want {
				t.Errorf("requantize(%#02x) = %#02x, want %#02x", tt.in, got, tt.want)
			}
		})
	}
}
