// Sample wallpaper generator for creating images to exercise scheme extraction
package main

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

func main() {
	// A dusk-sky gradient with a sun disc gives the sampler both a
	// dominant chromatic region and a tonal spread.
	width := 640
	height := 400
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	top := color.RGBA{R: 24, G: 32, B: 96, A: 255}      // Deep blue
	bottom := color.RGBA{R: 232, G: 120, B: 48, A: 255} // Warm orange

	for y := 0; y < height; y++ {
		t := float64(y) / float64(height-1)
		c := color.RGBA{
			R: lerp(top.R, bottom.R, t),
			G: lerp(top.G, bottom.G, t),
			B: lerp(top.B, bottom.B, t),
			A: 255,
		}
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	// Sun disc in the lower third
	sun := color.RGBA{R: 255, G: 200, B: 96, A: 255}
	cx, cy, radius := float64(width)*0.7, float64(height)*0.72, 48.0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			if math.Sqrt(dx*dx+dy*dy) <= radius {
				img.Set(x, y, sun)
			}
		}
	}

	file, err := os.Create("testdata/wallpaper.png")
	if err != nil {
		panic(err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		panic(err)
	}

	println("Sample wallpaper created: testdata/wallpaper.png")
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}
