package colour

import (
	"errors"
	"reflect"
	"testing"
)

func TestSelectSeed(t *testing.T) {
	blue := FromRGB(0x21, 0x42, 0xde)
	red := FromRGB(0xde, 0x21, 0x21)
	grey := FromRGB(0x84, 0x84, 0x84)

	tests := []struct {
		name     string
		weighted []WeightedColour
		want     ARGB
	}{
		{
			name:     "single colour",
			weighted: []WeightedColour{{Colour: blue, Weight: 4}},
			want:     blue,
		},
		{
			name: "heaviest chromatic wins",
			weighted: []WeightedColour{
				{Colour: blue, Weight: 70},
				{Colour: red, Weight: 30},
			},
			want: blue,
		},
		{
			name: "chromatic preferred over heavier grey",
			weighted: []WeightedColour{
				{Colour: grey, Weight: 90},
				{Colour: blue, Weight: 10},
			},
			want: blue,
		},
		{
			name: "grey fallback when chromatic misses population cutoff",
			weighted: []WeightedColour{
				{Colour: grey, Weight: 995},
				{Colour: blue, Weight: 5},
			},
			want: grey,
		},
		{
			name: "all grey falls back to heaviest",
			weighted: []WeightedColour{
				{Colour: grey, Weight: 3},
				{Colour: FromRGB(0x21, 0x21, 0x21), Weight: 9},
			},
			want: FromRGB(0x21, 0x21, 0x21),
		},
		{
			name: "order independent",
			weighted: []WeightedColour{
				{Colour: red, Weight: 30},
				{Colour: blue, Weight: 70},
			},
			want: blue,
		},
		{
			name: "weight tie breaks on colour value",
			weighted: []WeightedColour{
				{Colour: red, Weight: 50},
				{Colour: blue, Weight: 50},
			},
			want: blue,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectSeed(tt.weighted)
			if err != nil {
				t.Fatalf("SelectSeed() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("SelectSeed() = %s, want %s", got.Hex(), tt.want.Hex())
			}
		})
	}
}

func TestSelectSeedEmpty(t *testing.T) {
	_, err := SelectSeed(nil)
	if err == nil {
		t.Fatal("SelectSeed(nil) succeeded, want error")
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Errorf("error type = %T, want *GenerationError", err)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	weighted := []WeightedColour{
		{Colour: FromRGB(0x21, 0x42, 0xde), Weight: 60},
		{Colour: FromRGB(0x84, 0x84, 0x84), Weight: 40},
	}
	first, err := Generate(weighted)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		got, err := Generate(weighted)
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d produced a different scheme", i)
		}
	}
}

func TestGenerateEmptyFails(t *testing.T) {
	if _, err := Generate(nil); err == nil {
		t.Error("Generate(nil) succeeded, want error")
	}
}
