package target

import (
	"testing"

	"github.com/jmylchreest/imbue/internal/colour"
	imbueimage "github.com/jmylchreest/imbue/internal/image"
)

func TestTerminalTransparency(t *testing.T) {
	tests := []struct {
		name  string
		stats imbueimage.Stats
		mode  colour.ThemeMode
		want  int
	}{
		{
			name: "dark floor for a black wallpaper",
			mode: colour.ModeDark,
			want: 20,
		},
		{
			name:  "dark ceiling for a bright wallpaper",
			stats: imbueimage.Stats{Brightness: 255},
			mode:  colour.ModeDark,
			want:  65,
		},
		{
			name:  "variance pulls a bright dark theme back",
			stats: imbueimage.Stats{Brightness: 255, Variance: 1},
			mode:  colour.ModeDark,
			want:  55,
		},
		{
			name:  "saturation boost hits the dark clamp",
			stats: imbueimage.Stats{Brightness: 255, Saturation: 1},
			mode:  colour.ModeDark,
			want:  70,
		},
		{
			name:  "dark lower clamp",
			stats: imbueimage.Stats{Variance: 1},
			mode:  colour.ModeDark,
			want:  15,
		},
		{
			name: "light base",
			mode: colour.ModeLight,
			want: 5,
		},
		{
			name:  "light bright wallpaper",
			stats: imbueimage.Stats{Brightness: 255},
			mode:  colour.ModeLight,
			want:  35,
		},
		{
			name:  "light lower clamp",
			stats: imbueimage.Stats{Variance: 1},
			mode:  colour.ModeLight,
			want:  0,
		},
		{
			name:  "midpoint brightness rounds",
			stats: imbueimage.Stats{Brightness: 127.5},
			mode:  colour.ModeDark,
			want:  43,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TerminalTransparency(tt.stats, tt.mode); got != tt.want {
				t.Errorf("TerminalTransparency(%+v, %v) = %d, want %d", tt.stats, tt.mode, got, tt.want)
			}
		})
	}
}

func TestTerminalTransparencyModesDiffer(t *testing.T) {
	stats := imbueimage.Stats{Brightness: 128, Variance: 0.3, Saturation: 0.5}
	dark := TerminalTransparency(stats, colour.ModeDark)
	light := TerminalTransparency(stats, colour.ModeLight)
	if dark <= light {
		t.Errorf("dark %d should run more transparent than light %d", dark, light)
	}
}
