package template

import (
	"errors"
	"strings"
	"testing"

	"github.com/jmylchreest/imbue/internal/colour"
)

// testScheme builds a scheme with hand-picked colours so format output is
// predictable without running generation.
func testScheme() colour.Scheme {
	var s colour.Scheme
	for r := colour.Role(0); r < colour.RoleCount; r++ {
		s.Dark[r] = colour.FromRGB(0x11, 0x22, 0x33)
		s.Light[r] = colour.FromRGB(0xee, 0xdd, 0xcc)
	}
	s.Dark[colour.RolePrimary] = colour.FromRGB(0xff, 0x00, 0x00)
	s.Light[colour.RolePrimary] = colour.FromRGB(0x00, 0x00, 0xff)
	s.Dark[colour.RoleSurface] = colour.FromRGB(0x80, 0x80, 0x80)
	return s
}

func TestRenderLiteralPassthrough(t *testing.T) {
	texts := []string{
		"",
		"no tokens at all\n",
		"line one\n  line two with spaces   \n\ttabbed\n",
		"css: { color: red; }\n",
	}
	for _, text := range texts {
		got, err := Render(text, testScheme(), colour.ModeDark, RenderContext{})
		if err != nil {
			t.Fatalf("Render(%q) error = %v", text, err)
		}
		if got != text {
			t.Errorf("Render(%q) = %q, want unchanged", text, got)
		}
	}
}

func TestRenderFormats(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"hex", "@{primary.hex}", "#ff0000"},
		{"hexstrip", "@{primary.hexstrip}", "ff0000"},
		{"bare token is hexstrip", "@{primary}", "ff0000"},
		{"rgb", "@{primary.rgb}", "255, 0, 0"},
		{"rgba50", "@{primary.rgba50}", "rgba(255, 0, 0, 0.5)"},
		{"hexAlpha", "@{primary.hexAlpha}", "#ff0000ff"},
		{"hue", "@{primary.hue}", "0"},
		{"sat", "@{primary.sat}", "100"},
		{"light", "@{primary.light}", "50"},
		{"grey sat", "@{surface.sat}", "0"},
		{"embedded in text", "color: @{primary.hex};", "color: #ff0000;"},
		{"multiple tokens", "@{primary.hex} @{primary.rgb}", "#ff0000 255, 0, 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.template, testScheme(), colour.ModeDark, RenderContext{})
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestRenderModeSelection(t *testing.T) {
	dark, err := Render("@{primary.hex}", testScheme(), colour.ModeDark, RenderContext{})
	if err != nil {
		t.Fatal(err)
	}
	light, err := Render("@{primary.hex}", testScheme(), colour.ModeLight, RenderContext{})
	if err != nil {
		t.Fatal(err)
	}
	if dark != "#ff0000" {
		t.Errorf("dark = %q, want #ff0000", dark)
	}
	if light != "#0000ff" {
		t.Errorf("light = %q, want #0000ff", light)
	}
}

func TestRenderUnknownPlaceholder(t *testing.T) {
	_, err := Render("line one\nline two\ncolor: @{bogus.hex};\n", testScheme(), colour.ModeDark, RenderContext{})
	if err == nil {
		t.Fatal("Render() succeeded, want error")
	}
	var placeholderErr *UnknownPlaceholderError
	if !errors.As(err, &placeholderErr) {
		t.Fatalf("error type = %T, want *UnknownPlaceholderError", err)
	}
	if placeholderErr.Token != "@{bogus.hex}" {
		t.Errorf("token = %q, want @{bogus.hex}", placeholderErr.Token)
	}
	if placeholderErr.Line != 3 {
		t.Errorf("line = %d, want 3", placeholderErr.Line)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render("@{primary.cmyk}", testScheme(), colour.ModeDark, RenderContext{})
	if err == nil {
		t.Fatal("Render() succeeded, want error")
	}
	var formatErr *UnknownFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("error type = %T, want *UnknownFormatError", err)
	}
	if formatErr.Format != "cmyk" {
		t.Errorf("format = %q, want cmyk", formatErr.Format)
	}
}

func TestRenderWallpaperToken(t *testing.T) {
	ctx := RenderContext{WallpaperPath: "/home/user/walls/blue.png"}
	got, err := Render("file://@{wallpaper}", testScheme(), colour.ModeDark, ctx)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "file:///home/user/walls/blue.png" {
		t.Errorf("got %q", got)
	}

	if _, err := Render("@{wallpaper}", testScheme(), colour.ModeDark, RenderContext{}); err == nil {
		t.Error("empty wallpaper context rendered silently, want error")
	}
}

func TestRenderModeToken(t *testing.T) {
	for mode, want := range map[colour.ThemeMode]string{
		colour.ModeDark:  `"type": "dark"`,
		colour.ModeLight: `"type": "light"`,
	} {
		got, err := Render(`"type": "@{mode}"`, testScheme(), mode, RenderContext{})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if got != want {
			t.Errorf("mode %v rendered %q, want %q", mode, got, want)
		}
	}
}

func TestRenderNonGrammarSpansStayLiteral(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"space inside braces", "@{not a token}", "@{not a token}"},
		{"empty braces", "@{}", "@{}"},
		{"unterminated at end", "trailing @{primary.hex", "trailing @{primary.hex"},
		{"lone at sign", "user@host", "user@host"},
		{"brace without at", "{primary}", "{primary}"},
		{"nested opener resolves inner token", "@{@{primary.hex}}", "@{#ff0000}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.template, testScheme(), colour.ModeDark, RenderContext{})
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestRenderDeterministic(t *testing.T) {
	tmpl := "a: @{primary.hex}\nb: @{surface.rgb}\nc: @{outline.hue}\n"
	first, err := Render(tmpl, testScheme(), colour.ModeDark, RenderContext{})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		got, err := Render(tmpl, testScheme(), colour.ModeDark, RenderContext{})
		if err != nil {
			t.Fatal(err)
		}
		if got != first {
			t.Fatalf("render %d differs from first", i)
		}
	}
}

func TestRenderEveryRoleResolves(t *testing.T) {
	var b strings.Builder
	for r := range colour.Roles {
		b.WriteString("@{" + r.String() + ".hex}\n")
	}
	s := colour.SchemeFromSeed(colour.FromRGB(0x1a, 0x23, 0x7e))
	for _, mode := range []colour.ThemeMode{colour.ModeDark, colour.ModeLight} {
		if _, err := Render(b.String(), s, mode, RenderContext{}); err != nil {
			t.Errorf("mode %s: %v", mode, err)
		}
	}
}
