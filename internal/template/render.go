// Package template renders theme templates: scanning text for
// @{roleName.format} placeholder tokens and substituting scheme colours.
// Rendering is pure; loading and override resolution live in the Loader.
package template

import (
	"fmt"
	"math"
	"strings"

	"github.com/jmylchreest/imbue/internal/colour"
)

// RenderContext carries the non-colour values templates may reference.
type RenderContext struct {
	// WallpaperPath substitutes @{wallpaper} tokens. Empty means the token
	// is unresolvable and rendering fails loudly rather than emitting an
	// empty string.
	WallpaperPath string
}

// Non-role placeholder names.
const (
	wallpaperToken = "wallpaper"
	modeToken      = "mode"
)

// Render substitutes every placeholder token in text with the formatted
// colour for the selected mode. Text outside token spans passes through
// byte-for-byte; tokens never nest. Unknown role names and formats fail
// with their token text and line number.
//
// Token grammar: @{roleName} (shorthand for the hexstrip format),
// @{roleName.format} with format one of hex, hexstrip, rgb, rgba50,
// hexAlpha, hue, sat, light, plus @{wallpaper} and @{mode}. Spans that
// open with @{ but do not match the grammar are literal text.
func Render(text string, scheme colour.Scheme, mode colour.ThemeMode, ctx RenderContext) (string, error) {
	var out strings.Builder
	out.Grow(len(text))

	line := 1
	rest := text
	for {
		idx := strings.Index(rest, "@{")
		if idx < 0 {
			out.WriteString(rest)
			break
		}

		literal := rest[:idx]
		out.WriteString(literal)
		line += strings.Count(literal, "\n")

		inner, length, ok := scanToken(rest[idx:])
		if !ok {
			// Not a token span. Emit the opener and keep scanning after it,
			// so a later @{ in the same text is still found.
			out.WriteString("@{")
			rest = rest[idx+2:]
			continue
		}

		value, err := resolveToken(inner, scheme, mode, ctx, line)
		if err != nil {
			return "", err
		}
		out.WriteString(value)
		rest = rest[idx+length:]
	}

	return out.String(), nil
}

// scanToken matches a complete token at the start of s (which begins with
// "@{"). Returns the inner text, the full span length, and whether the
// span is grammatical.
func scanToken(s string) (inner string, length int, ok bool) {
	i := 2
	for i < len(s) && isTokenChar(s[i]) {
		i++
	}
	if i == 2 || i >= len(s) || s[i] != '}' {
		return "", 0, false
	}
	return s[2:i], i + 1, true
}

func isTokenChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '.'
}

func resolveToken(inner string, scheme colour.Scheme, mode colour.ThemeMode, ctx RenderContext, line int) (string, error) {
	token := "@{" + inner + "}"

	if inner == wallpaperToken {
		if ctx.WallpaperPath == "" {
			return "", NewUnknownPlaceholderError(token, line)
		}
		return ctx.WallpaperPath, nil
	}
	if inner == modeToken {
		return mode.String(), nil
	}

	name, format, hasFormat := strings.Cut(inner, ".")
	role, knownRole := colour.RoleFromName(name)
	if !knownRole {
		return "", NewUnknownPlaceholderError(token, line)
	}
	if !hasFormat {
		format = "hexstrip"
	}

	value, knownFormat := formatColour(scheme.Colour(role, mode), format)
	if !knownFormat {
		return "", NewUnknownFormatError(format, token, line)
	}
	return value, nil
}

// formatColour renders a colour in one of the closed set of formats.
func formatColour(c colour.ARGB, format string) (string, bool) {
	switch format {
	case "hex":
		return c.Hex(), true
	case "hexstrip":
		return c.HexStrip(), true
	case "rgb":
		return c.RGBTriplet(), true
	case "rgba50":
		return fmt.Sprintf("rgba(%d, %d, %d, 0.5)", c.Red(), c.Green(), c.Blue()), true
	case "hexAlpha":
		return c.Hex() + "ff", true
	case "hue":
		h, _, _ := c.Colorful().Hsl()
		return fmt.Sprintf("%d", int(math.Round(h))), true
	case "sat":
		_, s, _ := c.Colorful().Hsl()
		return fmt.Sprintf("%d", int(math.Round(s*100))), true
	case "light":
		_, _, l := c.Colorful().Hsl()
		return fmt.Sprintf("%d", int(math.Round(l*100))), true
	default:
		return "", false
	}
}
