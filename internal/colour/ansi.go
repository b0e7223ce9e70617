package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// ColourPreview returns an ANSI-coloured preview string for a colour.
// Width specifies how many characters wide the colour block should be.
// Uses background colour with spaces for a solid block.
func ColourPreview(c ARGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	// Build ANSI background colour escape sequence.
	bgColour := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.Red(), c.Green(), c.Blue(), ansiSuffix)

	// Create solid colour block using spaces with background colour.
	block := strings.Repeat(" ", width)

	return bgColour + block + ansiReset
}

// ColourPreviewWithText returns a colour preview with text overlay.
// The text colour is chosen to have good contrast with the background.
func ColourPreviewWithText(c ARGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	// Determine foreground colour for good contrast.
	var fgR, fgG, fgB uint8
	if LstarOf(c) > 50 {
		// Light background, use dark text.
		fgR, fgG, fgB = 0, 0, 0
	} else {
		// Dark background, use light text.
		fgR, fgG, fgB = 255, 255, 255
	}

	// Build ANSI escape sequences.
	bgColour := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.Red(), c.Green(), c.Blue(), ansiSuffix)
	fgColour := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, fgR, fgG, fgB, ansiSuffix)

	// Pad or truncate text to fit width.
	displayText := text
	if len(text) > width {
		displayText = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		displayText = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}

	return bgColour + fgColour + displayText + ansiReset
}

// FormatColourWithLabel formats a colour with a label, preview, and hex code.
func FormatColourWithLabel(c ARGB, label string, width int) string {
	preview := ColourPreview(c, width)
	return fmt.Sprintf("%s  %-20s %s", preview, label, c.Hex())
}
