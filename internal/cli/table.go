package cli

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// Table is a minimal column formatter for list-style command output.
// Fixed columns size to their widest cell; at most one column may wrap.
type Table struct {
	headers []string
	rows    [][]string
	padding int
	wrapCol int // column allowed to wrap, -1 = none
	wrapMin int
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		padding: 2,
		wrapCol: -1,
	}
}

// WrapColumn lets one column fold at the terminal edge instead of
// stretching the table. min is the narrowest that column may get.
func (t *Table) WrapColumn(index, min int) {
	t.wrapCol = index
	t.wrapMin = min
}

// AddRow appends a row. Missing cells render empty.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render formats the table with a header row, dashed separator, and
// space-aligned columns.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && i != t.wrapCol && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	if t.wrapCol >= 0 && t.wrapCol < len(widths) {
		widths[t.wrapCol] = t.wrapWidth(widths)
	}

	var b strings.Builder
	t.writeLine(&b, t.headers, widths)

	separators := make([]string, len(widths))
	for i, w := range widths {
		separators[i] = strings.Repeat("-", w)
	}
	t.writeLine(&b, separators, widths)

	for _, row := range t.rows {
		if t.wrapCol < 0 || t.wrapCol >= len(row) {
			t.writeLine(&b, row, widths)
			continue
		}
		for i, text := range wrapText(row[t.wrapCol], widths[t.wrapCol]) {
			line := make([]string, len(row))
			if i == 0 {
				copy(line, row)
			}
			line[t.wrapCol] = text
			t.writeLine(&b, line, widths)
		}
	}

	return b.String()
}

// wrapWidth gives the wrap column whatever terminal width the fixed
// columns leave over, never less than wrapMin. When stdout is not a
// terminal the content width wins and nothing wraps.
func (t *Table) wrapWidth(widths []int) int {
	content := len(t.headers[t.wrapCol])
	for _, row := range t.rows {
		if t.wrapCol < len(row) && len(row[t.wrapCol]) > content {
			content = len(row[t.wrapCol])
		}
	}

	termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return content
	}

	used := t.padding * (len(widths) - 1)
	for i, w := range widths {
		if i != t.wrapCol {
			used += w
		}
	}
	avail := termWidth - used
	if avail < t.wrapMin {
		avail = t.wrapMin
	}
	if content < avail {
		return content
	}
	return avail
}

func (t *Table) writeLine(b *strings.Builder, cells []string, widths []int) {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = padRight(cell, w)
	}
	line := strings.Join(parts, strings.Repeat(" ", t.padding))
	b.WriteString(strings.TrimRight(line, " "))
	b.WriteString("\n")
}

// padRight pads a string with spaces on the right to reach the desired
// width. Longer strings are returned unchanged.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// wrapText wraps text to fit within the specified width, breaking at
// word boundaries. Words longer than the width are split.
func wrapText(text string, width int) []string {
	if width <= 0 || len(text) <= width {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	current := ""
	for _, word := range words {
		for len(word) > width {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			lines = append(lines, word[:width])
			word = word[width:]
		}

		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}

	return lines
}
