package render

import "strings"

// BarWidth is the number of cells in the bar. The layout is fixed and does
// not follow the terminal width.
const BarWidth = 45

// bufferPermille is the share of the bar set aside for the auto-compaction
// buffer, in thousandths.
const bufferPermille = 225

// Zones splits a bar of width cells into the usable region and the trailing
// compaction buffer.
func Zones(width int) (usable, buffer int) {
	if width <= 0 {
		return 0, 0
	}
	buffer = width * bufferPermille / 1000
	return width - buffer, buffer
}

// Filled is the number of cells percent covers, measured against the full
// width and clamped to it.
func Filled(percent, width int) int {
	if percent <= 0 || width <= 0 {
		return 0
	}
	n := int64(percent) * int64(width) / 100
	if n > int64(width) {
		return width
	}
	return int(n)
}

type cell struct {
	color string
	glyph string
}

// cells lays out the bar left to right.
func cells(percent, width int) []cell {
	usable, buffer := Zones(width)
	filled := Filled(percent, width)

	usedFill := min(filled, usable)
	bufferFill := min(filled-usedFill, buffer)

	t1 := usable * 25 / 100
	t2 := usable * 50 / 100
	t3 := usable * 75 / 100

	out := make([]cell, 0, width)
	for i := 0; i < usable; i++ {
		if i >= usedFill {
			out = append(out, cell{Gray, GlyphEmpty})
			continue
		}
		switch {
		case i < t1:
			out = append(out, cell{Green, GlyphFilled})
		case i < t2:
			out = append(out, cell{Yellow, GlyphFilled})
		case i < t3:
			out = append(out, cell{Orange, GlyphFilled})
		default:
			out = append(out, cell{Red, GlyphFilled})
		}
	}
	for i := 0; i < buffer; i++ {
		if i < bufferFill {
			out = append(out, cell{Violet, GlyphBuffer})
		} else {
			out = append(out, cell{DarkGray, GlyphReserved})
		}
	}
	return out
}

// Bar renders percent as exactly width glyphs. Consecutive cells of the same
// color form one run, and every run ends with a reset.
func Bar(percent, width int) string {
	var b strings.Builder
	cs := cells(percent, width)
	for i := 0; i < len(cs); {
		j := i
		for j < len(cs) && cs[j] == cs[i] {
			j++
		}
		b.WriteString(cs[i].color)
		b.WriteString(strings.Repeat(cs[i].glyph, j-i))
		b.WriteString(Reset)
		i = j
	}
	return b.String()
}
