// Package render draws the context usage bar and the model/usage line.
package render

// 256-color pastel palette.
const (
	Blue     = "\x1b[38;5;117m"
	Green    = "\x1b[38;5;114m"
	Yellow   = "\x1b[38;5;186m"
	Orange   = "\x1b[38;5;216m"
	Red      = "\x1b[38;5;174m"
	Gray     = "\x1b[38;5;242m"
	Violet   = "\x1b[38;5;141m"
	DarkGray = "\x1b[38;5;238m"
	Reset    = "\x1b[0m"
)

// Bar glyphs.
const (
	GlyphFilled   = "█"
	GlyphEmpty    = "░"
	GlyphBuffer   = "▓" // filled cell inside the compaction buffer
	GlyphReserved = "▒" // unused compaction buffer
)

// ColorForPercent grades a percent into four buckets: <25 green, <50
// yellow, <75 orange, red otherwise.
func ColorForPercent(percent int) string {
	switch {
	case percent < 25:
		return Green
	case percent < 50:
		return Yellow
	case percent < 75:
		return Orange
	default:
		return Red
	}
}
