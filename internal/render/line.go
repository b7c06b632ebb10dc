package render

import (
	"fmt"
	"strconv"

	"github.com/mattn/go-runewidth"
)

// RightWidth is the width of the right-aligned usage column.
const RightWidth = 18

// LeftWidth is what remains of the bar width for the model/path column.
const LeftWidth = BarWidth - RightWidth

const (
	maxDirLen   = 10
	keepDirLen  = 7
	dirEllipsis = "..."
)

// View is everything the two lines show.
type View struct {
	Model    string
	Dir      string // final path component of the working directory
	Total    int
	Capacity int
	Percent  int
}

// FormatTokens abbreviates counts of 1000 and up to whole thousands: 130512
// → "130k", 999 → "999".
func FormatTokens(n int) string {
	if n >= 1000 {
		return strconv.Itoa(n/1000) + "k"
	}
	return strconv.Itoa(n)
}

// TruncateDir shortens directory names longer than 10 characters to their
// first 7 followed by "...".
func TruncateDir(dir string) string {
	r := []rune(dir)
	if len(r) > maxDirLen {
		return string(r[:keepDirLen]) + dirEllipsis
	}
	return dir
}

// ModelWithPath is the "{model} in /{dir}" label.
func ModelWithPath(model, dir string) string {
	return model + " in /" + TruncateDir(dir)
}

// UsageText is the "{total}/{capacity} ({percent}%)" readout, unpadded.
func UsageText(total, capacity, percent int) string {
	return fmt.Sprintf("%s/%s (%d%%)", FormatTokens(total), FormatTokens(capacity), percent)
}

// fitLeft pads or cuts s to exactly width terminal columns.
func fitLeft(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, ""), width)
}

// Lines renders the bar line and the info line. With no data only the
// model/path label is returned.
func Lines(v View, noData bool) []string {
	label := ModelWithPath(v.Model, v.Dir)
	if noData {
		return []string{Blue + label + Reset}
	}
	right := fmt.Sprintf("%*s", RightWidth, UsageText(v.Total, v.Capacity, v.Percent))
	info := Blue + fitLeft(label, LeftWidth) + Reset + ColorForPercent(v.Percent) + right + Reset
	return []string{Bar(v.Percent, BarWidth), info}
}
