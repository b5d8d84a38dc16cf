package styles

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wrap"
	"github.com/rivo/uniseg"
)

// Truncate shortens s to at most width cells, ending with an ellipsis when
// anything was cut. ANSI-styled input should be truncated before styling.
func Truncate(s string, width int) string {
	if width < 1 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return strings.Repeat(".", width)
	}
	return runewidth.Truncate(s, width, "...")
}

// PadRight pads s with spaces to width grapheme cells.
func PadRight(s string, width int) string {
	if w := uniseg.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// Wrap hard-wraps s at width cells. Identifiers have no spaces to break on,
// so long values are split mid-token.
func Wrap(s string, width int) string {
	if width < 1 {
		return s
	}
	return wrap.String(s, width)
}

// FormatCount renders "n result(s)".
func FormatCount(n int) string {
	if n == 1 {
		return "1 result"
	}
	return strconv.Itoa(n) + " results"
}
