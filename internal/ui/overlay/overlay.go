// Package overlay draws one block of terminal output over another without
// disturbing the styling of either.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position selects how the foreground is anchored.
type Position int

const (
	// Center places the foreground in the middle of the viewport.
	Center Position = iota
	// Top centers the foreground horizontally, PadY rows from the top.
	Top
	// Bottom centers the foreground horizontally, PadY rows from the bottom.
	Bottom
	// At places the foreground at column X, row Y. Used for dropdowns that
	// hang below an input.
	At
)

// Config controls placement.
type Config struct {
	Width    int
	Height   int
	Position Position
	PadY     int
	// X and Y are used by At.
	X int
	Y int
}

// Place renders fg over bg. The background is padded to Height rows; the
// foreground is clipped at the bottom edge.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	x, y := origin(cfg, lipgloss.Width(fg), len(fgLines))
	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLines[row] = splice(bgLines[row], line, x)
	}
	return strings.Join(bgLines, "\n")
}

// splice replaces the cells of bg starting at column x with fg.
func splice(bg, fg string, x int) string {
	left := ansi.Truncate(bg, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	end := x + ansi.StringWidth(fg)
	var right string
	if end < ansi.StringWidth(bg) {
		right = ansi.TruncateLeft(bg, end, "")
	}
	return left + fg + right
}

func origin(cfg Config, w, h int) (x, y int) {
	switch cfg.Position {
	case Top:
		x, y = (cfg.Width-w)/2, cfg.PadY
	case Bottom:
		x, y = (cfg.Width-w)/2, cfg.Height-h-cfg.PadY
	case At:
		x, y = cfg.X, cfg.Y
		// keep the block on screen when it would overflow the right edge
		if cfg.Width > 0 && x+w > cfg.Width {
			x = cfg.Width - w
		}
	default:
		x, y = (cfg.Width-w)/2, (cfg.Height-h)/2
	}
	return max(x, 0), max(y, 0)
}
