// Package styles contains Lip Gloss style definitions.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mockbanker/mockbanker/internal/theme"
)

// Palette is the set of semantic colors for one theme mode.
type Palette struct {
	TextPrimary     lipgloss.Color
	TextSecondary   lipgloss.Color
	TextMuted       lipgloss.Color
	BorderDefault   lipgloss.Color
	BorderFocus     lipgloss.Color
	Accent          lipgloss.Color
	Success         lipgloss.Color
	Warning         lipgloss.Color
	Error           lipgloss.Color
	Selection       lipgloss.Color
	TabActiveBg     lipgloss.Color
	TabActiveFg     lipgloss.Color
	DiffInsert      lipgloss.Color
	DiffDelete      lipgloss.Color
	OverlayBorder   lipgloss.Color
	OverlayTitle    lipgloss.Color
	TableHeader     lipgloss.Color
	TableRowStriped lipgloss.Color
}

// DarkPalette is used on dark terminals.
var DarkPalette = Palette{
	TextPrimary:     "#E6E6E6",
	TextSecondary:   "#BBBBBB",
	TextMuted:       "#696969",
	BorderDefault:   "#5C5C5C",
	BorderFocus:     "#54A0FF",
	Accent:          "#7D56F4",
	Success:         "#73F59F",
	Warning:         "#FECA57",
	Error:           "#FF8787",
	Selection:       "#FFFFFF",
	TabActiveBg:     "#7D56F4",
	TabActiveFg:     "#FFFFFF",
	DiffInsert:      "#73F59F",
	DiffDelete:      "#FF8787",
	OverlayBorder:   "#8C8C8C",
	OverlayTitle:    "#C9C9C9",
	TableHeader:     "#C9C9C9",
	TableRowStriped: "#262626",
}

// LightPalette is used on light terminals.
var LightPalette = Palette{
	TextPrimary:     "#1F1F1F",
	TextSecondary:   "#4A4A4A",
	TextMuted:       "#8A8A8A",
	BorderDefault:   "#C4C4C4",
	BorderFocus:     "#1A73E8",
	Accent:          "#5A3FD1",
	Success:         "#1E8E3E",
	Warning:         "#B7791F",
	Error:           "#C62828",
	Selection:       "#000000",
	TabActiveBg:     "#5A3FD1",
	TabActiveFg:     "#FFFFFF",
	DiffInsert:      "#1E8E3E",
	DiffDelete:      "#C62828",
	OverlayBorder:   "#9E9E9E",
	OverlayTitle:    "#333333",
	TableHeader:     "#333333",
	TableRowStriped: "#F0F0F0",
}

var (
	// Current is the palette last installed by Apply.
	Current = DarkPalette
	mode    = theme.Dark

	TitleStyle              lipgloss.Style
	MutedStyle              lipgloss.Style
	LabelStyle              lipgloss.Style
	FocusedLabelStyle       lipgloss.Style
	ValueStyle              lipgloss.Style
	SelectionIndicatorStyle lipgloss.Style
	SuccessStyle            lipgloss.Style
	ErrorStyle              lipgloss.Style
	WarningStyle            lipgloss.Style
	TabStyle                lipgloss.Style
	ActiveTabStyle          lipgloss.Style
	StatusBarStyle          lipgloss.Style
	DiffInsertStyle         lipgloss.Style
	DiffDeleteStyle         lipgloss.Style
	CopiedStyle             lipgloss.Style
)

func init() {
	Apply(theme.Dark)
}

// Mode returns the theme mode of the installed palette.
func Mode() theme.Mode { return mode }

// Apply installs the palette for m and rebuilds the shared styles.
func Apply(m theme.Mode) {
	mode = m
	Current = DarkPalette
	if !m.IsDark() {
		Current = LightPalette
	}
	p := Current

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	MutedStyle = lipgloss.NewStyle().Foreground(p.TextMuted)
	LabelStyle = lipgloss.NewStyle().Foreground(p.TextSecondary)
	FocusedLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(p.BorderFocus)
	ValueStyle = lipgloss.NewStyle().Foreground(p.TextPrimary)
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Selection)
	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error)
	WarningStyle = lipgloss.NewStyle().Foreground(p.Warning)
	TabStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(p.TextSecondary)
	ActiveTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).
		Foreground(p.TabActiveFg).
		Background(p.TabActiveBg)
	StatusBarStyle = lipgloss.NewStyle().Foreground(p.TextMuted).Padding(0, 1)
	DiffInsertStyle = lipgloss.NewStyle().Foreground(p.DiffInsert).Underline(true)
	DiffDeleteStyle = lipgloss.NewStyle().Foreground(p.DiffDelete).Strikethrough(true)
	CopiedStyle = lipgloss.NewStyle().Foreground(p.Success).Bold(true)
}

// ValidityStyle returns the success or error style.
func ValidityStyle(valid bool) lipgloss.Style {
	if valid {
		return SuccessStyle
	}
	return ErrorStyle
}

// GlamourStyle names the glamour stylesheet matching the installed palette.
func GlamourStyle() string {
	if mode.IsDark() {
		return "dark"
	}
	return "light"
}
