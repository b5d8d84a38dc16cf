package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// RenderWithTitleBorder renders content with a title embedded in the top border:
// ╭─ Title ─────╮
// The border uses the focus color when focused and the default border color otherwise.
// A non-empty hint is rendered muted after the title.
func RenderWithTitleBorder(content, title, hint string, width, height int, focused bool) string {
	borderColor := Current.BorderDefault
	titleColor := Current.TextSecondary
	if focused {
		borderColor = Current.BorderFocus
		titleColor = Current.BorderFocus
	}

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Bold(focused).Foreground(titleColor)

	innerWidth := max(width-2, 1)
	contentHeight := max(height-2, 1)

	topBorder := buildTopBorder(title, hint, innerWidth, borderStyle, titleStyle)
	bottomBorder := borderStyle.Render(borderBottomLeft + strings.Repeat(borderHorizontal, innerWidth) + borderBottomRight)

	constrained := lipgloss.NewStyle().Width(innerWidth).Height(contentHeight).MaxHeight(contentHeight).Render(content)
	contentLines := strings.Split(constrained, "\n")

	lines := make([]string, contentHeight)
	for i := range contentHeight {
		var line string
		if i < len(contentLines) {
			line = Truncate(contentLines[i], innerWidth)
		}
		if w := lipgloss.Width(line); w < innerWidth {
			line += strings.Repeat(" ", innerWidth-w)
		}
		lines[i] = borderStyle.Render(borderVertical) + line + borderStyle.Render(borderVertical)
	}

	var result strings.Builder
	result.WriteString(topBorder)
	result.WriteString("\n")
	result.WriteString(strings.Join(lines, "\n"))
	result.WriteString("\n")
	result.WriteString(bottomBorder)
	return result.String()
}

// buildTopBorder creates the top border with embedded title and hint.
func buildTopBorder(title, hint string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	// "─ " before and " ─" after the title at minimum
	if title == "" || innerWidth < 4 {
		return borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	}

	available := innerWidth - 4
	label := Truncate(title, available)
	rendered := titleStyle.Render(label)
	used := lipgloss.Width(label)

	if hint != "" && used+3+lipgloss.Width(hint) <= available {
		rendered += " " + MutedStyle.Render("("+hint+")")
		used += 3 + lipgloss.Width(hint)
	}

	remaining := max(innerWidth-3-used, 0)
	return borderStyle.Render(borderTopLeft+borderHorizontal+" ") +
		rendered +
		borderStyle.Render(" "+strings.Repeat(borderHorizontal, remaining)+borderTopRight)
}
