package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/mockbanker/mockbanker/internal/catalog"
	"github.com/mockbanker/mockbanker/internal/pipeline"
	"github.com/mockbanker/mockbanker/internal/ui/styles"
)

const maxColumnWidth = 40

// View renders the option form above the result table.
func (m Model[R]) View() string {
	var b strings.Builder
	b.WriteString(m.selector.View())
	b.WriteString("\n")
	b.WriteString(zone.Mark(m.countZoneID(), m.renderCount()))
	for i, f := range m.fields {
		b.WriteString("\n")
		b.WriteString(zone.Mark(m.fieldZoneID(i), m.renderField(i, f)))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderStatus())
	if m.snapshot.Len() > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderResults())
	}
	return b.String()
}

func (m Model[R]) label(text string, focused bool) string {
	if focused {
		return styles.FocusedLabelStyle.Render(text + ": ")
	}
	return styles.LabelStyle.Render(text + ": ")
}

func (m Model[R]) renderCount() string {
	focused := m.focus == focusCount
	value := strconv.Itoa(m.count)
	if focused {
		value = "‹ " + value + " ›"
	}
	hint := fmt.Sprintf(" (+/- %d-%d)", pipeline.MinCount, pipeline.MaxCount)
	return m.label("Count", focused) + styles.ValueStyle.Render(value) + styles.MutedStyle.Render(hint)
}

func (m Model[R]) renderField(i int, f field) string {
	focused := m.focus == focusFirstField+i
	if f.freeForm() {
		return m.label(f.def.Label, focused) + f.input.View()
	}
	value := f.def.Choices[f.choice].Label
	if focused {
		value = "‹ " + value + " ›"
	}
	return m.label(f.def.Label, focused) + styles.ValueStyle.Render(value)
}

func (m Model[R]) renderStatus() string {
	switch m.state {
	case StateGenerating:
		return styles.WarningStyle.Render("Generating...")
	case StateIdle:
		return styles.MutedStyle.Render("Press g to generate, tab to edit options")
	}

	parts := []string{styles.FormatCount(m.snapshot.Len())}
	if m.hasDisplayForm() {
		if m.spaced {
			parts = append(parts, "copy with spaces")
		} else {
			parts = append(parts, "copy without spaces")
		}
	}
	status := styles.MutedStyle.Render(strings.Join(parts, " · "))
	if m.copiedAll {
		status += styles.MutedStyle.Render(" · ") + styles.CopiedStyle.Render("copied all")
	}
	return status
}

func (m Model[R]) hasDisplayForm() bool {
	if m.snapshot.Len() == 0 {
		return false
	}
	_, ok := any(m.snapshot.Rows[0]).(catalog.Displayer)
	return ok
}

// visibleRows is how many result rows fit under the form.
func (m Model[R]) visibleRows() int {
	if m.height <= 0 {
		return pipeline.MaxCount
	}
	// selector, count, fields, blank, status, table header
	used := 5 + len(m.fields)
	return max(m.height-used, 1)
}

func cellText(v catalog.Value, kind catalog.Kind) string {
	switch {
	case v.Null:
		return "-"
	case kind == catalog.KindBool && v.Bool:
		return "✓"
	case kind == catalog.KindBool:
		return "✗"
	default:
		return v.Text
	}
}

func (m Model[R]) renderResults() string {
	cols := m.reg.Columns()
	rows := m.snapshot.Rows

	widths := make([]int, len(cols))
	for c, col := range cols {
		widths[c] = lipgloss.Width(col.Header)
		for _, r := range rows {
			widths[c] = max(widths[c], lipgloss.Width(cellText(col.Value(r), col.Kind)))
		}
		widths[c] = min(widths[c], maxColumnWidth)
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Current.TableHeader)
	cells := make([]string, len(cols))
	for c, col := range cols {
		cells[c] = headerStyle.Render(styles.PadRight(styles.Truncate(col.Header, widths[c]), widths[c]))
	}

	lines := []string{"  " + strings.Join(cells, "  ")}

	end := min(m.offset+m.visibleRows(), len(rows))
	for i := m.offset; i < end; i++ {
		r := rows[i]
		for c, col := range cols {
			v := col.Value(r)
			text := styles.PadRight(styles.Truncate(cellText(v, col.Kind), widths[c]), widths[c])
			switch {
			case col.Kind == catalog.KindBool:
				text = styles.ValidityStyle(v.Bool).Render(text)
			case c == 0 && i == m.cursor && m.focus == focusResults:
				text = styles.ValueStyle.Bold(true).Render(text)
			default:
				text = styles.ValueStyle.Render(text)
			}
			cells[c] = text
		}

		marker := "  "
		switch {
		case i == m.copied:
			marker = styles.CopiedStyle.Render("✓ ")
		case i == m.cursor:
			marker = styles.SelectionIndicatorStyle.Render("› ")
		}
		lines = append(lines, zone.Mark(m.rowZoneID(i), marker+strings.Join(cells, "  ")))
	}
	if end < len(rows) {
		lines = append(lines, styles.MutedStyle.Render(fmt.Sprintf("  ↓ %d more", len(rows)-end)))
	}
	return strings.Join(lines, "\n")
}

func (m Model[R]) countZoneID() string {
	return "gen:" + m.info.Key + ":count"
}

func (m Model[R]) fieldZoneID(i int) string {
	return fmt.Sprintf("gen:%s:field:%d", m.info.Key, i)
}
