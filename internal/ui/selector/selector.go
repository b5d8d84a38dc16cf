// Package selector is a searchable single-choice field: a query input over
// a list of options that narrows as the user types.
package selector

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/mockbanker/mockbanker/internal/catalog"
	"github.com/mockbanker/mockbanker/internal/keys"
	"github.com/mockbanker/mockbanker/internal/ui/styles"
)

// CloseDelay is how long the panel stays open after the field loses focus,
// long enough for a click on a result to land first.
const CloseDelay = 200 * time.Millisecond

const defaultMaxVisible = 8

// SelectedMsg reports a choice made in the selector with the given ID.
type SelectedMsg struct {
	ID     string
	Option catalog.Option
}

// closeMsg is the deferred close scheduled by Blur. It is ignored unless gen
// still matches, so any selection or refocus in between cancels it.
type closeMsg struct {
	id  string
	gen int
}

// Filter returns the options whose code or label contains query,
// case-insensitively, in their original order. An empty query matches all.
func Filter(options []catalog.Option, query string) []catalog.Option {
	q := strings.ToLower(query)
	if q == "" {
		return slices.Clone(options)
	}
	out := make([]catalog.Option, 0, len(options))
	for _, o := range options {
		if strings.Contains(strings.ToLower(o.Code), q) || strings.Contains(strings.ToLower(o.Label), q) {
			out = append(out, o)
		}
	}
	return out
}

// Model holds the selector state.
type Model struct {
	id         string
	label      string
	options    []catalog.Option
	filtered   []catalog.Option
	selected   catalog.Option
	input      textinput.Model
	open       bool
	focused    bool
	cursor     int
	offset     int
	gen        int
	maxVisible int
	width      int
}

// New creates a selector. id must be unique among selectors on screen; it
// tags SelectedMsg and the mouse zones. The first option starts selected.
func New(id, label string, options []catalog.Option) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Search..."
	m := Model{
		id:         id,
		label:      label,
		options:    slices.Clone(options),
		filtered:   slices.Clone(options),
		input:      ti,
		maxVisible: defaultMaxVisible,
		width:      40,
	}
	if len(options) > 0 {
		m.selected = options[0]
	}
	return m
}

// ID returns the selector ID.
func (m Model) ID() string { return m.id }

// Label returns the field label.
func (m Model) Label() string { return m.label }

// Selected returns the current choice.
func (m Model) Selected() catalog.Option { return m.selected }

// Options returns every option in original order.
func (m Model) Options() []catalog.Option { return m.options }

// Filtered returns the options matching the current query.
func (m Model) Filtered() []catalog.Option { return m.filtered }

// Query returns the search text.
func (m Model) Query() string { return m.input.Value() }

// IsOpen reports whether the result panel is showing.
func (m Model) IsOpen() bool { return m.open }

// Focused reports whether the field has keyboard focus.
func (m Model) Focused() bool { return m.focused }

// Cursor returns the highlighted index within Filtered.
func (m Model) Cursor() int { return m.cursor }

// SetWidth sets the rendered width.
func (m Model) SetWidth(w int) Model {
	m.width = max(w, 16)
	m.input.Width = m.width - 4
	return m
}

// SetSelected selects the option with code. It reports false and leaves the
// selection alone when no option has that code.
func (m Model) SetSelected(code string) (Model, bool) {
	i := slices.IndexFunc(m.options, func(o catalog.Option) bool { return o.Code == code })
	if i < 0 {
		return m, false
	}
	m.selected = m.options[i]
	return m, true
}

// Focus gives the field keyboard focus and opens the panel.
func (m Model) Focus() (Model, tea.Cmd) {
	m.gen++
	m.focused = true
	m.open = true
	m.filtered = Filter(m.options, m.input.Value())
	m.cursor = max(slices.IndexFunc(m.filtered, func(o catalog.Option) bool { return o.Code == m.selected.Code }), 0)
	m = m.ensureCursorVisible()
	cmd := m.input.Focus()
	return m, cmd
}

// Blur removes keyboard focus and schedules the panel to close after
// CloseDelay.
func (m Model) Blur() (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	m.focused = false
	m.input.Blur()
	if !m.open {
		return m, nil
	}
	gen, id := m.gen, m.id
	return m, tea.Tick(CloseDelay, func(time.Time) tea.Msg { return closeMsg{id: id, gen: gen} })
}

// Update handles keys while focused, clicks on visible results and the
// deferred close.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case closeMsg:
		if msg.id == m.id && msg.gen == m.gen {
			m = m.close()
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleClick(msg)

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		if !m.open {
			if key.Matches(msg, keys.Selector.Select) {
				return m.Focus()
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.Selector.Down):
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				m = m.ensureCursorVisible()
			}
			return m, nil
		case key.Matches(msg, keys.Selector.Up):
			if m.cursor > 0 {
				m.cursor--
				m = m.ensureCursorVisible()
			}
			return m, nil
		case key.Matches(msg, keys.Selector.Select):
			if len(m.filtered) == 0 {
				return m, nil
			}
			return m.choose(m.filtered[m.cursor])
		case key.Matches(msg, keys.Selector.Close):
			m.gen++
			return m.close(), nil
		case key.Matches(msg, keys.Selector.Reset):
			m.input.SetValue("")
			return m.refilter(), nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m.refilter(), cmd
	}
	return m, nil
}

func (m Model) handleClick(msg tea.MouseMsg) (Model, tea.Cmd) {
	if !m.open || msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return m, nil
	}
	end := min(m.offset+m.maxVisible, len(m.filtered))
	for i := m.offset; i < end; i++ {
		if z := zone.Get(m.rowZoneID(i)); z != nil && z.InBounds(msg) {
			return m.choose(m.filtered[i])
		}
	}
	return m, nil
}

// choose records opt, clears the query and closes the panel.
func (m Model) choose(opt catalog.Option) (Model, tea.Cmd) {
	m.selected = opt
	m.gen++
	m = m.close()
	id := m.id
	return m, func() tea.Msg { return SelectedMsg{ID: id, Option: opt} }
}

func (m Model) close() Model {
	m.open = false
	m.input.SetValue("")
	m.filtered = slices.Clone(m.options)
	m.cursor = 0
	m.offset = 0
	return m
}

func (m Model) refilter() Model {
	m.filtered = Filter(m.options, m.input.Value())
	m.cursor = 0
	m.offset = 0
	return m
}

func (m Model) ensureCursorVisible() Model {
	if m.cursor >= m.offset+m.maxVisible {
		m.offset = m.cursor - m.maxVisible + 1
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	return m
}

func (m Model) rowZoneID(i int) string {
	return fmt.Sprintf("selector:%s:%d", m.id, i)
}

// FieldZoneID is the zone covering the field line, for click-to-focus.
func (m Model) FieldZoneID() string {
	return "selector:" + m.id + ":field"
}

// View renders the field line and, while open, the result panel below it.
// Callers must pass the final frame through zone.Scan.
func (m Model) View() string {
	labelStyle := styles.LabelStyle
	if m.focused {
		labelStyle = styles.FocusedLabelStyle
	}

	var line string
	if m.focused && m.open {
		line = labelStyle.Render(m.label+": ") + m.input.View()
	} else {
		line = labelStyle.Render(m.label+": ") + styles.ValueStyle.Render(m.selectedText()) + styles.MutedStyle.Render(" ▾")
	}

	var b strings.Builder
	b.WriteString(zone.Mark(m.FieldZoneID(), line))
	if !m.open {
		return b.String()
	}

	if len(m.filtered) == 0 {
		b.WriteString("\n  ")
		b.WriteString(styles.MutedStyle.Italic(true).Render("No matches"))
		return b.String()
	}

	end := min(m.offset+m.maxVisible, len(m.filtered))
	for i := m.offset; i < end; i++ {
		o := m.filtered[i]
		indicator := "  "
		text := styles.Truncate(optionText(o), m.width-2)
		if i == m.cursor {
			indicator = styles.SelectionIndicatorStyle.Render("> ")
			text = styles.ValueStyle.Bold(true).Render(text)
		} else {
			text = styles.LabelStyle.Render(text)
		}
		b.WriteString("\n")
		b.WriteString(zone.Mark(m.rowZoneID(i), indicator+text))
	}
	if end < len(m.filtered) {
		b.WriteString("\n  ")
		b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("↓ %d more", len(m.filtered)-end)))
	}
	return b.String()
}

func (m Model) selectedText() string {
	if m.selected.Label == "" && m.selected.Code == "" {
		return "-"
	}
	return optionText(m.selected)
}

func optionText(o catalog.Option) string {
	switch {
	case o.Code == "":
		return o.Label
	case o.Label == "" || o.Label == o.Code:
		return o.Code
	default:
		return o.Label + " (" + o.Code + ")"
	}
}
