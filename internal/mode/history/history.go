// Package history implements the activity tab: past generation batches,
// newest first, with their results on demand.
package history

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/mockbanker/mockbanker/internal/history"
	"github.com/mockbanker/mockbanker/internal/keys"
	"github.com/mockbanker/mockbanker/internal/log"
	"github.com/mockbanker/mockbanker/internal/mode"
	"github.com/mockbanker/mockbanker/internal/mode/shared"
	"github.com/mockbanker/mockbanker/internal/ui/help"
	"github.com/mockbanker/mockbanker/internal/ui/styles"
	"github.com/mockbanker/mockbanker/internal/ui/toaster"
)

// Model holds the history tab state.
type Model struct {
	services mode.Services

	entries  []history.Entry
	expanded map[string]bool
	cursor   int
	offset   int

	// confirmClear is set by the first clear keypress; the second one
	// clears, anything else cancels.
	confirmClear bool

	width  int
	height int
}

// New creates the tab from the log's in-memory view.
func New(services mode.Services) Model {
	return Model{
		services: services,
		entries:  services.History.Entries(),
		expanded: make(map[string]bool),
	}
}

// Init returns initial commands for the tab.
func (m Model) Init() tea.Cmd { return nil }

// Title is the tab label.
func (m Model) Title() string { return "History" }

// Capturing is always false; the tab has no text input.
func (m Model) Capturing() bool { return false }

// Help describes the tab's bindings.
func (m Model) Help() help.Section {
	return help.Section{Title: "History", Keys: keys.History}
}

// Entries returns the entries on screen.
func (m Model) Entries() []history.Entry { return m.entries }

// Expanded reports whether the entry with id shows its results.
func (m Model) Expanded(id string) bool { return m.expanded[id] }

// SetSize handles terminal resize events.
func (m Model) SetSize(width, height int) mode.Controller {
	m.width = width
	m.height = height
	return m
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (mode.Controller, tea.Cmd) {
	switch msg := msg.(type) {
	case mode.HistoryChangedMsg:
		return m.refresh(m.services.History.Entries()), nil

	case mode.StoreChangedMsg:
		log.Debug(log.CatHistory, "store changed, reloading", "path", msg.Path)
		return m.refresh(m.services.History.Load(context.Background())), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	}
	return m, nil
}

// refresh swaps in entries, keeping the cursor on the same entry when it
// still exists.
func (m Model) refresh(entries []history.Entry) Model {
	var current string
	if m.cursor < len(m.entries) {
		current = m.entries[m.cursor].ID
	}
	m.entries = entries
	m.cursor = 0
	for i, e := range entries {
		if e.ID == current {
			m.cursor = i
			break
		}
	}
	expanded := make(map[string]bool, len(m.expanded))
	for _, e := range entries {
		if m.expanded[e.ID] {
			expanded[e.ID] = true
		}
	}
	m.expanded = expanded
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	if key.Matches(msg, keys.History.Clear) {
		return m.clear()
	}
	m.confirmClear = false

	switch {
	case key.Matches(msg, keys.History.Up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, keys.History.Down):
		m.cursor = max(min(m.cursor+1, len(m.entries)-1), 0)
	case key.Matches(msg, keys.History.Expand):
		m = m.toggle(m.cursor)
	case key.Matches(msg, keys.History.Copy):
		return m.copyResults()
	case key.Matches(msg, keys.History.Reload):
		m = m.refresh(m.services.History.Load(context.Background()))
		return m, mode.ToastCmd("History reloaded", toaster.StyleInfo)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.cursor = max(m.cursor-1, 0)
		return m
	case tea.MouseButtonWheelDown:
		m.cursor = max(min(m.cursor+1, len(m.entries)-1), 0)
		return m
	}
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return m
	}
	for i, e := range m.entries {
		if z := zone.Get(entryZoneID(e)); z != nil && z.InBounds(msg) {
			m.cursor = i
			return m.toggle(i)
		}
	}
	return m
}

func (m Model) toggle(i int) Model {
	if i < 0 || i >= len(m.entries) {
		return m
	}
	id := m.entries[i].ID
	expanded := make(map[string]bool, len(m.expanded)+1)
	for k, v := range m.expanded {
		expanded[k] = v
	}
	expanded[id] = !expanded[id]
	m.expanded = expanded
	return m
}

func (m Model) copyResults() (mode.Controller, tea.Cmd) {
	if m.cursor >= len(m.entries) {
		return m, mode.ToastCmd("Nothing to copy", toaster.StyleInfo)
	}
	e := m.entries[m.cursor]
	if err := m.services.Clipboard.Copy(strings.Join(e.Results, "\n")); err != nil {
		log.ErrorErr(log.CatUI, "copy history results failed", err, "id", e.ID)
		return m, mode.ToastCmd("Clipboard error: "+err.Error(), toaster.StyleError)
	}
	return m, mode.ToastCmd("Copied "+styles.FormatCount(len(e.Results)), toaster.StyleSuccess)
}

func (m Model) clear() (mode.Controller, tea.Cmd) {
	if len(m.entries) == 0 {
		return m, nil
	}
	if !m.confirmClear {
		m.confirmClear = true
		return m, nil
	}
	m.confirmClear = false
	if err := m.services.History.Clear(context.Background()); err != nil {
		log.ErrorErr(log.CatHistory, "clear failed", err)
		return m, mode.ToastCmd("Could not clear history: "+err.Error(), toaster.StyleError)
	}
	m = m.refresh(nil)
	return m, tea.Batch(
		mode.ToastCmd("History cleared", toaster.StyleSuccess),
		func() tea.Msg { return mode.HistoryChangedMsg{} },
	)
}

func entryZoneID(e history.Entry) string {
	return "history:" + e.ID
}

// View renders the entry list, scrolled so the cursor stays visible.
func (m Model) View() string {
	if len(m.entries) == 0 {
		return styles.MutedStyle.Render("No history yet. Generated batches appear here.")
	}

	var lines []string
	cursorLine := 0
	for i, e := range m.entries {
		if i == m.cursor {
			cursorLine = len(lines)
		}
		lines = append(lines, m.renderEntry(i, e)...)
	}

	footer := styles.MutedStyle.Render(styles.FormatCount(len(m.entries)) + " · enter to expand · y to copy")
	if m.confirmClear {
		footer = styles.WarningStyle.Render("Press X again to clear all history")
	}

	if m.height > 2 {
		visible := m.height - 2
		offset := 0
		if cursorLine >= visible {
			offset = cursorLine - visible + 1
		}
		end := min(offset+visible, len(lines))
		lines = lines[offset:end]
	}
	return strings.Join(lines, "\n") + "\n\n" + footer
}

func (m Model) renderEntry(i int, e history.Entry) []string {
	marker := "  "
	if i == m.cursor {
		marker = styles.SelectionIndicatorStyle.Render("› ")
	}
	arrow := "▸ "
	if m.expanded[e.ID] {
		arrow = "▾ "
	}

	when := shared.FormatEntryTime(e.Time(), m.services.Clock)
	header := marker + styles.MutedStyle.Render(arrow+when+"  ") +
		styles.ValueStyle.Bold(true).Render(e.Category) +
		styles.MutedStyle.Render(" · ") + styles.LabelStyle.Render(e.Country) +
		styles.MutedStyle.Render(" · "+styles.FormatCount(e.Count))
	lines := []string{zone.Mark(entryZoneID(e), header)}

	if !m.expanded[e.ID] {
		return lines
	}
	if len(e.Results) == 0 {
		return append(lines, "      "+styles.MutedStyle.Italic(true).Render("no results"))
	}
	width := max(m.width-8, 20)
	for _, r := range e.Results {
		for _, part := range strings.Split(styles.Wrap(r, width), "\n") {
			lines = append(lines, "      "+styles.ValueStyle.Render(part))
		}
	}
	return lines
}
