// Package toaster shows short-lived notifications at the bottom of the screen.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mockbanker/mockbanker/internal/ui/overlay"
	"github.com/mockbanker/mockbanker/internal/ui/styles"
)

// DefaultDuration is how long a toast stays up.
const DefaultDuration = 2 * time.Second

// Style determines the visual appearance of the toast.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
)

// DismissMsg hides the toast shown with the same generation.
type DismissMsg struct{ gen int }

// Model holds the toaster state. Every Show bumps the generation so a
// dismissal scheduled for an older toast leaves a newer one alone.
type Model struct {
	message  string
	style    Style
	visible  bool
	gen      int
	duration time.Duration
}

// New creates a toaster using DefaultDuration.
func New() Model {
	return Model{duration: DefaultDuration}
}

// WithDuration returns a copy that keeps toasts up for d.
func (m Model) WithDuration(d time.Duration) Model {
	m.duration = d
	return m
}

// Show displays message and returns the command that will dismiss it.
func (m Model) Show(message string, style Style) (Model, tea.Cmd) {
	m.message = message
	m.style = style
	m.visible = true
	m.gen++
	gen := m.gen
	return m, tea.Tick(m.duration, func(time.Time) tea.Msg { return DismissMsg{gen: gen} })
}

// Update handles DismissMsg.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.gen == m.gen {
		m.visible = false
		m.message = ""
	}
	return m
}

// Visible reports whether a toast is showing.
func (m Model) Visible() bool { return m.visible }

// Message returns the current toast text.
func (m Model) Message() string { return m.message }

// View renders the toast box.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}
	border := styles.Current.Success
	icon := "✓ "
	switch m.style {
	case StyleError:
		border, icon = styles.Current.Error, "✗ "
	case StyleInfo:
		border, icon = styles.Current.BorderFocus, "• "
	}
	return lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Render(icon + m.message)
}

// Overlay renders the toast near the bottom edge of bg.
func (m Model) Overlay(bg string, width, height int) string {
	fg := m.View()
	if fg == "" {
		return bg
	}
	return overlay.Place(overlay.Config{Width: width, Height: height, Position: overlay.Bottom, PadY: 1}, fg, bg)
}
