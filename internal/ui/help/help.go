// Package help contains the help overlay component.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mockbanker/mockbanker/internal/log"
	"github.com/mockbanker/mockbanker/internal/ui/markdown"
	"github.com/mockbanker/mockbanker/internal/ui/overlay"
	"github.com/mockbanker/mockbanker/internal/ui/styles"
)

// KeyMap is satisfied by every tab keymap in the keys package.
type KeyMap interface {
	FullHelp() [][]key.Binding
}

// Section groups the bindings of one tab under a title.
type Section struct {
	Title string
	Keys  KeyMap
}

const maxBoxWidth = 72

// Model holds the help overlay state.
type Model struct {
	section Section
	profile termenv.Profile
	width   int
	height  int
}

// New creates a help overlay rendering with the terminal's color profile.
func New() Model {
	return Model{profile: termenv.EnvColorProfile()}
}

// WithProfile overrides the color profile.
func (m Model) WithProfile(p termenv.Profile) Model {
	m.profile = p
	return m
}

// SetSection selects the bindings to describe.
func (m Model) SetSection(s Section) Model {
	m.section = s
	return m
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Markdown returns the help text as a markdown document.
func (m Model) Markdown() string {
	var b strings.Builder
	title := m.section.Title
	if title == "" {
		title = "MockBanker"
	}
	fmt.Fprintf(&b, "# %s shortcuts\n\n", title)
	b.WriteString("| Key | Action |\n|---|---|\n")
	if m.section.Keys != nil {
		for _, group := range m.section.Keys.FullHelp() {
			for _, binding := range group {
				h := binding.Help()
				if h.Key == "" {
					continue
				}
				fmt.Fprintf(&b, "| `%s` | %s |\n", escapeCell(h.Key), h.Desc)
			}
		}
	}
	b.WriteString("\nValues are synthetic and for testing only.\n")
	return b.String()
}

// pipes would end a table cell early
func escapeCell(s string) string { return strings.ReplaceAll(s, "|", "\\|") }

// View renders the help box on its own.
func (m Model) View() string {
	return m.Overlay("")
}

// Overlay renders the help box centered over background.
func (m Model) Overlay(background string) string {
	box := m.renderBox()
	if background == "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return overlay.Place(overlay.Config{Width: m.width, Height: m.height, Position: overlay.Center}, box, background)
}

func (m Model) renderBox() string {
	width := maxBoxWidth
	if m.width > 0 {
		width = min(width, m.width-4)
	}
	width = max(width, 20)

	body := m.Markdown()
	r, err := markdown.New(width-4, styles.GlamourStyle(), m.profile)
	if err == nil {
		if out, rerr := r.Render(body); rerr == nil {
			body = strings.TrimRight(out, "\n")
		} else {
			log.ErrorErr(log.CatUI, "render help", rerr)
		}
	} else {
		log.ErrorErr(log.CatUI, "create help renderer", err)
	}

	footer := styles.MutedStyle.Render("Press ? or esc to close")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Current.OverlayBorder).
		Padding(0, 1).
		Width(width).
		Render(body + "\n\n" + footer)
}
