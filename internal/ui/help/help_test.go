package help

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockbanker/mockbanker/internal/keys"
)

func newTestModel() Model {
	return New().WithProfile(termenv.Ascii).SetSize(100, 40)
}

func TestMarkdown_ListsBindings(t *testing.T) {
	m := newTestModel().SetSection(Section{Title: "IBAN", Keys: keys.Generator})

	md := m.Markdown()

	assert.Contains(t, md, "# IBAN shortcuts")
	assert.Contains(t, md, "| `g/enter` | generate |")
	assert.Contains(t, md, "| `ctrl+t` | toggle theme |")
}

type pipeKeys struct{}

func (pipeKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{key.NewBinding(key.WithKeys("|"), key.WithHelp("|", "pipe"))}}
}

func TestMarkdown_EscapesPipes(t *testing.T) {
	md := newTestModel().SetSection(Section{Title: "X", Keys: pipeKeys{}}).Markdown()

	assert.Contains(t, md, "| `\\|` | pipe |")
}

func TestMarkdown_NoSection(t *testing.T) {
	md := newTestModel().Markdown()

	assert.Contains(t, md, "# MockBanker shortcuts")
}

func TestView_RendersBox(t *testing.T) {
	view := newTestModel().SetSection(Section{Title: "History", Keys: keys.History}).View()
	plain := ansi.Strip(view)

	assert.Contains(t, plain, "╭")
	assert.Contains(t, plain, "History shortcuts")
	assert.Contains(t, plain, "clear history")
	assert.Contains(t, plain, "Press ? or esc to close")
}

func TestOverlay_KeepsBackgroundHeight(t *testing.T) {
	m := newTestModel().SetSection(Section{Title: "Validator", Keys: keys.Validator})
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 100)+"\n", 40), "\n")

	out := m.Overlay(bg)

	require.Len(t, strings.Split(out, "\n"), 40)
	assert.Contains(t, ansi.Strip(out), "apply suggestion")
}

func TestRenderBox_FitsNarrowScreen(t *testing.T) {
	m := New().WithProfile(termenv.Ascii).SetSize(40, 30).SetSection(Section{Title: "IBAN", Keys: keys.Generator})

	for _, line := range strings.Split(m.renderBox(), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 40)
	}
}
