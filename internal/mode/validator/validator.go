// Package validator implements the validation tab: pick an identifier type,
// optionally a country, and get a live verdict for the typed value.
package validator

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/mockbanker/mockbanker/internal/catalog"
	"github.com/mockbanker/mockbanker/internal/keys"
	"github.com/mockbanker/mockbanker/internal/log"
	"github.com/mockbanker/mockbanker/internal/mode"
	"github.com/mockbanker/mockbanker/internal/ui/help"
	"github.com/mockbanker/mockbanker/internal/ui/selector"
	"github.com/mockbanker/mockbanker/internal/ui/styles"
	"github.com/mockbanker/mockbanker/internal/ui/toaster"
	"github.com/mockbanker/mockbanker/internal/validation"
)

// FocusField is the input holding keyboard focus.
type FocusField int

const (
	FocusDomain FocusField = iota
	FocusCountry
	FocusValue
)

const (
	domainSelectorID  = "validator:domain"
	countrySelectorID = "validator:country"
	valueZoneID       = "validator:value"
)

// Model holds the validator tab state.
type Model struct {
	services mode.Services

	domain  selector.Model
	country selector.Model
	scoped  bool
	input   textinput.Model
	focus   FocusField

	verdict    validation.Verdict
	hasVerdict bool

	width  int
	height int
}

func domainOptions() []catalog.Option {
	all := catalog.All()
	out := make([]catalog.Option, len(all))
	for i, d := range all {
		info := d.Info()
		out[i] = catalog.Option{Code: info.Key, Label: info.Name}
	}
	return out
}

// New creates the tab with the value field focused on the first domain.
func New(services mode.Services) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Type or paste a value"
	ti.CharLimit = 64
	ti.Width = 40
	ti.Focus()

	m := Model{
		services: services,
		domain:   selector.New(domainSelectorID, "Type", domainOptions()),
		input:    ti,
		focus:    FocusValue,
	}
	return m.rebuildCountry()
}

// rebuildCountry replaces the country selector with the current domain's
// options, preselecting the configured default.
func (m Model) rebuildCountry() Model {
	d, ok := catalog.Lookup(m.domain.Selected().Code)
	if !ok {
		m.scoped = false
		return m
	}
	info := d.Info()
	m.scoped = info.CountryScoped
	m.country = selector.New(countrySelectorID, info.SelectorLabel, d.Options())
	if def := m.services.Config.DefaultSelector(info.Key); def != "" {
		if s, ok := m.country.SetSelected(def); ok {
			m.country = s
		}
	}
	m.country = m.country.SetWidth(m.selectorWidth())
	return m
}

func (m Model) selectorWidth() int {
	return min(max(m.width-4, 20), 60)
}

// Init returns initial commands for the tab.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Title is the tab label.
func (m Model) Title() string { return "Validator" }

// Capturing is true while the value field or an open selector has focus.
func (m Model) Capturing() bool {
	switch m.focus {
	case FocusDomain:
		return m.domain.IsOpen()
	case FocusCountry:
		return m.country.IsOpen()
	}
	return true
}

// Help describes the tab's bindings.
func (m Model) Help() help.Section {
	return help.Section{Title: "Validator", Keys: keys.Validator}
}

// Verdict returns the current verdict; ok is false while the value is blank.
func (m Model) Verdict() (validation.Verdict, bool) { return m.verdict, m.hasVerdict }

// Value returns the typed value.
func (m Model) Value() string { return m.input.Value() }

// Domain returns the selected domain key.
func (m Model) Domain() string { return m.domain.Selected().Code }

// Country returns the selected country, empty for value-only domains.
func (m Model) Country() string {
	if !m.scoped {
		return ""
	}
	return m.country.Selected().Code
}

// SetSize handles terminal resize events.
func (m Model) SetSize(width, height int) mode.Controller {
	m.width = width
	m.height = height
	m.domain = m.domain.SetWidth(m.selectorWidth())
	m.country = m.country.SetWidth(m.selectorWidth())
	m.input.Width = max(width-12, 10)
	return m
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (mode.Controller, tea.Cmd) {
	switch msg := msg.(type) {
	case selector.SelectedMsg:
		switch msg.ID {
		case domainSelectorID:
			m = m.rebuildCountry()
			return m.revalidate(), nil
		case countrySelectorID:
			return m.revalidate(), nil
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.domain, cmd = m.domain.Update(msg)
	cmds = append(cmds, cmd)
	m.country, cmd = m.country.Update(msg)
	cmds = append(cmds, cmd)
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Validator.NextField):
		return m.moveFocus(true)
	case key.Matches(msg, keys.Validator.PrevField):
		return m.moveFocus(false)
	}

	if m.focus != FocusValue {
		var cmd tea.Cmd
		if m.focus == FocusDomain {
			m.domain, cmd = m.domain.Update(msg)
			if m.domain.IsOpen() {
				return m, cmd
			}
		} else {
			m.country, cmd = m.country.Update(msg)
			if m.country.IsOpen() {
				return m, cmd
			}
		}
		// Chosen or dismissed.
		next, focusCmd := m.setFocus(FocusValue)
		return next, tea.Batch(cmd, focusCmd)
	}

	switch {
	case key.Matches(msg, keys.Validator.Apply):
		return m.applySuggestion()
	case key.Matches(msg, keys.Validator.Clear):
		m.input.SetValue("")
		return m.revalidate(), nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m = m.revalidate()
	}
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (mode.Controller, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return m, nil
	}

	var cmd tea.Cmd
	if m.domain, cmd = m.domain.Update(msg); cmd != nil {
		next, focusCmd := m.setFocus(FocusValue)
		return next, tea.Batch(cmd, focusCmd)
	}
	if m.scoped {
		if m.country, cmd = m.country.Update(msg); cmd != nil {
			next, focusCmd := m.setFocus(FocusValue)
			return next, tea.Batch(cmd, focusCmd)
		}
	}

	switch {
	case inZone(m.domain.FieldZoneID(), msg):
		return m.setFocus(FocusDomain)
	case m.scoped && inZone(m.country.FieldZoneID(), msg):
		return m.setFocus(FocusCountry)
	case inZone(valueZoneID, msg):
		return m.setFocus(FocusValue)
	}
	return m, nil
}

func inZone(id string, msg tea.MouseMsg) bool {
	z := zone.Get(id)
	return z != nil && z.InBounds(msg)
}

func (m Model) targets() []FocusField {
	if m.scoped {
		return []FocusField{FocusDomain, FocusCountry, FocusValue}
	}
	return []FocusField{FocusDomain, FocusValue}
}

func (m Model) moveFocus(forward bool) (mode.Controller, tea.Cmd) {
	targets := m.targets()
	i := 0
	for j, f := range targets {
		if f == m.focus {
			i = j
		}
	}
	if forward {
		i = (i + 1) % len(targets)
	} else {
		i = (i - 1 + len(targets)) % len(targets)
	}
	return m.setFocus(targets[i])
}

func (m Model) setFocus(target FocusField) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if target != FocusDomain {
		m.domain, cmd = m.domain.Blur()
		cmds = append(cmds, cmd)
	}
	if target != FocusCountry {
		m.country, cmd = m.country.Blur()
		cmds = append(cmds, cmd)
	}
	if target != FocusValue {
		m.input.Blur()
	}

	m.focus = target
	switch target {
	case FocusDomain:
		m.domain, cmd = m.domain.Focus()
	case FocusCountry:
		m.country, cmd = m.country.Focus()
	default:
		cmd = m.input.Focus()
	}
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) revalidate() Model {
	m.verdict, m.hasVerdict = m.services.Validator.Validate(context.Background(), validation.Request{
		Domain:  m.Domain(),
		Country: m.Country(),
		Value:   m.input.Value(),
	})
	return m
}

func (m Model) applySuggestion() (mode.Controller, tea.Cmd) {
	if !m.hasVerdict || m.verdict.Suggestion == "" {
		return m, nil
	}
	m.input.SetValue(m.verdict.Suggestion)
	m.input.CursorEnd()
	log.Debug(log.CatValidate, "applied suggestion", "domain", m.Domain())
	m = m.revalidate()
	return m, mode.ToastCmd("Suggestion applied", toaster.StyleSuccess)
}

// View renders the form and the verdict.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.domain.View())
	if m.scoped {
		b.WriteString("\n")
		b.WriteString(m.country.View())
	}
	b.WriteString("\n")

	label := styles.LabelStyle
	if m.focus == FocusValue {
		label = styles.FocusedLabelStyle
	}
	b.WriteString(zone.Mark(valueZoneID, label.Render("Value: ")+m.input.View()))
	b.WriteString("\n\n")
	b.WriteString(m.renderVerdict())
	return b.String()
}

func (m Model) renderVerdict() string {
	if !m.hasVerdict {
		return styles.MutedStyle.Render("Enter a value to validate it")
	}
	icon := "✗ "
	if m.verdict.Valid {
		icon = "✓ "
	}
	out := styles.ValidityStyle(m.verdict.Valid).Bold(true).Render(icon + m.verdict.Message)
	if m.verdict.Suggestion == "" {
		return out
	}
	return out + "\n\n" +
		styles.LabelStyle.Render("Did you mean: ") + renderDiff(m.input.Value(), m.verdict.Suggestion) + "\n" +
		styles.MutedStyle.Render("ctrl+r to apply")
}

// renderDiff shows the suggestion with changed characters highlighted.
func renderDiff(value, suggestion string) string {
	var b strings.Builder
	for _, seg := range validation.Diff(validation.Normalize(value), validation.Normalize(suggestion)) {
		switch seg.Op {
		case validation.OpInsert:
			b.WriteString(styles.DiffInsertStyle.Render(seg.Text))
		case validation.OpDelete:
			b.WriteString(styles.DiffDeleteStyle.Render(seg.Text))
		default:
			b.WriteString(styles.ValueStyle.Render(seg.Text))
		}
	}
	return b.String()
}
