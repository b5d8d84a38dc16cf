package validator

import (
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/mockbanker/mockbanker/internal/catalog"
	"github.com/mockbanker/mockbanker/internal/mode"
	"github.com/mockbanker/mockbanker/internal/ui/selector"
	"github.com/mockbanker/mockbanker/internal/ui/toaster"
	"github.com/mockbanker/mockbanker/internal/validation"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

// messages runs cmd and flattens batches.
func messages(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, messages(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// chooseDomain opens the type selector, searches for query and feeds the
// resulting selection back in.
func chooseDomain(t *testing.T, m Model, query string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.scoped {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	}
	require.Equal(t, FocusDomain, m.focus)
	require.True(t, m.domain.IsOpen())

	m = typeText(t, m, query)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, FocusValue, m.focus)

	for _, msg := range messages(cmd) {
		if sel, ok := msg.(selector.SelectedMsg); ok {
			m, _ = update(t, m, sel)
		}
	}
	return m
}

func TestNew_StartsOnValueField(t *testing.T) {
	m := New(mode.TestServices())

	require.Equal(t, FocusValue, m.focus)
	require.True(t, m.Capturing())
	require.Equal(t, catalog.KeyIBAN, m.Domain())
	require.Empty(t, m.Country(), "IBAN is value-only")

	_, ok := m.Verdict()
	require.False(t, ok)
	require.Contains(t, m.View(), "Enter a value to validate it")
}

func TestValidate_LiveVerdict(t *testing.T) {
	m := New(mode.TestServices())

	m = typeText(t, m, "DE89 3704 0044 0532 0130 00")

	v, ok := m.Verdict()
	require.True(t, ok)
	require.True(t, v.Valid)
	require.Equal(t, "Valid IBAN", v.Message)
	require.Empty(t, v.Suggestion)
	require.Contains(t, m.View(), "✓ Valid IBAN")
}

func TestValidate_SuggestionAndApply(t *testing.T) {
	m := New(mode.TestServices())
	m = typeText(t, m, "DE00370400440532013000")

	v, ok := m.Verdict()
	require.True(t, ok)
	require.False(t, v.Valid)
	require.Equal(t, "DE89370400440532013000", validation.Normalize(v.Suggestion))
	require.Contains(t, m.View(), "Did you mean")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})

	require.Equal(t, v.Suggestion, m.Value())
	v, _ = m.Verdict()
	require.True(t, v.Valid)
	toast, isToast := cmd().(mode.ShowToastMsg)
	require.True(t, isToast)
	require.Equal(t, toaster.StyleSuccess, toast.Style)
}

func TestValidate_RepairHintsOff(t *testing.T) {
	svc := mode.TestServices()
	svc.Validator = validation.New(validation.WithRepairHints(false))
	m := New(svc)
	m = typeText(t, m, "DE00370400440532013000")

	v, ok := m.Verdict()
	require.True(t, ok)
	require.False(t, v.Valid)
	require.Empty(t, v.Suggestion)
	require.NotContains(t, m.View(), "Did you mean")

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	require.Nil(t, cmd)
}

func TestValidate_ClearResetsVerdict(t *testing.T) {
	m := New(mode.TestServices())
	m = typeText(t, m, "DE89370400440532013000")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})

	require.Empty(t, m.Value())
	_, ok := m.Verdict()
	require.False(t, ok)
}

func TestDomainSwitch_AddsCountryAndRevalidates(t *testing.T) {
	m := New(mode.TestServices())
	m = typeText(t, m, "37605030299")
	v, _ := m.Verdict()
	require.False(t, v.Valid, "not an IBAN")

	m = chooseDomain(t, m, "personal")

	require.Equal(t, catalog.KeyPersonalID, m.Domain())
	require.Equal(t, "EE", m.Country())
	v, ok := m.Verdict()
	require.True(t, ok)
	require.True(t, v.Valid)
	require.Contains(t, v.Message, "Valid ID")
	require.Contains(t, m.View(), "Country")
}

func TestFocus_CyclesThroughCountry(t *testing.T) {
	m := New(mode.TestServices())
	m = chooseDomain(t, m, "personal")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, FocusDomain, m.focus)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, FocusCountry, m.focus)
	require.True(t, m.country.IsOpen())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, FocusValue, m.focus)
}

func TestSelectorEscReturnsToValue(t *testing.T) {
	m := New(mode.TestServices())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, FocusDomain, m.focus)
	require.True(t, m.Capturing())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	require.Equal(t, FocusValue, m.focus)
	require.Equal(t, catalog.KeyIBAN, m.Domain())
}
