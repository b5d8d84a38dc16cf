package selector

import (
	"bytes"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/mockbanker/mockbanker/internal/catalog"
)

func testOptions() []catalog.Option {
	return []catalog.Option{
		{Code: "EE", Label: "Estonia"},
		{Code: "LV", Label: "Latvia"},
		{Code: "LT", Label: "Lithuania"},
		{Code: "DE", Label: "Germany"},
		{Code: "ES", Label: "Spain"},
	}
}

func codes(opts []catalog.Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Code
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query returns all", "", []string{"EE", "LV", "LT", "DE", "ES"}},
		{"matches label case-insensitively", "ESTO", []string{"EE"}},
		{"matches code", "lt", []string{"LT"}},
		{"keeps original order", "a", []string{"EE", "LV", "LT", "DE", "ES"}},
		{"code or label", "es", []string{"EE", "ES"}},
		{"no match", "xyz", []string{}},
		{"whitespace is part of the query", "  ", []string{}},
		{"trailing space is not trimmed", "germany ", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, codes(Filter(testOptions(), tt.query)))
		})
	}
}

func TestFilter_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		opts := testOptions()
		query := rapid.StringMatching(`[a-zA-Z ]{0,4}`).Draw(t, "query")

		once := Filter(opts, query)
		require.Equal(t, once, Filter(opts, query), "stable")
		require.Equal(t, once, Filter(once, query), "idempotent")

		// result is a subsequence of the input
		j := 0
		for _, o := range opts {
			if j < len(once) && once[j] == o {
				j++
			}
		}
		require.Equal(t, len(once), j)
	})
}

func TestNew_SelectsFirstOption(t *testing.T) {
	m := New("country", "Country", testOptions())

	require.Equal(t, "EE", m.Selected().Code)
	require.False(t, m.IsOpen())
	require.False(t, m.Focused())
}

func TestSetSelected(t *testing.T) {
	m, ok := New("country", "Country", testOptions()).SetSelected("DE")
	require.True(t, ok)
	require.Equal(t, "DE", m.Selected().Code)

	m, ok = m.SetSelected("XX")
	require.False(t, ok)
	require.Equal(t, "DE", m.Selected().Code)
}

func TestFocus_OpensWithCursorOnSelection(t *testing.T) {
	m, _ := New("country", "Country", testOptions()).SetSelected("LT")
	m, _ = m.Focus()

	require.True(t, m.IsOpen())
	require.True(t, m.Focused())
	require.Equal(t, 2, m.Cursor())
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestSelect_Keyboard(t *testing.T) {
	m, _ := New("country", "Country", testOptions()).Focus()
	m = typeText(m, "ithu")
	require.Equal(t, []string{"LT"}, codes(m.Filtered()))

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	msg, ok := cmd().(SelectedMsg)
	require.True(t, ok)
	require.Equal(t, "country", msg.ID)
	require.Equal(t, "LT", msg.Option.Code)
	require.Equal(t, "LT", m.Selected().Code)
	require.False(t, m.IsOpen())
	require.Empty(t, m.Query())
}

func TestSelect_NoMatchesIsNoop(t *testing.T) {
	m, _ := New("country", "Country", testOptions()).Focus()
	m = typeText(m, "zzz")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Nil(t, cmd)
	require.Equal(t, "EE", m.Selected().Code)
	require.Contains(t, m.View(), "No matches")
}

func TestNavigation_Bounds(t *testing.T) {
	m, _ := New("country", "Country", testOptions()).Focus()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, 0, m.Cursor())

	for range 10 {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	require.Equal(t, len(testOptions())-1, m.Cursor())
}

func TestEscape_ClosesAndKeepsSelection(t *testing.T) {
	m, _ := New("country", "Country", testOptions()).Focus()
	m = typeText(m, "lat")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.False(t, m.IsOpen())
	require.Equal(t, "EE", m.Selected().Code)
	require.Empty(t, m.Query())
}

func TestBlur_ClosesAfterDelay(t *testing.T) {
	m, _ := New("country", "Country", testOptions()).Focus()

	m, cmd := m.Blur()
	require.NotNil(t, cmd)
	require.True(t, m.IsOpen(), "panel stays open until the deferred close")

	m, _ = m.Update(cmd())
	require.False(t, m.IsOpen())
}

func TestBlur_StaleCloseIgnoredAfterRefocus(t *testing.T) {
	m, _ := New("country", "Country", testOptions()).Focus()
	m, stale := m.Blur()
	m, _ = m.Focus()

	m, _ = m.Update(stale())

	require.True(t, m.IsOpen())
}

func TestBlur_CloseForOtherSelectorIgnored(t *testing.T) {
	a, _ := New("a", "A", testOptions()).Focus()
	b, _ := New("b", "B", testOptions()).Focus()
	_, closeA := a.Blur()

	b, _ = b.Update(closeA())

	require.True(t, b.IsOpen())
}

// rowZone waits for the row zone to be registered by the zone worker.
func rowZone(t *testing.T, m Model, i int) *zone.ZoneInfo {
	t.Helper()
	var z *zone.ZoneInfo
	for range 50 {
		_ = zone.Scan(m.View())
		z = zone.Get(m.rowZoneID(i))
		if z != nil && !z.IsZero() {
			return z
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("zone %s never registered", m.rowZoneID(i))
	return nil
}

func TestClickSelection_StaleCloseIgnored(t *testing.T) {
	m, _ := New("click", "Country", testOptions()).Focus()
	z := rowZone(t, m, 3)

	// blur lands before the click, as when focus leaves the input
	m, stale := m.Blur()
	m, cmd := m.Update(tea.MouseMsg{X: z.StartX + 1, Y: z.StartY, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})

	require.NotNil(t, cmd)
	msg, ok := cmd().(SelectedMsg)
	require.True(t, ok)
	require.Equal(t, "DE", msg.Option.Code)

	// reopening before the stale close arrives must survive it
	m, _ = m.Focus()
	m, _ = m.Update(stale())
	require.True(t, m.IsOpen())
	require.Equal(t, "DE", m.Selected().Code)
}

func TestClick_IgnoredWhenClosed(t *testing.T) {
	m := New("closed", "Country", testOptions())

	_, cmd := m.Update(tea.MouseMsg{X: 1, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})

	require.Nil(t, cmd)
}

func TestView_ScrollIndicator(t *testing.T) {
	var opts []catalog.Option
	for _, c := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"} {
		opts = append(opts, catalog.Option{Code: c, Label: "Country " + c})
	}
	m, _ := New("many", "Country", opts).Focus()

	view := zone.Scan(m.View())

	require.Contains(t, view, "↓ 2 more")
	require.Contains(t, view, "Country A (A)")
	require.NotContains(t, view, "Country J (J)")
}

func TestView_ClosedShowsSelection(t *testing.T) {
	m, _ := New("country", "Country", testOptions()).SetSelected("LV")

	view := zone.Scan(m.View())

	require.Contains(t, view, "Country:")
	require.Contains(t, view, "Latvia (LV)")
	require.Equal(t, 1, strings.Count(view, "\n")+1)
}

func TestView_RandomOption(t *testing.T) {
	opts := append([]catalog.Option{{Code: "", Label: catalog.RandomLabel}}, testOptions()...)
	m := New("country", "Country", opts)

	require.Contains(t, zone.Scan(m.View()), "Random")
}

// harness hosts a selector the way a tab does, for end-to-end flows.
type harness struct {
	sel    Model
	chosen []string
}

func (h harness) Init() tea.Cmd { return nil }

func (h harness) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SelectedMsg:
		h.chosen = append(slices.Clone(h.chosen), msg.Option.Code)
		return h, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return h, tea.Quit
		}
	}
	var cmd tea.Cmd
	h.sel, cmd = h.sel.Update(msg)
	return h, cmd
}

func (h harness) View() string {
	return zone.Scan(h.sel.View()) + "\nchosen=" + strings.Join(h.chosen, ",")
}

func TestTeatest_TypeAndSelect(t *testing.T) {
	sel, _ := New("flow", "Country", testOptions()).Focus()
	tm := teatest.NewTestModel(t, harness{sel: sel}, teatest.WithInitialTermSize(80, 24))

	tm.Type("latv")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("chosen=LV"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	final := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(harness)
	require.Equal(t, []string{"LV"}, final.chosen)
	require.Equal(t, "LV", final.sel.Selected().Code)
}
