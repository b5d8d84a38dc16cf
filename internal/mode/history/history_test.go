package history

import (
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/mockbanker/mockbanker/internal/history"
	"github.com/mockbanker/mockbanker/internal/kvstore"
	"github.com/mockbanker/mockbanker/internal/mode"
	"github.com/mockbanker/mockbanker/internal/mode/shared"
	"github.com/mockbanker/mockbanker/internal/ui/toaster"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

var base = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// testServices returns services over a store shared with the returned
// second log, which plays another process writing the same file.
func testServices(t *testing.T) (mode.Services, *history.Log) {
	t.Helper()
	store := kvstore.NewMemory()
	clock := func() time.Time { return base }
	svc := mode.TestServices()
	svc.History = history.New(store, history.WithClock(clock))
	svc.Clock = shared.FixedClock(base.Add(5 * time.Minute))
	return svc, history.New(store, history.WithClock(clock))
}

func record(t *testing.T, l *history.Log, category, country string, results ...string) {
	t.Helper()
	require.NoError(t, l.Record(t.Context(), category, country, len(results), results))
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func press(t *testing.T, m Model, s string) (Model, tea.Cmd) {
	t.Helper()
	switch s {
	case "enter":
		return update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	}
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestView_Empty(t *testing.T) {
	svc, _ := testServices(t)
	m := New(svc)

	require.Contains(t, m.View(), "No history yet")
	require.False(t, m.Capturing())
}

func TestView_ListsNewestFirst(t *testing.T) {
	svc, _ := testServices(t)
	record(t, svc.History, "IBAN", "DE", "DE89370400440532013000")
	record(t, svc.History, "VAT", "FR", "FR40303265045", "FR83404833048")
	m := New(svc)

	require.Len(t, m.Entries(), 2)
	require.Equal(t, "VAT", m.Entries()[0].Category)

	view := m.View()
	require.Contains(t, view, "(5m ago)")
	require.Contains(t, view, "FR · 2 results")
	require.Contains(t, view, "DE · 1 result")
	require.NotContains(t, view, "FR40303265045", "collapsed entries hide results")
}

func TestExpand_ShowsResults(t *testing.T) {
	svc, _ := testServices(t)
	record(t, svc.History, "VAT", "FR", "FR40303265045", "FR83404833048")
	m := New(svc)

	m, _ = press(t, m, "enter")

	require.True(t, m.Expanded(m.Entries()[0].ID))
	require.Contains(t, m.View(), "FR83404833048")

	m, _ = press(t, m, "enter")
	require.False(t, m.Expanded(m.Entries()[0].ID))
}

func TestCopy_JoinsResults(t *testing.T) {
	svc, _ := testServices(t)
	record(t, svc.History, "VAT", "FR", "FR40303265045", "FR83404833048")
	m := New(svc)

	_, cmd := press(t, m, "y")

	require.Equal(t, "FR40303265045\nFR83404833048", svc.Clipboard.(*shared.MockClipboard).Last())
	toast := cmd().(mode.ShowToastMsg)
	require.Equal(t, "Copied 2 results", toast.Message)
}

func TestClear_NeedsConfirmation(t *testing.T) {
	svc, _ := testServices(t)
	record(t, svc.History, "IBAN", "DE", "DE89370400440532013000")
	m := New(svc)

	m, cmd := press(t, m, "X")
	require.Nil(t, cmd)
	require.Contains(t, m.View(), "Press X again")
	require.Equal(t, 1, svc.History.Len())

	m, _ = press(t, m, "j")
	require.NotContains(t, m.View(), "Press X again")

	m, _ = press(t, m, "X")
	m, cmd = press(t, m, "X")
	require.NotNil(t, cmd)
	require.Empty(t, m.Entries())
	require.Zero(t, svc.History.Len())
	require.Empty(t, svc.History.Load(t.Context()), "stored log removed")
}

func TestHistoryChanged_Refreshes(t *testing.T) {
	svc, _ := testServices(t)
	m := New(svc)
	record(t, svc.History, "LEI", "Random", "5493001KJTIIGC8Y1R12")

	m, _ = update(t, m, mode.HistoryChangedMsg{})

	require.Len(t, m.Entries(), 1)
	require.Equal(t, "Random", m.Entries()[0].Country)
}

func TestStoreChanged_ReloadsFromStore(t *testing.T) {
	svc, other := testServices(t)
	record(t, svc.History, "IBAN", "DE", "DE89370400440532013000")
	m := New(svc)
	m, _ = press(t, m, "enter")
	expandedID := m.Entries()[0].ID

	record(t, other, "SWIFT", "DE", "DEUTDEFF")
	m, _ = update(t, m, mode.StoreChangedMsg{Path: "/tmp/mockbanker.db"})

	require.Len(t, m.Entries(), 2)
	require.Equal(t, "SWIFT", m.Entries()[0].Category)
	require.True(t, m.Expanded(expandedID), "expansion survives reload")
	require.Equal(t, 1, m.cursor, "cursor follows its entry")
}

func TestReload_Toasts(t *testing.T) {
	svc, other := testServices(t)
	m := New(svc)
	record(t, other, "IBAN", "NL", "NL91ABNA0417164300")

	m, cmd := press(t, m, "r")

	require.Len(t, m.Entries(), 1)
	require.Equal(t, toaster.StyleInfo, cmd().(mode.ShowToastMsg).Style)
}

func TestMouse_ClickTogglesEntry(t *testing.T) {
	svc, _ := testServices(t)
	record(t, svc.History, "IBAN", "DE", "DE89370400440532013000")
	record(t, svc.History, "VAT", "FR", "FR40303265045")
	m := New(svc)
	target := m.Entries()[1]

	var z *zone.ZoneInfo
	for range 50 {
		_ = zone.Scan(m.View())
		if z = zone.Get(entryZoneID(target)); z != nil && !z.IsZero() {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.NotNil(t, z)

	m, _ = update(t, m, tea.MouseMsg{X: z.StartX, Y: z.StartY, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})

	require.Equal(t, 1, m.cursor)
	require.True(t, m.Expanded(target.ID))
}
