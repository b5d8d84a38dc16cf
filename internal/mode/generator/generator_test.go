package generator

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/mockbanker/mockbanker/internal/catalog"
	"github.com/mockbanker/mockbanker/internal/export"
	"github.com/mockbanker/mockbanker/internal/idgen/personalid"
	"github.com/mockbanker/mockbanker/internal/mode"
	"github.com/mockbanker/mockbanker/internal/mode/shared"
	"github.com/mockbanker/mockbanker/internal/ui/toaster"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update[R catalog.Row](t *testing.T, m Model[R], msg tea.Msg) (Model[R], tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model[R])
	require.True(t, ok, "Update must return the same tab type")
	return out, cmd
}

func press[R catalog.Row](t *testing.T, m Model[R], keys ...string) Model[R] {
	t.Helper()
	for _, k := range keys {
		m, _ = update(t, m, keyMsg(k))
	}
	return m
}

// generate presses g and feeds the scheduled request back in.
func generate[R catalog.Row](t *testing.T, m Model[R]) (Model[R], tea.Cmd) {
	t.Helper()
	m, cmd := update(t, m, keyMsg("g"))
	require.Equal(t, StateGenerating, m.State())
	require.NotNil(t, cmd)
	msg := cmd()
	_, ok := msg.(generateMsg)
	require.True(t, ok, "expected generateMsg, got %T", msg)
	return update(t, m, msg)
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

func toastOf(t *testing.T, cmd tea.Cmd) mode.ShowToastMsg {
	t.Helper()
	for _, msg := range messages(cmd) {
		if toast, ok := msg.(mode.ShowToastMsg); ok {
			return toast
		}
	}
	t.Fatalf("no toast in command output")
	return mode.ShowToastMsg{}
}

func newIBANTab(t *testing.T) (Model[catalog.IBANRow], mode.Services) {
	t.Helper()
	svc := mode.TestServices()
	return New(svc, catalog.IBAN), svc
}

func TestNew_UsesConfiguredDefaults(t *testing.T) {
	svc := mode.TestServices()
	svc.Config.Defaults["iban"] = "NL"
	svc.Config.Defaults["count"] = 7

	m := New(svc, catalog.IBAN)

	require.Equal(t, "NL", m.Selected().Code)
	require.Equal(t, 7, m.Count())
	require.Equal(t, StateIdle, m.State())
	require.Equal(t, "IBAN", m.Title())
}

func TestNew_UnknownDefaultKeepsFirstOption(t *testing.T) {
	svc := mode.TestServices()
	svc.Config.Defaults["iban"] = "XX"

	m := New(svc, catalog.IBAN)

	require.Equal(t, catalog.IBAN.Options()[0].Code, m.Selected().Code)
}

func TestNew_RandomOptionLeadsWhenAllowed(t *testing.T) {
	m := New(mode.TestServices(), catalog.LEI)

	require.Equal(t, catalog.RandomLabel, m.Selected().Label)
	require.Empty(t, m.Request().Selector)
}

func TestGenerate_RecordsHistoryAndNotifies(t *testing.T) {
	m, svc := newIBANTab(t)

	m, cmd := generate(t, m)

	require.Equal(t, StateReady, m.State())
	require.Equal(t, 5, m.Snapshot().Len())
	for _, row := range m.Snapshot().Rows {
		require.True(t, row.Valid)
		require.Equal(t, "DE", row.Raw[:2])
	}

	entries := svc.History.Entries()
	require.Len(t, entries, 1)
	require.Equal(t, "IBAN", entries[0].Category)
	require.Equal(t, "DE", entries[0].Country)
	require.Equal(t, 5, entries[0].Count)
	require.Equal(t, m.Snapshot().PrimaryValues(), entries[0].Results)

	require.Contains(t, messages(cmd), tea.Msg(mode.HistoryChangedMsg{}))
}

func TestGenerate_IgnoredWhileGenerating(t *testing.T) {
	m, _ := newIBANTab(t)

	m, first := update(t, m, keyMsg("g"))
	require.NotNil(t, first)
	m, second := update(t, m, keyMsg("g"))

	require.Nil(t, second)
	require.Equal(t, StateGenerating, m.State())
}

func TestGenerate_OtherTabsIgnoreRequest(t *testing.T) {
	m, svc := newIBANTab(t)

	m, cmd := update(t, m, generateMsg{key: catalog.KeyVAT})

	require.Nil(t, cmd)
	require.Equal(t, StateIdle, m.State())
	require.Zero(t, svc.History.Len())
}

func TestCount_Clamps(t *testing.T) {
	m, _ := newIBANTab(t)

	for range 10 {
		m = press(t, m, "-")
	}
	require.Equal(t, 1, m.Count())

	for range 150 {
		m = press(t, m, "+")
	}
	require.Equal(t, 100, m.Count())
}

func TestCount_ArrowsWhenFocused(t *testing.T) {
	m, _ := newIBANTab(t)

	// results -> selector -> count
	m = press(t, m, "tab", "tab")
	require.Equal(t, focusCount, m.focus)

	m = press(t, m, "right", "l")
	require.Equal(t, 7, m.Count())
}

func TestCopy_RespectsSpacesToggle(t *testing.T) {
	m, svc := newIBANTab(t)
	clip := svc.Clipboard.(*shared.MockClipboard)
	m, _ = generate(t, m)

	m, cmd := update(t, m, keyMsg("y"))
	require.Equal(t, m.Snapshot().Rows[0].Formatted, clip.Last())
	require.Equal(t, toaster.StyleSuccess, toastOf(t, cmd).Style)
	require.Equal(t, 0, m.copied)

	m = press(t, m, "w", "j")
	m, _ = update(t, m, keyMsg("y"))
	require.Equal(t, m.Snapshot().Rows[1].Raw, clip.Last())
	require.Equal(t, 1, m.copied)
}

func TestCopy_MarkerClearedByNextBatch(t *testing.T) {
	m, _ := newIBANTab(t)
	m, _ = generate(t, m)
	m = press(t, m, "y")
	require.Equal(t, 0, m.copied)

	m, _ = generate(t, m)

	require.Equal(t, -1, m.copied)
	require.False(t, m.copiedAll)
}

func TestCopyAll_JoinsLines(t *testing.T) {
	m, svc := newIBANTab(t)
	clip := svc.Clipboard.(*shared.MockClipboard)
	m, _ = generate(t, m)

	m, cmd := update(t, m, keyMsg("Y"))

	require.Equal(t, export.Text(m.Snapshot().Rows, true), clip.Last())
	require.True(t, m.copiedAll)
	require.Equal(t, "Copied 5 values", toastOf(t, cmd).Message)
	require.Contains(t, m.View(), "copied all")
}

func TestCopy_ClipboardErrorToasts(t *testing.T) {
	svc := mode.TestServices()
	svc.Clipboard = &shared.MockClipboard{Err: errors.New("no display")}
	m := New(svc, catalog.IBAN)
	m, _ = generate(t, m)

	m, cmd := update(t, m, keyMsg("y"))

	toast := toastOf(t, cmd)
	require.Equal(t, toaster.StyleError, toast.Style)
	require.Contains(t, toast.Message, "no display")
	require.Equal(t, -1, m.copied)
}

func TestCopy_NothingGenerated(t *testing.T) {
	m, svc := newIBANTab(t)

	_, cmd := update(t, m, keyMsg("y"))

	require.Equal(t, toaster.StyleInfo, toastOf(t, cmd).Style)
	require.Zero(t, svc.Clipboard.(*shared.MockClipboard).Count())
}

func TestExport_WritesArtifact(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := mode.TestServices()
	svc.Saver = export.NewSaver(fs, "/out", nil)
	m := New(svc, catalog.IBAN)
	m, _ = generate(t, m)

	tests := []struct {
		key  string
		file string
	}{
		{"C", "/out/ibans.csv"},
		{"J", "/out/ibans.json"},
		{"S", "/out/ibans.sql"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, cmd := update(t, m, keyMsg(tt.key))

			toast := toastOf(t, cmd)
			require.Equal(t, toaster.StyleSuccess, toast.Style)
			require.Contains(t, toast.Message, tt.file)

			data, err := afero.ReadFile(fs, tt.file)
			require.NoError(t, err)
			require.Contains(t, string(data), m.Snapshot().Rows[0].Raw)
		})
	}
}

func TestExport_NothingGenerated(t *testing.T) {
	m, _ := newIBANTab(t)

	_, cmd := update(t, m, keyMsg("C"))

	require.Equal(t, toaster.StyleInfo, toastOf(t, cmd).Style)
}

func TestSaveDefault_WritesConfig(t *testing.T) {
	svc := mode.TestServices()
	svc.ConfigPath = filepath.Join(t.TempDir(), "config.yaml")
	m := New(svc, catalog.IBAN)

	_, cmd := update(t, m, keyMsg("D"))

	require.Equal(t, toaster.StyleSuccess, toastOf(t, cmd).Style)
	data, err := os.ReadFile(svc.ConfigPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "iban: DE")
}

func TestSaveDefault_WithoutConfigPath(t *testing.T) {
	m, _ := newIBANTab(t)

	_, cmd := update(t, m, keyMsg("D"))

	require.Equal(t, toaster.StyleInfo, toastOf(t, cmd).Style)
}

func TestPersonalID_FieldsShapeRequest(t *testing.T) {
	m := New(mode.TestServices(), catalog.PersonalID)
	require.Equal(t, "EE", m.Selected().Code)
	require.Len(t, m.fields, 2)

	// results -> selector -> count -> gender
	m = press(t, m, "tab", "tab", "tab")
	require.False(t, m.Capturing())
	m = press(t, m, "l")
	require.Equal(t, personalid.Male, m.Request().Options.Gender)

	// -> birth year; letters are dropped
	m = press(t, m, "tab")
	require.True(t, m.Capturing())
	m = press(t, m, "1", "9", "x", "8", "5")
	require.Equal(t, 1985, m.Request().Options.Year)

	m = press(t, m, "esc")
	require.False(t, m.Capturing())
	require.Equal(t, focusResults, m.focus)
}

func TestPersonalID_GeneratesWithOptions(t *testing.T) {
	m := New(mode.TestServices(), catalog.PersonalID)
	m = press(t, m, "tab", "tab", "tab", "h", "tab", "1", "9", "8", "5", "esc")

	m, _ = generate(t, m)

	require.Equal(t, 5, m.Snapshot().Len())
	for _, row := range m.Snapshot().Rows {
		require.Equal(t, personalid.Female, row.Gender)
		require.Contains(t, row.DOB, "1985")
		require.True(t, row.Valid)
	}
}

func TestSelector_ChoiceRebuildsFields(t *testing.T) {
	m := New(mode.TestServices(), catalog.PersonalID)

	m = press(t, m, "tab")
	require.True(t, m.Capturing(), "open selector captures typing")
	m = press(t, m, "s", "p", "a", "i", "n")
	m, cmd := update(t, m, keyMsg("enter"))
	require.NotNil(t, cmd)
	require.False(t, m.Capturing())
	require.Equal(t, focusResults, m.focus)

	for _, msg := range messages(cmd) {
		m, _ = update(t, m, msg)
	}

	require.Equal(t, "ES", m.Selected().Code)
	require.Empty(t, m.fields, "DNI encodes neither gender nor birth date")
}

func TestView_ShowsResults(t *testing.T) {
	m, _ := newIBANTab(t)
	require.Contains(t, m.View(), "Press g to generate")

	m, _ = generate(t, m)
	view := m.View()

	require.Contains(t, view, "5 results")
	require.Contains(t, view, "Formatted")
	require.Contains(t, view, m.Snapshot().Rows[4].Raw)
	require.Contains(t, view, "copy with spaces")
}

func TestView_ScrollsWhenShort(t *testing.T) {
	m, _ := newIBANTab(t)
	m = m.SetSize(80, 8).(Model[catalog.IBANRow])
	m, _ = generate(t, m)

	require.Contains(t, m.View(), "more")

	for range 4 {
		m = press(t, m, "j")
	}
	require.Equal(t, 4, m.cursor)
	require.Contains(t, m.View(), m.Snapshot().Rows[4].Raw)
}

func rowZone(t *testing.T, m Model[catalog.IBANRow], i int) *zone.ZoneInfo {
	t.Helper()
	var z *zone.ZoneInfo
	for range 50 {
		_ = zone.Scan(m.View())
		z = zone.Get(m.rowZoneID(i))
		if z != nil && !z.IsZero() {
			return z
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("zone for row %d never registered", i)
	return nil
}

func TestMouse_ClickCopiesRow(t *testing.T) {
	m, svc := newIBANTab(t)
	m, _ = generate(t, m)
	z := rowZone(t, m, 2)

	m, cmd := update(t, m, tea.MouseMsg{
		X: z.StartX, Y: z.StartY,
		Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease,
	})

	require.Equal(t, 2, m.cursor)
	require.Equal(t, 2, m.copied)
	require.Equal(t, m.Snapshot().Rows[2].Formatted, svc.Clipboard.(*shared.MockClipboard).Last())
	require.Equal(t, toaster.StyleSuccess, toastOf(t, cmd).Style)
}

// harness hosts one tab the way the root model does.
type harness struct {
	tab mode.Controller
}

func (h harness) Init() tea.Cmd { return h.tab.Init() }

func (h harness) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyCtrlC {
		return h, tea.Quit
	}
	var cmd tea.Cmd
	h.tab, cmd = h.tab.Update(msg)
	return h, cmd
}

func (h harness) View() string { return zone.Scan(h.tab.View()) }

func TestTeatest_GenerateFlow(t *testing.T) {
	m, svc := newIBANTab(t)
	tm := teatest.NewTestModel(t, harness{tab: m.SetSize(100, 30)}, teatest.WithInitialTermSize(100, 30))

	tm.Type("g")
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("5 results"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	final := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(harness)
	tab := final.tab.(Model[catalog.IBANRow])
	require.Equal(t, StateReady, tab.State())
	require.Equal(t, 1, svc.History.Len())
}
