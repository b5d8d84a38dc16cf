// Package generator implements the identifier tabs: one controller per
// domain that collects options, generates a batch and offers copy and export
// actions on the result.
package generator

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/mockbanker/mockbanker/internal/catalog"
	"github.com/mockbanker/mockbanker/internal/config"
	"github.com/mockbanker/mockbanker/internal/export"
	"github.com/mockbanker/mockbanker/internal/keys"
	"github.com/mockbanker/mockbanker/internal/log"
	"github.com/mockbanker/mockbanker/internal/mode"
	"github.com/mockbanker/mockbanker/internal/pipeline"
	"github.com/mockbanker/mockbanker/internal/ui/help"
	"github.com/mockbanker/mockbanker/internal/ui/selector"
	"github.com/mockbanker/mockbanker/internal/ui/toaster"
)

// State is the generation lifecycle of a tab.
type State int

const (
	StateIdle       State = iota // nothing generated yet
	StateGenerating              // batch requested, result pending
	StateReady                   // a batch is on screen
)

func (s State) String() string {
	switch s {
	case StateGenerating:
		return "generating"
	case StateReady:
		return "ready"
	default:
		return "idle"
	}
}

// Focus targets inside a tab. Fields follow focusCount in order.
const (
	focusResults = iota
	focusSelector
	focusCount
	focusFirstField
)

// generateMsg carries a pending request back into Update. Every tab sees it;
// only the one whose key matches runs it.
type generateMsg struct {
	key string
	req pipeline.Request
}

// field is one extra option input: a cycled choice or a free-form value.
type field struct {
	def    catalog.Field
	choice int
	input  textinput.Model
}

func (f field) freeForm() bool { return f.def.Choices == nil }

func (f field) value() string {
	if f.freeForm() {
		return strings.TrimSpace(f.input.Value())
	}
	return f.def.Choices[f.choice].Code
}

// Model is the tab for domain R.
type Model[R catalog.Row] struct {
	services mode.Services
	reg      catalog.Registry[R]
	info     catalog.Info
	rand     *rand.Rand

	selector selector.Model
	fields   []field
	focus    int
	count    int
	spaced   bool

	state     State
	snapshot  pipeline.Snapshot[R]
	cursor    int
	offset    int
	copied    int
	copiedAll bool

	width  int
	height int
}

// New creates the tab for reg, preselecting the configured default.
func New[R catalog.Row](services mode.Services, reg catalog.Registry[R]) Model[R] {
	info := reg.Info()
	options := reg.Options()
	if info.AllowRandom {
		options = append([]catalog.Option{{Label: catalog.RandomLabel}}, options...)
	}

	sel := selector.New(info.Key+":selector", info.SelectorLabel, options)
	if def := services.Config.DefaultSelector(info.Key); def != "" {
		if s, ok := sel.SetSelected(def); ok {
			sel = s
		} else {
			log.Warn(log.CatConfig, "configured default not offered", "domain", info.Key, "selector", def)
		}
	}

	m := Model[R]{
		services: services,
		reg:      reg,
		info:     info,
		rand:     services.NewRand(),
		selector: sel,
		count:    services.Config.DefaultCount(),
		spaced:   true,
		copied:   -1,
	}
	m.fields = m.buildFields()
	return m
}

func (m Model[R]) buildFields() []field {
	c, ok := m.reg.(catalog.Configurable)
	if !ok {
		return nil
	}
	defs := c.Fields(m.selector.Selected().Code)
	out := make([]field, len(defs))
	for i, d := range defs {
		f := field{def: d}
		if f.freeForm() {
			ti := textinput.New()
			ti.Prompt = ""
			ti.Placeholder = "any"
			ti.CharLimit = 4
			ti.Width = 6
			f.input = ti
		}
		out[i] = f
	}
	return out
}

// Init returns initial commands for the tab.
func (m Model[R]) Init() tea.Cmd { return nil }

// Title is the domain name.
func (m Model[R]) Title() string { return m.info.Name }

// Key is the domain key.
func (m Model[R]) Key() string { return m.info.Key }

// State returns the generation state.
func (m Model[R]) State() State { return m.state }

// Snapshot returns the batch on screen.
func (m Model[R]) Snapshot() pipeline.Snapshot[R] { return m.snapshot }

// Count returns the requested batch size.
func (m Model[R]) Count() int { return m.count }

// Selected returns the current selector choice.
func (m Model[R]) Selected() catalog.Option { return m.selector.Selected() }

// Request builds the generation request from the current inputs.
func (m Model[R]) Request() pipeline.Request {
	var opts catalog.GenOptions
	for _, f := range m.fields {
		opts = catalog.ApplyField(opts, f.def.Key, f.value())
	}
	return pipeline.Request{Selector: m.selector.Selected().Code, Count: m.count, Options: opts}
}

// Capturing is true while typing into the selector query or a free-form
// field.
func (m Model[R]) Capturing() bool {
	if m.focus == focusSelector {
		return m.selector.IsOpen()
	}
	if f, ok := m.focusedField(); ok {
		return f.freeForm()
	}
	return false
}

// Help describes the tab's bindings.
func (m Model[R]) Help() help.Section {
	return help.Section{Title: m.info.Name, Keys: keys.Generator}
}

// SetSize handles terminal resize events.
func (m Model[R]) SetSize(width, height int) mode.Controller {
	m.width = width
	m.height = height
	m.selector = m.selector.SetWidth(min(max(width-4, 20), 60))
	m.offset = m.clampOffset(m.offset)
	return m
}

// Update handles messages.
func (m Model[R]) Update(msg tea.Msg) (mode.Controller, tea.Cmd) {
	switch msg := msg.(type) {
	case generateMsg:
		if msg.key != m.info.Key {
			return m, nil
		}
		return m.runBatch(msg.req)

	case mode.ConfigCreatedMsg:
		m.services.ConfigPath = msg.Path
		return m, nil

	case selector.SelectedMsg:
		if msg.ID != m.selector.ID() {
			return m, nil
		}
		m.fields = m.buildFields()
		log.Debug(log.CatUI, "selector changed", "domain", m.info.Key, "selector", msg.Option.Code)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	// Deferred selector close and cursor blink.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.selector, cmd = m.selector.Update(msg)
	cmds = append(cmds, cmd)
	if i, ok := m.focusedFieldIndex(); ok && m.fields[i].freeForm() {
		m.fields[i].input, cmd = m.fields[i].input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model[R]) handleKey(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	if m.focus == focusSelector && m.selector.IsOpen() {
		if key.Matches(msg, keys.Generator.NextField, keys.Generator.PrevField) {
			return m.moveFocus(key.Matches(msg, keys.Generator.NextField))
		}
		var cmd tea.Cmd
		m.selector, cmd = m.selector.Update(msg)
		if !m.selector.IsOpen() {
			// Chosen or dismissed: a closed panel gives focus back.
			m, _ = m.blurCurrent()
			m.focus = focusResults
		}
		return m, cmd
	}

	if i, ok := m.focusedFieldIndex(); ok && m.fields[i].freeForm() {
		switch {
		case key.Matches(msg, keys.Generator.NextField, keys.Generator.PrevField):
			return m.moveFocus(key.Matches(msg, keys.Generator.NextField))
		case key.Matches(msg, keys.Generator.Blur):
			return m.setFocus(focusResults)
		case msg.Type == tea.KeyEnter:
			return m.startGenerate()
		case msg.Type == tea.KeyRunes && !digitsOnly(msg.Runes):
			return m, nil
		}
		var cmd tea.Cmd
		m.fields[i].input, cmd = m.fields[i].input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.Generator.NextField):
		return m.moveFocus(true)
	case key.Matches(msg, keys.Generator.PrevField):
		return m.moveFocus(false)
	case key.Matches(msg, keys.Generator.Blur):
		return m.setFocus(focusResults)
	case key.Matches(msg, keys.Generator.Generate):
		return m.startGenerate()
	case key.Matches(msg, keys.Generator.CountUp):
		m.count = pipeline.ClampCount(m.count + 1)
	case key.Matches(msg, keys.Generator.CountDown):
		m.count = pipeline.ClampCount(m.count - 1)
	case key.Matches(msg, keys.Generator.OptionLeft):
		m = m.stepOption(-1)
	case key.Matches(msg, keys.Generator.OptionRight):
		m = m.stepOption(1)
	case key.Matches(msg, keys.Generator.Up):
		m = m.moveCursor(-1)
	case key.Matches(msg, keys.Generator.Down):
		m = m.moveCursor(1)
	case key.Matches(msg, keys.Generator.Copy):
		return m.copyRow(m.cursor)
	case key.Matches(msg, keys.Generator.CopyAll):
		return m.copyAll()
	case key.Matches(msg, keys.Generator.Spaces):
		m.spaced = !m.spaced
	case key.Matches(msg, keys.Generator.ExportCSV):
		return m.export(export.FormatCSV)
	case key.Matches(msg, keys.Generator.ExportJSON):
		return m.export(export.FormatJSON)
	case key.Matches(msg, keys.Generator.ExportSQL):
		return m.export(export.FormatSQL)
	case key.Matches(msg, keys.Generator.SaveDefault):
		return m.saveDefault()
	}
	return m, nil
}

func digitsOnly(rs []rune) bool {
	for _, r := range rs {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func (m Model[R]) handleMouse(msg tea.MouseMsg) (mode.Controller, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return m.moveCursor(-1), nil
	case tea.MouseButtonWheelDown:
		return m.moveCursor(1), nil
	}
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return m, nil
	}

	var cmds []tea.Cmd

	// A click on an open panel row lands before the deferred close.
	var cmd tea.Cmd
	m.selector, cmd = m.selector.Update(msg)
	if cmd != nil {
		if m.focus == focusSelector {
			m, _ = m.blurCurrent()
			m.focus = focusResults
		}
		return m, cmd
	}

	if z := zone.Get(m.selector.FieldZoneID()); z != nil && z.InBounds(msg) {
		return m.setFocus(focusSelector)
	}
	if z := zone.Get(m.countZoneID()); z != nil && z.InBounds(msg) {
		return m.setFocus(focusCount)
	}
	for i := range m.fields {
		if z := zone.Get(m.fieldZoneID(i)); z != nil && z.InBounds(msg) {
			return m.setFocus(focusFirstField + i)
		}
	}

	if m.focus != focusResults {
		var blur tea.Cmd
		m, blur = m.blurCurrent()
		m.focus = focusResults
		cmds = append(cmds, blur)
	}

	end := min(m.offset+m.visibleRows(), m.snapshot.Len())
	for i := m.offset; i < end; i++ {
		if z := zone.Get(m.rowZoneID(i)); z != nil && z.InBounds(msg) {
			m.cursor = i
			next, copyCmd := m.copyRow(i)
			return next, tea.Batch(append(cmds, copyCmd)...)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model[R]) focusTargets() int { return focusFirstField + len(m.fields) }

func (m Model[R]) focusedFieldIndex() (int, bool) {
	i := m.focus - focusFirstField
	if i < 0 || i >= len(m.fields) {
		return 0, false
	}
	return i, true
}

func (m Model[R]) focusedField() (field, bool) {
	i, ok := m.focusedFieldIndex()
	if !ok {
		return field{}, false
	}
	return m.fields[i], true
}

func (m Model[R]) moveFocus(forward bool) (mode.Controller, tea.Cmd) {
	n := m.focusTargets()
	next := (m.focus + 1) % n
	if !forward {
		next = (m.focus - 1 + n) % n
	}
	return m.setFocus(next)
}

// blurCurrent releases whatever holds focus. The selector closes after
// selector.CloseDelay.
func (m Model[R]) blurCurrent() (Model[R], tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == focusSelector {
		m.selector, cmd = m.selector.Blur()
	}
	if i, ok := m.focusedFieldIndex(); ok && m.fields[i].freeForm() {
		m.fields[i].input.Blur()
	}
	return m, cmd
}

func (m Model[R]) setFocus(target int) (mode.Controller, tea.Cmd) {
	var cmds []tea.Cmd
	if target != m.focus {
		var cmd tea.Cmd
		m, cmd = m.blurCurrent()
		cmds = append(cmds, cmd)
	}
	m.focus = target

	switch {
	case target == focusSelector:
		var cmd tea.Cmd
		m.selector, cmd = m.selector.Focus()
		cmds = append(cmds, cmd)
	default:
		if i, ok := m.focusedFieldIndex(); ok && m.fields[i].freeForm() {
			cmd := m.fields[i].input.Focus()
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

// stepOption cycles the focused choice field, or the count when the count
// is focused.
func (m Model[R]) stepOption(delta int) Model[R] {
	if m.focus == focusCount {
		m.count = pipeline.ClampCount(m.count + delta)
		return m
	}
	i, ok := m.focusedFieldIndex()
	if !ok || m.fields[i].freeForm() {
		return m
	}
	n := len(m.fields[i].def.Choices)
	m.fields[i].choice = (m.fields[i].choice + delta + n) % n
	return m
}

func (m Model[R]) moveCursor(delta int) Model[R] {
	n := m.snapshot.Len()
	if n == 0 {
		return m
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
	m.offset = m.clampOffset(m.offset)
	return m
}

func (m Model[R]) clampOffset(offset int) int {
	visible := m.visibleRows()
	if m.cursor >= offset+visible {
		offset = m.cursor - visible + 1
	}
	if m.cursor < offset {
		offset = m.cursor
	}
	return max(offset, 0)
}

// startGenerate moves to StateGenerating and schedules the batch. Requests
// made while a batch is pending are dropped.
func (m Model[R]) startGenerate() (mode.Controller, tea.Cmd) {
	if m.state == StateGenerating {
		return m, nil
	}
	m, blur := m.blurCurrent()
	m.focus = focusResults
	m.state = StateGenerating
	msg := generateMsg{key: m.info.Key, req: m.Request()}
	return m, tea.Batch(blur, func() tea.Msg { return msg })
}

func (m Model[R]) runBatch(req pipeline.Request) (mode.Controller, tea.Cmd) {
	m.snapshot = pipeline.Run(context.Background(), m.services.Runner, m.reg, req, m.rand)
	m.state = StateReady
	m.cursor = 0
	m.offset = 0
	m.copied = -1
	m.copiedAll = false

	cmds := []tea.Cmd{func() tea.Msg { return mode.HistoryChangedMsg{} }}
	if m.snapshot.Len() == 0 {
		cmds = append(cmds, mode.ToastCmd("No results for these options", toaster.StyleInfo))
	}
	return m, tea.Batch(cmds...)
}

func (m Model[R]) copyRow(i int) (mode.Controller, tea.Cmd) {
	if i < 0 || i >= m.snapshot.Len() {
		return m, mode.ToastCmd("Nothing to copy", toaster.StyleInfo)
	}
	text := catalog.Display(m.snapshot.Rows[i], m.spaced)
	if err := m.services.Clipboard.Copy(text); err != nil {
		log.ErrorErr(log.CatUI, "copy failed", err, "domain", m.info.Key)
		return m, mode.ToastCmd("Clipboard error: "+err.Error(), toaster.StyleError)
	}
	m.copied = i
	m.copiedAll = false
	return m, mode.ToastCmd("Copied!", toaster.StyleSuccess)
}

func (m Model[R]) copyAll() (mode.Controller, tea.Cmd) {
	if m.snapshot.Len() == 0 {
		return m, mode.ToastCmd("Nothing to copy", toaster.StyleInfo)
	}
	if err := m.services.Clipboard.Copy(export.Text(m.snapshot.Rows, m.spaced)); err != nil {
		log.ErrorErr(log.CatUI, "copy all failed", err, "domain", m.info.Key)
		return m, mode.ToastCmd("Clipboard error: "+err.Error(), toaster.StyleError)
	}
	m.copied = -1
	m.copiedAll = true
	return m, mode.ToastCmd(fmt.Sprintf("Copied %d values", m.snapshot.Len()), toaster.StyleSuccess)
}

func (m Model[R]) export(f export.Format) (mode.Controller, tea.Cmd) {
	if m.snapshot.Len() == 0 {
		return m, mode.ToastCmd("Generate something first", toaster.StyleInfo)
	}
	artifact, err := export.Render(m.info, m.reg.Columns(), m.snapshot.Rows, f)
	if err != nil {
		log.ErrorErr(log.CatExport, "render failed", err, "domain", m.info.Key, "format", string(f))
		return m, mode.ToastCmd("Export failed: "+err.Error(), toaster.StyleError)
	}
	path, err := m.services.Saver.Save(context.Background(), artifact)
	if err != nil {
		log.ErrorErr(log.CatExport, "save failed", err, "file", artifact.Filename)
		return m, mode.ToastCmd("Export failed: "+err.Error(), toaster.StyleError)
	}
	return m, mode.ToastCmd("Saved "+path, toaster.StyleSuccess)
}

func (m Model[R]) saveDefault() (mode.Controller, tea.Cmd) {
	if m.services.ConfigPath == "" {
		return m, mode.ToastCmd("No config file; run with --config or install one", toaster.StyleInfo)
	}
	code := m.selector.Selected().Code
	if err := config.SaveDomainDefault(m.services.ConfigPath, m.info.Key, code); err != nil {
		log.ErrorErr(log.CatConfig, "save default failed", err, "domain", m.info.Key)
		return m, mode.ToastCmd("Could not save default: "+err.Error(), toaster.StyleError)
	}
	label := code
	if label == "" {
		label = catalog.RandomLabel
	}
	return m, mode.ToastCmd("Default "+m.info.SelectorLabel+" set to "+label, toaster.StyleSuccess)
}

func (m Model[R]) rowZoneID(i int) string {
	return fmt.Sprintf("gen:%s:row:%d", m.info.Key, i)
}
