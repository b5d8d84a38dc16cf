// Package app contains the root application model.
package app

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/mockbanker/mockbanker/internal/catalog"
	"github.com/mockbanker/mockbanker/internal/config"
	"github.com/mockbanker/mockbanker/internal/consent"
	"github.com/mockbanker/mockbanker/internal/keys"
	"github.com/mockbanker/mockbanker/internal/log"
	"github.com/mockbanker/mockbanker/internal/mode"
	"github.com/mockbanker/mockbanker/internal/mode/generator"
	historytab "github.com/mockbanker/mockbanker/internal/mode/history"
	"github.com/mockbanker/mockbanker/internal/mode/validator"
	"github.com/mockbanker/mockbanker/internal/pubsub"
	"github.com/mockbanker/mockbanker/internal/theme"
	"github.com/mockbanker/mockbanker/internal/ui/help"
	"github.com/mockbanker/mockbanker/internal/ui/logoverlay"
	"github.com/mockbanker/mockbanker/internal/ui/overlay"
	"github.com/mockbanker/mockbanker/internal/ui/styles"
	"github.com/mockbanker/mockbanker/internal/ui/toaster"
	"github.com/mockbanker/mockbanker/internal/watcher"
)

// Options configures the root model.
type Options struct {
	Services mode.Services

	// Theme persists ctrl+t. Nil toggles without saving.
	Theme *theme.Preference

	// Consent offers to write the default config to ConsentPath. It is only
	// shown when the prompt is Available.
	Consent     *consent.Prompt
	ConsentPath string

	// StorePath is watched for writes by other processes. Empty disables
	// the watcher.
	StorePath string

	// Debug enables the log overlay (ctrl+x).
	Debug bool
}

// consentResolvedMsg carries the answer to the config prompt.
type consentResolvedMsg struct {
	outcome consent.Outcome
	err     error
}

// Model is the root application state.
type Model struct {
	services mode.Services
	theme    *theme.Preference

	tabs   []mode.Controller
	active int

	width  int
	height int

	toaster  toaster.Model
	help     help.Model
	showHelp bool

	consent     *consent.Handle
	consentPath string
	consentOpen bool

	debugMode   bool
	logOverlay  logoverlay.Model
	logListener *log.LogListener

	ctx    context.Context
	cancel context.CancelFunc

	// Store watcher for history written by other processes
	watcherHandle *watcher.Watcher
	storeListener *pubsub.ContinuousListener[string]
}

// New creates the root model with one tab per identifier domain followed by
// the validator and history tabs.
func New(opts Options) Model {
	ctx, cancel := context.WithCancel(context.Background())
	svc := opts.Services

	if opts.Theme != nil {
		styles.Apply(opts.Theme.Load(ctx))
	}

	m := Model{
		services: svc,
		theme:    opts.Theme,
		tabs: []mode.Controller{
			generator.New(svc, catalog.IBAN),
			generator.New(svc, catalog.PersonalID),
			generator.New(svc, catalog.BankAccount),
			generator.New(svc, catalog.CreditCard),
			generator.New(svc, catalog.SWIFT),
			generator.New(svc, catalog.CompanyID),
			generator.New(svc, catalog.DriverLicense),
			generator.New(svc, catalog.Passport),
			generator.New(svc, catalog.TaxID),
			generator.New(svc, catalog.VAT),
			generator.New(svc, catalog.LEI),
			validator.New(svc),
			historytab.New(svc),
		},
		toaster:     toaster.New(),
		help:        help.New(),
		consentPath: opts.ConsentPath,
		debugMode:   opts.Debug,
		logOverlay:  logoverlay.New(),
		ctx:         ctx,
		cancel:      cancel,
	}

	if opts.Consent != nil && opts.ConsentPath != "" {
		if h, ok := opts.Consent.Begin(); ok {
			m.consent = h
			m.consentOpen = true
		}
	}

	if opts.Debug {
		m.logListener = log.NewListener(ctx)
	}

	if opts.StorePath != "" {
		w, err := watcher.New(watcher.DefaultConfig(opts.StorePath))
		if err == nil {
			if err := w.Start(); err == nil {
				m.watcherHandle = w
				m.storeListener = pubsub.NewContinuousListener(ctx, w.Broker())
			} else {
				_ = w.Stop()
			}
		}
		if m.watcherHandle == nil {
			// The app works without live reload; r on the history tab still reloads.
			log.Warn(log.CatWatcher, "store watcher unavailable", "path", opts.StorePath, "error", err)
		}
	}

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.tabs)+3)
	for _, t := range m.tabs {
		cmds = append(cmds, t.Init())
	}
	if m.consent != nil {
		cmds = append(cmds, waitConsent(m.ctx, m.consent))
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	cmds = append(cmds, m.listenStore())
	return tea.Batch(cmds...)
}

func waitConsent(ctx context.Context, h *consent.Handle) tea.Cmd {
	return func() tea.Msg {
		outcome, err := h.Wait(ctx)
		return consentResolvedMsg{outcome: outcome, err: err}
	}
}

// listenStore waits for the next watcher event and reports it as
// mode.StoreChangedMsg. Log entries travel as the same event type, so the
// watcher's events are translated before they reach Update.
func (m Model) listenStore() tea.Cmd {
	if m.storeListener == nil {
		return nil
	}
	listen := m.storeListener.Listen()
	return func() tea.Msg {
		ev, ok := listen().(pubsub.Event[string])
		if !ok {
			return nil
		}
		return mode.StoreChangedMsg{Path: ev.Payload}
	}
}

// Active returns the focused tab.
func (m Model) Active() mode.Controller { return m.tabs[m.active] }

// ActiveIndex returns the position of the focused tab.
func (m Model) ActiveIndex() int { return m.active }

// Tabs returns every tab in display order.
func (m Model) Tabs() []mode.Controller { return m.tabs }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help = m.help.SetSize(msg.Width, msg.Height)
		m.logOverlay.SetSize(msg.Width, msg.Height)
		m.tabs = slices.Clone(m.tabs)
		for i, t := range m.tabs {
			m.tabs[i] = t.SetSize(m.bodySize())
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case log.LogEvent:
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		if m.logListener != nil {
			cmd = tea.Batch(cmd, m.logListener.Listen())
		}
		return m, cmd

	case logoverlay.CloseMsg:
		m.logOverlay.Hide()
		return m, nil

	case mode.ShowToastMsg:
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show(msg.Message, msg.Style)
		return m, cmd

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case consentResolvedMsg:
		return m.finishConsent(msg)

	case mode.StoreChangedMsg:
		var cmd tea.Cmd
		m, cmd = m.broadcast(msg)
		return m, tea.Batch(cmd, m.listenStore())
	}

	// Results, selector ticks and cursor blinks carry their own target, so
	// every tab sees them and ignores what is not its own.
	return m.broadcast(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Global.ForceQuit) {
		return m, tea.Quit
	}

	if m.consentOpen {
		return m.answerConsent(msg)
	}

	if m.debugMode && key.Matches(msg, keys.Global.Logs) {
		m.logOverlay.Toggle()
		return m, nil
	}
	if m.logOverlay.Visible() {
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd
	}

	if m.showHelp {
		if key.Matches(msg, keys.Global.Help) || msg.Type == tea.KeyEsc {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Global.NextTab):
		return m.switchTab((m.active + 1) % len(m.tabs)), nil
	case key.Matches(msg, keys.Global.PrevTab):
		return m.switchTab((m.active - 1 + len(m.tabs)) % len(m.tabs)), nil
	case key.Matches(msg, keys.Global.ToggleTheme):
		return m.toggleTheme()
	}

	if !m.Active().Capturing() {
		switch {
		case key.Matches(msg, keys.Global.Help):
			m.help = m.help.SetSection(m.Active().Help())
			m.showHelp = true
			return m, nil
		case key.Matches(msg, keys.Global.Quit):
			return m, tea.Quit
		}
	}

	return m.updateActive(msg)
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.logOverlay.Visible() {
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd
	}
	if m.showHelp || m.consentOpen {
		return m, nil
	}
	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
		for i := range m.tabs {
			if z := zone.Get(tabZoneID(i)); z != nil && z.InBounds(msg) {
				return m.switchTab(i), nil
			}
		}
	}
	return m.updateActive(msg)
}

func (m Model) switchTab(i int) Model {
	if i == m.active {
		return m
	}
	log.Debug(log.CatUI, "switching tab", "from", m.Active().Title(), "to", m.tabs[i].Title())
	m.active = i
	return m
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.tabs = slices.Clone(m.tabs)
	var cmd tea.Cmd
	m.tabs[m.active], cmd = m.tabs[m.active].Update(msg)
	return m, cmd
}

func (m Model) broadcast(msg tea.Msg) (Model, tea.Cmd) {
	m.tabs = slices.Clone(m.tabs)
	cmds := make([]tea.Cmd, 0, len(m.tabs))
	for i, t := range m.tabs {
		var cmd tea.Cmd
		m.tabs[i], cmd = t.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	current := styles.Mode()
	if m.theme == nil {
		styles.Apply(current.Toggled())
		return m, nil
	}
	next, err := m.theme.Toggle(m.ctx, current)
	styles.Apply(next)
	if err != nil {
		log.ErrorErr(log.CatConfig, "save theme failed", err, "mode", next)
		return m, mode.ToastCmd("Theme not saved: "+err.Error(), toaster.StyleError)
	}
	log.Debug(log.CatConfig, "theme toggled", "mode", next)
	return m, nil
}

func (m Model) answerConsent(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var outcome consent.Outcome
	switch msg.String() {
	case "y", "enter":
		outcome = consent.Accepted
	case "n", "esc":
		outcome = consent.Dismissed
	default:
		return m, nil
	}
	m.consent.Resolve(outcome)
	m.consentOpen = false
	return m, nil
}

func (m Model) finishConsent(msg consentResolvedMsg) (tea.Model, tea.Cmd) {
	m.consentOpen = false
	if msg.err != nil {
		return m, nil
	}
	if msg.outcome != consent.Accepted {
		log.Info(log.CatConfig, "config file declined")
		return m, nil
	}
	if err := config.WriteDefaultConfig(m.consentPath); err != nil {
		return m, mode.ToastCmd("Could not write config: "+err.Error(), toaster.StyleError)
	}
	m.services.ConfigPath = m.consentPath
	var cmd tea.Cmd
	m, cmd = m.broadcast(mode.ConfigCreatedMsg{Path: m.consentPath})
	return m, tea.Batch(cmd, mode.ToastCmd("Config written to "+m.consentPath, toaster.StyleSuccess))
}

// bodySize is the space inside the bordered tab body.
func (m Model) bodySize() (int, int) {
	// tab bar and status line, plus the border
	return max(m.width-2, 0), max(m.height-4, 0)
}

func tabZoneID(i int) string {
	return "tab:" + strconv.Itoa(i)
}

// renderTabs draws the tab bar, scrolled so the active tab is visible.
func (m Model) renderTabs() string {
	labels := make([]string, len(m.tabs))
	widths := make([]int, len(m.tabs))
	for i, t := range m.tabs {
		style := styles.TabStyle
		if i == m.active {
			style = styles.ActiveTabStyle
		}
		labels[i] = style.Render(t.Title())
		widths[i] = lipgloss.Width(labels[i])
	}

	// room for the scroll markers
	avail := m.width - 4
	start := 0
	for start < m.active && sum(widths[start:m.active+1]) > avail {
		start++
	}
	end, used := start, 0
	for end < len(labels) && used+widths[end] <= avail {
		used += widths[end]
		end++
	}
	end = max(end, m.active+1)

	var b strings.Builder
	if start > 0 {
		b.WriteString(styles.MutedStyle.Render("‹ "))
	}
	for i := start; i < end; i++ {
		b.WriteString(zone.Mark(tabZoneID(i), labels[i]))
	}
	if end < len(labels) {
		b.WriteString(styles.MutedStyle.Render(" ›"))
	}
	return b.String()
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func (m Model) renderStatus() string {
	hints := "? help · ctrl+n/ctrl+p switch tab · ctrl+t theme · q quit"
	if m.Active().Capturing() {
		hints = "esc leave field · ctrl+n/ctrl+p switch tab · ctrl+c quit"
	}
	if m.debugMode {
		hints += " · ctrl+x logs"
	}
	return styles.StatusBarStyle.Render(styles.Truncate(hints, max(m.width-2, 10)))
}

func (m Model) renderConsent() string {
	body := styles.TitleStyle.Render("Create a config file?") + "\n\n" +
		styles.ValueStyle.Render("No config file was found. MockBanker can write a commented one to") + "\n" +
		styles.LabelStyle.Render(m.consentPath) + "\n" +
		styles.ValueStyle.Render("so you can pin per-tab defaults (D) and feature flags.") + "\n\n" +
		styles.FocusedLabelStyle.Render("[y] Create") + "   " + styles.MutedStyle.Render("[n] Not now")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Current.OverlayBorder).
		Padding(0, 1).
		Render(body)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	active := m.Active()
	hint := strconv.Itoa(m.active+1) + "/" + strconv.Itoa(len(m.tabs))
	body := styles.RenderWithTitleBorder(active.View(), active.Title(), hint, m.width, m.height-2, true)
	view := m.renderTabs() + "\n" + body + "\n" + m.renderStatus()

	if m.showHelp {
		view = m.help.Overlay(view)
	}
	if m.consentOpen {
		view = overlay.Place(overlay.Config{Width: m.width, Height: m.height, Position: overlay.Center}, m.renderConsent(), view)
	}
	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}
	if m.debugMode && m.logOverlay.Visible() {
		view = m.logOverlay.Overlay(view)
	}

	return zone.Scan(view)
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	if m.cancel != nil {
		m.cancel()
	}
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return err
		}
	}
	return nil
}
