// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// GlobalKeyMap holds bindings handled by the root model on every tab.
type GlobalKeyMap struct {
	NextTab     key.Binding
	PrevTab     key.Binding
	ToggleTheme key.Binding
	Help        key.Binding
	Logs        key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

// Global is the root keymap.
var Global = GlobalKeyMap{
	NextTab: key.NewBinding(
		key.WithKeys("ctrl+n", "ctrl+right"),
		key.WithHelp("ctrl+n", "next tab"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("ctrl+p", "ctrl+left"),
		key.WithHelp("ctrl+p", "previous tab"),
	),
	ToggleTheme: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "toggle theme"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Logs: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "debug log"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// GeneratorKeyMap holds the bindings of an identifier tab.
type GeneratorKeyMap struct {
	NextField   key.Binding
	PrevField   key.Binding
	Up          key.Binding
	Down        key.Binding
	OptionLeft  key.Binding
	OptionRight key.Binding
	Generate    key.Binding
	CountUp     key.Binding
	CountDown   key.Binding
	Copy        key.Binding
	CopyAll     key.Binding
	Spaces      key.Binding
	ExportCSV   key.Binding
	ExportJSON  key.Binding
	ExportSQL   key.Binding
	SaveDefault key.Binding
	Blur        key.Binding
}

// Generator is the identifier tab keymap.
var Generator = GeneratorKeyMap{
	NextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "previous result"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "next result"),
	),
	OptionLeft: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "previous choice"),
	),
	OptionRight: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next choice"),
	),
	Generate: key.NewBinding(
		key.WithKeys("g", "enter"),
		key.WithHelp("g/enter", "generate"),
	),
	CountUp: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "more results"),
	),
	CountDown: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "fewer results"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy result"),
	),
	CopyAll: key.NewBinding(
		key.WithKeys("Y"),
		key.WithHelp("Y", "copy all"),
	),
	Spaces: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "toggle spaces"),
	),
	ExportCSV: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "export CSV"),
	),
	ExportJSON: key.NewBinding(
		key.WithKeys("J"),
		key.WithHelp("J", "export JSON"),
	),
	ExportSQL: key.NewBinding(
		key.WithKeys("S"),
		key.WithHelp("S", "export SQL"),
	),
	SaveDefault: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "save as default"),
	),
	Blur: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "leave field"),
	),
}

// ValidatorKeyMap holds the bindings of the validator tab.
type ValidatorKeyMap struct {
	NextField key.Binding
	PrevField key.Binding
	Apply     key.Binding
	Clear     key.Binding
}

// Validator is the validator tab keymap.
var Validator = ValidatorKeyMap{
	NextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Apply: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "apply suggestion"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("ctrl+u", "clear value"),
	),
}

// HistoryKeyMap holds the bindings of the history tab.
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Expand key.Binding
	Copy   key.Binding
	Reload key.Binding
	Clear  key.Binding
}

// History is the history tab keymap.
var History = HistoryKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "previous entry"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "next entry"),
	),
	Expand: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "expand entry"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy results"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Clear: key.NewBinding(
		key.WithKeys("X"),
		key.WithHelp("X", "clear history"),
	),
}

// SelectorKeyMap holds the bindings of the searchable selector while its
// panel is open. Letters are reserved for the query.
type SelectorKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Close  key.Binding
	Reset  key.Binding
}

// Selector is the searchable selector keymap.
var Selector = SelectorKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+k"),
		key.WithHelp("↑", "previous option"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+j"),
		key.WithHelp("↓", "next option"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Reset: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("ctrl+u", "clear search"),
	),
}

// ConsentKeyMap holds the bindings of the install prompt.
type ConsentKeyMap struct {
	Accept  key.Binding
	Dismiss key.Binding
}

// Consent is the install prompt keymap.
var Consent = ConsentKeyMap{
	Accept: key.NewBinding(
		key.WithKeys("y", "enter"),
		key.WithHelp("y", "install"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n", "not now"),
	),
}

// ShortHelp returns keybindings for the short help view.
func (k GeneratorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Generate, k.NextField, k.Copy, k.CopyAll, Global.Help}
}

// FullHelp returns keybindings for the full help view.
func (k GeneratorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.Up, k.Down, k.OptionLeft, k.OptionRight}, // Navigation
		{k.Generate, k.CountUp, k.CountDown, k.Spaces, k.SaveDefault},          // Generation
		{k.Copy, k.CopyAll, k.ExportCSV, k.ExportJSON, k.ExportSQL},            // Output
		{Global.NextTab, Global.PrevTab, Global.ToggleTheme, Global.Help, Global.Quit},
	}
}

// ShortHelp returns keybindings for the short help view.
func (k ValidatorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Apply, k.Clear, Global.NextTab}
}

// FullHelp returns keybindings for the full help view.
func (k ValidatorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.Apply, k.Clear},
		{Global.NextTab, Global.PrevTab, Global.ToggleTheme, Global.ForceQuit},
	}
}

// ShortHelp returns keybindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Expand, k.Copy, k.Clear, Global.Help}
}

// FullHelp returns keybindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Expand},
		{k.Copy, k.Reload, k.Clear},
		{Global.NextTab, Global.PrevTab, Global.ToggleTheme, Global.Help, Global.Quit},
	}
}
