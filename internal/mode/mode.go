// Package mode defines the tab controller interface and the services
// injected into every tab.
package mode

import (
	"math/rand/v2"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/trace"

	"github.com/mockbanker/mockbanker/internal/config"
	"github.com/mockbanker/mockbanker/internal/export"
	"github.com/mockbanker/mockbanker/internal/flags"
	"github.com/mockbanker/mockbanker/internal/history"
	"github.com/mockbanker/mockbanker/internal/kvstore"
	"github.com/mockbanker/mockbanker/internal/mode/shared"
	"github.com/mockbanker/mockbanker/internal/pipeline"
	"github.com/mockbanker/mockbanker/internal/ui/help"
	"github.com/mockbanker/mockbanker/internal/ui/toaster"
	"github.com/mockbanker/mockbanker/internal/validation"
)

// Controller is implemented by every tab.
type Controller interface {
	// Init returns initial commands for the tab.
	Init() tea.Cmd

	// Update handles messages and returns the updated tab and commands.
	Update(msg tea.Msg) (Controller, tea.Cmd)

	// View renders the tab body.
	View() string

	// SetSize handles terminal resize events.
	SetSize(width, height int) Controller

	// Title is the tab label.
	Title() string

	// Capturing reports whether keystrokes currently go to a text field, in
	// which case the root model must not treat letters as shortcuts.
	Capturing() bool

	// Help describes the tab's bindings.
	Help() help.Section
}

// Services contains shared dependencies injected into tab controllers.
type Services struct {
	Config     config.Config
	ConfigPath string
	Flags      *flags.Registry
	Runner     *pipeline.Runner
	History    *history.Log
	Saver      *export.Saver
	Validator  *validation.Dispatcher
	Clipboard  shared.Clipboard
	Clock      shared.Clock
	Tracer     trace.Tracer
	// Seed fixes the random sequence; 0 seeds from the clock.
	Seed uint64
}

// NewRand returns a generator seeded from Seed.
func (s Services) NewRand() *rand.Rand {
	return pipeline.NewRand(s.Seed)
}

// TestServices returns services over an in-memory store, an in-memory
// filesystem and a recording clipboard.
func TestServices() Services {
	log := history.New(kvstore.NewMemory())
	return Services{
		Config:    config.Defaults(),
		Flags:     flags.New(nil),
		Runner:    pipeline.NewRunner(log, nil, true),
		History:   log,
		Saver:     export.NewSaver(afero.NewMemMapFs(), "/exports", nil),
		Validator: validation.New(),
		Clipboard: &shared.MockClipboard{},
		Clock:     shared.RealClock{},
		Seed:      1,
	}
}

// ShowToastMsg asks the root model to show a toast.
type ShowToastMsg struct {
	Message string
	Style   toaster.Style
}

// ToastCmd returns a command producing ShowToastMsg.
func ToastCmd(message string, style toaster.Style) tea.Cmd {
	return func() tea.Msg { return ShowToastMsg{Message: message, Style: style} }
}

// HistoryChangedMsg is sent after a batch was recorded or the log was
// reloaded, so the history tab can refresh its view.
type HistoryChangedMsg struct{}

// StoreChangedMsg reports that another process wrote the store file.
type StoreChangedMsg struct{ Path string }

// ConfigCreatedMsg reports that a config file now exists at Path, so tabs
// can persist defaults to it.
type ConfigCreatedMsg struct{ Path string }
