package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mockbanker/mockbanker/internal/app"
	"github.com/mockbanker/mockbanker/internal/config"
	"github.com/mockbanker/mockbanker/internal/consent"
	"github.com/mockbanker/mockbanker/internal/flags"
	"github.com/mockbanker/mockbanker/internal/log"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var version = "dev"

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	cfgFile string
	debug   bool
}

// debugEnabled reports whether the debug log is on, via flag or
// MOCKBANKER_DEBUG.
func (g *globalOptions) debugEnabled() bool {
	return g.debug || os.Getenv("MOCKBANKER_DEBUG") != ""
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "mockbanker",
		Short: "Generate and validate synthetic banking identifiers",
		Long: `MockBanker generates checksum-correct test identifiers (IBANs, national IDs,
bank accounts, cards, SWIFT/BIC, company and tax IDs, VAT numbers, LEIs,
driver's licenses and passports) and validates existing ones.

Run without arguments for the terminal UI. Everything stays on this machine.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runApp(cmd, g)
		},
	}

	rootCmd.PersistentFlags().StringVar(&g.cfgFile, "config", "",
		"config file (default: ./.mockbanker/config.yaml, then ~/.config/mockbanker/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&g.debug, "debug", "d", false,
		"write a debug log and enable the log overlay (ctrl+x)")

	rootCmd.AddCommand(
		newGenerateCmd(g),
		newValidateCmd(g),
		newHistoryCmd(g),
		newOptionsCmd(g),
	)
	return rootCmd
}

func runApp(cmd *cobra.Command, g *globalOptions) error {
	env, err := setup(cmd.Context(), g)
	if err != nil {
		return err
	}
	defer env.Close()

	// Offer to create a config file when none was found.
	prompt := &consent.Prompt{}
	consentPath := ""
	if env.configPath == "" && g.cfgFile == "" {
		prompt.MarkAvailable()
		consentPath = config.DefaultConfigPath()
	}

	model := app.New(app.Options{
		Services:    env.services,
		Theme:       env.theme,
		Consent:     prompt,
		ConsentPath: consentPath,
		StorePath:   env.storePath,
		Debug:       g.debugEnabled(),
	})

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if env.services.Flags.Enabled(flags.FlagMouse) {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, opts...)

	_, err = p.Run()

	// Clean up watcher resources
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		log.ErrorErr(log.CatUI, "program exited with error", err)
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	if err != nil && err != errInvalid {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
}
