package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mockbanker/mockbanker/internal/config"
	"github.com/mockbanker/mockbanker/internal/presentation"
)

func newOptionsCmd(g *globalOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "options <domain>",
		Short: "List the countries or brands a domain supports",
		Long: `List the selector codes accepted by --country for a domain, along with any
extra inputs (gender, year, state, holder type) each one takes.

Examples:
  mockbanker options iban
  mockbanker options id --json | jq '.options[] | select(.fields) | .code'`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDomain,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := lookupDomain(args[0])
			if err != nil {
				return err
			}

			// Only config is needed here; the store is never opened.
			cfg, _, err := config.Load(viper.New(), g.cfgFile)
			if err != nil {
				return err
			}

			dto := presentation.FromDescriptor(d, cfg.DefaultSelector(d.Info().Key))
			formatter := presentation.NewFormatter(cmd.OutOrStdout())
			if asJSON {
				return formatter.JSON(dto)
			}
			return formatter.FormatDomain(dto)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
