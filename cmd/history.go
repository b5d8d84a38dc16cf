package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mockbanker/mockbanker/internal/presentation"
)

type historyOptions struct {
	clear bool
	json  bool
}

func newHistoryCmd(g *globalOptions) *cobra.Command {
	o := &historyOptions{}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear the generation history",
		Long: `Show the most recent generated batches, newest first, as kept in the
store shared with the terminal UI.

Examples:
  mockbanker history
  mockbanker history --json | jq '.[0].results'
  mockbanker history --clear`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := setup(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer env.Close()

			if o.clear {
				if err := env.services.History.Clear(cmd.Context()); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
				return err
			}

			dtos := presentation.FromHistoryEntries(env.services.History.Entries())
			formatter := presentation.NewFormatter(cmd.OutOrStdout())
			if o.json {
				return formatter.JSON(dtos)
			}
			return formatter.FormatHistory(dtos)
		},
	}

	cmd.Flags().BoolVar(&o.clear, "clear", false, "delete all history")
	cmd.Flags().BoolVar(&o.json, "json", false, "print entries as JSON")
	return cmd
}
