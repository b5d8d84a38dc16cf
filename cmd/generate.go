package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mockbanker/mockbanker/internal/catalog"
	"github.com/mockbanker/mockbanker/internal/export"
	"github.com/mockbanker/mockbanker/internal/flags"
	"github.com/mockbanker/mockbanker/internal/pipeline"
)

// formatText prints one value per line instead of rendering an export.
const formatText = "text"

type generateOptions struct {
	country    string
	count      int
	format     string
	out        string
	gender     string
	year       int
	state      string
	holderType string
	seed       uint64
	noSpaces   bool
	noHistory  bool
}

func newGenerateCmd(g *globalOptions) *cobra.Command {
	o := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate <domain>",
		Short: "Generate a batch of identifiers",
		Long: `Generate a batch of synthetic identifiers and print them, or render them as
CSV, JSON or SQL.

Domains: ` + strings.Join(catalog.Keys(), ", ") + `

Examples:
  # Five German IBANs, one per line
  mockbanker generate iban -c DE

  # Twenty Estonian personal IDs for women born in 1985, as CSV
  mockbanker generate id -c EE -n 20 --gender female --year 1985 --format csv

  # A SQL fixture file for Visa cards, written to ./fixtures/credit_cards.sql
  mockbanker generate card -c visa --format sql --out ./fixtures

  # Reproducible output
  mockbanker generate lei --seed 42`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDomain,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer env.Close()
			if !cmd.Flags().Changed("count") {
				o.count = env.cfg.DefaultCount()
			}
			return runGenerate(cmd, env, args[0], *o)
		},
	}

	cmd.Flags().StringVarP(&o.country, "country", "c", "", "country or brand code (see `mockbanker options <domain>`)")
	cmd.Flags().IntVarP(&o.count, "count", "n", pipeline.DefaultCount, fmt.Sprintf("number of values (%d-%d)", pipeline.MinCount, pipeline.MaxCount))
	cmd.Flags().StringVarP(&o.format, "format", "f", formatText, "output format: text, csv, json or sql")
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "write the export into this directory instead of stdout")
	cmd.Flags().StringVar(&o.gender, "gender", "", "gender for personal IDs (male or female)")
	cmd.Flags().IntVar(&o.year, "year", 0, "birth year for personal IDs")
	cmd.Flags().StringVar(&o.state, "state", "", "issuing state for driver's licenses")
	cmd.Flags().StringVar(&o.holderType, "holder-type", "", "holder type for tax IDs (individual or business)")
	cmd.Flags().Uint64Var(&o.seed, "seed", 0, "seed for reproducible output (0 picks one)")
	cmd.Flags().BoolVar(&o.noSpaces, "no-spaces", false, "print IBANs without grouping spaces")
	cmd.Flags().BoolVar(&o.noHistory, "no-history", false, "do not record this batch in the history")
	return cmd
}

func completeDomain(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return catalog.Keys(), cobra.ShellCompDirectiveNoFileComp
}

// lookupDomain accepts a domain key in any case.
func lookupDomain(key string) (catalog.Descriptor, error) {
	if d, ok := catalog.Lookup(strings.ToLower(strings.TrimSpace(key))); ok {
		return d, nil
	}
	return nil, fmt.Errorf("unknown domain %q (want one of %s)", key, strings.Join(catalog.Keys(), ", "))
}

// resolveSelector matches code against d's options ignoring case and
// returns the canonical code.
func resolveSelector(d catalog.Descriptor, code string) (string, error) {
	for _, o := range d.Options() {
		if strings.EqualFold(o.Code, code) {
			return o.Code, nil
		}
	}
	info := d.Info()
	return "", fmt.Errorf("%q is not a supported %s for %s (see `mockbanker options %s`)",
		code, strings.ToLower(info.SelectorLabel), info.Name, info.Key)
}

func runGenerate(cmd *cobra.Command, env *environment, key string, o generateOptions) error {
	d, err := lookupDomain(key)
	if err != nil {
		return err
	}
	switch d.Info().Key {
	case catalog.KeyIBAN:
		return generate(cmd, env, catalog.IBAN, o)
	case catalog.KeyPersonalID:
		return generate(cmd, env, catalog.PersonalID, o)
	case catalog.KeyBankAccount:
		return generate(cmd, env, catalog.BankAccount, o)
	case catalog.KeyCreditCard:
		return generate(cmd, env, catalog.CreditCard, o)
	case catalog.KeySWIFT:
		return generate(cmd, env, catalog.SWIFT, o)
	case catalog.KeyCompanyID:
		return generate(cmd, env, catalog.CompanyID, o)
	case catalog.KeyDriverLicense:
		return generate(cmd, env, catalog.DriverLicense, o)
	case catalog.KeyPassport:
		return generate(cmd, env, catalog.Passport, o)
	case catalog.KeyTaxID:
		return generate(cmd, env, catalog.TaxID, o)
	case catalog.KeyVAT:
		return generate(cmd, env, catalog.VAT, o)
	case catalog.KeyLEI:
		return generate(cmd, env, catalog.LEI, o)
	}
	return fmt.Errorf("domain %q cannot generate", key)
}

func generate[R catalog.Row](cmd *cobra.Command, env *environment, reg catalog.Registry[R], o generateOptions) error {
	info := reg.Info()

	var format export.Format
	if o.format != formatText {
		f, err := export.ParseFormat(o.format)
		if err != nil {
			return err
		}
		format = f
	}

	selector := env.cfg.DefaultSelector(info.Key)
	if o.country != "" {
		code, err := resolveSelector(reg, o.country)
		if err != nil {
			return err
		}
		selector = code
	}

	req := pipeline.Request{
		Selector: selector,
		Count:    o.count,
		Options: catalog.GenOptions{
			Gender:     o.gender,
			Year:       o.year,
			State:      o.state,
			HolderType: o.holderType,
		},
	}
	record := !o.noHistory && env.services.Flags.Enabled(flags.FlagHistory)
	runner := env.services.Runner.WithHistory(record)

	snap := pipeline.Run(cmd.Context(), runner, reg, req, pipeline.NewRand(o.seed))
	if snap.Len() == 0 {
		return fmt.Errorf("no %s could be generated for %s with these options", info.Name, snap.Label())
	}

	out := cmd.OutOrStdout()
	if format == "" {
		_, err := fmt.Fprintln(out, export.Text(snap.Rows, !o.noSpaces))
		return err
	}

	artifact, err := export.Render(info, reg.Columns(), snap.Rows, format)
	if err != nil {
		return err
	}
	if o.out == "" {
		content := artifact.Content
		if !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		_, err := io.WriteString(out, content)
		return err
	}

	saver := export.NewSaver(afero.NewOsFs(), o.out, env.services.Tracer)
	path, err := saver.Save(cmd.Context(), artifact)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Saved %s (%d rows)\n", path, snap.Len())
	return nil
}
