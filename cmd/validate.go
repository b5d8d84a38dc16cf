package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mockbanker/mockbanker/internal/presentation"
	"github.com/mockbanker/mockbanker/internal/validation"
)

// errInvalid makes the process exit 1 after the verdict was printed.
var errInvalid = errors.New("value is not valid")

type validateOptions struct {
	country string
	json    bool
}

func newValidateCmd(g *globalOptions) *cobra.Command {
	o := &validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate <domain> <value>",
		Short: "Check an identifier",
		Long: `Check whether a value is a well-formed identifier of the given domain.

The exit status is 0 for a valid value and 1 otherwise. When only the check
digits are wrong, the corrected value is suggested.

Examples:
  mockbanker validate iban "DE89 3704 0044 0532 0130 00"
  mockbanker validate id 37605030299 --country EE
  mockbanker validate vat FR40303265045 --json | jq .valid`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeDomain,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer env.Close()

			d, err := lookupDomain(args[0])
			if err != nil {
				return err
			}
			info := d.Info()

			req := validation.Request{Domain: info.Key, Value: args[1]}
			if info.CountryScoped {
				req.Country = env.cfg.DefaultSelector(info.Key)
				if o.country != "" {
					if req.Country, err = resolveSelector(d, o.country); err != nil {
						return err
					}
				}
			}

			v, ok := env.services.Validator.Validate(cmd.Context(), req)
			if !ok {
				return fmt.Errorf("nothing to validate")
			}

			dto := presentation.FromVerdict(req, v)
			formatter := presentation.NewFormatter(cmd.OutOrStdout())
			if o.json {
				err = formatter.JSON(dto)
			} else {
				err = formatter.FormatVerdict(dto)
			}
			if err != nil {
				return err
			}
			if !v.Valid {
				return errInvalid
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&o.country, "country", "c", "", "country the value belongs to, for country-scoped domains")
	cmd.Flags().BoolVar(&o.json, "json", false, "print the verdict as JSON")
	return cmd
}
