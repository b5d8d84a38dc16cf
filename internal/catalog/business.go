package catalog

import (
	"math/rand/v2"
	"strings"

	"github.com/mockbanker/mockbanker/internal/idgen/companyid"
	"github.com/mockbanker/mockbanker/internal/idgen/taxid"
	"github.com/mockbanker/mockbanker/internal/idgen/vat"
)

// CompanyIDRegistry generates company registration numbers.
type CompanyIDRegistry struct{ options []Option }

// CompanyID is the company registration domain.
var CompanyID = &CompanyIDRegistry{options: func() []Option {
	var opts []Option
	for _, c := range companyid.Countries() {
		opts = append(opts, Option{Code: c.Code, Label: c.Name, Description: c.Scheme})
	}
	return sortByLabel(opts)
}()}

func (*CompanyIDRegistry) Info() Info {
	return Info{
		Key: KeyCompanyID, Name: "Company ID", Category: "Company ID", FileStem: "company_ids",
		SelectorLabel: "Country", DefaultSelector: "EE", CountryScoped: true,
		ValidMessage:   "Valid Company ID for selected country",
		InvalidMessage: "Invalid Company ID checksum or format",
	}
}

func (g *CompanyIDRegistry) Options() []Option { return g.options }

func (*CompanyIDRegistry) Validate(selector, value string) (bool, bool) {
	return companyid.Validate(selector, value)
}

func (*CompanyIDRegistry) Generate(selector string, _ GenOptions, r *rand.Rand) (CompanyIDRow, bool) {
	code, name, ok := companyid.Generate(selector, r)
	if !ok {
		return CompanyIDRow{}, false
	}
	valid, _ := companyid.Validate(selector, code)
	return CompanyIDRow{Code: code, Name: name, Valid: valid}, true
}

func (*CompanyIDRegistry) Columns() []Column[CompanyIDRow] {
	return []Column[CompanyIDRow]{
		textColumn("code", "Code", func(r CompanyIDRow) string { return r.Code }),
		textColumn("name", "Name", func(r CompanyIDRow) string { return r.Name }),
		validColumn[CompanyIDRow](),
	}
}

// TaxIDRegistry generates taxpayer identification numbers.
type TaxIDRegistry struct{ options []Option }

// TaxID is the tax identifier domain.
var TaxID = &TaxIDRegistry{options: func() []Option {
	var opts []Option
	for _, c := range taxid.Countries() {
		desc := "single identifier"
		if len(c.HolderTypes) > 0 {
			desc = strings.Join(c.HolderTypes, ", ")
		}
		opts = append(opts, Option{Code: c.Code, Label: c.Name, Description: desc})
	}
	return sortByLabel(opts)
}()}

func (g *TaxIDRegistry) Info() Info {
	return Info{
		Key: KeyTaxID, Name: "Tax ID", Category: "Tax ID", FileStem: "tax_ids",
		SelectorLabel: "Country", DefaultSelector: g.options[0].Code, CountryScoped: true,
		ValidMessage: "Valid Tax ID for selected country", InvalidMessage: "Invalid Tax ID format",
	}
}

func (g *TaxIDRegistry) Options() []Option { return g.options }

func (*TaxIDRegistry) Validate(selector, value string) (bool, bool) {
	return taxid.Validate(selector, value)
}

// Fields offers a holder type where the country issues more than one kind
// of number.
func (*TaxIDRegistry) Fields(selector string) []Field {
	for _, c := range taxid.Countries() {
		if c.Code != selector || len(c.HolderTypes) == 0 {
			continue
		}
		choices := []Option{{Code: "", Label: "Any"}}
		for _, h := range c.HolderTypes {
			choices = append(choices, Option{Code: h, Label: strings.ToUpper(h[:1]) + h[1:]})
		}
		return []Field{{Key: FieldHolderType, Label: "Holder type", Choices: choices}}
	}
	return nil
}

func (*TaxIDRegistry) Generate(selector string, opts GenOptions, r *rand.Rand) (TaxIDRow, bool) {
	res, ok := taxid.Generate(selector, opts.HolderType, r)
	if !ok {
		return TaxIDRow{}, false
	}
	valid, _ := taxid.Validate(selector, res.Code)
	return TaxIDRow{
		Code: res.Code, Name: res.Name, Country: countryLabel(res.Country),
		HolderType: optional(res.HolderType), Valid: valid,
	}, true
}

func (*TaxIDRegistry) Columns() []Column[TaxIDRow] {
	return []Column[TaxIDRow]{
		textColumn("code", "Code", func(r TaxIDRow) string { return r.Code }),
		textColumn("name", "Name", func(r TaxIDRow) string { return r.Name }),
		textColumn("country", "Country", func(r TaxIDRow) string { return r.Country }),
		nullableColumn("holder_type", "Holder Type", func(r TaxIDRow) *string { return r.HolderType }),
		validColumn[TaxIDRow](),
	}
}

// VATRegistry generates VAT numbers.
type VATRegistry struct{ options []Option }

// VAT is the VAT number domain.
var VAT = &VATRegistry{options: func() []Option {
	var opts []Option
	for _, c := range vat.Countries() {
		opts = append(opts, Option{Code: c.Code, Label: c.Name})
	}
	return sortByLabel(opts)
}()}

func (g *VATRegistry) Info() Info {
	return Info{
		Key: KeyVAT, Name: "VAT", Category: "VAT", FileStem: "vat_numbers",
		SelectorLabel: "Country", DefaultSelector: g.options[0].Code,
		ValidMessage: "Valid VAT number", InvalidMessage: "Invalid VAT number format",
	}
}

func (g *VATRegistry) Options() []Option { return g.options }

func (*VATRegistry) Validate(_, value string) (bool, bool) { return vat.Validate(value), true }

func (*VATRegistry) Generate(selector string, _ GenOptions, r *rand.Rand) (VATRow, bool) {
	res, ok := vat.Generate(selector, r)
	if !ok {
		return VATRow{}, false
	}
	return VATRow{
		Code: res.Code, CountryCode: res.CountryCode, CountryName: res.CountryName,
		Valid: vat.Validate(res.Code),
	}, true
}

func (*VATRegistry) Columns() []Column[VATRow] {
	return []Column[VATRow]{
		textColumn("code", "Code", func(r VATRow) string { return r.Code }),
		textColumn("country_code", "Country Code", func(r VATRow) string { return r.CountryCode }),
		textColumn("country_name", "Country Name", func(r VATRow) string { return r.CountryName }),
		validColumn[VATRow](),
	}
}
