// Package catalog defines the contract every identifier domain satisfies and
// adapts the idgen collaborators to it. The rest of the application only ever
// talks to domains through the types in this package.
package catalog

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"strconv"
)

// Domain keys, as used on the command line, in config and by the validator.
const (
	KeyIBAN          = "iban"
	KeyPersonalID    = "id"
	KeyBankAccount   = "bank"
	KeyCreditCard    = "card"
	KeySWIFT         = "swift"
	KeyCompanyID     = "company"
	KeyDriverLicense = "driver_license"
	KeyPassport      = "passport"
	KeyTaxID         = "tax_id"
	KeyVAT           = "vat"
	KeyLEI           = "lei"
)

// RandomLabel is recorded in history when no selector was chosen.
const RandomLabel = "Random"

// Option is a selectable country or brand.
type Option struct {
	Code        string
	Label       string
	Description string
}

// GenOptions carries the domain-specific knobs of a generation request.
// Domains ignore the fields they do not use.
type GenOptions struct {
	Gender     string
	Year       int
	State      string
	HolderType string
}

// Info is the static description of a domain.
type Info struct {
	Key      string
	Name     string
	Category string
	// FileStem names export artifacts and the SQL table.
	FileStem        string
	SelectorLabel   string
	DefaultSelector string
	// AllowRandom means an empty selector is a valid request.
	AllowRandom bool
	// CountryScoped means validation depends on the selected country.
	CountryScoped  bool
	ValidMessage   string
	InvalidMessage string
}

// Row is one generated result.
type Row interface {
	PrimaryValue() string
	IsValid() bool
}

// Displayer is implemented by rows with a human-readable form that differs
// from the primary value.
type Displayer interface {
	DisplayValue() string
}

// Display returns the display form of row when spaced is set and the row
// has one, and the primary value otherwise.
func Display(row Row, spaced bool) string {
	if d, ok := row.(Displayer); ok && spaced {
		return d.DisplayValue()
	}
	return row.PrimaryValue()
}

// Descriptor is the type-independent half of a registry.
type Descriptor interface {
	Info() Info
	Options() []Option
	// Validate checks value. supported is false when validity depends on a
	// selector the domain does not know.
	Validate(selector, value string) (valid, supported bool)
}

// Registry is a domain able to produce rows of type R.
type Registry[R Row] interface {
	Descriptor
	// Generate draws one row. ok is false when the selector is unsupported
	// or the options cannot be satisfied together.
	Generate(selector string, opts GenOptions, r *rand.Rand) (R, bool)
	Columns() []Column[R]
}

// Parsed is the decoded content of an identifier.
type Parsed struct {
	Valid  bool
	Gender string
	DOB    string
}

// Parser is implemented by domains that can decode structural fields.
type Parser interface {
	Parse(selector, value string) (Parsed, bool)
}

// Repairer is implemented by domains whose check digits can be recomputed
// for a structurally correct value.
type Repairer interface {
	Repair(value string) (string, bool)
}

// Field is an extra generation input offered by some domains.
type Field struct {
	Key   string
	Label string
	// Choices is nil for free-form input. The first choice is the default.
	Choices []Option
}

// Field keys understood by ApplyField.
const (
	FieldGender     = "gender"
	FieldYear       = "year"
	FieldState      = "state"
	FieldHolderType = "holder_type"
)

// Configurable is implemented by domains with extra generation inputs. The
// set of fields may depend on the selector.
type Configurable interface {
	Fields(selector string) []Field
}

// ApplyField sets the option named by key from its textual value.
func ApplyField(opts GenOptions, key, value string) GenOptions {
	switch key {
	case FieldGender:
		opts.Gender = value
	case FieldYear:
		opts.Year, _ = strconv.Atoi(value)
	case FieldState:
		opts.State = value
	case FieldHolderType:
		opts.HolderType = value
	}
	return opts
}

// All returns every domain in display order.
func All() []Descriptor {
	return []Descriptor{
		IBAN, PersonalID, BankAccount, CreditCard, SWIFT, CompanyID,
		DriverLicense, Passport, TaxID, VAT, LEI,
	}
}

// Lookup finds a domain by key.
func Lookup(key string) (Descriptor, bool) {
	i := slices.IndexFunc(All(), func(d Descriptor) bool { return d.Info().Key == key })
	if i < 0 {
		return nil, false
	}
	return All()[i], true
}

// Keys returns every domain key in display order.
func Keys() []string {
	all := All()
	keys := make([]string, len(all))
	for i, d := range all {
		keys[i] = d.Info().Key
	}
	return keys
}

// HasOption reports whether code is one of d's options.
func HasOption(d Descriptor, code string) bool {
	return slices.ContainsFunc(d.Options(), func(o Option) bool { return o.Code == code })
}

func sortByLabel(opts []Option) []Option {
	slices.SortStableFunc(opts, func(a, b Option) int { return cmp.Compare(a.Label, b.Label) })
	return opts
}
