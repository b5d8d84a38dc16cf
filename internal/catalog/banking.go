package catalog

import (
	"math/rand/v2"

	"github.com/mockbanker/mockbanker/internal/idgen/bankaccount"
	"github.com/mockbanker/mockbanker/internal/idgen/countries"
	"github.com/mockbanker/mockbanker/internal/idgen/creditcard"
	"github.com/mockbanker/mockbanker/internal/idgen/iban"
	"github.com/mockbanker/mockbanker/internal/idgen/lei"
	"github.com/mockbanker/mockbanker/internal/idgen/swift"
)

// IBANRegistry generates IBANs by country.
type IBANRegistry struct{ options []Option }

// IBAN is the IBAN domain.
var IBAN = &IBANRegistry{options: func() []Option {
	var opts []Option
	for _, s := range iban.Countries() {
		opts = append(opts, Option{Code: s.Country, Label: countries.Name(s.Country), Description: s.Describe()})
	}
	return sortByLabel(opts)
}()}

func (*IBANRegistry) Info() Info {
	return Info{
		Key: KeyIBAN, Name: "IBAN", Category: "IBAN", FileStem: "ibans",
		SelectorLabel: "Country", DefaultSelector: "DE",
		ValidMessage: "Valid IBAN", InvalidMessage: "Invalid IBAN checksum or format",
	}
}

func (g *IBANRegistry) Options() []Option { return g.options }

func (*IBANRegistry) Validate(_, value string) (bool, bool) { return iban.Validate(value), true }

func (*IBANRegistry) Repair(value string) (string, bool) { return iban.Repair(value) }

func (*IBANRegistry) Generate(selector string, _ GenOptions, r *rand.Rand) (IBANRow, bool) {
	raw, ok := iban.Generate(selector, r)
	if !ok {
		return IBANRow{}, false
	}
	return IBANRow{Raw: raw, Formatted: iban.Format(raw), Valid: iban.Validate(raw)}, true
}

func (*IBANRegistry) Columns() []Column[IBANRow] {
	return []Column[IBANRow]{
		textColumn("raw", "IBAN", func(r IBANRow) string { return r.Raw }),
		textColumn("formatted", "Formatted", func(r IBANRow) string { return r.Formatted }),
		validColumn[IBANRow](),
	}
}

// BankAccountRegistry generates domestic accounts by country.
type BankAccountRegistry struct{ options []Option }

// BankAccount is the bank account domain.
var BankAccount = &BankAccountRegistry{options: func() []Option {
	var opts []Option
	for _, c := range bankaccount.Countries() {
		opts = append(opts, Option{Code: c.Code, Label: c.Name, Description: c.Format + ", " + c.Routing})
	}
	return sortByLabel(opts)
}()}

func (*BankAccountRegistry) Info() Info {
	return Info{
		Key: KeyBankAccount, Name: "Bank Account", Category: "Bank Account", FileStem: "bank_accounts",
		SelectorLabel: "Country", DefaultSelector: "US", CountryScoped: true,
		ValidMessage:   "Valid Bank Account for selected country",
		InvalidMessage: "Invalid Bank Account checksum or format",
	}
}

func (g *BankAccountRegistry) Options() []Option { return g.options }

func (*BankAccountRegistry) Validate(selector, value string) (bool, bool) {
	return bankaccount.Validate(selector, value)
}

func (*BankAccountRegistry) Generate(selector string, _ GenOptions, r *rand.Rand) (BankAccountRow, bool) {
	res, ok := bankaccount.Generate(selector, r)
	if !ok {
		return BankAccountRow{}, false
	}
	valid, _ := bankaccount.Validate(selector, res.Account)
	return BankAccountRow{Account: res.Account, Routing: res.Routing, Valid: valid}, true
}

func (*BankAccountRegistry) Columns() []Column[BankAccountRow] {
	return []Column[BankAccountRow]{
		textColumn("account", "Account", func(r BankAccountRow) string { return r.Account }),
		textColumn("routing", "Routing", func(r BankAccountRow) string { return r.Routing }),
		validColumn[BankAccountRow](),
	}
}

// CreditCardRegistry generates card numbers by brand.
type CreditCardRegistry struct{ options []Option }

// CreditCard is the payment card domain.
var CreditCard = &CreditCardRegistry{options: func() []Option {
	var opts []Option
	for _, b := range creditcard.Brands() {
		opts = append(opts, Option{Code: b.Code, Label: b.Name})
	}
	return opts
}()}

func (*CreditCardRegistry) Info() Info {
	return Info{
		Key: KeyCreditCard, Name: "Credit Card", Category: "Credit Card", FileStem: "credit_cards",
		SelectorLabel: "Brand", DefaultSelector: "visa",
		ValidMessage:   "Valid Credit Card (Luhn check passed)",
		InvalidMessage: "Invalid Credit Card (Luhn check failed)",
	}
}

func (g *CreditCardRegistry) Options() []Option { return g.options }

func (*CreditCardRegistry) Validate(_, value string) (bool, bool) { return creditcard.Validate(value), true }

func (*CreditCardRegistry) Repair(value string) (string, bool) { return creditcard.Repair(value) }

func (*CreditCardRegistry) Generate(selector string, _ GenOptions, r *rand.Rand) (CreditCardRow, bool) {
	number, brand, ok := creditcard.Generate(selector, r)
	if !ok {
		return CreditCardRow{}, false
	}
	return CreditCardRow{Number: number, Brand: brand, Valid: creditcard.Validate(number)}, true
}

func (*CreditCardRegistry) Columns() []Column[CreditCardRow] {
	return []Column[CreditCardRow]{
		textColumn("number", "Number", func(r CreditCardRow) string { return r.Number }),
		textColumn("brand", "Brand", func(r CreditCardRow) string { return r.Brand }),
		validColumn[CreditCardRow](),
	}
}

// SWIFTRegistry generates BICs by country.
type SWIFTRegistry struct{ options []Option }

// SWIFT is the SWIFT/BIC domain. It offers the IBAN countries.
var SWIFT = &SWIFTRegistry{options: func() []Option {
	var opts []Option
	for _, s := range iban.Countries() {
		opts = append(opts, Option{Code: s.Country, Label: countries.Name(s.Country)})
	}
	return sortByLabel(opts)
}()}

func (*SWIFTRegistry) Info() Info {
	return Info{
		Key: KeySWIFT, Name: "SWIFT/BIC", Category: "SWIFT/BIC", FileStem: "swift_codes",
		SelectorLabel: "Country", DefaultSelector: "DE",
		ValidMessage: "Valid SWIFT/BIC format", InvalidMessage: "Invalid SWIFT/BIC format",
	}
}

func (g *SWIFTRegistry) Options() []Option { return g.options }

func (*SWIFTRegistry) Validate(_, value string) (bool, bool) { return swift.Validate(value), true }

func (*SWIFTRegistry) Generate(selector string, _ GenOptions, r *rand.Rand) (SWIFTRow, bool) {
	res, ok := swift.Generate(selector, r)
	if !ok {
		return SWIFTRow{}, false
	}
	return SWIFTRow{
		Code: res.Code, Bank: res.Bank, Country: res.Country, Location: res.Location,
		Valid: swift.Validate(res.Code),
	}, true
}

func (*SWIFTRegistry) Columns() []Column[SWIFTRow] {
	return []Column[SWIFTRow]{
		textColumn("code", "Code", func(r SWIFTRow) string { return r.Code }),
		textColumn("bank", "Bank", func(r SWIFTRow) string { return r.Bank }),
		textColumn("country", "Country", func(r SWIFTRow) string { return r.Country }),
		textColumn("location", "Location", func(r SWIFTRow) string { return r.Location }),
		validColumn[SWIFTRow](),
	}
}

// LEIRegistry generates Legal Entity Identifiers, optionally by country.
type LEIRegistry struct{ options []Option }

// LEI is the Legal Entity Identifier domain.
var LEI = &LEIRegistry{options: func() []Option {
	var opts []Option
	for _, is := range lei.Issuers() {
		opts = append(opts, Option{Code: is.Country, Label: is.CountryName(), Description: is.Prefix + " " + is.Name})
	}
	return sortByLabel(opts)
}()}

func (*LEIRegistry) Info() Info {
	return Info{
		Key: KeyLEI, Name: "LEI", Category: "LEI", FileStem: "lei_codes",
		SelectorLabel: "Country", AllowRandom: true,
		ValidMessage: "Valid LEI code", InvalidMessage: "Invalid LEI code format",
	}
}

func (g *LEIRegistry) Options() []Option { return g.options }

func (*LEIRegistry) Validate(_, value string) (bool, bool) { return lei.Validate(value), true }

func (*LEIRegistry) Repair(value string) (string, bool) { return lei.Repair(value) }

func (*LEIRegistry) Generate(selector string, _ GenOptions, r *rand.Rand) (LEIRow, bool) {
	res, ok := lei.Generate(selector, r)
	if !ok {
		return LEIRow{}, false
	}
	return LEIRow{Code: res.Code, LOU: res.LOU, CountryCode: res.Country, Valid: lei.Validate(res.Code)}, true
}

func (*LEIRegistry) Columns() []Column[LEIRow] {
	return []Column[LEIRow]{
		textColumn("code", "Code", func(r LEIRow) string { return r.Code }),
		textColumn("lou", "LOU", func(r LEIRow) string { return r.LOU }),
		textColumn("country_code", "Country", func(r LEIRow) string { return r.CountryCode }),
		validColumn[LEIRow](),
	}
}
