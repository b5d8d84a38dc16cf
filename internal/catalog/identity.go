package catalog

import (
	"math/rand/v2"
	"strconv"

	"github.com/mockbanker/mockbanker/internal/idgen/countries"
	"github.com/mockbanker/mockbanker/internal/idgen/driverlicense"
	"github.com/mockbanker/mockbanker/internal/idgen/passport"
	"github.com/mockbanker/mockbanker/internal/idgen/personalid"
)

// PersonalIDRegistry generates national personal identifiers.
type PersonalIDRegistry struct{ options []Option }

// PersonalID is the personal identifier domain.
var PersonalID = &PersonalIDRegistry{options: func() []Option {
	var opts []Option
	for _, c := range personalid.Countries() {
		opts = append(opts, Option{Code: c.Code, Label: c.Name, Description: c.Scheme})
	}
	return sortByLabel(opts)
}()}

func (*PersonalIDRegistry) Info() Info {
	return Info{
		Key: KeyPersonalID, Name: "Personal ID", Category: "Personal ID", FileStem: "personal_ids",
		SelectorLabel: "Country", DefaultSelector: "EE", CountryScoped: true,
		ValidMessage: "Valid ID", InvalidMessage: "Invalid ID for selected country",
	}
}

func (g *PersonalIDRegistry) Options() []Option { return g.options }

func (*PersonalIDRegistry) Validate(selector, value string) (bool, bool) {
	return personalid.Validate(selector, value)
}

func (*PersonalIDRegistry) Parse(selector, value string) (Parsed, bool) {
	p, ok := personalid.Parse(selector, value)
	return Parsed{Valid: p.Valid, Gender: p.Gender, DOB: p.DOB}, ok
}

// Fields offers gender and birth year for schemes that encode them.
func (*PersonalIDRegistry) Fields(selector string) []Field {
	for _, c := range personalid.Countries() {
		if c.Code != selector || !c.Encoded {
			continue
		}
		return []Field{
			{Key: FieldGender, Label: "Gender", Choices: []Option{
				{Code: "", Label: "Any"},
				{Code: personalid.Male, Label: "Male"},
				{Code: personalid.Female, Label: "Female"},
			}},
			{Key: FieldYear, Label: "Birth year (" + strconv.Itoa(c.MinYear) + "-" + strconv.Itoa(c.MaxYear) + ")"},
		}
	}
	return nil
}

func (*PersonalIDRegistry) Generate(selector string, opts GenOptions, r *rand.Rand) (PersonalIDRow, bool) {
	res, ok := personalid.Generate(selector, personalid.Options{Gender: opts.Gender, Year: opts.Year}, r)
	if !ok {
		return PersonalIDRow{}, false
	}
	valid, _ := personalid.Validate(selector, res.Code)
	return PersonalIDRow{Code: res.Code, Gender: res.Gender, DOB: res.DOB, Valid: valid}, true
}

func (*PersonalIDRegistry) Columns() []Column[PersonalIDRow] {
	return []Column[PersonalIDRow]{
		textColumn("code", "Code", func(r PersonalIDRow) string { return r.Code }),
		textColumn("gender", "Gender", func(r PersonalIDRow) string { return r.Gender }),
		textColumn("dob", "Date of Birth", func(r PersonalIDRow) string { return r.DOB }),
		validColumn[PersonalIDRow](),
	}
}

// DriverLicenseRegistry generates driving licence numbers.
type DriverLicenseRegistry struct{ options []Option }

// DriverLicense is the driving licence domain.
var DriverLicense = &DriverLicenseRegistry{options: func() []Option {
	var opts []Option
	for _, c := range driverlicense.Countries() {
		opts = append(opts, Option{Code: c.Code, Label: c.Name, Description: c.Format})
	}
	return sortByLabel(opts)
}()}

func (g *DriverLicenseRegistry) Info() Info {
	return Info{
		Key: KeyDriverLicense, Name: "Driver's License", Category: "Driver's License", FileStem: "driver_licenses",
		SelectorLabel: "Country", DefaultSelector: g.options[0].Code, CountryScoped: true,
		ValidMessage:   "Valid Driver's License for selected country",
		InvalidMessage: "Invalid Driver's License format",
	}
}

func (g *DriverLicenseRegistry) Options() []Option { return g.options }

func (*DriverLicenseRegistry) Validate(selector, value string) (bool, bool) {
	return driverlicense.Validate(selector, value)
}

// Fields offers a state choice for the United States.
func (*DriverLicenseRegistry) Fields(selector string) []Field {
	if selector != "US" {
		return nil
	}
	choices := []Option{{Code: "", Label: "Any"}}
	for _, s := range driverlicense.States() {
		choices = append(choices, Option{Code: s.Code, Label: s.Name})
	}
	return []Field{{Key: FieldState, Label: "State", Choices: choices}}
}

func (*DriverLicenseRegistry) Generate(selector string, opts GenOptions, r *rand.Rand) (DriverLicenseRow, bool) {
	res, ok := driverlicense.Generate(selector, opts.State, r)
	if !ok {
		return DriverLicenseRow{}, false
	}
	valid, _ := driverlicense.Validate(selector, res.Code)
	return DriverLicenseRow{
		Code: res.Code, Name: res.Name, Country: countryLabel(res.Country),
		State: optional(res.State), Valid: valid,
	}, true
}

func (*DriverLicenseRegistry) Columns() []Column[DriverLicenseRow] {
	return []Column[DriverLicenseRow]{
		textColumn("code", "Code", func(r DriverLicenseRow) string { return r.Code }),
		textColumn("name", "Name", func(r DriverLicenseRow) string { return r.Name }),
		textColumn("country", "Country", func(r DriverLicenseRow) string { return r.Country }),
		nullableColumn("state", "State", func(r DriverLicenseRow) *string { return r.State }),
		validColumn[DriverLicenseRow](),
	}
}

// PassportRegistry generates passport numbers.
type PassportRegistry struct{ options []Option }

// Passport is the passport domain.
var Passport = &PassportRegistry{options: func() []Option {
	var opts []Option
	for _, c := range passport.Countries() {
		opts = append(opts, Option{Code: c.Code, Label: c.Name, Description: c.Format})
	}
	return sortByLabel(opts)
}()}

func (g *PassportRegistry) Info() Info {
	return Info{
		Key: KeyPassport, Name: "Passport", Category: "Passport", FileStem: "passports",
		SelectorLabel: "Country", DefaultSelector: g.options[0].Code, CountryScoped: true,
		ValidMessage:   "Valid Passport for selected country",
		InvalidMessage: "Invalid Passport format",
	}
}

func (g *PassportRegistry) Options() []Option { return g.options }

func (*PassportRegistry) Validate(selector, value string) (bool, bool) {
	return passport.Validate(selector, value)
}

func (*PassportRegistry) Generate(selector string, _ GenOptions, r *rand.Rand) (PassportRow, bool) {
	code, ok := passport.Generate(selector, r)
	if !ok {
		return PassportRow{}, false
	}
	valid, _ := passport.Validate(selector, code)
	return PassportRow{
		Code: code, Name: countries.Name(selector) + " Passport", Country: countryLabel(selector), Valid: valid,
	}, true
}

func (*PassportRegistry) Columns() []Column[PassportRow] {
	return []Column[PassportRow]{
		textColumn("code", "Code", func(r PassportRow) string { return r.Code }),
		textColumn("name", "Name", func(r PassportRow) string { return r.Name }),
		textColumn("country", "Country", func(r PassportRow) string { return r.Country }),
		validColumn[PassportRow](),
	}
}

func countryLabel(code string) string {
	return code + " - " + countries.Name(code)
}
