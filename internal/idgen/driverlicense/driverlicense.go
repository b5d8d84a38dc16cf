// Package driverlicense generates and validates driving licence numbers.
// The United States is modelled per state.
package driverlicense

import (
	"math/rand/v2"
	"regexp"
	"slices"
	"strings"

	"github.com/mockbanker/mockbanker/internal/idgen/countries"
	"github.com/mockbanker/mockbanker/internal/idgen/draw"
)

// Country describes a supported issuing country.
type Country struct {
	Code   string
	Name   string
	Format string
}

// Result is a generated licence number.
type Result struct {
	Code    string
	Name    string
	Country string
	State   string
}

type layout struct {
	pattern  *regexp.Regexp
	generate func(r *rand.Rand) string
}

type scheme struct {
	Country
	name    string
	layouts map[string]layout // keyed by state, "" for national layouts
}

// State is a US state with its own licence layout.
type State struct {
	Code string
	Name string
}

var usStates = []State{
	{"CA", "California"},
	{"FL", "Florida"},
	{"IL", "Illinois"},
	{"NY", "New York"},
	{"TX", "Texas"},
}

func letterDigits(letters, digits int) func(*rand.Rand) string {
	return func(r *rand.Rand) string { return draw.Letters(r, letters) + draw.Digits(r, digits) }
}

var schemes = []scheme{
	{
		Country: Country{Code: "DE", Format: "11 alphanumerics"},
		name:    "Führerscheinnummer",
		layouts: map[string]layout{"": {regexp.MustCompile(`^[A-Z0-9]{9}[0-9][A-Z0-9]$`), func(r *rand.Rand) string {
			return draw.Alnum(r, 9) + draw.Digits(r, 1) + draw.Alnum(r, 1)
		}}},
	},
	{
		Country: Country{Code: "EE", Format: "2 letters + 6 digits"},
		name:    "Juhiluba",
		layouts: map[string]layout{"": {regexp.MustCompile(`^[A-Z]{2}[0-9]{6}$`), letterDigits(2, 6)}},
	},
	{
		Country: Country{Code: "FR", Format: "12 digits"},
		name:    "Permis de conduire",
		layouts: map[string]layout{"": {regexp.MustCompile(`^[0-9]{12}$`), letterDigits(0, 12)}},
	},
	{
		Country: Country{Code: "GB", Format: "DVLA, 16 characters"},
		name:    "DVLA Driving Licence",
		layouts: map[string]layout{"": {regexp.MustCompile(`^[A-Z9]{5}[0-9]([05][1-9]|[16][0-2])(0[1-9]|[12][0-9]|3[01])[0-9][A-Z9]{2}[0-9][A-Z]{2}$`), genDVLA}},
	},
	{
		Country: Country{Code: "IN", Format: "SS RR YYYY NNNNNNN"},
		name:    "Driving Licence",
		layouts: map[string]layout{"": {regexp.MustCompile(`^[A-Z]{2}[0-9]{2}(19|20)[0-9]{2}[0-9]{7}$`), func(r *rand.Rand) string {
			return draw.Pick(r, []string{"MH", "DL", "KA", "TN", "KL"}) + draw.Digits(r, 2) +
				draw.Pick(r, []string{"19", "20"}) + draw.Digits(r, 2) + draw.Digits(r, 7)
		}}},
	},
	{
		Country: Country{Code: "US", Format: "Varies by state"},
		name:    "Driver License",
		layouts: map[string]layout{
			"CA": {regexp.MustCompile(`^[A-Z][0-9]{7}$`), letterDigits(1, 7)},
			"FL": {regexp.MustCompile(`^[A-Z][0-9]{12}$`), letterDigits(1, 12)},
			"IL": {regexp.MustCompile(`^[A-Z][0-9]{11}$`), letterDigits(1, 11)},
			"NY": {regexp.MustCompile(`^[0-9]{9}$`), letterDigits(0, 9)},
			"TX": {regexp.MustCompile(`^[0-9]{8}$`), letterDigits(0, 8)},
		},
	},
}

func genDVLA(r *rand.Rand) string {
	surname := draw.Letters(r, draw.Between(r, 2, 5))
	surname += strings.Repeat("9", 5-len(surname))
	month := draw.Between(r, 1, 12)
	if r.IntN(2) == 0 {
		month += 50
	}
	day := draw.Between(r, 1, 28)
	decade := draw.Digits(r, 1)
	year := draw.Digits(r, 1)
	return surname + decade + pad2(month) + pad2(day) + year + draw.Letters(r, 2) + "9" + draw.Letters(r, 2)
}

func pad2(n int) string {
	return string(rune('0'+n/10)) + string(rune('0'+n%10))
}

func lookup(code string) (scheme, bool) {
	code = strings.ToUpper(code)
	i := slices.IndexFunc(schemes, func(s scheme) bool { return s.Code == code })
	if i < 0 {
		return scheme{}, false
	}
	return schemes[i], true
}

// Countries lists the supported issuing countries.
func Countries() []Country {
	out := make([]Country, 0, len(schemes))
	for _, s := range schemes {
		c := s.Country
		c.Name = countries.Name(c.Code)
		out = append(out, c)
	}
	return out
}

// States lists the US states with a modelled layout.
func States() []State {
	return slices.Clone(usStates)
}

// Generate draws a licence number. state applies to the United States only;
// an empty state picks one at random and an unknown one fails.
func Generate(country, state string, r *rand.Rand) (Result, bool) {
	s, ok := lookup(country)
	if !ok {
		return Result{}, false
	}
	state = strings.ToUpper(strings.TrimSpace(state))
	if _, national := s.layouts[""]; national {
		if state != "" {
			return Result{}, false
		}
		return Result{Code: s.layouts[""].generate(r), Name: s.name, Country: s.Code}, true
	}
	if state == "" {
		state = draw.Pick(r, usStates).Code
	}
	l, ok := s.layouts[state]
	if !ok {
		return Result{}, false
	}
	return Result{Code: l.generate(r), Name: s.name, Country: s.Code, State: state}, true
}

// Validate reports whether code matches any layout of country.
func Validate(country, code string) (valid, supported bool) {
	s, ok := lookup(country)
	if !ok {
		return false, false
	}
	code = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(code), " ", ""))
	for _, l := range s.layouts {
		if l.pattern.MatchString(code) {
			return true, true
		}
	}
	return false, true
}
