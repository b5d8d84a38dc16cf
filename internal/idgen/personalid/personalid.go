// Package personalid generates, validates and decodes national personal
// identification numbers.
package personalid

import (
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/mockbanker/mockbanker/internal/idgen/countries"
)

const (
	Male   = "male"
	Female = "female"
)

// Options constrain generation. Zero values mean "any".
type Options struct {
	Gender string
	Year   int
}

// Result is a generated identifier with the attributes it encodes.
type Result struct {
	Code   string
	Gender string
	DOB    string
}

// Parsed is the decoded content of an identifier. Valid is false when the
// value has the right shape but a bad check digit or impossible date.
type Parsed struct {
	Valid  bool
	Gender string
	DOB    string
}

// Country describes a supported scheme.
type Country struct {
	Code    string
	Name    string
	Scheme  string
	MinYear int
	MaxYear int
	// Encoded is false for schemes that carry neither gender nor birth date.
	Encoded bool
}

type scheme interface {
	generate(dob time.Time, male bool, r *rand.Rand) (string, bool)
	parse(code string) (Parsed, bool)
}

type entry struct {
	Country
	impl scheme
}

var registry = []entry{
	{Country{"BE", "", "Rijksregisternummer", 1900, 2099, true}, belgium{}},
	{Country{"EE", "", "Isikukood", 1800, 2199, true}, estonia{}},
	{Country{"ES", "", "DNI", 0, 0, false}, spain{}},
	{Country{"FI", "", "Henkilötunnus", 1800, 2099, true}, finland{}},
	{Country{"NO", "", "Fødselsnummer", 1854, 2039, true}, norway{}},
	{Country{"PL", "", "PESEL", 1800, 2299, true}, poland{}},
	{Country{"SE", "", "Personnummer", 1900, 2099, true}, sweden{}},
	{Country{"US", "", "SSN", 0, 0, false}, unitedStates{}},
}

func lookup(code string) (entry, bool) {
	code = strings.ToUpper(code)
	i := slices.IndexFunc(registry, func(e entry) bool { return e.Code == code })
	if i < 0 {
		return entry{}, false
	}
	return registry[i], true
}

// Countries lists the supported schemes.
func Countries() []Country {
	out := make([]Country, 0, len(registry))
	for _, e := range registry {
		c := e.Country
		c.Name = countries.Name(c.Code)
		out = append(out, c)
	}
	return out
}

// Supported reports whether country has a scheme.
func Supported(country string) bool {
	_, ok := lookup(country)
	return ok
}

// Generate draws an identifier for country. It fails when the country is
// unsupported, the gender is not recognised, or the year lies outside the
// range the scheme can encode.
func Generate(country string, opts Options, r *rand.Rand) (Result, bool) {
	e, ok := lookup(country)
	if !ok {
		return Result{}, false
	}

	var male bool
	switch opts.Gender {
	case "":
		male = r.IntN(2) == 0
	case Male:
		male = true
	case Female:
		male = false
	default:
		return Result{}, false
	}

	year := opts.Year
	if e.Encoded {
		if year == 0 {
			year = max(e.MinYear, min(e.MaxYear, 1940+r.IntN(66)))
		}
		if year < e.MinYear || year > e.MaxYear {
			return Result{}, false
		}
	} else if year == 0 {
		year = 1990
	}

	dob := randomDay(year, r)
	code, ok := e.impl.generate(dob, male, r)
	if !ok {
		return Result{}, false
	}
	res := Result{Code: code}
	if e.Encoded {
		res.DOB = dob.Format(time.DateOnly)
		res.Gender = Female
		if male {
			res.Gender = Male
		}
	}
	return res, true
}

// Parse decodes code. ok is false when the country is unsupported or the
// value cannot be read as an identifier of that scheme at all.
func Parse(country, code string) (Parsed, bool) {
	e, ok := lookup(country)
	if !ok {
		return Parsed{}, false
	}
	return e.impl.parse(strings.ToUpper(strings.TrimSpace(code)))
}

// Validate reports whether code is valid for country. supported is false
// when the country has no scheme.
func Validate(country, code string) (valid, supported bool) {
	if !Supported(country) {
		return false, false
	}
	p, ok := Parse(country, code)
	return ok && p.Valid, true
}

func randomDay(year int, r *rand.Rand) time.Time {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	days := start.AddDate(1, 0, 0).Sub(start).Hours() / 24
	return start.AddDate(0, 0, r.IntN(int(days)))
}

// date builds a calendar date, returning false for impossible combinations.
func date(year, month, day int) (time.Time, bool) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func genderOf(male bool) string {
	if male {
		return Male
	}
	return Female
}

func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
