// Package passport generates and validates passport document numbers.
package passport

import (
	"math/rand/v2"
	"regexp"
	"slices"
	"strconv"
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

type scheme struct {
	Country
	pattern  *regexp.Regexp
	generate func(r *rand.Rand) string
}

// German documents avoid letters that are easily confused.
const deAlphabet = "CFGHJKLMNPRTVWXYZ0123456789"

var schemes = []scheme{
	{Country{Code: "CA", Format: "2 letters + 6 digits"}, regexp.MustCompile(`^[A-Z]{2}[0-9]{6}$`),
		func(r *rand.Rand) string { return draw.Letters(r, 2) + draw.Digits(r, 6) }},
	{Country{Code: "DE", Format: "9 characters"}, regexp.MustCompile(`^[CFGHJK][CFGHJKLMNPRTVWXYZ0-9]{8}$`),
		func(r *rand.Rand) string {
			var b strings.Builder
			b.WriteByte("CFGHJK"[r.IntN(6)])
			for range 8 {
				b.WriteByte(deAlphabet[r.IntN(len(deAlphabet))])
			}
			return b.String()
		}},
	{Country{Code: "EE", Format: "K + 7 digits"}, regexp.MustCompile(`^[A-Z]{1,2}[0-9]{7}$`),
		func(r *rand.Rand) string { return "K" + draw.Digits(r, 7) }},
	{Country{Code: "FR", Format: "2 digits + 2 letters + 5 digits"}, regexp.MustCompile(`^[0-9]{2}[A-Z]{2}[0-9]{5}$`),
		func(r *rand.Rand) string { return draw.Digits(r, 2) + draw.Letters(r, 2) + draw.Digits(r, 5) }},
	{Country{Code: "GB", Format: "9 digits"}, regexp.MustCompile(`^[0-9]{9}$`),
		func(r *rand.Rand) string { return draw.NonZeroDigits(r, 9) }},
	{Country{Code: "IN", Format: "1 letter + 7 digits"}, regexp.MustCompile(`^[A-PR-WY][1-9][0-9]{5}[1-9]$`),
		func(r *rand.Rand) string {
			return string("ABCDEFGHIJKLMNPRSTUVWY"[r.IntN(22)]) + draw.NonZeroDigits(r, 1) + draw.Digits(r, 5) + draw.NonZeroDigits(r, 1)
		}},
	{Country{Code: "US", Format: "9 digits or letter + 8 digits"}, regexp.MustCompile(`^([0-9]{9}|[A-Z][0-9]{8})$`),
		func(r *rand.Rand) string { return draw.Letters(r, 1) + draw.Digits(r, 8) }},
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

// Generate draws a passport number for country.
func Generate(country string, r *rand.Rand) (string, bool) {
	s, ok := lookup(country)
	if !ok {
		return "", false
	}
	return s.generate(r), true
}

// Validate reports whether code matches the document layout of country.
func Validate(country, code string) (valid, supported bool) {
	s, ok := lookup(country)
	if !ok {
		return false, false
	}
	return s.pattern.MatchString(strings.ToUpper(strings.TrimSpace(code))), true
}

// MRZCheckDigit computes the ICAO 9303 check digit used in the machine
// readable zone for a document number field.
func MRZCheckDigit(field string) int {
	weights := []int{7, 3, 1}
	sum := 0
	for i := 0; i < len(field); i++ {
		c := field[i]
		var v int
		switch {
		case c >= '0' && c <= '9':
			v = int(c - '0')
		case c >= 'A' && c <= 'Z':
			v = int(c-'A') + 10
		}
		sum += v * weights[i%3]
	}
	return sum % 10
}

// MRZField renders code as a nine character MRZ document number field
// followed by its check digit.
func MRZField(code string) string {
	f := strings.ToUpper(code)
	if len(f) < 9 {
		f += strings.Repeat("<", 9-len(f))
	}
	return f + strconv.Itoa(MRZCheckDigit(f))
}
