// Package lei generates and validates ISO 17442 Legal Entity Identifiers.
package lei

import (
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/mockbanker/mockbanker/internal/idgen/checksum"
	"github.com/mockbanker/mockbanker/internal/idgen/countries"
	"github.com/mockbanker/mockbanker/internal/idgen/draw"
)

// Issuer is a Local Operating Unit and the country it mostly serves.
type Issuer struct {
	Prefix  string
	Name    string
	Country string
}

var issuers = []Issuer{
	{"2138", "London Stock Exchange", "GB"},
	{"5299", "WM Datenservice", "DE"},
	{"5493", "GMEI Utility", "US"},
	{"7245", "Kamer van Koophandel", "NL"},
	{"8156", "InfoCamere", "IT"},
	{"9695", "INSEE", "FR"},
}

// Result is a generated LEI.
type Result struct {
	Code    string
	LOU     string
	Country string
}

// Issuers lists the modelled LOUs.
func Issuers() []Issuer {
	return slices.Clone(issuers)
}

// CountryName returns the display name of an issuer country.
func (i Issuer) CountryName() string {
	return countries.Name(i.Country)
}

// Generate draws a LEI from an issuer serving country, or from any issuer
// when country is empty.
func Generate(country string, r *rand.Rand) (Result, bool) {
	var is Issuer
	if country == "" {
		is = draw.Pick(r, issuers)
	} else {
		country = strings.ToUpper(country)
		i := slices.IndexFunc(issuers, func(is Issuer) bool { return is.Country == country })
		if i < 0 {
			return Result{}, false
		}
		is = issuers[i]
	}
	payload := is.Prefix + "00" + draw.Alnum(r, 12)
	check, ok := checksum.Mod97Digits(payload)
	if !ok {
		return Result{}, false
	}
	return Result{Code: payload + check, LOU: is.Prefix, Country: is.Country}, true
}

// Validate reports whether code is 20 characters of 0-9A-Z ending in valid
// MOD 97-10 check digits.
func Validate(code string) bool {
	c := strings.ToUpper(strings.TrimSpace(code))
	return len(c) == 20 && checksum.IsUpperAlnum(c) && checksum.IsDigits(c[18:]) && checksum.Mod97Valid(c)
}

// Repair recomputes the check digits of a structurally correct LEI.
func Repair(code string) (string, bool) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if len(c) != 20 || !checksum.IsUpperAlnum(c) {
		return "", false
	}
	check, ok := checksum.Mod97Digits(c[:18])
	if !ok {
		return "", false
	}
	return c[:18] + check, true
}
