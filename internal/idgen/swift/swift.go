// Package swift generates and validates SWIFT/BIC codes.
package swift

import (
	"math/rand/v2"
	"regexp"
	"strings"

	"github.com/mockbanker/mockbanker/internal/idgen/countries"
	"github.com/mockbanker/mockbanker/internal/idgen/draw"
)

var bicPattern = regexp.MustCompile(`^[A-Z]{4}([A-Z]{2})[A-Z0-9]{2}([A-Z0-9]{3})?$`)

// Result is a generated BIC and its parts.
type Result struct {
	Code     string
	Bank     string
	Country  string
	Location string
}

// Generate draws a BIC for country. Roughly half of the codes carry a branch
// suffix.
func Generate(country string, r *rand.Rand) (Result, bool) {
	country = strings.ToUpper(country)
	if !countries.Known(country) {
		return Result{}, false
	}
	bank := draw.Letters(r, 4)
	// a zero in the second location position marks a test BIC
	location := draw.Alnum(r, 1) + string("123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"[r.IntN(35)])
	code := bank + country + location
	if r.IntN(2) == 0 {
		if r.IntN(3) == 0 {
			code += "XXX"
		} else {
			code += draw.Alnum(r, 3)
		}
	}
	return Result{Code: code, Bank: bank, Country: country, Location: location}, true
}

// Validate reports whether code is an 8 or 11 character BIC with a known
// country segment.
func Validate(code string) bool {
	m := bicPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(code)))
	return m != nil && countries.Known(m[1])
}
