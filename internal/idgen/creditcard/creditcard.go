// Package creditcard generates Luhn-valid payment card numbers for the major
// card brands.
package creditcard

import (
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"github.com/mockbanker/mockbanker/internal/idgen/checksum"
	"github.com/mockbanker/mockbanker/internal/idgen/draw"
)

// Brand is a card network.
type Brand struct {
	Code   string
	Name   string
	Length int
	// Prefixes are inclusive IIN ranges encoded as "lo-hi" or a single prefix.
	Prefixes []string
}

var brands = []Brand{
	{"visa", "Visa", 16, []string{"4"}},
	{"mastercard", "Mastercard", 16, []string{"51-55", "2221-2720"}},
	{"amex", "American Express", 15, []string{"34", "37"}},
	{"discover", "Discover", 16, []string{"6011", "644-649", "65"}},
	{"jcb", "JCB", 16, []string{"3528-3589"}},
	{"diners", "Diners Club", 14, []string{"300-305", "36", "38"}},
	{"unionpay", "UnionPay", 16, []string{"62"}},
	{"maestro", "Maestro", 16, []string{"5018", "5020", "5038", "6304"}},
}

// Brands lists the supported networks in display order.
func Brands() []Brand {
	return slices.Clone(brands)
}

func lookup(code string) (Brand, bool) {
	code = strings.ToLower(code)
	i := slices.IndexFunc(brands, func(b Brand) bool { return b.Code == code })
	if i < 0 {
		return Brand{}, false
	}
	return brands[i], true
}

func prefixRange(p string) (lo, hi int, width int) {
	if a, b, ok := strings.Cut(p, "-"); ok {
		lo, _ = strconv.Atoi(a)
		hi, _ = strconv.Atoi(b)
		return lo, hi, len(a)
	}
	lo, _ = strconv.Atoi(p)
	return lo, lo, len(p)
}

// Generate returns a number for brand, or a random brand when brand is empty.
func Generate(brand string, r *rand.Rand) (number string, name string, ok bool) {
	var b Brand
	if brand == "" {
		b = draw.Pick(r, brands)
	} else if b, ok = lookup(brand); !ok {
		return "", "", false
	}
	lo, hi, width := prefixRange(draw.Pick(r, b.Prefixes))
	prefix := strconv.Itoa(draw.Between(r, lo, hi))
	for len(prefix) < width {
		prefix = "0" + prefix
	}
	payload := prefix + draw.Digits(r, b.Length-len(prefix)-1)
	return payload + strconv.Itoa(checksum.LuhnDigit(payload)), b.Name, true
}

// Normalize removes spaces and dashes.
func Normalize(number string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(number))
}

// Validate reports whether number has a plausible length and passes Luhn.
func Validate(number string) bool {
	n := Normalize(number)
	return len(n) >= 12 && len(n) <= 19 && checksum.Luhn(n)
}

// Repair replaces the final digit with the correct Luhn check digit.
func Repair(number string) (string, bool) {
	n := Normalize(number)
	if len(n) < 12 || len(n) > 19 || !checksum.IsDigits(n) {
		return "", false
	}
	payload := n[:len(n)-1]
	return payload + strconv.Itoa(checksum.LuhnDigit(payload)), true
}

// Detect returns the brand name whose IIN ranges match number, or "".
func Detect(number string) string {
	n := Normalize(number)
	for _, b := range brands {
		for _, p := range b.Prefixes {
			lo, hi, width := prefixRange(p)
			if len(n) < width {
				continue
			}
			v, err := strconv.Atoi(n[:width])
			if err == nil && v >= lo && v <= hi {
				return b.Name
			}
		}
	}
	return ""
}
