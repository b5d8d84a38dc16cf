// Package vat generates and validates EU-style VAT registration numbers. The
// country is carried by the two letter prefix of the number itself.
package vat

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"github.com/mockbanker/mockbanker/internal/idgen/checksum"
	"github.com/mockbanker/mockbanker/internal/idgen/companyid"
	"github.com/mockbanker/mockbanker/internal/idgen/countries"
	"github.com/mockbanker/mockbanker/internal/idgen/draw"
)

// Country is a supported VAT area.
type Country struct {
	Code string
	Name string
}

// Result is a generated VAT number.
type Result struct {
	Code        string
	CountryCode string
	CountryName string
}

type scheme struct {
	code     string
	generate func(r *rand.Rand) (string, bool)
	validate func(body string) bool
}

var schemes = []scheme{
	{"AT", genAT, validAT},
	{"BE", genBE, validBE},
	{"DE", genDE, validDE},
	{"DK", genDK, validDK},
	{"EE", genEE, validEE},
	{"FI", genFI, validFI},
	{"FR", genFR, validFR},
	{"GB", genGB, validGB},
	{"IT", genIT, validIT},
	{"NL", genNL, validNL},
	{"PL", genPL, validPL},
}

func lookup(code string) (scheme, bool) {
	code = strings.ToUpper(code)
	i := slices.IndexFunc(schemes, func(s scheme) bool { return s.code == code })
	if i < 0 {
		return scheme{}, false
	}
	return schemes[i], true
}

// Countries lists the supported VAT areas.
func Countries() []Country {
	out := make([]Country, 0, len(schemes))
	for _, s := range schemes {
		out = append(out, Country{Code: s.code, Name: countries.Name(s.code)})
	}
	return out
}

// Generate draws a VAT number, prefix included, for country.
func Generate(country string, r *rand.Rand) (Result, bool) {
	s, ok := lookup(country)
	if !ok {
		return Result{}, false
	}
	for range 500 {
		body, ok := s.generate(r)
		if ok {
			return Result{Code: s.code + body, CountryCode: s.code, CountryName: countries.Name(s.code)}, true
		}
	}
	return Result{}, false
}

// Validate reports whether code is a valid VAT number. The country is taken
// from the prefix; unknown prefixes are invalid.
func Validate(code string) bool {
	c := strings.ToUpper(strings.NewReplacer(" ", "", ".", "", "-", "").Replace(code))
	if len(c) < 4 {
		return false
	}
	s, ok := lookup(c[:2])
	return ok && s.validate(c[2:])
}

func digits(body string, n int) bool {
	return len(body) == n && checksum.IsDigits(body)
}

func genAT(r *rand.Rand) (string, bool) {
	payload := draw.Digits(r, 7)
	return "U" + payload + strconv.Itoa(atCheck(payload)), true
}

func atCheck(p string) int {
	sum := 0
	for i := 0; i < 7; i++ {
		d := int(p[i] - '0')
		if i%2 == 1 {
			d *= 2
			d = d/10 + d%10
		}
		sum += d
	}
	return (10 - (sum+4)%10) % 10
}

func validAT(body string) bool {
	return len(body) == 9 && body[0] == 'U' && digits(body[1:], 8) && atCheck(body[1:8]) == int(body[8]-'0')
}

func genBE(r *rand.Rand) (string, bool) {
	payload := strconv.Itoa(r.IntN(2)) + draw.Digits(r, 7)
	n, _ := strconv.Atoi(payload)
	return payload + fmt.Sprintf("%02d", 97-n%97), true
}

func validBE(body string) bool {
	if !digits(body, 10) || body[0] > '1' {
		return false
	}
	n, _ := strconv.Atoi(body[:8])
	c, _ := strconv.Atoi(body[8:])
	return 97-n%97 == c
}

func genDE(r *rand.Rand) (string, bool) {
	payload := draw.NonZeroDigits(r, 8)
	return payload + strconv.Itoa(checksum.Mod11_10Digit(payload)), true
}

func validDE(body string) bool {
	return digits(body, 9) && checksum.Mod11_10Digit(body[:8]) == int(body[8]-'0')
}

func genDK(r *rand.Rand) (string, bool) {
	v := draw.NonZeroDigits(r, 8)
	return v, validDK(v)
}

func validDK(body string) bool {
	return digits(body, 8) && checksum.Weighted(body, []int{2, 7, 6, 5, 4, 3, 2, 1})%11 == 0
}

var eeWeights = []int{3, 7, 1, 3, 7, 1, 3, 7}

func genEE(r *rand.Rand) (string, bool) {
	payload := "10" + draw.Digits(r, 6)
	return payload + strconv.Itoa((10-checksum.Weighted(payload, eeWeights)%10)%10), true
}

func validEE(body string) bool {
	return digits(body, 9) && (10-checksum.Weighted(body[:8], eeWeights)%10)%10 == int(body[8]-'0')
}

func genFI(r *rand.Rand) (string, bool) {
	payload := draw.Digits(r, 7)
	c, ok := companyid.FinnishCheck(payload)
	return payload + strconv.Itoa(c), ok
}

func validFI(body string) bool {
	if !digits(body, 8) {
		return false
	}
	c, ok := companyid.FinnishCheck(body[:7])
	return ok && c == int(body[7]-'0')
}

func frKey(siren string) int {
	n, _ := strconv.Atoi(siren)
	return (12 + 3*(n%97)) % 97
}

func genFR(r *rand.Rand) (string, bool) {
	siren, _ := companyid.GenerateSIREN(r)
	return fmt.Sprintf("%02d", frKey(siren)) + siren, true
}

func validFR(body string) bool {
	if !digits(body, 11) || !checksum.Luhn(body[2:]) {
		return false
	}
	k, _ := strconv.Atoi(body[:2])
	return k == frKey(body[2:])
}

var gbWeights = []int{8, 7, 6, 5, 4, 3, 2}

func genGB(r *rand.Rand) (string, bool) {
	payload := draw.NonZeroDigits(r, 7)
	sum := checksum.Weighted(payload, gbWeights)
	c := (97 - sum%97) % 97
	return payload + fmt.Sprintf("%02d", c), true
}

func validGB(body string) bool {
	if !digits(body, 9) {
		return false
	}
	c, _ := strconv.Atoi(body[7:])
	total := checksum.Weighted(body[:7], gbWeights) + c
	return total%97 == 0 || (total+55)%97 == 0
}

func genIT(r *rand.Rand) (string, bool) {
	payload := draw.Digits(r, 7) + fmt.Sprintf("%03d", draw.Between(r, 1, 100))
	return payload + strconv.Itoa(checksum.LuhnDigit(payload)), true
}

func validIT(body string) bool {
	return digits(body, 11) && checksum.Luhn(body)
}

var nlWeights = []int{9, 8, 7, 6, 5, 4, 3, 2}

func genNL(r *rand.Rand) (string, bool) {
	payload := draw.NonZeroDigits(r, 8)
	c := checksum.Weighted(payload, nlWeights) % 11
	if c == 10 {
		return "", false
	}
	return payload + strconv.Itoa(c) + "B" + fmt.Sprintf("%02d", draw.Between(r, 1, 99)), true
}

func validNL(body string) bool {
	if len(body) != 12 || body[9] != 'B' || !checksum.IsDigits(body[:9]) || !checksum.IsDigits(body[10:]) {
		return false
	}
	c := checksum.Weighted(body[:8], nlWeights) % 11
	return c != 10 && c == int(body[8]-'0')
}

var plWeights = []int{6, 5, 7, 2, 3, 4, 5, 6, 7}

func genPL(r *rand.Rand) (string, bool) {
	payload := draw.NonZeroDigits(r, 9)
	c := checksum.Weighted(payload, plWeights) % 11
	if c == 10 {
		return "", false
	}
	return payload + strconv.Itoa(c), true
}

func validPL(body string) bool {
	if !digits(body, 10) {
		return false
	}
	c := checksum.Weighted(body[:9], plWeights) % 11
	return c != 10 && c == int(body[9]-'0')
}
