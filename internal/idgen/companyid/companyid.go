// Package companyid generates and validates national company registration
// numbers.
package companyid

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/mockbanker/mockbanker/internal/idgen/checksum"
	"github.com/mockbanker/mockbanker/internal/idgen/countries"
	"github.com/mockbanker/mockbanker/internal/idgen/draw"
)

// Country describes a supported registry.
type Country struct {
	Code   string
	Name   string
	Scheme string
}

type scheme struct {
	Country
	generate func(r *rand.Rand) (string, bool)
	validate func(code string) bool
}

var schemes = []scheme{
	{Country{Code: "DE", Scheme: "Handelsregisternummer"}, genDE, func(c string) bool { return deRegister.MatchString(c) }},
	{Country{Code: "DK", Scheme: "CVR"}, genDK, validDK},
	{Country{Code: "EE", Scheme: "Registrikood"}, genEE, validEE},
	{Country{Code: "FI", Scheme: "Y-tunnus"}, genFI, validFI},
	{Country{Code: "FR", Scheme: "SIREN"}, genFR, validFR},
	{Country{Code: "GB", Scheme: "Company Registration Number"}, genGB, func(c string) bool { return gbCompany.MatchString(c) }},
	{Country{Code: "NO", Scheme: "Organisasjonsnummer"}, genNO, validNO},
	{Country{Code: "US", Scheme: "EIN"}, GenerateEIN, ValidEIN},
}

func lookup(code string) (scheme, bool) {
	code = strings.ToUpper(code)
	i := slices.IndexFunc(schemes, func(s scheme) bool { return s.Code == code })
	if i < 0 {
		return scheme{}, false
	}
	return schemes[i], true
}

// Countries lists the supported registries.
func Countries() []Country {
	out := make([]Country, 0, len(schemes))
	for _, s := range schemes {
		c := s.Country
		c.Name = countries.Name(c.Code)
		out = append(out, c)
	}
	return out
}

// Generate draws a registration number and returns it with the scheme name.
func Generate(country string, r *rand.Rand) (code, name string, ok bool) {
	s, found := lookup(country)
	if !found {
		return "", "", false
	}
	code, ok = s.generate(r)
	return code, s.Scheme, ok
}

// Validate reports whether code is valid in country's registry. supported is
// false when the country is unknown.
func Validate(country, code string) (valid, supported bool) {
	s, ok := lookup(country)
	if !ok {
		return false, false
	}
	return s.validate(strings.ToUpper(strings.TrimSpace(code))), true
}

var (
	deRegister = regexp.MustCompile(`^HR[AB] \d{4,6}$`)
	gbCompany  = regexp.MustCompile(`^(\d{8}|(SC|NI|OC)\d{6})$`)
)

func genDE(r *rand.Rand) (string, bool) {
	return "HR" + draw.Pick(r, []string{"A", "B"}) + " " + draw.NonZeroDigits(r, draw.Between(r, 4, 6)), true
}

func genGB(r *rand.Rand) (string, bool) {
	if r.IntN(4) == 0 {
		return draw.Pick(r, []string{"SC", "NI", "OC"}) + draw.Digits(r, 6), true
	}
	return draw.Digits(r, 8), true
}

var dkWeights = []int{2, 7, 6, 5, 4, 3, 2, 1}

func genDK(r *rand.Rand) (string, bool) {
	for range 500 {
		v := draw.NonZeroDigits(r, 8)
		if validDK(v) {
			return v, true
		}
	}
	return "", false
}

func validDK(c string) bool {
	return len(c) == 8 && checksum.IsDigits(c) && c[0] != '0' && checksum.Weighted(c, dkWeights)%11 == 0
}

// EstonianCheck computes the registry check digit for a seven digit payload.
func EstonianCheck(payload string) int {
	c := checksum.Weighted(payload, []int{1, 2, 3, 4, 5, 6, 7}) % 11
	if c < 10 {
		return c
	}
	c = checksum.Weighted(payload, []int{3, 4, 5, 6, 7, 8, 9}) % 11
	if c == 10 {
		return 0
	}
	return c
}

func genEE(r *rand.Rand) (string, bool) {
	payload := draw.Pick(r, []string{"1", "8", "9"}) + draw.Digits(r, 6)
	return payload + strconv.Itoa(EstonianCheck(payload)), true
}

func validEE(c string) bool {
	if len(c) != 8 || !checksum.IsDigits(c) || !strings.ContainsRune("189", rune(c[0])) {
		return false
	}
	return EstonianCheck(c[:7]) == int(c[7]-'0')
}

// FinnishCheck returns the Y-tunnus check digit; ok is false for payloads
// that have no valid check digit.
func FinnishCheck(payload string) (int, bool) {
	rem := checksum.Weighted(payload, []int{7, 9, 10, 5, 8, 4, 2}) % 11
	switch rem {
	case 0:
		return 0, true
	case 1:
		return 0, false
	}
	return 11 - rem, true
}

func genFI(r *rand.Rand) (string, bool) {
	for range 500 {
		payload := draw.Digits(r, 7)
		if c, ok := FinnishCheck(payload); ok {
			return payload + "-" + strconv.Itoa(c), true
		}
	}
	return "", false
}

func validFI(c string) bool {
	if len(c) != 9 || c[7] != '-' || !checksum.IsDigits(c[:7]) || !checksum.IsDigits(c[8:]) {
		return false
	}
	check, ok := FinnishCheck(c[:7])
	return ok && check == int(c[8]-'0')
}

// GenerateSIREN draws a nine digit Luhn-valid SIREN.
func GenerateSIREN(r *rand.Rand) (string, bool) {
	payload := draw.NonZeroDigits(r, 8)
	return payload + strconv.Itoa(checksum.LuhnDigit(payload)), true
}

func genFR(r *rand.Rand) (string, bool) { return GenerateSIREN(r) }

func validFR(c string) bool {
	c = strings.ReplaceAll(c, " ", "")
	return len(c) == 9 && checksum.Luhn(c)
}

var noWeights = []int{3, 2, 7, 6, 5, 4, 3, 2}

func genNO(r *rand.Rand) (string, bool) {
	for range 500 {
		payload := draw.Pick(r, []string{"8", "9"}) + draw.Digits(r, 7)
		c := 11 - checksum.Weighted(payload, noWeights)%11
		if c == 10 {
			continue
		}
		return payload + strconv.Itoa(c%11), true
	}
	return "", false
}

func validNO(c string) bool {
	if len(c) != 9 || !checksum.IsDigits(c) || (c[0] != '8' && c[0] != '9') {
		return false
	}
	check := 11 - checksum.Weighted(c[:8], noWeights)%11
	return check != 10 && check%11 == int(c[8]-'0')
}

var einPrefixes = func() []int {
	excluded := []int{0, 7, 8, 9, 17, 18, 19, 28, 29, 49, 69, 70, 78, 79, 89, 96, 97}
	var out []int
	for p := range 100 {
		if !slices.Contains(excluded, p) {
			out = append(out, p)
		}
	}
	return out
}()

// GenerateEIN draws a US employer identification number, NN-NNNNNNN.
func GenerateEIN(r *rand.Rand) (string, bool) {
	return fmt.Sprintf("%02d-%s", draw.Pick(r, einPrefixes), draw.Digits(r, 7)), true
}

// ValidEIN reports whether c is an EIN with an assigned campus prefix. The
// dash is optional but must sit after the prefix when present.
func ValidEIN(c string) bool {
	if strings.Contains(c, "-") {
		if len(c) != 10 || c[2] != '-' {
			return false
		}
		c = c[:2] + c[3:]
	}
	if len(c) != 9 || !checksum.IsDigits(c) {
		return false
	}
	p, _ := strconv.Atoi(c[:2])
	return slices.Contains(einPrefixes, p)
}
