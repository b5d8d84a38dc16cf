// Package taxid generates and validates taxpayer identification numbers.
// Some countries issue different numbers to individuals and companies; those
// report a holder type.
package taxid

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

const (
	Individual = "individual"
	Company    = "company"
)

// Country describes a supported tax authority.
type Country struct {
	Code        string
	Name        string
	HolderTypes []string
}

// Result is a generated tax identifier.
type Result struct {
	Code       string
	Name       string
	Country    string
	HolderType string
}

type kind struct {
	holder   string
	name     string
	generate func(r *rand.Rand) (string, bool)
	validate func(code string) bool
}

type scheme struct {
	code  string
	kinds []kind
}

var schemes = []scheme{
	{"BR", []kind{
		{Individual, "CPF", genCPF, validCPF},
		{Company, "CNPJ", genCNPJ, validCNPJ},
	}},
	{"DE", []kind{{"", "Steuerliche Identifikationsnummer", genSteuerID, validSteuerID}}},
	{"GB", []kind{{"", "UTR", genUTR, validUTR}}},
	{"IN", []kind{
		{Individual, "PAN", genPAN('P'), validPAN},
		{Company, "PAN", genPAN('C'), validPAN},
	}},
	{"US", []kind{
		{Individual, "ITIN", genITIN, validITIN},
		{Company, "EIN", companyid.GenerateEIN, companyid.ValidEIN},
	}},
}

func lookup(code string) (scheme, bool) {
	code = strings.ToUpper(code)
	i := slices.IndexFunc(schemes, func(s scheme) bool { return s.code == code })
	if i < 0 {
		return scheme{}, false
	}
	return schemes[i], true
}

// Countries lists the supported tax authorities.
func Countries() []Country {
	out := make([]Country, 0, len(schemes))
	for _, s := range schemes {
		c := Country{Code: s.code, Name: countries.Name(s.code)}
		for _, k := range s.kinds {
			if k.holder != "" {
				c.HolderTypes = append(c.HolderTypes, k.holder)
			}
		}
		out = append(out, c)
	}
	return out
}

// Generate draws a tax identifier. holderType may be empty (random where the
// country distinguishes holders); a holder type the country does not issue
// fails.
func Generate(country, holderType string, r *rand.Rand) (Result, bool) {
	s, ok := lookup(country)
	if !ok {
		return Result{}, false
	}
	var k kind
	if holderType == "" {
		k = draw.Pick(r, s.kinds)
	} else {
		i := slices.IndexFunc(s.kinds, func(k kind) bool { return k.holder == holderType })
		if i < 0 {
			return Result{}, false
		}
		k = s.kinds[i]
	}
	code, ok := k.generate(r)
	if !ok {
		return Result{}, false
	}
	return Result{Code: code, Name: k.name, Country: s.code, HolderType: k.holder}, true
}

// Validate reports whether code is a valid identifier of any holder type in
// country.
func Validate(country, code string) (valid, supported bool) {
	s, ok := lookup(country)
	if !ok {
		return false, false
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, k := range s.kinds {
		if k.validate(code) {
			return true, true
		}
	}
	return false, true
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		if r == '.' || r == '-' || r == '/' || r == ' ' {
			return -1
		}
		return 'x'
	}, s)
}

func mod11Digit(payload string, weights []int) int {
	rem := checksum.Weighted(payload, weights) % 11
	if rem < 2 {
		return 0
	}
	return 11 - rem
}

var (
	cpfW1  = []int{10, 9, 8, 7, 6, 5, 4, 3, 2}
	cpfW2  = []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjW1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjW2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

func genCPF(r *rand.Rand) (string, bool) {
	base := draw.Digits(r, 9)
	base += strconv.Itoa(mod11Digit(base, cpfW1))
	base += strconv.Itoa(mod11Digit(base, cpfW2))
	return fmt.Sprintf("%s.%s.%s-%s", base[0:3], base[3:6], base[6:9], base[9:]), true
}

func validCPF(code string) bool {
	d := digitsOnly(code)
	if len(d) != 11 || !checksum.IsDigits(d) || strings.Count(d, d[:1]) == 11 {
		return false
	}
	return mod11Digit(d[:9], cpfW1) == int(d[9]-'0') && mod11Digit(d[:10], cpfW2) == int(d[10]-'0')
}

func genCNPJ(r *rand.Rand) (string, bool) {
	base := draw.Digits(r, 8) + "0001"
	base += strconv.Itoa(mod11Digit(base, cnpjW1))
	base += strconv.Itoa(mod11Digit(base, cnpjW2))
	return fmt.Sprintf("%s.%s.%s/%s-%s", base[0:2], base[2:5], base[5:8], base[8:12], base[12:]), true
}

func validCNPJ(code string) bool {
	d := digitsOnly(code)
	if len(d) != 14 || !checksum.IsDigits(d) {
		return false
	}
	return mod11Digit(d[:12], cnpjW1) == int(d[12]-'0') && mod11Digit(d[:13], cnpjW2) == int(d[13]-'0')
}

func genSteuerID(r *rand.Rand) (string, bool) {
	payload := draw.NonZeroDigits(r, 10)
	return payload + strconv.Itoa(checksum.Mod11_10Digit(payload)), true
}

func validSteuerID(code string) bool {
	d := strings.ReplaceAll(code, " ", "")
	return len(d) == 11 && checksum.IsDigits(d) && d[0] != '0' &&
		checksum.Mod11_10Digit(d[:10]) == int(d[10]-'0')
}

var utrWeights = []int{6, 7, 8, 9, 10, 5, 4, 3, 2}

const utrChecks = "21987654321"

func genUTR(r *rand.Rand) (string, bool) {
	body := draw.Digits(r, 9)
	return string(utrChecks[checksum.Weighted(body, utrWeights)%11]) + body, true
}

func validUTR(code string) bool {
	d := strings.ReplaceAll(code, " ", "")
	return len(d) == 10 && checksum.IsDigits(d) && utrChecks[checksum.Weighted(d[1:], utrWeights)%11] == d[0]
}

func genPAN(holder byte) func(r *rand.Rand) (string, bool) {
	return func(r *rand.Rand) (string, bool) {
		return draw.Letters(r, 3) + string(holder) + draw.Letters(r, 1) + draw.Digits(r, 4) + draw.Letters(r, 1), true
	}
}

func validPAN(code string) bool {
	if len(code) != 10 {
		return false
	}
	for i := 0; i < 10; i++ {
		c := code[i]
		isDigit := c >= '0' && c <= '9'
		isLetter := c >= 'A' && c <= 'Z'
		if (i >= 5 && i <= 8 && !isDigit) || ((i < 5 || i == 9) && !isLetter) {
			return false
		}
	}
	return strings.IndexByte("PCHFATBLJG", code[3]) >= 0
}

func genITIN(r *rand.Rand) (string, bool) {
	group := draw.Pick(r, itinGroups)
	return fmt.Sprintf("9%s-%02d-%s", draw.Digits(r, 2), group, draw.Digits(r, 4)), true
}

var itinGroups = func() []int {
	var out []int
	for g := 50; g <= 99; g++ {
		if (g >= 50 && g <= 65) || (g >= 70 && g <= 88) || (g >= 90 && g <= 92) || g >= 94 {
			out = append(out, g)
		}
	}
	return out
}()

func validITIN(code string) bool {
	d := code
	if strings.Contains(code, "-") {
		if len(code) != 11 || code[3] != '-' || code[6] != '-' {
			return false
		}
		d = strings.ReplaceAll(code, "-", "")
	}
	if len(d) != 9 || !checksum.IsDigits(d) || d[0] != '9' {
		return false
	}
	g, _ := strconv.Atoi(d[3:5])
	return slices.Contains(itinGroups, g)
}
