// Package iban generates and validates International Bank Account Numbers.
package iban

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/mockbanker/mockbanker/internal/idgen/checksum"
	"github.com/mockbanker/mockbanker/internal/idgen/draw"
)

// Spec describes the national layout of an IBAN.
// BBAN uses the registry notation: a count followed by n (digits),
// a (upper-case letters) or c (alphanumerics), e.g. "4a14n".
type Spec struct {
	Country string
	Length  int
	BBAN    string
}

var specs = []Spec{
	{"AL", 28, "8n16c"},
	{"AT", 20, "16n"},
	{"BE", 16, "12n"},
	{"BG", 22, "4a6n8c"},
	{"CH", 21, "5n12c"},
	{"CZ", 24, "20n"},
	{"DE", 22, "18n"},
	{"DK", 18, "14n"},
	{"EE", 20, "16n"},
	{"ES", 24, "20n"},
	{"FI", 18, "14n"},
	{"FR", 27, "10n11c2n"},
	{"GB", 22, "4a14n"},
	{"HR", 21, "17n"},
	{"IE", 22, "4a14n"},
	{"IT", 27, "1a10n12c"},
	{"LT", 20, "16n"},
	{"LU", 20, "3n13c"},
	{"LV", 21, "4a13c"},
	{"NL", 18, "4a10n"},
	{"NO", 15, "11n"},
	{"PL", 28, "24n"},
	{"PT", 25, "21n"},
	{"RO", 24, "4a16c"},
	{"SE", 24, "20n"},
	{"SI", 19, "15n"},
	{"SK", 24, "20n"},
}

var byCountry = func() map[string]Spec {
	m := make(map[string]Spec, len(specs))
	for _, s := range specs {
		m[s.Country] = s
	}
	return m
}()

type segment struct {
	n    int
	kind byte
}

func parsePattern(p string) []segment {
	var out []segment
	num := 0
	for i := 0; i < len(p); i++ {
		c := p[i]
		if c >= '0' && c <= '9' {
			num = num*10 + int(c-'0')
			continue
		}
		out = append(out, segment{n: num, kind: c})
		num = 0
	}
	return out
}

// Countries returns the supported national layouts.
func Countries() []Spec {
	out := make([]Spec, len(specs))
	copy(out, specs)
	return out
}

// Supported reports whether country has a known IBAN layout.
func Supported(country string) bool {
	_, ok := byCountry[strings.ToUpper(country)]
	return ok
}

// Generate returns a random IBAN (unformatted) for country.
func Generate(country string, r *rand.Rand) (string, bool) {
	spec, ok := byCountry[strings.ToUpper(country)]
	if !ok {
		return "", false
	}
	var bban strings.Builder
	for _, seg := range parsePattern(spec.BBAN) {
		switch seg.kind {
		case 'n':
			bban.WriteString(draw.Digits(r, seg.n))
		case 'a':
			bban.WriteString(draw.Letters(r, seg.n))
		default:
			bban.WriteString(draw.Alnum(r, seg.n))
		}
	}
	return assemble(spec.Country, bban.String())
}

func assemble(country, bban string) (string, bool) {
	check, ok := checksum.Mod97Digits(bban + country)
	if !ok {
		return "", false
	}
	return country + check + bban, true
}

// Normalize strips spaces and upper-cases s.
func Normalize(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}

// Validate reports whether s is a well-formed IBAN for a supported country
// with correct check digits. Spaces are ignored.
func Validate(s string) bool {
	v := Normalize(s)
	if !wellFormed(v) {
		return false
	}
	return checksum.Mod97Valid(v[4:] + v[:4])
}

// Repair recomputes the check digits of a well-formed IBAN.
// ok is false when the layout itself is wrong.
func Repair(s string) (string, bool) {
	v := Normalize(s)
	if !wellFormed(v) {
		return "", false
	}
	return assemble(v[:2], v[4:])
}

func wellFormed(v string) bool {
	if len(v) < 5 {
		return false
	}
	spec, ok := byCountry[v[:2]]
	if !ok || len(v) != spec.Length || !checksum.IsDigits(v[2:4]) {
		return false
	}
	pos := 4
	for _, seg := range parsePattern(spec.BBAN) {
		part := v[pos : pos+seg.n]
		switch seg.kind {
		case 'n':
			if !checksum.IsDigits(part) {
				return false
			}
		case 'a':
			for i := 0; i < len(part); i++ {
				if part[i] < 'A' || part[i] > 'Z' {
					return false
				}
			}
		default:
			if !checksum.IsUpperAlnum(part) {
				return false
			}
		}
		pos += seg.n
	}
	return pos == len(v)
}

// Format groups s into blocks of four characters separated by spaces.
func Format(s string) string {
	v := Normalize(s)
	var b strings.Builder
	for i := 0; i < len(v); i += 4 {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(v[i:min(i+4, len(v))])
	}
	return b.String()
}

// Describe returns a short human description of a layout, e.g. "22 chars".
func (s Spec) Describe() string {
	return strconv.Itoa(s.Length) + " chars"
}
