// Package bankaccount generates domestic bank account numbers together with
// the routing code a payment would need.
package bankaccount

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"github.com/mockbanker/mockbanker/internal/idgen/checksum"
	"github.com/mockbanker/mockbanker/internal/idgen/countries"
	"github.com/mockbanker/mockbanker/internal/idgen/draw"
)

// Country describes one domestic scheme.
type Country struct {
	Code    string
	Name    string
	Format  string
	Routing string
}

// Result is a generated account with its routing code (may be empty).
type Result struct {
	Account string
	Routing string
}

type scheme struct {
	Country
	minLen, maxLen int
	routing        func(r *rand.Rand) string
	account        func(r *rand.Rand, n int) string
	check          func(account string) bool
}

var schemes = []scheme{
	{
		Country: Country{Code: "AU", Format: "6-9 digits", Routing: "BSB"},
		minLen:  6, maxLen: 9,
		routing: func(r *rand.Rand) string { return draw.Digits(r, 3) + "-" + draw.Digits(r, 3) },
	},
	{
		Country: Country{Code: "CA", Format: "7-12 digits", Routing: "Institution + transit"},
		minLen:  7, maxLen: 12,
		routing: func(r *rand.Rand) string { return "0" + draw.Digits(r, 3) + draw.Digits(r, 5) },
	},
	{
		Country: Country{Code: "DE", Format: "10 digits", Routing: "BLZ"},
		minLen:  10, maxLen: 10,
		routing: func(r *rand.Rand) string { return strconv.Itoa(draw.Between(r, 1, 8)) + draw.Digits(r, 7) },
	},
	{
		Country: Country{Code: "GB", Format: "8 digits", Routing: "Sort code"},
		minLen:  8, maxLen: 8,
		routing: func(r *rand.Rand) string {
			return draw.Digits(r, 2) + "-" + draw.Digits(r, 2) + "-" + draw.Digits(r, 2)
		},
	},
	{
		Country: Country{Code: "IN", Format: "9-18 digits", Routing: "IFSC"},
		minLen:  9, maxLen: 18,
		routing: func(r *rand.Rand) string { return draw.Letters(r, 4) + "0" + draw.Alnum(r, 6) },
	},
	{
		Country: Country{Code: "MX", Format: "CLABE, 18 digits", Routing: "Bank code"},
		minLen:  18, maxLen: 18,
		account: func(r *rand.Rand, _ int) string {
			body := draw.Digits(r, 17)
			return body + strconv.Itoa(clabeDigit(body))
		},
		check: func(account string) bool { return clabeDigit(account[:17]) == int(account[17]-'0') },
	},
	{
		Country: Country{Code: "US", Format: "8-12 digits", Routing: "ABA routing number"},
		minLen:  8, maxLen: 12,
		routing: abaRouting,
	},
}

func lookup(code string) (scheme, bool) {
	code = strings.ToUpper(code)
	i := slices.IndexFunc(schemes, func(s scheme) bool { return s.Code == code })
	if i < 0 {
		return scheme{}, false
	}
	return schemes[i], true
}

// Countries lists the supported schemes.
func Countries() []Country {
	out := make([]Country, 0, len(schemes))
	for _, s := range schemes {
		c := s.Country
		c.Name = countries.Name(c.Code)
		out = append(out, c)
	}
	return out
}

// Generate draws an account for country.
func Generate(country string, r *rand.Rand) (Result, bool) {
	s, ok := lookup(country)
	if !ok {
		return Result{}, false
	}
	n := draw.Between(r, s.minLen, s.maxLen)
	var res Result
	if s.account != nil {
		res.Account = s.account(r, n)
	} else {
		res.Account = draw.NonZeroDigits(r, n)
	}
	switch {
	case s.routing != nil:
		res.Routing = s.routing(r)
	case s.Code == "MX":
		res.Routing = res.Account[:3]
	}
	return res, true
}

// Validate checks account against the country's format and, where the
// scheme has one, its check digit.
func Validate(country, account string) (valid, supported bool) {
	s, ok := lookup(country)
	if !ok {
		return false, false
	}
	account = strings.ReplaceAll(strings.TrimSpace(account), " ", "")
	if len(account) < s.minLen || len(account) > s.maxLen || !checksum.IsDigits(account) {
		return false, true
	}
	if s.check != nil {
		return s.check(account), true
	}
	return true, true
}

// ValidABA reports whether routing is a well-formed US ABA routing number.
func ValidABA(routing string) bool {
	if len(routing) != 9 || !checksum.IsDigits(routing) {
		return false
	}
	return checksum.Weighted(routing, []int{3, 7, 1, 3, 7, 1, 3, 7, 1})%10 == 0
}

func abaRouting(r *rand.Rand) string {
	district := draw.Between(r, 1, 12)
	if r.IntN(2) == 0 {
		district += 20
	}
	body := fmt.Sprintf("%02d", district) + draw.Digits(r, 6)
	sum := checksum.Weighted(body, []int{3, 7, 1, 3, 7, 1, 3, 7})
	return body + strconv.Itoa((10-sum%10)%10)
}

func clabeDigit(body string) int {
	weights := []int{3, 7, 1}
	sum := 0
	for i := 0; i < len(body); i++ {
		sum += (int(body[i]-'0') * weights[i%3]) % 10
	}
	return (10 - sum%10) % 10
}
