// Package checksum implements the check-digit schemes used by the identifier
// generators: Luhn, ISO 7064 MOD 97-10, ISO 7064 MOD 11,10 and plain weighted
// digit sums.
package checksum

import "fmt"

// IsDigits reports whether s is non-empty and made only of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// IsUpperAlnum reports whether s is non-empty and made only of 0-9A-Z.
func IsUpperAlnum(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// LuhnDigit returns the Luhn check digit to append to payload.
// payload must consist of digits only.
func LuhnDigit(payload string) int {
	sum := 0
	double := true
	for i := len(payload) - 1; i >= 0; i-- {
		d := int(payload[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return (10 - sum%10) % 10
}

// Luhn reports whether s passes the Luhn check.
func Luhn(s string) bool {
	if len(s) < 2 || !IsDigits(s) {
		return false
	}
	return LuhnDigit(s[:len(s)-1]) == int(s[len(s)-1]-'0')
}

// Mod97 computes the remainder of the decimal expansion of s modulo 97, where
// letters expand to two digits (A=10 ... Z=35). ok is false if s contains any
// other character.
func Mod97(s string) (rem int, ok bool) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			rem = (rem*10 + int(c-'0')) % 97
		case c >= 'A' && c <= 'Z':
			rem = (rem*100 + int(c-'A') + 10) % 97
		default:
			return 0, false
		}
	}
	return rem, true
}

// Mod97Digits returns the two ISO 7064 MOD 97-10 check digits for payload, as
// used by IBAN (after rearrangement) and LEI.
func Mod97Digits(payload string) (string, bool) {
	rem, ok := Mod97(payload + "00")
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%02d", 98-rem), true
}

// Mod97Valid reports whether s carries valid trailing MOD 97-10 check digits.
func Mod97Valid(s string) bool {
	rem, ok := Mod97(s)
	return ok && rem == 1
}

// Mod11_10Digit returns the ISO 7064 MOD 11,10 check digit for payload.
func Mod11_10Digit(payload string) int {
	p := 10
	for i := 0; i < len(payload); i++ {
		s := (int(payload[i]-'0') + p) % 10
		if s == 0 {
			s = 10
		}
		p = (2 * s) % 11
	}
	return (11 - p) % 10
}

// Weighted returns the sum of digits[i]*weights[i]. Extra digits or weights
// are ignored.
func Weighted(digits string, weights []int) int {
	sum := 0
	for i := 0; i < len(digits) && i < len(weights); i++ {
		sum += int(digits[i]-'0') * weights[i]
	}
	return sum
}
