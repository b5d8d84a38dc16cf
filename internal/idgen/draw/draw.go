// Package draw holds the small random helpers shared by the identifier
// generators. Every helper takes the caller's *rand.Rand so batches stay
// reproducible for a given seed.
package draw

import (
	"math/rand/v2"
	"strings"
)

const (
	digits   = "0123456789"
	letters  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	alphanum = digits + letters
)

// Digits returns n random decimal digits.
func Digits(r *rand.Rand, n int) string {
	return fromAlphabet(r, digits, n)
}

// NonZeroDigits returns n random digits where the first digit is never zero.
func NonZeroDigits(r *rand.Rand, n int) string {
	if n <= 0 {
		return ""
	}
	return string(digits[1+r.IntN(9)]) + Digits(r, n-1)
}

// Letters returns n random upper-case ASCII letters.
func Letters(r *rand.Rand, n int) string {
	return fromAlphabet(r, letters, n)
}

// Alnum returns n random characters drawn from 0-9A-Z.
func Alnum(r *rand.Rand, n int) string {
	return fromAlphabet(r, alphanum, n)
}

// Between returns an integer in the closed range [lo, hi].
func Between(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

// Pick returns a random element of items. items must not be empty.
func Pick[T any](r *rand.Rand, items []T) T {
	return items[r.IntN(len(items))]
}

// Odd returns a random odd digit when odd is true, an even one otherwise.
func Odd(r *rand.Rand, odd bool) int {
	d := r.IntN(5) * 2
	if odd {
		d++
	}
	return d
}

func fromAlphabet(r *rand.Rand, alphabet string, n int) string {
	var b strings.Builder
	b.Grow(n)
	for range n {
		b.WriteByte(alphabet[r.IntN(len(alphabet))])
	}
	return b.String()
}
