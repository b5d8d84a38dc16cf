package draw

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDigits_SameSeedSameOutput(t *testing.T) {
	a := Digits(rand.New(rand.NewPCG(7, 7)), 32)
	b := Digits(rand.New(rand.NewPCG(7, 7)), 32)
	require.Equal(t, a, b)
	require.Len(t, a, 32)
}

func TestNonZeroDigits_LeadingDigit(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := rand.New(rand.NewPCG(rapid.Uint64().Draw(t, "seed"), 1))
		n := rapid.IntRange(1, 20).Draw(t, "n")
		s := NonZeroDigits(r, n)
		require.Len(t, s, n)
		require.NotEqual(t, byte('0'), s[0])
	})
}

func TestBetween_StaysInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := rand.New(rand.NewPCG(rapid.Uint64().Draw(t, "seed"), 2))
		lo := rapid.IntRange(-100, 100).Draw(t, "lo")
		hi := rapid.IntRange(lo, lo+100).Draw(t, "hi")
		v := Between(r, lo, hi)
		require.GreaterOrEqual(t, v, lo)
		require.LessOrEqual(t, v, hi)
	})
}

func TestOdd_Parity(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 50 {
		require.Equal(t, 1, Odd(r, true)%2)
		require.Equal(t, 0, Odd(r, false)%2)
	}
}

func TestLettersAndAlnum_Alphabet(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for _, c := range Letters(r, 100) {
		require.True(t, c >= 'A' && c <= 'Z')
	}
	for _, c := range Alnum(r, 100) {
		require.True(t, (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9'))
	}
}
