package driverlicense

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestGenerate_RoundTrip(t *testing.T) {
	for _, c := range Countries() {
		t.Run(c.Code, func(t *testing.T) {
			rapid.Check(t, func(t *rapid.T) {
				r := rand.New(rand.NewPCG(rapid.Uint64().Draw(t, "seed"), 7))
				res, ok := Generate(c.Code, "", r)
				require.True(t, ok)
				valid, supported := Validate(c.Code, res.Code)
				require.True(t, supported)
				require.True(t, valid, res.Code)
			})
		})
	}
}

func TestGenerate_USState(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 1))
	for _, st := range States() {
		res, ok := Generate("US", st.Code, r)
		require.True(t, ok)
		require.Equal(t, st.Code, res.State)
	}

	res, ok := Generate("US", "", r)
	require.True(t, ok)
	require.NotEmpty(t, res.State)

	_, ok = Generate("US", "ZZ", r)
	require.False(t, ok, "unknown state")

	_, ok = Generate("GB", "CA", r)
	require.False(t, ok, "state given for a national layout")
}

func TestValidate(t *testing.T) {
	valid, _ := Validate("GB", "MORGA753116SM9IJ")
	require.True(t, valid)
	valid, _ = Validate("GB", "MORGA753116SM9I1")
	require.False(t, valid)

	valid, _ = Validate("US", "A1234567")
	require.True(t, valid)

	_, supported := Validate("ZZ", "A1234567")
	require.False(t, supported)
}
