package personalid

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParse_KnownIdentifiers(t *testing.T) {
	tests := []struct {
		country string
		code    string
		gender  string
		dob     string
	}{
		{"EE", "37605030299", Male, "1976-05-03"},
		{"FI", "131052-308T", Female, "1952-10-13"},
		{"PL", "44051401359", Male, "1944-05-14"},
		{"SE", "19811218-9876", Male, "1981-12-18"},
		{"NO", "15058512181", Male, "1985-05-15"},
		{"NO", "01010550048", Female, "2005-01-01"},
		{"BE", "85073003328", Male, "1985-07-30"},
		{"BE", "17010100171", Male, "2017-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.country+"/"+tt.code, func(t *testing.T) {
			p, ok := Parse(tt.country, tt.code)
			require.True(t, ok)
			require.True(t, p.Valid)
			require.Equal(t, tt.gender, p.Gender)
			require.Equal(t, tt.dob, p.DOB)
		})
	}
}

func TestValidate_Rejections(t *testing.T) {
	valid, supported := Validate("EE", "37605030298")
	require.True(t, supported)
	require.False(t, valid)

	valid, supported = Validate("EE", "not-an-id")
	require.True(t, supported)
	require.False(t, valid)

	_, supported = Validate("ZZ", "37605030299")
	require.False(t, supported)

	valid, _ = Validate("ES", "12345678Z")
	require.True(t, valid)
	valid, _ = Validate("ES", "12345678A")
	require.False(t, valid)

	valid, _ = Validate("US", "666-12-3456")
	require.False(t, valid)
}

func TestGenerate_RoundTripsEveryCountry(t *testing.T) {
	for _, c := range Countries() {
		t.Run(c.Code, func(t *testing.T) {
			rapid.Check(t, func(t *rapid.T) {
				r := rand.New(rand.NewPCG(rapid.Uint64().Draw(t, "seed"), 11))
				res, ok := Generate(c.Code, Options{}, r)
				require.True(t, ok)
				valid, supported := Validate(c.Code, res.Code)
				require.True(t, supported)
				require.True(t, valid, res.Code)
				if c.Encoded {
					p, ok := Parse(c.Code, res.Code)
					require.True(t, ok)
					require.Equal(t, res.Gender, p.Gender)
					require.Equal(t, res.DOB, p.DOB)
				}
			})
		})
	}
}

func TestGenerate_HonoursGenderAndYear(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 5))
	for _, c := range Countries() {
		if !c.Encoded {
			continue
		}
		for _, year := range []int{c.MinYear, c.MaxYear} {
			for _, g := range []string{Male, Female} {
				res, ok := Generate(c.Code, Options{Gender: g, Year: year}, r)
				require.True(t, ok, "%s %d %s", c.Code, year, g)
				require.Equal(t, g, res.Gender)
				require.Equal(t, year, atoi(res.DOB[:4]))
				valid, _ := Validate(c.Code, res.Code)
				require.True(t, valid, res.Code)
			}
		}
	}
}

func TestGenerate_Failures(t *testing.T) {
	r := rand.New(rand.NewPCG(9, 9))

	_, ok := Generate("EE", Options{Year: 1700}, r)
	require.False(t, ok, "year outside representable range")

	_, ok = Generate("ZZ", Options{}, r)
	require.False(t, ok, "unsupported country")

	_, ok = Generate("EE", Options{Gender: "other"}, r)
	require.False(t, ok, "unknown gender")
}

func TestGenerate_Deterministic(t *testing.T) {
	a, _ := Generate("FI", Options{}, rand.New(rand.NewPCG(42, 0)))
	b, _ := Generate("FI", Options{}, rand.New(rand.NewPCG(42, 0)))
	require.Equal(t, a, b)
}
