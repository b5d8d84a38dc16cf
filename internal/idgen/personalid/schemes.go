package personalid

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/mockbanker/mockbanker/internal/idgen/checksum"
	"github.com/mockbanker/mockbanker/internal/idgen/draw"
)

// estonia: GYYMMDDSSSC, G encodes century and gender.
type estonia struct{}

func (estonia) generate(dob time.Time, male bool, r *rand.Rand) (string, bool) {
	g := (dob.Year()-1800)/100*2 + 1
	if !male {
		g++
	}
	payload := fmt.Sprintf("%d%s%03d", g, dob.Format("060102"), r.IntN(1000))
	return payload + strconv.Itoa(estonianCheck(payload)), true
}

func estonianCheck(payload string) int {
	c := checksum.Weighted(payload, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 1}) % 11
	if c < 10 {
		return c
	}
	c = checksum.Weighted(payload, []int{3, 4, 5, 6, 7, 8, 9, 1, 2, 3}) % 11
	if c == 10 {
		return 0
	}
	return c
}

func (estonia) parse(code string) (Parsed, bool) {
	if len(code) != 11 || !checksum.IsDigits(code) {
		return Parsed{}, false
	}
	g := int(code[0] - '0')
	if g < 1 || g > 8 {
		return Parsed{}, true
	}
	year := 1800 + (g-1)/2*100 + atoi(code[1:3])
	dob, ok := date(year, atoi(code[3:5]), atoi(code[5:7]))
	valid := ok && estonianCheck(code[:10]) == int(code[10]-'0')
	return Parsed{Valid: valid, Gender: genderOf(g%2 == 1), DOB: dob.Format(time.DateOnly)}, true
}

// finland: DDMMYYCZZZQ with century sign C.
type finland struct{}

const finnishChecks = "0123456789ABCDEFHJKLMNPRSTUVWXY"

func (finland) generate(dob time.Time, male bool, r *rand.Rand) (string, bool) {
	var sign byte
	switch dob.Year() / 100 {
	case 18:
		sign = '+'
	case 19:
		sign = '-'
	case 20:
		sign = 'A'
	default:
		return "", false
	}
	n := 2 + r.IntN(449)*2 // 002..898, even
	if male {
		n++
	}
	d := dob.Format("020106")
	z := fmt.Sprintf("%03d", n)
	return d + string(sign) + z + string(finnishChecks[atoi(d+z)%31]), true
}

func (finland) parse(code string) (Parsed, bool) {
	if len(code) != 11 || !checksum.IsDigits(code[:6]) || !checksum.IsDigits(code[7:10]) {
		return Parsed{}, false
	}
	var century int
	switch code[6] {
	case '+':
		century = 1800
	case '-':
		century = 1900
	case 'A':
		century = 2000
	default:
		return Parsed{}, false
	}
	dob, ok := date(century+atoi(code[4:6]), atoi(code[2:4]), atoi(code[0:2]))
	z := atoi(code[7:10])
	valid := ok && z >= 2 && z <= 899 && finnishChecks[atoi(code[:6]+code[7:10])%31] == code[10]
	return Parsed{Valid: valid, Gender: genderOf(z%2 == 1), DOB: dob.Format(time.DateOnly)}, true
}

// sweden: YYYYMMDD-NNNC, Luhn over the ten-digit short form.
type sweden struct{}

func (sweden) generate(dob time.Time, male bool, r *rand.Rand) (string, bool) {
	serial := fmt.Sprintf("%02d%d", r.IntN(100), draw.Odd(r, male))
	if serial == "000" {
		serial = "002"
	}
	short := dob.Format("060102") + serial
	return dob.Format("20060102") + "-" + serial + strconv.Itoa(checksum.LuhnDigit(short)), true
}

func (sweden) parse(code string) (Parsed, bool) {
	code = strings.ReplaceAll(code, "-", "")
	if len(code) != 12 || !checksum.IsDigits(code) {
		return Parsed{}, false
	}
	dob, ok := date(atoi(code[0:4]), atoi(code[4:6]), atoi(code[6:8]))
	valid := ok && checksum.Luhn(code[2:])
	return Parsed{Valid: valid, Gender: genderOf(code[10]%2 == 1), DOB: dob.Format(time.DateOnly)}, true
}

// norway: DDMMYYIIIKK, the individual number range encodes the century.
type norway struct{}

var (
	norwayK1 = []int{3, 7, 6, 1, 8, 9, 4, 5, 2}
	norwayK2 = []int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}
)

func norwayCheck(digits string, weights []int) (int, bool) {
	c := 11 - checksum.Weighted(digits, weights)%11
	switch c {
	case 11:
		return 0, true
	case 10:
		return 0, false
	}
	return c, true
}

func (norway) generate(dob time.Time, male bool, r *rand.Rand) (string, bool) {
	lo, hi := 0, 499
	switch {
	case dob.Year() < 1900:
		lo, hi = 500, 749
	case dob.Year() >= 2000:
		lo, hi = 500, 999
	}
	for range 200 {
		ind := draw.Between(r, lo/10, hi/10)*10 + draw.Odd(r, male)
		if ind < lo || ind > hi {
			continue
		}
		base := dob.Format("020106") + fmt.Sprintf("%03d", ind)
		k1, ok := norwayCheck(base, norwayK1)
		if !ok {
			continue
		}
		k2, ok := norwayCheck(base+strconv.Itoa(k1), norwayK2)
		if !ok {
			continue
		}
		return base + strconv.Itoa(k1) + strconv.Itoa(k2), true
	}
	return "", false
}

func norwayCentury(ind, yy int) (int, bool) {
	switch {
	case ind <= 499:
		return 1900, true
	case ind <= 749 && yy >= 54:
		return 1800, true
	case yy <= 39:
		return 2000, true
	case ind >= 900:
		return 1900, true
	}
	return 0, false
}

func (norway) parse(code string) (Parsed, bool) {
	if len(code) != 11 || !checksum.IsDigits(code) {
		return Parsed{}, false
	}
	ind, yy := atoi(code[6:9]), atoi(code[4:6])
	century, ok := norwayCentury(ind, yy)
	if !ok {
		return Parsed{Gender: genderOf(ind%2 == 1)}, true
	}
	dob, dateOK := date(century+yy, atoi(code[2:4]), atoi(code[0:2]))
	k1, ok1 := norwayCheck(code[:9], norwayK1)
	k2, ok2 := norwayCheck(code[:10], norwayK2)
	valid := dateOK && ok1 && ok2 && k1 == int(code[9]-'0') && k2 == int(code[10]-'0')
	return Parsed{Valid: valid, Gender: genderOf(ind%2 == 1), DOB: dob.Format(time.DateOnly)}, true
}

// belgium: YYMMDDSSSCC, mod 97 with a "2" prefix for births from 2000.
type belgium struct{}

func belgianCheck(base string, y2k bool) int {
	n, _ := strconv.ParseInt(base, 10, 64)
	if y2k {
		n += 2_000_000_000
	}
	return 97 - int(n%97)
}

func (belgium) generate(dob time.Time, male bool, r *rand.Rand) (string, bool) {
	seq := draw.Between(r, 0, 497)*2 + 1 // odd 1..995
	if !male {
		seq++
	}
	base := dob.Format("060102") + fmt.Sprintf("%03d", seq)
	return base + fmt.Sprintf("%02d", belgianCheck(base, dob.Year() >= 2000)), true
}

func (belgium) parse(code string) (Parsed, bool) {
	code = strings.NewReplacer(".", "", "-", "", " ", "").Replace(code)
	if len(code) != 11 || !checksum.IsDigits(code) {
		return Parsed{}, false
	}
	base, cc := code[:9], atoi(code[9:])
	seq := atoi(code[6:9])
	p := Parsed{Gender: genderOf(seq%2 == 1)}
	century := 0
	switch cc {
	case belgianCheck(base, false):
		century = 1900
	case belgianCheck(base, true):
		century = 2000
	default:
		return p, true
	}
	dob, ok := date(century+atoi(code[0:2]), atoi(code[2:4]), atoi(code[4:6]))
	p.DOB = dob.Format(time.DateOnly)
	p.Valid = ok && seq >= 1 && seq <= 998
	return p, true
}

// poland: PESEL, the month carries a century offset.
type poland struct{}

var peselWeights = []int{1, 3, 7, 9, 1, 3, 7, 9, 1, 3}

func peselOffset(year int) int {
	switch year / 100 {
	case 18:
		return 80
	case 20:
		return 20
	case 21:
		return 40
	case 22:
		return 60
	}
	return 0
}

func (poland) generate(dob time.Time, male bool, r *rand.Rand) (string, bool) {
	month := int(dob.Month()) + peselOffset(dob.Year())
	base := fmt.Sprintf("%02d%02d%02d%03d%d", dob.Year()%100, month, dob.Day(), r.IntN(1000), draw.Odd(r, male))
	q := (10 - checksum.Weighted(base, peselWeights)%10) % 10
	return base + strconv.Itoa(q), true
}

func (poland) parse(code string) (Parsed, bool) {
	if len(code) != 11 || !checksum.IsDigits(code) {
		return Parsed{}, false
	}
	m := atoi(code[2:4])
	century := 1900
	switch {
	case m > 80:
		century, m = 1800, m-80
	case m > 60:
		century, m = 2200, m-60
	case m > 40:
		century, m = 2100, m-40
	case m > 20:
		century, m = 2000, m-20
	}
	dob, ok := date(century+atoi(code[0:2]), m, atoi(code[4:6]))
	q := (10 - checksum.Weighted(code[:10], peselWeights)%10) % 10
	valid := ok && q == int(code[10]-'0')
	return Parsed{Valid: valid, Gender: genderOf(code[9]%2 == 1), DOB: dob.Format(time.DateOnly)}, true
}

// spain: DNI, eight digits and a control letter.
type spain struct{}

const dniLetters = "TRWAGMYFPDXBNJZSQVHLCKE"

func (spain) generate(_ time.Time, _ bool, r *rand.Rand) (string, bool) {
	num := draw.Digits(r, 8)
	return num + string(dniLetters[atoi(num)%23]), true
}

func (spain) parse(code string) (Parsed, bool) {
	code = strings.ReplaceAll(code, "-", "")
	if len(code) != 9 || !checksum.IsDigits(code[:8]) {
		return Parsed{}, false
	}
	return Parsed{Valid: dniLetters[atoi(code[:8])%23] == code[8]}, true
}

// unitedStates: SSN, AAA-GG-SSSS with the reserved blocks excluded.
type unitedStates struct{}

func (unitedStates) generate(_ time.Time, _ bool, r *rand.Rand) (string, bool) {
	area := draw.Between(r, 1, 898)
	if area >= 666 {
		area++
	}
	return fmt.Sprintf("%03d-%02d-%04d", area, draw.Between(r, 1, 99), draw.Between(r, 1, 9999)), true
}

func (unitedStates) parse(code string) (Parsed, bool) {
	code = strings.ReplaceAll(code, "-", "")
	if len(code) != 9 || !checksum.IsDigits(code) {
		return Parsed{}, false
	}
	area, group, serial := atoi(code[:3]), atoi(code[3:5]), atoi(code[5:])
	valid := area != 0 && area != 666 && area < 900 && group != 0 && serial != 0
	return Parsed{Valid: valid}, true
}
