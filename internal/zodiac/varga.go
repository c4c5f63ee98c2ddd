package zodiac

import (
	"math"
	"strconv"
)

// Commonly requested divisions.
const (
	D1  = 1  // Rashi, the birth chart itself
	D9  = 9  // Navamsha
	D10 = 10 // Dasamsa
)

// Divisional returns the varga sign of lon for division n: each sign is
// split into n equal segments and the segment index is counted onward from
// the sign's own position times n. n must be at least 1; D1 reproduces
// SignOf.
func Divisional(lon float64, n int) Sign {
	if n < 1 {
		n = 1
	}
	segment := SignSpan / float64(n)
	local := clampIndex(int(math.Floor(math.Mod(lon, SignSpan)/segment)), n)
	base := int(SignOf(lon))
	return Sign((base*n + local) % signCount)
}

// DivisionName returns the conventional "Dn" label for a division.
func DivisionName(n int) string {
	return "D" + strconv.Itoa(n)
}
