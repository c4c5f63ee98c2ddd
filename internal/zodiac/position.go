package zodiac

import (
	"fmt"
	"math"
)

// Position is the sign/nakshatra breakdown of a single longitude.
type Position struct {
	Longitude float64   `json:"longitude"`
	Sign      Sign      `json:"sign"`
	Degrees   int       `json:"degrees"`
	Minutes   int       `json:"minutes"`
	Nakshatra Nakshatra `json:"nakshatra"`
	Pada      int       `json:"pada"`
}

// Classify breaks a longitude into sign, degrees and minutes within the
// sign, nakshatra and pada. Degrees and minutes are truncated, not rounded.
//
// lon must already be in [0,360); Classify does not re-normalize.
func Classify(lon float64) Position {
	inSign := math.Mod(lon, SignSpan)
	deg := math.Floor(inSign)
	return Position{
		Longitude: lon,
		Sign:      SignOf(lon),
		Degrees:   int(deg),
		Minutes:   int(math.Floor((inSign - deg) * 60)),
		Nakshatra: NakshatraOf(lon),
		Pada:      PadaOf(lon),
	}
}

// SignOf returns floor(lon/30) as a Sign.
func SignOf(lon float64) Sign {
	return Sign(clampIndex(int(math.Floor(lon/SignSpan)), signCount))
}

// NakshatraOf returns floor(lon/(360/27)) as a Nakshatra.
func NakshatraOf(lon float64) Nakshatra {
	return Nakshatra(clampIndex(int(math.Floor(lon/NakshatraSpan)), nakshatraCount))
}

// PadaOf returns the nakshatra quarter of lon, always in 1..4.
func PadaOf(lon float64) int {
	q := int(math.Floor(math.Mod(lon, NakshatraSpan) / PadaSpan))
	return clampIndex(q, 4) + 1
}

// DegreeString formats the in-sign offset as "15°0′".
func (p Position) DegreeString() string {
	return fmt.Sprintf("%d°%d′", p.Degrees, p.Minutes)
}

// String formats the position as "Taurus 15°0′".
func (p Position) String() string {
	return p.Sign.String() + " " + p.DegreeString()
}

// clampIndex keeps floating-point edge cases at the top of a range from
// producing an out-of-table index.
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
