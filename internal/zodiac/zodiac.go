// Package zodiac classifies sidereal ecliptic longitudes into signs,
// nakshatras and padas, maps bodies into ascendant-relative houses, and
// derives divisional (varga) signs.
//
// All functions are pure. Longitudes are degrees in [0,360); callers are
// expected to normalize with Normalize before classifying.
package zodiac

import (
	"fmt"
	"math"
	"strings"
)

const (
	// FullCircle is the number of degrees in the ecliptic.
	FullCircle = 360.0
	// SignSpan is the width of one zodiac sign in degrees.
	SignSpan = 30.0
	// NakshatraSpan is the width of one nakshatra (13°20′).
	NakshatraSpan = FullCircle / 27
	// PadaSpan is the width of one nakshatra quarter (3°20′).
	PadaSpan = NakshatraSpan / 4
)

// Sign is one of the twelve zodiac signs, starting at Aries.
type Sign int

// Signs in ecliptic order.
const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// signCount is the number of zodiac signs.
const signCount = 12

var signNames = [signCount]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// String returns the English sign name.
func (s Sign) String() string {
	if s >= 0 && int(s) < signCount {
		return signNames[s]
	}
	return fmt.Sprintf("Sign(%d)", int(s))
}

// MarshalText encodes the sign by name.
func (s Sign) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Signs returns all twelve signs in ecliptic order.
func Signs() []Sign {
	out := make([]Sign, signCount)
	for i := range out {
		out[i] = Sign(i)
	}
	return out
}

// ParseSign looks up a sign by its English name, ignoring case.
func ParseSign(name string) (Sign, error) {
	for i, n := range signNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Sign(i), nil
		}
	}
	return 0, fmt.Errorf("zodiac: unknown sign %q", name)
}

// Nakshatra is one of the 27 lunar mansions, starting at Ashwini.
type Nakshatra int

// nakshatraCount is the number of lunar mansions.
const nakshatraCount = 27

var nakshatraNames = [nakshatraCount]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni",
	"Hasta", "Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha",
	"Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana", "Dhanishta", "Shatabhisha",
	"Purva Bhadrapada", "Uttara Bhadrapada", "Revati",
}

// String returns the nakshatra name.
func (n Nakshatra) String() string {
	if n >= 0 && int(n) < nakshatraCount {
		return nakshatraNames[n]
	}
	return fmt.Sprintf("Nakshatra(%d)", int(n))
}

// MarshalText encodes the nakshatra by name.
func (n Nakshatra) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// Normalize folds any finite angle into [0,360).
func Normalize(deg float64) float64 {
	m := math.Mod(deg, FullCircle)
	if m < 0 {
		m += FullCircle
	}
	// -1e-15 + 360 rounds to 360 in float64.
	if m >= FullCircle {
		m = 0
	}
	return m
}

// Separation returns the shorter arc between two longitudes, in [0,180].
func Separation(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), FullCircle)
	return math.Min(d, FullCircle-d)
}
