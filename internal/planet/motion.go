package planet

import "github.com/ssingla/astralyogi/internal/zodiac"

// Flags carries the motion status of a body at one moment.
type Flags struct {
	Retrograde bool `json:"retrograde"`
	Combust    bool `json:"combust"`
}

// KetuLongitude returns the south node, always opposite Rahu.
func KetuLongitude(rahu float64) float64 {
	return zodiac.Normalize(rahu + 180)
}

// Retrograde reports apparent backward motion: a negative daily speed.
func Retrograde(speed float64) bool {
	return speed < 0
}

// CombustionOrb returns the maximum distance from the Sun, in degrees, at
// which body counts as combust. The Sun, Moon and the nodes have no orb.
func CombustionOrb(b Body) (float64, bool) {
	switch b {
	case Mercury:
		return 12, true
	case Venus:
		return 10, true
	case Mars, Jupiter, Saturn:
		return 15, true
	default:
		return 0, false
	}
}

// Combust reports whether body at lon lies strictly inside its combustion
// orb of the Sun at sunLon.
func Combust(b Body, lon, sunLon float64) bool {
	orb, ok := CombustionOrb(b)
	if !ok {
		return false
	}
	return zodiac.Separation(lon, sunLon) < orb
}

// Status classifies one body. Ketu has no sample of its own and is always
// retrograde and never combust, whatever speed is passed.
func Status(b Body, lon, speed, sunLon float64) Flags {
	if b == Ketu {
		return Flags{Retrograde: true}
	}
	return Flags{
		Retrograde: Retrograde(speed),
		Combust:    Combust(b, lon, sunLon),
	}
}
