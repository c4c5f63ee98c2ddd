package zodiac

import "math"

// House returns the whole-sign-width house (1..12) of body counted from the
// ascendant: floor(((body − asc) mod 360) / 30) + 1. A body exactly on the
// ascendant is in house 1.
func House(asc, body float64) int {
	offset := Normalize(body - asc)
	return clampIndex(int(math.Floor(offset/SignSpan)), signCount) + 1
}

// RelativeHouse renumbers house so that origin becomes house 1.
func RelativeHouse(house, origin int) int {
	return ((house-origin)%signCount+signCount)%signCount + 1
}
