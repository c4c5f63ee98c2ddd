// Package dasha computes the Vimshottari mahadasha timeline: a 120-year
// cycle of nine planetary periods anchored by the Moon's nakshatra at birth.
package dasha

import (
	"math"
	"time"

	"github.com/ssingla/astralyogi/internal/planet"
	"github.com/ssingla/astralyogi/internal/zodiac"
)

// DaysPerYear converts nominal dasha years into calendar days.
const DaysPerYear = 365.25

// CycleYears is the length of the full Vimshottari cycle.
const CycleYears = 120

// lordCount is the number of dasha lords.
const lordCount = 9

// sequence is the fixed lord cycle; nakshatra n is ruled by sequence[n mod 9].
var sequence = [lordCount]planet.Body{
	planet.Ketu, planet.Venus, planet.Sun, planet.Moon, planet.Mars,
	planet.Rahu, planet.Jupiter, planet.Saturn, planet.Mercury,
}

var nominalYears = map[planet.Body]float64{
	planet.Ketu:    7,
	planet.Venus:   20,
	planet.Sun:     6,
	planet.Moon:    10,
	planet.Mars:    7,
	planet.Rahu:    18,
	planet.Jupiter: 16,
	planet.Saturn:  19,
	planet.Mercury: 17,
}

// Sequence returns the lord cycle starting at Ketu.
func Sequence() []planet.Body {
	out := make([]planet.Body, lordCount)
	copy(out, sequence[:])
	return out
}

// Years returns the nominal allotment of a lord, or 0 for a body that rules
// no dasha.
func Years(lord planet.Body) float64 {
	return nominalYears[lord]
}

// LordOf returns the dasha lord ruling a nakshatra.
func LordOf(n zodiac.Nakshatra) planet.Body {
	return sequence[int(n)%lordCount]
}

// Period is one mahadasha. End is exclusive.
type Period struct {
	Lord  planet.Body `json:"lord"`
	Start time.Time   `json:"start"`
	End   time.Time   `json:"end"`
}

// Contains reports whether t falls inside [Start, End).
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Days returns the length of the period in whole days.
func (p Period) Days() int {
	return int(math.Round(p.End.Sub(p.Start).Hours() / 24))
}

// Timeline is a contiguous run of nine mahadashas starting at birth.
type Timeline struct {
	Periods []Period `json:"periods"`
	// StartLord rules the birth nakshatra and the partial first period.
	StartLord planet.Body `json:"start_lord"`
	// Elapsed is the fraction of the birth nakshatra the Moon had already
	// traversed, in [0,1).
	Elapsed float64 `json:"elapsed"`
}

// Compute builds the mahadasha timeline for a Moon longitude and birth
// date. Only the calendar date of birth is used; the time of day and
// location are dropped and periods start at UTC midnight.
func Compute(moonLon float64, birth time.Time) Timeline {
	nak := zodiac.NakshatraOf(moonLon)
	start := int(nak) % lordCount
	elapsed := (moonLon - float64(nak)*zodiac.NakshatraSpan) / zodiac.NakshatraSpan
	elapsed = math.Min(math.Max(elapsed, 0), math.Nextafter(1, 0))

	cursor := DateOf(birth)
	periods := make([]Period, 0, lordCount)
	for i := 0; i < lordCount; i++ {
		lord := sequence[(start+i)%lordCount]
		years := nominalYears[lord]
		if i == 0 {
			years *= 1 - elapsed
		}
		end := cursor.AddDate(0, 0, int(math.Round(years*DaysPerYear)))
		periods = append(periods, Period{Lord: lord, Start: cursor, End: end})
		cursor = end
	}

	return Timeline{
		Periods:   periods,
		StartLord: sequence[start],
		Elapsed:   elapsed,
	}
}

// Current returns the period containing at. Period bounds are calendar
// dates, so at is reduced to its calendar date in its own location: pass
// a time in the zone whose "today" should be looked up, as time.Now does.
// Dates before the timeline resolve to the first period and dates on or
// after its end resolve to the last; the cycle does not repeat past 120
// years.
func (tl Timeline) Current(at time.Time) Period {
	if len(tl.Periods) == 0 {
		return Period{}
	}
	day := DateOf(at)
	if day.Before(tl.Periods[0].Start) {
		return tl.Periods[0]
	}
	for _, p := range tl.Periods {
		if p.Contains(day) {
			return p
		}
	}
	return tl.Periods[len(tl.Periods)-1]
}

// End returns the exclusive end of the final period.
func (tl Timeline) End() time.Time {
	if len(tl.Periods) == 0 {
		return time.Time{}
	}
	return tl.Periods[len(tl.Periods)-1].End
}

// DateOf returns the calendar date of t in t's location, as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
