package chart

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ssingla/astralyogi/internal/ephemeris"
	"github.com/ssingla/astralyogi/internal/zodiac"
)

// Layouts accepted for the birth date and time of day.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// MaxTZOffset bounds the UTC offset in hours.
const MaxTZOffset = 14.0

// DefaultTZOffset is Indian Standard Time.
const DefaultTZOffset = 5.5

// Request is the immutable input of one chart build.
type Request struct {
	Name string
	// Date is the local birth date, YYYY-MM-DD.
	Date string
	// Time is the local time of birth, HH:MM on a 24-hour clock.
	Time string
	City string
	// TZOffset is the local offset from UTC in hours, east positive.
	TZOffset float64
	// AdjustDST subtracts a further half hour from TZOffset for births
	// before 2000.
	AdjustDST bool
	// Divisions lists extra divisional charts. D9 and D10 are always built.
	Divisions []int
}

// ParseMoment converts a local date, time and offset into the birth
// instant and the matching UTC ephemeris moment.
func ParseMoment(date, clock string, tzOffset float64, adjustDST bool) (time.Time, ephemeris.Moment, error) {
	local, err := time.Parse(DateLayout+" "+TimeLayout, strings.TrimSpace(date)+" "+strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}, ephemeris.Moment{}, fmt.Errorf("%w: %q %q: %w", ErrInvalidMoment, date, clock, err)
	}
	if math.IsNaN(tzOffset) || math.Abs(tzOffset) > MaxTZOffset {
		return time.Time{}, ephemeris.Moment{}, fmt.Errorf("%w: offset %v outside ±%v hours", ErrInvalidMoment, tzOffset, MaxTZOffset)
	}
	if adjustDST && local.Year() < 2000 {
		tzOffset -= 0.5
	}

	secs := int(math.Round(tzOffset * 3600))
	zone := time.FixedZone(zoneName(secs), secs)
	birth := time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), local.Minute(), 0, 0, zone)
	return birth, ephemeris.MomentOf(birth), nil
}

// zoneName formats an offset as "UTC+05:30".
func zoneName(secs int) string {
	sign := '+'
	if secs < 0 {
		sign = '-'
		secs = -secs
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, secs/3600, secs%3600/60)
}

// divisions returns the requested factors plus D9 and D10, deduplicated
// and ascending.
func divisions(requested []int) ([]int, error) {
	seen := map[int]bool{zodiac.D9: true, zodiac.D10: true}
	for _, n := range requested {
		if n < 1 {
			return nil, fmt.Errorf("%w: division %d must be at least 1", ErrInvalidRequest, n)
		}
		seen[n] = true
	}
	out := make([]int, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Ints(out)
	return out, nil
}
