// Package ephemeris defines the boundary to the numerical ephemeris that
// supplies sidereal longitudes, daily speeds and the ascendant.
//
// The chart engine never solves positions itself. Every query carries the
// sidereal frame and the observer explicitly; engines that can only be
// configured process-wide are adapted through Serialized.
package ephemeris

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ssingla/astralyogi/internal/planet"
)

var (
	// ErrNoData indicates the provider has no positions for the moment asked.
	ErrNoData = errors.New("no ephemeris data for moment")
	// ErrIncomplete indicates a snapshot is missing a requested body.
	ErrIncomplete = errors.New("ephemeris snapshot incomplete")
)

// Frame names a sidereal reference (ayanamsa).
type Frame string

// Lahiri is the Chitrapaksha ayanamsa, the only frame the engine uses.
const Lahiri Frame = "lahiri"

// Moment is a calendar date plus a UTC decimal hour.
type Moment struct {
	Year  int        `json:"year" toml:"year"`
	Month time.Month `json:"month" toml:"month"`
	Day   int        `json:"day" toml:"day"`
	Hour  float64    `json:"hour" toml:"hour"`
}

// MomentOf converts t to a UTC moment.
func MomentOf(t time.Time) Moment {
	u := t.UTC()
	y, m, d := u.Date()
	hour := float64(u.Hour()) + float64(u.Minute())/60 + float64(u.Second())/3600 +
		float64(u.Nanosecond())/3.6e12
	return Moment{Year: y, Month: m, Day: d, Hour: hour}
}

// Time returns the moment as a UTC time, rounded to the second.
func (m Moment) Time() time.Time {
	secs := math.Round(m.Hour * 3600)
	return time.Date(m.Year, m.Month, m.Day, 0, 0, 0, 0, time.UTC).Add(time.Duration(secs) * time.Second)
}

// String formats the moment as "2006-01-02 15:04:05 UTC".
func (m Moment) String() string {
	return m.Time().Format("2006-01-02 15:04:05") + " UTC"
}

// Observer is a geographic position in degrees, east and north positive.
type Observer struct {
	Latitude  float64 `json:"latitude" toml:"latitude"`
	Longitude float64 `json:"longitude" toml:"longitude"`
}

// Query asks for the positions of bodies at one moment.
type Query struct {
	Moment   Moment
	Observer Observer
	Frame    Frame
	Bodies   []planet.Body
}

// Sample is one body's sidereal longitude and signed daily speed.
type Sample struct {
	Body      planet.Body `json:"body"`
	Longitude float64     `json:"longitude"`
	Speed     float64     `json:"speed"`
}

// Snapshot is the answer to a Query.
type Snapshot struct {
	Ascendant float64
	Samples   map[planet.Body]Sample
}

// Sample returns the sample for b, if present.
func (s *Snapshot) Sample(b planet.Body) (Sample, bool) {
	if s == nil {
		return Sample{}, false
	}
	smp, ok := s.Samples[b]
	return smp, ok
}

// Require checks that every body in bodies has a sample.
func (s *Snapshot) Require(bodies []planet.Body) error {
	for _, b := range bodies {
		if _, ok := s.Sample(b); !ok {
			return fmt.Errorf("%w: missing %s", ErrIncomplete, b)
		}
	}
	return nil
}

// Provider answers position queries. Implementations must not depend on
// state set by earlier calls.
type Provider interface {
	Positions(ctx context.Context, q Query) (*Snapshot, error)
}

// Batcher is implemented by providers that answer several queries as one
// unit, for example under a single lock.
type Batcher interface {
	PositionsBatch(ctx context.Context, qs []Query) ([]*Snapshot, error)
}

// Snapper is implemented by providers that hold positions for a fixed set
// of moments. Nearest names the held moment closest to t that can answer
// for obs.
type Snapper interface {
	Nearest(t time.Time, obs Observer) (Moment, bool)
}

// Snap returns the moment p should be asked for in place of t. It reports
// false when p is not a Snapper or holds nothing usable, in which case the
// caller asks for t itself.
func Snap(p Provider, t time.Time, obs Observer) (Moment, bool) {
	s, ok := p.(Snapper)
	if !ok {
		return Moment{}, false
	}
	return s.Nearest(t, obs)
}

// Fetch answers qs in order, as one batch when p supports it.
func Fetch(ctx context.Context, p Provider, qs ...Query) ([]*Snapshot, error) {
	if b, ok := p.(Batcher); ok {
		return b.PositionsBatch(ctx, qs)
	}
	out := make([]*Snapshot, 0, len(qs))
	for _, q := range qs {
		snap, err := p.Positions(ctx, q)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, nil
}
