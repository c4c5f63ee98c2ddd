// Package chart assembles a complete Vedic birth chart from a request:
// placements, Vimshottari dasha, divisional charts, display grids, yogas
// and a transit snapshot.
//
// A Chart is built in one pass by an Assembler and never modified after.
package chart

import (
	"time"

	"github.com/ssingla/astralyogi/internal/dasha"
	"github.com/ssingla/astralyogi/internal/geocode"
	"github.com/ssingla/astralyogi/internal/grid"
	"github.com/ssingla/astralyogi/internal/planet"
	"github.com/ssingla/astralyogi/internal/yoga"
	"github.com/ssingla/astralyogi/internal/zodiac"
)

// Point is one body's placement.
type Point struct {
	Body planet.Body `json:"body"`
	zodiac.Position
	House      int  `json:"house"`
	Retrograde bool `json:"retrograde"`
	Combust    bool `json:"combust"`
}

// Ascendant is the rising degree. It carries no house, nakshatra or pada.
type Ascendant struct {
	Longitude float64     `json:"longitude"`
	Sign      zodiac.Sign `json:"sign"`
	Degrees   int         `json:"degrees"`
	Minutes   int         `json:"minutes"`
}

func ascendantOf(lon float64) Ascendant {
	p := zodiac.Classify(lon)
	return Ascendant{Longitude: lon, Sign: p.Sign, Degrees: p.Degrees, Minutes: p.Minutes}
}

// String formats the ascendant as "Libra 21°30′".
func (a Ascendant) String() string {
	return zodiac.Position{Sign: a.Sign, Degrees: a.Degrees, Minutes: a.Minutes}.String()
}

// Divisional is one varga chart.
type Divisional struct {
	N     int                         `json:"n"`
	Name  string                      `json:"name"`
	Signs map[planet.Body]zodiac.Sign `json:"signs"`
}

// Transit holds the positions at the build moment, housed from the birth
// ascendant.
type Transit struct {
	At     time.Time `json:"at"`
	Points []Point   `json:"points"`
}

// Chart is the assembled, read-only result of a build.
type Chart struct {
	ID           string           `json:"id"`
	Name         string           `json:"name,omitempty"`
	Birth        time.Time        `json:"birth"`
	Location     geocode.Location `json:"location"`
	Ascendant    Ascendant        `json:"ascendant"`
	Points       []Point          `json:"points"`
	Dasha        dasha.Timeline   `json:"dasha"`
	CurrentDasha dasha.Period     `json:"current_dasha"`
	Divisionals  []Divisional     `json:"divisionals"`
	Grids        grid.Set         `json:"grids"`
	Yogas        []yoga.Yoga      `json:"yogas"`
	Transit      Transit          `json:"transit"`
}

// Point returns the placement of b.
func (c *Chart) Point(b planet.Body) (Point, bool) {
	return findPoint(c.Points, b)
}

// Divisional returns the divisional chart for factor n, if built.
func (c *Chart) Divisional(n int) (Divisional, bool) {
	for _, d := range c.Divisionals {
		if d.N == n {
			return d, true
		}
	}
	return Divisional{}, false
}

// Sign implements yoga.Placements.
func (c *Chart) Sign(b planet.Body) (zodiac.Sign, bool) {
	p, ok := c.Point(b)
	return p.Sign, ok
}

// House implements yoga.Placements.
func (c *Chart) House(b planet.Body) (int, bool) {
	p, ok := c.Point(b)
	return p.House, ok
}

// Point returns the transit placement of b.
func (t Transit) Point(b planet.Body) (Point, bool) {
	return findPoint(t.Points, b)
}

func findPoint(points []Point, b planet.Body) (Point, bool) {
	for _, p := range points {
		if p.Body == b {
			return p, true
		}
	}
	return Point{}, false
}
