// Package yoga detects named planetary combinations in an assembled chart.
//
// Each rule is an independent predicate over body placements carrying a
// fixed strength score. Scores are static per rule and do not reflect the
// strength of the bodies involved.
package yoga

import (
	"github.com/ssingla/astralyogi/internal/planet"
	"github.com/ssingla/astralyogi/internal/zodiac"
)

// Placements exposes the sign and house of each body in a chart. The
// second result is false when the body is not part of the chart.
type Placements interface {
	Sign(b planet.Body) (zodiac.Sign, bool)
	House(b planet.Body) (int, bool)
}

// Yoga is a detected combination.
type Yoga struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Rule is a single named combination check.
type Rule struct {
	Name  string
	Score float64
	Match func(p Placements) bool
}

// Detector evaluates a set of rules against a chart.
type Detector struct {
	Rules []Rule
}

// NewDetector returns a detector with the built-in rules.
func NewDetector() *Detector {
	return &Detector{Rules: DefaultRules()}
}

// Detect runs every rule and returns the matches in rule order. Rules do
// not see each other's results, so the set of matches does not depend on
// that order. No match yields an empty, non-nil slice.
func (d *Detector) Detect(p Placements) []Yoga {
	found := make([]Yoga, 0, len(d.Rules))
	for _, r := range d.Rules {
		if r.Match == nil || !r.Match(p) {
			continue
		}
		found = append(found, Yoga{Name: r.Name, Score: r.Score})
	}
	return found
}

// DefaultRules returns the built-in rule set.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "Budh-Aditya", Score: 4.5, Match: budhAditya},
		{Name: "Gajakesari", Score: 4.2, Match: gajakesari},
	}
}

// budhAditya: the Sun and Mercury occupy the same sign.
func budhAditya(p Placements) bool {
	sun, ok := p.Sign(planet.Sun)
	if !ok {
		return false
	}
	mercury, ok := p.Sign(planet.Mercury)
	return ok && sun == mercury
}

// gajakesari: Jupiter is in a kendra (1st, 4th, 7th or 10th) from the Moon.
func gajakesari(p Placements) bool {
	moon, ok := p.House(planet.Moon)
	if !ok {
		return false
	}
	jupiter, ok := p.House(planet.Jupiter)
	if !ok {
		return false
	}
	switch abs(moon - jupiter) {
	case 0, 3, 6, 9:
		return true
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
