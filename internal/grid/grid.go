// Package grid groups chart bodies into display cells: by house from the
// ascendant (Lagna), by house from the Moon, by bhava (Chalit) and by
// navamsha sign.
package grid

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/ssingla/astralyogi/internal/planet"
	"github.com/ssingla/astralyogi/internal/zodiac"
)

// Kind selects the grouping rule of a grid.
type Kind string

// Grid kinds.
const (
	Lagna    Kind = "lagna"
	Moon     Kind = "moon"
	Chalit   Kind = "chalit"
	Navamsha Kind = "navamsha"
)

// Kinds returns every grid kind in display order.
func Kinds() []Kind {
	return []Kind{Lagna, Moon, Chalit, Navamsha}
}

// Placement is the per-body input to every grid.
type Placement struct {
	Body     planet.Body
	House    int
	Navamsha zodiac.Sign
}

// Grid maps a group key (a house number or a sign name) to the bodies in
// that cell. Bodies keep the order they were supplied in.
type Grid struct {
	Kind  Kind
	cells map[string][]planet.Body
	rank  map[string]int
}

// Build groups placements under kind's rule. Placements are expected in
// canonical body order.
//
// The Chalit grid uses the same key as the Lagna grid: houses here are
// equal 30° spans from the ascendant, and no cusp-based bhava refinement is
// applied, so the two grids are identical.
func Build(kind Kind, placements []Placement) Grid {
	g := Grid{
		Kind:  kind,
		cells: make(map[string][]planet.Body),
		rank:  make(map[string]int),
	}

	moonHouse, hasMoon := 0, false
	for _, p := range placements {
		if p.Body == planet.Moon {
			moonHouse, hasMoon = p.House, true
		}
	}
	if kind == Moon && !hasMoon {
		return g
	}

	for _, p := range placements {
		var key string
		var rank int
		switch kind {
		case Moon:
			rank = zodiac.RelativeHouse(p.House, moonHouse)
			key = strconv.Itoa(rank)
		case Navamsha:
			rank = int(p.Navamsha)
			key = p.Navamsha.String()
		default:
			rank = p.House
			key = strconv.Itoa(rank)
		}
		g.cells[key] = append(g.cells[key], p.Body)
		g.rank[key] = rank
	}
	return g
}

// Set holds the four grids of one chart.
type Set struct {
	Lagna    Grid `json:"lagna"`
	Moon     Grid `json:"moon"`
	Chalit   Grid `json:"chalit"`
	Navamsha Grid `json:"navamsha"`
}

// BuildAll builds every grid kind from the same placements.
func BuildAll(placements []Placement) Set {
	return Set{
		Lagna:    Build(Lagna, placements),
		Moon:     Build(Moon, placements),
		Chalit:   Build(Chalit, placements),
		Navamsha: Build(Navamsha, placements),
	}
}

// Get returns the grid of a kind.
func (s Set) Get(kind Kind) Grid {
	switch kind {
	case Moon:
		return s.Moon
	case Chalit:
		return s.Chalit
	case Navamsha:
		return s.Navamsha
	default:
		return s.Lagna
	}
}

// Keys returns occupied keys in natural order: houses ascending or signs
// from Aries.
func (g Grid) Keys() []string {
	keys := make([]string, 0, len(g.cells))
	for k := range g.cells {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return g.rank[keys[i]] < g.rank[keys[j]] })
	return keys
}

// Bodies returns a copy of the bodies grouped under key.
func (g Grid) Bodies(key string) []planet.Body {
	src := g.cells[key]
	if len(src) == 0 {
		return nil
	}
	out := make([]planet.Body, len(src))
	copy(out, src)
	return out
}

// Cells returns a copy of every occupied cell.
func (g Grid) Cells() map[string][]planet.Body {
	out := make(map[string][]planet.Body, len(g.cells))
	for k := range g.cells {
		out[k] = g.Bodies(k)
	}
	return out
}

// Len returns the number of occupied cells.
func (g Grid) Len() int {
	return len(g.cells)
}

// MarshalJSON encodes the grid as an object of key → body names, keys in
// natural order.
func (g Grid) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range g.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		bodies, err := json.Marshal(g.cells[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(bodies)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
