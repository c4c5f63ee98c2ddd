// Package geocode resolves a birth city name to coordinates.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates no resolver knows the city.
var ErrNotFound = errors.New("location not found")

// Location is a resolved place. Longitude is east positive.
type Location struct {
	Name      string  `json:"name" toml:"name"`
	Latitude  float64 `json:"latitude" toml:"latitude"`
	Longitude float64 `json:"longitude" toml:"longitude"`
}

// Resolver turns a free-text city into a Location.
type Resolver interface {
	Resolve(ctx context.Context, city string) (Location, error)
}

// Gazetteer is a static, case-insensitive table of places.
type Gazetteer struct {
	places map[string]Location
}

// NewGazetteer builds a gazetteer from locs, keyed by their names.
func NewGazetteer(locs ...Location) *Gazetteer {
	g := &Gazetteer{places: make(map[string]Location, len(locs))}
	for _, l := range locs {
		g.places[key(l.Name)] = l
	}
	return g
}

// DefaultGazetteer returns the cities offered on the birth form.
func DefaultGazetteer() *Gazetteer {
	return NewGazetteer(
		Location{Name: "Bathinda", Latitude: 30.2110, Longitude: 74.9455},
		Location{Name: "Delhi", Latitude: 28.6139, Longitude: 77.2090},
		Location{Name: "Mumbai", Latitude: 19.0760, Longitude: 72.8777},
		Location{Name: "Bangalore", Latitude: 12.9716, Longitude: 77.5946},
		Location{Name: "Hyderabad", Latitude: 17.3850, Longitude: 78.4867},
		Location{Name: "Chennai", Latitude: 13.0827, Longitude: 80.2707},
		Location{Name: "Kolkata", Latitude: 22.5726, Longitude: 88.3639},
		Location{Name: "Pune", Latitude: 18.5204, Longitude: 73.8567},
		Location{Name: "Ahmedabad", Latitude: 23.0225, Longitude: 72.5714},
		Location{Name: "Jaipur", Latitude: 26.9124, Longitude: 75.7873},
	)
}

// Resolve implements Resolver.
func (g *Gazetteer) Resolve(ctx context.Context, city string) (Location, error) {
	if err := ctx.Err(); err != nil {
		return Location{}, err
	}
	l, ok := g.places[key(city)]
	if !ok {
		return Location{}, fmt.Errorf("%w: %q", ErrNotFound, city)
	}
	return l, nil
}

// Names lists the gazetteer's places in no particular order.
func (g *Gazetteer) Names() []string {
	out := make([]string, 0, len(g.places))
	for _, l := range g.places {
		out = append(out, l.Name)
	}
	return out
}

func key(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// chain tries resolvers in order.
type chain []Resolver

// Chain returns a Resolver that asks each resolver in turn. ErrNotFound
// moves on to the next one; any other error stops the chain.
func Chain(resolvers ...Resolver) Resolver {
	return chain(resolvers)
}

func (c chain) Resolve(ctx context.Context, city string) (Location, error) {
	for _, r := range c {
		loc, err := r.Resolve(ctx, city)
		if err == nil {
			return loc, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return Location{}, err
		}
	}
	return Location{}, fmt.Errorf("%w: %q", ErrNotFound, city)
}
