// Package planet names the bodies tracked by a chart and classifies their
// motion relative to the Sun: retrograde, combust, and the lunar nodes.
package planet

import (
	"fmt"
	"strings"
)

// Body identifies a tracked celestial body or lunar node.
type Body int

// Bodies in canonical iteration order.
const (
	Sun Body = iota
	Moon
	Mars
	Mercury
	Jupiter
	Venus
	Saturn
	Rahu
	Ketu
)

// bodyCount is the number of tracked bodies, Ketu included.
const bodyCount = 9

var bodyNames = [bodyCount]string{
	"Sun", "Moon", "Mars", "Mercury", "Jupiter", "Venus", "Saturn", "Rahu", "Ketu",
}

// String returns the body name.
func (b Body) String() string {
	if b >= 0 && int(b) < bodyCount {
		return bodyNames[b]
	}
	return fmt.Sprintf("Body(%d)", int(b))
}

// MarshalText encodes the body by name, so bodies work as JSON map keys.
func (b Body) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText decodes a body name.
func (b *Body) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// All returns every tracked body in canonical order, Ketu last.
func All() []Body {
	out := make([]Body, bodyCount)
	for i := range out {
		out[i] = Body(i)
	}
	return out
}

// Ephemeris returns the bodies that are sampled from an ephemeris. Ketu is
// excluded; it is always derived from Rahu.
func Ephemeris() []Body {
	return All()[:Ketu]
}

// Parse looks up a body by name, ignoring case and surrounding space.
func Parse(name string) (Body, error) {
	for i, n := range bodyNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Body(i), nil
		}
	}
	return 0, fmt.Errorf("planet: unknown body %q", name)
}
