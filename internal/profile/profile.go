// Package profile reads birth profiles from TOML files and watches them for
// edits.
//
// A profile file looks like:
//
//	name = "Asha"
//	date = "1990-01-01"
//	time = "06:15"
//	city = "Bathinda"
//	tz_offset = 5.5
//	divisions = [2, 3]
package profile

import (
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/ssingla/astralyogi/internal/chart"
)

// Profile is one person's birth data.
type Profile struct {
	Name string `toml:"name"`
	Date string `toml:"date"`
	Time string `toml:"time"`
	City string `toml:"city"`
	// TZOffset and AdjustDST fall back to Defaults when absent.
	TZOffset  *float64 `toml:"tz_offset,omitempty"`
	AdjustDST *bool    `toml:"adjust_dst,omitempty"`
	Divisions []int    `toml:"divisions,omitempty"`
}

// Defaults fill the optional profile fields, typically from configuration.
type Defaults struct {
	TZOffset  float64
	AdjustDST bool
	Divisions []int
}

// Load reads and validates the profile at path.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("reading profile: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a TOML profile.
func Parse(data []byte) (Profile, error) {
	var p Profile
	if err := toml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("%w: %w", ErrNotProfile, err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate checks that the required fields are present. Field contents are
// checked when the chart is built.
func (p Profile) Validate() error {
	var missing []string
	if strings.TrimSpace(p.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(p.Time) == "" {
		missing = append(missing, "time")
	}
	if strings.TrimSpace(p.City) == "" {
		missing = append(missing, "city")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}
	return nil
}

// Request converts the profile into a chart request.
func (p Profile) Request(d Defaults) chart.Request {
	req := chart.Request{
		Name:      p.Name,
		Date:      p.Date,
		Time:      p.Time,
		City:      p.City,
		TZOffset:  d.TZOffset,
		AdjustDST: d.AdjustDST,
		Divisions: append([]int(nil), d.Divisions...),
	}
	if p.TZOffset != nil {
		req.TZOffset = *p.TZOffset
	}
	if p.AdjustDST != nil {
		req.AdjustDST = *p.AdjustDST
	}
	if len(p.Divisions) > 0 {
		req.Divisions = append([]int(nil), p.Divisions...)
	}
	return req
}
