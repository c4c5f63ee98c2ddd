package chart

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"

	"github.com/ssingla/astralyogi/internal/ephemeris"
	"github.com/ssingla/astralyogi/internal/geocode"
	"github.com/ssingla/astralyogi/internal/planet"
	"github.com/ssingla/astralyogi/internal/yoga"
	"github.com/ssingla/astralyogi/internal/zodiac"
)

func newAssembler(p ephemeris.Provider, opts ...Option) *Assembler {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return New(p, geocode.DefaultGazetteer(), opts...)
}

func buildFixture(t *testing.T) *Chart {
	t.Helper()
	c, err := newAssembler(fixtureTable(natalSamples())).Build(context.Background(), birthRequest())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return c
}

func TestBuildPlacements(t *testing.T) {
	t.Parallel()

	c := buildFixture(t)

	if got := c.Ascendant.String(); got != "Libra 21°30′" {
		t.Errorf("ascendant = %q, want Libra 21°30′", got)
	}
	if c.Location.Name != "Bathinda" {
		t.Errorf("location = %+v", c.Location)
	}
	if c.Name != "Asha" || c.ID == "" {
		t.Errorf("name/id = %q/%q", c.Name, c.ID)
	}

	type want struct {
		sign       zodiac.Sign
		house      int
		retrograde bool
		combust    bool
	}
	wants := map[planet.Body]want{
		planet.Sun:     {zodiac.Gemini, 8, false, false},
		planet.Moon:    {zodiac.Taurus, 7, false, false},
		planet.Mars:    {zodiac.Leo, 10, false, false},
		planet.Mercury: {zodiac.Gemini, 8, true, true},
		planet.Jupiter: {zodiac.Leo, 10, false, false},
		planet.Venus:   {zodiac.Gemini, 8, false, false},
		planet.Saturn:  {zodiac.Capricorn, 3, false, false},
		planet.Rahu:    {zodiac.Libra, 12, true, false},
		planet.Ketu:    {zodiac.Aries, 6, true, false},
	}

	if len(c.Points) != len(planet.All()) {
		t.Fatalf("got %d points, want %d", len(c.Points), len(planet.All()))
	}
	for i, p := range c.Points {
		if p.Body != planet.All()[i] {
			t.Errorf("point %d = %s, want canonical order", i, p.Body)
		}
		w := wants[p.Body]
		got := want{p.Sign, p.House, p.Retrograde, p.Combust}
		if got != w {
			t.Errorf("%s = %+v, want %+v", p.Body, got, w)
		}
	}

	moon, _ := c.Point(planet.Moon)
	if moon.Nakshatra.String() != "Rohini" || moon.Pada != 2 || moon.String() != "Taurus 15°0′" {
		t.Errorf("moon = %s %s pada %d", moon, moon.Nakshatra, moon.Pada)
	}
}

func TestBuildKetuIsDerivedFromRahu(t *testing.T) {
	t.Parallel()

	c := buildFixture(t)
	rahu, _ := c.Point(planet.Rahu)
	ketu, _ := c.Point(planet.Ketu)
	if ketu.Longitude != zodiac.Normalize(rahu.Longitude+180) {
		t.Errorf("ketu = %v, rahu = %v", ketu.Longitude, rahu.Longitude)
	}
	if !ketu.Retrograde || ketu.Combust {
		t.Errorf("ketu flags = retrograde %v combust %v", ketu.Retrograde, ketu.Combust)
	}
}

func TestBuildDasha(t *testing.T) {
	t.Parallel()

	c := buildFixture(t)
	tl := c.Dasha
	if tl.StartLord != planet.Moon || math.Abs(tl.Elapsed-0.375) > 1e-9 {
		t.Errorf("start = %s elapsed %v, want Moon 0.375", tl.StartLord, tl.Elapsed)
	}
	if len(tl.Periods) != 9 {
		t.Fatalf("got %d periods, want 9", len(tl.Periods))
	}
	first := tl.Periods[0]
	if !first.Start.Equal(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)) || first.Days() != 2283 {
		t.Errorf("first period = %v + %d days", first.Start, first.Days())
	}
	if c.CurrentDasha.Lord != planet.Jupiter {
		t.Errorf("current dasha on %v = %s, want Jupiter", fixedNow, c.CurrentDasha.Lord)
	}
}

func TestBuildDivisionals(t *testing.T) {
	t.Parallel()

	req := birthRequest()
	req.Divisions = []int{1, 9}
	c, err := newAssembler(fixtureTable(natalSamples())).Build(context.Background(), req)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var ns []int
	for _, d := range c.Divisionals {
		ns = append(ns, d.N)
		if d.Name != zodiac.DivisionName(d.N) {
			t.Errorf("D%d name = %q", d.N, d.Name)
		}
		if len(d.Signs) != len(planet.All()) {
			t.Errorf("D%d has %d bodies", d.N, len(d.Signs))
		}
	}
	if diff := cmp.Diff([]int{1, 9, 10}, ns); diff != "" {
		t.Errorf("divisions mismatch (-want +got):\n%s", diff)
	}

	d1, _ := c.Divisional(1)
	for _, p := range c.Points {
		if d1.Signs[p.Body] != p.Sign {
			t.Errorf("D1 %s = %s, want birth sign %s", p.Body, d1.Signs[p.Body], p.Sign)
		}
	}
	d9, _ := c.Divisional(9)
	if d9.Signs[planet.Sun] != zodiac.Aquarius || d9.Signs[planet.Moon] != zodiac.Taurus {
		t.Errorf("D9 Sun/Moon = %s/%s, want Aquarius/Taurus", d9.Signs[planet.Sun], d9.Signs[planet.Moon])
	}
	d10, _ := c.Divisional(10)
	if d10.Signs[planet.Sun] != zodiac.Taurus {
		t.Errorf("D10 Sun = %s, want Taurus", d10.Signs[planet.Sun])
	}
	if _, ok := c.Divisional(60); ok {
		t.Error("D60 was not requested")
	}
}

func TestBuildGrids(t *testing.T) {
	t.Parallel()

	c := buildFixture(t)

	lagna := c.Grids.Lagna
	if diff := cmp.Diff([]planet.Body{planet.Sun, planet.Mercury, planet.Venus}, lagna.Bodies("8")); diff != "" {
		t.Errorf("lagna house 8 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(lagna.Cells(), c.Grids.Chalit.Cells()); diff != "" {
		t.Errorf("chalit differs from lagna:\n%s", diff)
	}
	// Moon sits in house 7, so it is house 1 of the Moon grid.
	if diff := cmp.Diff([]planet.Body{planet.Moon}, c.Grids.Moon.Bodies("1")); diff != "" {
		t.Errorf("moon grid house 1 mismatch (-want +got):\n%s", diff)
	}
	d9, _ := c.Divisional(9)
	for _, key := range c.Grids.Navamsha.Keys() {
		for _, b := range c.Grids.Navamsha.Bodies(key) {
			if d9.Signs[b].String() != key {
				t.Errorf("navamsha grid puts %s under %s, D9 says %s", b, key, d9.Signs[b])
			}
		}
	}
}

func TestBuildYogas(t *testing.T) {
	t.Parallel()

	c := buildFixture(t)
	want := []yoga.Yoga{{Name: "Budh-Aditya", Score: 4.5}, {Name: "Gajakesari", Score: 4.2}}
	if diff := cmp.Diff(want, c.Yogas); diff != "" {
		t.Errorf("yogas mismatch (-want +got):\n%s", diff)
	}

	c, err := newAssembler(fixtureTable(natalSamples()), WithRules(nil)).Build(context.Background(), birthRequest())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if c.Yogas == nil || len(c.Yogas) != 0 {
		t.Errorf("no rules should give an empty yoga list, got %v", c.Yogas)
	}
}

// The transit snapshot is housed from the natal ascendant (Libra 21°30′),
// not from the ascendant of the build moment (88°).
func TestBuildTransitUsesBirthAscendant(t *testing.T) {
	t.Parallel()

	c := buildFixture(t)
	if !c.Transit.At.Equal(fixedNow) {
		t.Errorf("transit at %v, want %v", c.Transit.At, fixedNow)
	}
	if len(c.Transit.Points) != len(planet.All()) {
		t.Fatalf("got %d transit points", len(c.Transit.Points))
	}

	sun, _ := c.Transit.Point(planet.Sun)
	if sun.House != zodiac.House(201.5, 17.0) || sun.House != 6 {
		t.Errorf("transit sun house = %d, want 6 from the birth ascendant", sun.House)
	}
	if sun.House == zodiac.House(88.0, 17.0) {
		t.Error("transit sun housed from the transit-moment ascendant")
	}

	tests := []struct {
		body       planet.Body
		retrograde bool
		combust    bool
	}{
		{planet.Mercury, true, false},
		{planet.Jupiter, false, true},
		{planet.Venus, false, true},
		{planet.Ketu, true, false},
	}
	for _, tt := range tests {
		p, _ := c.Transit.Point(tt.body)
		if p.Retrograde != tt.retrograde || p.Combust != tt.combust {
			t.Errorf("transit %s = retrograde %v combust %v, want %v %v", tt.body, p.Retrograde, p.Combust, tt.retrograde, tt.combust)
		}
	}
	ketu, _ := c.Transit.Point(planet.Ketu)
	if ketu.Longitude != 165 {
		t.Errorf("transit ketu = %v, want 165", ketu.Longitude)
	}
}

func TestBuildNormalizesLongitudes(t *testing.T) {
	t.Parallel()

	natal := natalSamples()
	natal[6].Longitude = 650 // Saturn, 290 after normalization
	c, err := newAssembler(fixtureTable(natal)).Build(context.Background(), birthRequest())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	sat, _ := c.Point(planet.Saturn)
	if sat.Longitude != 290 || sat.Sign != zodiac.Capricorn {
		t.Errorf("saturn = %v %s", sat.Longitude, sat.Sign)
	}
}

// countingProvider wraps a provider and records how queries arrive.
type countingProvider struct {
	*ephemeris.Table
	batches int
	queries int
}

func (c *countingProvider) PositionsBatch(ctx context.Context, qs []ephemeris.Query) ([]*ephemeris.Snapshot, error) {
	c.batches++
	out := make([]*ephemeris.Snapshot, 0, len(qs))
	for _, q := range qs {
		c.queries++
		if q.Frame != ephemeris.Lahiri {
			return nil, errors.New("frame not passed")
		}
		if q.Observer.Latitude != 30.2110 || q.Observer.Longitude != 74.9455 {
			return nil, errors.New("observer not passed")
		}
		snap, err := c.Table.Positions(ctx, q)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, nil
}

func TestBuildFetchesNatalAndTransitInOneBatch(t *testing.T) {
	t.Parallel()

	p := &countingProvider{Table: fixtureTable(natalSamples())}
	if _, err := newAssembler(p).Build(context.Background(), birthRequest()); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if p.batches != 1 || p.queries != 2 {
		t.Errorf("batches = %d, queries = %d; want 1 and 2", p.batches, p.queries)
	}
}

func TestBuildConcurrent(t *testing.T) {
	t.Parallel()

	a := newAssembler(fixtureTable(natalSamples()))
	var g errgroup.Group
	charts := make([]*Chart, 16)
	for i := range charts {
		g.Go(func() error {
			c, err := a.Build(context.Background(), birthRequest())
			charts[i] = c
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	seen := make(map[string]bool)
	for _, c := range charts {
		if seen[c.ID] {
			t.Errorf("duplicate chart id %s", c.ID)
		}
		seen[c.ID] = true
		if diff := cmp.Diff(charts[0].Points, c.Points); diff != "" {
			t.Errorf("concurrent builds disagree:\n%s", diff)
		}
	}
}

func TestChartJSON(t *testing.T) {
	t.Parallel()

	c := buildFixture(t)
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, key := range []string{"id", "ascendant", "points", "dasha", "current_dasha", "divisionals", "grids", "yogas", "transit"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	if !strings.Contains(string(decoded["points"]), `"sign":"Taurus"`) {
		t.Errorf("points should encode sign names: %s", decoded["points"])
	}
}
