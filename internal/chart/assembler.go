package chart

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/ssingla/astralyogi/internal/dasha"
	"github.com/ssingla/astralyogi/internal/ephemeris"
	"github.com/ssingla/astralyogi/internal/geocode"
	"github.com/ssingla/astralyogi/internal/grid"
	"github.com/ssingla/astralyogi/internal/planet"
	"github.com/ssingla/astralyogi/internal/telemetry"
	"github.com/ssingla/astralyogi/internal/yoga"
	"github.com/ssingla/astralyogi/internal/zodiac"
)

// Assembler builds charts from an ephemeris provider and a city resolver.
// It holds no per-chart state and may be shared between goroutines as
// long as its provider may.
type Assembler struct {
	provider ephemeris.Provider
	resolver geocode.Resolver
	logger   *zap.Logger
	now      func() time.Time
	frame    ephemeris.Frame
	events   *telemetry.Emitter
	detector *yoga.Detector
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(a *Assembler) { a.logger = l }
}

// WithClock sets the source of "now" used for the transit snapshot and the
// current dasha. Providers that implement ephemeris.Snapper answer the
// transit for their nearest held moment, reported in Transit.At.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) { a.now = now }
}

// WithFrame overrides the sidereal frame passed to the provider.
func WithFrame(f ephemeris.Frame) Option {
	return func(a *Assembler) { a.frame = f }
}

// WithTelemetry records build outcomes to e.
func WithTelemetry(e *telemetry.Emitter) Option {
	return func(a *Assembler) { a.events = e }
}

// WithRules replaces the yoga rule set.
func WithRules(rules []yoga.Rule) Option {
	return func(a *Assembler) { a.detector = &yoga.Detector{Rules: rules} }
}

// New creates an Assembler.
func New(provider ephemeris.Provider, resolver geocode.Resolver, opts ...Option) *Assembler {
	a := &Assembler{
		provider: provider,
		resolver: resolver,
		logger:   zap.NewNop(),
		now:      time.Now,
		frame:    ephemeris.Lahiri,
		detector: yoga.NewDetector(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Build assembles the chart for req. On failure it returns a nil chart and
// an error wrapping one of ErrInvalidMoment, ErrLocationNotFound,
// ErrEphemerisUnavailable or ErrInvalidRequest.
func (a *Assembler) Build(ctx context.Context, req Request) (*Chart, error) {
	id := telemetry.NewChartID()
	a.emit(telemetry.KindChartRequested, id, telemetry.Requested{
		Name: req.Name, Date: req.Date, Time: req.Time, City: req.City,
	})

	start := time.Now()
	c, err := a.build(ctx, id, req)
	elapsed := time.Since(start)
	if err != nil {
		a.logger.Warn("chart build failed",
			zap.String("chart_id", id),
			zap.String("city", req.City),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		a.emit(telemetry.KindChartFailed, id, telemetry.Failed{Error: err.Error()})
		return nil, err
	}

	a.logger.Info("chart built",
		zap.String("chart_id", id),
		zap.String("city", c.Location.Name),
		zap.Time("birth", c.Birth),
		zap.Int("bodies", len(c.Points)),
		zap.Int("yogas", len(c.Yogas)),
		zap.Duration("elapsed", elapsed),
	)
	a.emit(telemetry.KindChartBuilt, id, telemetry.Built{
		Ascendant: c.Ascendant.String(),
		Dasha:     c.CurrentDasha.Lord.String(),
		Yogas:     len(c.Yogas),
		ElapsedMS: float64(elapsed.Microseconds()) / 1000,
	})
	return c, nil
}

func (a *Assembler) build(ctx context.Context, id string, req Request) (*Chart, error) {
	birth, moment, err := ParseMoment(req.Date, req.Time, req.TZOffset, req.AdjustDST)
	if err != nil {
		return nil, err
	}
	factors, err := divisions(req.Divisions)
	if err != nil {
		return nil, err
	}

	loc, err := a.resolver.Resolve(ctx, req.City)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrLocationNotFound, req.City, err)
	}

	now := a.now()
	obs := ephemeris.Observer{Latitude: loc.Latitude, Longitude: loc.Longitude}
	bodies := planet.Ephemeris()
	a.logger.Debug("querying ephemeris",
		zap.String("chart_id", id),
		zap.Stringer("moment", moment),
		zap.Float64("latitude", obs.Latitude),
		zap.Float64("longitude", obs.Longitude),
	)
	transitAt, transitMoment := now, ephemeris.MomentOf(now)
	if m, ok := ephemeris.Snap(a.provider, now, obs); ok {
		transitMoment = m
		if at := m.Time(); !at.Equal(now) {
			a.logger.Info("transit moved to nearest ephemeris moment",
				zap.String("chart_id", id),
				zap.Time("now", now),
				zap.Stringer("moment", m),
			)
			transitAt = at
		}
	}
	snaps, err := ephemeris.Fetch(ctx, a.provider,
		ephemeris.Query{Moment: moment, Observer: obs, Frame: a.frame, Bodies: bodies},
		ephemeris.Query{Moment: transitMoment, Observer: obs, Frame: a.frame, Bodies: bodies},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEphemerisUnavailable, err)
	}
	if len(snaps) != 2 {
		return nil, fmt.Errorf("%w: provider returned %d snapshots for 2 queries", ErrEphemerisUnavailable, len(snaps))
	}

	natal, err := validate(snaps[0], bodies)
	if err != nil {
		return nil, fmt.Errorf("%w: natal: %w", ErrEphemerisUnavailable, err)
	}
	current, err := validate(snaps[1], bodies)
	if err != nil {
		return nil, fmt.Errorf("%w: transit: %w", ErrEphemerisUnavailable, err)
	}

	points := placePoints(natal.samples, natal.ascendant)
	timeline := dasha.Compute(natal.samples[planet.Moon].Longitude, birth)

	c := &Chart{
		ID:           id,
		Name:         req.Name,
		Birth:        birth,
		Location:     loc,
		Ascendant:    ascendantOf(natal.ascendant),
		Points:       points,
		Dasha:        timeline,
		CurrentDasha: timeline.Current(now),
		Divisionals:  buildDivisionals(points, factors),
		Grids:        grid.BuildAll(placements(points)),
		// Transits are housed from the natal ascendant, not the
		// ascendant of the build moment.
		Transit: Transit{At: transitAt, Points: placePoints(current.samples, natal.ascendant)},
	}
	c.Yogas = a.detector.Detect(c)
	return c, nil
}

func (a *Assembler) emit(kind, id string, data any) {
	if err := a.events.Emit(kind, id, data); err != nil {
		a.logger.Warn("telemetry emit failed", zap.String("kind", kind), zap.Error(err))
	}
}

// checked is a snapshot whose longitudes are known to lie in [0,360).
type checked struct {
	ascendant float64
	samples   map[planet.Body]ephemeris.Sample
}

var errOutOfRange = errors.New("longitude out of range")

func validate(snap *ephemeris.Snapshot, bodies []planet.Body) (checked, error) {
	if snap == nil {
		return checked{}, ephemeris.ErrIncomplete
	}
	if err := snap.Require(bodies); err != nil {
		return checked{}, err
	}
	asc, err := normalized(snap.Ascendant)
	if err != nil {
		return checked{}, fmt.Errorf("ascendant: %w", err)
	}
	out := checked{ascendant: asc, samples: make(map[planet.Body]ephemeris.Sample, len(bodies))}
	for _, b := range bodies {
		s := snap.Samples[b]
		if s.Longitude, err = normalized(s.Longitude); err != nil {
			return checked{}, fmt.Errorf("%s: %w", b, err)
		}
		if math.IsNaN(s.Speed) || math.IsInf(s.Speed, 0) {
			return checked{}, fmt.Errorf("%s: speed %v is not finite", b, s.Speed)
		}
		s.Body = b
		out.samples[b] = s
	}
	return out, nil
}

func normalized(lon float64) (float64, error) {
	n := zodiac.Normalize(lon)
	if math.IsNaN(n) || n < 0 || n >= zodiac.FullCircle {
		return 0, fmt.Errorf("%w: %v", errOutOfRange, lon)
	}
	return n, nil
}

// placePoints classifies every body, deriving Ketu from Rahu. Points come
// out in canonical body order.
func placePoints(samples map[planet.Body]ephemeris.Sample, asc float64) []Point {
	sunLon := samples[planet.Sun].Longitude
	points := make([]Point, 0, len(planet.All()))
	for _, b := range planet.All() {
		var lon, speed float64
		if b == planet.Ketu {
			rahu := samples[planet.Rahu]
			lon, speed = planet.KetuLongitude(rahu.Longitude), rahu.Speed
		} else {
			s := samples[b]
			lon, speed = s.Longitude, s.Speed
		}
		flags := planet.Status(b, lon, speed, sunLon)
		points = append(points, Point{
			Body:       b,
			Position:   zodiac.Classify(lon),
			House:      zodiac.House(asc, lon),
			Retrograde: flags.Retrograde,
			Combust:    flags.Combust,
		})
	}
	return points
}

func buildDivisionals(points []Point, factors []int) []Divisional {
	out := make([]Divisional, 0, len(factors))
	for _, n := range factors {
		d := Divisional{N: n, Name: zodiac.DivisionName(n), Signs: make(map[planet.Body]zodiac.Sign, len(points))}
		for _, p := range points {
			d.Signs[p.Body] = zodiac.Divisional(p.Longitude, n)
		}
		out = append(out, d)
	}
	return out
}

func placements(points []Point) []grid.Placement {
	out := make([]grid.Placement, len(points))
	for i, p := range points {
		out[i] = grid.Placement{
			Body:     p.Body,
			House:    p.House,
			Navamsha: zodiac.Divisional(p.Longitude, zodiac.D9),
		}
	}
	return out
}
