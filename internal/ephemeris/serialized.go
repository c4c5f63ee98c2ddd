package ephemeris

import (
	"context"
	"fmt"
	"sync"

	"github.com/ssingla/astralyogi/internal/planet"
)

// GlobalEngine is an ephemeris whose sidereal mode and observer are
// process-wide settings, as in Swiss Ephemeris bindings. Calls are only
// meaningful after both setters have run, and any caller may change them.
type GlobalEngine interface {
	SetSiderealMode(f Frame) error
	SetTopo(o Observer) error
	Calc(m Moment, b planet.Body) (lon, speed float64, err error)
	Ascendant(m Moment, o Observer) (float64, error)
}

// Serialized adapts a GlobalEngine into a Provider. Each call holds one
// mutex from configuring the engine to the last position read, so
// concurrent chart builds never observe each other's settings.
type Serialized struct {
	mu     sync.Mutex
	engine GlobalEngine
}

// NewSerialized wraps engine. The engine must not be used directly while
// wrapped.
func NewSerialized(engine GlobalEngine) *Serialized {
	return &Serialized{engine: engine}
}

// Positions implements Provider.
func (s *Serialized) Positions(ctx context.Context, q Query) (*Snapshot, error) {
	snaps, err := s.PositionsBatch(ctx, []Query{q})
	if err != nil {
		return nil, err
	}
	return snaps[0], nil
}

// PositionsBatch implements Batcher. All queries of the batch run inside
// one critical section.
func (s *Serialized) PositionsBatch(ctx context.Context, qs []Query) ([]*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Snapshot, 0, len(qs))
	for _, q := range qs {
		snap, err := s.query(q)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, nil
}

// query must be called with s.mu held.
func (s *Serialized) query(q Query) (*Snapshot, error) {
	if err := s.engine.SetSiderealMode(q.Frame); err != nil {
		return nil, fmt.Errorf("ephemeris: set sidereal mode %s: %w", q.Frame, err)
	}
	if err := s.engine.SetTopo(q.Observer); err != nil {
		return nil, fmt.Errorf("ephemeris: set observer: %w", err)
	}

	snap := &Snapshot{Samples: make(map[planet.Body]Sample, len(q.Bodies))}
	for _, b := range q.Bodies {
		lon, speed, err := s.engine.Calc(q.Moment, b)
		if err != nil {
			return nil, fmt.Errorf("ephemeris: %s at %s: %w", b, q.Moment, err)
		}
		snap.Samples[b] = Sample{Body: b, Longitude: lon, Speed: speed}
	}
	asc, err := s.engine.Ascendant(q.Moment, q.Observer)
	if err != nil {
		return nil, fmt.Errorf("ephemeris: ascendant at %s: %w", q.Moment, err)
	}
	snap.Ascendant = asc
	return snap, nil
}
