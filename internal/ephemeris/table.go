package ephemeris

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/ssingla/astralyogi/internal/planet"
)

const (
	hourTolerance     = 1e-6
	observerTolerance = 1e-4
)

// Entry is one precomputed moment in a Table.
type Entry struct {
	Moment Moment
	// Observer restricts the entry to one location; nil matches any.
	Observer  *Observer
	Ascendant float64
	Samples   []Sample
}

// Table is a Provider backed by precomputed positions, typically exported
// from an external ephemeris into TOML. Lookups are exact; Nearest lets
// callers move a query onto a held moment first. It is safe for concurrent
// use once built.
type Table struct {
	frame   Frame
	entries []Entry
}

// NewTable builds a table in frame from entries.
func NewTable(frame Frame, entries ...Entry) *Table {
	t := &Table{frame: frame, entries: append([]Entry(nil), entries...)}
	sort.SliceStable(t.entries, func(i, j int) bool {
		return t.entries[i].Moment.Time().Before(t.entries[j].Moment.Time())
	})
	return t
}

// Frame returns the sidereal frame the table was computed in.
func (t *Table) Frame() Frame {
	return t.frame
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Moments lists every moment in the table, earliest first.
func (t *Table) Moments() []Moment {
	out := make([]Moment, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Moment
	}
	return out
}

// Positions implements Provider. Only the requested bodies that the entry
// carries are returned; completeness is the caller's check.
func (t *Table) Positions(ctx context.Context, q Query) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if q.Frame != t.frame {
		return nil, fmt.Errorf("%w: table is %s, query wants %s", ErrNoData, t.frame, q.Frame)
	}
	for _, e := range t.entries {
		if !e.matches(q) {
			continue
		}
		snap := &Snapshot{Ascendant: e.Ascendant, Samples: make(map[planet.Body]Sample, len(q.Bodies))}
		for _, b := range q.Bodies {
			for _, s := range e.Samples {
				if s.Body == b {
					snap.Samples[b] = s
					break
				}
			}
		}
		return snap, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoData, q.Moment)
}

// Nearest implements Snapper. Entries restricted to another observer are
// skipped; ties go to the earlier moment.
func (t *Table) Nearest(at time.Time, obs Observer) (Moment, bool) {
	var (
		best  Moment
		gap   time.Duration
		found bool
	)
	for _, e := range t.entries {
		if !e.sees(obs) {
			continue
		}
		d := e.Moment.Time().Sub(at).Abs()
		if !found || d < gap {
			best, gap, found = e.Moment, d, true
		}
	}
	return best, found
}

func (e Entry) matches(q Query) bool {
	if e.Moment.Year != q.Moment.Year || e.Moment.Month != q.Moment.Month || e.Moment.Day != q.Moment.Day {
		return false
	}
	if math.Abs(e.Moment.Hour-q.Moment.Hour) > hourTolerance {
		return false
	}
	return e.sees(q.Observer)
}

func (e Entry) sees(obs Observer) bool {
	if e.Observer == nil {
		return true
	}
	return math.Abs(e.Observer.Latitude-obs.Latitude) <= observerTolerance &&
		math.Abs(e.Observer.Longitude-obs.Longitude) <= observerTolerance
}

// tableFile is the on-disk TOML layout:
//
//	frame = "lahiri"
//
//	[[entry]]
//	date = "1990-01-01"
//	hour = 0.75
//	ascendant = 201.5
//	[entry.bodies]
//	Sun = { longitude = 256.6, speed = 1.019 }
type tableFile struct {
	Frame   Frame       `toml:"frame"`
	Entries []entryFile `toml:"entry"`
}

type entryFile struct {
	Date      string                `toml:"date"`
	Hour      float64               `toml:"hour"`
	Latitude  *float64              `toml:"latitude,omitempty"`
	Longitude *float64              `toml:"longitude,omitempty"`
	Ascendant float64               `toml:"ascendant"`
	Bodies    map[string]sampleFile `toml:"bodies"`
}

type sampleFile struct {
	Longitude float64 `toml:"longitude"`
	Speed     float64 `toml:"speed"`
}

// LoadTable reads a TOML ephemeris table from path.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ephemeris table: %w", err)
	}
	return ParseTable(data)
}

// ParseTable decodes a TOML ephemeris table. A missing frame defaults to
// Lahiri.
func ParseTable(data []byte) (*Table, error) {
	var f tableFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing ephemeris table: %w", err)
	}
	if f.Frame == "" {
		f.Frame = Lahiri
	}

	entries := make([]Entry, 0, len(f.Entries))
	for i, ef := range f.Entries {
		day, err := time.Parse(time.DateOnly, ef.Date)
		if err != nil {
			return nil, fmt.Errorf("ephemeris table entry %d: date %q: %w", i, ef.Date, err)
		}
		e := Entry{
			Moment:    Moment{Year: day.Year(), Month: day.Month(), Day: day.Day(), Hour: ef.Hour},
			Ascendant: ef.Ascendant,
		}
		if (ef.Latitude == nil) != (ef.Longitude == nil) {
			return nil, fmt.Errorf("ephemeris table entry %d: latitude and longitude must be set together", i)
		}
		if ef.Latitude != nil {
			e.Observer = &Observer{Latitude: *ef.Latitude, Longitude: *ef.Longitude}
		}
		for name, sf := range ef.Bodies {
			b, err := planet.Parse(name)
			if err != nil {
				return nil, fmt.Errorf("ephemeris table entry %d: %w", i, err)
			}
			e.Samples = append(e.Samples, Sample{Body: b, Longitude: sf.Longitude, Speed: sf.Speed})
		}
		sort.Slice(e.Samples, func(a, b int) bool { return e.Samples[a].Body < e.Samples[b].Body })
		entries = append(entries, e)
	}
	return NewTable(f.Frame, entries...), nil
}
