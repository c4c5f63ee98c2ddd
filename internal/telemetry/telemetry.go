// Package telemetry records an audit trail of chart builds as JSONL. Each
// build produces a request event followed by either a built or a failed
// event, all tagged with the chart's ID.
package telemetry

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event kinds.
const (
	KindChartRequested = "chart_requested"
	KindChartBuilt     = "chart_built"
	KindChartFailed    = "chart_failed"
)

// Event is one JSONL record.
type Event struct {
	Timestamp time.Time       `json:"ts"`
	Kind      string          `json:"kind"`
	ChartID   string          `json:"chart"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Requested is the payload of a chart_requested event.
type Requested struct {
	Name string `json:"name,omitempty"`
	Date string `json:"date"`
	Time string `json:"time"`
	City string `json:"city"`
}

// Built is the payload of a chart_built event.
type Built struct {
	Ascendant string  `json:"ascendant"`
	Dasha     string  `json:"dasha"`
	Yogas     int     `json:"yogas"`
	ElapsedMS float64 `json:"elapsed_ms"`
}

// Failed is the payload of a chart_failed event.
type Failed struct {
	Error string `json:"error"`
}

// NewChartID returns a fresh random chart identifier.
func NewChartID() string {
	return uuid.NewString()
}

// Emitter appends events to a JSONL file. It is safe for concurrent use by
// multiple goroutines. A nil *Emitter is a valid no-op emitter.
type Emitter struct {
	file *os.File
	enc  *json.Encoder
	mu   sync.Mutex
	now  func() time.Time
}

// NewEmitter opens path for appending, creating it if needed.
func NewEmitter(path string) (*Emitter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	return &Emitter{
		file: f,
		enc:  json.NewEncoder(f),
		now:  time.Now,
	}, nil
}

// Emit writes one event of kind for chartID with data as its payload.
// Calling Emit on a nil Emitter is a no-op.
func (e *Emitter) Emit(kind, chartID string, data any) error {
	if e == nil {
		return nil
	}
	evt := Event{Kind: kind, ChartID: chartID}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("telemetry: encode %s payload: %w", kind, err)
		}
		evt.Data = raw
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	evt.Timestamp = e.now().UTC()
	if err := e.enc.Encode(evt); err != nil {
		return fmt.Errorf("telemetry: encode event: %w", err)
	}
	return nil
}

// Close closes the underlying file. Calling Close on a nil Emitter is a
// no-op.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.file.Close(); err != nil {
		return fmt.Errorf("telemetry: close: %w", err)
	}
	return nil
}

// ReadEvents decodes every event in r, skipping blank lines.
func ReadEvents(r io.Reader) ([]Event, error) {
	var out []Event
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		if len(sc.Bytes()) == 0 {
			continue
		}
		var evt Event
		if err := json.Unmarshal(sc.Bytes(), &evt); err != nil {
			return nil, fmt.Errorf("telemetry: line %d: %w", line, err)
		}
		out = append(out, evt)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("telemetry: reading events: %w", err)
	}
	return out, nil
}
