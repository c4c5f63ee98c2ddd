package chart

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseMoment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		date      string
		clock     string
		offset    float64
		adjustDST bool
		wantUTC   time.Time
		wantHour  float64
		wantZone  string
	}{
		{
			name: "IST", date: "1990-01-01", clock: "06:15", offset: 5.5,
			wantUTC: time.Date(1990, 1, 1, 0, 45, 0, 0, time.UTC), wantHour: 0.75, wantZone: "UTC+05:30",
		},
		{
			name: "DST adjustment before 2000", date: "1990-01-01", clock: "06:15", offset: 5.5, adjustDST: true,
			wantUTC: time.Date(1990, 1, 1, 1, 15, 0, 0, time.UTC), wantHour: 1.25, wantZone: "UTC+05:00",
		},
		{
			name: "DST flag ignored from 2000", date: "2000-06-01", clock: "12:00", offset: 5.5, adjustDST: true,
			wantUTC: time.Date(2000, 6, 1, 6, 30, 0, 0, time.UTC), wantHour: 6.5, wantZone: "UTC+05:30",
		},
		{
			name: "crosses into previous UTC day", date: "1985-03-10", clock: "02:00", offset: 5.5,
			wantUTC: time.Date(1985, 3, 9, 20, 30, 0, 0, time.UTC), wantHour: 20.5, wantZone: "UTC+05:30",
		},
		{
			name: "west of Greenwich", date: "1975-07-04", clock: "22:30", offset: -4,
			wantUTC: time.Date(1975, 7, 5, 2, 30, 0, 0, time.UTC), wantHour: 2.5, wantZone: "UTC-04:00",
		},
		{
			name: "surrounding whitespace", date: " 2010-10-10 ", clock: " 9:05", offset: 0,
			wantUTC: time.Date(2010, 10, 10, 9, 5, 0, 0, time.UTC), wantHour: 9 + 5.0/60, wantZone: "UTC+00:00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			birth, m, err := ParseMoment(tt.date, tt.clock, tt.offset, tt.adjustDST)
			if err != nil {
				t.Fatalf("ParseMoment: %v", err)
			}
			if !birth.Equal(tt.wantUTC) {
				t.Errorf("birth = %v, want %v", birth.UTC(), tt.wantUTC)
			}
			if name, _ := birth.Zone(); name != tt.wantZone {
				t.Errorf("zone = %q, want %q", name, tt.wantZone)
			}
			y, mo, d := tt.wantUTC.Date()
			if m.Year != y || m.Month != mo || m.Day != d || math.Abs(m.Hour-tt.wantHour) > 1e-9 {
				t.Errorf("moment = %+v, want %d-%d-%d %.4f", m, y, mo, d, tt.wantHour)
			}
		})
	}
}

func TestParseMomentLocalDateKept(t *testing.T) {
	t.Parallel()

	// The dasha clock anchors on the local calendar date, so the birth
	// instant must keep its local zone.
	birth, _, err := ParseMoment("1985-03-10", "02:00", 5.5, false)
	if err != nil {
		t.Fatalf("ParseMoment: %v", err)
	}
	if y, m, d := birth.Date(); y != 1985 || m != time.March || d != 10 {
		t.Errorf("local date = %d-%d-%d, want 1985-3-10", y, m, d)
	}
}

func TestParseMomentErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		date   string
		clock  string
		offset float64
	}{
		{"bad date", "01/01/1990", "06:15", 5.5},
		{"impossible date", "1990-02-30", "06:15", 5.5},
		{"bad time", "1990-01-01", "6pm", 5.5},
		{"hour out of range", "1990-01-01", "25:00", 5.5},
		{"empty", "", "", 5.5},
		{"offset too large", "1990-01-01", "06:15", 15},
		{"offset NaN", "1990-01-01", "06:15", math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, _, err := ParseMoment(tt.date, tt.clock, tt.offset, false); !errors.Is(err, ErrInvalidMoment) {
				t.Errorf("ParseMoment = %v, want ErrInvalidMoment", err)
			}
		})
	}
}

func TestDivisions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   []int
		want []int
	}{
		{nil, []int{9, 10}},
		{[]int{10, 9}, []int{9, 10}},
		{[]int{60, 2, 2, 1}, []int{1, 2, 9, 10, 60}},
	}
	for _, tt := range tests {
		got, err := divisions(tt.in)
		if err != nil {
			t.Fatalf("divisions(%v): %v", tt.in, err)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("divisions(%v) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}

	if _, err := divisions([]int{9, 0}); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("divisions with 0 = %v, want ErrInvalidRequest", err)
	}
}
