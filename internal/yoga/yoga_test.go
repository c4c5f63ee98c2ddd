package yoga

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ssingla/astralyogi/internal/planet"
	"github.com/ssingla/astralyogi/internal/zodiac"
)

// fakeChart implements Placements from literal maps.
type fakeChart struct {
	signs  map[planet.Body]zodiac.Sign
	houses map[planet.Body]int
}

func (f fakeChart) Sign(b planet.Body) (zodiac.Sign, bool) {
	s, ok := f.signs[b]
	return s, ok
}

func (f fakeChart) House(b planet.Body) (int, bool) {
	h, ok := f.houses[b]
	return h, ok
}

func TestDetectDefaultRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		chart fakeChart
		want  []Yoga
	}{
		{
			name: "both fire",
			chart: fakeChart{
				signs:  map[planet.Body]zodiac.Sign{planet.Sun: zodiac.Gemini, planet.Mercury: zodiac.Gemini},
				houses: map[planet.Body]int{planet.Moon: 1, planet.Jupiter: 4},
			},
			want: []Yoga{{Name: "Budh-Aditya", Score: 4.5}, {Name: "Gajakesari", Score: 4.2}},
		},
		{
			name: "sun and mercury apart",
			chart: fakeChart{
				signs:  map[planet.Body]zodiac.Sign{planet.Sun: zodiac.Gemini, planet.Mercury: zodiac.Cancer},
				houses: map[planet.Body]int{planet.Moon: 2, planet.Jupiter: 4},
			},
			want: []Yoga{},
		},
		{
			name: "jupiter with moon",
			chart: fakeChart{
				houses: map[planet.Body]int{planet.Moon: 7, planet.Jupiter: 7},
			},
			want: []Yoga{{Name: "Gajakesari", Score: 4.2}},
		},
		{
			name: "jupiter tenth from moon",
			chart: fakeChart{
				houses: map[planet.Body]int{planet.Moon: 12, planet.Jupiter: 3},
			},
			want: []Yoga{{Name: "Gajakesari", Score: 4.2}},
		},
		{
			name:  "empty chart",
			chart: fakeChart{},
			want:  []Yoga{},
		},
	}

	d := NewDetector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := d.Detect(tt.chart)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Detect() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGajakesariDistances(t *testing.T) {
	t.Parallel()

	for moon := 1; moon <= 12; moon++ {
		for jup := 1; jup <= 12; jup++ {
			d := moon - jup
			if d < 0 {
				d = -d
			}
			want := d%3 == 0
			got := gajakesari(fakeChart{houses: map[planet.Body]int{planet.Moon: moon, planet.Jupiter: jup}})
			if got != want {
				t.Errorf("moon %d jupiter %d: gajakesari = %v, want %v", moon, jup, got, want)
			}
		}
	}
}

func TestDetectOrderInsensitive(t *testing.T) {
	t.Parallel()

	chart := fakeChart{
		signs:  map[planet.Body]zodiac.Sign{planet.Sun: zodiac.Leo, planet.Mercury: zodiac.Leo},
		houses: map[planet.Body]int{planet.Moon: 5, planet.Jupiter: 11},
	}
	rules := DefaultRules()
	reversed := &Detector{Rules: []Rule{rules[1], rules[0]}}

	forward := NewDetector().Detect(chart)
	backward := reversed.Detect(chart)
	if len(forward) != 2 || len(backward) != 2 {
		t.Fatalf("expected both rules to fire, got %v and %v", forward, backward)
	}
	names := map[string]bool{}
	for _, y := range backward {
		names[y.Name] = true
	}
	for _, y := range forward {
		if !names[y.Name] {
			t.Errorf("%s fired in one order only", y.Name)
		}
	}
}

func TestDetectCustomRule(t *testing.T) {
	t.Parallel()

	d := &Detector{Rules: append(DefaultRules(),
		Rule{Name: "always", Score: 1, Match: func(Placements) bool { return true }},
		Rule{Name: "nil match"},
	)}
	got := d.Detect(fakeChart{})
	if diff := cmp.Diff([]Yoga{{Name: "always", Score: 1}}, got); diff != "" {
		t.Errorf("Detect() mismatch (-want +got):\n%s", diff)
	}
}
