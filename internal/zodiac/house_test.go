package zodiac

import "testing"

func TestHouse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		asc, body float64
		want      int
	}{
		{"second house", 10, 40, 2},
		{"on ascendant", 10, 10, 1},
		{"just before ascendant", 10, 9.99, 12},
		{"wraps past pisces", 350, 25, 2},
		{"opposite", 0, 180, 7},
		{"last degree", 0, 359.999, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := House(tt.asc, tt.body); got != tt.want {
				t.Errorf("House(%v, %v) = %d, want %d", tt.asc, tt.body, got, tt.want)
			}
		})
	}
}

func TestHouseOfAscendantIsFirst(t *testing.T) {
	t.Parallel()
	for asc := 0.0; asc < FullCircle; asc += 1.7 {
		if got := House(asc, asc); got != 1 {
			t.Fatalf("House(%v, %v) = %d, want 1", asc, asc, got)
		}
	}
}

func TestRelativeHouse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		house, origin, want int
	}{
		{1, 1, 1},
		{4, 1, 4},
		{1, 4, 10},
		{12, 12, 1},
		{3, 12, 4},
	}
	for _, tt := range tests {
		if got := RelativeHouse(tt.house, tt.origin); got != tt.want {
			t.Errorf("RelativeHouse(%d, %d) = %d, want %d", tt.house, tt.origin, got, tt.want)
		}
	}
}
