package planner

import (
	"testing"
)

func TestSteer_Vertical(t *testing.T) {
	tests := []struct {
		name   string
		from   Point
		to     Point
		radius float64
		want   Point
	}{
		{
			name:   "straight up",
			from:   Point{X: 50, Y: 50},
			to:     Point{X: 50, Y: 10},
			radius: 20,
			want:   Point{X: 50, Y: 30},
		},
		{
			name:   "straight down",
			from:   Point{X: 50, Y: 50},
			to:     Point{X: 50, Y: 90},
			radius: 20,
			want:   Point{X: 50, Y: 70},
		},
		{
			name:   "target equals origin",
			from:   Point{X: 50, Y: 50},
			to:     Point{X: 50, Y: 50},
			radius: 20,
			want:   Point{X: 50, Y: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Steer(tt.from, tt.to, tt.radius, 100)
			if got != tt.want {
				t.Errorf("Steer(%v, %v, %g) = %v, want %v", tt.from, tt.to, tt.radius, got, tt.want)
			}
		})
	}
}

func TestSteer_Quadrants(t *testing.T) {
	// All cases steer 10 cells from (50,50) on a 100-row grid. Diagonal
	// results land at 50 +/- 10*cos(45) with truncation toward zero.
	tests := []struct {
		name string
		to   Point
		want Point
	}{
		{name: "right", to: Point{X: 90, Y: 50}, want: Point{X: 60, Y: 50}},
		{name: "left", to: Point{X: 10, Y: 50}, want: Point{X: 40, Y: 50}},
		{name: "up-right", to: Point{X: 60, Y: 40}, want: Point{X: 57, Y: 43}},
		{name: "up-left", to: Point{X: 40, Y: 40}, want: Point{X: 42, Y: 43}},
		{name: "down-left", to: Point{X: 40, Y: 60}, want: Point{X: 42, Y: 58}},
		{name: "down-right", to: Point{X: 60, Y: 60}, want: Point{X: 57, Y: 58}},
	}

	from := Point{X: 50, Y: 50}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Steer(from, tt.to, 10, 100)
			if got != tt.want {
				t.Errorf("Steer(%v, %v, 10) = %v, want %v", from, tt.to, got, tt.want)
			}
		})
	}
}

func TestSteer_ResultDistance(t *testing.T) {
	// Truncation can shave up to a cell off each axis, so the steered point
	// lands within sqrt(2) of the exact radius.
	from := Point{X: 100, Y: 100}
	targets := []Point{
		{X: 180, Y: 40}, {X: 20, Y: 40}, {X: 20, Y: 160}, {X: 180, Y: 160},
		{X: 100, Y: 10}, {X: 10, Y: 100}, {X: 173, Y: 99},
	}

	const radius = 25.0
	for _, to := range targets {
		got := Steer(from, to, radius, 200)
		d := from.Distance(got)
		if d < radius-1.5 || d > radius+1.5 {
			t.Errorf("Steer(%v, %v, %g) = %v at distance %g, want ~%g", from, to, radius, got, d, radius)
		}
	}
}

func TestSteer_FractionalDistance(t *testing.T) {
	// Interpolation along a segment uses fractional radii; they must land on
	// the segment, not at the far end.
	from := Point{X: 0, Y: 50}
	to := Point{X: 10, Y: 50}

	got := Steer(from, to, 2.5, 100)
	want := Point{X: 2, Y: 50}
	if got != want {
		t.Errorf("Steer(%v, %v, 2.5) = %v, want %v", from, to, got, want)
	}
}

func TestSteerToward(t *testing.T) {
	tests := []struct {
		name      string
		from      Point
		to        Point
		maxRadius float64
		want      Point
	}{
		{
			name:      "target inside radius is returned exactly",
			from:      Point{X: 0, Y: 0},
			to:        Point{X: 3, Y: 4},
			maxRadius: 5,
			want:      Point{X: 3, Y: 4},
		},
		{
			name:      "target just outside radius is capped",
			from:      Point{X: 0, Y: 50},
			to:        Point{X: 10, Y: 50},
			maxRadius: 5,
			want:      Point{X: 5, Y: 50},
		},
		{
			name:      "target equal to origin",
			from:      Point{X: 7, Y: 7},
			to:        Point{X: 7, Y: 7},
			maxRadius: 5,
			want:      Point{X: 7, Y: 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SteerToward(tt.from, tt.to, tt.maxRadius, 100)
			if got != tt.want {
				t.Errorf("SteerToward(%v, %v, %g) = %v, want %v", tt.from, tt.to, tt.maxRadius, got, tt.want)
			}
		})
	}
}

func BenchmarkSteer(b *testing.B) {
	from := Point{X: 100, Y: 100}
	to := Point{X: 37, Y: 181}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Steer(from, to, 30, 200)
	}
}
