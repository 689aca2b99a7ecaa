package planner

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestTreeRenderer_Render(t *testing.T) {
	world := NewBlankWorld(100, 100)
	world.FillRect(60, 60, 69, 69)

	r := NewTreeRenderer(world)
	r.RecordEdge(Point{X: 20, Y: 20}, Point{X: 35, Y: 30})
	r.RecordEdge(Point{X: 35, Y: 30}, Point{X: 50, Y: 50})
	r.SetPlan(Plan{{X: 20, Y: 20}, {X: 50, Y: 50}, {X: 80, Y: 80}})

	img := r.Render()

	bounds := img.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 100 {
		t.Fatalf("image size = %dx%d, want 100x100", bounds.Dx(), bounds.Dy())
	}

	// The plan polyline passes through (50,50) and is drawn over the tree.
	if got := img.RGBAAt(50, 50); got != r.PlanColor {
		t.Errorf("pixel at plan vertex = %v, want plan color %v", got, r.PlanColor)
	}

	// Obstacle pixels from the world survive where nothing is drawn on top.
	if got := img.RGBAAt(65, 62); got.R != 0 {
		t.Errorf("obstacle pixel = %v, want black", got)
	}

	// Start marker covers the first plan point.
	if got := img.RGBAAt(20, 20); got != r.StartColor {
		t.Errorf("pixel at start marker = %v, want start color %v", got, r.StartColor)
	}
}

func TestTreeRenderer_EdgeCount(t *testing.T) {
	r := NewTreeRenderer(NewBlankWorld(50, 50))
	if r.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", r.EdgeCount())
	}

	r.RecordEdge(Point{X: 1, Y: 1}, Point{X: 2, Y: 2})
	r.RecordEdge(Point{X: 2, Y: 2}, Point{X: 3, Y: 3})
	if r.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", r.EdgeCount())
	}
}

func TestTreeRenderer_NoGoalMarkerWithoutPlan(t *testing.T) {
	r := NewTreeRenderer(NewBlankWorld(50, 50))
	r.SetPlan(Plan{{X: 25, Y: 25}})

	img := r.Render()

	// A one-point plan draws only the start marker.
	if got := img.RGBAAt(25, 25); got != r.StartColor {
		t.Errorf("pixel at start = %v, want start color", got)
	}
}

func TestTreeRenderer_SavePNG(t *testing.T) {
	r := NewTreeRenderer(NewBlankWorld(80, 60))
	r.SetPlan(Plan{{X: 10, Y: 10}, {X: 70, Y: 50}})

	path := filepath.Join(t.TempDir(), "out.png")
	if err := r.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer func() { _ = f.Close() }()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if img.Bounds().Dx() != 80 || img.Bounds().Dy() != 60 {
		t.Errorf("decoded size = %dx%d, want 80x60", img.Bounds().Dx(), img.Bounds().Dy())
	}
}
