package planner

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// TreeRenderer draws a planning run over its world map: the explored tree as
// thin edges, the final plan as a thick polyline, and labelled start/goal
// markers. Register RecordEdge as the planner's OnExtend callback to collect
// the tree while it grows.
type TreeRenderer struct {
	world *World
	edges [][2]Point
	plan  Plan

	TreeColor  color.RGBA
	PlanColor  color.RGBA
	StartColor color.RGBA
	GoalColor  color.RGBA
}

// NewTreeRenderer creates a renderer with default colors.
func NewTreeRenderer(world *World) *TreeRenderer {
	return &TreeRenderer{
		world:      world,
		TreeColor:  color.RGBA{100, 149, 237, 255}, // cornflower blue
		PlanColor:  color.RGBA{220, 20, 60, 255},   // crimson
		StartColor: color.RGBA{0, 100, 0, 255},     // dark green
		GoalColor:  color.RGBA{184, 134, 11, 255},  // dark goldenrod
	}
}

// RecordEdge stores one tree extension. It has the planner's ExtendFunc shape.
func (r *TreeRenderer) RecordEdge(from, to Point) {
	r.edges = append(r.edges, [2]Point{from, to})
}

// EdgeCount returns the number of recorded tree edges.
func (r *TreeRenderer) EdgeCount() int { return len(r.edges) }

// SetPlan stores the final plan to draw on top of the tree.
func (r *TreeRenderer) SetPlan(plan Plan) { r.plan = plan }

// Render composes the world, tree, and plan into an image.
func (r *TreeRenderer) Render() *image.RGBA {
	width, height := r.world.Width(), r.world.Height()
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cr, cg, cb := r.world.At(x, y)
			img.Set(x, y, color.RGBA{cr, cg, cb, 255})
		}
	}

	for _, e := range r.edges {
		drawLine(img, e[0], e[1], r.TreeColor)
	}

	for i := 0; i < len(r.plan)-1; i++ {
		drawThickLine(img, r.plan[i], r.plan[i+1], r.PlanColor)
	}

	if len(r.plan) > 0 {
		start := r.plan[0]
		drawCircle(img, start.X, start.Y, 4, r.StartColor)
		drawText(img, start.X+6, start.Y-6, "start", r.StartColor)
	}
	if r.plan.Found() {
		goal := r.plan[len(r.plan)-1]
		drawSquare(img, goal.X, goal.Y, 8, r.GoalColor)
		drawText(img, goal.X+6, goal.Y-6, "goal", r.GoalColor)
	}

	return img
}

// SavePNG renders and writes the image to a file.
func (r *TreeRenderer) SavePNG(path string) error {
	img := r.Render()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return png.Encode(f, img)
}

// drawLine draws a 1px segment by stepping the longer axis.
func drawLine(img *image.RGBA, a, b Point, c color.RGBA) {
	dx, dy := b.X-a.X, b.Y-a.Y
	steps := abs(dx)
	if abs(dy) > steps {
		steps = abs(dy)
	}
	if steps == 0 {
		setPixel(img, a.X, a.Y, c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := a.X + int(t*float64(dx))
		y := a.Y + int(t*float64(dy))
		setPixel(img, x, y, c)
	}
}

// drawThickLine draws a segment as a 3px-wide band for plan visibility.
func drawThickLine(img *image.RGBA, a, b Point, c color.RGBA) {
	for ox := -1; ox <= 1; ox++ {
		for oy := -1; oy <= 1; oy++ {
			drawLine(img, Point{a.X + ox, a.Y + oy}, Point{b.X + ox, b.Y + oy}, c)
		}
	}
}

// drawCircle draws a filled circle.
func drawCircle(img *image.RGBA, cx, cy, radius int, c color.RGBA) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				setPixel(img, cx+dx, cy+dy, c)
			}
		}
	}
}

// drawSquare draws a filled square.
func drawSquare(img *image.RGBA, cx, cy, size int, c color.RGBA) {
	half := size / 2
	for dy := -half; dy <= half; dy++ {
		for dx := -half; dx <= half; dx++ {
			setPixel(img, cx+dx, cy+dy, c)
		}
	}
}

// drawText renders a label at the given position.
func drawText(img *image.RGBA, x, y int, text string, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

func setPixel(img *image.RGBA, x, y int, c color.RGBA) {
	if x >= 0 && x < img.Bounds().Max.X && y >= 0 && y < img.Bounds().Max.Y {
		img.Set(x, y, c)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
