package planner

import (
	"image/color"
	"image/png"
	"io"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"github.com/tdewolff/canvas/renderers/svg"
)

// VectorRenderer draws a planning run as vector graphics: tree edges as thin
// strokes, the plan as a thick stroke, and circle markers for the endpoints.
// Canvas coordinates match grid cells one-to-one.
type VectorRenderer struct {
	width  int
	height int
	edges  [][2]Point
	plan   Plan

	TreeColor  color.RGBA
	PlanColor  color.RGBA
	StartColor color.RGBA
	GoalColor  color.RGBA
	Resolution canvas.Resolution // for PNG output
}

// NewVectorRenderer creates a vector renderer for a grid of the given size.
func NewVectorRenderer(width, height int) *VectorRenderer {
	return &VectorRenderer{
		width:      width,
		height:     height,
		TreeColor:  color.RGBA{100, 149, 237, 255},
		PlanColor:  color.RGBA{220, 20, 60, 255},
		StartColor: color.RGBA{0, 100, 0, 255},
		GoalColor:  color.RGBA{184, 134, 11, 255},
		Resolution: canvas.DPI(96),
	}
}

// RecordEdge stores one tree extension. It has the planner's ExtendFunc shape.
func (r *VectorRenderer) RecordEdge(from, to Point) {
	r.edges = append(r.edges, [2]Point{from, to})
}

// SetPlan stores the final plan to draw on top of the tree.
func (r *VectorRenderer) SetPlan(plan Plan) { r.plan = plan }

// canvasRenderer is the part of the canvas renderers this type needs.
type canvasRenderer interface {
	RenderPath(path *canvas.Path, style canvas.Style, m canvas.Matrix)
}

// RenderToSVG writes the scene as an SVG to the provided writer.
func (r *VectorRenderer) RenderToSVG(w io.Writer) error {
	svgRenderer := svg.New(w, float64(r.width), float64(r.height), nil)
	r.renderToCanvas(svgRenderer)
	return svgRenderer.Close()
}

// RenderToPNG rasterizes the scene and writes it as a PNG.
func (r *VectorRenderer) RenderToPNG(w io.Writer) error {
	rast := rasterizer.New(float64(r.width), float64(r.height), r.Resolution, canvas.DefaultColorSpace)
	r.renderToCanvas(rast)
	return png.Encode(w, rast)
}

func (r *VectorRenderer) renderToCanvas(renderer canvasRenderer) {
	// White background.
	bgStyle := canvas.DefaultStyle
	bgStyle.Fill = canvas.Paint{Color: canvas.White}
	renderer.RenderPath(canvas.Rectangle(float64(r.width), float64(r.height)), bgStyle, canvas.Identity)

	// Canvas Y grows upward while grid rows grow downward, so rows are
	// flipped on the way in.
	toCanvas := func(p Point) (float64, float64) {
		return float64(p.X), float64(r.height - p.Y)
	}

	// Tree edges.
	edgeStyle := canvas.DefaultStyle
	edgeStyle.Fill = canvas.Paint{Color: canvas.Transparent}
	edgeStyle.Stroke = canvas.Paint{Color: r.TreeColor}
	edgeStyle.StrokeWidth = 0.5

	for _, e := range r.edges {
		p := &canvas.Path{}
		x1, y1 := toCanvas(e[0])
		x2, y2 := toCanvas(e[1])
		p.MoveTo(x1, y1)
		p.LineTo(x2, y2)
		renderer.RenderPath(p, edgeStyle, canvas.Identity)
	}

	// Plan polyline.
	if len(r.plan) > 1 {
		planStyle := canvas.DefaultStyle
		planStyle.Fill = canvas.Paint{Color: canvas.Transparent}
		planStyle.Stroke = canvas.Paint{Color: r.PlanColor}
		planStyle.StrokeWidth = 2.0

		p := &canvas.Path{}
		for i, pt := range r.plan {
			cx, cy := toCanvas(pt)
			if i == 0 {
				p.MoveTo(cx, cy)
			} else {
				p.LineTo(cx, cy)
			}
		}
		renderer.RenderPath(p, planStyle, canvas.Identity)
	}

	// Endpoint markers.
	if len(r.plan) > 0 {
		r.drawMarker(renderer, r.plan[0], r.StartColor)
	}
	if r.plan.Found() {
		r.drawMarker(renderer, r.plan[len(r.plan)-1], r.GoalColor)
	}
}

func (r *VectorRenderer) drawMarker(renderer canvasRenderer, p Point, c color.RGBA) {
	style := canvas.DefaultStyle
	style.Fill = canvas.Paint{Color: c}
	style.Stroke = canvas.Paint{Color: canvas.Black}
	style.StrokeWidth = 0.5

	circle := canvas.Circle(4.0)
	circle = circle.Translate(float64(p.X), float64(r.height-p.Y))
	renderer.RenderPath(circle, style, canvas.Identity)
}
