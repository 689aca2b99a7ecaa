package planner

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
)

// World is the raw colored map the occupancy grid is derived from: one RGB
// cell per pixel, row-major, with rows growing downward. It stays around after
// grid construction so renderers can draw the tree and plan on top of it.
type World struct {
	img *image.NRGBA
}

// NewWorldFromImage copies an arbitrary decoded image into a World.
func NewWorldFromImage(src image.Image) *World {
	b := src.Bounds()
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)
	return &World{img: img}
}

// NewBlankWorld returns an all-free (white) world of the given size.
func NewBlankWorld(width, height int) *World {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
		}
	}
	return &World{img: img}
}

// LoadWorld reads a PNG map from disk.
func LoadWorld(path string) (*World, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening map file: %w", err)
	}
	defer func() { _ = f.Close() }()

	src, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding map PNG %s: %w", path, err)
	}
	return NewWorldFromImage(src), nil
}

// Width returns the number of columns.
func (w *World) Width() int { return w.img.Bounds().Dx() }

// Height returns the number of rows.
func (w *World) Height() int { return w.img.Bounds().Dy() }

// At returns the RGB triple at a cell. The caller must stay in bounds.
func (w *World) At(x, y int) (r, g, b uint8) {
	c := w.img.NRGBAAt(x, y)
	return c.R, c.G, c.B
}

// FillRect paints a rectangle of cells black (occupied). Used to build
// synthetic obstacle maps for tests and examples.
func (w *World) FillRect(x0, y0, x1, y1 int) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if image.Pt(x, y).In(w.img.Bounds()) {
				w.img.SetNRGBA(x, y, color.NRGBA{0, 0, 0, 255})
			}
		}
	}
}

// Image returns the backing image for rendering. Treat it as read-only once
// planning has started.
func (w *World) Image() *image.NRGBA { return w.img }
