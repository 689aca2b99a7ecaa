package planner

// freeWindow is the half-width of the square neighborhood a cell must clear
// for IsFree: the cell plus ±freeWindow in each axis must be unoccupied.
const freeWindow = 5

// OccupancyGrid is a binary validity oracle over grid cells, derived once
// from a World by thresholding and read-only afterwards.
type OccupancyGrid struct {
	cells  []bool // true = occupied
	width  int
	height int
}

// NewOccupancyGrid thresholds a world into an occupancy grid. A cell is
// occupied iff its first color channel is zero, matching the map exports this
// planner consumes (obstacles are drawn black on a non-black background).
func NewOccupancyGrid(w *World) *OccupancyGrid {
	g := NewEmptyGrid(w.Width(), w.Height())
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if r, _, _ := w.At(x, y); r == 0 {
				g.cells[y*g.width+x] = true
			}
		}
	}
	return g
}

// NewEmptyGrid returns an all-free grid of the given size.
func NewEmptyGrid(width, height int) *OccupancyGrid {
	return &OccupancyGrid{
		cells:  make([]bool, width*height),
		width:  width,
		height: height,
	}
}

// Width returns the number of columns.
func (g *OccupancyGrid) Width() int { return g.width }

// Height returns the number of rows.
func (g *OccupancyGrid) Height() int { return g.height }

// Occupy marks a single cell occupied. Grids are normally derived from a
// World and then frozen; this exists for building grids programmatically.
func (g *OccupancyGrid) Occupy(x, y int) {
	if x >= 0 && x < g.width && y >= 0 && y < g.height {
		g.cells[y*g.width+x] = true
	}
}

// InBounds reports whether a point lies inside the grid extent.
func (g *OccupancyGrid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// IsFree reports whether a point and its surrounding freeWindow neighborhood
// are entirely unoccupied. A point outside the grid is never free, so steering
// past the border rejects the candidate instead of faulting. The neighborhood
// window is clamped at the borders: near-border cells are judged on the part
// of the window that exists.
func (g *OccupancyGrid) IsFree(p Point) bool {
	if !g.InBounds(p) {
		return false
	}

	x0, x1 := p.X-freeWindow, p.X+freeWindow-1
	y0, y1 := p.Y-freeWindow, p.Y+freeWindow-1
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 >= g.width {
		x1 = g.width - 1
	}
	if y1 >= g.height {
		y1 = g.height - 1
	}

	for y := y0; y <= y1; y++ {
		row := y * g.width
		for x := x0; x <= x1; x++ {
			if g.cells[row+x] {
				return false
			}
		}
	}
	return true
}
