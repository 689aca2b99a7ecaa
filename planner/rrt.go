package planner

import (
	"fmt"
	"math/rand"
	"time"
)

// segmentChecks is the fixed number of interpolated samples used to judge a
// candidate edge. Obstacles thinner than the resulting sampling interval can
// slip between samples; that is an accepted tradeoff of this design and a
// caller-visible limitation, not a bug.
const segmentChecks = 10

// ExtendFunc observes each successful tree extension. Renderers use it to
// record edges; it runs synchronously inside the planning loop, so it should
// be cheap.
type ExtendFunc func(from, to Point)

// Planner grows a rapidly-exploring random tree over an occupancy grid. The
// tree is feasibility-oriented: it finds some collision-free path, not the
// shortest one. One Planner instance serves one grid; each Plan call builds
// its own tree, so a Planner is safe to reuse sequentially but a single call
// owns all of its state.
type Planner struct {
	grid     *OccupancyGrid
	rng      *rand.Rand
	onExtend ExtendFunc
}

// New creates a planner over the given grid. The random source drives
// sampling; pass a seeded rand.Rand for reproducible runs, or nil to seed
// from the clock.
func New(grid *OccupancyGrid, rng *rand.Rand) *Planner {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Planner{grid: grid, rng: rng}
}

// OnExtend registers a callback invoked after every edge insertion.
func (pl *Planner) OnExtend(fn ExtendFunc) {
	pl.onExtend = fn
}

// node is one arena record of the search tree. Tree linkage lives here, not
// on Point values: parent is an arena index (-1 for the root) and children
// are non-owning index references.
type node struct {
	pt       Point
	parent   int
	children []int
}

// tree is the arena plus a coordinate set for dedup. Nodes are only ever
// appended as children of existing nodes and never re-parented, so the
// structure is acyclic by construction and only grows.
type tree struct {
	nodes   []node
	byPoint map[Point]int
	index   nearestIndex
}

func newTree(root Point, index nearestIndex) *tree {
	t := &tree{
		byPoint: map[Point]int{root: 0},
		index:   index,
	}
	t.nodes = append(t.nodes, node{pt: root, parent: -1})
	index.insert(root, 0)
	return t
}

// insert appends a node parented at the given arena index and returns the new
// node's index.
func (t *tree) insert(p Point, parent int) int {
	id := len(t.nodes)
	t.nodes = append(t.nodes, node{pt: p, parent: parent})
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	t.byPoint[p] = id
	t.index.insert(p, id)
	return id
}

// Plan searches for a collision-free path from start to goal.
//
// Preconditions: both endpoints must be inside the grid and pass the
// free-space test; violations surface as ErrOutOfBounds, ErrInvalidStart or
// ErrInvalidGoal. When start is already within GoalRadius of goal the plan
// [start, goal] is returned immediately without sampling.
//
// Exhausting MaxIterations without reaching the goal radius returns the
// single-element plan [start] and a nil error: "no path found" is an expected
// outcome callers distinguish by plan length.
func (pl *Planner) Plan(start, goal Point, opts Options) (Plan, error) {
	if opts.SteerRadius <= 0 || opts.GoalRadius <= 0 {
		return nil, fmt.Errorf("steer radius %g and goal radius %g must be positive", opts.SteerRadius, opts.GoalRadius)
	}
	if !pl.grid.InBounds(start) {
		return nil, fmt.Errorf("start (%d,%d): %w", start.X, start.Y, ErrOutOfBounds)
	}
	if !pl.grid.InBounds(goal) {
		return nil, fmt.Errorf("goal (%d,%d): %w", goal.X, goal.Y, ErrOutOfBounds)
	}
	if !pl.grid.IsFree(start) {
		return nil, fmt.Errorf("(%d,%d): %w", start.X, start.Y, ErrInvalidStart)
	}
	if !pl.grid.IsFree(goal) {
		return nil, fmt.Errorf("(%d,%d): %w", goal.X, goal.Y, ErrInvalidGoal)
	}

	if start.Distance(goal) < opts.GoalRadius {
		return Plan{start, goal}, nil
	}

	index, err := newNearestIndex(opts.Nearest)
	if err != nil {
		return nil, err
	}
	t := newTree(start, index)

	for i := 0; i < opts.MaxIterations; i++ {
		sample := pl.sample()
		nearestID := t.index.nearest(sample)
		nearest := t.nodes[nearestID].pt

		cand := SteerToward(nearest, sample, opts.SteerRadius, pl.grid.Height())
		if _, exists := t.byPoint[cand]; exists {
			// Re-sampled an existing coordinate; the node is already a tree
			// member, so inserting again would violate the growth invariant.
			continue
		}
		if !pl.SegmentFree(nearest, cand) {
			continue
		}

		id := t.insert(cand, nearestID)
		if pl.onExtend != nil {
			pl.onExtend(nearest, cand)
		}

		if cand.Distance(goal) < opts.GoalRadius {
			goalID := t.insert(goal, id)
			if pl.onExtend != nil {
				pl.onExtend(cand, goal)
			}
			return extractPath(t, goalID)
		}
	}

	return Plan{start}, nil
}

// sample draws a uniformly random in-bounds cell.
func (pl *Planner) sample() Point {
	return Point{
		X: pl.rng.Intn(pl.grid.Width()),
		Y: pl.rng.Intn(pl.grid.Height()),
	}
}

// SegmentFree reports whether the straight segment between two free cells is
// obstacle-free. The endpoint is checked first, then segmentChecks
// interpolated samples at fractions 0, 1/n, ..., (n-1)/n of the distance.
// `from` is assumed free (every tree node passed the check when inserted).
func (pl *Planner) SegmentFree(from, to Point) bool {
	if !pl.grid.IsFree(to) {
		return false
	}

	total := from.Distance(to)
	for i := 0; i < segmentChecks; i++ {
		d := float64(i) / segmentChecks * total
		if !pl.grid.IsFree(Steer(from, to, d, pl.grid.Height())) {
			return false
		}
	}
	return true
}
