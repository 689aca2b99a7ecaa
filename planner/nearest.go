package planner

import (
	"fmt"

	"github.com/dhconnelly/rtreego"
)

// nearestIndex answers "which existing tree node is closest to this sample".
// The linear scan is the reference behavior; the R-tree variant is the
// drop-in spatial index for large trees. Entries are identified by their
// arena index and are never removed.
type nearestIndex interface {
	insert(p Point, id int)
	nearest(p Point) int
}

func newNearestIndex(strategy string) (nearestIndex, error) {
	switch strategy {
	case "", NearestLinear:
		return &linearIndex{}, nil
	case NearestRTree:
		return newRTreeIndex(), nil
	default:
		return nil, fmt.Errorf("unknown nearest-neighbor strategy %q", strategy)
	}
}

// linearIndex scans all nodes for the minimum Euclidean distance. Ties go to
// the first node in insertion order.
type linearIndex struct {
	entries []struct {
		p  Point
		id int
	}
}

func (li *linearIndex) insert(p Point, id int) {
	li.entries = append(li.entries, struct {
		p  Point
		id int
	}{p, id})
}

func (li *linearIndex) nearest(p Point) int {
	best := -1
	bestDist := 0.0
	for _, e := range li.entries {
		d := e.p.Distance(p)
		if best == -1 || d < bestDist {
			best = e.id
			bestDist = d
		}
	}
	return best
}

// rtreeIndex stores nodes in an R-tree for sublinear nearest queries. Each
// point becomes a tiny rect; the extent is small enough that rect distance
// ordering matches Euclidean ordering on integer cells.
type rtreeIndex struct {
	tree *rtreego.Rtree
}

const rtreePointExtent = 0.01

type rtreeEntry struct {
	p  Point
	id int
}

func (e *rtreeEntry) Bounds() rtreego.Rect {
	r, _ := rtreego.NewRect(
		rtreego.Point{float64(e.p.X), float64(e.p.Y)},
		[]float64{rtreePointExtent, rtreePointExtent},
	)
	return r
}

func newRTreeIndex() *rtreeIndex {
	return &rtreeIndex{tree: rtreego.NewTree(2, 25, 50)}
}

func (ri *rtreeIndex) insert(p Point, id int) {
	ri.tree.Insert(&rtreeEntry{p: p, id: id})
}

func (ri *rtreeIndex) nearest(p Point) int {
	found := ri.tree.NearestNeighbor(rtreego.Point{float64(p.X), float64(p.Y)})
	if found == nil {
		return -1
	}
	return found.(*rtreeEntry).id
}
