package planner

import "errors"

// Sentinel errors surfaced by Plan and the grid accessors. They are wrapped
// with context at the call site; match with errors.Is.
var (
	// ErrInvalidStart means the requested start cell lies in occupied space.
	ErrInvalidStart = errors.New("start lies in occupied space")

	// ErrInvalidGoal means the requested goal cell lies in occupied space.
	ErrInvalidGoal = errors.New("goal lies in occupied space")

	// ErrOutOfBounds means a coordinate falls outside the grid extent.
	ErrOutOfBounds = errors.New("coordinate outside grid bounds")

	// ErrBrokenTree means path extraction walked more steps than the tree has
	// nodes, which can only happen if a prior invariant was violated.
	ErrBrokenTree = errors.New("search tree structure is broken")
)
