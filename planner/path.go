package planner

// extractPath walks parent indices from a terminal node to the root and
// reverses the result so the plan runs start to goal. The walk is bounded by
// the node count: exceeding it means a cycle or dangling parent, which the
// growth invariants rule out, so it fails loudly instead of looping.
func extractPath(t *tree, terminal int) (Plan, error) {
	var reversed []Point
	for id := terminal; id != -1; id = t.nodes[id].parent {
		if len(reversed) >= len(t.nodes) {
			return nil, ErrBrokenTree
		}
		reversed = append(reversed, t.nodes[id].pt)
	}

	plan := make(Plan, len(reversed))
	for i, p := range reversed {
		plan[len(reversed)-1-i] = p
	}
	return plan, nil
}
