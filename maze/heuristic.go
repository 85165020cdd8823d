package maze

// DefaultLayerPenalty is the extra cost estimate applied when a
// candidate and the goal sit on different layers.
const DefaultLayerPenalty = 8

// Manhattan estimates remaining distance on a flat grid.
func Manhattan(from, goal Position) int {
	return from.ManhattanTo(goal)
}

// LayeredManhattan is the plain 3-axis Manhattan distance.
func LayeredManhattan(from, goal LayeredPosition) int {
	return from.ManhattanTo(goal)
}

// LayerPenaltyHeuristic returns the 3-axis Manhattan distance plus a
// fixed penalty whenever the candidate sits on a different layer than
// the goal, biasing layered searches toward crossing portals early.
func LayerPenaltyHeuristic(penalty int) func(from, goal LayeredPosition) int {
	return func(from, goal LayeredPosition) int {
		h := from.ManhattanTo(goal)
		if from.Z != goal.Z {
			h += penalty
		}
		return h
	}
}
