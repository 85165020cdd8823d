package search

// reconstructPath walks parent links from goal back to start and
// reverses the result in place. An unreachable goal yields whatever
// prefix the parent map covers; callers only invoke it after the goal
// was dequeued, so the chain is always complete.
func reconstructPath[N comparable](parents map[N]N, start, goal N) []N {
	path := []N{goal}
	cur := goal
	for cur != start {
		prev, ok := parents[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
