// Package search runs pathfinding strategies over abstract graphs,
// streaming paint events to a renderer as it explores. One shared
// loop drives every strategy; the frontier discipline and scoring
// function are the only moving parts.
package search

import (
	"fmt"
	"strings"
)

// Strategy selects the frontier discipline and scoring used by a run.
type Strategy uint8

const (
	BFS Strategy = iota
	DFS
	Dijkstra
	AStar
	Greedy
)

func (s Strategy) String() string {
	switch s {
	case BFS:
		return "bfs"
	case DFS:
		return "dfs"
	case Dijkstra:
		return "dijkstra"
	case AStar:
		return "astar"
	case Greedy:
		return "greedy"
	default:
		return "unknown"
	}
}

// ParseStrategy maps a wire name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bfs":
		return BFS, nil
	case "dfs":
		return DFS, nil
	case "dijkstra":
		return Dijkstra, nil
	case "astar", "a*":
		return AStar, nil
	case "greedy":
		return Greedy, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// needsHeuristic reports whether the strategy scores nodes with a
// heuristic estimate.
func (s Strategy) needsHeuristic() bool {
	return s == AStar || s == Greedy
}

// relaxes reports whether the strategy re-enqueues an already
// discovered node when a strictly cheaper path to it appears.
func (s Strategy) relaxes() bool {
	return s == Dijkstra || s == AStar
}
