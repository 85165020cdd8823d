package search

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUnknownStrategy = errors.New("search: unknown strategy")
	ErrNilHeuristic    = errors.New("search: strategy requires a heuristic")
	ErrNilGraph        = errors.New("search: graph must not be nil")
)

// Graph yields the traversable neighbors of a node. Implementations
// own all bounds and wall filtering; the engine never sees an invalid
// node.
type Graph[N comparable] interface {
	Neighbors(N) []N
}

// Heuristic estimates the remaining cost from a node to the goal. It
// must never be negative.
type Heuristic[N comparable] func(from, goal N) int

// LayerCrosser is implemented by graphs whose edges may jump between
// layers. The engine resolves it once at run start and emits edge
// paint events for crossing path edges.
type LayerCrosser[N comparable] interface {
	CrossesLayers(from, to N) bool
}

// NodePainter receives node paint events.
type NodePainter[N comparable] func(node N, tag Tag)

// EdgePainter receives edge paint events.
type EdgePainter[N comparable] func(from, to N, tag Tag)

// Engine runs one strategy over graphs of node type N.
type Engine[N comparable] struct {
	strategy  Strategy
	heuristic Heuristic[N]
	onNode    NodePainter[N]
	onEdge    EdgePainter[N]
	stepDelay time.Duration
}

// Option configures an Engine.
type Option[N comparable] func(*Engine[N])

// WithHeuristic sets the estimate used by AStar and Greedy.
func WithHeuristic[N comparable](h Heuristic[N]) Option[N] {
	return func(e *Engine[N]) { e.heuristic = h }
}

// WithNodePainter registers the node paint callback.
func WithNodePainter[N comparable](p NodePainter[N]) Option[N] {
	return func(e *Engine[N]) { e.onNode = p }
}

// WithEdgePainter registers the edge paint callback.
func WithEdgePainter[N comparable](p EdgePainter[N]) Option[N] {
	return func(e *Engine[N]) { e.onEdge = p }
}

// WithStepDelay sets the pacing suspension applied after each visit
// paint (path paints suspend for half of it). Zero or negative never
// sleeps; correctness does not depend on the value.
func WithStepDelay[N comparable](d time.Duration) Option[N] {
	return func(e *Engine[N]) { e.stepDelay = d }
}

// NewEngine validates the strategy and its options. AStar and Greedy
// require a heuristic.
func NewEngine[N comparable](strategy Strategy, opts ...Option[N]) (*Engine[N], error) {
	if strategy > Greedy {
		return nil, ErrUnknownStrategy
	}
	e := &Engine[N]{strategy: strategy}
	for _, opt := range opts {
		opt(e)
	}
	if e.strategy.needsHeuristic() && e.heuristic == nil {
		return nil, ErrNilHeuristic
	}
	return e, nil
}

// Result reports the outcome of a run. Found false with a nil error
// means the goal is unreachable; it is not an error.
type Result[N comparable] struct {
	Path    []N
	Visited int
	Found   bool
}

// Run explores g from start until goal is dequeued, the frontier
// drains, or ctx is cancelled. Cancellation is checked once per
// iteration and inside every pacing suspension; after it fires no
// further callbacks run and the zero Result is returned with ctx's
// error. Paint callbacks fire on the calling goroutine.
func (e *Engine[N]) Run(ctx context.Context, g Graph[N], start, goal N) (Result[N], error) {
	if g == nil {
		return Result[N]{}, ErrNilGraph
	}

	crosser, _ := g.(LayerCrosser[N])
	front := newFrontier[N](e.strategy)
	costs := map[N]int{start: 0}
	parents := make(map[N]N)
	visited := make(map[N]struct{})
	visitedCount := 0

	front.push(entry[N]{node: start})
	for front.len() > 0 {
		select {
		case <-ctx.Done():
			return Result[N]{}, ctx.Err()
		default:
		}

		cur, _ := front.pop()
		if _, seen := visited[cur.node]; seen {
			// Stale entry: priority frontiers may hold a node more than
			// once when a cheaper path re-enqueued it.
			continue
		}
		visited[cur.node] = struct{}{}
		visitedCount++

		if cur.node != start && cur.node != goal {
			e.paintNode(cur.node, TagVisited)
			if err := e.pause(ctx, e.stepDelay); err != nil {
				return Result[N]{}, err
			}
		}

		if cur.node == goal {
			path := reconstructPath(parents, start, goal)
			if err := e.emitPath(ctx, path, crosser); err != nil {
				return Result[N]{}, err
			}
			return Result[N]{Path: path, Visited: visitedCount, Found: true}, nil
		}

		for _, nbr := range g.Neighbors(cur.node) {
			if _, seen := visited[nbr]; seen {
				continue
			}
			nextCost := cur.cost + 1
			if known, discovered := costs[nbr]; discovered && (!e.strategy.relaxes() || nextCost >= known) {
				continue
			}
			costs[nbr] = nextCost
			parents[nbr] = cur.node
			front.push(entry[N]{node: nbr, cost: nextCost, priority: e.priority(nbr, goal, nextCost)})
			if nbr != goal {
				e.paintNode(nbr, TagFrontier)
			}
		}
	}

	return Result[N]{Visited: visitedCount, Found: false}, nil
}

// priority computes the frontier ordering key for a node.
func (e *Engine[N]) priority(node, goal N, cost int) int {
	switch e.strategy {
	case Dijkstra:
		return cost
	case AStar:
		return cost + e.heuristic(node, goal)
	case Greedy:
		return e.heuristic(node, goal)
	default:
		return 0
	}
}

// emitPath paints interior path nodes at half pace and flags
// layer-crossing edges along the way.
func (e *Engine[N]) emitPath(ctx context.Context, path []N, crosser LayerCrosser[N]) error {
	for i := 1; i < len(path); i++ {
		if i < len(path)-1 {
			e.paintNode(path[i], TagPath)
			if err := e.pause(ctx, e.stepDelay/2); err != nil {
				return err
			}
		}
		if crosser != nil && crosser.CrossesLayers(path[i-1], path[i]) {
			e.paintEdge(path[i-1], path[i], TagPath)
		}
	}
	return nil
}

func (e *Engine[N]) paintNode(node N, tag Tag) {
	if e.onNode != nil {
		e.onNode(node, tag)
	}
}

func (e *Engine[N]) paintEdge(from, to N, tag Tag) {
	if e.onEdge != nil {
		e.onEdge(from, to, tag)
	}
}

// pause suspends for d, returning early with ctx's error when the run
// is cancelled mid-sleep.
func (e *Engine[N]) pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
