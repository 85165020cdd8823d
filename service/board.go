package service

import (
	"context"
	"image"

	"github.com/FilipeBHenriques/AlgoVizualizer/maze"
	"github.com/FilipeBHenriques/AlgoVizualizer/search"
	"github.com/FilipeBHenriques/AlgoVizualizer/service/i"
)

// board adapts one maze, flat or layered, to the session manager.
// Node types and heuristics are resolved here once, so the manager
// never cares about dimensionality.
type board interface {
	snapshot() i.BoardSnapshot
	run(ctx context.Context, params i.SearchParams, onNode nodeEmitter, onEdge edgeEmitter) (runSummary, error)
	image(cellSize int) (image.Image, error)
}

type nodeEmitter func(node i.Coordinate, tag search.Tag)

type edgeEmitter func(from, to i.Coordinate, tag search.Tag)

type runSummary struct {
	found      bool
	visited    int
	pathLength int
}

type flatBoard struct {
	grid *maze.Grid
}

func (b *flatBoard) snapshot() i.BoardSnapshot {
	cells := [][][]string{kindNames(b.grid)}
	return i.BoardSnapshot{
		Width:      b.grid.Width,
		Height:     b.grid.Height,
		LayerCount: 1,
		Start:      i.Coordinate{X: b.grid.Start.X, Y: b.grid.Start.Y},
		Goal:       i.Coordinate{X: b.grid.Goal.X, Y: b.grid.Goal.Y},
		Cells:      cells,
	}
}

func (b *flatBoard) run(ctx context.Context, params i.SearchParams, onNode nodeEmitter, onEdge edgeEmitter) (runSummary, error) {
	engine, err := search.NewEngine[maze.Position](params.Strategy,
		search.WithHeuristic[maze.Position](maze.Manhattan),
		search.WithStepDelay[maze.Position](params.StepDelay),
		search.WithNodePainter[maze.Position](func(p maze.Position, tag search.Tag) {
			onNode(i.Coordinate{X: p.X, Y: p.Y}, tag)
		}),
	)
	if err != nil {
		return runSummary{}, err
	}

	res, err := engine.Run(ctx, b.grid, b.grid.Start, b.grid.Goal)
	if err != nil {
		return runSummary{}, err
	}
	return runSummary{found: res.Found, visited: res.Visited, pathLength: len(res.Path)}, nil
}

func (b *flatBoard) image(cellSize int) (image.Image, error) {
	return b.grid.RenderImage(cellSize), nil
}

type layeredBoard struct {
	grid *maze.LayeredGrid
}

func (b *layeredBoard) snapshot() i.BoardSnapshot {
	cells := make([][][]string, len(b.grid.Layers))
	for z, layer := range b.grid.Layers {
		cells[z] = kindNames(layer)
	}
	return i.BoardSnapshot{
		Width:      b.grid.Width,
		Height:     b.grid.Height,
		LayerCount: len(b.grid.Layers),
		Start:      i.Coordinate{X: b.grid.Start.X, Y: b.grid.Start.Y, Z: b.grid.Start.Z},
		Goal:       i.Coordinate{X: b.grid.Goal.X, Y: b.grid.Goal.Y, Z: b.grid.Goal.Z},
		Cells:      cells,
	}
}

func (b *layeredBoard) run(ctx context.Context, params i.SearchParams, onNode nodeEmitter, onEdge edgeEmitter) (runSummary, error) {
	// Greedy rides the raw distance; AStar gets the layer penalty to
	// bias it toward portals early.
	heuristic := maze.LayerPenaltyHeuristic(maze.DefaultLayerPenalty)
	if params.Strategy == search.Greedy {
		heuristic = maze.LayeredManhattan
	}

	engine, err := search.NewEngine[maze.LayeredPosition](params.Strategy,
		search.WithHeuristic[maze.LayeredPosition](heuristic),
		search.WithStepDelay[maze.LayeredPosition](params.StepDelay),
		search.WithNodePainter[maze.LayeredPosition](func(p maze.LayeredPosition, tag search.Tag) {
			onNode(layeredCoord(p), tag)
		}),
		search.WithEdgePainter[maze.LayeredPosition](func(from, to maze.LayeredPosition, tag search.Tag) {
			onEdge(layeredCoord(from), layeredCoord(to), tag)
		}),
	)
	if err != nil {
		return runSummary{}, err
	}

	res, err := engine.Run(ctx, b.grid, b.grid.Start, b.grid.Goal)
	if err != nil {
		return runSummary{}, err
	}
	return runSummary{found: res.Found, visited: res.Visited, pathLength: len(res.Path)}, nil
}

func (b *layeredBoard) image(cellSize int) (image.Image, error) {
	return b.grid.RenderImage(cellSize)
}

func layeredCoord(p maze.LayeredPosition) i.Coordinate {
	return i.Coordinate{X: p.X, Y: p.Y, Z: p.Z}
}

// kindNames copies one layer's cell kinds as their wire names.
func kindNames(g *maze.Grid) [][]string {
	rows := make([][]string, g.Height)
	for y := 0; y < g.Height; y++ {
		row := make([]string, g.Width)
		for x := 0; x < g.Width; x++ {
			row[x] = g.Cells[y][x].String()
		}
		rows[y] = row
	}
	return rows
}
