package maze

import (
	"errors"
	"math/rand"
	"time"
)

var (
	ErrDimensionTooSmall = errors.New("maze: width and height must be at least 3")
	ErrTooFewOpenCells   = errors.New("maze: not enough open cells to place start and goal")
)

const (
	minDimension = 3

	// extraOpeningFactor scales the number of loop-opening attempts:
	// floor(width * height * (1 - density) * extraOpeningFactor).
	extraOpeningFactor = 0.1
)

// Config controls flat maze generation.
type Config struct {
	Width  int
	Height int
	// WallDensity in [0, 1]: 1 keeps the carved maze perfect, 0 attempts
	// the most extra openings. Values outside the range are clamped.
	WallDensity float64
	// Seed for the generator's random source. Seed <= 0 draws from the
	// clock; a positive seed reproduces the maze exactly.
	Seed int64
}

// Generate carves a maze with randomized Prim's algorithm on the
// odd-coordinate sub-lattice, opens extra loops according to
// WallDensity, and places Start and Goal. Even dimensions are
// incremented to the next odd value so the boundary stays a solid wall
// ring.
func Generate(cfg Config) (*Grid, error) {
	if cfg.Width < minDimension || cfg.Height < minDimension {
		return nil, ErrDimensionTooSmall
	}

	rng := newRand(cfg.Seed)
	g := NewGrid(ensureOdd(cfg.Width), ensureOdd(cfg.Height))
	g.carve(rng)
	g.addExtraOpenings(rng, extraOpeningAttempts(g.Width, g.Height, cfg.WallDensity))
	if err := g.placeStartAndGoal(rng); err != nil {
		return nil, err
	}
	return g, nil
}

func ensureOdd(v int) int {
	if v%2 == 0 {
		return v + 1
	}
	return v
}

func newRand(seed int64) *rand.Rand {
	if seed <= 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func extraOpeningAttempts(width, height int, density float64) int {
	if density < 0 {
		density = 0
	}
	if density > 1 {
		density = 1
	}
	return int(float64(width*height) * (1 - density) * extraOpeningFactor)
}

// wallFront is a frontier entry: the wall to open and the cell behind it.
type wallFront struct {
	wall Position
	cell Position
}

// carve runs randomized Prim's over the odd-coordinate cells. Each
// frontier pair joins an un-carved cell to the carved region through
// the wall between them; popping uniformly at random grows the maze as
// a spanning tree of the odd sub-lattice.
func (g *Grid) carve(rng *rand.Rand) {
	seed := g.randomOddPosition(rng)
	g.Cells[seed.Y][seed.X] = Open

	queued := map[Position]struct{}{seed: {}}
	frontier := g.frontierPairs(seed, queued)
	for len(frontier) > 0 {
		idx := rng.Intn(len(frontier))
		pair := frontier[idx]
		frontier[idx] = frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		if g.Cells[pair.cell.Y][pair.cell.X] != Wall {
			continue
		}
		g.Cells[pair.wall.Y][pair.wall.X] = Open
		g.Cells[pair.cell.Y][pair.cell.X] = Open
		frontier = append(frontier, g.frontierPairs(pair.cell, queued)...)
	}
}

// frontierPairs returns the 2-step neighbor pairs of cell whose targets
// are interior, still Wall, and not already queued.
func (g *Grid) frontierPairs(cell Position, queued map[Position]struct{}) []wallFront {
	var pairs []wallFront
	for _, d := range orthogonalSteps {
		target := Position{X: cell.X + 2*d.X, Y: cell.Y + 2*d.Y}
		if target.X < 1 || target.X > g.Width-2 || target.Y < 1 || target.Y > g.Height-2 {
			continue
		}
		if g.Cells[target.Y][target.X] != Wall {
			continue
		}
		if _, seen := queued[target]; seen {
			continue
		}
		queued[target] = struct{}{}
		pairs = append(pairs, wallFront{
			wall: Position{X: cell.X + d.X, Y: cell.Y + d.Y},
			cell: target,
		})
	}
	return pairs
}

// randomOddPosition picks a uniformly random odd-coordinate interior cell.
func (g *Grid) randomOddPosition(rng *rand.Rand) Position {
	return Position{
		X: 1 + 2*rng.Intn((g.Width-1)/2),
		Y: 1 + 2*rng.Intn((g.Height-1)/2),
	}
}

// addExtraOpenings attempts to knock loops into the carved tree. A
// candidate opens only when it is an interior Wall with at least two
// open 4-neighbors, which keeps the boundary intact and never creates
// dead-end stubs or disconnections.
func (g *Grid) addExtraOpenings(rng *rand.Rand, attempts int) {
	for i := 0; i < attempts; i++ {
		x := 1 + rng.Intn(g.Width-2)
		y := 1 + rng.Intn(g.Height-2)
		if g.Cells[y][x] != Wall {
			continue
		}
		if g.openNeighborCount(x, y) >= 2 {
			g.Cells[y][x] = Open
		}
	}
}

// placeStartAndGoal stamps Start preferentially in the top-left third
// of the grid and Goal in the bottom-right third, falling back to any
// open cell for Start and to the last open cell in scan order for
// Goal. Start and Goal never coincide.
func (g *Grid) placeStartAndGoal(rng *rand.Rand) error {
	open := g.openPositions()
	if len(open) < 2 {
		return ErrTooFewOpenCells
	}

	var startCands []Position
	for _, p := range open {
		if float64(p.X) < float64(g.Width)/3 && float64(p.Y) < float64(g.Height)/3 {
			startCands = append(startCands, p)
		}
	}
	var start Position
	if len(startCands) > 0 {
		start = startCands[rng.Intn(len(startCands))]
	} else {
		start = open[rng.Intn(len(open))]
	}

	var goalCands []Position
	for _, p := range open {
		if p == start {
			continue
		}
		if float64(p.X) > 2*float64(g.Width)/3 && float64(p.Y) > 2*float64(g.Height)/3 {
			goalCands = append(goalCands, p)
		}
	}
	var goal Position
	if len(goalCands) > 0 {
		goal = goalCands[rng.Intn(len(goalCands))]
	} else {
		for i := len(open) - 1; i >= 0; i-- {
			if open[i] != start {
				goal = open[i]
				break
			}
		}
	}

	g.Cells[start.Y][start.X] = Start
	g.Cells[goal.Y][goal.X] = Goal
	g.Start = start
	g.Goal = goal
	return nil
}

// openPositions lists Open cells in row-major scan order.
func (g *Grid) openPositions() []Position {
	var open []Position
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Cells[y][x] == Open {
				open = append(open, Position{X: x, Y: y})
			}
		}
	}
	return open
}
