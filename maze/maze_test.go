package maze

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// parseGrid builds a grid from ascii rows so fixtures stay readable.
func parseGrid(t *testing.T, rows []string) *Grid {
	t.Helper()
	g := NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			switch row[x] {
			case '#':
				g.Cells[y][x] = Wall
			case '.':
				g.Cells[y][x] = Open
			case 'S':
				g.Cells[y][x] = Start
				g.Start = Position{X: x, Y: y}
			case 'G':
				g.Cells[y][x] = Goal
				g.Goal = Position{X: x, Y: y}
			case 'U':
				g.Cells[y][x] = PortalUp
			case 'D':
				g.Cells[y][x] = PortalDown
			}
		}
	}
	return g
}

func floodFrom(g *Grid, from Position) map[Position]struct{} {
	seen := map[Position]struct{}{from: {}}
	queue := []Position{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range g.Neighbors(cur) {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			queue = append(queue, n)
		}
	}
	return seen
}

func traversablePositions(g *Grid) []Position {
	var out []Position
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Cells[y][x].Traversable() {
				out = append(out, Position{X: x, Y: y})
			}
		}
	}
	return out
}

func countKind(g *Grid, kind CellKind) int {
	n := 0
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Cells[y][x] == kind {
				n++
			}
		}
	}
	return n
}

func TestGenerate(t *testing.T) {
	t.Run("rejects dimensions below minimum", func(t *testing.T) {
		_, err := Generate(Config{Width: 2, Height: 9})
		assert.ErrorIs(t, err, ErrDimensionTooSmall)

		_, err = Generate(Config{Width: 9, Height: 2})
		assert.ErrorIs(t, err, ErrDimensionTooSmall)
	})

	t.Run("too small to host start and goal", func(t *testing.T) {
		// A 3x3 perfect maze has a single carved cell.
		_, err := Generate(Config{Width: 3, Height: 3, WallDensity: 1, Seed: 5})
		assert.ErrorIs(t, err, ErrTooFewOpenCells)
	})

	t.Run("normalizes even dimensions", func(t *testing.T) {
		g, err := Generate(Config{Width: 8, Height: 6, WallDensity: 0.5, Seed: 7})
		assert.NoError(t, err)
		assert.Equal(t, 9, g.Width)
		assert.Equal(t, 7, g.Height)
		assert.Len(t, g.Cells, 7)
		assert.Len(t, g.Cells[0], 9)
	})

	t.Run("boundary stays a solid wall ring", func(t *testing.T) {
		g, err := Generate(Config{Width: 15, Height: 11, WallDensity: 0, Seed: 11})
		assert.NoError(t, err)
		for x := 0; x < g.Width; x++ {
			assert.Equal(t, Wall, g.Cells[0][x])
			assert.Equal(t, Wall, g.Cells[g.Height-1][x])
		}
		for y := 0; y < g.Height; y++ {
			assert.Equal(t, Wall, g.Cells[y][0])
			assert.Equal(t, Wall, g.Cells[y][g.Width-1])
		}
	})

	t.Run("stamps exactly one start and one goal", func(t *testing.T) {
		g, err := Generate(Config{Width: 13, Height: 13, WallDensity: 0.7, Seed: 21})
		assert.NoError(t, err)
		assert.Equal(t, 1, countKind(g, Start))
		assert.Equal(t, 1, countKind(g, Goal))
		assert.NotEqual(t, g.Start, g.Goal)

		kind, err := g.KindAt(g.Start)
		assert.NoError(t, err)
		assert.Equal(t, Start, kind)
		kind, err = g.KindAt(g.Goal)
		assert.NoError(t, err)
		assert.Equal(t, Goal, kind)
	})

	t.Run("every traversable cell is reachable from start", func(t *testing.T) {
		for seed := int64(1); seed <= 5; seed++ {
			g, err := Generate(Config{Width: 21, Height: 15, WallDensity: 0.3, Seed: seed})
			assert.NoError(t, err)

			reachable := floodFrom(g, g.Start)
			for _, p := range traversablePositions(g) {
				assert.Contains(t, reachable, p)
			}
		}
	})

	t.Run("density one keeps the carved tree only", func(t *testing.T) {
		// A perfect maze over the odd sub-lattice opens c cells plus
		// c-1 connecting walls.
		g, err := Generate(Config{Width: 5, Height: 5, WallDensity: 1, Seed: 3})
		assert.NoError(t, err)
		assert.Len(t, traversablePositions(g), 7)

		g, err = Generate(Config{Width: 9, Height: 9, WallDensity: 1, Seed: 3})
		assert.NoError(t, err)
		assert.Len(t, traversablePositions(g), 31)
	})

	t.Run("start favors top left and goal bottom right", func(t *testing.T) {
		for seed := int64(1); seed <= 5; seed++ {
			g, err := Generate(Config{Width: 21, Height: 21, WallDensity: 0.5, Seed: seed})
			assert.NoError(t, err)
			assert.Less(t, g.Start.X, 7)
			assert.Less(t, g.Start.Y, 7)
			assert.Greater(t, g.Goal.X, 14)
			assert.Greater(t, g.Goal.Y, 14)
		}
	})

	t.Run("same seed reproduces the maze", func(t *testing.T) {
		cfg := Config{Width: 11, Height: 9, WallDensity: 0.4, Seed: 42}
		first, err := Generate(cfg)
		assert.NoError(t, err)
		second, err := Generate(cfg)
		assert.NoError(t, err)

		assert.Equal(t, first.Cells, second.Cells)
		assert.Equal(t, first.Start, second.Start)
		assert.Equal(t, first.Goal, second.Goal)
	})
}

func TestAddExtraOpenings(t *testing.T) {
	t.Run("saturates the interior without breaking the ring", func(t *testing.T) {
		g, err := Generate(Config{Width: 5, Height: 5, WallDensity: 1, Seed: 9})
		assert.NoError(t, err)

		rng := rand.New(rand.NewSource(1))
		for i := 0; i < 20; i++ {
			g.addExtraOpenings(rng, 500)
		}

		for y := 1; y < g.Height-1; y++ {
			for x := 1; x < g.Width-1; x++ {
				assert.True(t, g.Cells[y][x].Traversable(), "interior cell (%d,%d) stayed walled", x, y)
			}
		}
		for x := 0; x < g.Width; x++ {
			assert.Equal(t, Wall, g.Cells[0][x])
			assert.Equal(t, Wall, g.Cells[g.Height-1][x])
		}
	})

	t.Run("never carves dead-end stubs", func(t *testing.T) {
		g := parseGrid(t, []string{
			"#####",
			"#...#",
			"#####",
			"#####",
			"#####",
		})
		rng := rand.New(rand.NewSource(1))
		g.addExtraOpenings(rng, 200)

		// Every wall below the corridor touches at most one open cell,
		// so none may open.
		for y := 2; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				assert.Equal(t, Wall, g.Cells[y][x])
			}
		}
	})
}

func TestGridQueries(t *testing.T) {
	t.Run("kind at out of bounds", func(t *testing.T) {
		g := NewGrid(3, 3)
		for _, p := range []Position{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 3, Y: 0}, {X: 0, Y: 3}} {
			kind, err := g.KindAt(p)
			assert.ErrorIs(t, err, ErrOutOfBounds)
			assert.Equal(t, Wall, kind)
		}
	})

	t.Run("neighbors follow the probe order", func(t *testing.T) {
		g := parseGrid(t, []string{
			"####",
			"#..#",
			"#..#",
			"####",
		})
		assert.Equal(t, []Position{{X: 1, Y: 2}, {X: 2, Y: 1}}, g.Neighbors(Position{X: 1, Y: 1}))
		assert.Equal(t, []Position{{X: 2, Y: 1}, {X: 1, Y: 2}}, g.Neighbors(Position{X: 2, Y: 2}))
	})

	t.Run("neighbors clip at the grid edge", func(t *testing.T) {
		g := parseGrid(t, []string{
			"...",
			"...",
			"...",
		})
		assert.Equal(t, []Position{{X: 0, Y: 1}, {X: 1, Y: 0}}, g.Neighbors(Position{X: 0, Y: 0}))
	})

	t.Run("string renders one rune per cell", func(t *testing.T) {
		g := parseGrid(t, []string{
			"#S",
			"GU",
			"D.",
		})
		assert.Equal(t, "#S\nGU\nD.\n", g.String())
	})
}

func TestCellKind(t *testing.T) {
	t.Run("walls alone block traversal", func(t *testing.T) {
		assert.False(t, Wall.Traversable())
		for _, k := range []CellKind{Open, Start, Goal, PortalUp, PortalDown} {
			assert.True(t, k.Traversable())
		}
	})

	t.Run("wire names", func(t *testing.T) {
		assert.Equal(t, "wall", Wall.String())
		assert.Equal(t, "open", Open.String())
		assert.Equal(t, "start", Start.String())
		assert.Equal(t, "goal", Goal.String())
		assert.Equal(t, "portal_up", PortalUp.String())
		assert.Equal(t, "portal_down", PortalDown.String())
		assert.Equal(t, "unknown", CellKind(99).String())
	})

	t.Run("keys never collide across dimensionality", func(t *testing.T) {
		assert.Equal(t, "3,4", Position{X: 3, Y: 4}.Key())
		assert.Equal(t, "3,4,0", LayeredPosition{X: 3, Y: 4}.Key())
	})
}

func TestHeuristics(t *testing.T) {
	t.Run("manhattan", func(t *testing.T) {
		assert.Equal(t, 7, Manhattan(Position{X: 1, Y: 2}, Position{X: 4, Y: 6}))
		assert.Equal(t, 7, Manhattan(Position{X: 4, Y: 6}, Position{X: 1, Y: 2}))
		assert.Equal(t, 0, Manhattan(Position{X: 2, Y: 2}, Position{X: 2, Y: 2}))
	})

	t.Run("layered manhattan spans all axes", func(t *testing.T) {
		from := LayeredPosition{X: 1, Y: 2, Z: 0}
		goal := LayeredPosition{X: 4, Y: 6, Z: 2}
		assert.Equal(t, 9, LayeredManhattan(from, goal))
	})

	t.Run("layer penalty applies only across layers", func(t *testing.T) {
		h := LayerPenaltyHeuristic(DefaultLayerPenalty)
		sameLayer := h(LayeredPosition{X: 0, Y: 0, Z: 1}, LayeredPosition{X: 2, Y: 3, Z: 1})
		assert.Equal(t, 5, sameLayer)

		crossLayer := h(LayeredPosition{X: 0, Y: 0, Z: 0}, LayeredPosition{X: 2, Y: 3, Z: 1})
		assert.Equal(t, 5+1+DefaultLayerPenalty, crossLayer)
	})
}
