package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floodLayered(lg *LayeredGrid, from LayeredPosition) map[LayeredPosition]struct{} {
	seen := map[LayeredPosition]struct{}{from: {}}
	queue := []LayeredPosition{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range lg.Neighbors(cur) {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			queue = append(queue, n)
		}
	}
	return seen
}

func portalCells(g *Grid, kind CellKind) []Position {
	var out []Position
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Cells[y][x] == kind {
				out = append(out, Position{X: x, Y: y})
			}
		}
	}
	return out
}

func TestGenerateLayered(t *testing.T) {
	t.Run("requires at least two layers", func(t *testing.T) {
		_, err := GenerateLayered(LayeredConfig{Width: 9, Height: 9, Layers: 1, Seed: 4})
		assert.ErrorIs(t, err, ErrNoCrossLayerPair)

		_, err = GenerateLayered(LayeredConfig{Width: 9, Height: 9, Layers: 0, Seed: 4})
		assert.ErrorIs(t, err, ErrNoCrossLayerPair)
	})

	t.Run("links consecutive layers with aligned portal pairs", func(t *testing.T) {
		lg, err := GenerateLayered(LayeredConfig{Width: 9, Height: 7, Layers: 3, WallDensity: 0.4, Seed: 13})
		assert.NoError(t, err)
		assert.Len(t, lg.Layers, 3)

		totalPortals := 0
		for z := 0; z+1 < len(lg.Layers); z++ {
			ups := portalCells(lg.Layers[z], PortalUp)
			downs := portalCells(lg.Layers[z+1], PortalDown)
			assert.Equal(t, ups, downs, "portal pair between layers %d and %d must share a coordinate", z, z+1)
			assert.LessOrEqual(t, len(ups), 1)
			totalPortals += len(ups)
		}
		// A successful generation needs at least one linked pair,
		// otherwise no cross-layer start/goal pair could exist.
		assert.GreaterOrEqual(t, totalPortals, 1)

		// No portal may sit on a boundary cell.
		for _, layer := range lg.Layers {
			for _, kind := range []CellKind{PortalUp, PortalDown} {
				for _, p := range portalCells(layer, kind) {
					assert.Greater(t, p.X, 0)
					assert.Less(t, p.X, lg.Width-1)
					assert.Greater(t, p.Y, 0)
					assert.Less(t, p.Y, lg.Height-1)
				}
			}
		}
	})

	t.Run("stamps one start and goal on different layers", func(t *testing.T) {
		lg, err := GenerateLayered(LayeredConfig{Width: 9, Height: 7, Layers: 4, WallDensity: 0.5, Seed: 8})
		assert.NoError(t, err)
		assert.NotEqual(t, lg.Start.Z, lg.Goal.Z)

		starts, goals := 0, 0
		for _, layer := range lg.Layers {
			starts += countKind(layer, Start)
			goals += countKind(layer, Goal)
			// Stray flat-generator markers must be gone.
			assert.Equal(t, Position{}, layer.Start)
			assert.Equal(t, Position{}, layer.Goal)
		}
		assert.Equal(t, 1, starts)
		assert.Equal(t, 1, goals)

		kind, err := lg.KindAt(lg.Start)
		assert.NoError(t, err)
		assert.Equal(t, Start, kind)
		kind, err = lg.KindAt(lg.Goal)
		assert.NoError(t, err)
		assert.Equal(t, Goal, kind)
	})

	t.Run("goal is reachable from start through portals", func(t *testing.T) {
		for seed := int64(1); seed <= 5; seed++ {
			lg, err := GenerateLayered(LayeredConfig{Width: 11, Height: 9, Layers: 3, WallDensity: 0.5, Seed: seed})
			assert.NoError(t, err)
			assert.Contains(t, floodLayered(lg, lg.Start), lg.Goal)
		}
	})

	t.Run("same seed reproduces the stack", func(t *testing.T) {
		cfg := LayeredConfig{Width: 9, Height: 9, Layers: 3, WallDensity: 0.6, Seed: 77}
		first, err := GenerateLayered(cfg)
		assert.NoError(t, err)
		second, err := GenerateLayered(cfg)
		assert.NoError(t, err)

		assert.Equal(t, first.String(), second.String())
		assert.Equal(t, first.Start, second.Start)
		assert.Equal(t, first.Goal, second.Goal)
	})
}

// portalFixture builds two stacked 5x3 layers of solid wall with a
// PortalUp at (1,1) below and PortalDowns at (1,1) and (3,1) above.
func portalFixture(t *testing.T) *LayeredGrid {
	t.Helper()
	lower := parseGrid(t, []string{
		"#####",
		"#U###",
		"#####",
	})
	upper := parseGrid(t, []string{
		"#####",
		"#D#D#",
		"#####",
	})
	return &LayeredGrid{Width: 5, Height: 3, Layers: []*Grid{lower, upper}}
}

func TestLayeredNeighbors(t *testing.T) {
	t.Run("portal up reaches every portal down above", func(t *testing.T) {
		lg := portalFixture(t)
		got := lg.Neighbors(LayeredPosition{X: 1, Y: 1, Z: 0})
		assert.Equal(t, []LayeredPosition{{X: 1, Y: 1, Z: 1}, {X: 3, Y: 1, Z: 1}}, got)
	})

	t.Run("portal down reaches every portal up below", func(t *testing.T) {
		lg := portalFixture(t)
		got := lg.Neighbors(LayeredPosition{X: 3, Y: 1, Z: 1})
		assert.Equal(t, []LayeredPosition{{X: 1, Y: 1, Z: 0}}, got)
	})

	t.Run("portal on the top layer leads nowhere", func(t *testing.T) {
		lg := portalFixture(t)
		lg.Layers[1].Cells[1][2] = PortalUp
		got := lg.Neighbors(LayeredPosition{X: 2, Y: 1, Z: 1})
		// Only its in-layer neighbors; nothing above layer 1.
		assert.Equal(t, []LayeredPosition{{X: 1, Y: 1, Z: 1}, {X: 3, Y: 1, Z: 1}}, got)
	})

	t.Run("in-layer neighbors come before portal jumps", func(t *testing.T) {
		lg := portalFixture(t)
		lg.Layers[0].Cells[1][2] = Open
		got := lg.Neighbors(LayeredPosition{X: 1, Y: 1, Z: 0})
		assert.Equal(t, []LayeredPosition{{X: 2, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 1}, {X: 3, Y: 1, Z: 1}}, got)
	})

	t.Run("bounds checks cover the layer axis", func(t *testing.T) {
		lg := portalFixture(t)
		assert.True(t, lg.InBounds(1, 1, 0))
		assert.False(t, lg.InBounds(1, 1, -1))
		assert.False(t, lg.InBounds(1, 1, 2))
		assert.False(t, lg.InBounds(-1, 1, 0))
		assert.False(t, lg.InBounds(1, 3, 1))

		_, err := lg.KindAt(LayeredPosition{X: 0, Y: 0, Z: 2})
		assert.ErrorIs(t, err, ErrOutOfBounds)

		kind, err := lg.KindAt(LayeredPosition{X: 1, Y: 1, Z: 0})
		assert.NoError(t, err)
		assert.Equal(t, PortalUp, kind)
	})

	t.Run("crossing detection compares layers only", func(t *testing.T) {
		lg := portalFixture(t)
		assert.True(t, lg.CrossesLayers(LayeredPosition{X: 1, Y: 1, Z: 0}, LayeredPosition{X: 1, Y: 1, Z: 1}))
		assert.False(t, lg.CrossesLayers(LayeredPosition{X: 1, Y: 1, Z: 0}, LayeredPosition{X: 2, Y: 1, Z: 0}))
	})
}
