package maze

import (
	"errors"
	"math/rand"
)

// ErrNoCrossLayerPair reports that no valid cross-layer start/goal
// combination exists: fewer than two layers, or the candidate cells of
// different layers are not joined by any chain of portal pairs.
var ErrNoCrossLayerPair = errors.New("maze: no eligible cross-layer start/goal pair")

// LayeredConfig controls layered maze generation.
type LayeredConfig struct {
	Width       int
	Height      int
	Layers      int
	WallDensity float64
	// Seed drives every layer and the portal placement. Seed <= 0 draws
	// from the clock.
	Seed int64
}

// GenerateLayered builds Layers independent flat mazes, stitches
// consecutive layers with one portal pair on a shared open coordinate,
// and stamps a single cross-layer Start/Goal pair. Stray per-layer
// Start and Goal marks from the flat generator are cleared; the
// layered pair is authoritative.
func GenerateLayered(cfg LayeredConfig) (*LayeredGrid, error) {
	if cfg.Layers < 2 {
		return nil, ErrNoCrossLayerPair
	}

	rng := newRand(cfg.Seed)
	layers := make([]*Grid, cfg.Layers)
	for z := range layers {
		sub, err := Generate(Config{
			Width:       cfg.Width,
			Height:      cfg.Height,
			WallDensity: cfg.WallDensity,
			Seed:        layerSeed(rng),
		})
		if err != nil {
			return nil, err
		}
		layers[z] = sub
	}

	lg := &LayeredGrid{
		Width:  layers[0].Width,
		Height: layers[0].Height,
		Layers: layers,
	}
	linked := lg.linkLayers(rng)
	if err := lg.placeStartAndGoal(rng, linked); err != nil {
		return nil, err
	}
	return lg, nil
}

// layerSeed derives a positive per-layer seed so layered generation
// stays reproducible under a fixed master seed.
func layerSeed(rng *rand.Rand) int64 {
	s := rng.Int63()
	if s == 0 {
		s = 1
	}
	return s
}

// linkLayers stitches each consecutive layer pair with one portal pair
// placed on an interior coordinate that is plain Open in both layers,
// so portals never overwrite earlier portals or marker cells. A pair
// with no shared candidate is left unlinked. Returns which pairs got a
// portal.
func (lg *LayeredGrid) linkLayers(rng *rand.Rand) []bool {
	linked := make([]bool, len(lg.Layers)-1)
	for z := 0; z+1 < len(lg.Layers); z++ {
		lower, upper := lg.Layers[z], lg.Layers[z+1]
		var shared []Position
		for y := 1; y < lg.Height-1; y++ {
			for x := 1; x < lg.Width-1; x++ {
				if lower.Cells[y][x] == Open && upper.Cells[y][x] == Open {
					shared = append(shared, Position{X: x, Y: y})
				}
			}
		}
		if len(shared) == 0 {
			continue
		}
		p := shared[rng.Intn(len(shared))]
		lower.Cells[p.Y][p.X] = PortalUp
		upper.Cells[p.Y][p.X] = PortalDown
		linked[z] = true
	}
	return linked
}

// placeStartAndGoal picks a uniformly random (start, goal) combination
// from per-layer top-left-third and bottom-right-third open cells,
// keeping only combinations whose layers differ and sit in the same
// portal-linked component. Within one layer every traversable cell is
// mutually reachable, so filtering on the layer-link components alone
// guarantees the stamped pair is reachable.
func (lg *LayeredGrid) placeStartAndGoal(rng *rand.Rand, linked []bool) error {
	comp := layerComponents(linked)

	starts := make([][]Position, len(lg.Layers))
	goals := make([][]Position, len(lg.Layers))
	for z, layer := range lg.Layers {
		for _, p := range layer.openPositions() {
			if float64(p.X) < float64(lg.Width)/3 && float64(p.Y) < float64(lg.Height)/3 {
				starts[z] = append(starts[z], p)
			}
			if float64(p.X) > 2*float64(lg.Width)/3 && float64(p.Y) > 2*float64(lg.Height)/3 {
				goals[z] = append(goals[z], p)
			}
		}
	}

	total := 0
	for zs := range lg.Layers {
		for zg := range lg.Layers {
			if zs != zg && comp[zs] == comp[zg] {
				total += len(starts[zs]) * len(goals[zg])
			}
		}
	}
	if total == 0 {
		return ErrNoCrossLayerPair
	}

	pick := rng.Intn(total)
	var start, goal LayeredPosition
pickLoop:
	for zs := range lg.Layers {
		for zg := range lg.Layers {
			if zs == zg || comp[zs] != comp[zg] {
				continue
			}
			block := len(starts[zs]) * len(goals[zg])
			if pick >= block {
				pick -= block
				continue
			}
			s := starts[zs][pick/len(goals[zg])]
			g := goals[zg][pick%len(goals[zg])]
			start = LayeredPosition{X: s.X, Y: s.Y, Z: zs}
			goal = LayeredPosition{X: g.X, Y: g.Y, Z: zg}
			break pickLoop
		}
	}

	lg.clearStrayMarkers()
	lg.Layers[start.Z].Cells[start.Y][start.X] = Start
	lg.Layers[goal.Z].Cells[goal.Y][goal.X] = Goal
	lg.Start = start
	lg.Goal = goal
	return nil
}

// clearStrayMarkers resets per-layer Start/Goal cells to Open and
// zeroes the per-layer position fields left by the flat generator.
func (lg *LayeredGrid) clearStrayMarkers() {
	for _, layer := range lg.Layers {
		for y := 0; y < layer.Height; y++ {
			for x := 0; x < layer.Width; x++ {
				if layer.Cells[y][x] == Start || layer.Cells[y][x] == Goal {
					layer.Cells[y][x] = Open
				}
			}
		}
		layer.Start = Position{}
		layer.Goal = Position{}
	}
}

// layerComponents assigns a component id per layer: consecutive layers
// share a component exactly when a portal pair links them.
func layerComponents(linked []bool) []int {
	comp := make([]int, len(linked)+1)
	for z := 0; z < len(linked); z++ {
		if linked[z] {
			comp[z+1] = comp[z]
		} else {
			comp[z+1] = comp[z] + 1
		}
	}
	return comp
}
