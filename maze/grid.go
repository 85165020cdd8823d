package maze

import (
	"errors"
	"strings"
)

var (
	// ErrOutOfBounds reports a query outside the grid. Callers that hit
	// it violated the addressing contract; search never does, since
	// neighbors are bounds-filtered at the source.
	ErrOutOfBounds = errors.New("maze: position out of bounds")
)

// orthogonalSteps is the fixed neighbor probe order: up, down, left, right.
var orthogonalSteps = [4]Position{
	{X: 0, Y: -1},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
}

// Grid is a rectangular maze addressed by (x, y), row-major Cells[y][x].
type Grid struct {
	Width  int
	Height int
	Cells  [][]CellKind
	Start  Position
	Goal   Position
}

// NewGrid returns a grid of the given size with every cell set to Wall.
func NewGrid(width, height int) *Grid {
	cells := make([][]CellKind, height)
	for y := range cells {
		cells[y] = make([]CellKind, width)
	}
	return &Grid{
		Width:  width,
		Height: height,
		Cells:  cells,
	}
}

// InBounds reports whether (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// KindAt returns the kind of the cell at p.
func (g *Grid) KindAt(p Position) (CellKind, error) {
	if !g.InBounds(p.X, p.Y) {
		return Wall, ErrOutOfBounds
	}
	return g.Cells[p.Y][p.X], nil
}

// Neighbors returns the traversable 4-neighbors of p in up, down,
// left, right order.
func (g *Grid) Neighbors(p Position) []Position {
	result := make([]Position, 0, 4)
	for _, d := range orthogonalSteps {
		nx, ny := p.X+d.X, p.Y+d.Y
		if g.InBounds(nx, ny) && g.Cells[ny][nx].Traversable() {
			result = append(result, Position{X: nx, Y: ny})
		}
	}
	return result
}

// openNeighborCount counts the traversable 4-neighbors of (x, y).
func (g *Grid) openNeighborCount(x, y int) int {
	count := 0
	for _, d := range orthogonalSteps {
		nx, ny := x+d.X, y+d.Y
		if g.InBounds(nx, ny) && g.Cells[ny][nx].Traversable() {
			count++
		}
	}
	return count
}

// String renders the grid for debug output, one character per cell.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			sb.WriteByte(kindRune(g.Cells[y][x]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func kindRune(k CellKind) byte {
	switch k {
	case Wall:
		return '#'
	case Open:
		return '.'
	case Start:
		return 'S'
	case Goal:
		return 'G'
	case PortalUp:
		return 'U'
	case PortalDown:
		return 'D'
	default:
		return '?'
	}
}

// LayeredGrid stacks same-sized grids connected by portal cells.
type LayeredGrid struct {
	Width  int
	Height int
	Layers []*Grid
	Start  LayeredPosition
	Goal   LayeredPosition
}

// InBounds reports whether (x, y, z) lies inside the stack.
func (lg *LayeredGrid) InBounds(x, y, z int) bool {
	return z >= 0 && z < len(lg.Layers) && x >= 0 && x < lg.Width && y >= 0 && y < lg.Height
}

// KindAt returns the kind of the cell at p.
func (lg *LayeredGrid) KindAt(p LayeredPosition) (CellKind, error) {
	if !lg.InBounds(p.X, p.Y, p.Z) {
		return Wall, ErrOutOfBounds
	}
	return lg.Layers[p.Z].Cells[p.Y][p.X], nil
}

// Neighbors returns the traversable in-layer 4-neighbors of p in up,
// down, left, right order, followed by portal destinations. A PortalUp
// cell connects to every PortalDown cell in the layer above and a
// PortalDown cell to every PortalUp cell in the layer below, found by
// a row-major scan: endpoints are many-to-many and need not be
// positionally aligned. A portal with no layer beyond it yields no
// cross-layer neighbors.
func (lg *LayeredGrid) Neighbors(p LayeredPosition) []LayeredPosition {
	result := make([]LayeredPosition, 0, 4)
	layer := lg.Layers[p.Z]
	for _, d := range orthogonalSteps {
		nx, ny := p.X+d.X, p.Y+d.Y
		if layer.InBounds(nx, ny) && layer.Cells[ny][nx].Traversable() {
			result = append(result, LayeredPosition{X: nx, Y: ny, Z: p.Z})
		}
	}

	switch layer.Cells[p.Y][p.X] {
	case PortalUp:
		if p.Z+1 < len(lg.Layers) {
			result = append(result, lg.portalScan(p.Z+1, PortalDown)...)
		}
	case PortalDown:
		if p.Z-1 >= 0 {
			result = append(result, lg.portalScan(p.Z-1, PortalUp)...)
		}
	}
	return result
}

// portalScan collects every cell of the wanted kind in layer z.
func (lg *LayeredGrid) portalScan(z int, want CellKind) []LayeredPosition {
	var found []LayeredPosition
	layer := lg.Layers[z]
	for y := 0; y < lg.Height; y++ {
		for x := 0; x < lg.Width; x++ {
			if layer.Cells[y][x] == want {
				found = append(found, LayeredPosition{X: x, Y: y, Z: z})
			}
		}
	}
	return found
}

// CrossesLayers reports whether the edge a→b jumps between layers.
func (lg *LayeredGrid) CrossesLayers(a, b LayeredPosition) bool {
	return a.Z != b.Z
}

// String renders every layer in order for debug output.
func (lg *LayeredGrid) String() string {
	var sb strings.Builder
	for z, layer := range lg.Layers {
		if z > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(layer.String())
	}
	return sb.String()
}
