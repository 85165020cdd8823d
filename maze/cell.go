// Package maze implements the grid model and maze generation: flat
// grids carved with randomized Prim's algorithm, and layered grids
// stitched together by portal cells.
package maze

import "fmt"

// CellKind identifies what occupies a single grid cell.
type CellKind uint8

const (
	Wall CellKind = iota
	Open
	Start
	Goal
	PortalUp
	PortalDown
)

// Traversable reports whether a searcher may stand on the cell.
func (k CellKind) Traversable() bool {
	return k != Wall
}

func (k CellKind) String() string {
	switch k {
	case Wall:
		return "wall"
	case Open:
		return "open"
	case Start:
		return "start"
	case Goal:
		return "goal"
	case PortalUp:
		return "portal_up"
	case PortalDown:
		return "portal_down"
	default:
		return "unknown"
	}
}

// Position addresses a cell on a flat grid.
type Position struct {
	X int
	Y int
}

// Key returns the canonical textual key for the position. Keys of flat
// and layered positions never collide: they differ in component count.
func (p Position) Key() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// ManhattanTo returns the Manhattan distance to o.
func (p Position) ManhattanTo(o Position) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

// LayeredPosition addresses a cell in a layered grid.
type LayeredPosition struct {
	X int
	Y int
	Z int
}

// Key returns the canonical textual key for the position.
func (p LayeredPosition) Key() string {
	return fmt.Sprintf("%d,%d,%d", p.X, p.Y, p.Z)
}

// ManhattanTo returns the Manhattan distance to o across all three axes.
func (p LayeredPosition) ManhattanTo(o LayeredPosition) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y) + abs(p.Z-o.Z)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
