package world

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	ErrBadTerrain  = errors.New("unsupported terrain")
)

// Bounds is the inclusive box every cell and the player live in.
type Bounds struct {
	XMin, XMax int
	YMin, YMax int
	ZMin, ZMax int
}

// DefaultBounds is an 11x11 map three levels high.
func DefaultBounds() Bounds {
	return Bounds{XMin: -5, XMax: 5, YMin: -5, YMax: 5, ZMin: 0, ZMax: 2}
}

// Contains returns true if c lies within the box.
func (b Bounds) Contains(c Coord) bool {
	return c.X >= b.XMin && c.X <= b.XMax &&
		c.Y >= b.YMin && c.Y <= b.YMax &&
		c.Z >= b.ZMin && c.Z <= b.ZMax
}

// Volume returns the number of coordinates inside the box.
func (b Bounds) Volume() int {
	return (b.XMax - b.XMin + 1) * (b.YMax - b.YMin + 1) * (b.ZMax - b.ZMin + 1)
}

// Cell is a single named location.
type Cell struct {
	Name    string  `json:"name"`
	Terrain Terrain `json:"kind"`
	Detail  string  `json:"-"` // Noise-derived flavor word: arid, temperate, verdant
}

var unknownCell = Cell{Name: "Unknown", Terrain: TerrainUnknown}

// Map holds the cell table. It is read-only once built.
type Map struct {
	cells  map[Coord]Cell
	Bounds Bounds
}

func newMap(b Bounds) *Map {
	return &Map{
		cells:  make(map[Coord]Cell, b.Volume()),
		Bounds: b,
	}
}

// Cell returns the cell at c. Missing coordinates yield an "Unknown" cell and false.
func (m *Map) Cell(c Coord) (Cell, bool) {
	cell, ok := m.cells[c]
	if !ok {
		return unknownCell, false
	}
	return cell, true
}

// InBounds returns true if the coordinate is within the map bounds.
func (m *Map) InBounds(c Coord) bool {
	return m.Bounds.Contains(c)
}

// CellCount returns the number of cells in the table.
func (m *Map) CellCount() int {
	return len(m.cells)
}

// String returns a summary of the map.
func (m *Map) String() string {
	b := m.Bounds
	return fmt.Sprintf("Map(x=%d..%d, y=%d..%d, z=%d..%d, cells=%d)",
		b.XMin, b.XMax, b.YMin, b.YMax, b.ZMin, b.ZMax, m.CellCount())
}
