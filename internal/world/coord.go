// Package world provides the 3D terrain grid, the player position, and movement rules.
// The grid is a bounded box of integer (x, y, z) cells; z is the elevation layer.
package world

import (
	"fmt"
	"strings"
)

// Coord is a position in the grid.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Add returns c offset by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y, Z: c.Z + d.Z}
}

// String renders the coordinate the way prompts anchor it, e.g. "(x0, y0, z1)".
func (c Coord) String() string {
	return fmt.Sprintf("(x%d, y%d, z%d)", c.X, c.Y, c.Z)
}

// Direction is one of the six movement verbs.
type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
	Up    Direction = "up"
	Down  Direction = "down"
)

// Directions lists every direction in canonical order.
var Directions = [6]Direction{North, South, East, West, Up, Down}

var directionDeltas = map[Direction]Coord{
	North: {Y: 1},
	South: {Y: -1},
	East:  {X: 1},
	West:  {X: -1},
	Up:    {Z: 1},
	Down:  {Z: -1},
}

// Delta returns the unit offset for the direction.
func (d Direction) Delta() Coord {
	return directionDeltas[d]
}

// ParseDirection matches s case-insensitively against the six directions.
// Surrounding whitespace is not stripped; " north " is not a direction.
func ParseDirection(s string) (Direction, bool) {
	d := Direction(strings.ToLower(s))
	if _, ok := directionDeltas[d]; !ok {
		return "", false
	}
	return d, true
}

// Neighbors returns the six adjacent coordinates in canonical direction order.
func (c Coord) Neighbors() [6]Coord {
	var result [6]Coord
	for i, dir := range Directions {
		result[i] = c.Add(dir.Delta())
	}
	return result
}
