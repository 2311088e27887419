package world

import "fmt"

// StartPosition is where every session begins: Central Hill.
var StartPosition = Coord{X: 0, Y: 0, Z: 1}

// Blocked explains why a move was rejected.
type Blocked uint8

const (
	BlockedNone      Blocked = iota
	BlockedFirmament         // Tried to climb above the top level
	BlockedEdge              // Hit the y edge of the world or the floor
)

// MoveResult reports the outcome of a move attempt.
type MoveResult struct {
	Direction Direction
	From      Coord
	To        Coord // Equals From when the move was rejected
	Moved     bool
	Blocked   Blocked
}

// World is the cell table plus the player's position. The position always stays in bounds
// and only Move changes it.
type World struct {
	Map    *Map
	player Coord
}

// New places a player at StartPosition on m. Maps whose bounds exclude the start are rejected.
func New(m *Map) (*World, error) {
	if !m.InBounds(StartPosition) {
		return nil, fmt.Errorf("start %s: %w", StartPosition, ErrOutOfBounds)
	}
	return &World{Map: m, player: StartPosition}, nil
}

// Position returns the player's coordinate.
func (w *World) Position() Coord {
	return w.player
}

// Here returns the cell the player stands in.
func (w *World) Here() Cell {
	cell, _ := w.Map.Cell(w.player)
	return cell
}

// Neighbors returns the cells one step away in each direction that stays in bounds.
// Directions leading out of bounds are omitted.
func (w *World) Neighbors() map[Direction]Cell {
	nearby := make(map[Direction]Cell, len(Directions))
	for i, next := range w.player.Neighbors() {
		if !w.Map.InBounds(next) {
			continue
		}
		cell, _ := w.Map.Cell(next)
		nearby[Directions[i]] = cell
	}
	return nearby
}

// Move applies a direction. North/south and up/down stop at the bounds;
// east/west wrap around the x axis.
func (w *World) Move(dir Direction) MoveResult {
	b := w.Map.Bounds
	from := w.player
	to := from
	res := MoveResult{Direction: dir, From: from, To: from}

	switch dir {
	case North, South:
		to = from.Add(dir.Delta())
		if to.Y < b.YMin || to.Y > b.YMax {
			res.Blocked = BlockedEdge
			return res
		}
	case East:
		to.X++
		if to.X > b.XMax {
			to.X = b.XMin
		}
	case West:
		to.X--
		if to.X < b.XMin {
			to.X = b.XMax
		}
	case Up, Down:
		to = from.Add(dir.Delta())
		if to.Z > b.ZMax {
			res.Blocked = BlockedFirmament
			return res
		}
		if to.Z < b.ZMin {
			res.Blocked = BlockedEdge
			return res
		}
	default:
		res.Blocked = BlockedEdge
		return res
	}

	w.player = to
	res.To = to
	res.Moved = true
	return res
}
