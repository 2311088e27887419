package world

import "fmt"

// Terrain is the kind of land a cell holds.
type Terrain uint8

const (
	TerrainUnknown  Terrain = iota // Lookup fallback, never stored in a built table
	TerrainPlain                   // Lowest level
	TerrainHill                    // Middle level
	TerrainMountain                // Top level, under the firmament
)

// TerrainForLevel returns the default terrain for a z offset above the grid floor.
func TerrainForLevel(offset int) Terrain {
	switch {
	case offset <= 0:
		return TerrainPlain
	case offset == 1:
		return TerrainHill
	default:
		return TerrainMountain
	}
}

// TerrainName returns the lowercase word used in prompts.
func TerrainName(t Terrain) string {
	switch t {
	case TerrainPlain:
		return "plain"
	case TerrainHill:
		return "hill"
	case TerrainMountain:
		return "mountain"
	default:
		return "unknown"
	}
}

func (t Terrain) String() string {
	return TerrainName(t)
}

// MarshalText implements encoding.TextMarshaler.
func (t Terrain) MarshalText() ([]byte, error) {
	return []byte(TerrainName(t)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Terrain) UnmarshalText(b []byte) error {
	switch string(b) {
	case "plain":
		*t = TerrainPlain
	case "hill":
		*t = TerrainHill
	case "mountain":
		*t = TerrainMountain
	default:
		return fmt.Errorf("%w: %q", ErrBadTerrain, string(b))
	}
	return nil
}

// defaultName is the generated name for cells nobody authored.
func defaultName(t Terrain) string {
	switch t {
	case TerrainPlain:
		return "Unnamed Plain"
	case TerrainHill:
		return "Unnamed Hill"
	default:
		return "Unnamed Mountain"
	}
}
