// Cell table construction: authored cells first, z-level defaults for the rest,
// then a simplex-noise flavor pass that never touches names or terrain.
package world

import (
	"fmt"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds cell table parameters.
type GenConfig struct {
	Bounds   Bounds
	Seed     int64          // Noise seed for cell detail
	Authored []AuthoredCell // Hand-named cells; nil means the embedded set
}

// DefaultGenConfig returns the standard map.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Bounds: DefaultBounds(),
		Seed:   42,
	}
}

// Build creates the complete cell table. Every coordinate inside the bounds gets a cell.
func Build(cfg GenConfig) (*Map, error) {
	authored := cfg.Authored
	if authored == nil {
		var err error
		authored, err = LoadAuthored()
		if err != nil {
			return nil, err
		}
	}

	m := newMap(cfg.Bounds)

	for _, ac := range authored {
		if !cfg.Bounds.Contains(ac.Coord) {
			return nil, fmt.Errorf("authored cell %q at %s: %w", ac.Name, ac.Coord, ErrOutOfBounds)
		}
		if ac.Terrain == TerrainUnknown {
			return nil, fmt.Errorf("authored cell %q at %s: %w", ac.Name, ac.Coord, ErrBadTerrain)
		}
		m.cells[ac.Coord] = ac.Cell
	}

	b := cfg.Bounds
	for x := b.XMin; x <= b.XMax; x++ {
		for y := b.YMin; y <= b.YMax; y++ {
			for z := b.ZMin; z <= b.ZMax; z++ {
				c := Coord{X: x, Y: y, Z: z}
				if _, ok := m.cells[c]; ok {
					continue
				}
				t := TerrainForLevel(z - b.ZMin)
				m.cells[c] = Cell{Name: defaultName(t), Terrain: t}
			}
		}
	}

	applyDetail(m, cfg.Seed)

	return m, nil
}

// applyDetail samples moisture noise per column and stores a flavor word in each cell.
func applyDetail(m *Map, seed int64) {
	moisture := opensimplex.NewNormalized(seed)
	for c, cell := range m.cells {
		v := octaveNoise(moisture, float64(c.X), float64(c.Y), 2, 0.15, 0.5)
		// Thin air: peaks dry out one step.
		if cell.Terrain == TerrainMountain {
			v -= 0.15
		}
		cell.Detail = moistureWord(v)
		m.cells[c] = cell
	}
}

func moistureWord(v float64) string {
	switch {
	case v < 0.4:
		return "arid"
	case v < 0.6:
		return "temperate"
	default:
		return "verdant"
	}
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

// TerrainCounts returns a summary of terrain type distribution.
func TerrainCounts(m *Map) map[Terrain]int {
	counts := make(map[Terrain]int)
	for _, cell := range m.cells {
		counts[cell.Terrain]++
	}
	return counts
}
