package world

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_EveryCoordinateHasACell(t *testing.T) {
	m, err := Build(DefaultGenConfig())
	require.NoError(t, err)

	b := m.Bounds
	assert.Equal(t, b.Volume(), m.CellCount())

	for x := b.XMin; x <= b.XMax; x++ {
		for y := b.YMin; y <= b.YMax; y++ {
			for z := b.ZMin; z <= b.ZMax; z++ {
				c := Coord{X: x, Y: y, Z: z}
				cell, ok := m.Cell(c)
				require.True(t, ok, "missing cell at %s", c)
				assert.Contains(t, []Terrain{TerrainPlain, TerrainHill, TerrainMountain}, cell.Terrain, "cell %s", c)
				assert.NotEmpty(t, cell.Detail, "cell %s has no detail", c)
			}
		}
	}
}

func TestBuild_DefaultsFollowZLevel(t *testing.T) {
	m, err := Build(DefaultGenConfig())
	require.NoError(t, err)

	cases := []struct {
		z    int
		name string
		kind Terrain
	}{
		{0, "Unnamed Plain", TerrainPlain},
		{1, "Unnamed Hill", TerrainHill},
		{2, "Unnamed Mountain", TerrainMountain},
	}
	for _, tc := range cases {
		cell, ok := m.Cell(Coord{X: 4, Y: -3, Z: tc.z})
		require.True(t, ok)
		assert.Equal(t, tc.name, cell.Name)
		assert.Equal(t, tc.kind, cell.Terrain)
	}
}

func TestBuild_AuthoredCells(t *testing.T) {
	m, err := Build(DefaultGenConfig())
	require.NoError(t, err)

	cell, _ := m.Cell(Coord{X: 0, Y: 0, Z: 1})
	assert.Equal(t, "Central Hill", cell.Name)
	assert.Equal(t, TerrainHill, cell.Terrain)

	cell, _ = m.Cell(Coord{X: 1, Y: 0, Z: 1})
	assert.Equal(t, "East Slope", cell.Name)

	cell, _ = m.Cell(Coord{X: -1, Y: 0, Z: 2})
	assert.Equal(t, "West Cliff", cell.Name)
	assert.Equal(t, TerrainMountain, cell.Terrain)

	authored, err := LoadAuthored()
	require.NoError(t, err)
	assert.Len(t, authored, 15)
}

func TestBuild_DetailIsDeterministic(t *testing.T) {
	m1, err := Build(DefaultGenConfig())
	require.NoError(t, err)
	m2, err := Build(DefaultGenConfig())
	require.NoError(t, err)

	for c, cell := range m1.cells {
		other, _ := m2.Cell(c)
		if cell.Detail != other.Detail {
			t.Fatalf("detail mismatch at %s: %q != %q", c, cell.Detail, other.Detail)
		}
	}
}

func TestBuild_RejectsOutOfBoundsAuthoredCell(t *testing.T) {
	cfg := DefaultGenConfig()
	cfg.Authored = []AuthoredCell{
		{Coord: Coord{X: 9, Y: 0, Z: 0}, Cell: Cell{Name: "Far Away", Terrain: TerrainPlain}},
	}
	_, err := Build(cfg)
	assert.True(t, errors.Is(err, ErrOutOfBounds), "got %v", err)
}

func TestBuild_RejectsUnknownTerrain(t *testing.T) {
	cfg := DefaultGenConfig()
	cfg.Authored = []AuthoredCell{
		{Coord: Coord{X: 0, Y: 0, Z: 0}, Cell: Cell{Name: "Nowhere"}},
	}
	_, err := Build(cfg)
	assert.ErrorIs(t, err, ErrBadTerrain)

	_, err = parseAuthored([]byte(`[{"x":0,"y":0,"z":0,"name":"Swamp","kind":"swamp"}]`))
	assert.ErrorIs(t, err, ErrBadTerrain)
}

func TestMap_MissingCellIsUnknown(t *testing.T) {
	m, err := Build(DefaultGenConfig())
	require.NoError(t, err)

	cell, ok := m.Cell(Coord{X: 100, Y: 0, Z: 0})
	assert.False(t, ok)
	assert.Equal(t, "Unknown", cell.Name)
	assert.Equal(t, "unknown", cell.Terrain.String())
}

func TestTerrainForLevel(t *testing.T) {
	assert.Equal(t, TerrainPlain, TerrainForLevel(0))
	assert.Equal(t, TerrainHill, TerrainForLevel(1))
	assert.Equal(t, TerrainMountain, TerrainForLevel(2))
	assert.Equal(t, TerrainMountain, TerrainForLevel(5))
}
