package game

import (
	"fmt"
	"strings"

	"github.com/talgya/firmament/internal/world"
)

// HelpText is returned for any input that is not a direction.
const HelpText = "Move with 'north', 'east', 'south', 'west', 'up', or 'down' to explore."

// nearbyText lists visible neighbors in canonical direction order, e.g. "north: North Meadow, up: Central Peak".
func nearbyText(nearby map[world.Direction]world.Cell) string {
	parts := make([]string, 0, len(nearby))
	for _, dir := range world.Directions {
		cell, ok := nearby[dir]
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", dir, cell.Name))
	}
	return strings.Join(parts, ", ")
}

func describePrompt(pos world.Coord, here world.Cell, nearby map[world.Direction]world.Cell) string {
	kind := world.TerrainName(here.Terrain)
	return fmt.Sprintf("The player stands at (%d, %d, %d) in a persistent world, at %s (%s). "+
		"Describe this %s %s naturally, with grasses, trees, rivers, or peaks, "+
		"and mention what's visible nearby: %s. Ask what they do next. End with '%s'.",
		pos.X, pos.Y, pos.Z, here.Name, kind,
		here.Detail, kind,
		nearbyText(nearby), pos)
}

func welcomePrompt(pos world.Coord, here world.Cell, nearby map[world.Direction]world.Cell) string {
	kind := world.TerrainName(here.Terrain)
	return fmt.Sprintf("Welcome a player to a vast, persistent world of plains, hills, and mountains, "+
		"standing at the center (%d, %d, %d) at %s (%s). Describe this %s %s naturally, "+
		"with plains to the east, mountains north, hills south, groves west, and options to descend, "+
		"and a firmament barring the sky above. Mention nearby: %s. "+
		"Tell them to move 'north', 'east', 'south', 'west', 'up', or 'down'. End with '%s'.",
		pos.X, pos.Y, pos.Z, here.Name, kind,
		here.Detail, kind,
		nearbyText(nearby), pos)
}

func firmamentPrompt(pos world.Coord) string {
	return fmt.Sprintf("The player at %s tries to move up, but a vast, unseen firmament blocks the way, "+
		"an ancient dome above the mountains. Describe the scene and ask what they do next. End with '%s'.",
		pos, pos)
}

func edgePrompt(pos world.Coord, dir world.Direction, b world.Bounds) string {
	return fmt.Sprintf("The player at %s tries to move %s, but the way is blocked: "+
		"plains below at z%d or the world's edge at y%d or y%d. "+
		"Describe the scene and ask what they do next. End with '%s'.",
		pos, dir, b.ZMin, b.YMin, b.YMax, pos)
}
