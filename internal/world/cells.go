package world

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

// authoredJSON holds the hand-named cells around the origin.
//
//go:embed cells.json
var authoredJSON []byte

// AuthoredCell is a hand-named cell at a fixed coordinate.
type AuthoredCell struct {
	Coord
	Cell
}

// LoadAuthored parses the embedded authored cell list.
func LoadAuthored() ([]AuthoredCell, error) {
	return parseAuthored(authoredJSON)
}

func parseAuthored(data []byte) ([]AuthoredCell, error) {
	var cells []AuthoredCell
	if err := json.Unmarshal(data, &cells); err != nil {
		return nil, fmt.Errorf("parse authored cells: %w", err)
	}
	return cells, nil
}
