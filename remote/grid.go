package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Grid is a row-major snapshot, indexed by y*width+x.
//
// On the wire each element is either a JSON boolean or a number; a number
// counts as alive only when it equals 1.
type Grid []bool

func (g *Grid) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrGridShape, err)
	}
	if raw == nil {
		return fmt.Errorf("%w: null", ErrGridShape)
	}
	grid := make(Grid, len(raw))
	for i, element := range raw {
		alive, err := parseCell(element)
		if err != nil {
			return fmt.Errorf("%w: element %d: %v", ErrGridShape, i, err)
		}
		grid[i] = alive
	}
	*g = grid
	return nil
}

func parseCell(element json.RawMessage) (bool, error) {
	switch string(element) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	number, err := strconv.ParseFloat(string(element), 64)
	if err != nil {
		return false, fmt.Errorf("%s is neither a boolean nor a number", element)
	}
	return number == 1, nil
}

// DecodeGrid reads one snapshot and checks it holds exactly width*height cells.
func DecodeGrid(r io.Reader, width, height int) (Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var grid Grid
	if err := json.Unmarshal(data, &grid); err != nil {
		if errors.Is(err, ErrGridShape) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrGridShape, err)
	}
	if len(grid) != width*height {
		return nil, fmt.Errorf("%w: %d cells, want %dx%d", ErrGridShape, len(grid), width, height)
	}
	return grid, nil
}
