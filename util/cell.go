package util

import "fmt"

// Cell is a grid coordinate. It is also the JSON shape of a placement.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// CellEquals compares coordinates. A nil cell never equals anything, itself included.
func CellEquals(a, b *Cell) bool {
	if a == nil || b == nil {
		return false
	}
	return a.X == b.X && a.Y == b.Y
}

// In reports whether the cell lies inside a width x height grid.
func (c Cell) In(width, height int) bool {
	return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < height
}
