// Package view holds the grid view: the last grid snapshot, the cells a user has
// flagged for placement, the hovered cell, and the renderer that paints them.
//
// A State is not safe for concurrent use. Frontends own one State and call into it
// from their event loop only.
package view

import (
	"errors"
	"fmt"
	"image/color"

	"uk.ac.bris.cs/lifeview/util"
)

// ErrGridSize is returned when a grid does not hold exactly width*height cells.
var ErrGridSize = errors.New("grid length does not match dimensions")

type State struct {
	grid      []bool
	width     int
	height    int
	cell_size int
	spacing   int

	pixel_width  int
	pixel_height int
	surface      Surface

	hovered *util.Cell
	flagged []util.Cell
	last_x  int
	last_y  int
}

// New builds the view, sizes the surface and paints the full grid.
func New(grid []bool, width, height, cellSize, spacing int, surface Surface) (*State, error) {
	if width <= 0 || height <= 0 || cellSize <= 0 || spacing < 0 {
		return nil, fmt.Errorf("invalid view geometry %dx%d cell %d spacing %d", width, height, cellSize, spacing)
	}
	if len(grid) != width*height {
		return nil, fmt.Errorf("%w: got %d cells for %dx%d", ErrGridSize, len(grid), width, height)
	}
	s := &State{
		grid:         grid,
		width:        width,
		height:       height,
		cell_size:    cellSize,
		spacing:      spacing,
		pixel_width:  PixelDimension(width, cellSize, spacing),
		pixel_height: PixelDimension(height, cellSize, spacing),
		surface:      surface,
	}
	s.surface.Resize(s.pixel_width, s.pixel_height)
	s.Render()
	return s, nil
}

// PixelDimension is the surface size needed for n cells along one axis.
func PixelDimension(n, cellSize, spacing int) int {
	return n*(cellSize+spacing) + 1
}

// SetGrid replaces the whole grid and repaints. The grid is kept, not copied.
func (s *State) SetGrid(grid []bool) error {
	if len(grid) != s.width*s.height {
		return fmt.Errorf("%w: got %d cells for %dx%d", ErrGridSize, len(grid), s.width, s.height)
	}
	s.grid = grid
	s.Render()
	return nil
}

// Grid returns a copy of the current grid.
func (s *State) Grid() []bool {
	copied := make([]bool, len(s.grid))
	copy(copied, s.grid)
	return copied
}

func (s *State) Width() int  { return s.width }
func (s *State) Height() int { return s.height }

// PixelSize returns the surface dimensions in pixels.
func (s *State) PixelSize() (int, int) {
	return s.pixel_width, s.pixel_height
}

// CellOrigin returns the top-left pixel of a cell's fill rectangle.
func (s *State) CellOrigin(cell util.Cell) (int, int) {
	stride := s.cell_size + s.spacing
	return cell.X*stride + 1, cell.Y*stride + 1
}

func (s *State) alive(cell util.Cell) bool {
	return s.grid[cell.Y*s.width+cell.X]
}

func (s *State) contains(cell util.Cell) bool {
	return cell.In(s.width, s.height)
}

// Visual is the derived appearance of one cell.
type Visual struct {
	Alive   bool
	Flagged bool
	Hovered bool
}

func (v Visual) Fill() color.RGBA {
	if v.Alive {
		return AliveFill
	}
	return DeadFill
}

func (v Visual) Outlined() bool {
	return v.Flagged || v.Hovered
}

// Visual reports how cell (x, y) is currently drawn.
func (s *State) Visual(x, y int) Visual {
	cell := util.Cell{X: x, Y: y}
	if !s.contains(cell) {
		return Visual{}
	}
	return Visual{
		Alive:   s.alive(cell),
		Flagged: s.IsFlagged(&cell),
		Hovered: util.CellEquals(&cell, s.hovered),
	}
}
