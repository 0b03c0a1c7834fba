package view

import "uk.ac.bris.cs/lifeview/util"

// Render repaints everything: grid lines, every cell, then flagged and hovered outlines.
func (s *State) Render() {
	s.surface.Clear()
	s.drawGrid()

	for x := 0; x != s.width; x++ {
		for y := 0; y != s.height; y++ {
			s.drawCell(util.Cell{X: x, Y: y})
		}
	}

	for i := range s.flagged {
		s.drawFramedCell(&s.flagged[i])
	}
	s.drawFramedCell(s.hovered)
}

func (s *State) drawGrid() {
	stride := s.cell_size + s.spacing

	for i := 0; i != s.height; i++ {
		s.surface.Line(0, i*stride, s.pixel_width, i*stride, s.spacing, GridStroke)
	}
	for i := 0; i != s.width; i++ {
		s.surface.Line(i*stride, 0, i*stride, s.pixel_height, s.spacing, GridStroke)
	}

	// Close the border on the far edges
	s.surface.Line(s.pixel_width-1, 0, s.pixel_width-1, s.pixel_height, 1, GridStroke)
	s.surface.Line(0, s.pixel_height-1, s.pixel_width, s.pixel_height-1, 1, GridStroke)
}

func (s *State) drawCell(cell util.Cell) {
	x, y := s.CellOrigin(cell)
	fill := DeadFill
	if s.alive(cell) {
		fill = AliveFill
	}
	s.surface.FillRect(x, y, s.cell_size, s.cell_size, fill)
}

func (s *State) drawFramedCell(cell *util.Cell) {
	if cell == nil || !s.contains(*cell) {
		return
	}
	x, y := s.CellOrigin(*cell)
	s.surface.StrokeRect(x+1, y+1, s.cell_size-2, s.cell_size-2, OutlineWidth, OutlineStroke)
}

// RedrawCell repaints one cell from the grid, outlined iff flagged.
// Nil and out-of-grid cells are ignored.
func (s *State) RedrawCell(cell *util.Cell, flagged bool) {
	if cell == nil || !s.contains(*cell) {
		return
	}
	s.drawCell(*cell)
	if flagged {
		s.drawFramedCell(cell)
	}
}
