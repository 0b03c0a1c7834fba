package view

import "uk.ac.bris.cs/lifeview/util"

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// PointerToCell maps a surface pixel to a cell. A y that lands exactly one row past
// the bottom is pulled back onto the last row; x is returned as computed, so callers
// must range check it.
func (s *State) PointerToCell(px, py int) util.Cell {
	stride := s.cell_size + s.spacing
	cell := util.Cell{
		X: floorDiv(px-1, stride),
		Y: floorDiv(py-1, stride),
	}
	if cell.Y == s.height {
		cell.Y--
	}
	return cell
}

// lastPointer is the most recent pointer position passed to OnPointerMove.
func (s *State) lastPointer() (int, int) {
	return s.last_x, s.last_y
}

// Hovered returns the hovered cell, or nil.
func (s *State) Hovered() *util.Cell {
	if s.hovered == nil {
		return nil
	}
	cell := *s.hovered
	return &cell
}

// Flagged returns a copy of the flagged cells in the order they were flagged.
func (s *State) Flagged() []util.Cell {
	copied := make([]util.Cell, len(s.flagged))
	copy(copied, s.flagged)
	return copied
}

func (s *State) IsFlagged(cell *util.Cell) bool {
	for i := range s.flagged {
		if util.CellEquals(cell, &s.flagged[i]) {
			return true
		}
	}
	return false
}

// OnPointerMove tracks the pointer and moves the hover outline when the cell under it changes.
func (s *State) OnPointerMove(px, py int) {
	s.last_x, s.last_y = px, py

	var next *util.Cell
	if cell := s.PointerToCell(px, py); s.contains(cell) {
		next = &cell
	}
	if (next == nil && s.hovered == nil) || util.CellEquals(next, s.hovered) {
		return
	}

	old := s.hovered
	s.hovered = next
	s.RedrawCell(old, s.IsFlagged(old))
	s.drawFramedCell(next)
}

// OnPointerLeave drops the hover outline, keeping a flagged outline if there is one.
func (s *State) OnPointerLeave() {
	old := s.hovered
	s.hovered = nil
	s.RedrawCell(old, s.IsFlagged(old))
}

// OnClick toggles the flag on the cell under the last pointer position.
// It returns false when that position is outside the grid.
func (s *State) OnClick() bool {
	cell := s.PointerToCell(s.last_x, s.last_y)
	if !s.contains(cell) {
		return false
	}

	for i := range s.flagged {
		if util.CellEquals(&cell, &s.flagged[i]) {
			s.flagged = append(s.flagged[:i], s.flagged[i+1:]...)
			s.RedrawCell(&cell, false)
			return true
		}
	}

	s.flagged = append(s.flagged, cell)
	s.RedrawCell(&cell, true)
	return true
}

// TakeFlagged empties the flagged set and returns what it held.
// Cleared cells are repainted without their flag outline.
func (s *State) TakeFlagged() []util.Cell {
	cells := s.flagged
	s.flagged = nil
	for i := range cells {
		s.RedrawCell(&cells[i], util.CellEquals(&cells[i], s.hovered))
	}
	return cells
}
