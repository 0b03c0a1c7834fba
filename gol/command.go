package gol

import (
	"uk.ac.bris.cs/lifeview/util"
	"uk.ac.bris.cs/lifeview/view"
)

// Command is a request from the frontend to the controller.
type Command interface {
	isCommand()
}

// Place submits cells to the server.
type Place struct {
	Cells []util.Cell
}

// Save writes the given grid to a PGM file in the output directory.
type Save struct {
	Grid []bool
}

func (Place) isCommand() {}
func (Save) isCommand()  {}

// Submit takes the flagged cells out of the view and queues them for placement.
// The flags are cleared straight away whatever happens to the request.
// Nothing is sent when no cells are flagged.
func Submit(state *view.State, commands chan<- Command) int {
	cells := state.TakeFlagged()
	if len(cells) == 0 {
		return 0
	}
	commands <- Place{Cells: cells}
	return len(cells)
}
