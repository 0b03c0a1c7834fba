package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"uk.ac.bris.cs/lifeview/gol"
	"uk.ac.bris.cs/lifeview/util"
	"uk.ac.bris.cs/lifeview/view"
)

func newTestModel(t *testing.T) (model, chan gol.Event, chan gol.Command) {
	t.Helper()
	state, err := view.New(make([]bool, 4*3), 4, 3, 12, 1, view.NewCanvas())
	if err != nil {
		t.Fatal(err)
	}
	events := make(chan gol.Event, 4)
	commands := make(chan gol.Command, 4)
	return newModel(state, events, commands), events, commands
}

func update(m model, msg tea.Msg) (model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMouseFlagsCell(t *testing.T) {
	m, _, _ := newTestModel(t)

	// Columns 2 and 3 are cell 1; row 0 is the title
	m, _ = update(m, tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionMotion})
	if hovered := m.state.Hovered(); !util.CellEquals(hovered, &util.Cell{X: 1, Y: 1}) {
		t.Errorf("hovered = %v, want (1, 1)", hovered)
	}

	m, _ = update(m, tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if !m.state.IsFlagged(&util.Cell{X: 1, Y: 1}) {
		t.Error("left release did not flag the cell")
	}

	m, _ = update(m, tea.MouseMsg{X: 40, Y: 2, Action: tea.MouseActionMotion})
	if hovered := m.state.Hovered(); hovered != nil {
		t.Errorf("hovered = %v past the right edge, want none", hovered)
	}
	m, _ = update(m, tea.MouseMsg{X: 3, Y: 0, Action: tea.MouseActionMotion})
	if hovered := m.state.Hovered(); hovered != nil {
		t.Errorf("hovered = %v over the title, want none", hovered)
	}

	// Row 3 is the last grid row; row 4 is the status line below it
	m, _ = update(m, tea.MouseMsg{X: 1, Y: 3, Action: tea.MouseActionMotion})
	if hovered := m.state.Hovered(); !util.CellEquals(hovered, &util.Cell{X: 0, Y: 2}) {
		t.Errorf("hovered = %v on the last row, want (0, 2)", hovered)
	}
	m, _ = update(m, tea.MouseMsg{X: 1, Y: 4, Action: tea.MouseActionMotion})
	if hovered := m.state.Hovered(); hovered != nil {
		t.Errorf("hovered = %v over the status line, want none", hovered)
	}
	m, _ = update(m, tea.MouseMsg{X: 1, Y: 4, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if flagged := m.state.Flagged(); len(flagged) != 1 {
		t.Errorf("flagged = %v after clicking the status line, want only (1, 1)", flagged)
	}
}

func TestViewOutlinesFlaggedCells(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.state.OnPointerMove(14, 1)
	m.state.OnClick()
	m.state.OnPointerLeave()

	lines := strings.Split(m.View(), "\n")
	if got := strings.Count(lines[1], "[]"); got != 1 {
		t.Errorf("first grid row shows %d outlines, want 1:\n%s", got, lines[1])
	}
	if strings.Contains(lines[2], "[]") {
		t.Errorf("second grid row has an outline:\n%s", lines[2])
	}
	if cellView(view.Visual{Alive: true, Flagged: true}) != cellView(view.Visual{Alive: true, Hovered: true}) {
		t.Error("flagged and hovered cells render differently")
	}
}

func TestKeys(t *testing.T) {
	m, _, commands := newTestModel(t)

	m, _ = update(m, runes("p"))
	if len(commands) != 0 {
		t.Error("placing with nothing flagged sent a command")
	}

	m.state.OnPointerMove(1, 1)
	m.state.OnClick()
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	place, ok := (<-commands).(gol.Place)
	if !ok || len(place.Cells) != 1 || place.Cells[0] != (util.Cell{X: 0, Y: 0}) {
		t.Errorf("enter sent %v, want a placement of (0, 0)", place)
	}
	if len(m.state.Flagged()) != 0 {
		t.Error("flags were not cleared after placing")
	}

	m, _ = update(m, runes("s"))
	if save, ok := (<-commands).(gol.Save); !ok || len(save.Grid) != 12 {
		t.Error("s did not send a save of the whole grid")
	}

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.quitting {
		t.Error("esc did not start quitting")
	}
	if _, open := <-commands; open {
		t.Error("commands still open after quitting")
	}

	// Input is ignored while the controller shuts down
	m, _ = update(m, tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if len(m.state.Flagged()) != 0 {
		t.Error("a click was handled after quitting")
	}
}

func TestEvents(t *testing.T) {
	m, events, _ := newTestModel(t)

	grid := make([]bool, 12)
	grid[5] = true
	events <- gol.GridUpdated{CompletedTurns: 3, Grid: grid}
	msg := m.Init()()
	m, cmd := update(m, msg)
	if cmd == nil {
		t.Error("the model stopped listening for events")
	}
	if !m.state.Visual(1, 1).Alive {
		t.Error("snapshot was not applied")
	}
	if view := m.View(); !strings.Contains(view, "turn 3") || !strings.Contains(view, "in sync") {
		t.Errorf("view does not show the turn and status:\n%s", view)
	}

	m, _ = update(m, eventMsg{gol.SyncFailed{CompletedTurns: 3, Err: errFake}})
	if !m.failed {
		t.Error("a failed sync was not shown as an error")
	}

	close(events)
	_, cmd = update(m, waitForEvent(events)())
	if cmd == nil {
		t.Fatal("closing events did not quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("closing events did not quit")
	}
}

var errFake = errors.New("server unreachable")

func TestViewSize(t *testing.T) {
	m, _, _ := newTestModel(t)
	lines := strings.Split(m.View(), "\n")
	// Title, three grid rows, status, help
	if len(lines) != 6 {
		t.Errorf("view has %d lines, want 6", len(lines))
	}
}
