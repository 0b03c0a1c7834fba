// Package tui shows the grid in a terminal. Each cell is two columns wide and one row
// high; mouse positions are mapped onto the view's pixel surface so hover and click
// behave as they do in the window.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"uk.ac.bris.cs/lifeview/gol"
	"uk.ac.bris.cs/lifeview/util"
	"uk.ac.bris.cs/lifeview/view"
)

// Rows above the grid
const headerRows = 1

type eventMsg struct{ event gol.Event }

type eventsClosedMsg struct{}

type model struct {
	state    *view.State
	events   <-chan gol.Event
	commands chan<- gol.Command

	turn     int
	status   string
	failed   bool
	quitting bool
	help     help.Model
}

func newModel(state *view.State, events <-chan gol.Event, commands chan<- gol.Command) model {
	return model{
		state:    state,
		events:   events,
		commands: commands,
		status:   "waiting for the server",
		help:     help.New(),
	}
}

func waitForEvent(events <-chan gol.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg{event}
	}
}

func (m model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// pointer maps a terminal position to a pixel inside the matching cell.
// Rows above or below the grid map to a pixel above it, so the bottom-edge
// clamp never pulls the status line onto the last row.
func (m model) pointer(column, row int) (int, int) {
	cell := util.Cell{X: column / 2, Y: row - headerRows}
	if column < 0 {
		cell.X = -1
	}
	if cell.Y < 0 || cell.Y >= m.state.Height() {
		cell.Y = -1
	}
	return m.state.CellOrigin(cell)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventsClosedMsg:
		return m, tea.Quit

	case eventMsg:
		m.handleEvent(msg.event)
		return m, waitForEvent(m.events)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.MouseMsg:
		if m.quitting {
			break
		}
		switch msg.Action {
		case tea.MouseActionMotion:
			m.state.OnPointerMove(m.pointer(msg.X, msg.Y))
		case tea.MouseActionRelease:
			if msg.Button == tea.MouseButtonLeft {
				m.state.OnPointerMove(m.pointer(msg.X, msg.Y))
				m.state.OnClick()
			}
		}

	case tea.KeyMsg:
		if m.quitting {
			break
		}
		switch {
		case key.Matches(msg, keys.Place):
			if n := gol.Submit(m.state, m.commands); n > 0 {
				m.status = fmt.Sprintf("placing %d cells", n)
				m.failed = false
			}
		case key.Matches(msg, keys.Save):
			m.commands <- gol.Save{Grid: m.state.Grid()}
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			m.status = "quitting"
			close(m.commands)
		}
	}
	return m, nil
}

func (m *model) handleEvent(event gol.Event) {
	switch e := event.(type) {
	case gol.GridUpdated:
		if err := m.state.SetGrid(e.Grid); err != nil {
			m.status, m.failed = err.Error(), true
			return
		}
		m.turn = e.CompletedTurns
		m.status, m.failed = "in sync", false
	case gol.SyncFailed, gol.PlaceFailed, gol.IOFailed:
		m.status, m.failed = event.String(), true
	case gol.PlaceComplete, gol.ImageOutputComplete:
		m.status, m.failed = event.String(), false
	}
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Game of Life  turn %d", m.turn)))
	b.WriteString("\n")

	for y := 0; y != m.state.Height(); y++ {
		for x := 0; x != m.state.Width(); x++ {
			b.WriteString(cellView(m.state.Visual(x, y)))
		}
		b.WriteString("\n")
	}

	if m.failed {
		b.WriteString(errorStyle.Render(m.status))
	} else {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	return b.String()
}

// Run shows the grid until events is closed. Quitting closes commands; the
// controller then closes events.
func Run(state *view.State, events <-chan gol.Event, commands chan<- gol.Command) error {
	p := tea.NewProgram(newModel(state, events, commands), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
