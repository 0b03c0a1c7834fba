package tui

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"uk.ac.bris.cs/lifeview/view"
)

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(hex(view.AliveFill))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F38BA8"))

	deadStyle  = lipgloss.NewStyle().Background(hex(view.DeadFill))
	aliveStyle = lipgloss.NewStyle().Background(hex(view.AliveFill))
)

// Rendered cells indexed by [alive][outlined], built on the first frame
var (
	cell_views [2][2]string
	cells_once sync.Once
)

// Outlined cells keep their fill and draw brackets in the outline colour
func renderCells() {
	for alive, fill := range []lipgloss.Style{deadStyle, aliveStyle} {
		cell_views[alive][0] = fill.Render("  ")
		cell_views[alive][1] = fill.Foreground(hex(view.OutlineStroke)).Bold(true).Render("[]")
	}
}

func cellView(v view.Visual) string {
	cells_once.Do(renderCells)
	alive, outlined := 0, 0
	if v.Alive {
		alive = 1
	}
	if v.Outlined() {
		outlined = 1
	}
	return cell_views[alive][outlined]
}
