package view

import "image/color"

// Palette used by the renderer.
var (
	DeadFill      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	AliveFill     = color.RGBA{R: 105, G: 155, B: 205, A: 255}
	OutlineStroke = color.RGBA{R: 105, G: 205, B: 155, A: 255}
	GridStroke    = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

// OutlineWidth is the stroke width of flagged and hovered cell outlines.
const OutlineWidth = 2

// Surface is a 2D drawing target addressed in whole pixels.
// Lines are axis aligned; a line of width w covers the w pixels starting at its coordinate.
type Surface interface {
	Resize(width, height int)
	Clear()
	FillRect(x, y, w, h int, c color.RGBA)
	StrokeRect(x, y, w, h, lineWidth int, c color.RGBA)
	Line(x1, y1, x2, y2, lineWidth int, c color.RGBA)
}
