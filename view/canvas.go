package view

import (
	"image"
	"image/color"
	"image/draw"
)

// Canvas is a Surface backed by an in-memory RGBA image.
// Frontends upload Image().Pix to the screen whenever Dirty reports a change.
type Canvas struct {
	img   *image.RGBA
	dirty bool
}

func NewCanvas() *Canvas {
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, 0, 0))}
}

func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// At returns the colour of a single pixel.
func (c *Canvas) At(x, y int) color.RGBA {
	return c.img.RGBAAt(x, y)
}

// Dirty reports whether anything was drawn since the last call, and resets the flag.
func (c *Canvas) Dirty() bool {
	dirty := c.dirty
	c.dirty = false
	return dirty
}

func (c *Canvas) Resize(width, height int) {
	if c.img.Bounds().Dx() == width && c.img.Bounds().Dy() == height {
		return
	}
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
	c.dirty = true
}

func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	c.dirty = true
}

func (c *Canvas) FillRect(x, y, w, h int, col color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	r := image.Rect(x, y, x+w, y+h).Intersect(c.img.Bounds())
	draw.Draw(c.img, r, &image.Uniform{C: col}, image.Point{}, draw.Src)
	c.dirty = true
}

func (c *Canvas) StrokeRect(x, y, w, h, lineWidth int, col color.RGBA) {
	c.FillRect(x, y, w, lineWidth, col)
	c.FillRect(x, y+h-lineWidth, w, lineWidth, col)
	c.FillRect(x, y, lineWidth, h, col)
	c.FillRect(x+w-lineWidth, y, lineWidth, h, col)
}

func (c *Canvas) Line(x1, y1, x2, y2, lineWidth int, col color.RGBA) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	if y1 == y2 {
		c.FillRect(x1, y1, x2-x1, lineWidth, col)
	} else {
		c.FillRect(x1, y1, lineWidth, y2-y1, col)
	}
}
