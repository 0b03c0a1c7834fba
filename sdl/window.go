package sdl

import (
	"image"
	"log"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
)

// Window shows a view.Canvas through a streaming texture.
type Window struct {
	Width, Height int32
	window        *sdl.Window
	renderer      *sdl.Renderer
	texture       *sdl.Texture
}

func NewWindow(title string, width, height int32) *Window {
	err := sdl.Init(sdl.INIT_EVERYTHING)
	if err != nil {
		log.Panic(err.Error())
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		width, height, sdl.WINDOW_SHOWN)
	if err != nil {
		log.Panic(err.Error())
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		log.Panic(err.Error())
	}

	// image.RGBA keeps bytes in R, G, B, A order which is ABGR8888 on little-endian
	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING, width, height)
	if err != nil {
		log.Panic(err.Error())
	}

	return &Window{
		Width:    width,
		Height:   height,
		window:   window,
		renderer: renderer,
		texture:  texture,
	}
}

// RenderFrame uploads the image and presents it.
func (w *Window) RenderFrame(img *image.RGBA) {
	if len(img.Pix) == 0 {
		return
	}
	err := w.texture.Update(nil, unsafe.Pointer(&img.Pix[0]), img.Stride)
	if err != nil {
		log.Printf("Texture update error: %v", err)
		return
	}
	w.renderer.Clear()
	w.renderer.Copy(w.texture, nil, nil)
	w.renderer.Present()
}

func (w *Window) SetTitle(title string) {
	w.window.SetTitle(title)
}

func (w *Window) Destroy() {
	w.texture.Destroy()
	w.renderer.Destroy()
	w.window.Destroy()
	sdl.Quit()
}
