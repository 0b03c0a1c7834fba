// Package sdl shows the grid in a desktop window and turns mouse and keyboard input
// into view interactions and controller commands.
package sdl

import (
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"uk.ac.bris.cs/lifeview/gol"
	"uk.ac.bris.cs/lifeview/view"
)

const frameInterval = 16 * time.Millisecond

// Run owns the window and the view state until events is closed.
// Quitting from the window closes commands; the controller then closes events.
func Run(state *view.State, canvas *view.Canvas, events <-chan gol.Event, commands chan<- gol.Command) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	width, height := state.PixelSize()
	w := NewWindow("Game of Life", int32(width), int32(height))
	defer w.Destroy()
	w.RenderFrame(canvas.Image())

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	quitting := false
	quit := func() {
		if !quitting {
			quitting = true
			close(commands)
		}
	}

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			switch e := event.(type) {
			case gol.GridUpdated:
				if err := state.SetGrid(e.Grid); err != nil {
					log.Printf("Snapshot rejected: %v", err)
					break
				}
				w.SetTitle(fmt.Sprintf("Game of Life - turn %d", e.CompletedTurns))
			default:
				log.Printf("Completed Turns %-8v%v", event.GetCompletedTurns(), event)
			}
		case <-ticker.C:
			for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
				if quitting {
					continue
				}
				switch e := event.(type) {
				case *sdl.QuitEvent:
					quit()
				case *sdl.MouseMotionEvent:
					state.OnPointerMove(int(e.X), int(e.Y))
				case *sdl.WindowEvent:
					if e.Event == sdl.WINDOWEVENT_LEAVE {
						state.OnPointerLeave()
					}
				case *sdl.MouseButtonEvent:
					if e.Type == sdl.MOUSEBUTTONUP && e.Button == sdl.BUTTON_LEFT {
						state.OnClick()
					}
				case *sdl.KeyboardEvent:
					if e.Type != sdl.KEYDOWN {
						break
					}
					switch e.Keysym.Sym {
					case sdl.K_p, sdl.K_RETURN:
						gol.Submit(state, commands)
					case sdl.K_s:
						commands <- gol.Save{Grid: state.Grid()}
					case sdl.K_q, sdl.K_ESCAPE:
						quit()
					}
				}
			}
			if canvas.Dirty() {
				w.RenderFrame(canvas.Image())
			}
		}
	}
}
