package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"runtime"
	"time"

	"uk.ac.bris.cs/lifeview/gol"
	"uk.ac.bris.cs/lifeview/sdl"
	"uk.ac.bris.cs/lifeview/tui"
	"uk.ac.bris.cs/lifeview/util"
	"uk.ac.bris.cs/lifeview/view"
)

// Chance of a cell being alive in the placeholder grid
const placeholderDensity = 0.25

func getenvDefault(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// main is the function called when starting the viewer.
func main() {
	runtime.LockOSThread()
	var params gol.Params

	flag.StringVar(&params.Server, "server", getenvDefault("LIFEVIEW_SERVER", "http://localhost:8080/"),
		"Base URL of the Game of Life server. Defaults to $LIFEVIEW_SERVER.")
	flag.StringVar(&params.Transport, "transport", gol.TransportHTTP,
		"How to receive snapshots: http (long-poll grid.json) or ws (grid.ws stream).")
	flag.IntVar(&params.Width, "width", 80, "Width of the grid in cells.")
	flag.IntVar(&params.Height, "height", 40, "Height of the grid in cells.")
	flag.IntVar(&params.CellSize, "cell", 12, "Size of a cell in pixels.")
	flag.IntVar(&params.Spacing, "spacing", 1, "Width of the grid lines in pixels.")
	flag.IntVar(&params.Retries, "retries", 5, "Retries for each snapshot fetch before reporting a failure.")
	flag.StringVar(&params.OutDir, "out", "out", "Directory for saved PGM snapshots.")
	ui := flag.String("ui", "sdl", "Frontend to use: sdl, tui or none.")
	flag.Parse()

	fmt.Printf("%-10v %v\n", "Server", params.Server)
	fmt.Printf("%-10v %v\n", "Transport", params.Transport)
	fmt.Printf("%-10v %vx%v\n", "Grid", params.Width, params.Height)

	canvas := view.NewCanvas()
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	state, err := view.New(util.RandomGrid(params.Width, params.Height, placeholderDensity, r),
		params.Width, params.Height, params.CellSize, params.Spacing, canvas)
	if err != nil {
		log.Panic(err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	commands := make(chan gol.Command, 10)
	events := make(chan gol.Event, 1000)
	run_err := make(chan error, 1)
	go func() {
		run_err <- gol.Run(ctx, params, events, commands)
	}()

	switch *ui {
	case "sdl":
		sdl.Run(state, canvas, events, commands)
	case "tui":
		// The terminal belongs to the UI
		log.SetOutput(io.Discard)
		if err := tui.Run(state, events, commands); err != nil {
			log.Printf("Terminal UI failed: %v", err)
		}
		// Make sure the controller stops if the UI died early
		stop()
		for range events {
		}
	default:
		for event := range events {
			fmt.Printf("Completed Turns %-8v%v\n", event.GetCompletedTurns(), event)
		}
	}

	if err := <-run_err; err != nil {
		log.Panic(err.Error())
	}
}
