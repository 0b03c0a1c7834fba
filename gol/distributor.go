package gol

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"uk.ac.bris.cs/lifeview/remote"
	"uk.ac.bris.cs/lifeview/util"
)

type distributorChannels struct {
	events   chan<- Event
	commands <-chan Command
}

// upper bound for a single placement request
const placeTimeout = 10 * time.Second

// distributor forwards snapshots from the poll loop to the frontend and serves its commands.
func distributor(ctx context.Context, p Params, io *ioState, source remote.Source, sink remote.Sink, c distributorChannels) {

	defer io.quit()

	// Start polling
	results := make(chan remote.Result)
	poll_ctx, stop_poll := context.WithCancel(ctx)
	var pending sync.WaitGroup
	pending.Add(1)
	go func() {
		defer pending.Done()
		remote.Poll(poll_ctx, source, results, syncPause)
	}()

	// Write file function
	write := func(turn int, grid []bool) {
		if len(grid) != p.Width*p.Height {
			c.events <- IOFailed{turn, fmt.Errorf("cannot save %d cells as %dx%d", len(grid), p.Width, p.Height)}
			return
		}
		filename := fmt.Sprintf("%dx%dx%d", p.Width, p.Height, turn)
		operation := &ioOperation{
			command:  ioOutput,
			filename: filename,
			data:     pgmData(grid),
		}
		io.sendIoRequest(operation)
		if err := io.waitIoRequest(operation); err != nil {
			log.Printf("Saving %s failed: %v", filename, err)
			c.events <- IOFailed{turn, err}
			return
		}
		c.events <- ImageOutputComplete{turn, filename}
	}

	// Submit function, runs alongside polling
	place := func(turn int, cells []util.Cell) {
		defer pending.Done()
		place_ctx, cancel := context.WithTimeout(ctx, placeTimeout)
		defer cancel()
		if err := sink.Place(place_ctx, cells); err != nil {
			log.Printf("Place failed: %v", err)
			c.events <- PlaceFailed{turn, cells, err}
			return
		}
		log.Printf("Placed %d cells", len(cells))
		c.events <- PlaceComplete{turn, cells}
	}

	// Handle events
	turn := 0
	c.events <- StateChange{turn, Executing}
	for {
		select {
		case result := <-results:
			if result.Err != nil {
				log.Printf("Sync failed: %v", result.Err)
				c.events <- SyncFailed{turn, result.Err}
				continue
			}
			turn++
			c.events <- GridUpdated{turn, result.Grid}
		case command, ok := <-c.commands:
			if !ok {
				goto quit
			}
			switch command := command.(type) {
			case Place:
				pending.Add(1)
				go place(turn, command.Cells)
			case Save:
				write(turn, command.Grid)
			}
		case <-ctx.Done():
			goto quit
		}
	}

quit:
	stop_poll()
	pending.Wait()
	log.Printf("Controller stopped after %d snapshots", turn)

	c.events <- StateChange{turn, Quitting}

	// Close the channel to stop the frontend gracefully.
	close(c.events)
}
