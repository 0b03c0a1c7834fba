// Package life runs the authoritative Game of Life world that viewers poll.
package life

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"uk.ac.bris.cs/lifeview/util"
)

// ErrOutOfBounds is returned by Place when any requested cell is outside the world.
var ErrOutOfBounds = errors.New("cell outside the world")

// Params provides the details of the world and how fast to run it.
type Params struct {
	Width    int
	Height   int
	Threads  int
	Interval time.Duration
}

type TurnResult struct {
	count_diff int         // Difference in alive cell count
	flipped    []util.Cell // Cells whose state changed this turn
}

type workerParams struct {
	block       Block
	turn_chan   <-chan struct{}
	result_chan chan<- TurnResult
}

// Engine owns the world. Generations are computed by one goroutine per block.
type Engine struct {
	p Params

	mu          sync.Mutex
	matrix      Matrix
	next_matrix Matrix
	turn        int
	count       int
	changed     chan struct{} // closed and replaced after every generation

	turn_chans  []chan struct{}
	result_chan chan TurnResult
	closed      bool
}

// NewEngine starts the worker goroutines over the initial grid.
func NewEngine(p Params, initial []bool) (*Engine, error) {
	if p.Width < 3 || p.Height < 3 {
		return nil, fmt.Errorf("world must be at least 3x3, got %dx%d", p.Width, p.Height)
	}
	if len(initial) != p.Width*p.Height {
		return nil, fmt.Errorf("initial grid has %d cells, want %dx%d", len(initial), p.Width, p.Height)
	}

	e := &Engine{
		p:           p,
		matrix:      MakeMatrixFromGrid(p.Width, p.Height, initial),
		next_matrix: MakeMatrix(p.Width, p.Height),
		changed:     make(chan struct{}),
		result_chan: make(chan TurnResult),
	}
	for _, alive := range initial {
		if alive {
			e.count++
		}
	}

	// Create goroutines
	blocks := divideToBlocks(p.Threads, p.Width, p.Height)
	for _, block := range blocks {
		turn_chan := make(chan struct{})
		e.turn_chans = append(e.turn_chans, turn_chan)
		go e.worker(workerParams{
			block:       block,
			turn_chan:   turn_chan,
			result_chan: e.result_chan,
		})
	}
	log.Printf("Engine: %dx%d world, %d alive, %d workers", p.Width, p.Height, e.count, len(blocks))
	return e, nil
}

// worker evaluates its block every time it is signalled.
// Reads come from e.matrix and writes go to its own block of e.next_matrix, so
// workers never touch the same memory; Step holds e.mu for the whole turn.
func (e *Engine) worker(wp workerParams) {
	flipping_buffer := make([]util.Cell, 0, 64)
	for range wp.turn_chan {
		count_diff := e.matrix.evolveBlock(wp.block, &e.next_matrix, &flipping_buffer)
		copied := make([]util.Cell, len(flipping_buffer))
		copy(copied, flipping_buffer)
		wp.result_chan <- TurnResult{count_diff: count_diff, flipped: copied}
		flipping_buffer = flipping_buffer[0:0]
	}
}

// Step computes one generation and returns the new turn number.
func (e *Engine) Step() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return e.turn
	}

	for _, turn_chan := range e.turn_chans {
		turn_chan <- struct{}{}
	}

	// Surrounding counts start from the current ones and follow the flips
	copy(e.next_matrix.count_data, e.matrix.count_data)
	for range e.turn_chans {
		result := <-e.result_chan
		e.count += result.count_diff
		for _, cell := range result.flipped {
			if e.next_matrix.pixels[cell.Y][cell.X] != 0 {
				e.next_matrix.adjustSurrounding(cell, 1)
			} else {
				e.next_matrix.adjustSurrounding(cell, -1)
			}
		}
	}

	// Swap current and next matrix
	e.matrix, e.next_matrix = e.next_matrix, e.matrix
	e.turn++
	close(e.changed)
	e.changed = make(chan struct{})
	return e.turn
}

// Run steps the world every Interval until ctx is done.
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(e.p.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			e.Step()
		case <-ctx.Done():
			return
		}
	}
}

// Close stops the workers. The engine keeps serving snapshots but no longer steps.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	for _, turn_chan := range e.turn_chans {
		close(turn_chan)
	}
}

// Place brings the given cells to life before the next generation.
// Nothing is placed if any cell is outside the world.
func (e *Engine) Place(cells []util.Cell) (int, error) {
	for _, cell := range cells {
		if !cell.In(e.p.Width, e.p.Height) {
			return 0, fmt.Errorf("%w: %v", ErrOutOfBounds, cell)
		}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	placed := 0
	for _, cell := range cells {
		if e.matrix.setAlive(cell) {
			placed++
		}
	}
	e.count += placed
	return placed, nil
}

// Snapshot returns a copy of the world and its turn number.
func (e *Engine) Snapshot() ([]bool, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.matrix.Grid(), e.turn
}

// Wait blocks until a generation newer than after exists, then returns it.
func (e *Engine) Wait(ctx context.Context, after int) ([]bool, int, error) {
	for {
		e.mu.Lock()
		if e.turn > after {
			grid, turn := e.matrix.Grid(), e.turn
			e.mu.Unlock()
			return grid, turn, nil
		}
		changed := e.changed
		e.mu.Unlock()

		select {
		case <-changed:
		case <-ctx.Done():
			return nil, 0, ctx.Err()
		}
	}
}

// AliveCount returns the number of live cells and the turn it was counted at.
func (e *Engine) AliveCount() (int, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.count, e.turn
}

// aliveCells lists every live cell.
func (e *Engine) aliveCells() []util.Cell {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.matrix.aliveCells()
}
