package gol

import (
	"fmt"

	"uk.ac.bris.cs/lifeview/remote"
	"uk.ac.bris.cs/lifeview/util"
)

// Event represents any Game of Life event that the controller sends to the frontend.
// CompletedTurns counts the snapshots received so far.
type Event interface {
	fmt.Stringer
	GetCompletedTurns() int
}

// State represents a change in the state of the controller.
type State int

const (
	Executing State = iota
	Quitting
)

func (s State) String() string {
	switch s {
	case Executing:
		return "Executing"
	case Quitting:
		return "Quitting"
	default:
		return "Incorrect State"
	}
}

// StateChange is sent when the controller starts and just before it closes the channel.
type StateChange struct {
	CompletedTurns int
	NewState       State
}

// GridUpdated carries a fresh snapshot from the server. The frontend replaces its grid with it.
type GridUpdated struct {
	CompletedTurns int
	Grid           remote.Grid
}

// SyncFailed is sent when a snapshot fetch ran out of retries. Polling carries on.
type SyncFailed struct {
	CompletedTurns int
	Err            error
}

// PlaceComplete is sent once the server accepted a placement.
type PlaceComplete struct {
	CompletedTurns int
	Cells          []util.Cell
}

// PlaceFailed is sent when a placement was rejected or never arrived.
// The cells are not given back to the view.
type PlaceFailed struct {
	CompletedTurns int
	Cells          []util.Cell
	Err            error
}

// ImageOutputComplete is sent when a snapshot has been written to a PGM file.
type ImageOutputComplete struct {
	CompletedTurns int
	Filename       string
}

// IOFailed is sent when a snapshot could not be written.
type IOFailed struct {
	CompletedTurns int
	Err            error
}

func (event StateChange) String() string {
	return fmt.Sprintf("%v", event.NewState)
}

func (event StateChange) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event GridUpdated) String() string {
	return fmt.Sprintf("Snapshot %d", event.CompletedTurns)
}

func (event GridUpdated) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event SyncFailed) String() string {
	return fmt.Sprintf("Sync failed: %v", event.Err)
}

func (event SyncFailed) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event PlaceComplete) String() string {
	return fmt.Sprintf("Placed %d cells", len(event.Cells))
}

func (event PlaceComplete) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event PlaceFailed) String() string {
	return fmt.Sprintf("Placing %d cells failed: %v", len(event.Cells), event.Err)
}

func (event PlaceFailed) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event ImageOutputComplete) String() string {
	return fmt.Sprintf("File %s output complete", event.Filename)
}

func (event ImageOutputComplete) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event IOFailed) String() string {
	return fmt.Sprintf("File output failed: %v", event.Err)
}

func (event IOFailed) GetCompletedTurns() int {
	return event.CompletedTurns
}
