package gol

import (
	"context"
	"fmt"
	"sync"
	"time"

	"uk.ac.bris.cs/lifeview/remote"
)

// Params provides the details of the grid and the server to sync it with.
type Params struct {
	Width     int
	Height    int
	CellSize  int
	Spacing   int
	Server    string
	Transport string // "http" or "ws"
	Retries   int
	OutDir    string
}

// Transports accepted in Params.Transport.
const (
	TransportHTTP      = "http"
	TransportWebSocket = "ws"
)

// pause between a failed sync and the next attempt
const syncPause = 2 * time.Second

// Run starts syncing with the server. It blocks until ctx is done or commands is
// closed, then sends a Quitting StateChange and closes events. The caller must keep
// reading events until the channel is closed.
func Run(ctx context.Context, p Params, events chan<- Event, commands <-chan Command) error {

	source, sink, closeSource, err := connect(p)
	if err != nil {
		events <- StateChange{0, Quitting}
		close(events)
		return err
	}
	defer closeSource()

	io := &ioState{
		params: p,
		cond:   sync.NewCond(new(sync.Mutex)),
	}
	go startIo(io)

	distributorChannels := distributorChannels{
		events:   events,
		commands: commands,
	}
	distributor(ctx, p, io, source, sink, distributorChannels)
	return nil
}

func connect(p Params) (remote.Source, remote.Sink, func(), error) {
	cfg := remote.Config{
		Server:  p.Server,
		Width:   p.Width,
		Height:  p.Height,
		Retries: p.Retries,
	}
	client, err := remote.NewClient(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	switch p.Transport {
	case TransportHTTP, "":
		return client, client, func() {}, nil
	case TransportWebSocket:
		stream, err := remote.NewWebSocketSource(cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		return stream, client, func() { stream.Close() }, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown transport %q", p.Transport)
	}
}
