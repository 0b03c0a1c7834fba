package remote

import (
	"context"
	"time"
)

// Result is one pass of the poll loop: a snapshot, or the error that replaced it.
type Result struct {
	Grid Grid
	Err  error
}

// Poll fetches snapshots back to back until ctx is done and returns ctx.Err().
// The next fetch starts only after the previous result was handed over, so at most
// one request is ever in flight. After a failed fetch the loop waits pause first.
func Poll(ctx context.Context, source Source, results chan<- Result, pause time.Duration) error {
	for {
		grid, err := source.Fetch(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		select {
		case results <- Result{Grid: grid, Err: err}:
		case <-ctx.Done():
			return ctx.Err()
		}

		if err != nil {
			select {
			case <-time.After(pause):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
