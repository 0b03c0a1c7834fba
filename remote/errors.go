package remote

import (
	"errors"
	"fmt"
)

// ErrGridShape means a snapshot was not a flat array of width*height booleans.
var ErrGridShape = errors.New("grid snapshot has the wrong shape")

// FetchError is returned once a snapshot fetch has used up its retries.
type FetchError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s failed after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// SubmitError is returned when a placement request fails.
// Status is zero when no response arrived.
type SubmitError struct {
	URL    string
	Status int
	Err    error
}

func (e *SubmitError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("place %s: server answered %d", e.URL, e.Status)
	}
	return fmt.Sprintf("place %s: %v", e.URL, e.Err)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// statusError is the transport-level failure for an unexpected HTTP status.
type statusError int

func (s statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", int(s))
}
