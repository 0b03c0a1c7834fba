// Package remote talks to the simulation server: it fetches grid snapshots,
// either by polling grid.json over HTTP or by reading the grid.ws stream,
// and posts flagged cells to the place endpoint.
package remote

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"uk.ac.bris.cs/lifeview/util"
)

// Endpoint paths, relative to the server base URL.
const (
	GridPath   = "grid.json"
	PlacePath  = "place"
	StreamPath = "grid.ws"
)

// Source produces grid snapshots. Fetch blocks until the next snapshot is available.
type Source interface {
	Fetch(ctx context.Context) (Grid, error)
}

// Sink accepts cell placements.
type Sink interface {
	Place(ctx context.Context, cells []util.Cell) error
}

// Config describes the server and the retry policy for fetches.
type Config struct {
	Server         string // base URL, e.g. http://localhost:8080/
	Width          int
	Height         int
	Retries        int // extra attempts after the first failed fetch
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	HTTPClient     *http.Client
}

func (c Config) withDefaults() Config {
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = 250 * time.Millisecond
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = 5 * time.Second
	}
	if c.Retries < 0 {
		c.Retries = 0
	}
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	return c
}

func (c Config) baseURL() (*url.URL, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return nil, errors.New("remote: grid dimensions must be positive")
	}
	server := c.Server
	if !strings.HasSuffix(server, "/") {
		server += "/"
	}
	base, err := url.Parse(server)
	if err != nil {
		return nil, err
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.New("remote: server URL needs a scheme and host: " + c.Server)
	}
	return base, nil
}

// retryPolicy is exponential backoff capped at Retries extra attempts, stopped early by ctx.
func (c Config) retryPolicy(ctx context.Context) backoff.BackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.InitialBackoff
	policy.MaxInterval = c.MaxBackoff
	policy.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.Retries)), ctx)
}
