package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/cenkalti/backoff/v4"

	"uk.ac.bris.cs/lifeview/util"
)

// Client polls grid.json and posts to place.
type Client struct {
	cfg       Config
	grid_url  string
	place_url string
}

func NewClient(cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()
	base, err := cfg.baseURL()
	if err != nil {
		return nil, err
	}
	return &Client{
		cfg:       cfg,
		grid_url:  base.ResolveReference(&url.URL{Path: GridPath}).String(),
		place_url: base.ResolveReference(&url.URL{Path: PlacePath}).String(),
	}, nil
}

// Fetch requests one snapshot, retrying with backoff on transport, status and shape errors.
func (c *Client) Fetch(ctx context.Context) (Grid, error) {
	var grid Grid
	attempts := 0
	operation := func() error {
		attempts++
		fetched, err := c.fetchOnce(ctx)
		if err != nil {
			return err
		}
		grid = fetched
		return nil
	}
	if err := backoff.Retry(operation, c.cfg.retryPolicy(ctx)); err != nil {
		return nil, &FetchError{URL: c.grid_url, Attempts: attempts, Err: err}
	}
	return grid, nil
}

func (c *Client) fetchOnce(ctx context.Context) (Grid, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.grid_url, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	res, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil, statusError(res.StatusCode)
	}
	return DecodeGrid(res.Body, c.cfg.Width, c.cfg.Height)
}

// Place posts the cells as a JSON array of {x,y}. It is not retried.
func (c *Client) Place(ctx context.Context, cells []util.Cell) error {
	if cells == nil {
		cells = []util.Cell{}
	}
	body, err := json.Marshal(cells)
	if err != nil {
		return &SubmitError{URL: c.place_url, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.place_url, bytes.NewReader(body))
	if err != nil {
		return &SubmitError{URL: c.place_url, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return &SubmitError{URL: c.place_url, Err: err}
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &SubmitError{URL: c.place_url, Status: res.StatusCode, Err: statusError(res.StatusCode)}
	}
	return nil
}
