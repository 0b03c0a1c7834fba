package remote

import (
	"bytes"
	"context"
	"net/url"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
)

// WebSocketSource reads snapshots pushed over grid.ws.
// The connection is dialled lazily and redialled after any read error.
type WebSocketSource struct {
	cfg    Config
	url    string
	dialer *websocket.Dialer
	conn   *websocket.Conn
}

func NewWebSocketSource(cfg Config) (*WebSocketSource, error) {
	cfg = cfg.withDefaults()
	base, err := cfg.baseURL()
	if err != nil {
		return nil, err
	}
	stream := base.ResolveReference(&url.URL{Path: StreamPath})
	switch stream.Scheme {
	case "https":
		stream.Scheme = "wss"
	case "http":
		stream.Scheme = "ws"
	}
	return &WebSocketSource{
		cfg:    cfg,
		url:    stream.String(),
		dialer: websocket.DefaultDialer,
	}, nil
}

// Fetch waits for the next pushed snapshot.
func (s *WebSocketSource) Fetch(ctx context.Context) (Grid, error) {
	var grid Grid
	attempts := 0
	operation := func() error {
		attempts++
		fetched, err := s.readOnce(ctx)
		if err != nil {
			return err
		}
		grid = fetched
		return nil
	}
	if err := backoff.Retry(operation, s.cfg.retryPolicy(ctx)); err != nil {
		return nil, &FetchError{URL: s.url, Attempts: attempts, Err: err}
	}
	return grid, nil
}

func (s *WebSocketSource) readOnce(ctx context.Context) (Grid, error) {
	if s.conn == nil {
		conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
		if err != nil {
			return nil, err
		}
		s.conn = conn
	}

	// Unblock the read if ctx ends first
	conn := s.conn
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	_, data, err := conn.ReadMessage()
	if err != nil {
		conn.Close()
		s.conn = nil
		return nil, err
	}
	return DecodeGrid(bytes.NewReader(data), s.cfg.Width, s.cfg.Height)
}

// Close drops the stream connection if one is open.
func (s *WebSocketSource) Close() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}
