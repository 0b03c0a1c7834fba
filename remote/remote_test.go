package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"uk.ac.bris.cs/lifeview/util"
)

func testConfig(server string) Config {
	return Config{
		Server:         server,
		Width:          2,
		Height:         2,
		Retries:        3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	}
}

func TestNewClientRejectsBadConfig(t *testing.T) {
	if _, err := NewClient(Config{Server: "localhost:8080", Width: 2, Height: 2}); err == nil {
		t.Error("NewClient accepted a server without a scheme")
	}
	if _, err := NewClient(Config{Server: "http://localhost:8080", Width: 0, Height: 2}); err == nil {
		t.Error("NewClient accepted a zero width")
	}
}

func TestClientFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/grid.json" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, `[true,false,0,1]`)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	if err != nil {
		t.Fatal(err)
	}
	grid, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(grid) != 4 || !grid[0] || grid[1] || grid[2] || !grid[3] {
		t.Errorf("Fetch() = %v, want [true false false true]", grid)
	}
}

func TestClientFetchRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			http.Error(w, "not yet", http.StatusServiceUnavailable)
			return
		}
		io.WriteString(w, `[false,false,false,true]`)
	}))
	defer server.Close()

	client, _ := NewClient(testConfig(server.URL))
	grid, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !grid[3] {
		t.Errorf("Fetch() = %v, want last cell alive", grid)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("server saw %d requests, want 3", got)
	}
}

func TestClientFetchGivesUp(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		io.WriteString(w, `[true]`)
	}))
	defer server.Close()

	client, _ := NewClient(testConfig(server.URL))
	_, err := client.Fetch(context.Background())

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Fetch err = %v, want *FetchError", err)
	}
	if fetchErr.Attempts != 4 {
		t.Errorf("Attempts = %d, want 4", fetchErr.Attempts)
	}
	if !errors.Is(err, ErrGridShape) {
		t.Errorf("Fetch err = %v, want it to wrap ErrGridShape", err)
	}
	if got := atomic.LoadInt32(&calls); got != 4 {
		t.Errorf("server saw %d requests, want 4", got)
	}
}

func TestClientPlace(t *testing.T) {
	var body string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/place" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client, _ := NewClient(testConfig(server.URL + "/"))
	if err := client.Place(context.Background(), []util.Cell{{X: 2, Y: 3}}); err != nil {
		t.Fatalf("Place: %v", err)
	}
	var cells []map[string]int
	if err := json.Unmarshal([]byte(body), &cells); err != nil {
		t.Fatalf("body %q is not JSON: %v", body, err)
	}
	if len(cells) != 1 || cells[0]["x"] != 2 || cells[0]["y"] != 3 {
		t.Errorf("posted %s, want [{\"x\":2,\"y\":3}]", body)
	}

	if err := client.Place(context.Background(), nil); err != nil {
		t.Fatalf("Place(nil): %v", err)
	}
	if strings.TrimSpace(body) != "[]" {
		t.Errorf("Place(nil) posted %q, want []", body)
	}
}

func TestClientPlaceFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad cells", http.StatusBadRequest)
	}))
	client, _ := NewClient(testConfig(server.URL))

	var submitErr *SubmitError
	err := client.Place(context.Background(), []util.Cell{{X: 9, Y: 9}})
	if !errors.As(err, &submitErr) || submitErr.Status != http.StatusBadRequest {
		t.Errorf("Place err = %v, want *SubmitError with status 400", err)
	}

	server.Close()
	err = client.Place(context.Background(), []util.Cell{{X: 0, Y: 0}})
	if !errors.As(err, &submitErr) || submitErr.Status != 0 || submitErr.Err == nil {
		t.Errorf("Place to a closed server err = %v, want *SubmitError without status", err)
	}
}

// fakeSource hands out grids and records the largest number of overlapping fetches.
type fakeSource struct {
	in_flight int32
	overlap   int32
	calls     int32
	fail_from int32
}

func (f *fakeSource) Fetch(ctx context.Context) (Grid, error) {
	if atomic.AddInt32(&f.in_flight, 1) > 1 {
		atomic.StoreInt32(&f.overlap, 1)
	}
	defer atomic.AddInt32(&f.in_flight, -1)
	call := atomic.AddInt32(&f.calls, 1)
	time.Sleep(time.Millisecond)
	if f.fail_from > 0 && call >= f.fail_from {
		return nil, &FetchError{URL: "fake", Attempts: 1, Err: errors.New("down")}
	}
	return Grid{call%2 == 0}, nil
}

func TestPollIsSequential(t *testing.T) {
	source := &fakeSource{}
	results := make(chan Result)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Poll(ctx, source, results, time.Millisecond) }()

	for i := 0; i != 5; i++ {
		result := <-results
		if result.Err != nil {
			t.Fatalf("result %d: %v", i, result.Err)
		}
		if result.Grid[0] != (i%2 == 1) {
			t.Errorf("result %d out of order: %v", i, result.Grid)
		}
	}
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Poll returned %v, want context.Canceled", err)
	}
	if atomic.LoadInt32(&source.overlap) != 0 {
		t.Error("two fetches were in flight at once")
	}
}

func TestPollReportsFailuresAndContinues(t *testing.T) {
	source := &fakeSource{fail_from: 2}
	results := make(chan Result)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Poll(ctx, source, results, time.Millisecond)

	if result := <-results; result.Err != nil {
		t.Fatalf("first result: %v", result.Err)
	}
	for i := 0; i != 2; i++ {
		result := <-results
		var fetchErr *FetchError
		if !errors.As(result.Err, &fetchErr) {
			t.Fatalf("result %d err = %v, want *FetchError", i+1, result.Err)
		}
	}
}

func TestWebSocketSource(t *testing.T) {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/grid.ws" {
			http.NotFound(w, r)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		conn.WriteMessage(websocket.TextMessage, []byte(`[true,true,false,false]`))
		conn.WriteMessage(websocket.TextMessage, []byte(`[false,false,true,true]`))
		conn.ReadMessage()
	}))
	defer server.Close()

	source, err := NewWebSocketSource(testConfig(server.URL))
	if err != nil {
		t.Fatal(err)
	}
	defer source.Close()

	first, err := source.Fetch(context.Background())
	if err != nil {
		t.Fatalf("first Fetch: %v", err)
	}
	second, err := source.Fetch(context.Background())
	if err != nil {
		t.Fatalf("second Fetch: %v", err)
	}
	if !first[0] || first[2] || second[0] || !second[2] {
		t.Errorf("Fetch() = %v then %v, want the two pushed grids in order", first, second)
	}
}

func TestWebSocketSourceCancel(t *testing.T) {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		conn.ReadMessage()
	}))
	defer server.Close()

	source, _ := NewWebSocketSource(testConfig(server.URL))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := source.Fetch(ctx); err == nil {
		t.Fatal("Fetch returned a grid from a silent stream")
	}
	if ctx.Err() == nil {
		t.Error("Fetch returned before the context ended")
	}
}
