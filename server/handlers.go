package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"uk.ac.bris.cs/lifeview/life"
	"uk.ac.bris.cs/lifeview/util"
)

// Placement bodies are small; anything bigger than this is refused.
const maxPlaceBody = 1 << 20

type Server struct {
	engine   *life.Engine
	interval time.Duration
	upgrader websocket.Upgrader
}

func NewServer(engine *life.Engine, interval time.Duration) *Server {
	return &Server{
		engine:   engine,
		interval: interval,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

// Handler routes the three endpoints and logs every request.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /grid.json", s.handleGrid)
	mux.HandleFunc("POST /place", s.handlePlace)
	mux.HandleFunc("GET /grid.ws", s.handleStream)
	return withLogging(mux)
}

// Long-poll: reply with the next generation, or the current one if none arrives in time
func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	_, turn := s.engine.AliveCount()
	ctx, cancel := context.WithTimeout(r.Context(), 2*s.interval)
	defer cancel()

	grid, _, err := s.engine.Wait(ctx, turn)
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		grid, _ = s.engine.Snapshot()
	}
	writeJSON(w, grid)
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	var cells []util.Cell
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPlaceBody)).Decode(&cells); err != nil {
		http.Error(w, "bad placement: "+err.Error(), http.StatusBadRequest)
		return
	}
	placed, err := s.engine.Place(cells)
	if errors.Is(err, life.ErrOutOfBounds) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	} else if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Printf("Placed %d of %d cells", placed, len(cells))
	w.WriteHeader(http.StatusNoContent)
}

// Push every generation to the client until it goes away
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Upgrade error: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Reads only detect the close; clients never send anything useful
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	grid, turn := s.engine.Snapshot()
	for {
		if err := conn.WriteJSON(grid); err != nil {
			log.Printf("Stream to %s closed: %v", r.RemoteAddr, err)
			return
		}
		grid, turn, err = s.engine.Wait(ctx, turn)
		if err != nil {
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Write error: %v", err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (rec *statusRecorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}

// The websocket upgrade takes over the connection
func (rec *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := rec.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer cannot be hijacked")
	}
	rec.status = http.StatusSwitchingProtocols
	return hijacker.Hijack()
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %v", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
