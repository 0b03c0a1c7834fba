// Command server runs the shared Game of Life world that lifeview clients watch and seed.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"math/rand"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"uk.ac.bris.cs/lifeview/life"
	"uk.ac.bris.cs/lifeview/util"
)

type config struct {
	port    string
	params  life.Params
	density float64
	image   string
	seed    int64
}

func parseFlags() config {
	var cfg config
	flag.StringVar(&cfg.port, "port", getenvDefault("PORT", "8080"), "Port to listen on. Defaults to $PORT.")
	flag.IntVar(&cfg.params.Width, "width", 80, "Width of the world in cells.")
	flag.IntVar(&cfg.params.Height, "height", 40, "Height of the world in cells.")
	flag.IntVar(&cfg.params.Threads, "threads", 4, "Number of worker goroutines.")
	flag.DurationVar(&cfg.params.Interval, "interval", 250*time.Millisecond, "Time between generations.")
	flag.Float64Var(&cfg.density, "density", 0.25, "Chance of a cell starting alive when no image is given.")
	flag.StringVar(&cfg.image, "image", "", "PGM image to seed the world from.")
	flag.Int64Var(&cfg.seed, "seed", time.Now().UnixNano(), "Random seed for the initial world.")
	flag.Parse()
	return cfg
}

func getenvDefault(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func initialGrid(cfg config) ([]bool, error) {
	if cfg.image != "" {
		return life.ReadPgm(cfg.image, cfg.params.Width, cfg.params.Height)
	}
	r := rand.New(rand.NewSource(cfg.seed))
	return util.RandomGrid(cfg.params.Width, cfg.params.Height, cfg.density, r), nil
}

func main() {
	cfg := parseFlags()
	if cfg.params.Interval <= 0 {
		log.Panic("interval must be positive")
	}

	grid, err := initialGrid(cfg)
	if err != nil {
		log.Panic(err.Error())
	}
	engine, err := life.NewEngine(cfg.params, grid)
	if err != nil {
		log.Panic(err.Error())
	}
	defer engine.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go engine.Run(ctx)

	listener, err := net.Listen("tcp", ":"+cfg.port)
	if err != nil {
		log.Panic(err.Error())
	}
	server := &http.Server{Handler: NewServer(engine, cfg.params.Interval).Handler()}

	// Close the server once interrupted so Serve returns
	go func() {
		<-ctx.Done()
		shutdown_ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdown_ctx)
	}()

	log.Printf("Serving %dx%d world on %s", cfg.params.Width, cfg.params.Height, listener.Addr())
	if err := server.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
		log.Panic(err.Error())
	}
	count, turn := engine.AliveCount()
	log.Printf("Stopped at turn %d with %d cells alive", turn, count)
}
