// Fixture site server
//
// Serves a local stand-in of the personal website with the pages and
// content the navigation checks expect. Use it when the real site is not
// running:
//
//	go run ./cmd/fixture-site
//	go run ./cmd/navcheck run
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/liamsorsby/website-e2e/cmd/fixture-site/server"
	"github.com/liamsorsby/website-e2e/internal/logger"
)

func main() {
	addr := flag.String("addr", ":3000", "Listen address")
	debug := flag.Bool("debug", false, "Log every request")
	flag.Parse()

	cleanup, err := logger.Setup(logger.Config{Debug: *debug})
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer cleanup()

	cfg := server.DefaultConfig()
	cfg.Addr = *addr
	cfg.Logger = logger.L()

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	if _, err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
	fmt.Printf("Fixture site ready on %s\n", srv.URL())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.L().Error("fixture.shutdown", "error", err)
	}
}
