// Package server provides an importable HTTP server that renders a local
// stand-in of the personal website. This allows E2E tests to programmatically
// start/stop a navigation target without running main().
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

// Config holds server configuration options.
type Config struct {
	Addr         string        // Listen address (e.g., ":3000" or ":0" for random port)
	ReadTimeout  time.Duration // HTTP read timeout
	WriteTimeout time.Duration // HTTP write timeout
	Logger       *slog.Logger  // Request and serve errors; nil discards
}

// DefaultConfig returns a configuration suitable for testing.
// Uses ":0" to bind to a random available port.
func DefaultConfig() Config {
	return Config{
		Addr:         ":0",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Server is an importable HTTP server for the fixture site.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	log        *slog.Logger
	addr       string
	mu         sync.Mutex
	running    bool
}

// NewServer creates a new server with the given configuration.
// The server is not started until Start() is called.
func NewServer(cfg Config) (*Server, error) {
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      Handler(log),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		httpServer: httpServer,
		log:        log,
	}, nil
}

// Handler serves the fixture site pages. Unknown paths get 404.
// A nil logger discards.
func Handler(log *slog.Logger) http.Handler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		p, ok := pages[r.URL.Path]
		if !ok {
			log.Debug("fixture.not_found", "path", r.URL.Path)
			http.NotFound(w, r)
			return
		}

		var buf bytes.Buffer
		if err := layout.Execute(&buf, p); err != nil {
			log.Error("fixture.render", "path", r.URL.Path, "error", err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		log.Debug("fixture.served", "path", r.URL.Path)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(buf.Bytes())
	})
}

// Start begins listening and serving HTTP requests.
// Returns the actual address the server is listening on (useful when port is 0).
// This method is non-blocking - the server runs in a goroutine.
func (s *Server) Start() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return s.addr, nil
	}

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen: %w", err)
	}

	s.listener = ln
	s.addr = ln.Addr().String()
	s.running = true

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("fixture.serve", "error", err)
		}
	}()

	return s.addr, nil
}

// URL returns a browsable base URL for the running server, using localhost
// in place of the wildcard host. Returns empty string if not running.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return ""
	}
	_, port, err := net.SplitHostPort(s.addr)
	if err != nil {
		return ""
	}
	return "http://localhost:" + port
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	s.running = false
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the address the server is listening on.
// Returns empty string if server is not running.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}
