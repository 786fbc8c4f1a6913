//go:build e2e

package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/liamsorsby/website-e2e/cmd/fixture-site/server"
	"github.com/liamsorsby/website-e2e/pkg/browser"
	"github.com/liamsorsby/website-e2e/pkg/navcheck"
)

// newClient launches a browser that is closed when the test ends.
func newClient(t *testing.T, cfg browser.Config) *browser.Client {
	t.Helper()

	cfg.Headless = !*headful
	client, err := browser.New(cfg)
	if err != nil {
		t.Fatalf("failed to create browser: %v", err)
	}
	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Errorf("browser close error: %v", err)
		}
	})
	return client
}

// loadSuite reads the fixture file and points it at -base-url.
func loadSuite(t *testing.T) navcheck.Suite {
	t.Helper()

	s, err := navcheck.LoadSuite(*fixtures)
	if err != nil {
		t.Fatalf("failed to load fixtures: %v", err)
	}
	s.BaseURL = *baseURL
	return s
}

// runNavigationCase runs the named fixture case in a fresh browser.
func runNavigationCase(t *testing.T, name string) {
	t.Helper()

	s := loadSuite(t)
	c, ok := s.Case(name)
	if !ok {
		t.Fatalf("fixture case %q not found in %s (have %v)", name, *fixtures, s.Names())
	}

	client := newClient(t, browser.DefaultConfig())
	runner, err := navcheck.NewRunner(client)
	if err != nil {
		t.Fatalf("failed to create runner: %v", err)
	}

	t.Logf("Visiting %s and clicking %s", s.BaseURL, c.LinkSelector())
	res := runner.RunCase(context.Background(), s.BaseURL, c)
	if res.Err != nil {
		t.Fatalf("%s (%s): %v", name, navcheck.Kind(res.Err), res.Err)
	}
	t.Logf("Reached %s in %v", res.URL, res.Duration)
}

// startFixtureSite serves the fixture site on a random port and returns its URL.
func startFixtureSite(t *testing.T) string {
	t.Helper()

	srv, err := server.NewServer(server.DefaultConfig())
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	addr, err := srv.Start()
	if err != nil {
		t.Fatalf("failed to start server: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			t.Errorf("server shutdown error: %v", err)
		}
	})

	t.Logf("Fixture site started on %s", addr)
	return srv.URL()
}
