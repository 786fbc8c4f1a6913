package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/html"

	"github.com/liamsorsby/website-e2e/pkg/navcheck"
)

func TestServerStartStop(t *testing.T) {
	// Create server with random port
	srv, err := NewServer(DefaultConfig())
	if err != nil {
		t.Fatalf("NewServer() failed: %v", err)
	}

	addr, err := srv.Start()
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	// Verify we got a real address (not :0)
	if addr == "" || addr == ":0" {
		t.Errorf("Start() returned invalid address: %q", addr)
	}
	t.Logf("Server started on %s", addr)

	if got := srv.Addr(); got != addr {
		t.Errorf("Addr() = %q, want %q", got, addr)
	}
	if got := srv.URL(); !strings.HasPrefix(got, "http://localhost:") {
		t.Errorf("URL() = %q, want http://localhost:<port>", got)
	}

	url := "http://" + addr + "/"
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("HTTP GET failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET / status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Home | Liam Sorsby") {
		t.Error("Response body doesn't contain expected HTML")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}
	if got := srv.URL(); got != "" {
		t.Errorf("URL() after shutdown = %q, want empty", got)
	}

	// Verify server is stopped (should fail to connect)
	_, err = http.Get(url)
	if err == nil {
		t.Error("Expected connection error after shutdown, but request succeeded")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Addr != ":0" {
		t.Errorf("DefaultConfig().Addr = %q, want %q", cfg.Addr, ":0")
	}
	if cfg.ReadTimeout != 30*time.Second {
		t.Errorf("DefaultConfig().ReadTimeout = %v, want %v", cfg.ReadTimeout, 30*time.Second)
	}
	if cfg.WriteTimeout != 30*time.Second {
		t.Errorf("DefaultConfig().WriteTimeout = %v, want %v", cfg.WriteTimeout, 30*time.Second)
	}
}

func TestServerDoubleStart(t *testing.T) {
	srv, err := NewServer(DefaultConfig())
	if err != nil {
		t.Fatalf("NewServer() failed: %v", err)
	}
	defer srv.Shutdown(context.Background())

	addr1, err := srv.Start()
	if err != nil {
		t.Fatalf("First Start() failed: %v", err)
	}

	// Second start should return same address (no error)
	addr2, err := srv.Start()
	if err != nil {
		t.Fatalf("Second Start() failed: %v", err)
	}

	if addr1 != addr2 {
		t.Errorf("Second Start() returned different address: %q vs %q", addr1, addr2)
	}
}

func TestHandlerStatus(t *testing.T) {
	ts := httptest.NewServer(Handler(nil))
	defer ts.Close()

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/about", http.StatusOK},
		{http.MethodGet, "/blog", http.StatusOK},
		{http.MethodGet, "/tags", http.StatusOK},
		{http.MethodGet, "/projects", http.StatusOK},
		{http.MethodHead, "/about", http.StatusOK},
		{http.MethodGet, "/about/", http.StatusNotFound},
		{http.MethodGet, "/contact", http.StatusNotFound},
		{http.MethodPost, "/about", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		req, err := http.NewRequest(tt.method, ts.URL+tt.path, nil)
		if err != nil {
			t.Fatalf("NewRequest: %v", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("%s %s failed: %v", tt.method, tt.path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != tt.want {
			t.Errorf("%s %s status = %d, want %d", tt.method, tt.path, resp.StatusCode, tt.want)
		}
	}
}

// Every internal link on every page resolves.
func TestNoDeadLinks(t *testing.T) {
	ts := httptest.NewServer(Handler(nil))
	defer ts.Close()

	for path := range pages {
		doc := fetch(t, ts.URL+path)
		for _, href := range hrefs(doc) {
			if _, ok := pages[href]; !ok {
				t.Errorf("%s links to %s which is not served", path, href)
			}
		}
	}
}

// The fixture site satisfies the default navigation suite without a browser:
// the first matching link on the root page leads to the expected path, and
// the destination carries the expected tag/text pairs.
func TestFixtureSiteSatisfiesDefaultSuite(t *testing.T) {
	ts := httptest.NewServer(Handler(nil))
	defer ts.Close()

	root := fetch(t, ts.URL+"/")
	links := hrefs(root)

	for _, c := range navcheck.DefaultSuite().Cases {
		t.Run(c.Name, func(t *testing.T) {
			var target string
			for _, href := range links {
				if strings.Contains(href, c.Link) {
					target = href
					break
				}
			}
			if target == "" {
				t.Fatalf("no link matching %s on root page", c.LinkSelector())
			}
			if !strings.Contains(ts.URL+target, c.Path) {
				t.Fatalf("first link %q does not lead to %q", target, c.Path)
			}

			doc := fetch(t, ts.URL+target)
			for _, e := range c.Expect {
				if !hasText(doc, e.Tag, e.Text) {
					t.Errorf("%s: %s not found", target, e)
				}
			}
		})
	}
}

func fetch(t *testing.T, url string) *html.Node {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s status = %d", url, resp.StatusCode)
	}
	doc, err := html.Parse(resp.Body)
	if err != nil {
		t.Fatalf("parse %s: %v", url, err)
	}
	return doc
}

// hrefs returns anchor hrefs in document order.
func hrefs(doc *html.Node) []string {
	var out []string
	walk(doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, a := range n.Attr {
				if a.Key == "href" {
					out = append(out, a.Val)
				}
			}
		}
		return true
	})
	return out
}

func hasText(doc *html.Node, tag, text string) bool {
	found := false
	walk(doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == tag && strings.Contains(textOf(n), text) {
			found = true
		}
		return !found
	})
	return found
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(d *html.Node) bool {
		if d.Type == html.TextNode {
			sb.WriteString(d.Data)
		}
		return true
	})
	return sb.String()
}

// walk visits n and its descendants depth-first until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}
