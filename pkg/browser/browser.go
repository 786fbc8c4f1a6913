// Package browser drives Chrome through Rod for the navigation checks.
// Client implements navcheck.Browser.
package browser

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/liamsorsby/website-e2e/pkg/navcheck"
)

// Config configures Chrome launch options and wait behaviour.
type Config struct {
	Headless bool          // Run in headless mode (default: true)
	Timeout  time.Duration // Page load timeout (default: 30s)
	// CommandTimeout bounds how long element, URL and content lookups keep
	// polling before they fail (default: 4s).
	CommandTimeout time.Duration
	// Bin is the Chrome executable. Empty means Rod finds or downloads one.
	Bin string
}

// DefaultConfig returns sensible defaults for the navigation checks.
func DefaultConfig() Config {
	return Config{
		Headless:       true,
		Timeout:        30 * time.Second,
		CommandTimeout: 4 * time.Second,
	}
}

// pollInterval is how often WaitURLContains re-reads the page URL.
const pollInterval = 50 * time.Millisecond

// navigationStatusJS reads the HTTP status of the current document.
// It yields 0 when the browser does not expose one (non-HTTP URLs, Chrome < 109).
const navigationStatusJS = `() => {
	const nav = performance.getEntriesByType('navigation')[0];
	return nav && nav.responseStatus ? nav.responseStatus : 0;
}`

// Client wraps a Rod browser and the page currently under test.
type Client struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	cfg      Config
}

var _ navcheck.Browser = (*Client)(nil)

// New launches Chrome and connects to it.
// The browser is configured for containers: no sandbox and no GPU.
func New(cfg Config) (*Client, error) {
	if cfg.Timeout <= 0 || cfg.CommandTimeout <= 0 {
		return nil, errors.New("timeouts must be positive")
	}

	l := launcher.New().
		Headless(cfg.Headless).
		Set("no-sandbox").
		Set("disable-gpu")
	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	}

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch Chrome: %w", err)
	}

	b := rod.New().ControlURL(url)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to Chrome: %w", err)
	}

	return &Client{
		launcher: l,
		browser:  b,
		cfg:      cfg,
	}, nil
}

// Visit opens url in a fresh page, closing the previous one, and waits for
// the load event. A document served with a 4xx or 5xx status is an error.
func (c *Client) Visit(ctx context.Context, url string) error {
	if c.page != nil {
		_ = c.page.Close()
		c.page = nil
	}

	page, err := c.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("failed to open page: %w", err)
	}
	c.page = page

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	p := page.Context(ctx)
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("failed to load %s: %w", url, err)
	}
	return c.checkStatus(p, url)
}

// checkStatus fails the load when the current document has an error status.
func (c *Client) checkStatus(p *rod.Page, url string) error {
	res, err := p.Eval(navigationStatusJS)
	if err != nil {
		return fmt.Errorf("failed to read status of %s: %w", url, err)
	}
	return statusError(url, res.Value.Int())
}

// statusError returns an error for HTTP error statuses. Zero means unknown
// and is accepted.
func statusError(url string, status int) error {
	if status >= 400 {
		return fmt.Errorf("load %s: status %d", url, status)
	}
	return nil
}

// ClickFirstLink clicks the first anchor whose href contains fragment,
// polling until one exists.
func (c *Client) ClickFirstLink(ctx context.Context, fragment string) error {
	if c.page == nil {
		return errors.New("no page open, call Visit first")
	}

	cctx, cancel := context.WithTimeout(ctx, c.cfg.CommandTimeout)
	defer cancel()

	selector := navcheck.LinkSelector(fragment)
	el, err := c.page.Context(cctx).Element(selector)
	if err != nil {
		return c.classify(ctx, err, navcheck.ErrElementNotFound, selector)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	return nil
}

// WaitURLContains polls the page URL until it contains fragment.
func (c *Client) WaitURLContains(ctx context.Context, fragment string) (string, error) {
	if c.page == nil {
		return "", errors.New("no page open, call Visit first")
	}

	cctx, cancel := context.WithTimeout(ctx, c.cfg.CommandTimeout)
	defer cancel()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	var last string
	for {
		info, err := c.page.Context(cctx).Info()
		if err == nil {
			last = info.URL
			if strings.Contains(last, fragment) {
				// Content checks run against the new document.
				if err := c.page.Context(cctx).WaitLoad(); err != nil {
					return last, fmt.Errorf("failed to load %s: %w", last, err)
				}
				return last, nil
			}
		}

		select {
		case <-cctx.Done():
			return last, c.classify(ctx, cctx.Err(), navcheck.ErrURLMismatch, "got "+last)
		case <-ticker.C:
		}
	}
}

// ContainsText waits for an element matching tag whose text contains text.
// The comparison is a literal, case-sensitive substring match.
func (c *Client) ContainsText(ctx context.Context, tag, text string) error {
	if c.page == nil {
		return errors.New("no page open, call Visit first")
	}

	cctx, cancel := context.WithTimeout(ctx, c.cfg.CommandTimeout)
	defer cancel()

	if _, err := c.page.Context(cctx).ElementR(tag, TextPattern(text)); err != nil {
		return c.classify(ctx, err, navcheck.ErrContentMismatch, tag)
	}
	return nil
}

// TextPattern returns a JavaScript regex literal matching text verbatim.
func TextPattern(text string) string {
	return "/" + strings.ReplaceAll(regexp.QuoteMeta(text), "/", `\/`) + "/"
}

// classify maps a command timeout to sentinel. parent is the caller's
// context: when it is done, its error is returned instead, since the
// command timeout did not fire.
func (c *Client) classify(parent context.Context, err error, sentinel error, detail string) error {
	if perr := parent.Err(); perr != nil {
		return fmt.Errorf("%s: %w", detail, perr)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", detail, err)
	}
	return fmt.Errorf("%s: %w after %s", detail, sentinel, c.cfg.CommandTimeout)
}

// Page returns the current page, or nil if none open.
func (c *Client) Page() *rod.Page {
	return c.page
}

// Close cleans up browser resources.
// Always call this (via defer) to prevent orphaned Chrome processes.
func (c *Client) Close() error {
	if c.browser == nil {
		return nil
	}
	err := c.browser.Close()
	c.launcher.Cleanup()
	c.browser = nil
	c.page = nil
	return err
}
