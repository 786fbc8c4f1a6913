package navcheck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/liamsorsby/website-e2e/pkg/navcheck/internal"
)

// Browser is the page driver a Runner needs.
//
// Implementations own all waiting: ClickFirstLink, WaitURLContains and
// ContainsText poll until they succeed or their timeout expires, and report
// failures wrapping ErrElementNotFound, ErrURLMismatch or ErrContentMismatch.
type Browser interface {
	// Visit loads url in a fresh page and waits for it to load.
	Visit(ctx context.Context, url string) error
	// ClickFirstLink clicks the first anchor whose href contains fragment.
	ClickFirstLink(ctx context.Context, fragment string) error
	// WaitURLContains waits for the page URL to contain fragment.
	// It returns the last URL observed, also on failure.
	WaitURLContains(ctx context.Context, fragment string) (string, error)
	// ContainsText waits for an element matching tag whose text contains text.
	ContainsText(ctx context.Context, tag, text string) error
}

// Option configures a Runner.
type Option func(*Runner) error

// WithLogger sets the logger used for case progress.
// Default: a logger that discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) error {
		if l == nil {
			return errors.New("logger must not be nil")
		}
		r.log = l
		return nil
	}
}

// WithRunID fixes the run identifier stamped on reports.
// Default: a random UUID per Run.
func WithRunID(id string) Option {
	return func(r *Runner) error {
		if id == "" {
			return errors.New("run ID must not be empty")
		}
		r.runID = id
		return nil
	}
}

// WithOnResult sets a callback invoked after each case finishes.
func WithOnResult(fn func(Result)) Option {
	return func(r *Runner) error {
		r.onResult = fn
		return nil
	}
}

func withClock(c internal.Clock) Option {
	return func(r *Runner) error {
		r.clock = c
		return nil
	}
}

// Runner executes navigation cases one at a time against a Browser.
type Runner struct {
	browser  Browser
	log      *slog.Logger
	clock    internal.Clock
	runID    string
	onResult func(Result)
}

// NewRunner creates a Runner driving b.
func NewRunner(b Browser, opts ...Option) (*Runner, error) {
	if b == nil {
		return nil, errors.New("browser must not be nil")
	}
	r := &Runner{
		browser: b,
		log:     slog.New(slog.DiscardHandler),
		clock:   internal.SystemClock{},
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Run executes every case of s in order and returns the report.
// A failing case does not stop the ones after it. If ctx is cancelled the
// remaining cases are recorded as failed with the context error.
func (r *Runner) Run(ctx context.Context, s Suite) *Report {
	id := r.runID
	if id == "" {
		id = uuid.NewString()
	}

	report := &Report{
		RunID:   id,
		BaseURL: s.BaseURL,
		Started: r.clock.Now(),
		Results: make([]Result, 0, len(s.Cases)),
	}

	log := r.log.With("run_id", id)
	log.Info("run.started", "base_url", s.BaseURL, "cases", len(s.Cases))

	for _, c := range s.Cases {
		var res Result
		if err := ctx.Err(); err != nil {
			res = Result{Case: c, Err: err}
		} else {
			res = r.runCase(ctx, log, s.BaseURL, c)
		}
		report.Results = append(report.Results, res)
		if r.onResult != nil {
			r.onResult(res)
		}
	}

	report.Finished = r.clock.Now()
	log.Info("run.finished",
		"passed", report.Passed(),
		"failed", report.Failed(),
		"elapsed", report.Finished.Sub(report.Started))

	return report
}

// RunCase executes a single case against baseURL.
func (r *Runner) RunCase(ctx context.Context, baseURL string, c Case) Result {
	return r.runCase(ctx, r.log, baseURL, c)
}

func (r *Runner) runCase(ctx context.Context, log *slog.Logger, baseURL string, c Case) Result {
	log = log.With("case", c.Name)
	log.Debug("case.started", "link", c.LinkSelector(), "path", c.Path)

	start := r.clock.Now()
	url, err := r.steps(ctx, log, baseURL, c)
	res := Result{
		Case:     c,
		URL:      url,
		Err:      err,
		Duration: r.clock.Now().Sub(start),
	}

	if err != nil {
		log.Warn("case.failed", "kind", Kind(err), "url", url, "error", err)
	} else {
		log.Info("case.passed", "url", url, "elapsed", res.Duration)
	}
	return res
}

// steps loads the root page, follows the link and checks the destination.
// The first failing step ends the case.
func (r *Runner) steps(ctx context.Context, log *slog.Logger, baseURL string, c Case) (string, error) {
	if err := r.browser.Visit(ctx, baseURL); err != nil {
		return "", fmt.Errorf("visit %s: %w", baseURL, err)
	}

	if err := r.browser.ClickFirstLink(ctx, c.Link); err != nil {
		return "", fmt.Errorf("click %s: %w", c.LinkSelector(), err)
	}

	url, err := r.browser.WaitURLContains(ctx, c.Path)
	if err != nil {
		return url, fmt.Errorf("url should include %q: %w", c.Path, err)
	}
	log.Debug("case.navigated", "url", url)

	for _, e := range c.Expect {
		if err := r.browser.ContainsText(ctx, e.Tag, e.Text); err != nil {
			return url, fmt.Errorf("%s: %w", e, err)
		}
	}
	return url, nil
}
