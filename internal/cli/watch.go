package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/liamsorsby/website-e2e/internal/logger"
)

// watchDebounce coalesces the burst of events editors emit on save.
const watchDebounce = 200 * time.Millisecond

func watchCmd(d deps, load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-run the checks whenever the fixture file changes",
		Long: `watch runs the navigation checks once and then again every time the
fixture file is saved. Stop it with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, cleanup, err := load(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if cfg.Fixtures == "" {
				return errors.New("watch needs a fixture file (--fixtures or fixtures: in the config)")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fw, err := newFixtureWatcher(cfg.Fixtures, watchDebounce)
			if err != nil {
				return err
			}
			defer fw.Close()

			w := cmd.OutOrStdout()
			rerun := func() {
				suite, err := cfg.Suite()
				if err != nil {
					fmt.Fprintf(w, "%s %v\n", red("✗"), err)
					return
				}
				if _, err := runSuite(ctx, d, cfg, suite, w, "pretty"); err != nil {
					fmt.Fprintf(w, "%s %v\n", red("✗"), err)
				}
				fmt.Fprintf(w, "\nWatching %s for changes...\n", cfg.Fixtures)
			}

			rerun()
			return fw.Run(ctx, rerun)
		},
	}
}

// fixtureWatcher reports changes to a single file. It watches the parent
// directory so editors that save by rename are still seen.
type fixtureWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
}

func newFixtureWatcher(path string, debounce time.Duration) (*fixtureWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("watch fixtures: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch fixtures: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch fixtures: %w", err)
	}

	return &fixtureWatcher{watcher: w, path: abs, debounce: debounce}, nil
}

// Run calls onChange after each settled burst of changes to the file,
// until ctx is done. onChange runs on the calling goroutine, so runs never
// overlap.
func (fw *fixtureWatcher) Run(ctx context.Context, onChange func()) error {
	timer := time.NewTimer(fw.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.L().Debug("watch.event", "path", event.Name, "op", event.Op.String())
			timer.Reset(fw.debounce)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			logger.L().Warn("watch.error", "error", err)
		case <-timer.C:
			onChange()
		}
	}
}

func (fw *fixtureWatcher) Close() error {
	return fw.watcher.Close()
}
