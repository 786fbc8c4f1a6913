// Package logger holds the process-wide structured logger used by the
// commands. Libraries take a *slog.Logger instead of reaching for it.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type Config struct {
	Debug bool
	// File, when set, receives JSON logs instead of the text stream on Writer.
	File string
	// Writer defaults to os.Stderr.
	Writer io.Writer
}

var (
	mu      sync.RWMutex
	global  = slog.New(slog.DiscardHandler)
	logFile *os.File
)

// Setup installs the global logger and returns a cleanup func that closes
// the log file, if any, and restores the discard logger.
func Setup(cfg Config) (func() error, error) {
	level := slog.LevelInfo
	addSource := false
	if cfg.Debug {
		level = slog.LevelDebug
		addSource = true
	}
	opts := &slog.HandlerOptions{
		Level:       level,
		AddSource:   addSource,
		ReplaceAttr: utcTime,
	}

	var (
		h slog.Handler
		f *os.File
	)
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, err
		}
		var err error
		f, err = os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, err
		}
		h = slog.NewJSONHandler(f, opts)
	} else {
		w := cfg.Writer
		if w == nil {
			w = os.Stderr
		}
		h = slog.NewTextHandler(w, opts)
	}

	mu.Lock()
	global = slog.New(h)
	logFile = f
	mu.Unlock()

	cleanup := func() error {
		mu.Lock()
		defer mu.Unlock()

		var cerr error
		if logFile != nil {
			cerr = logFile.Close()
		}
		logFile = nil
		global = slog.New(slog.DiscardHandler)
		return cerr
	}

	return cleanup, nil
}

func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

func utcTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
		a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
	}
	return a
}
