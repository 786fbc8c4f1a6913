// Package cli implements the navcheck command tree.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/liamsorsby/website-e2e/internal/config"
	"github.com/liamsorsby/website-e2e/internal/logger"
	"github.com/liamsorsby/website-e2e/pkg/browser"
	"github.com/liamsorsby/website-e2e/pkg/navcheck"
)

// Browser is a navcheck.Browser that owns a Chrome process.
type Browser interface {
	navcheck.Browser
	Close() error
}

// deps are the seams the commands are built on.
type deps struct {
	out        io.Writer
	newBrowser func(browser.Config) (Browser, error)
}

func defaultDeps() deps {
	return deps{
		out: os.Stdout,
		newBrowser: func(cfg browser.Config) (Browser, error) {
			return browser.New(cfg)
		},
	}
}

func Execute() {
	cmd := newRootCmd(defaultDeps())
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(d deps) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "navcheck",
		Short: "Browser checks for the website's navigation",
		Long: `navcheck loads the website's root page in Chrome, follows the about, blog,
tags and projects links and checks that each destination renders the expected
headings and content.

The site must already be running (default http://localhost:3000).`,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default: nearest "+config.ProjectFile+")")
	pf.String("base-url", "", "site origin, overrides the fixture file (default "+navcheck.DefaultBaseURL+")")
	pf.String("fixtures", "", "YAML fixture file (default: built-in checks)")
	pf.Bool("headless", true, "run Chrome headless")
	pf.Duration("timeout", 0, "page load timeout (default 30s)")
	pf.Duration("command-timeout", 0, "how long to wait for links, URLs and content (default 4s)")
	pf.String("chrome-bin", "", "Chrome executable (default: found or downloaded by Rod)")
	pf.Bool("debug", false, "enable debug logging")
	pf.String("log-file", "", "write JSON logs to this file instead of stderr")

	// loadConfig reads configuration and installs the logger.
	// The returned cleanup must be called when the command finishes.
	loadConfig := func(c *cobra.Command) (*config.Config, func(), error) {
		cfg, err := config.Load(configPath, c.Flags())
		if err != nil {
			return nil, nil, err
		}
		cleanup, err := logger.Setup(logger.Config{
			Debug:  cfg.Log.Debug,
			File:   cfg.Log.File,
			Writer: c.ErrOrStderr(),
		})
		if err != nil {
			return nil, nil, err
		}
		return cfg, func() { _ = cleanup() }, nil
	}

	cmd.AddCommand(runCmd(d, loadConfig))
	cmd.AddCommand(casesCmd(d, loadConfig))
	cmd.AddCommand(watchCmd(d, loadConfig))
	cmd.AddCommand(versionCmd(d))

	cmd.SetOut(d.out)
	return cmd
}

type configLoader func(*cobra.Command) (*config.Config, func(), error)
