// Package config handles configuration loading for navcheck.
// It supports a project-level .navcheck.yaml, an explicit config file,
// NAVCHECK_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/liamsorsby/website-e2e/pkg/browser"
	"github.com/liamsorsby/website-e2e/pkg/navcheck"
)

// ProjectFile is the config file name searched for in the working
// directory and its parents.
const ProjectFile = ".navcheck.yaml"

// EnvPrefix prefixes every environment override, e.g. NAVCHECK_BASE_URL.
const EnvPrefix = "NAVCHECK"

// Config holds all configuration for a navcheck run.
type Config struct {
	// BaseURL overrides the suite's base_url when set.
	BaseURL string `mapstructure:"base_url"`
	// Fixtures is a YAML fixture file. Empty means the built-in suite.
	Fixtures string        `mapstructure:"fixtures"`
	Browser  BrowserConfig `mapstructure:"browser"`
	Log      LogConfig     `mapstructure:"log"`
}

// BrowserConfig holds Chrome settings.
type BrowserConfig struct {
	Headless       bool          `mapstructure:"headless"`
	Timeout        time.Duration `mapstructure:"timeout"`
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
	Bin            string        `mapstructure:"bin"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Debug bool   `mapstructure:"debug"`
	File  string `mapstructure:"file"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"base-url":        "base_url",
	"fixtures":        "fixtures",
	"headless":        "browser.headless",
	"timeout":         "browser.timeout",
	"command-timeout": "browser.command_timeout",
	"chrome-bin":      "browser.bin",
	"debug":           "log.debug",
	"log-file":        "log.file",
}

// Load builds the configuration.
// Precedence (highest to lowest):
// 1. Flags in fs that were set on the command line
// 2. Environment variables (NAVCHECK_BASE_URL, NAVCHECK_BROWSER_TIMEOUT, ...)
// 3. The file at path, or the nearest .navcheck.yaml when path is empty
// 4. Built-in defaults
//
// fs may be nil.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		path = findProjectConfig()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config from %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Relative fixture paths in a config file are relative to that file.
	if path != "" && fixturesFromFile(v, fs) && !filepath.IsAbs(cfg.Fixtures) {
		cfg.Fixtures = filepath.Join(filepath.Dir(path), cfg.Fixtures)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late in a run.
func (c *Config) Validate() error {
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil {
			return fmt.Errorf("base_url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("base_url: unsupported scheme %q", u.Scheme)
		}
		if u.Host == "" {
			return errors.New("base_url: missing host")
		}
	}
	if c.Browser.Timeout <= 0 {
		return errors.New("browser.timeout must be positive")
	}
	if c.Browser.CommandTimeout <= 0 {
		return errors.New("browser.command_timeout must be positive")
	}
	return nil
}

// Suite returns the fixture suite to run: the fixture file if configured,
// otherwise the built-in suite, with BaseURL applied on top.
func (c *Config) Suite() (navcheck.Suite, error) {
	s := navcheck.DefaultSuite()
	if c.Fixtures != "" {
		var err error
		s, err = navcheck.LoadSuite(c.Fixtures)
		if err != nil {
			return navcheck.Suite{}, err
		}
	}
	if c.BaseURL != "" {
		s.BaseURL = c.BaseURL
	}
	return s, nil
}

// BrowserOptions converts the browser section for browser.New.
func (c *Config) BrowserOptions() browser.Config {
	return browser.Config{
		Headless:       c.Browser.Headless,
		Timeout:        c.Browser.Timeout,
		CommandTimeout: c.Browser.CommandTimeout,
		Bin:            c.Browser.Bin,
	}
}

// Default returns a Config with default values.
func Default() *Config {
	b := browser.DefaultConfig()
	return &Config{
		Browser: BrowserConfig{
			Headless:       b.Headless,
			Timeout:        b.Timeout,
			CommandTimeout: b.CommandTimeout,
		},
	}
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("fixtures", d.Fixtures)

	v.SetDefault("browser.headless", d.Browser.Headless)
	v.SetDefault("browser.timeout", d.Browser.Timeout.String())
	v.SetDefault("browser.command_timeout", d.Browser.CommandTimeout.String())
	v.SetDefault("browser.bin", d.Browser.Bin)

	v.SetDefault("log.debug", d.Log.Debug)
	v.SetDefault("log.file", d.Log.File)
}

// findProjectConfig searches for .navcheck.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ProjectFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// fixturesFromFile reports whether the fixtures value came from the config file.
func fixturesFromFile(v *viper.Viper, fs *pflag.FlagSet) bool {
	if !v.InConfig("fixtures") || v.GetString("fixtures") == "" {
		return false
	}
	if _, ok := os.LookupEnv(EnvPrefix + "_FIXTURES"); ok {
		return false
	}
	if fs != nil {
		if f := fs.Lookup("fixtures"); f != nil && f.Changed {
			return false
		}
	}
	return true
}
