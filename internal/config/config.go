// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() builds a Config with defaults; Load(ctx) layers file and env on top.
// - External errors are wrapped with this package's sentinel errors.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address for `serve`, e.g. ":9080".
	Addr string `koanf:"addr"`

	// URL is the status page to scrape.
	URL string `koanf:"url"`

	// TimeoutMS bounds every network and browser call.
	TimeoutMS int `koanf:"timeout_ms"`

	// Retries is the number of extra direct fetch attempts after the first.
	Retries int `koanf:"retries"`

	// SeriesConcurrency bounds parallel series fetches within one run. The
	// default of 1 keeps upstream load to one request at a time.
	SeriesConcurrency int `koanf:"series_concurrency"`

	// BrowserEnabled turns the headless Chrome capability on or off.
	BrowserEnabled bool `koanf:"browser_enabled"`

	// ChromePath overrides the Chrome/Chromium executable; empty means auto-detect.
	ChromePath string `koanf:"chrome_path"`

	// Headless runs Chrome without a window.
	Headless bool `koanf:"headless"`

	// NoSandbox disables the Chrome sandbox (needed in some containers).
	NoSandbox bool `koanf:"no_sandbox"`

	// ViewportWidth and ViewportHeight size the report screenshot.
	ViewportWidth  int `koanf:"viewport_width"`
	ViewportHeight int `koanf:"viewport_height"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		URL:               "https://status.vrchat.com/",
		TimeoutMS:         15000,
		Retries:           2,
		SeriesConcurrency: 1,
		BrowserEnabled:    true,
		Headless:          true,
		ViewportWidth:     1200,
		ViewportHeight:    800,
	}
}

// Timeout returns TimeoutMS as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}
