package browser

import "github.com/okian/vrcstatus/pkg/logger"

// Option applies a configuration option to Chrome.
type Option func(*Chrome)

// WithExecPath sets the Chrome binary. Empty means look it up on PATH.
func WithExecPath(path string) Option {
	return func(c *Chrome) {
		c.execPath = path
	}
}

// WithHeadless toggles headless mode.
func WithHeadless(headless bool) Option {
	return func(c *Chrome) {
		c.headless = headless
	}
}

// WithNoSandbox disables the Chrome sandbox (needed in most containers).
func WithNoSandbox(noSandbox bool) Option {
	return func(c *Chrome) {
		c.noSandbox = noSandbox
	}
}

// WithUserAgent overrides the browser user agent.
func WithUserAgent(ua string) Option {
	return func(c *Chrome) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the logger used for browser diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(c *Chrome) {
		if l != nil {
			c.log = l
		}
	}
}
