package service

import (
	"time"

	"github.com/okian/vrcstatus/internal/adapters/browser"
	"github.com/okian/vrcstatus/internal/adapters/fetch"
	"github.com/okian/vrcstatus/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHTTPClient sets the HTTP capability. Without one every run fails.
func WithHTTPClient(c fetch.Client) Option {
	return func(s *Service) {
		s.http = c
	}
}

// WithBrowser sets the browser capability used for fallback fetches and
// report images.
func WithBrowser(a browser.Automation) Option {
	return func(s *Service) {
		s.browser = a
	}
}

// WithURL sets the status page address.
func WithURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.url = url
		}
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithRetries sets how many extra direct attempts follow a failed one.
func WithRetries(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.retries = n
		}
	}
}

// WithConcurrency bounds how many series are fetched in parallel.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithViewport sets the report screenshot size.
func WithViewport(width, height int) Option {
	return func(s *Service) {
		if width > 0 && height > 0 {
			s.viewport.Width = width
			s.viewport.Height = height
		}
	}
}

// WithClock overrides the time source used for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
