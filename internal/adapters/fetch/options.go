package fetch

import "net/http"

// Option applies a configuration option to the HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying net/http client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) {
		if c != nil {
			h.client = c
		}
	}
}

// WithMaxBody sets the largest body read before failing.
func WithMaxBody(n int64) Option {
	return func(h *HTTPClient) {
		if n > 0 {
			h.maxBody = n
		}
	}
}
