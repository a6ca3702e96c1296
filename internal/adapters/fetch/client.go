// Package fetch is the outbound HTTP capability and the direct page transport.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultMaxBody = 16 << 20

// Request carries per-call settings.
type Request struct {
	// Timeout bounds the whole call. Zero means no timeout beyond ctx.
	Timeout time.Duration
	Headers map[string]string
}

// Client performs GET requests and returns the raw body.
type Client interface {
	Get(ctx context.Context, url string, req Request) ([]byte, error)
}

// HTTPClient implements Client over net/http.
type HTTPClient struct {
	client  *http.Client
	maxBody int64
}

// NewHTTPClient creates a client with configuration options.
func NewHTTPClient(opts ...Option) *HTTPClient {
	h := &HTTPClient{
		client:  &http.Client{},
		maxBody: defaultMaxBody,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Get fetches url. Every failure wraps ErrTransport.
func (h *HTTPClient) Get(ctx context.Context, url string, req Request) ([]byte, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	r, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	for k, v := range req.Headers {
		r.Header.Set(k, v)
	}

	resp, err := h.client.Do(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}
	if int64(len(body)) > h.maxBody {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrTransport, h.maxBody)
	}
	return body, nil
}
