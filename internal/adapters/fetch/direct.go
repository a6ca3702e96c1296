package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/vrcstatus/internal/domain/chart"
)

// Headers sent when fetching the status page itself.
var PageHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
	"Accept":     "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
}

// SeriesHeaders are sent when fetching series payloads.
var SeriesHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0",
	"Accept":     "application/json",
}

// Direct makes one attempt to fetch the page as text.
func Direct(ctx context.Context, c Client, url string, timeout time.Duration) (string, error) {
	body, err := c.Get(ctx, url, Request{Timeout: timeout, Headers: PageHeaders})
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Series fetches and decodes one series payload.
func Series(ctx context.Context, c Client, url string, timeout time.Duration) (chart.Series, error) {
	body, err := c.Get(ctx, url, Request{Timeout: timeout, Headers: SeriesHeaders})
	if err != nil {
		return nil, err
	}
	s, err := chart.ParseSeries(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, url, err)
	}
	return s, nil
}
