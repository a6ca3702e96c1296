// Package browser is the headless browser capability used as a fallback
// transport and for report screenshots.
package browser

import (
	"context"
	"time"
)

// Selectors of the status page layout.
const (
	ChartsSelector = "#vrccharts"
	BlockSelector  = "#vrccharts .vrcchart"
)

// Block is one chart block as found in a rendered page.
type Block struct {
	Title string `json:"title"`
	SVG   string `json:"svg"`
}

// Page is a single browser tab.
type Page interface {
	Goto(ctx context.Context, url string, timeout time.Duration) error
	WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error
	// ChartBlocks returns the title and SVG markup of every chart block, in
	// document order. Titles are trimmed; missing parts are empty strings.
	ChartBlocks(ctx context.Context) ([]Block, error)
	// Content returns the full serialized document.
	Content(ctx context.Context) (string, error)
	SetViewport(ctx context.Context, width, height int) error
	SetContent(ctx context.Context, html string) error
	// Screenshot captures the element matched by selector as PNG.
	Screenshot(ctx context.Context, selector string) ([]byte, error)
	Close() error
}

// Instance is a managed browser that can open pages.
type Instance interface {
	NewPage(ctx context.Context) (Page, error)
}

// Automation exposes either a ready page or a browser to open one with.
// Either accessor may return an error when that route is not offered.
type Automation interface {
	Page(ctx context.Context) (Page, error)
	Browser(ctx context.Context) (Instance, error)
}

// Acquire returns a page, preferring the ready page over a new one.
func Acquire(ctx context.Context, a Automation) (Page, error) {
	if a == nil {
		return nil, ErrNoPage
	}
	if p, err := a.Page(ctx); err == nil && p != nil {
		return p, nil
	}
	inst, err := a.Browser(ctx)
	if err != nil || inst == nil {
		return nil, ErrNoPage
	}
	p, err := inst.NewPage(ctx)
	if err != nil || p == nil {
		return nil, ErrNoPage
	}
	return p, nil
}
