package report

import (
	"context"
	"fmt"

	"github.com/okian/vrcstatus/internal/adapters/browser"
)

// Default screenshot size.
const (
	DefaultWidth  = 1200
	DefaultHeight = 800
)

// Viewport is the browser window size used for captures.
type Viewport struct {
	Width  int
	Height int
}

// Capture loads html into a browser page and screenshots its body as PNG.
// The page is always closed.
func Capture(ctx context.Context, a browser.Automation, html string, vp Viewport) ([]byte, error) {
	if vp.Width <= 0 || vp.Height <= 0 {
		vp = Viewport{Width: DefaultWidth, Height: DefaultHeight}
	}

	p, err := browser.Acquire(ctx, a)
	if err != nil {
		return nil, err
	}
	defer func() { _ = p.Close() }()

	if err := p.SetViewport(ctx, vp.Width, vp.Height); err != nil {
		return nil, fmt.Errorf("set viewport: %w", err)
	}
	if err := p.SetContent(ctx, html); err != nil {
		return nil, fmt.Errorf("set content: %w", err)
	}
	img, err := p.Screenshot(ctx, "body")
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	return img, nil
}
