package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/okian/vrcstatus/pkg/logger"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

const chartBlocksScript = `Array.from(document.querySelectorAll(` + "`" + BlockSelector + "`" + `)).map(function (b) {
  var h = b.querySelector('h5');
  var s = b.querySelector('svg');
  return { title: ((h && h.textContent) || '').trim(), svg: s ? s.outerHTML : '' };
})`

// Chrome drives a local Chrome through the DevTools protocol. The process is
// started on first use and reused until Close.
type Chrome struct {
	execPath  string
	headless  bool
	noSandbox bool
	userAgent string
	log       logger.Logger

	mu            sync.Mutex
	browserCtx    context.Context
	browserCancel context.CancelFunc
	allocCancel   context.CancelFunc
}

var _ Automation = (*Chrome)(nil)
var _ Instance = (*Chrome)(nil)

// NewChrome creates a Chrome automation with configuration options.
func NewChrome(opts ...Option) *Chrome {
	c := &Chrome{
		headless:  true,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Get().Named("browser")
	}
	return c
}

// Page reports that Chrome has no ready page; callers open one via Browser.
func (c *Chrome) Page(context.Context) (Page, error) {
	return nil, ErrNoPage
}

// Browser starts Chrome if needed.
func (c *Chrome) Browser(ctx context.Context) (Instance, error) {
	if err := c.start(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// NewPage opens a new tab.
func (c *Chrome) NewPage(ctx context.Context) (Page, error) {
	if err := c.start(ctx); err != nil {
		return nil, err
	}
	c.mu.Lock()
	parent := c.browserCtx
	c.mu.Unlock()

	tabCtx, cancel := chromedp.NewContext(parent)
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("%w: open tab: %w", ErrUnavailable, err)
	}
	return &chromePage{ctx: tabCtx, cancel: cancel}, nil
}

// Close shuts the browser down. A later call starts a fresh process.
func (c *Chrome) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shutdown()
	return nil
}

func (c *Chrome) start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.browserCtx != nil {
		return nil
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", c.headless),
		chromedp.UserAgent(c.userAgent),
	)
	if c.execPath != "" {
		opts = append(opts, chromedp.ExecPath(c.execPath))
	}
	if c.noSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithErrorf(func(format string, args ...any) {
			c.log.Debug(context.Background(), "chrome", logger.String("detail", fmt.Sprintf(format, args...)))
		}),
	)
	c.browserCtx, c.browserCancel, c.allocCancel = browserCtx, browserCancel, allocCancel

	// Run on the browser context starts the process; ctx only bounds the wait.
	startErr := make(chan error, 1)
	go func() { startErr <- chromedp.Run(browserCtx) }()
	select {
	case err := <-startErr:
		if err != nil {
			c.shutdown()
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
	case <-ctx.Done():
		c.shutdown()
		return fmt.Errorf("%w: %w", ErrUnavailable, ctx.Err())
	}
	c.log.Info(ctx, "chrome started", logger.Bool("headless", c.headless))
	return nil
}

func (c *Chrome) shutdown() {
	if c.browserCancel != nil {
		c.browserCancel()
	}
	if c.allocCancel != nil {
		c.allocCancel()
	}
	c.browserCtx, c.browserCancel, c.allocCancel = nil, nil, nil
}

// chromePage is one tab. Every call is bounded by both the caller's context
// and the tab's lifetime.
type chromePage struct {
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

func (p *chromePage) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	var (
		runCtx context.Context
		cancel context.CancelFunc
	)
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(p.ctx, timeout)
	} else {
		runCtx, cancel = context.WithCancel(p.ctx)
	}
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

func (p *chromePage) Goto(ctx context.Context, url string, timeout time.Duration) error {
	return p.run(ctx, timeout, chromedp.Navigate(url), chromedp.WaitReady("body", chromedp.ByQuery))
}

func (p *chromePage) WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error {
	return p.run(ctx, timeout, chromedp.WaitReady(selector, chromedp.ByQuery))
}

func (p *chromePage) ChartBlocks(ctx context.Context) ([]Block, error) {
	var blocks []Block
	if err := p.run(ctx, 0, chromedp.Evaluate(chartBlocksScript, &blocks)); err != nil {
		return nil, err
	}
	return blocks, nil
}

func (p *chromePage) Content(ctx context.Context) (string, error) {
	var html string
	if err := p.run(ctx, 0, chromedp.Evaluate(`document.documentElement.outerHTML`, &html)); err != nil {
		return "", err
	}
	return html, nil
}

func (p *chromePage) SetViewport(ctx context.Context, width, height int) error {
	return p.run(ctx, 0, chromedp.EmulateViewport(int64(width), int64(height)))
}

func (p *chromePage) SetContent(ctx context.Context, html string) error {
	return p.run(ctx, 0,
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

func (p *chromePage) Screenshot(ctx context.Context, selector string) ([]byte, error) {
	var buf []byte
	if err := p.run(ctx, 0, chromedp.Screenshot(selector, &buf, chromedp.NodeVisible, chromedp.ByQuery)); err != nil {
		return nil, err
	}
	return buf, nil
}

func (p *chromePage) Close() error {
	var err error
	p.once.Do(func() {
		err = chromedp.Cancel(p.ctx)
		p.cancel()
	})
	return err
}
