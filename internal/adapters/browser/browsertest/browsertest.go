// Package browsertest provides in-memory browser capabilities for tests.
package browsertest

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/okian/vrcstatus/internal/adapters/browser"
)

// ErrInjected is returned by fakes configured to fail.
var ErrInjected = errors.New("injected failure")

// Page is a scripted browser page that records what it was asked to do.
type Page struct {
	Blocks     []browser.Block
	Document   string
	Image      []byte
	GotoErr    error
	WaitErr    error
	BlocksErr  error
	ContentErr error
	SetErr     error
	ShotErr    error

	mu       sync.Mutex
	Visited  []string
	Viewport [2]int
	HTML     string
	Shot     string
	Closed   int
}

var _ browser.Page = (*Page)(nil)

func (p *Page) Goto(_ context.Context, url string, _ time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Visited = append(p.Visited, url)
	return p.GotoErr
}

func (p *Page) WaitForSelector(context.Context, string, time.Duration) error { return p.WaitErr }

func (p *Page) ChartBlocks(context.Context) ([]browser.Block, error) {
	if p.BlocksErr != nil {
		return nil, p.BlocksErr
	}
	return p.Blocks, nil
}

func (p *Page) Content(context.Context) (string, error) {
	if p.ContentErr != nil {
		return "", p.ContentErr
	}
	return p.Document, nil
}

func (p *Page) SetViewport(_ context.Context, w, h int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Viewport = [2]int{w, h}
	return nil
}

func (p *Page) SetContent(_ context.Context, html string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.HTML = html
	return p.SetErr
}

func (p *Page) Screenshot(_ context.Context, selector string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Shot = selector
	if p.ShotErr != nil {
		return nil, p.ShotErr
	}
	return p.Image, nil
}

func (p *Page) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Closed++
	return nil
}

// Automation serves Ready directly when set, otherwise opens NewPages in order
// through a managed browser. NoBrowser hides the browser route.
type Automation struct {
	Ready     *Page
	NewPages  []*Page
	NoBrowser bool

	mu     sync.Mutex
	Opened int
}

var _ browser.Automation = (*Automation)(nil)

func (a *Automation) Page(context.Context) (browser.Page, error) {
	if a.Ready == nil {
		return nil, browser.ErrNoPage
	}
	return a.Ready, nil
}

func (a *Automation) Browser(context.Context) (browser.Instance, error) {
	if a.NoBrowser {
		return nil, browser.ErrUnavailable
	}
	return (*instance)(a), nil
}

type instance Automation

func (i *instance) NewPage(context.Context) (browser.Page, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.Opened >= len(i.NewPages) {
		return nil, ErrInjected
	}
	p := i.NewPages[i.Opened]
	i.Opened++
	return p, nil
}
