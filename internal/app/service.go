// Package service runs the status pipeline: acquire the status page, extract
// its chart table, fetch every series, synthesize charts, derive indicators
// and optionally capture the composed report as an image.
//
// A Service holds only configuration and capabilities. Every invocation
// builds its own Run, so one Service is safe for concurrent callers.
package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/vrcstatus/internal/adapters/browser"
	"github.com/okian/vrcstatus/internal/adapters/fetch"
	"github.com/okian/vrcstatus/internal/domain/chart"
	"github.com/okian/vrcstatus/internal/domain/graphs"
	"github.com/okian/vrcstatus/internal/domain/metric"
	"github.com/okian/vrcstatus/internal/render/svg"
	"github.com/okian/vrcstatus/internal/report"
	"github.com/okian/vrcstatus/internal/worker"
	"github.com/okian/vrcstatus/pkg/logger"
	"github.com/okian/vrcstatus/pkg/metrics"
)

// Defaults.
const (
	DefaultURL     = "https://status.vrchat.com/"
	DefaultTimeout = 15 * time.Second
	DefaultRetries = 2
	// DefaultConcurrency of 1 fetches series strictly in definition order.
	DefaultConcurrency = 1
)

// Where a run's document came from.
const (
	SourceNone    = ""
	SourceDirect  = "direct"
	SourceBrowser = "browser"
)

// Run outcomes as reported to metrics.
const (
	outcomeOK          = "ok"
	outcomeAcquisition = "acquisition_failed"
	outcomeNoCharts    = "no_charts"
	outcomeNoHTTP      = "capability_unavailable"
)

// Service implements the status pipeline.
type Service struct {
	logger  logger.Logger
	http    fetch.Client
	browser browser.Automation

	url         string
	timeout     time.Duration
	retries     int
	concurrency int
	viewport    report.Viewport
	now         func() time.Time

	extractor *graphs.Extractor
	pool      *worker.Pool
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		url:         DefaultURL,
		timeout:     DefaultTimeout,
		retries:     DefaultRetries,
		concurrency: DefaultConcurrency,
		viewport:    report.Viewport{Width: report.DefaultWidth, Height: report.DefaultHeight},
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("pipeline")
	}
	s.extractor = graphs.New(s.logger.Named("graphs"))
	s.pool = worker.NewPool(s.concurrency, worker.WithName("series"), worker.WithLogger(s.logger.Named("series")))
	return s
}

// Plot is the data behind one stored chart.
type Plot struct {
	Definition chart.Definition
	Series     chart.Series
	Overlay    chart.Series
}

// Run is the state of one invocation.
type Run struct {
	ID          string
	Source      string
	Document    string
	Definitions []chart.Definition
	Charts      chart.Rendered
	Plots       map[chart.Key]Plot
	Missing     []string
	Metrics     metric.Derived

	log logger.Logger
}

func (s *Service) newRun() *Run {
	id := uuid.NewString()
	return &Run{
		ID:      id,
		Charts:  chart.Rendered{},
		Plots:   map[chart.Key]Plot{},
		Metrics: metric.NewDerived(),
		log:     s.logger.With(logger.String("run_id", id)),
	}
}

// Fetch acquires the status page and extracts its chart definitions.
//
// Direct fetch is tried retries+1 times and stops at the first success. Only
// when every direct attempt failed is the browser tried, once. ok reports
// whether either strategy produced a document.
func (s *Service) Fetch(ctx context.Context) (*Run, bool) {
	run := s.newRun()
	if s.http == nil {
		run.log.Error(ctx, "cannot fetch", logger.Error(ErrCapabilityUnavailable))
		return run, false
	}

	for attempt := 1; attempt <= s.retries+1; attempt++ {
		doc, err := fetch.Direct(ctx, s.http, s.url, s.timeout)
		metrics.RecordFetchAttempt(metrics.StrategyDirect, err == nil)
		if err == nil {
			run.Document = doc
			run.Source = SourceDirect
			break
		}
		run.log.Warn(ctx, "direct fetch failed",
			logger.Int("attempt", attempt),
			logger.Int("max_attempts", s.retries+1),
			logger.Error(err),
		)
	}

	if run.Source == SourceNone {
		ok := s.fetchWithBrowser(ctx, run)
		metrics.RecordFetchAttempt(metrics.StrategyBrowser, ok)
	}
	if run.Source == SourceNone {
		return run, false
	}

	run.log.Debug(ctx, "document fetched",
		logger.String("source", run.Source),
		logger.Int("length", len(run.Document)),
		logger.Int("charts", len(run.Charts)),
	)
	run.Definitions = s.extractor.Parse(ctx, run.Document)
	return run, true
}

// fetchWithBrowser loads the page in a browser and keeps both the rendered
// document and any chart blocks whose title maps to a known key.
func (s *Service) fetchWithBrowser(ctx context.Context, run *Run) bool {
	if s.browser == nil {
		run.log.Info(ctx, "browser fallback skipped: no browser capability")
		return false
	}

	page, err := browser.Acquire(ctx, s.browser)
	if err != nil {
		run.log.Warn(ctx, "browser fallback failed", logger.Error(err))
		return false
	}
	defer func() {
		if err := page.Close(); err != nil {
			run.log.Debug(ctx, "close browser page", logger.Error(err))
		}
	}()

	if err := page.Goto(ctx, s.url, s.timeout); err != nil {
		run.log.Warn(ctx, "browser navigation failed", logger.Error(err))
		return false
	}
	if err := page.WaitForSelector(ctx, browser.ChartsSelector, s.timeout); err != nil {
		run.log.Debug(ctx, "chart container not found, continuing", logger.Error(err))
	}

	blocks, err := page.ChartBlocks(ctx)
	if err != nil {
		run.log.Warn(ctx, "browser chart extraction failed", logger.Error(err))
		return false
	}
	doc, err := page.Content(ctx)
	if err != nil {
		run.log.Warn(ctx, "browser document read failed", logger.Error(err))
		return false
	}
	run.Document = doc
	run.Source = SourceBrowser

	for _, b := range blocks {
		title := strings.TrimSpace(b.Title)
		if title == "" || b.SVG == "" {
			continue
		}
		key, ok := chart.KeyForTitle(title)
		if !ok {
			run.log.Debug(ctx, "browser chart dropped", logger.String("title", title))
			continue
		}
		run.Charts[key] = b.SVG
		metrics.RecordChartRendered(metrics.ProducerBrowser)
	}
	return true
}

// fetched holds the series of one definition.
type fetched struct {
	data, overlay chart.Series
	err           error
	overlayErr    error
}

// BuildCharts fetches every definition's series, then stores the synthesized
// charts in definition order and derives indicators.
//
// Fetches go through the series pool, one at a time unless WithConcurrency
// raised the bound; everything that touches the run happens after they
// finish, in definition order. A failed primary fetch drops that chart only. A
// failed overlay fetch is ignored. When the browser already produced charts
// they are kept as the chart set; series are still fetched for the
// indicators.
func (s *Service) BuildCharts(ctx context.Context, run *Run) {
	if len(run.Definitions) == 0 {
		return
	}
	results := make([]fetched, len(run.Definitions))
	jobs := make([]worker.Job, len(run.Definitions))
	for i, def := range run.Definitions {
		results[i] = fetched{err: worker.ErrSkipped}
		jobs[i] = func(ctx context.Context) { results[i] = s.fetchSeries(ctx, def) }
	}
	if err := s.pool.Run(ctx, jobs); err != nil {
		run.log.Warn(ctx, "series fetch interrupted", logger.Error(err))
	}

	browserCharts := len(run.Charts) > 0
	for i, def := range run.Definitions {
		s.buildChart(ctx, run, def, results[i], browserCharts)
	}
	run.log.Debug(ctx, "charts built",
		logger.Int("definitions", len(run.Definitions)),
		logger.Int("charts", len(run.Charts)),
		logger.Int("missing", len(run.Missing)),
	)
}

func (s *Service) fetchSeries(ctx context.Context, def chart.Definition) fetched {
	var f fetched
	f.data, f.err = fetch.Series(ctx, s.http, s.resolve(def.DataURL), s.timeout)
	metrics.RecordSeriesFetch(metrics.SeriesPrimary, f.err == nil)
	if f.err != nil || !def.HasOverlay() {
		return f
	}
	f.overlay, f.overlayErr = fetch.Series(ctx, s.http, s.resolve(def.OverlayURL), s.timeout)
	metrics.RecordSeriesFetch(metrics.SeriesOverlay, f.overlayErr == nil)
	if f.overlayErr != nil {
		f.overlay = nil
	}
	return f
}

func (s *Service) buildChart(ctx context.Context, run *Run, def chart.Definition, f fetched, keepExisting bool) {
	if f.err != nil {
		run.Missing = append(run.Missing, def.Title)
		run.log.Warn(ctx, "series fetch failed",
			logger.String("title", def.Title),
			logger.Error(fmt.Errorf("%w: %w", ErrPartialDataLoss, f.err)),
		)
		return
	}
	if f.overlayErr != nil {
		run.log.Debug(ctx, "overlay unavailable", logger.String("title", def.Title), logger.Error(f.overlayErr))
	}

	key, matched := chart.KeyForTitle(def.Title)
	run.Metrics.Observe(def, key, matched, f.data)
	if !matched {
		run.log.Debug(ctx, "no chart key for title", logger.String("title", def.Title))
		return
	}
	plot := Plot{Definition: def, Series: f.data, Overlay: f.overlay}
	if keepExisting {
		// Plots follow the chart set; keys the browser did not chart get none.
		if _, ok := run.Charts[key]; ok {
			run.Plots[key] = plot
		}
		return
	}
	run.Plots[key] = plot

	start := time.Now()
	run.Charts[key] = svg.Render(f.data, f.overlay, svg.Options{
		Title:         def.Title,
		Filled:        def.Filled,
		SmallDecimals: key.SmallDecimals(),
	})
	metrics.RecordRenderLatency(float64(time.Since(start).Microseconds()) / 1000)
	metrics.RecordChartRendered(metrics.ProducerSynth)
}

// resolve makes relative series URLs absolute against the page URL.
func (s *Service) resolve(ref string) string {
	u, err := url.Parse(ref)
	if err != nil || u.IsAbs() {
		return ref
	}
	base, err := url.Parse(s.url)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}
