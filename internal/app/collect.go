package service

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/vrcstatus/internal/domain/chart"
	"github.com/okian/vrcstatus/internal/domain/metric"
	"github.com/okian/vrcstatus/internal/report"
	"github.com/okian/vrcstatus/pkg/logger"
	"github.com/okian/vrcstatus/pkg/metrics"
)

// Result is the outcome of one pipeline invocation.
type Result struct {
	RunID          string             `json:"run_id"`
	Source         string             `json:"source"`
	DocumentLength int                `json:"document_length"`
	Definitions    []chart.Definition `json:"definitions"`
	Keys           []chart.Key        `json:"charts"`
	Missing        []string           `json:"missing,omitempty"`
	Metrics        metric.Derived     `json:"metrics"`
	Version        string             `json:"version"`
	CollectedAt    time.Time          `json:"collected_at"`

	Charts chart.Rendered     `json:"-"`
	Plots  map[chart.Key]Plot `json:"-"`
}

func (s *Service) result(run *Run) *Result {
	return &Result{
		RunID:          run.ID,
		Source:         run.Source,
		DocumentLength: len(run.Document),
		Definitions:    run.Definitions,
		Keys:           run.Charts.Keys(),
		Missing:        run.Missing,
		Metrics:        run.Metrics,
		Version:        Version(),
		CollectedAt:    s.now(),
		Charts:         run.Charts,
		Plots:          run.Plots,
	}
}

// Version returns the process version string.
func (s *Service) Version() string { return Version() }

// Collect runs acquisition and the series stage once.
//
// It fails with ErrCapabilityUnavailable without an HTTP capability, with
// ErrAcquisition when no document could be fetched and with ErrNoCharts when
// nothing was rendered. The Result is non-nil whenever a run was started.
func (s *Service) Collect(ctx context.Context) (*Result, error) {
	start := time.Now()
	if s.http == nil {
		s.logger.Error(ctx, "collect aborted", logger.Error(ErrCapabilityUnavailable))
		metrics.RecordPipelineRun(outcomeNoHTTP, msSince(start))
		return nil, ErrCapabilityUnavailable
	}

	run, ok := s.Fetch(ctx)
	if !ok {
		run.log.Error(ctx, "collect failed", logger.Error(ErrAcquisition))
		metrics.RecordPipelineRun(outcomeAcquisition, msSince(start))
		return s.result(run), ErrAcquisition
	}

	s.BuildCharts(ctx, run)
	res := s.result(run)
	if len(run.Charts) == 0 {
		run.log.Warn(ctx, "collect found no charts",
			logger.Int("definitions", len(run.Definitions)),
			logger.Error(ErrNoCharts),
		)
		metrics.RecordPipelineRun(outcomeNoCharts, msSince(start))
		return res, ErrNoCharts
	}

	if p, ok := run.Plots[chart.OnlineUsers]; ok {
		if last, ok := p.Series.Last(); ok {
			metrics.UpdateOnlineUsers(last.V)
		}
	}
	if p, ok := run.Plots[chart.APIErrorRate]; ok {
		if last, ok := p.Series.Last(); ok {
			metrics.UpdateErrorRate(last.V)
		}
	}
	metrics.RecordPipelineRun(outcomeOK, msSince(start))
	run.log.Info(ctx, "collect finished",
		logger.String("source", run.Source),
		logger.Int("charts", len(run.Charts)),
		logger.Duration("took", time.Since(start)),
	)
	return res, nil
}

// Report runs Collect and composes the HTML report.
func (s *Service) Report(ctx context.Context) (string, *Result, error) {
	res, err := s.Collect(ctx)
	if err != nil {
		return "", res, err
	}
	html, err := report.Compose(report.Input{
		Charts:  res.Charts,
		Metrics: res.Metrics,
		Version: res.Version,
		Now:     res.CollectedAt,
	})
	if err != nil {
		return "", res, fmt.Errorf("compose report: %w", err)
	}
	return html, res, nil
}

// Snapshot runs the whole pipeline and returns the report as a PNG.
func (s *Service) Snapshot(ctx context.Context) ([]byte, *Result, error) {
	html, res, err := s.Report(ctx)
	if err != nil {
		return nil, res, err
	}
	if s.browser == nil {
		s.logger.Warn(ctx, "snapshot skipped: no browser capability", logger.String("run_id", res.RunID))
		metrics.RecordSnapshot(false)
		return nil, res, ErrImageUnavailable
	}

	img, err := report.Capture(ctx, s.browser, html, s.viewport)
	metrics.RecordSnapshot(err == nil)
	if err != nil {
		s.logger.Warn(ctx, "snapshot capture failed", logger.String("run_id", res.RunID), logger.Error(err))
		return nil, res, fmt.Errorf("%w: %w", ErrImageUnavailable, err)
	}
	return img, res, nil
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
