// Package worker runs independent jobs on a bounded set of goroutines.
package worker

import (
	"context"
	"errors"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/vrcstatus/pkg/logger"
)

// Default pool configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
)

// ErrSkipped marks a job that never started because its context ended first.
var ErrSkipped = errors.New("job skipped")

// Job is one unit of work. It must honour ctx.
type Job func(ctx context.Context)

// Pool runs batches of jobs with at most Size goroutines.
type Pool struct {
	size   int
	name   string
	logger logger.Logger
}

// NewPool creates a new worker pool. A size below 1 picks a CPU-based default.
func NewPool(size int, opts ...Option) *Pool {
	if size < 1 {
		size = runtime.NumCPU() * defaultWorkerMultiplier
	}
	p := &Pool{
		size: size,
		name: "worker-pool",
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Get().Named(p.name)
	}
	return p
}

// Size returns the maximum number of concurrent jobs.
func (p *Pool) Size() int { return p.size }

// Run executes jobs and blocks until every started job returned. Jobs not
// yet picked up when ctx ends are skipped; Run then returns ErrSkipped.
func (p *Pool) Run(ctx context.Context, jobs []Job) error {
	if len(jobs) == 0 {
		return nil
	}
	workers := min(p.size, len(jobs))

	queue := make(chan Job, len(jobs))
	for _, j := range jobs {
		queue <- j
	}
	close(queue)

	start := time.Now()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		skipped int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			n := p.work(ctx, queue)
			if n > 0 {
				mu.Lock()
				skipped += n
				mu.Unlock()
				p.logger.Debug(ctx, "worker stopped early", logger.String("worker", name), logger.Int("skipped", n))
			}
		}("worker-" + strconv.Itoa(i))
	}
	wg.Wait()

	p.logger.Debug(ctx, "batch done",
		logger.Int("jobs", len(jobs)),
		logger.Int("workers", workers),
		logger.Int("skipped", skipped),
		logger.Duration("took", time.Since(start)),
	)
	if skipped > 0 {
		return ErrSkipped
	}
	return nil
}

// work drains queue until it is empty. Once ctx is done the remaining jobs
// are counted and dropped.
func (p *Pool) work(ctx context.Context, queue <-chan Job) int {
	skipped := 0
	for job := range queue {
		if ctx.Err() != nil {
			skipped++
			continue
		}
		job(ctx)
	}
	return skipped
}
