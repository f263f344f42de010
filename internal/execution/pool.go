package execution

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"wqa/internal/config"
	"wqa/internal/domain"
	"wqa/internal/driver"
	"wqa/internal/registry"
	"wqa/internal/ui"
	"wqa/internal/weatherapi"
)

// Resources are what one worker owns for the duration of the run: its own
// API client and browser engine instance, never shared with siblings.
type Resources struct {
	API     *weatherapi.Client
	Browser driver.Browser
}

// ResourceFactory builds one worker's resources. The returned cleanup runs
// when the worker exits. A factory error is an infrastructure failure.
type ResourceFactory func(workerID int) (*Resources, func(), error)

// Pool executes cases in parallel across a fixed-size worker pool. Failure
// of one case never aborts siblings; infrastructure failures abort the run
// and the remaining queued cases are recorded, not dropped.
type Pool struct {
	cfg       *config.Config
	runner    *Runner
	resources ResourceFactory
	progress  *ui.Progress
	log       *zap.Logger
}

// NewPool creates a Pool.
func NewPool(cfg *config.Config, runner *Runner, resources ResourceFactory, log *zap.Logger) *Pool {
	return &Pool{cfg: cfg, runner: runner, resources: resources, log: log}
}

// SetProgress attaches a progress bar updated as cases complete.
func (p *Pool) SetProgress(progress *ui.Progress) {
	p.progress = progress
}

// Run executes the cases and returns exactly one Result per case, in
// completion order. The returned error is non-nil only for run-level
// (infrastructure) failures.
func (p *Pool) Run(parent context.Context, cases []registry.Case) ([]domain.Result, time.Duration, error) {
	if len(cases) == 0 {
		return nil, 0, nil
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	queue := make(chan registry.Case, len(cases))
	results := make(chan domain.Result, len(cases))
	for _, c := range cases {
		queue <- c
	}
	close(queue)

	workerCount := p.cfg.Workers
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > len(cases) {
		workerCount = len(cases)
	}

	var mu sync.Mutex
	var completed, passed, failed int
	var abortErr error
	startTime := time.Now()

	abort := func(err error) {
		mu.Lock()
		if abortErr == nil {
			abortErr = err
		}
		mu.Unlock()
		cancel()
	}

	var wg sync.WaitGroup
	for i := 1; i <= workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			res, cleanup, err := p.resources(workerID)
			if err != nil {
				p.log.Error("worker resources unavailable", zap.Int("worker", workerID), zap.Error(err))
				abort(err)
			} else {
				defer cleanup()
			}

			for c := range queue {
				var result domain.Result
				if ctx.Err() != nil || res == nil {
					mu.Lock()
					cause := abortErr
					mu.Unlock()
					result = notExecuted(c, p.cfg.Engine(), cause)
				} else {
					result = p.runner.Run(ctx, c, func() *registry.Env {
						return registry.NewEnv(p.cfg, res.API, res.Browser, p.log)
					})
				}
				results <- result

				mu.Lock()
				completed++
				switch {
				case result.Outcome == domain.OutcomePassed:
					passed++
				case result.Failed():
					failed++
				}
				if p.progress != nil {
					p.progress.Update(completed, passed, failed)
				}
				mu.Unlock()

				if result.Kind == domain.KindInfra && result.Outcome == domain.OutcomeErrored && ctx.Err() == nil {
					abort(fmt.Errorf("case %s: %s", c.ID, result.Message))
				}
				if p.cfg.Flags.FailFast && result.Failed() {
					cancel()
				}
			}
		}(i)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []domain.Result
	for result := range results {
		allResults = append(allResults, result)
	}
	if p.progress != nil {
		p.progress.Finish()
	}

	mu.Lock()
	runErr := abortErr
	mu.Unlock()
	return allResults, time.Since(startTime), runErr
}

// notExecuted records a terminal result for a case that never ran: queued
// behind an infrastructure failure, a cancellation, or a fail-fast stop.
func notExecuted(c registry.Case, engine string, cause error) domain.Result {
	res := domain.Result{
		CaseID:   c.ID,
		Engine:   engine,
		Tags:     c.Tags.Strings(),
		Attempts: 0,
	}
	if cause != nil {
		res.Outcome = domain.OutcomeErrored
		res.Kind = domain.KindInfra
		res.Message = "not executed: " + cause.Error()
	} else {
		res.Outcome = domain.OutcomeSkipped
		res.Kind = domain.KindCanceled
		res.Message = "not executed: run stopped"
	}
	return res
}
